package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/propledger/property_ledger_app/internal/apperrors"
	"github.com/propledger/property_ledger_app/internal/core/domain"
	portsrepo "github.com/propledger/property_ledger_app/internal/core/ports/repositories"
)

// PgxEntityRepository is the read-only view of the entities table.
type PgxEntityRepository struct {
	pool *pgxpool.Pool
}

func newPgxEntityRepository(pool *pgxpool.Pool) portsrepo.EntityReader {
	return &PgxEntityRepository{pool: pool}
}

var _ portsrepo.EntityReader = (*PgxEntityRepository)(nil)

// FindEntityByID retrieves an entity by its ID.
func (r *PgxEntityRepository) FindEntityByID(ctx context.Context, entityID string) (*domain.Entity, error) {
	query := `
		SELECT entity_id, name, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM entities
		WHERE entity_id = $1;
	`
	var entity domain.Entity
	err := r.pool.QueryRow(ctx, query, entityID).Scan(
		&entity.EntityID,
		&entity.Name,
		&entity.IsActive,
		&entity.CreatedAt,
		&entity.CreatedBy,
		&entity.LastUpdatedAt,
		&entity.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find entity by ID %s: %w", entityID, err)
	}
	return &entity, nil
}
