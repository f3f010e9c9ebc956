package repositories

import (
	"context"

	"github.com/propledger/property_ledger_app/internal/core/domain"
)

// EntityReader exposes the read-only view of entities this subsystem needs.
// Entity lifecycle management is owned by another service.
type EntityReader interface {
	// FindEntityByID returns the entity or apperrors.ErrNotFound.
	FindEntityByID(ctx context.Context, entityID string) (*domain.Entity, error)
}
