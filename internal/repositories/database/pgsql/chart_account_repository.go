package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/propledger/property_ledger_app/internal/apperrors"
	"github.com/propledger/property_ledger_app/internal/core/domain"
	portsrepo "github.com/propledger/property_ledger_app/internal/core/ports/repositories"
	"github.com/propledger/property_ledger_app/internal/models"
	"github.com/propledger/property_ledger_app/internal/utils/mapping"
)

const chartAccountColumns = `chart_account_id, entity_id, account_code, account_name, account_type, parent_account_id, description, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxChartAccountRepository struct {
	BaseRepository
}

// newPgxChartAccountRepository creates a new repository for chart of accounts data.
func newPgxChartAccountRepository(pool *pgxpool.Pool) portsrepo.ChartAccountRepositoryFacade {
	return &PgxChartAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ChartAccountRepositoryFacade = (*PgxChartAccountRepository)(nil)

func nullableString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// scanChartAccount scans one chart account row, handling the nullable parent.
func scanChartAccount(row pgx.Row) (models.ChartAccount, error) {
	var m models.ChartAccount
	var parentID sql.NullString
	err := row.Scan(
		&m.ChartAccountID,
		&m.EntityID,
		&m.AccountCode,
		&m.AccountName,
		&m.AccountType,
		&parentID,
		&m.Description,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.ChartAccount{}, err
	}
	if parentID.Valid {
		m.ParentAccountID = parentID.String
	}
	return m, nil
}

const insertChartAccountQuery = `
	INSERT INTO chart_accounts (chart_account_id, entity_id, account_code, account_name, account_type, parent_account_id, description, is_active, created_at, created_by, last_updated_at, last_updated_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
`

func chartAccountInsertArgs(m models.ChartAccount) []any {
	return []any{
		m.ChartAccountID,
		m.EntityID,
		m.AccountCode,
		m.AccountName,
		m.AccountType,
		nullableString(m.ParentAccountID),
		m.Description,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	}
}

// SaveChartAccount inserts a new chart account.
func (r *PgxChartAccountRepository) SaveChartAccount(ctx context.Context, account domain.ChartAccount) error {
	m := mapping.ToModelChartAccount(account)
	_, err := r.Pool.Exec(ctx, insertChartAccountQuery, chartAccountInsertArgs(m)...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: account code %s already exists in entity %s", apperrors.ErrDuplicate, m.AccountCode, m.EntityID)
		}
		return fmt.Errorf("failed to save chart account %s: %w", m.ChartAccountID, err)
	}
	return nil
}

// SaveChartAccounts inserts a batch of accounts in slice order within one
// transaction, so parents can precede their children.
func (r *PgxChartAccountRepository) SaveChartAccounts(ctx context.Context, accounts []domain.ChartAccount) error {
	if len(accounts) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	for _, account := range accounts {
		m := mapping.ToModelChartAccount(account)
		if _, err := tx.Exec(ctx, insertChartAccountQuery, chartAccountInsertArgs(m)...); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return fmt.Errorf("%w: account code %s already exists in entity %s", apperrors.ErrDuplicate, m.AccountCode, m.EntityID)
			}
			return fmt.Errorf("failed to save chart account %s in batch: %w", m.ChartAccountID, err)
		}
	}

	return r.Commit(ctx, tx)
}

// FindChartAccountByID retrieves a chart account by its ID.
func (r *PgxChartAccountRepository) FindChartAccountByID(ctx context.Context, chartAccountID string) (*domain.ChartAccount, error) {
	query := `SELECT ` + chartAccountColumns + ` FROM chart_accounts WHERE chart_account_id = $1;`

	m, err := scanChartAccount(r.Pool.QueryRow(ctx, query, chartAccountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find chart account by ID %s: %w", chartAccountID, err)
	}
	account := mapping.ToDomainChartAccount(m)
	return &account, nil
}

// FindChartAccountsByIDs retrieves multiple chart accounts by their IDs.
// Missing IDs are simply absent from the returned map.
func (r *PgxChartAccountRepository) FindChartAccountsByIDs(ctx context.Context, chartAccountIDs []string) (map[string]domain.ChartAccount, error) {
	if len(chartAccountIDs) == 0 {
		return map[string]domain.ChartAccount{}, nil
	}

	query := `SELECT ` + chartAccountColumns + ` FROM chart_accounts WHERE chart_account_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, chartAccountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query chart accounts by IDs: %w", err)
	}
	defer rows.Close()

	accountsMap := make(map[string]domain.ChartAccount)
	for rows.Next() {
		m, err := scanChartAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan chart account row: %w", err)
		}
		accountsMap[m.ChartAccountID] = mapping.ToDomainChartAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating chart account rows: %w", err)
	}
	return accountsMap, nil
}

// FindChartAccountByCode retrieves the account with the given code within an entity.
func (r *PgxChartAccountRepository) FindChartAccountByCode(ctx context.Context, entityID string, accountCode string) (*domain.ChartAccount, error) {
	query := `SELECT ` + chartAccountColumns + ` FROM chart_accounts WHERE entity_id = $1 AND account_code = $2;`

	m, err := scanChartAccount(r.Pool.QueryRow(ctx, query, entityID, accountCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find chart account by code %s in entity %s: %w", accountCode, entityID, err)
	}
	account := mapping.ToDomainChartAccount(m)
	return &account, nil
}

func (r *PgxChartAccountRepository) queryChartAccounts(ctx context.Context, query string, args ...any) ([]domain.ChartAccount, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query chart accounts: %w", err)
	}
	defer rows.Close()

	accounts := []domain.ChartAccount{}
	for rows.Next() {
		m, err := scanChartAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan chart account row: %w", err)
		}
		accounts = append(accounts, mapping.ToDomainChartAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating chart account rows: %w", err)
	}
	return accounts, nil
}

// ListChartAccountsByEntity returns an entity's accounts ordered by account code.
func (r *PgxChartAccountRepository) ListChartAccountsByEntity(ctx context.Context, entityID string, includeInactive bool) ([]domain.ChartAccount, error) {
	query := `SELECT ` + chartAccountColumns + ` FROM chart_accounts WHERE entity_id = $1`
	if !includeInactive {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY account_code;`
	return r.queryChartAccounts(ctx, query, entityID)
}

// ListChartAccountsByType returns an entity's active accounts of one type.
func (r *PgxChartAccountRepository) ListChartAccountsByType(ctx context.Context, entityID string, accountType domain.AccountType) ([]domain.ChartAccount, error) {
	query := `SELECT ` + chartAccountColumns + ` FROM chart_accounts WHERE entity_id = $1 AND account_type = $2 AND is_active = TRUE ORDER BY account_code;`
	return r.queryChartAccounts(ctx, query, entityID, string(accountType))
}

// FindActiveChildren returns the active direct children of an account.
func (r *PgxChartAccountRepository) FindActiveChildren(ctx context.Context, chartAccountID string) ([]domain.ChartAccount, error) {
	query := `SELECT ` + chartAccountColumns + ` FROM chart_accounts WHERE parent_account_id = $1 AND is_active = TRUE ORDER BY account_code;`
	return r.queryChartAccounts(ctx, query, chartAccountID)
}

// FindChildren returns all direct children of an account.
func (r *PgxChartAccountRepository) FindChildren(ctx context.Context, chartAccountID string) ([]domain.ChartAccount, error) {
	query := `SELECT ` + chartAccountColumns + ` FROM chart_accounts WHERE parent_account_id = $1 ORDER BY account_code;`
	return r.queryChartAccounts(ctx, query, chartAccountID)
}

// UpdateChartAccount persists changes to name, description and active flag.
func (r *PgxChartAccountRepository) UpdateChartAccount(ctx context.Context, account domain.ChartAccount) error {
	m := mapping.ToModelChartAccount(account)
	query := `
		UPDATE chart_accounts
		SET account_name = $2,
		    description = $3,
		    is_active = $4,
		    last_updated_at = $5,
		    last_updated_by = $6
		WHERE chart_account_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.ChartAccountID,
		m.AccountName,
		m.Description,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update chart account %s: %w", m.ChartAccountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("chart account %s: %w", m.ChartAccountID, apperrors.ErrNotFound)
	}
	return nil
}
