package repositories

import (
	"context"

	"github.com/propledger/property_ledger_app/internal/core/domain"
)

// ChartAccountRepositoryFacade defines persistence operations for the chart
// of accounts.
type ChartAccountRepositoryFacade interface {
	// SaveChartAccount persists a new chart account. Returns
	// apperrors.ErrDuplicate when the (entity, account code) pair exists.
	SaveChartAccount(ctx context.Context, account domain.ChartAccount) error

	// SaveChartAccounts persists a batch of accounts atomically, used by the
	// default-chart bootstrap. Rows are inserted in slice order so parents
	// can precede children.
	SaveChartAccounts(ctx context.Context, accounts []domain.ChartAccount) error

	// FindChartAccountByID returns the account or apperrors.ErrNotFound.
	FindChartAccountByID(ctx context.Context, chartAccountID string) (*domain.ChartAccount, error)

	// FindChartAccountsByIDs returns the found accounts keyed by ID; missing
	// IDs are simply absent from the map.
	FindChartAccountsByIDs(ctx context.Context, chartAccountIDs []string) (map[string]domain.ChartAccount, error)

	// FindChartAccountByCode returns the account with the given code within
	// an entity, or apperrors.ErrNotFound.
	FindChartAccountByCode(ctx context.Context, entityID string, accountCode string) (*domain.ChartAccount, error)

	// ListChartAccountsByEntity returns the entity's accounts ordered by
	// account code ascending, optionally including inactive ones.
	ListChartAccountsByEntity(ctx context.Context, entityID string, includeInactive bool) ([]domain.ChartAccount, error)

	// ListChartAccountsByType returns the entity's active accounts of one
	// type, ordered by account code ascending.
	ListChartAccountsByType(ctx context.Context, entityID string, accountType domain.AccountType) ([]domain.ChartAccount, error)

	// FindActiveChildren returns the active direct children of an account.
	FindActiveChildren(ctx context.Context, chartAccountID string) ([]domain.ChartAccount, error)

	// FindChildren returns all direct children of an account.
	FindChildren(ctx context.Context, chartAccountID string) ([]domain.ChartAccount, error)

	// UpdateChartAccount persists changes to name, description and active
	// flag. Returns apperrors.ErrNotFound if the row is gone.
	UpdateChartAccount(ctx context.Context, account domain.ChartAccount) error
}
