package services

import (
	"context"

	"github.com/propledger/property_ledger_app/internal/core/domain"
	"github.com/propledger/property_ledger_app/internal/dto"
)

// ChartAccountSvcFacade is the chart of accounts manager: it owns the
// per-entity hierarchical ledger account tree.
type ChartAccountSvcFacade interface {
	CreateChartAccount(ctx context.Context, entityID string, req dto.CreateChartAccountRequest, userID string) (*domain.ChartAccount, error)

	// ListChartAccounts returns the entity's accounts as a tree: root
	// accounts with nested children, ordered by account code.
	ListChartAccounts(ctx context.Context, entityID string, includeInactive bool) ([]domain.ChartAccountNode, error)

	// GetChartAccountByID returns one account with its parent summary,
	// child summaries, most recent ledger entries and total entry count.
	GetChartAccountByID(ctx context.Context, entityID string, chartAccountID string) (*dto.ChartAccountDetailResponse, error)

	UpdateChartAccount(ctx context.Context, entityID string, chartAccountID string, req dto.UpdateChartAccountRequest, userID string) (*domain.ChartAccount, error)

	// DeactivateChartAccount soft-deactivates an account. Fails with a
	// validation error while the account has active children.
	DeactivateChartAccount(ctx context.Context, entityID string, chartAccountID string, userID string) (*domain.ChartAccount, error)

	ListChartAccountsByType(ctx context.Context, entityID string, accountType domain.AccountType) ([]domain.ChartAccount, error)

	// BootstrapDefaultChart seeds the fixed default chart for a freshly
	// provisioned entity and returns the created accounts.
	BootstrapDefaultChart(ctx context.Context, entityID string, userID string) ([]domain.ChartAccount, error)
}
