package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/propledger/property_ledger_app/internal/core/domain"
	"github.com/propledger/property_ledger_app/internal/dto"
)

// BankLedgerSvcFacade is the bank ledger registry: real-world bank accounts
// per entity, each optionally linked to one asset chart account.
type BankLedgerSvcFacade interface {
	CreateBankLedger(ctx context.Context, entityID string, req dto.CreateBankLedgerRequest, userID string) (*domain.BankLedger, error)

	// GetBankLedger returns the entity-scoped bank ledger including its
	// linked chart account, or apperrors.ErrNotFound.
	GetBankLedger(ctx context.Context, entityID string, bankLedgerID string) (*domain.BankLedger, error)

	ListBankLedgers(ctx context.Context, entityID string) ([]domain.BankLedger, error)

	// GetBalance reports the cached current balance as-is.
	GetBalance(ctx context.Context, entityID string, bankLedgerID string) (decimal.Decimal, error)

	// LinkChartAccount assigns the bank ledger's asset chart account. The
	// target must be an active ASSET account of the same entity.
	LinkChartAccount(ctx context.Context, entityID string, bankLedgerID string, chartAccountID string, userID string) (*domain.BankLedger, error)
}
