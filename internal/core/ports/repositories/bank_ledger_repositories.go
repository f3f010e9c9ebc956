package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/propledger/property_ledger_app/internal/core/domain"
)

// BankLedgerRepositoryFacade defines persistence operations for bank
// ledgers. The cached current balance is only ever changed through
// ApplyBalanceDeltasInTx, inside the same transaction that inserts the
// ledger entries that justify the change.
type BankLedgerRepositoryFacade interface {
	// SaveBankLedger persists a new bank ledger.
	SaveBankLedger(ctx context.Context, ledger domain.BankLedger) error

	// FindBankLedgerByID returns the bank ledger, with its linked chart
	// account populated when one is assigned, or apperrors.ErrNotFound.
	FindBankLedgerByID(ctx context.Context, bankLedgerID string) (*domain.BankLedger, error)

	// ListBankLedgersByEntity returns an entity's bank ledgers ordered by
	// account name.
	ListBankLedgersByEntity(ctx context.Context, entityID string) ([]domain.BankLedger, error)

	// UpdateBankLedger persists chart-account link and active-flag changes.
	UpdateBankLedger(ctx context.Context, ledger domain.BankLedger) error

	// FindBankLedgersByIDsForUpdate loads and row-locks bank ledgers inside
	// the given transaction. Returns apperrors.ErrNotFound if any ID is
	// missing.
	FindBankLedgersByIDsForUpdate(ctx context.Context, tx pgx.Tx, bankLedgerIDs []string) (map[string]domain.BankLedger, error)

	// ApplyBalanceDeltasInTx increments current_balance by each delta inside
	// the given transaction. Rows must already be locked via
	// FindBankLedgersByIDsForUpdate.
	ApplyBalanceDeltasInTx(ctx context.Context, tx pgx.Tx, deltas map[string]decimal.Decimal, userID string, now time.Time) error
}
