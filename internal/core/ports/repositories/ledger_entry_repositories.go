package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/propledger/property_ledger_app/internal/core/domain"
)

// LedgerEntryRepositoryFacade defines persistence for the append-only
// ledger. There is deliberately no update or delete operation.
type LedgerEntryRepositoryFacade interface {
	// SaveEntries persists a balanced batch and applies the given balance
	// deltas to the affected bank ledgers, all in one transaction.
	SaveEntries(ctx context.Context, entries []domain.LedgerEntry, deltas map[string]decimal.Decimal) error

	// InsertEntriesInTx inserts entry rows inside an enclosing transaction.
	// Used by the payment repository so that payments, applications and
	// postings commit or roll back together.
	InsertEntriesInTx(ctx context.Context, tx pgx.Tx, entries []domain.LedgerEntry) error

	// ListEntriesByBankLedger returns entries for a bank ledger ordered by
	// transaction date descending.
	ListEntriesByBankLedger(ctx context.Context, bankLedgerID string, limit int) ([]domain.LedgerEntry, error)

	// ListRecentEntriesByChartAccount returns the most recent entries posted
	// against a chart account (transaction date descending) plus the total
	// entry count for that account.
	ListRecentEntriesByChartAccount(ctx context.Context, chartAccountID string, limit int) ([]domain.LedgerEntry, int64, error)
}
