package services

import (
	"context"

	"github.com/propledger/property_ledger_app/internal/core/domain"
	"github.com/propledger/property_ledger_app/internal/dto"
)

// LedgerEntrySvcFacade is the ledger entry engine, the only component that
// writes postings. Entries are append-only.
type LedgerEntrySvcFacade interface {
	// CreateEntries persists one logical transaction of two or more entries.
	// The batch is rejected with apperrors.ErrUnbalanced unless total debits
	// equal total credits, and atomically applied together with the bank
	// balance changes it implies.
	CreateEntries(ctx context.Context, entityID string, req dto.CreateLedgerEntriesRequest, userID string) ([]domain.LedgerEntry, error)

	// ListEntriesByBankLedger returns a bank ledger's entries, newest first.
	ListEntriesByBankLedger(ctx context.Context, entityID string, bankLedgerID string, limit int) ([]domain.LedgerEntry, error)
}
