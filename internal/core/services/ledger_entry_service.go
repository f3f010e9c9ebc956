package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/propledger/property_ledger_app/internal/apperrors"
	"github.com/propledger/property_ledger_app/internal/core/domain"
	portsrepo "github.com/propledger/property_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/propledger/property_ledger_app/internal/core/ports/services"
	"github.com/propledger/property_ledger_app/internal/dto"
	"github.com/propledger/property_ledger_app/internal/middleware"
	"github.com/propledger/property_ledger_app/internal/utils/accounting"
)

// ledgerEntryService implements the ledger entry engine. It is the only
// component that writes postings; everything it writes is balanced, scoped
// to one entity, and applied atomically together with the cached bank
// balance changes the batch implies.
type ledgerEntryService struct {
	bankRepo    portsrepo.BankLedgerRepositoryFacade
	accountRepo portsrepo.ChartAccountRepositoryFacade
	entryRepo   portsrepo.LedgerEntryRepositoryFacade
}

// NewLedgerEntryService creates a new ledger entry service.
func NewLedgerEntryService(bankRepo portsrepo.BankLedgerRepositoryFacade, accountRepo portsrepo.ChartAccountRepositoryFacade, entryRepo portsrepo.LedgerEntryRepositoryFacade) portssvc.LedgerEntrySvcFacade {
	return &ledgerEntryService{
		bankRepo:    bankRepo,
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
	}
}

var _ portssvc.LedgerEntrySvcFacade = (*ledgerEntryService)(nil)

// buildLedgerEntry turns one validated entry input into a domain entry,
// deriving the informational transaction type and amount from whichever
// side is non-zero.
func buildLedgerEntry(entityID string, input dto.LedgerEntryInput, txnDate time.Time, description string, userID string, now time.Time) domain.LedgerEntry {
	txnType := domain.Debit
	amount := input.DebitAmount
	if input.DebitAmount.IsZero() {
		txnType = domain.Credit
		amount = input.CreditAmount
	}
	desc := input.Description
	if desc == "" {
		desc = description
	}
	return domain.LedgerEntry{
		LedgerEntryID:   uuid.NewString(),
		EntityID:        entityID,
		BankLedgerID:    input.BankLedgerID,
		ChartAccountID:  input.ChartAccountID,
		TransactionType: txnType,
		Amount:          amount,
		DebitAmount:     input.DebitAmount,
		CreditAmount:    input.CreditAmount,
		Description:     desc,
		TransactionDate: txnDate,
		EntryType:       domain.EntryType(input.EntryType),
		ReferenceID:     input.ReferenceID,
		ReferenceNumber: input.ReferenceNumber,
		AuditFields:     domain.NewAuditFields(userID, now),
	}
}

// validateBalanced rejects batches whose debits and credits differ.
func validateBalanced(entries []domain.LedgerEntry) error {
	debits, credits := accounting.SumSides(entries)
	if !debits.Equal(credits) {
		return fmt.Errorf("%w: debits sum to %s, credits sum to %s", apperrors.ErrUnbalanced, debits.String(), credits.String())
	}
	return nil
}

func (s *ledgerEntryService) CreateEntries(ctx context.Context, entityID string, req dto.CreateLedgerEntriesRequest, userID string) ([]domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(req.Entries) < 2 {
		return nil, fmt.Errorf("%w: a transaction requires at least two entries", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	entries := make([]domain.LedgerEntry, 0, len(req.Entries))
	for i, input := range req.Entries {
		if err := accounting.ValidateEntrySides(input.DebitAmount, input.CreditAmount); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", apperrors.ErrValidation, i, err)
		}
		txnDate, err := parseISODate(input.TransactionDate, now)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		entries = append(entries, buildLedgerEntry(entityID, input, txnDate, req.TransactionDescription, userID, now))
	}

	if err := validateBalanced(entries); err != nil {
		return nil, err
	}

	// Resolve and scope-check every referenced bank ledger and chart account
	// before opening the write transaction.
	linked := make(map[string]string)
	for _, e := range entries {
		if _, seen := linked[e.BankLedgerID]; seen {
			continue
		}
		ledger, err := s.bankRepo.FindBankLedgerByID(ctx, e.BankLedgerID)
		if err != nil {
			return nil, fmt.Errorf("bank ledger %s: %w", e.BankLedgerID, err)
		}
		if ledger.EntityID != entityID {
			return nil, fmt.Errorf("bank ledger %s: %w", e.BankLedgerID, apperrors.ErrNotFound)
		}
		if !ledger.IsActive {
			return nil, fmt.Errorf("%w: bank ledger %s is inactive", apperrors.ErrValidation, e.BankLedgerID)
		}
		linked[e.BankLedgerID] = ledger.ChartAccountID
	}

	accountIDs := make([]string, 0, len(entries))
	for _, e := range entries {
		accountIDs = append(accountIDs, e.ChartAccountID)
	}
	accountsMap, err := s.accountRepo.FindChartAccountsByIDs(ctx, uniqueStrings(accountIDs))
	if err != nil {
		logger.Error("Failed to fetch chart accounts for posting", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch chart accounts: %w", err)
	}
	for _, id := range uniqueStrings(accountIDs) {
		acc, found := accountsMap[id]
		if !found || acc.EntityID != entityID {
			return nil, fmt.Errorf("chart account %s: %w", id, apperrors.ErrNotFound)
		}
		// Deactivation blocks new postings; history stays untouched.
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: chart account %s is inactive", apperrors.ErrValidation, id)
		}
	}

	deltas := accounting.BankBalanceDeltas(entries, linked)
	if err := s.entryRepo.SaveEntries(ctx, entries, deltas); err != nil {
		logger.Error("Failed to save ledger entries", slog.String("error", err.Error()), slog.String("entity_id", entityID))
		return nil, fmt.Errorf("failed to save ledger entries: %w", err)
	}

	logger.Info("Ledger entries created", slog.Int("entry_count", len(entries)), slog.String("entity_id", entityID))
	return entries, nil
}

func (s *ledgerEntryService) ListEntriesByBankLedger(ctx context.Context, entityID string, bankLedgerID string, limit int) ([]domain.LedgerEntry, error) {
	ledger, err := s.bankRepo.FindBankLedgerByID(ctx, bankLedgerID)
	if err != nil {
		return nil, fmt.Errorf("bank ledger %s: %w", bankLedgerID, err)
	}
	if ledger.EntityID != entityID {
		return nil, fmt.Errorf("bank ledger %s: %w", bankLedgerID, apperrors.ErrNotFound)
	}

	if limit <= 0 {
		limit = 50
	}
	entries, err := s.entryRepo.ListEntriesByBankLedger(ctx, bankLedgerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	if entries == nil {
		entries = []domain.LedgerEntry{}
	}
	return entries, nil
}

// uniqueStrings returns a slice containing only the unique strings from the input.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, str := range input {
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	return result
}

// pairForPayment builds the balanced debit/credit pair a payment posting
// produces: money arriving on the bank's linked asset account, categorized
// against a revenue account.
func pairForPayment(entityID string, bankLedgerID, bankChartAccountID, revenueAccountID string, amount decimal.Decimal, entryType domain.EntryType, description string, txnDate time.Time, referenceID, referenceNumber string, userID string, now time.Time) []domain.LedgerEntry {
	audit := domain.NewAuditFields(userID, now)
	return []domain.LedgerEntry{
		{
			LedgerEntryID:   uuid.NewString(),
			EntityID:        entityID,
			BankLedgerID:    bankLedgerID,
			ChartAccountID:  bankChartAccountID,
			TransactionType: domain.Debit,
			Amount:          amount,
			DebitAmount:     amount,
			CreditAmount:    decimal.Zero,
			Description:     description,
			TransactionDate: txnDate,
			EntryType:       entryType,
			ReferenceID:     referenceID,
			ReferenceNumber: referenceNumber,
			AuditFields:     audit,
		},
		{
			LedgerEntryID:   uuid.NewString(),
			EntityID:        entityID,
			BankLedgerID:    bankLedgerID,
			ChartAccountID:  revenueAccountID,
			TransactionType: domain.Credit,
			Amount:          amount,
			DebitAmount:     decimal.Zero,
			CreditAmount:    amount,
			Description:     description,
			TransactionDate: txnDate,
			EntryType:       entryType,
			ReferenceID:     referenceID,
			ReferenceNumber: referenceNumber,
			AuditFields:     audit,
		},
	}
}
