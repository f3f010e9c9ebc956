package pgsql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/propledger/property_ledger_app/internal/core/domain"
	portsrepo "github.com/propledger/property_ledger_app/internal/core/ports/repositories"
	"github.com/propledger/property_ledger_app/internal/models"
	"github.com/propledger/property_ledger_app/internal/utils/mapping"
)

const ledgerEntryColumns = `ledger_entry_id, entity_id, bank_ledger_id, chart_account_id, transaction_type, amount, debit_amount, credit_amount, description, transaction_date, entry_type, reference_id, reference_number, created_at, created_by, last_updated_at, last_updated_by`

type PgxLedgerEntryRepository struct {
	BaseRepository
	bankRepo portsrepo.BankLedgerRepositoryFacade
}

// newPgxLedgerEntryRepository creates a new repository for ledger entry data.
func newPgxLedgerEntryRepository(pool *pgxpool.Pool, bankRepo portsrepo.BankLedgerRepositoryFacade) portsrepo.LedgerEntryRepositoryFacade {
	return &PgxLedgerEntryRepository{
		BaseRepository: BaseRepository{Pool: pool},
		bankRepo:       bankRepo,
	}
}

var _ portsrepo.LedgerEntryRepositoryFacade = (*PgxLedgerEntryRepository)(nil)

func scanLedgerEntry(row pgx.Row) (models.LedgerEntry, error) {
	var m models.LedgerEntry
	var referenceID, referenceNumber sql.NullString
	err := row.Scan(
		&m.LedgerEntryID,
		&m.EntityID,
		&m.BankLedgerID,
		&m.ChartAccountID,
		&m.TransactionType,
		&m.Amount,
		&m.DebitAmount,
		&m.CreditAmount,
		&m.Description,
		&m.TransactionDate,
		&m.EntryType,
		&referenceID,
		&referenceNumber,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.LedgerEntry{}, err
	}
	if referenceID.Valid {
		m.ReferenceID = referenceID.String
	}
	if referenceNumber.Valid {
		m.ReferenceNumber = referenceNumber.String
	}
	return m, nil
}

// SaveEntries persists a balanced batch of entries and applies the bank
// balance deltas they imply, all within one database transaction. The bank
// rows are locked first so concurrent postings serialize per ledger.
func (r *PgxLedgerEntryRepository) SaveEntries(ctx context.Context, entries []domain.LedgerEntry, deltas map[string]decimal.Decimal) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	bankLedgerIDs := make([]string, 0, len(deltas))
	for id := range deltas {
		bankLedgerIDs = append(bankLedgerIDs, id)
	}
	if _, err := r.bankRepo.FindBankLedgersByIDsForUpdate(ctx, tx, bankLedgerIDs); err != nil {
		return fmt.Errorf("failed to lock bank ledgers for posting: %w", err)
	}

	if err := r.InsertEntriesInTx(ctx, tx, entries); err != nil {
		return err
	}

	userID := entries[0].CreatedBy
	now := entries[0].CreatedAt
	if err := r.bankRepo.ApplyBalanceDeltasInTx(ctx, tx, deltas, userID, now); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// InsertEntriesInTx inserts entry rows inside an enclosing transaction.
func (r *PgxLedgerEntryRepository) InsertEntriesInTx(ctx context.Context, tx pgx.Tx, entries []domain.LedgerEntry) error {
	query := `
		INSERT INTO ledger_entries (ledger_entry_id, entity_id, bank_ledger_id, chart_account_id, transaction_type, amount, debit_amount, credit_amount, description, transaction_date, entry_type, reference_id, reference_number, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	batch := &pgx.Batch{}
	for _, entry := range entries {
		m := mapping.ToModelLedgerEntry(entry)
		batch.Queue(query,
			m.LedgerEntryID,
			m.EntityID,
			m.BankLedgerID,
			m.ChartAccountID,
			m.TransactionType,
			m.Amount,
			m.DebitAmount,
			m.CreditAmount,
			m.Description,
			m.TransactionDate,
			m.EntryType,
			nullableString(m.ReferenceID),
			nullableString(m.ReferenceNumber),
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to execute ledger entry insert batch: %w", err)
	}
	return nil
}

// ListEntriesByBankLedger returns entries for a bank ledger, most recent first.
func (r *PgxLedgerEntryRepository) ListEntriesByBankLedger(ctx context.Context, bankLedgerID string, limit int) ([]domain.LedgerEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT ` + ledgerEntryColumns + `
		FROM ledger_entries
		WHERE bank_ledger_id = $1
		ORDER BY transaction_date DESC, created_at DESC
		LIMIT $2;
	`
	rows, err := r.Pool.Query(ctx, query, bankLedgerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries for bank ledger %s: %w", bankLedgerID, err)
	}
	defer rows.Close()

	entries := []domain.LedgerEntry{}
	for rows.Next() {
		m, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry row: %w", err)
		}
		entries = append(entries, mapping.ToDomainLedgerEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger entry rows: %w", err)
	}
	return entries, nil
}

// ListRecentEntriesByChartAccount returns the most recent entries posted
// against a chart account plus the total entry count for that account.
func (r *PgxLedgerEntryRepository) ListRecentEntriesByChartAccount(ctx context.Context, chartAccountID string, limit int) ([]domain.LedgerEntry, int64, error) {
	if limit <= 0 {
		limit = 10
	}

	var count int64
	countQuery := `SELECT COUNT(*) FROM ledger_entries WHERE chart_account_id = $1;`
	if err := r.Pool.QueryRow(ctx, countQuery, chartAccountID).Scan(&count); err != nil {
		return nil, 0, fmt.Errorf("failed to count ledger entries for chart account %s: %w", chartAccountID, err)
	}

	query := `
		SELECT ` + ledgerEntryColumns + `
		FROM ledger_entries
		WHERE chart_account_id = $1
		ORDER BY transaction_date DESC, created_at DESC
		LIMIT $2;
	`
	rows, err := r.Pool.Query(ctx, query, chartAccountID, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query ledger entries for chart account %s: %w", chartAccountID, err)
	}
	defer rows.Close()

	entries := []domain.LedgerEntry{}
	for rows.Next() {
		m, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan ledger entry row: %w", err)
		}
		entries = append(entries, mapping.ToDomainLedgerEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating ledger entry rows: %w", err)
	}
	return entries, count, nil
}
