package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/propledger/property_ledger_app/internal/apperrors"
	"github.com/propledger/property_ledger_app/internal/core/domain"
	portsrepo "github.com/propledger/property_ledger_app/internal/core/ports/repositories"
	"github.com/propledger/property_ledger_app/internal/models"
	"github.com/propledger/property_ledger_app/internal/utils/mapping"
)

const paymentColumns = `payment_id, entity_id, amount, payment_type, payment_method, status, processing_status, payment_number, payment_date, received_date, payer_name, payer_email, reference_number, bank_ledger_id, is_deposited, deposit_date, memo, created_at, created_by, last_updated_at, last_updated_by`

type PgxPaymentRepository struct {
	BaseRepository
	bankRepo  portsrepo.BankLedgerRepositoryFacade
	entryRepo portsrepo.LedgerEntryRepositoryFacade
}

// newPgxPaymentRepository creates a new repository for payment data.
func newPgxPaymentRepository(pool *pgxpool.Pool, bankRepo portsrepo.BankLedgerRepositoryFacade, entryRepo portsrepo.LedgerEntryRepositoryFacade) portsrepo.PaymentRepositoryFacade {
	return &PgxPaymentRepository{
		BaseRepository: BaseRepository{Pool: pool},
		bankRepo:       bankRepo,
		entryRepo:      entryRepo,
	}
}

var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

func scanPayment(row pgx.Row) (models.Payment, error) {
	var m models.Payment
	var payerEmail, referenceNumber, bankLedgerID, memo sql.NullString
	err := row.Scan(
		&m.PaymentID,
		&m.EntityID,
		&m.Amount,
		&m.PaymentType,
		&m.PaymentMethod,
		&m.Status,
		&m.ProcessingStatus,
		&m.PaymentNumber,
		&m.PaymentDate,
		&m.ReceivedDate,
		&m.PayerName,
		&payerEmail,
		&referenceNumber,
		&bankLedgerID,
		&m.IsDeposited,
		&m.DepositDate,
		&memo,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.Payment{}, err
	}
	if payerEmail.Valid {
		m.PayerEmail = payerEmail.String
	}
	if referenceNumber.Valid {
		m.ReferenceNumber = referenceNumber.String
	}
	if bankLedgerID.Valid {
		m.BankLedgerID = bankLedgerID.String
	}
	if memo.Valid {
		m.Memo = memo.String
	}
	return m, nil
}

// FindPaymentByID retrieves a payment by its ID.
func (r *PgxPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE payment_id = $1;`

	m, err := scanPayment(r.Pool.QueryRow(ctx, query, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find payment by ID %s: %w", paymentID, err)
	}
	payment := mapping.ToDomainPayment(m)
	return &payment, nil
}

// ListPayments returns an entity's payments matching the filters, most
// recent payment date first.
func (r *PgxPaymentRepository) ListPayments(ctx context.Context, entityID string, filters portsrepo.ListPaymentsFilters) ([]domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE entity_id = $1`
	args := []any{entityID}

	if filters.OnlyUnreconciled {
		query += ` AND processing_status != 'CLEARED'`
	}
	if filters.BankLedgerID != "" {
		args = append(args, filters.BankLedgerID)
		query += fmt.Sprintf(` AND bank_ledger_id = $%d`, len(args))
	}
	if filters.StartDate != nil {
		args = append(args, *filters.StartDate)
		query += fmt.Sprintf(` AND payment_date >= $%d`, len(args))
	}
	if filters.EndDate != nil {
		args = append(args, *filters.EndDate)
		query += fmt.Sprintf(` AND payment_date <= $%d`, len(args))
	}
	if filters.PaymentType != "" {
		args = append(args, string(filters.PaymentType))
		query += fmt.Sprintf(` AND payment_type = $%d`, len(args))
	}
	query += ` ORDER BY payment_date DESC, created_at DESC;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments for entity %s: %w", entityID, err)
	}
	defer rows.Close()

	payments := []domain.Payment{}
	for rows.Next() {
		m, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment row: %w", err)
		}
		payments = append(payments, mapping.ToDomainPayment(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payment rows: %w", err)
	}
	return payments, nil
}

const updatePaymentQuery = `
	UPDATE payments
	SET status = $2,
	    processing_status = $3,
	    bank_ledger_id = $4,
	    is_deposited = $5,
	    deposit_date = $6,
	    memo = $7,
	    last_updated_at = $8,
	    last_updated_by = $9
	WHERE payment_id = $1;
`

func updatePaymentArgs(m models.Payment) []any {
	return []any{
		m.PaymentID,
		m.Status,
		m.ProcessingStatus,
		nullableString(m.BankLedgerID),
		m.IsDeposited,
		m.DepositDate,
		m.Memo,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	}
}

// UpdatePayment persists status, deposit and memo changes to a payment.
func (r *PgxPaymentRepository) UpdatePayment(ctx context.Context, payment domain.Payment) error {
	m := mapping.ToModelPayment(payment)
	cmdTag, err := r.Pool.Exec(ctx, updatePaymentQuery, updatePaymentArgs(m)...)
	if err != nil {
		return fmt.Errorf("failed to update payment %s: %w", m.PaymentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("payment %s: %w", m.PaymentID, apperrors.ErrNotFound)
	}
	return nil
}

// FindApplicationsByPaymentID returns a payment's invoice applications.
func (r *PgxPaymentRepository) FindApplicationsByPaymentID(ctx context.Context, paymentID string) ([]domain.PaymentApplication, error) {
	query := `
		SELECT payment_application_id, payment_id, invoice_id, applied_amount, applied_date, notes, created_at, created_by, last_updated_at, last_updated_by
		FROM payment_applications
		WHERE payment_id = $1
		ORDER BY applied_date;
	`
	rows, err := r.Pool.Query(ctx, query, paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query applications for payment %s: %w", paymentID, err)
	}
	defer rows.Close()

	applications := []domain.PaymentApplication{}
	for rows.Next() {
		var m models.PaymentApplication
		var notes sql.NullString
		if err := rows.Scan(
			&m.PaymentApplicationID,
			&m.PaymentID,
			&m.InvoiceID,
			&m.AppliedAmount,
			&m.AppliedDate,
			&notes,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payment application row: %w", err)
		}
		if notes.Valid {
			m.Notes = notes.String
		}
		applications = append(applications, mapping.ToDomainPaymentApplication(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payment application rows: %w", err)
	}
	return applications, nil
}

// SavePaymentBatch atomically persists a posting batch: payment writes,
// invoice applications, ledger entries and bank balance deltas. Invoice
// outstanding balances are checked under row locks inside the transaction,
// so concurrent over-application of the same invoice cannot slip through.
func (r *PgxPaymentRepository) SavePaymentBatch(ctx context.Context, writes []portsrepo.PaymentWrite, entries []domain.LedgerEntry, deltas map[string]decimal.Decimal) error {
	if len(writes) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	userID := writes[0].Payment.LastUpdatedBy
	now := writes[0].Payment.LastUpdatedAt

	insertQuery := `
		INSERT INTO payments (payment_id, entity_id, amount, payment_type, payment_method, status, processing_status, payment_number, payment_date, received_date, payer_name, payer_email, reference_number, bank_ledger_id, is_deposited, deposit_date, memo, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21);
	`
	for _, write := range writes {
		m := mapping.ToModelPayment(write.Payment)
		if write.IsUpdate {
			cmdTag, err := tx.Exec(ctx, updatePaymentQuery, updatePaymentArgs(m)...)
			if err != nil {
				return fmt.Errorf("failed to update payment %s in batch: %w", m.PaymentID, err)
			}
			if cmdTag.RowsAffected() == 0 {
				return fmt.Errorf("payment %s: %w", m.PaymentID, apperrors.ErrNotFound)
			}
		} else {
			if _, err := tx.Exec(ctx, insertQuery,
				m.PaymentID,
				m.EntityID,
				m.Amount,
				m.PaymentType,
				m.PaymentMethod,
				m.Status,
				m.ProcessingStatus,
				m.PaymentNumber,
				m.PaymentDate,
				m.ReceivedDate,
				m.PayerName,
				nullableString(m.PayerEmail),
				nullableString(m.ReferenceNumber),
				nullableString(m.BankLedgerID),
				m.IsDeposited,
				m.DepositDate,
				m.Memo,
				m.CreatedAt,
				m.CreatedBy,
				m.LastUpdatedAt,
				m.LastUpdatedBy,
			); err != nil {
				return fmt.Errorf("failed to insert payment %s in batch: %w", m.PaymentID, err)
			}
		}

		if write.Application != nil {
			if err := r.insertApplicationInTx(ctx, tx, *write.Application); err != nil {
				return err
			}
		}
	}

	if len(entries) > 0 {
		bankLedgerIDs := make([]string, 0, len(deltas))
		for id := range deltas {
			bankLedgerIDs = append(bankLedgerIDs, id)
		}
		if _, err := r.bankRepo.FindBankLedgersByIDsForUpdate(ctx, tx, bankLedgerIDs); err != nil {
			return fmt.Errorf("failed to lock bank ledgers for posting: %w", err)
		}
		if err := r.entryRepo.InsertEntriesInTx(ctx, tx, entries); err != nil {
			return err
		}
		if err := r.bankRepo.ApplyBalanceDeltasInTx(ctx, tx, deltas, userID, now); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

// insertApplicationInTx records one invoice application after checking the
// invoice's outstanding balance under a row lock.
func (r *PgxPaymentRepository) insertApplicationInTx(ctx context.Context, tx pgx.Tx, app domain.PaymentApplication) error {
	var totalAmount decimal.Decimal
	lockQuery := `SELECT total_amount FROM invoices WHERE invoice_id = $1 FOR UPDATE;`
	if err := tx.QueryRow(ctx, lockQuery, app.InvoiceID).Scan(&totalAmount); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("invoice %s: %w", app.InvoiceID, apperrors.ErrNotFound)
		}
		return fmt.Errorf("failed to lock invoice %s: %w", app.InvoiceID, err)
	}

	var applied decimal.Decimal
	appliedQuery := `SELECT COALESCE(SUM(applied_amount), 0) FROM payment_applications WHERE invoice_id = $1;`
	if err := tx.QueryRow(ctx, appliedQuery, app.InvoiceID).Scan(&applied); err != nil {
		return fmt.Errorf("failed to sum applications for invoice %s: %w", app.InvoiceID, err)
	}

	outstanding := totalAmount.Sub(applied)
	if app.AppliedAmount.GreaterThan(outstanding) {
		return fmt.Errorf("%w: applying %s to invoice %s exceeds its outstanding balance %s", apperrors.ErrValidation, app.AppliedAmount.String(), app.InvoiceID, outstanding.String())
	}

	m := mapping.ToModelPaymentApplication(app)
	insertQuery := `
		INSERT INTO payment_applications (payment_application_id, payment_id, invoice_id, applied_amount, applied_date, notes, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	if _, err := tx.Exec(ctx, insertQuery,
		m.PaymentApplicationID,
		m.PaymentID,
		m.InvoiceID,
		m.AppliedAmount,
		m.AppliedDate,
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	); err != nil {
		return fmt.Errorf("failed to insert payment application %s: %w", m.PaymentApplicationID, err)
	}
	return nil
}
