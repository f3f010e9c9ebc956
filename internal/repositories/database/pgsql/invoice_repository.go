package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/propledger/property_ledger_app/internal/apperrors"
	"github.com/propledger/property_ledger_app/internal/core/domain"
	portsrepo "github.com/propledger/property_ledger_app/internal/core/ports/repositories"
)

// PgxInvoiceRepository is the read-only view of invoices the payment flows
// need.
type PgxInvoiceRepository struct {
	pool *pgxpool.Pool
}

func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceReader {
	return &PgxInvoiceRepository{pool: pool}
}

var _ portsrepo.InvoiceReader = (*PgxInvoiceRepository)(nil)

// FindInvoiceByID retrieves an invoice by its ID.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	query := `
		SELECT invoice_id, entity_id, invoice_number, total_amount, status, due_date, created_at, created_by, last_updated_at, last_updated_by
		FROM invoices
		WHERE invoice_id = $1;
	`
	var invoice domain.Invoice
	err := r.pool.QueryRow(ctx, query, invoiceID).Scan(
		&invoice.InvoiceID,
		&invoice.EntityID,
		&invoice.InvoiceNumber,
		&invoice.TotalAmount,
		&invoice.Status,
		&invoice.DueDate,
		&invoice.CreatedAt,
		&invoice.CreatedBy,
		&invoice.LastUpdatedAt,
		&invoice.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find invoice by ID %s: %w", invoiceID, err)
	}
	return &invoice, nil
}

// FindInvoiceWithLineItems retrieves an invoice including its line items.
func (r *PgxInvoiceRepository) FindInvoiceWithLineItems(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	invoice, err := r.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT line_item_id, invoice_id, description, amount
		FROM invoice_line_items
		WHERE invoice_id = $1
		ORDER BY line_item_id;
	`
	rows, err := r.pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query line items for invoice %s: %w", invoiceID, err)
	}
	defer rows.Close()

	items := []domain.InvoiceLineItem{}
	for rows.Next() {
		var item domain.InvoiceLineItem
		if err := rows.Scan(&item.LineItemID, &item.InvoiceID, &item.Description, &item.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan invoice line item row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoice line item rows: %w", err)
	}

	invoice.LineItems = items
	return invoice, nil
}
