package repositories

import (
	"context"

	"github.com/propledger/property_ledger_app/internal/core/domain"
)

// InvoiceReader exposes the read-only invoice view the payment flow needs.
// Invoice lifecycle management is owned by another service.
type InvoiceReader interface {
	// FindInvoiceByID returns the invoice or apperrors.ErrNotFound.
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// FindInvoiceWithLineItems returns the invoice including its line items,
	// used for receipt generation.
	FindInvoiceWithLineItems(ctx context.Context, invoiceID string) (*domain.Invoice, error)
}
