package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/propledger/property_ledger_app/internal/core/domain"
)

// PaymentWrite is one payment mutation within a posting batch: either a
// fresh insert or the completion of a pre-recorded payment, optionally with
// an invoice application.
type PaymentWrite struct {
	Payment     domain.Payment
	IsUpdate    bool
	Application *domain.PaymentApplication
}

// ListPaymentsFilters narrows payment list queries.
type ListPaymentsFilters struct {
	BankLedgerID     string // empty means any
	StartDate        *time.Time
	EndDate          *time.Time
	PaymentType      domain.PaymentType // empty means any
	OnlyUnreconciled bool               // processing_status != CLEARED
}

// PaymentRepositoryFacade defines persistence operations for payments and
// their invoice applications.
type PaymentRepositoryFacade interface {
	// FindPaymentByID returns the payment or apperrors.ErrNotFound.
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)

	// ListPayments returns an entity's payments matching the filters,
	// ordered by payment date descending.
	ListPayments(ctx context.Context, entityID string, filters ListPaymentsFilters) ([]domain.Payment, error)

	// UpdatePayment persists status/memo changes to an existing payment.
	UpdatePayment(ctx context.Context, payment domain.Payment) error

	// FindApplicationsByPaymentID returns a payment's invoice applications.
	FindApplicationsByPaymentID(ctx context.Context, paymentID string) ([]domain.PaymentApplication, error)

	// SavePaymentBatch atomically persists a posting batch: every payment
	// write (insert or completion update), every invoice application, all
	// ledger entries, and the bank-balance deltas. Invoice applications are
	// validated against the invoice's outstanding balance inside the same
	// transaction; over-application fails the whole batch with
	// apperrors.ErrValidation. Any failure rolls back everything.
	SavePaymentBatch(ctx context.Context, writes []PaymentWrite, entries []domain.LedgerEntry, deltas map[string]decimal.Decimal) error
}
