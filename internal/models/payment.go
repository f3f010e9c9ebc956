package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is the payments table row.
type Payment struct {
	PaymentID        string          `db:"payment_id"`
	EntityID         string          `db:"entity_id"`
	Amount           decimal.Decimal `db:"amount"`
	PaymentType      string          `db:"payment_type"`
	PaymentMethod    string          `db:"payment_method"`
	Status           string          `db:"status"`
	ProcessingStatus string          `db:"processing_status"`
	PaymentNumber    string          `db:"payment_number"`
	PaymentDate      time.Time       `db:"payment_date"`
	ReceivedDate     time.Time       `db:"received_date"`
	PayerName        string          `db:"payer_name"`
	PayerEmail       string          `db:"payer_email"`
	ReferenceNumber  string          `db:"reference_number"`
	BankLedgerID     string          `db:"bank_ledger_id"` // Nullable
	IsDeposited      bool            `db:"is_deposited"`
	DepositDate      *time.Time      `db:"deposit_date"` // Nullable
	Memo             string          `db:"memo"`
	AuditFields
}

// PaymentApplication is the payment_applications table row.
type PaymentApplication struct {
	PaymentApplicationID string          `db:"payment_application_id"`
	PaymentID            string          `db:"payment_id"`
	InvoiceID            string          `db:"invoice_id"`
	AppliedAmount        decimal.Decimal `db:"applied_amount"`
	AppliedDate          time.Time       `db:"applied_date"`
	Notes                string          `db:"notes"`
	AuditFields
}
