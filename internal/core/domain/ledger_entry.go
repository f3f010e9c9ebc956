package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a ledger entry is a debit or a credit.
// It is informational, derived from which amount column is non-zero.
type TransactionType string

const (
	Debit  TransactionType = "DEBIT"
	Credit TransactionType = "CREDIT"
)

// EntryType categorizes the business event that produced a ledger entry.
type EntryType string

const (
	EntryPayment EntryType = "PAYMENT"
	EntryDeposit EntryType = "DEPOSIT"
)

// LedgerEntry is a single half of a double-entry posting against a
// (bank ledger, chart account) pair. Entries are append-only: no update or
// delete operation exists anywhere in the system.
type LedgerEntry struct {
	LedgerEntryID   string          `json:"ledgerEntryID"` // Primary key (UUID)
	EntityID        string          `json:"entityID"`
	BankLedgerID    string          `json:"bankLedgerID"`
	ChartAccountID  string          `json:"chartAccountID"`
	TransactionType TransactionType `json:"transactionType"`
	Amount          decimal.Decimal `json:"amount"`       // The non-zero side
	DebitAmount     decimal.Decimal `json:"debitAmount"`  // Exactly one of debit/credit is non-zero
	CreditAmount    decimal.Decimal `json:"creditAmount"` //
	Description     string          `json:"description"`
	TransactionDate time.Time       `json:"transactionDate"`
	EntryType       EntryType       `json:"entryType"`
	ReferenceID     string          `json:"referenceID"`     // Links back to the causing payment, not a real FK
	ReferenceNumber string          `json:"referenceNumber"` // Human reference, e.g. check number
	AuditFields
}

// SignedAmount is the entry's effect on a cash balance: debit minus credit.
func (e *LedgerEntry) SignedAmount() decimal.Decimal {
	return e.DebitAmount.Sub(e.CreditAmount)
}
