package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is the ledger_entries table row. Rows are append-only.
type LedgerEntry struct {
	LedgerEntryID   string          `db:"ledger_entry_id"`
	EntityID        string          `db:"entity_id"`
	BankLedgerID    string          `db:"bank_ledger_id"`
	ChartAccountID  string          `db:"chart_account_id"`
	TransactionType string          `db:"transaction_type"`
	Amount          decimal.Decimal `db:"amount"`
	DebitAmount     decimal.Decimal `db:"debit_amount"`
	CreditAmount    decimal.Decimal `db:"credit_amount"`
	Description     string          `db:"description"`
	TransactionDate time.Time       `db:"transaction_date"`
	EntryType       string          `db:"entry_type"`
	ReferenceID     string          `db:"reference_id"`     // Nullable
	ReferenceNumber string          `db:"reference_number"` // Nullable
	AuditFields
}
