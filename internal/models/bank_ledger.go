package models

import "github.com/shopspring/decimal"

// BankLedger is the bank_ledgers table row.
type BankLedger struct {
	BankLedgerID    string          `db:"bank_ledger_id"`
	EntityID        string          `db:"entity_id"`
	AccountName     string          `db:"account_name"`
	BankName        string          `db:"bank_name"`
	BankAccountType string          `db:"bank_account_type"`
	AccountNumber   string          `db:"account_number"`
	RoutingNumber   string          `db:"routing_number"`
	CurrentBalance  decimal.Decimal `db:"current_balance"`
	ChartAccountID  string          `db:"chart_account_id"` // Nullable
	IsActive        bool            `db:"is_active"`
	AuditFields
}
