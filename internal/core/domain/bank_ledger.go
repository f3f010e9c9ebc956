package domain

import "github.com/shopspring/decimal"

// BankAccountType distinguishes the kinds of real-world bank accounts.
type BankAccountType string

const (
	Checking BankAccountType = "CHECKING"
	Savings  BankAccountType = "SAVINGS"
)

// BankLedger represents a real-world bank account owned by an entity.
//
// CurrentBalance is a cached aggregate of all ledger entries posted against
// the ledger's linked asset chart account. It is maintained atomically in
// the same database transaction that inserts the entries and is never
// mutated directly.
type BankLedger struct {
	BankLedgerID    string          `json:"bankLedgerID"` // Primary key (UUID)
	EntityID        string          `json:"entityID"`     // FK -> entities.entity_id (NOT NULL)
	AccountName     string          `json:"accountName"`
	BankName        string          `json:"bankName"`
	BankAccountType BankAccountType `json:"bankAccountType"` // CHECKING or SAVINGS
	AccountNumber   string          `json:"accountNumber"`   // Masked, last four digits only
	RoutingNumber   string          `json:"routingNumber"`
	CurrentBalance  decimal.Decimal `json:"currentBalance"`
	ChartAccountID  string          `json:"chartAccountID"` // Nullable FK to an ASSET chart account; required before payments can post
	IsActive        bool            `json:"isActive"`
	AuditFields

	// ChartAccount is populated on reads when the ledger is linked.
	ChartAccount *ChartAccount `json:"chartAccount,omitempty"`
}

// IsLinked reports whether the bank ledger has an asset chart account
// assigned. Payments cannot post against an unlinked ledger.
func (b *BankLedger) IsLinked() bool {
	return b.ChartAccountID != ""
}

// MaskAccountNumber reduces a raw bank account number to its last four
// digits, the only form ever persisted.
func MaskAccountNumber(raw string) string {
	if len(raw) <= 4 {
		return raw
	}
	return "****" + raw[len(raw)-4:]
}
