package domain

// AccountType defines the fundamental accounting type of a chart account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// ValidAccountType reports whether t is one of the five supported types.
func ValidAccountType(t AccountType) bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// ChartAccount is a node in a per-entity hierarchical ledger account tree.
// Accounts are never hard-deleted; deactivation blocks new postings while
// preserving historical entries.
type ChartAccount struct {
	ChartAccountID  string      `json:"chartAccountID"`  // Primary key (UUID)
	EntityID        string      `json:"entityID"`        // FK -> entities.entity_id (NOT NULL)
	AccountCode     string      `json:"accountCode"`     // Unique within an entity
	AccountName     string      `json:"accountName"`     // User-defined name
	AccountType     AccountType `json:"accountType"`     // ASSET, LIABILITY, etc.
	ParentAccountID string      `json:"parentAccountID"` // Nullable self-reference; a child's type must equal its parent's
	Description     string      `json:"description"`     // Nullable user description
	IsActive        bool        `json:"isActive"`        // Soft deactivation flag
	AuditFields
}

// ChartAccountNode is a chart account with its children resolved, used when
// returning the account hierarchy of an entity.
type ChartAccountNode struct {
	ChartAccount
	Children []ChartAccountNode `json:"children"`
}

// DefaultChartAccount describes one account of the default chart seeded when
// an entity is provisioned.
type DefaultChartAccount struct {
	AccountCode string
	AccountName string
	AccountType AccountType
	ParentCode  string // empty for root accounts
}

// DefaultChart is the fixed two-level chart of accounts bootstrapped per
// entity: 7 root categories and 19 leaf accounts spanning all five types.
var DefaultChart = []DefaultChartAccount{
	{AccountCode: "1000", AccountName: "Assets", AccountType: Asset},
	{AccountCode: "2000", AccountName: "Liabilities", AccountType: Liability},
	{AccountCode: "3000", AccountName: "Equity", AccountType: Equity},
	{AccountCode: "4000", AccountName: "Revenue", AccountType: Revenue},
	{AccountCode: "5000", AccountName: "Property Operating Expenses", AccountType: Expense},
	{AccountCode: "6000", AccountName: "Administrative Expenses", AccountType: Expense},
	{AccountCode: "7000", AccountName: "Financial Expenses", AccountType: Expense},

	{AccountCode: "1100", AccountName: "Cash - Checking Account", AccountType: Asset, ParentCode: "1000"},
	{AccountCode: "1150", AccountName: "Cash - Savings Account", AccountType: Asset, ParentCode: "1000"},
	{AccountCode: "1200", AccountName: "Accounts Receivable", AccountType: Asset, ParentCode: "1000"},
	{AccountCode: "1400", AccountName: "Prepaid Insurance", AccountType: Asset, ParentCode: "1000"},
	{AccountCode: "2100", AccountName: "Accounts Payable", AccountType: Liability, ParentCode: "2000"},
	{AccountCode: "2200", AccountName: "Security Deposits Held", AccountType: Liability, ParentCode: "2000"},
	{AccountCode: "2300", AccountName: "Property Taxes Payable", AccountType: Liability, ParentCode: "2000"},
	{AccountCode: "3100", AccountName: "Owner Capital", AccountType: Equity, ParentCode: "3000"},
	{AccountCode: "3200", AccountName: "Retained Earnings", AccountType: Equity, ParentCode: "3000"},
	{AccountCode: "4100", AccountName: "Rental Income", AccountType: Revenue, ParentCode: "4000"},
	{AccountCode: "4200", AccountName: "Late Fee Income", AccountType: Revenue, ParentCode: "4000"},
	{AccountCode: "4300", AccountName: "Application Fee Income", AccountType: Revenue, ParentCode: "4000"},
	{AccountCode: "4400", AccountName: "Parking Income", AccountType: Revenue, ParentCode: "4000"},
	{AccountCode: "5100", AccountName: "Repairs and Maintenance", AccountType: Expense, ParentCode: "5000"},
	{AccountCode: "5200", AccountName: "Utilities", AccountType: Expense, ParentCode: "5000"},
	{AccountCode: "5300", AccountName: "Landscaping", AccountType: Expense, ParentCode: "5000"},
	{AccountCode: "6100", AccountName: "Property Management Fees", AccountType: Expense, ParentCode: "6000"},
	{AccountCode: "6200", AccountName: "Insurance", AccountType: Expense, ParentCode: "6000"},
	{AccountCode: "7100", AccountName: "Mortgage Interest", AccountType: Expense, ParentCode: "7000"},
}
