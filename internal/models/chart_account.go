package models

// ChartAccount is the chart_accounts table row.
// ParentAccountID is nullable; repositories scan it through sql.NullString.
type ChartAccount struct {
	ChartAccountID  string `db:"chart_account_id"`
	EntityID        string `db:"entity_id"`
	AccountCode     string `db:"account_code"`
	AccountName     string `db:"account_name"`
	AccountType     string `db:"account_type"`
	ParentAccountID string `db:"parent_account_id"`
	Description     string `db:"description"`
	IsActive        bool   `db:"is_active"`
	AuditFields
}
