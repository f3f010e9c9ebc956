package domain

// Entity is the legal owner that scopes all financial records. Entity CRUD
// is handled elsewhere; the ledger subsystem only verifies existence and
// scope ownership.
type Entity struct {
	EntityID string `json:"entityID"`
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
	AuditFields
}
