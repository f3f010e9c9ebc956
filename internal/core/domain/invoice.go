package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is the read-side view of an invoice that payments are applied to.
// Invoice lifecycle management lives outside this subsystem; we only look
// invoices up and guard payment applications against their outstanding
// balance.
type Invoice struct {
	InvoiceID     string            `json:"invoiceID"`
	EntityID      string            `json:"entityID"`
	InvoiceNumber string            `json:"invoiceNumber"`
	TotalAmount   decimal.Decimal   `json:"totalAmount"`
	Status        string            `json:"status"`
	DueDate       time.Time         `json:"dueDate"`
	LineItems     []InvoiceLineItem `json:"lineItems,omitempty"`
	AuditFields
}

// InvoiceLineItem is a single billed line on an invoice, surfaced on
// generated receipts.
type InvoiceLineItem struct {
	LineItemID  string          `json:"lineItemID"`
	InvoiceID   string          `json:"invoiceID"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}
