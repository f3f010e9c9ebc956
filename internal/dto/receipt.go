package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/propledger/property_ledger_app/internal/core/domain"
)

// GenerateReceiptRequest customizes a generated receipt.
type GenerateReceiptRequest struct {
	Notes string `json:"notes"`
}

// ReceiptLineItem is one billed line surfaced on a receipt.
type ReceiptLineItem struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// ReceiptResponse is the receipt projection for a payment. Receipts are
// derived on demand and never persisted.
type ReceiptResponse struct {
	ReceiptNumber   string               `json:"receiptNumber"`
	PaymentID       string               `json:"paymentID"`
	PaymentNumber   string               `json:"paymentNumber"`
	PaymentDate     time.Time            `json:"paymentDate"`
	Amount          decimal.Decimal      `json:"amount"`
	PaymentType     domain.PaymentType   `json:"paymentType"`
	PayerName       string               `json:"payerName"`
	PayerEmail      string               `json:"payerEmail,omitempty"`
	ReferenceNumber string               `json:"referenceNumber,omitempty"`
	InvoiceNumber   string               `json:"invoiceNumber,omitempty"`
	LineItems       []ReceiptLineItem    `json:"lineItems,omitempty"`
	Notes           string               `json:"notes,omitempty"`
	GeneratedAt     time.Time            `json:"generatedAt"`
}
