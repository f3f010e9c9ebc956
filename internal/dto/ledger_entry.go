package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/propledger/property_ledger_app/internal/core/domain"
)

// LedgerEntryInput is one entry specification within a posting batch.
// Amounts arrive as decimal strings; exactly one side must be non-zero.
type LedgerEntryInput struct {
	BankLedgerID    string          `json:"bankLedgerID" binding:"required"`
	ChartAccountID  string          `json:"chartAccountID" binding:"required"`
	EntryType       string          `json:"entryType" binding:"required,oneof=PAYMENT DEPOSIT"`
	Description     string          `json:"description"`
	DebitAmount     decimal.Decimal `json:"debitAmount"`
	CreditAmount    decimal.Decimal `json:"creditAmount"`
	TransactionDate string          `json:"transactionDate" binding:"required"` // ISO date, e.g. 2025-08-01
	ReferenceID     string          `json:"referenceID"`
	ReferenceNumber string          `json:"referenceNumber"`
}

// CreateLedgerEntriesRequest is one logical transaction: two or more entry
// specifications whose debits and credits must balance.
type CreateLedgerEntriesRequest struct {
	TransactionDescription string             `json:"transactionDescription"`
	Entries                []LedgerEntryInput `json:"entries" binding:"required,min=2,dive"`
}

// LedgerEntryResponse defines the data returned for a ledger entry.
type LedgerEntryResponse struct {
	LedgerEntryID   string                 `json:"ledgerEntryID"`
	BankLedgerID    string                 `json:"bankLedgerID"`
	ChartAccountID  string                 `json:"chartAccountID"`
	TransactionType domain.TransactionType `json:"transactionType"`
	Amount          decimal.Decimal        `json:"amount"`
	DebitAmount     decimal.Decimal        `json:"debitAmount"`
	CreditAmount    decimal.Decimal        `json:"creditAmount"`
	Description     string                 `json:"description"`
	TransactionDate time.Time              `json:"transactionDate"`
	EntryType       domain.EntryType       `json:"entryType"`
	ReferenceID     string                 `json:"referenceID,omitempty"`
	ReferenceNumber string                 `json:"referenceNumber,omitempty"`
	CreatedAt       time.Time              `json:"createdAt"`
}

// CreateLedgerEntriesResponse returns the persisted batch.
type CreateLedgerEntriesResponse struct {
	Entries []LedgerEntryResponse `json:"entries"`
}

// ListLedgerEntriesResponse wraps a bank ledger's entry listing.
type ListLedgerEntriesResponse struct {
	Entries []LedgerEntryResponse `json:"entries"`
}

// ToLedgerEntryResponse converts a domain ledger entry to its response DTO.
func ToLedgerEntryResponse(e *domain.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		LedgerEntryID:   e.LedgerEntryID,
		BankLedgerID:    e.BankLedgerID,
		ChartAccountID:  e.ChartAccountID,
		TransactionType: e.TransactionType,
		Amount:          e.Amount,
		DebitAmount:     e.DebitAmount,
		CreditAmount:    e.CreditAmount,
		Description:     e.Description,
		TransactionDate: e.TransactionDate,
		EntryType:       e.EntryType,
		ReferenceID:     e.ReferenceID,
		ReferenceNumber: e.ReferenceNumber,
		CreatedAt:       e.CreatedAt,
	}
}

// ToLedgerEntryResponses converts a slice of domain ledger entries.
func ToLedgerEntryResponses(entries []domain.LedgerEntry) []LedgerEntryResponse {
	res := make([]LedgerEntryResponse, len(entries))
	for i := range entries {
		res[i] = ToLedgerEntryResponse(&entries[i])
	}
	return res
}
