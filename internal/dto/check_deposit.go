package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckItem describes one check within a deposit batch.
type CheckItem struct {
	CheckNumber      string          `json:"checkNumber" binding:"required"`
	Amount           decimal.Decimal `json:"amount"`
	PayerName        string          `json:"payerName"`
	RevenueAccountID string          `json:"revenueAccountID" binding:"required"`
	InvoiceID        *string         `json:"invoiceID"`
	PaymentID        *string         `json:"paymentID"` // Complete an existing pre-recorded payment
	Description      string          `json:"description"`
}

// RecordCheckDepositRequest batches several checks into one bank deposit.
// TotalAmount must equal the sum of the individual check amounts.
type RecordCheckDepositRequest struct {
	BankLedgerID string          `json:"bankLedgerID" binding:"required"`
	DepositDate  string          `json:"depositDate" binding:"required"` // ISO date
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	Checks       []CheckItem     `json:"checks" binding:"required,min=1,dive"`
}

// DepositSummary describes the deposit slip for a completed batch.
type DepositSummary struct {
	SlipNumber  string          `json:"slipNumber"`
	DepositDate time.Time       `json:"depositDate"`
	TotalChecks int             `json:"totalChecks"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

// RecordCheckDepositResponse returns everything a deposit batch produced.
type RecordCheckDepositResponse struct {
	DepositSummary       DepositSummary        `json:"depositSummary"`
	Payments             []PaymentResponse     `json:"payments"`
	LedgerEntries        []LedgerEntryResponse `json:"ledgerEntries"`
	BankBalance          decimal.Decimal       `json:"bankBalance"`
	BankChartAccountUsed ChartAccountSummary   `json:"bankChartAccountUsed"`
}
