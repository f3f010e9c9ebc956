package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/propledger/property_ledger_app/internal/core/domain"
)

// CreateBankLedgerRequest defines the data needed to register a bank account.
type CreateBankLedgerRequest struct {
	AccountName     string                 `json:"accountName" binding:"required"`
	BankName        string                 `json:"bankName" binding:"required"`
	BankAccountType domain.BankAccountType `json:"bankAccountType" binding:"required,oneof=CHECKING SAVINGS"`
	AccountNumber   string                 `json:"accountNumber" binding:"required"`
	RoutingNumber   string                 `json:"routingNumber"`
	ChartAccountID  *string                `json:"chartAccountID"` // Optional asset account link, assignable later
}

// LinkChartAccountRequest assigns a bank ledger's asset chart account.
type LinkChartAccountRequest struct {
	ChartAccountID string `json:"chartAccountID" binding:"required"`
}

// BankLedgerResponse defines the data returned for a bank ledger.
type BankLedgerResponse struct {
	BankLedgerID    string                 `json:"bankLedgerID"`
	EntityID        string                 `json:"entityID"`
	AccountName     string                 `json:"accountName"`
	BankName        string                 `json:"bankName"`
	BankAccountType domain.BankAccountType `json:"bankAccountType"`
	AccountNumber   string                 `json:"accountNumber"`
	RoutingNumber   string                 `json:"routingNumber"`
	CurrentBalance  decimal.Decimal        `json:"currentBalance"`
	ChartAccount    *ChartAccountSummary   `json:"chartAccount,omitempty"`
	IsActive        bool                   `json:"isActive"`
	CreatedAt       time.Time              `json:"createdAt"`
}

// BankBalanceResponse is the read-only balance projection.
type BankBalanceResponse struct {
	BankLedgerID   string          `json:"bankLedgerID"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
}

// ListBankLedgersResponse wraps the bank ledger listing.
type ListBankLedgersResponse struct {
	BankLedgers []BankLedgerResponse `json:"bankLedgers"`
}

// ToBankLedgerResponse converts a domain bank ledger to its response DTO.
func ToBankLedgerResponse(b *domain.BankLedger) BankLedgerResponse {
	resp := BankLedgerResponse{
		BankLedgerID:    b.BankLedgerID,
		EntityID:        b.EntityID,
		AccountName:     b.AccountName,
		BankName:        b.BankName,
		BankAccountType: b.BankAccountType,
		AccountNumber:   b.AccountNumber,
		RoutingNumber:   b.RoutingNumber,
		CurrentBalance:  b.CurrentBalance,
		IsActive:        b.IsActive,
		CreatedAt:       b.CreatedAt,
	}
	if b.ChartAccount != nil {
		summary := ToChartAccountSummary(b.ChartAccount)
		resp.ChartAccount = &summary
	}
	return resp
}

// ToListBankLedgersResponse converts a slice of domain bank ledgers.
func ToListBankLedgersResponse(ledgers []domain.BankLedger) ListBankLedgersResponse {
	res := make([]BankLedgerResponse, len(ledgers))
	for i := range ledgers {
		res[i] = ToBankLedgerResponse(&ledgers[i])
	}
	return ListBankLedgersResponse{BankLedgers: res}
}
