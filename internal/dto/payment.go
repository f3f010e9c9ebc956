package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/propledger/property_ledger_app/internal/core/domain"
)

// RecordPaymentRequest records a single payment into a bank ledger,
// categorized against a revenue account. Either PaymentID references a
// pre-recorded payment to complete, or the payer/amount fields describe a
// new one.
type RecordPaymentRequest struct {
	BankLedgerID     string             `json:"bankLedgerID" binding:"required"`
	RevenueAccountID string             `json:"revenueAccountID" binding:"required"`
	PaymentID        *string            `json:"paymentID"` // Complete an existing payment instead of creating one
	InvoiceID        *string            `json:"invoiceID"`
	Amount           decimal.Decimal    `json:"amount"`
	PaymentType      domain.PaymentType `json:"paymentType" binding:"omitempty,oneof=CHECK CASH ACH WIRE CREDIT_CARD MONEY_ORDER BANK_TRANSFER"`
	PayerName        string             `json:"payerName"`
	PayerEmail       string             `json:"payerEmail" binding:"omitempty,email"`
	PaymentDate      string             `json:"paymentDate"` // ISO date, defaults to today
	ReferenceNumber  string             `json:"referenceNumber"`
	Notes            string             `json:"notes"`
}

// PaymentResponse defines the data returned for a payment.
type PaymentResponse struct {
	PaymentID        string                  `json:"paymentID"`
	EntityID         string                  `json:"entityID"`
	Amount           decimal.Decimal         `json:"amount"`
	PaymentType      domain.PaymentType      `json:"paymentType"`
	PaymentMethod    domain.PaymentMethod    `json:"paymentMethod"`
	Status           domain.PaymentStatus    `json:"status"`
	ProcessingStatus domain.ProcessingStatus `json:"processingStatus"`
	PaymentNumber    string                  `json:"paymentNumber"`
	PaymentDate      time.Time               `json:"paymentDate"`
	PayerName        string                  `json:"payerName"`
	PayerEmail       string                  `json:"payerEmail,omitempty"`
	ReferenceNumber  string                  `json:"referenceNumber,omitempty"`
	BankLedgerID     string                  `json:"bankLedgerID,omitempty"`
	IsDeposited      bool                    `json:"isDeposited"`
	DepositDate      *time.Time              `json:"depositDate,omitempty"`
	Memo             string                  `json:"memo,omitempty"`
	CreatedAt        time.Time               `json:"createdAt"`
}

// RecordPaymentResponse is the result of recording one payment: the payment,
// the balanced entry pair, the bank's new balance and the asset account the
// debit landed on.
type RecordPaymentResponse struct {
	Payment              PaymentResponse       `json:"payment"`
	LedgerEntries        []LedgerEntryResponse `json:"ledgerEntries"`
	BankBalance          decimal.Decimal       `json:"bankBalance"`
	BankChartAccountUsed ChartAccountSummary   `json:"bankChartAccountUsed"`
}

// PaymentBatchItem pairs an existing payment with the revenue account it
// should be categorized under.
type PaymentBatchItem struct {
	PaymentID        string `json:"paymentID" binding:"required"`
	RevenueAccountID string `json:"revenueAccountID" binding:"required"`
}

// RecordPaymentBatchRequest posts a batch of pre-recorded payments into one
// bank ledger.
type RecordPaymentBatchRequest struct {
	BankLedgerID string             `json:"bankLedgerID" binding:"required"`
	DepositDate  string             `json:"depositDate"` // ISO date, defaults to today
	Items        []PaymentBatchItem `json:"items" binding:"required,min=1,dive"`
}

// RecordPaymentBatchResponse returns everything the batch posted.
type RecordPaymentBatchResponse struct {
	Payments             []PaymentResponse     `json:"payments"`
	LedgerEntries        []LedgerEntryResponse `json:"ledgerEntries"`
	BankBalance          decimal.Decimal       `json:"bankBalance"`
	BankChartAccountUsed ChartAccountSummary   `json:"bankChartAccountUsed"`
}

// ListUnreconciledParams filters the unreconciled payment listing.
type ListUnreconciledParams struct {
	BankLedgerID  string `form:"bankLedgerID"`
	StartDate     string `form:"startDate"` // ISO date
	EndDate       string `form:"endDate"`   // ISO date
	PaymentMethod string `form:"paymentMethod"`
}

// UnreconciledPaymentsResponse lists payments not yet cleared against the
// bank, plus their aggregate amount.
type UnreconciledPaymentsResponse struct {
	Payments    []PaymentResponse `json:"payments"`
	TotalAmount decimal.Decimal   `json:"totalAmount"`
}

// ReconcilePaymentRequest marks a payment cleared.
type ReconcilePaymentRequest struct {
	Memo *string `json:"memo"`
}

// PaymentMethodsResponse is the fixed payment-method vocabulary.
type PaymentMethodsResponse struct {
	Methods []domain.PaymentType `json:"methods"`
}

// RevenueAccountsResponse lists the active revenue accounts of an entity.
type RevenueAccountsResponse struct {
	Accounts []ChartAccountResponse `json:"accounts"`
}

// ToPaymentResponse converts a domain payment to its response DTO.
func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:        p.PaymentID,
		EntityID:         p.EntityID,
		Amount:           p.Amount,
		PaymentType:      p.PaymentType,
		PaymentMethod:    p.PaymentMethod,
		Status:           p.Status,
		ProcessingStatus: p.ProcessingStatus,
		PaymentNumber:    p.PaymentNumber,
		PaymentDate:      p.PaymentDate,
		PayerName:        p.PayerName,
		PayerEmail:       p.PayerEmail,
		ReferenceNumber:  p.ReferenceNumber,
		BankLedgerID:     p.BankLedgerID,
		IsDeposited:      p.IsDeposited,
		DepositDate:      p.DepositDate,
		Memo:             p.Memo,
		CreatedAt:        p.CreatedAt,
	}
}

// ToPaymentResponses converts a slice of domain payments.
func ToPaymentResponses(payments []domain.Payment) []PaymentResponse {
	res := make([]PaymentResponse, len(payments))
	for i := range payments {
		res[i] = ToPaymentResponse(&payments[i])
	}
	return res
}
