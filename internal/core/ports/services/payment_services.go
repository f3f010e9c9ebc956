package services

import (
	"context"

	"github.com/propledger/property_ledger_app/internal/core/domain"
	"github.com/propledger/property_ledger_app/internal/dto"
)

// PaymentSvcFacade orchestrates the higher-level payment transactions:
// single payments, check-deposit batches, payment batches, reconciliation
// marking and receipt generation.
type PaymentSvcFacade interface {
	RecordPayment(ctx context.Context, entityID string, req dto.RecordPaymentRequest, userID string) (*dto.RecordPaymentResponse, error)

	RecordCheckDeposit(ctx context.Context, entityID string, req dto.RecordCheckDepositRequest, userID string) (*dto.RecordCheckDepositResponse, error)

	RecordPaymentBatch(ctx context.Context, entityID string, req dto.RecordPaymentBatchRequest, userID string) (*dto.RecordPaymentBatchResponse, error)

	// GetUnreconciledPayments lists payments that have not cleared the bank
	// yet, narrowed by the given filters, with their aggregate amount.
	GetUnreconciledPayments(ctx context.Context, entityID string, params dto.ListUnreconciledParams) (*dto.UnreconciledPaymentsResponse, error)

	// ReconcilePayment marks a payment cleared and updates its memo.
	ReconcilePayment(ctx context.Context, entityID string, paymentID string, req dto.ReconcilePaymentRequest, userID string) (*domain.Payment, error)

	// GenerateReceipt builds the receipt projection for a payment without
	// persisting anything.
	GenerateReceipt(ctx context.Context, entityID string, paymentID string, req dto.GenerateReceiptRequest) (*dto.ReceiptResponse, error)

	// GetPaymentMethods returns the fixed payment-method vocabulary.
	GetPaymentMethods() []domain.PaymentType

	// GetRevenueAccounts returns the entity's active REVENUE accounts.
	GetRevenueAccounts(ctx context.Context, entityID string) ([]domain.ChartAccount, error)
}
