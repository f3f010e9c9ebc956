package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentType is the instrument a payment arrived by.
type PaymentType string

const (
	PaymentCheck        PaymentType = "CHECK"
	PaymentCash         PaymentType = "CASH"
	PaymentACH          PaymentType = "ACH"
	PaymentWire         PaymentType = "WIRE"
	PaymentCreditCard   PaymentType = "CREDIT_CARD"
	PaymentMoneyOrder   PaymentType = "MONEY_ORDER"
	PaymentBankTransfer PaymentType = "BANK_TRANSFER"
)

// PaymentTypes is the fixed payment-method vocabulary exposed to callers.
var PaymentTypes = []PaymentType{
	PaymentCheck,
	PaymentCash,
	PaymentACH,
	PaymentWire,
	PaymentCreditCard,
	PaymentMoneyOrder,
	PaymentBankTransfer,
}

// ValidPaymentType reports whether t is part of the payment vocabulary.
func ValidPaymentType(t PaymentType) bool {
	for _, known := range PaymentTypes {
		if t == known {
			return true
		}
	}
	return false
}

// PaymentMethod distinguishes manually recorded payments from
// processor-originated ones. This subsystem only records manual payments.
type PaymentMethod string

const (
	MethodManual PaymentMethod = "MANUAL"
)

// PaymentStatus is the lifecycle state of a payment.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
)

// ProcessingStatus tracks reconciliation against the bank.
type ProcessingStatus string

const (
	ProcessingPending ProcessingStatus = "PENDING"
	ProcessingCleared ProcessingStatus = "CLEARED"
)

// Payment is a receipt of funds into an entity. Payments are never deleted;
// a pre-recorded payment is completed in place when deposited.
type Payment struct {
	PaymentID        string           `json:"paymentID"` // Primary key (UUID)
	EntityID         string           `json:"entityID"`
	Amount           decimal.Decimal  `json:"amount"`
	PaymentType      PaymentType      `json:"paymentType"`
	PaymentMethod    PaymentMethod    `json:"paymentMethod"`
	Status           PaymentStatus    `json:"status"`
	ProcessingStatus ProcessingStatus `json:"processingStatus"`
	PaymentNumber    string           `json:"paymentNumber"`
	PaymentDate      time.Time        `json:"paymentDate"`
	ReceivedDate     time.Time        `json:"receivedDate"`
	PayerName        string           `json:"payerName"`
	PayerEmail       string           `json:"payerEmail"`
	ReferenceNumber  string           `json:"referenceNumber"`
	BankLedgerID     string           `json:"bankLedgerID"` // Nullable until deposited
	IsDeposited      bool             `json:"isDeposited"`
	DepositDate      *time.Time       `json:"depositDate,omitempty"`
	Memo             string           `json:"memo"`
	AuditFields
}

// PaymentApplication links a payment, fully or partially, to an invoice.
type PaymentApplication struct {
	PaymentApplicationID string          `json:"paymentApplicationID"` // Primary key (UUID)
	PaymentID            string          `json:"paymentID"`
	InvoiceID            string          `json:"invoiceID"`
	AppliedAmount        decimal.Decimal `json:"appliedAmount"`
	AppliedDate          time.Time       `json:"appliedDate"`
	Notes                string          `json:"notes"`
	AuditFields
}

// NewPaymentNumber generates the payment number for a directly recorded
// payment, e.g. PAY-1722520800000.
func NewPaymentNumber(now time.Time) string {
	return fmt.Sprintf("PAY-%d", now.UnixMilli())
}

// NewCheckPaymentNumber generates the payment number for a check within a
// deposit batch, e.g. CHK-1042-1722520800.
func NewCheckPaymentNumber(checkNumber string, now time.Time) string {
	return fmt.Sprintf("CHK-%s-%d", checkNumber, now.Unix())
}

// NewDepositSlipNumber generates the slip number for a check-deposit batch.
func NewDepositSlipNumber(now time.Time) string {
	return fmt.Sprintf("DEP-%d", now.Unix())
}

// ReceiptNumber derives the receipt number for a payment: "R-" followed by
// the first eight characters of the payment ID, uppercased.
func ReceiptNumber(paymentID string) string {
	id := paymentID
	if len(id) > 8 {
		id = id[:8]
	}
	return "R-" + strings.ToUpper(id)
}
