package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/propledger/property_ledger_app/internal/core/domain"
)

func TestNumberFormats(t *testing.T) {
	at := time.Date(2024, 8, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "PAY-1722513600000", domain.NewPaymentNumber(at))
	assert.Equal(t, "CHK-1042-1722513600", domain.NewCheckPaymentNumber("1042", at))
	assert.Equal(t, "DEP-1722513600", domain.NewDepositSlipNumber(at))
}

func TestReceiptNumber(t *testing.T) {
	assert.Equal(t, "R-A1B2C3D4", domain.ReceiptNumber("a1b2c3d4-e5f6-7890"))
	assert.Equal(t, "R-ABC", domain.ReceiptNumber("abc"))
}

func TestMaskAccountNumber(t *testing.T) {
	assert.Equal(t, "****9012", domain.MaskAccountNumber("123456789012"))
	assert.Equal(t, "9012", domain.MaskAccountNumber("9012"))
	assert.Equal(t, "12", domain.MaskAccountNumber("12"))
}

func TestValidPaymentType(t *testing.T) {
	for _, pt := range domain.PaymentTypes {
		assert.True(t, domain.ValidPaymentType(pt))
	}
	assert.False(t, domain.ValidPaymentType(domain.PaymentType("IOU")))
}

func TestValidAccountType(t *testing.T) {
	assert.True(t, domain.ValidAccountType(domain.Asset))
	assert.True(t, domain.ValidAccountType(domain.Expense))
	assert.False(t, domain.ValidAccountType(domain.AccountType("INCOME")))
}
