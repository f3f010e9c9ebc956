package accounting_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propledger/property_ledger_app/internal/core/domain"
	"github.com/propledger/property_ledger_app/internal/utils/accounting"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestValidateEntrySides(t *testing.T) {
	assert.NoError(t, accounting.ValidateEntrySides(d("100"), decimal.Zero))
	assert.NoError(t, accounting.ValidateEntrySides(decimal.Zero, d("0.01")))

	assert.Error(t, accounting.ValidateEntrySides(decimal.Zero, decimal.Zero))
	assert.Error(t, accounting.ValidateEntrySides(d("100"), d("100")))
	assert.Error(t, accounting.ValidateEntrySides(d("-5"), decimal.Zero))
}

func TestSumSides(t *testing.T) {
	entries := []domain.LedgerEntry{
		{DebitAmount: d("1200.00")},
		{CreditAmount: d("1150.00")},
		{CreditAmount: d("50.00")},
	}

	debits, credits := accounting.SumSides(entries)
	assert.True(t, debits.Equal(d("1200.00")))
	assert.True(t, credits.Equal(d("1200.00")))
}

func TestBankBalanceDeltas_OnlyLinkedAccountMoves(t *testing.T) {
	bankID := "bank-1"
	linked := map[string]string{bankID: "acct-cash"}

	// A payment pair: debit on the linked cash account, credit on revenue.
	entries := []domain.LedgerEntry{
		{BankLedgerID: bankID, ChartAccountID: "acct-cash", DebitAmount: d("1200.00")},
		{BankLedgerID: bankID, ChartAccountID: "acct-revenue", CreditAmount: d("1200.00")},
	}

	deltas := accounting.BankBalanceDeltas(entries, linked)
	require.Len(t, deltas, 1)
	assert.True(t, deltas[bankID].Equal(d("1200.00")))
}

func TestBankBalanceDeltas_UnlinkedLedgerIgnored(t *testing.T) {
	entries := []domain.LedgerEntry{
		{BankLedgerID: "bank-1", ChartAccountID: "acct-cash", DebitAmount: d("500.00")},
	}

	deltas := accounting.BankBalanceDeltas(entries, map[string]string{})
	assert.Empty(t, deltas)
}

func TestBankBalanceDeltas_ZeroNetDropped(t *testing.T) {
	bankID := "bank-1"
	linked := map[string]string{bankID: "acct-cash"}
	entries := []domain.LedgerEntry{
		{BankLedgerID: bankID, ChartAccountID: "acct-cash", DebitAmount: d("250.00")},
		{BankLedgerID: bankID, ChartAccountID: "acct-cash", CreditAmount: d("250.00")},
	}

	deltas := accounting.BankBalanceDeltas(entries, linked)
	assert.Empty(t, deltas)
}

func TestBankBalanceDeltas_MultipleLedgers(t *testing.T) {
	linked := map[string]string{
		"bank-1": "acct-checking",
		"bank-2": "acct-savings",
	}
	entries := []domain.LedgerEntry{
		{BankLedgerID: "bank-1", ChartAccountID: "acct-checking", DebitAmount: d("1000.00")},
		{BankLedgerID: "bank-1", ChartAccountID: "acct-revenue", CreditAmount: d("1000.00")},
		{BankLedgerID: "bank-2", ChartAccountID: "acct-savings", CreditAmount: d("300.00")},
		{BankLedgerID: "bank-2", ChartAccountID: "acct-revenue", DebitAmount: d("300.00")},
	}

	deltas := accounting.BankBalanceDeltas(entries, linked)
	require.Len(t, deltas, 2)
	assert.True(t, deltas["bank-1"].Equal(d("1000.00")))
	assert.True(t, deltas["bank-2"].Equal(d("-300.00")))
}
