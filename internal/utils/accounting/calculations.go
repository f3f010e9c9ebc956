package accounting

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/propledger/property_ledger_app/internal/core/domain"
)

// ValidateEntrySides checks that exactly one of debit/credit is set and that
// the set side is strictly positive.
func ValidateEntrySides(debit, credit decimal.Decimal) error {
	debitSet := !debit.IsZero()
	creditSet := !credit.IsZero()
	if debitSet == creditSet {
		return fmt.Errorf("exactly one of debitAmount and creditAmount must be non-zero")
	}
	if debit.IsNegative() || credit.IsNegative() {
		return fmt.Errorf("amounts must be positive")
	}
	return nil
}

// SumSides returns the total debits and total credits across a batch of
// ledger entries.
func SumSides(entries []domain.LedgerEntry) (debits, credits decimal.Decimal) {
	debits = decimal.Zero
	credits = decimal.Zero
	for _, e := range entries {
		debits = debits.Add(e.DebitAmount)
		credits = credits.Add(e.CreditAmount)
	}
	return debits, credits
}

// BankBalanceDeltas computes the net cash effect of a batch per bank ledger.
// Only entries posted against a bank ledger's own linked asset chart account
// move its cached balance; the categorization side of a pair does not.
// linkedChartAccount maps bankLedgerID -> its linked chart account ID.
func BankBalanceDeltas(entries []domain.LedgerEntry, linkedChartAccount map[string]string) map[string]decimal.Decimal {
	deltas := make(map[string]decimal.Decimal)
	for _, e := range entries {
		linked, ok := linkedChartAccount[e.BankLedgerID]
		if !ok || e.ChartAccountID != linked {
			continue
		}
		deltas[e.BankLedgerID] = deltas[e.BankLedgerID].Add(e.SignedAmount())
	}
	for id, d := range deltas {
		if d.IsZero() {
			delete(deltas, id)
		}
	}
	return deltas
}
