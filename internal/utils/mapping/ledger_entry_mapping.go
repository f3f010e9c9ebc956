package mapping

import (
	"github.com/propledger/property_ledger_app/internal/core/domain"
	"github.com/propledger/property_ledger_app/internal/models"
)

// ToModelLedgerEntry converts a domain ledger entry to its model form.
func ToModelLedgerEntry(e domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		LedgerEntryID:   e.LedgerEntryID,
		EntityID:        e.EntityID,
		BankLedgerID:    e.BankLedgerID,
		ChartAccountID:  e.ChartAccountID,
		TransactionType: string(e.TransactionType),
		Amount:          e.Amount,
		DebitAmount:     e.DebitAmount,
		CreditAmount:    e.CreditAmount,
		Description:     e.Description,
		TransactionDate: e.TransactionDate,
		EntryType:       string(e.EntryType),
		ReferenceID:     e.ReferenceID,
		ReferenceNumber: e.ReferenceNumber,
		AuditFields:     ToModelAuditFields(e.AuditFields),
	}
}

// ToDomainLedgerEntry converts a model ledger entry to its domain form.
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		LedgerEntryID:   m.LedgerEntryID,
		EntityID:        m.EntityID,
		BankLedgerID:    m.BankLedgerID,
		ChartAccountID:  m.ChartAccountID,
		TransactionType: domain.TransactionType(m.TransactionType),
		Amount:          m.Amount,
		DebitAmount:     m.DebitAmount,
		CreditAmount:    m.CreditAmount,
		Description:     m.Description,
		TransactionDate: m.TransactionDate,
		EntryType:       domain.EntryType(m.EntryType),
		ReferenceID:     m.ReferenceID,
		ReferenceNumber: m.ReferenceNumber,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}
