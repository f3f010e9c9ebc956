package mapping

import (
	"github.com/propledger/property_ledger_app/internal/core/domain"
	"github.com/propledger/property_ledger_app/internal/models"
)

// ToModelBankLedger converts a domain bank ledger to its model form.
func ToModelBankLedger(b domain.BankLedger) models.BankLedger {
	return models.BankLedger{
		BankLedgerID:    b.BankLedgerID,
		EntityID:        b.EntityID,
		AccountName:     b.AccountName,
		BankName:        b.BankName,
		BankAccountType: string(b.BankAccountType),
		AccountNumber:   b.AccountNumber,
		RoutingNumber:   b.RoutingNumber,
		CurrentBalance:  b.CurrentBalance,
		ChartAccountID:  b.ChartAccountID,
		IsActive:        b.IsActive,
		AuditFields:     ToModelAuditFields(b.AuditFields),
	}
}

// ToDomainBankLedger converts a model bank ledger to its domain form.
func ToDomainBankLedger(m models.BankLedger) domain.BankLedger {
	return domain.BankLedger{
		BankLedgerID:    m.BankLedgerID,
		EntityID:        m.EntityID,
		AccountName:     m.AccountName,
		BankName:        m.BankName,
		BankAccountType: domain.BankAccountType(m.BankAccountType),
		AccountNumber:   m.AccountNumber,
		RoutingNumber:   m.RoutingNumber,
		CurrentBalance:  m.CurrentBalance,
		ChartAccountID:  m.ChartAccountID,
		IsActive:        m.IsActive,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}
