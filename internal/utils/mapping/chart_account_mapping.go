package mapping

import (
	"github.com/propledger/property_ledger_app/internal/core/domain"
	"github.com/propledger/property_ledger_app/internal/models"
)

// ToModelChartAccount converts a domain chart account to its model form.
func ToModelChartAccount(a domain.ChartAccount) models.ChartAccount {
	return models.ChartAccount{
		ChartAccountID:  a.ChartAccountID,
		EntityID:        a.EntityID,
		AccountCode:     a.AccountCode,
		AccountName:     a.AccountName,
		AccountType:     string(a.AccountType),
		ParentAccountID: a.ParentAccountID,
		Description:     a.Description,
		IsActive:        a.IsActive,
		AuditFields:     ToModelAuditFields(a.AuditFields),
	}
}

// ToDomainChartAccount converts a model chart account to its domain form.
func ToDomainChartAccount(m models.ChartAccount) domain.ChartAccount {
	return domain.ChartAccount{
		ChartAccountID:  m.ChartAccountID,
		EntityID:        m.EntityID,
		AccountCode:     m.AccountCode,
		AccountName:     m.AccountName,
		AccountType:     domain.AccountType(m.AccountType),
		ParentAccountID: m.ParentAccountID,
		Description:     m.Description,
		IsActive:        m.IsActive,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}
