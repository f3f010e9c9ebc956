package services

import (
	portsrepo "github.com/propledger/property_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/propledger/property_ledger_app/internal/core/ports/services"
)

// NewServiceContainer wires all application services from the repository
// provider.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		ChartAccount: NewChartAccountService(repos.EntityRepo, repos.ChartAccountRepo, repos.LedgerEntryRepo),
		BankLedger:   NewBankLedgerService(repos.EntityRepo, repos.BankLedgerRepo, repos.ChartAccountRepo),
		LedgerEntry:  NewLedgerEntryService(repos.BankLedgerRepo, repos.ChartAccountRepo, repos.LedgerEntryRepo),
		Payment:      NewPaymentService(repos.EntityRepo, repos.BankLedgerRepo, repos.ChartAccountRepo, repos.PaymentRepo, repos.InvoiceRepo),
	}
}
