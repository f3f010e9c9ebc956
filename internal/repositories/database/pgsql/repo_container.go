package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/propledger/property_ledger_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	entityRepo := newPgxEntityRepository(dbPool)
	chartAccountRepo := newPgxChartAccountRepository(dbPool)
	bankLedgerRepo := newPgxBankLedgerRepository(dbPool)
	ledgerEntryRepo := newPgxLedgerEntryRepository(dbPool, bankLedgerRepo)
	paymentRepo := newPgxPaymentRepository(dbPool, bankLedgerRepo, ledgerEntryRepo)
	invoiceRepo := newPgxInvoiceRepository(dbPool)

	return portsrepo.RepositoryProvider{
		EntityRepo:       entityRepo,
		ChartAccountRepo: chartAccountRepo,
		BankLedgerRepo:   bankLedgerRepo,
		LedgerEntryRepo:  ledgerEntryRepo,
		PaymentRepo:      paymentRepo,
		InvoiceRepo:      invoiceRepo,
	}
}
