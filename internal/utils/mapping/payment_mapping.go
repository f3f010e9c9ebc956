package mapping

import (
	"github.com/propledger/property_ledger_app/internal/core/domain"
	"github.com/propledger/property_ledger_app/internal/models"
)

// ToModelPayment converts a domain payment to its model form.
func ToModelPayment(p domain.Payment) models.Payment {
	return models.Payment{
		PaymentID:        p.PaymentID,
		EntityID:         p.EntityID,
		Amount:           p.Amount,
		PaymentType:      string(p.PaymentType),
		PaymentMethod:    string(p.PaymentMethod),
		Status:           string(p.Status),
		ProcessingStatus: string(p.ProcessingStatus),
		PaymentNumber:    p.PaymentNumber,
		PaymentDate:      p.PaymentDate,
		ReceivedDate:     p.ReceivedDate,
		PayerName:        p.PayerName,
		PayerEmail:       p.PayerEmail,
		ReferenceNumber:  p.ReferenceNumber,
		BankLedgerID:     p.BankLedgerID,
		IsDeposited:      p.IsDeposited,
		DepositDate:      p.DepositDate,
		Memo:             p.Memo,
		AuditFields:      ToModelAuditFields(p.AuditFields),
	}
}

// ToDomainPayment converts a model payment to its domain form.
func ToDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID:        m.PaymentID,
		EntityID:         m.EntityID,
		Amount:           m.Amount,
		PaymentType:      domain.PaymentType(m.PaymentType),
		PaymentMethod:    domain.PaymentMethod(m.PaymentMethod),
		Status:           domain.PaymentStatus(m.Status),
		ProcessingStatus: domain.ProcessingStatus(m.ProcessingStatus),
		PaymentNumber:    m.PaymentNumber,
		PaymentDate:      m.PaymentDate,
		ReceivedDate:     m.ReceivedDate,
		PayerName:        m.PayerName,
		PayerEmail:       m.PayerEmail,
		ReferenceNumber:  m.ReferenceNumber,
		BankLedgerID:     m.BankLedgerID,
		IsDeposited:      m.IsDeposited,
		DepositDate:      m.DepositDate,
		Memo:             m.Memo,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelPaymentApplication converts a domain payment application to its model form.
func ToModelPaymentApplication(a domain.PaymentApplication) models.PaymentApplication {
	return models.PaymentApplication{
		PaymentApplicationID: a.PaymentApplicationID,
		PaymentID:            a.PaymentID,
		InvoiceID:            a.InvoiceID,
		AppliedAmount:        a.AppliedAmount,
		AppliedDate:          a.AppliedDate,
		Notes:                a.Notes,
		AuditFields:          ToModelAuditFields(a.AuditFields),
	}
}

// ToDomainPaymentApplication converts a model payment application to its domain form.
func ToDomainPaymentApplication(m models.PaymentApplication) domain.PaymentApplication {
	return domain.PaymentApplication{
		PaymentApplicationID: m.PaymentApplicationID,
		PaymentID:            m.PaymentID,
		InvoiceID:            m.InvoiceID,
		AppliedAmount:        m.AppliedAmount,
		AppliedDate:          m.AppliedDate,
		Notes:                m.Notes,
		AuditFields:          ToDomainAuditFields(m.AuditFields),
	}
}
