package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/propledger/property_ledger_app/internal/apperrors"
	"github.com/propledger/property_ledger_app/internal/core/domain"
	portsrepo "github.com/propledger/property_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/propledger/property_ledger_app/internal/core/ports/services"
	"github.com/propledger/property_ledger_app/internal/dto"
	"github.com/propledger/property_ledger_app/internal/middleware"
	"github.com/propledger/property_ledger_app/internal/utils/accounting"
)

// paymentService implements the payment integration flows. Every flow that
// moves money builds one posting batch (payment writes, invoice
// applications, ledger entries, balance deltas) and hands it to the payment
// repository, which applies it in a single database transaction.
type paymentService struct {
	entityRepo  portsrepo.EntityReader
	bankRepo    portsrepo.BankLedgerRepositoryFacade
	accountRepo portsrepo.ChartAccountRepositoryFacade
	paymentRepo portsrepo.PaymentRepositoryFacade
	invoiceRepo portsrepo.InvoiceReader
}

// NewPaymentService creates a new payment service.
func NewPaymentService(
	entityRepo portsrepo.EntityReader,
	bankRepo portsrepo.BankLedgerRepositoryFacade,
	accountRepo portsrepo.ChartAccountRepositoryFacade,
	paymentRepo portsrepo.PaymentRepositoryFacade,
	invoiceRepo portsrepo.InvoiceReader,
) portssvc.PaymentSvcFacade {
	return &paymentService{
		entityRepo:  entityRepo,
		bankRepo:    bankRepo,
		accountRepo: accountRepo,
		paymentRepo: paymentRepo,
		invoiceRepo: invoiceRepo,
	}
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

// postingTarget is a bank ledger resolved and validated for posting.
type postingTarget struct {
	ledger       *domain.BankLedger
	chartAccount *domain.ChartAccount
}

// resolvePostingTarget loads the bank ledger and enforces everything a
// posting requires: entity scope, active flag and an asset account link.
func (s *paymentService) resolvePostingTarget(ctx context.Context, entityID, bankLedgerID string) (*postingTarget, error) {
	ledger, err := s.bankRepo.FindBankLedgerByID(ctx, bankLedgerID)
	if err != nil {
		return nil, fmt.Errorf("bank ledger %s: %w", bankLedgerID, err)
	}
	if ledger.EntityID != entityID {
		return nil, fmt.Errorf("bank ledger %s: %w", bankLedgerID, apperrors.ErrNotFound)
	}
	if !ledger.IsActive {
		return nil, fmt.Errorf("%w: bank ledger %s is inactive", apperrors.ErrValidation, bankLedgerID)
	}
	if !ledger.IsLinked() || ledger.ChartAccount == nil {
		return nil, fmt.Errorf("%w: bank ledger %s has no linked asset account; link one before recording payments", apperrors.ErrValidation, bankLedgerID)
	}
	return &postingTarget{ledger: ledger, chartAccount: ledger.ChartAccount}, nil
}

// resolveRevenueAccount enforces that an account is an active REVENUE
// account within the entity.
func (s *paymentService) resolveRevenueAccount(ctx context.Context, entityID, chartAccountID string) (*domain.ChartAccount, error) {
	account, err := s.accountRepo.FindChartAccountByID(ctx, chartAccountID)
	if err != nil {
		return nil, fmt.Errorf("revenue account %s: %w", chartAccountID, err)
	}
	if account.EntityID != entityID {
		return nil, fmt.Errorf("revenue account %s: %w", chartAccountID, apperrors.ErrNotFound)
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: revenue account %s is inactive", apperrors.ErrValidation, chartAccountID)
	}
	if account.AccountType != domain.Revenue {
		return nil, fmt.Errorf("%w: account %s is %s, payments must be categorized under a REVENUE account", apperrors.ErrValidation, chartAccountID, account.AccountType)
	}
	return account, nil
}

// resolveDepositablePayment loads a pre-recorded payment and verifies it can
// still be deposited.
func (s *paymentService) resolveDepositablePayment(ctx context.Context, entityID, paymentID string) (*domain.Payment, error) {
	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("payment %s: %w", paymentID, err)
	}
	if payment.EntityID != entityID {
		return nil, fmt.Errorf("payment %s: %w", paymentID, apperrors.ErrNotFound)
	}
	if payment.IsDeposited || payment.Status == domain.PaymentCompleted {
		return nil, fmt.Errorf("%w: payment %s is already deposited", apperrors.ErrConflict, paymentID)
	}
	return payment, nil
}

// validateInvoiceScope confirms the invoice exists and belongs to the
// entity. The outstanding-balance guard runs later, inside the posting
// transaction.
func (s *paymentService) validateInvoiceScope(ctx context.Context, entityID, invoiceID string) error {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return fmt.Errorf("invoice %s: %w", invoiceID, err)
	}
	if invoice.EntityID != entityID {
		return fmt.Errorf("invoice %s: %w", invoiceID, apperrors.ErrNotFound)
	}
	return nil
}

func newApplication(paymentID, invoiceID string, amount decimal.Decimal, appliedDate time.Time, userID string, now time.Time) *domain.PaymentApplication {
	return &domain.PaymentApplication{
		PaymentApplicationID: uuid.NewString(),
		PaymentID:            paymentID,
		InvoiceID:            invoiceID,
		AppliedAmount:        amount,
		AppliedDate:          appliedDate,
		AuditFields:          domain.NewAuditFields(userID, now),
	}
}

func (s *paymentService) RecordPayment(ctx context.Context, entityID string, req dto.RecordPaymentRequest, userID string) (*dto.RecordPaymentResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.entityRepo.FindEntityByID(ctx, entityID); err != nil {
		return nil, fmt.Errorf("entity %s: %w", entityID, err)
	}

	target, err := s.resolvePostingTarget(ctx, entityID, req.BankLedgerID)
	if err != nil {
		return nil, err
	}
	if _, err := s.resolveRevenueAccount(ctx, entityID, req.RevenueAccountID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	paymentDate, err := parseISODate(req.PaymentDate, now)
	if err != nil {
		return nil, err
	}

	var payment *domain.Payment
	isUpdate := false
	if req.PaymentID != nil && *req.PaymentID != "" {
		payment, err = s.resolveDepositablePayment(ctx, entityID, *req.PaymentID)
		if err != nil {
			return nil, err
		}
		isUpdate = true
		payment.Status = domain.PaymentCompleted
		payment.BankLedgerID = req.BankLedgerID
		payment.IsDeposited = true
		payment.DepositDate = &paymentDate
		if req.Notes != "" {
			payment.Memo = req.Notes
		}
		payment.Touch(userID, now)
	} else {
		if !req.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
		}
		if !domain.ValidPaymentType(req.PaymentType) {
			return nil, fmt.Errorf("%w: unknown payment type %q", apperrors.ErrValidation, req.PaymentType)
		}
		payment = &domain.Payment{
			PaymentID:        uuid.NewString(),
			EntityID:         entityID,
			Amount:           req.Amount,
			PaymentType:      req.PaymentType,
			PaymentMethod:    domain.MethodManual,
			Status:           domain.PaymentCompleted,
			ProcessingStatus: domain.ProcessingPending,
			PaymentNumber:    domain.NewPaymentNumber(now),
			PaymentDate:      paymentDate,
			ReceivedDate:     now,
			PayerName:        req.PayerName,
			PayerEmail:       req.PayerEmail,
			ReferenceNumber:  req.ReferenceNumber,
			BankLedgerID:     req.BankLedgerID,
			IsDeposited:      true,
			DepositDate:      &paymentDate,
			Memo:             req.Notes,
			AuditFields:      domain.NewAuditFields(userID, now),
		}
	}

	write := portsrepo.PaymentWrite{Payment: *payment, IsUpdate: isUpdate}
	if req.InvoiceID != nil && *req.InvoiceID != "" {
		if err := s.validateInvoiceScope(ctx, entityID, *req.InvoiceID); err != nil {
			return nil, err
		}
		write.Application = newApplication(payment.PaymentID, *req.InvoiceID, payment.Amount, paymentDate, userID, now)
	}

	description := fmt.Sprintf("Payment %s received from %s", payment.PaymentNumber, payment.PayerName)
	entries := pairForPayment(entityID, target.ledger.BankLedgerID, target.chartAccount.ChartAccountID, req.RevenueAccountID,
		payment.Amount, domain.EntryPayment, description, paymentDate, payment.PaymentID, payment.PaymentNumber, userID, now)

	linked := map[string]string{target.ledger.BankLedgerID: target.chartAccount.ChartAccountID}
	deltas := accounting.BankBalanceDeltas(entries, linked)

	if err := s.paymentRepo.SavePaymentBatch(ctx, []portsrepo.PaymentWrite{write}, entries, deltas); err != nil {
		logger.Error("Failed to record payment", slog.String("error", err.Error()), slog.String("entity_id", entityID))
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	logger.Info("Payment recorded",
		slog.String("payment_id", payment.PaymentID),
		slog.String("payment_number", payment.PaymentNumber),
		slog.String("bank_ledger_id", target.ledger.BankLedgerID))

	balance, err := s.freshBalance(ctx, target.ledger.BankLedgerID)
	if err != nil {
		return nil, err
	}
	return &dto.RecordPaymentResponse{
		Payment:              dto.ToPaymentResponse(payment),
		LedgerEntries:        dto.ToLedgerEntryResponses(entries),
		BankBalance:          balance,
		BankChartAccountUsed: dto.ToChartAccountSummary(target.chartAccount),
	}, nil
}

func (s *paymentService) RecordCheckDeposit(ctx context.Context, entityID string, req dto.RecordCheckDepositRequest, userID string) (*dto.RecordCheckDepositResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.entityRepo.FindEntityByID(ctx, entityID); err != nil {
		return nil, fmt.Errorf("entity %s: %w", entityID, err)
	}

	target, err := s.resolvePostingTarget(ctx, entityID, req.BankLedgerID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	depositDate, err := parseISODate(req.DepositDate, now)
	if err != nil {
		return nil, err
	}

	// Nothing is written until every check validates; a bad total or a bad
	// check leaves the database untouched.
	writes := make([]portsrepo.PaymentWrite, 0, len(req.Checks))
	payments := make([]domain.Payment, 0, len(req.Checks))
	entries := make([]domain.LedgerEntry, 0, 2*len(req.Checks))
	slipNumber := domain.NewDepositSlipNumber(now)
	runningTotal := decimal.Zero

	for _, check := range req.Checks {
		revenueAccount, err := s.resolveRevenueAccount(ctx, entityID, check.RevenueAccountID)
		if err != nil {
			return nil, fmt.Errorf("check %s: %w", check.CheckNumber, err)
		}

		var payment *domain.Payment
		isUpdate := false
		if check.PaymentID != nil && *check.PaymentID != "" {
			payment, err = s.resolveDepositablePayment(ctx, entityID, *check.PaymentID)
			if err != nil {
				return nil, fmt.Errorf("check %s: %w", check.CheckNumber, err)
			}
			if !check.Amount.IsZero() && !check.Amount.Equal(payment.Amount) {
				return nil, fmt.Errorf("%w: check %s amount %s does not match pre-recorded payment amount %s", apperrors.ErrValidation, check.CheckNumber, check.Amount.String(), payment.Amount.String())
			}
			isUpdate = true
			payment.Status = domain.PaymentCompleted
			payment.BankLedgerID = req.BankLedgerID
			payment.IsDeposited = true
			payment.DepositDate = &depositDate
			payment.Touch(userID, now)
		} else {
			if !check.Amount.IsPositive() {
				return nil, fmt.Errorf("%w: check %s amount must be positive", apperrors.ErrValidation, check.CheckNumber)
			}
			payment = &domain.Payment{
				PaymentID:        uuid.NewString(),
				EntityID:         entityID,
				Amount:           check.Amount,
				PaymentType:      domain.PaymentCheck,
				PaymentMethod:    domain.MethodManual,
				Status:           domain.PaymentCompleted,
				ProcessingStatus: domain.ProcessingPending,
				PaymentNumber:    domain.NewCheckPaymentNumber(check.CheckNumber, now),
				PaymentDate:      depositDate,
				ReceivedDate:     now,
				PayerName:        check.PayerName,
				ReferenceNumber:  check.CheckNumber,
				BankLedgerID:     req.BankLedgerID,
				IsDeposited:      true,
				DepositDate:      &depositDate,
				Memo:             check.Description,
				AuditFields:      domain.NewAuditFields(userID, now),
			}
		}

		write := portsrepo.PaymentWrite{Payment: *payment, IsUpdate: isUpdate}
		if check.InvoiceID != nil && *check.InvoiceID != "" {
			if err := s.validateInvoiceScope(ctx, entityID, *check.InvoiceID); err != nil {
				return nil, fmt.Errorf("check %s: %w", check.CheckNumber, err)
			}
			write.Application = newApplication(payment.PaymentID, *check.InvoiceID, payment.Amount, depositDate, userID, now)
		}

		description := check.Description
		if description == "" {
			description = fmt.Sprintf("Check %s deposit %s from %s", check.CheckNumber, slipNumber, payment.PayerName)
		}
		entries = append(entries, pairForPayment(entityID, target.ledger.BankLedgerID, target.chartAccount.ChartAccountID, revenueAccount.ChartAccountID,
			payment.Amount, domain.EntryDeposit, description, depositDate, payment.PaymentID, payment.PaymentNumber, userID, now)...)

		writes = append(writes, write)
		payments = append(payments, *payment)
		runningTotal = runningTotal.Add(payment.Amount)
	}

	if !req.TotalAmount.Equal(runningTotal) {
		return nil, fmt.Errorf("%w: declared deposit total %s does not match sum of checks %s", apperrors.ErrValidation, req.TotalAmount.String(), runningTotal.String())
	}

	linked := map[string]string{target.ledger.BankLedgerID: target.chartAccount.ChartAccountID}
	deltas := accounting.BankBalanceDeltas(entries, linked)

	if err := s.paymentRepo.SavePaymentBatch(ctx, writes, entries, deltas); err != nil {
		logger.Error("Failed to record check deposit", slog.String("error", err.Error()), slog.String("entity_id", entityID), slog.String("slip_number", slipNumber))
		return nil, fmt.Errorf("failed to record check deposit: %w", err)
	}

	logger.Info("Check deposit recorded",
		slog.String("slip_number", slipNumber),
		slog.Int("check_count", len(payments)),
		slog.String("total_amount", runningTotal.String()))

	balance, err := s.freshBalance(ctx, target.ledger.BankLedgerID)
	if err != nil {
		return nil, err
	}
	return &dto.RecordCheckDepositResponse{
		DepositSummary: dto.DepositSummary{
			SlipNumber:  slipNumber,
			DepositDate: depositDate,
			TotalChecks: len(payments),
			TotalAmount: runningTotal,
		},
		Payments:             dto.ToPaymentResponses(payments),
		LedgerEntries:        dto.ToLedgerEntryResponses(entries),
		BankBalance:          balance,
		BankChartAccountUsed: dto.ToChartAccountSummary(target.chartAccount),
	}, nil
}

func (s *paymentService) RecordPaymentBatch(ctx context.Context, entityID string, req dto.RecordPaymentBatchRequest, userID string) (*dto.RecordPaymentBatchResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.entityRepo.FindEntityByID(ctx, entityID); err != nil {
		return nil, fmt.Errorf("entity %s: %w", entityID, err)
	}

	target, err := s.resolvePostingTarget(ctx, entityID, req.BankLedgerID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	depositDate, err := parseISODate(req.DepositDate, now)
	if err != nil {
		return nil, err
	}

	writes := make([]portsrepo.PaymentWrite, 0, len(req.Items))
	payments := make([]domain.Payment, 0, len(req.Items))
	entries := make([]domain.LedgerEntry, 0, 2*len(req.Items))
	seen := make(map[string]struct{}, len(req.Items))

	for i, item := range req.Items {
		if _, dup := seen[item.PaymentID]; dup {
			return nil, fmt.Errorf("%w: payment %s appears twice in the batch", apperrors.ErrValidation, item.PaymentID)
		}
		seen[item.PaymentID] = struct{}{}

		revenueAccount, err := s.resolveRevenueAccount(ctx, entityID, item.RevenueAccountID)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		payment, err := s.resolveDepositablePayment(ctx, entityID, item.PaymentID)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}

		payment.Status = domain.PaymentCompleted
		payment.BankLedgerID = req.BankLedgerID
		payment.IsDeposited = true
		payment.DepositDate = &depositDate
		payment.Touch(userID, now)

		description := fmt.Sprintf("Batch deposit of payment %s from %s", payment.PaymentNumber, payment.PayerName)
		entries = append(entries, pairForPayment(entityID, target.ledger.BankLedgerID, target.chartAccount.ChartAccountID, revenueAccount.ChartAccountID,
			payment.Amount, domain.EntryDeposit, description, depositDate, payment.PaymentID, payment.PaymentNumber, userID, now)...)

		writes = append(writes, portsrepo.PaymentWrite{Payment: *payment, IsUpdate: true})
		payments = append(payments, *payment)
	}

	linked := map[string]string{target.ledger.BankLedgerID: target.chartAccount.ChartAccountID}
	deltas := accounting.BankBalanceDeltas(entries, linked)

	if err := s.paymentRepo.SavePaymentBatch(ctx, writes, entries, deltas); err != nil {
		logger.Error("Failed to record payment batch", slog.String("error", err.Error()), slog.String("entity_id", entityID))
		return nil, fmt.Errorf("failed to record payment batch: %w", err)
	}

	logger.Info("Payment batch recorded",
		slog.Int("payment_count", len(payments)),
		slog.String("bank_ledger_id", target.ledger.BankLedgerID))

	balance, err := s.freshBalance(ctx, target.ledger.BankLedgerID)
	if err != nil {
		return nil, err
	}
	return &dto.RecordPaymentBatchResponse{
		Payments:             dto.ToPaymentResponses(payments),
		LedgerEntries:        dto.ToLedgerEntryResponses(entries),
		BankBalance:          balance,
		BankChartAccountUsed: dto.ToChartAccountSummary(target.chartAccount),
	}, nil
}

func (s *paymentService) GetUnreconciledPayments(ctx context.Context, entityID string, params dto.ListUnreconciledParams) (*dto.UnreconciledPaymentsResponse, error) {
	filters := portsrepo.ListPaymentsFilters{
		BankLedgerID:     params.BankLedgerID,
		OnlyUnreconciled: true,
	}
	if params.StartDate != "" {
		start, err := parseISODate(params.StartDate, time.Time{})
		if err != nil {
			return nil, err
		}
		filters.StartDate = &start
	}
	if params.EndDate != "" {
		end, err := parseISODate(params.EndDate, time.Time{})
		if err != nil {
			return nil, err
		}
		filters.EndDate = &end
	}
	if params.PaymentMethod != "" {
		pt := domain.PaymentType(params.PaymentMethod)
		if !domain.ValidPaymentType(pt) {
			return nil, fmt.Errorf("%w: unknown payment method %q", apperrors.ErrValidation, params.PaymentMethod)
		}
		filters.PaymentType = pt
	}

	payments, err := s.paymentRepo.ListPayments(ctx, entityID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list unreconciled payments: %w", err)
	}

	total := decimal.Zero
	for i := range payments {
		total = total.Add(payments[i].Amount)
	}
	return &dto.UnreconciledPaymentsResponse{
		Payments:    dto.ToPaymentResponses(payments),
		TotalAmount: total,
	}, nil
}

func (s *paymentService) ReconcilePayment(ctx context.Context, entityID string, paymentID string, req dto.ReconcilePaymentRequest, userID string) (*domain.Payment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("payment %s: %w", paymentID, err)
	}
	if payment.EntityID != entityID {
		// Obscure existence of payments outside the caller's entity.
		return nil, fmt.Errorf("payment %s: %w", paymentID, apperrors.ErrNotFound)
	}
	if payment.ProcessingStatus == domain.ProcessingCleared {
		return nil, fmt.Errorf("%w: payment %s is already reconciled", apperrors.ErrConflict, paymentID)
	}

	payment.ProcessingStatus = domain.ProcessingCleared
	if req.Memo != nil {
		payment.Memo = *req.Memo
	}
	payment.Touch(userID, time.Now().UTC())

	if err := s.paymentRepo.UpdatePayment(ctx, *payment); err != nil {
		logger.Error("Failed to reconcile payment", slog.String("error", err.Error()), slog.String("payment_id", paymentID))
		return nil, fmt.Errorf("failed to reconcile payment: %w", err)
	}

	logger.Info("Payment reconciled", slog.String("payment_id", paymentID), slog.String("payment_number", payment.PaymentNumber))
	return payment, nil
}

func (s *paymentService) GenerateReceipt(ctx context.Context, entityID string, paymentID string, req dto.GenerateReceiptRequest) (*dto.ReceiptResponse, error) {
	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("payment %s: %w", paymentID, err)
	}
	if payment.EntityID != entityID {
		return nil, fmt.Errorf("payment %s: %w", paymentID, apperrors.ErrNotFound)
	}

	receipt := &dto.ReceiptResponse{
		ReceiptNumber:   domain.ReceiptNumber(payment.PaymentID),
		PaymentID:       payment.PaymentID,
		PaymentNumber:   payment.PaymentNumber,
		PaymentDate:     payment.PaymentDate,
		Amount:          payment.Amount,
		PaymentType:     payment.PaymentType,
		PayerName:       payment.PayerName,
		PayerEmail:      payment.PayerEmail,
		ReferenceNumber: payment.ReferenceNumber,
		Notes:           req.Notes,
		GeneratedAt:     time.Now().UTC(),
	}

	// Surface the billed lines of the first applied invoice, if any.
	applications, err := s.paymentRepo.FindApplicationsByPaymentID(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load payment applications: %w", err)
	}
	if len(applications) > 0 {
		invoice, err := s.invoiceRepo.FindInvoiceWithLineItems(ctx, applications[0].InvoiceID)
		if err != nil {
			return nil, fmt.Errorf("invoice %s: %w", applications[0].InvoiceID, err)
		}
		receipt.InvoiceNumber = invoice.InvoiceNumber
		receipt.LineItems = make([]dto.ReceiptLineItem, len(invoice.LineItems))
		for i, item := range invoice.LineItems {
			receipt.LineItems[i] = dto.ReceiptLineItem{Description: item.Description, Amount: item.Amount}
		}
	}
	return receipt, nil
}

func (s *paymentService) GetPaymentMethods() []domain.PaymentType {
	methods := make([]domain.PaymentType, len(domain.PaymentTypes))
	copy(methods, domain.PaymentTypes)
	return methods
}

func (s *paymentService) GetRevenueAccounts(ctx context.Context, entityID string) ([]domain.ChartAccount, error) {
	if _, err := s.entityRepo.FindEntityByID(ctx, entityID); err != nil {
		return nil, fmt.Errorf("entity %s: %w", entityID, err)
	}
	accounts, err := s.accountRepo.ListChartAccountsByType(ctx, entityID, domain.Revenue)
	if err != nil {
		return nil, fmt.Errorf("failed to list revenue accounts: %w", err)
	}
	if accounts == nil {
		accounts = []domain.ChartAccount{}
	}
	return accounts, nil
}

// freshBalance re-reads a bank ledger's cached balance after a posting.
func (s *paymentService) freshBalance(ctx context.Context, bankLedgerID string) (decimal.Decimal, error) {
	ledger, err := s.bankRepo.FindBankLedgerByID(ctx, bankLedgerID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to re-read bank balance: %w", err)
	}
	return ledger.CurrentBalance, nil
}
