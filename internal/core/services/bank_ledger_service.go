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
)

// bankLedgerService implements the bank ledger registry.
type bankLedgerService struct {
	entityRepo  portsrepo.EntityReader
	bankRepo    portsrepo.BankLedgerRepositoryFacade
	accountRepo portsrepo.ChartAccountRepositoryFacade
}

// NewBankLedgerService creates a new bank ledger service.
func NewBankLedgerService(entityRepo portsrepo.EntityReader, bankRepo portsrepo.BankLedgerRepositoryFacade, accountRepo portsrepo.ChartAccountRepositoryFacade) portssvc.BankLedgerSvcFacade {
	return &bankLedgerService{
		entityRepo:  entityRepo,
		bankRepo:    bankRepo,
		accountRepo: accountRepo,
	}
}

var _ portssvc.BankLedgerSvcFacade = (*bankLedgerService)(nil)

func (s *bankLedgerService) CreateBankLedger(ctx context.Context, entityID string, req dto.CreateBankLedgerRequest, userID string) (*domain.BankLedger, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.entityRepo.FindEntityByID(ctx, entityID); err != nil {
		return nil, fmt.Errorf("entity %s: %w", entityID, err)
	}

	chartAccountID := ""
	if req.ChartAccountID != nil && *req.ChartAccountID != "" {
		if err := s.validateAssetLink(ctx, entityID, *req.ChartAccountID); err != nil {
			return nil, err
		}
		chartAccountID = *req.ChartAccountID
	}

	now := time.Now().UTC()
	ledger := domain.BankLedger{
		BankLedgerID:    uuid.NewString(),
		EntityID:        entityID,
		AccountName:     req.AccountName,
		BankName:        req.BankName,
		BankAccountType: req.BankAccountType,
		AccountNumber:   domain.MaskAccountNumber(req.AccountNumber),
		RoutingNumber:   req.RoutingNumber,
		CurrentBalance:  decimal.Zero,
		ChartAccountID:  chartAccountID,
		IsActive:        true,
		AuditFields:     domain.NewAuditFields(userID, now),
	}

	if err := s.bankRepo.SaveBankLedger(ctx, ledger); err != nil {
		logger.Error("Failed to save bank ledger", slog.String("error", err.Error()), slog.String("entity_id", entityID))
		return nil, err
	}

	logger.Info("Bank ledger created", slog.String("bank_ledger_id", ledger.BankLedgerID), slog.String("entity_id", entityID))
	return &ledger, nil
}

func (s *bankLedgerService) GetBankLedger(ctx context.Context, entityID string, bankLedgerID string) (*domain.BankLedger, error) {
	ledger, err := s.bankRepo.FindBankLedgerByID(ctx, bankLedgerID)
	if err != nil {
		return nil, fmt.Errorf("bank ledger %s: %w", bankLedgerID, err)
	}
	if ledger.EntityID != entityID {
		// Obscure existence of ledgers outside the caller's entity.
		return nil, fmt.Errorf("bank ledger %s: %w", bankLedgerID, apperrors.ErrNotFound)
	}
	return ledger, nil
}

func (s *bankLedgerService) ListBankLedgers(ctx context.Context, entityID string) ([]domain.BankLedger, error) {
	ledgers, err := s.bankRepo.ListBankLedgersByEntity(ctx, entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bank ledgers: %w", err)
	}
	if ledgers == nil {
		ledgers = []domain.BankLedger{}
	}
	return ledgers, nil
}

func (s *bankLedgerService) GetBalance(ctx context.Context, entityID string, bankLedgerID string) (decimal.Decimal, error) {
	ledger, err := s.GetBankLedger(ctx, entityID, bankLedgerID)
	if err != nil {
		return decimal.Zero, err
	}
	return ledger.CurrentBalance, nil
}

func (s *bankLedgerService) LinkChartAccount(ctx context.Context, entityID string, bankLedgerID string, chartAccountID string, userID string) (*domain.BankLedger, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	ledger, err := s.GetBankLedger(ctx, entityID, bankLedgerID)
	if err != nil {
		return nil, err
	}

	if err := s.validateAssetLink(ctx, entityID, chartAccountID); err != nil {
		return nil, err
	}

	ledger.ChartAccountID = chartAccountID
	ledger.Touch(userID, time.Now().UTC())
	if err := s.bankRepo.UpdateBankLedger(ctx, *ledger); err != nil {
		logger.Error("Failed to link chart account", slog.String("error", err.Error()), slog.String("bank_ledger_id", bankLedgerID))
		return nil, err
	}

	logger.Info("Bank ledger linked to chart account", slog.String("bank_ledger_id", bankLedgerID), slog.String("chart_account_id", chartAccountID))
	return s.GetBankLedger(ctx, entityID, bankLedgerID)
}

// validateAssetLink ensures the link target is an active ASSET account of
// the same entity.
func (s *bankLedgerService) validateAssetLink(ctx context.Context, entityID, chartAccountID string) error {
	account, err := s.accountRepo.FindChartAccountByID(ctx, chartAccountID)
	if err != nil {
		return fmt.Errorf("chart account %s: %w", chartAccountID, err)
	}
	if account.EntityID != entityID {
		return fmt.Errorf("chart account %s: %w", chartAccountID, apperrors.ErrNotFound)
	}
	if !account.IsActive {
		return fmt.Errorf("%w: chart account %s is inactive", apperrors.ErrValidation, chartAccountID)
	}
	if account.AccountType != domain.Asset {
		return fmt.Errorf("%w: bank ledgers must link to an ASSET account, got %s", apperrors.ErrValidation, account.AccountType)
	}
	return nil
}
