package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/propledger/property_ledger_app/internal/apperrors"
	"github.com/propledger/property_ledger_app/internal/core/domain"
	portsrepo "github.com/propledger/property_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/propledger/property_ledger_app/internal/core/ports/services"
	"github.com/propledger/property_ledger_app/internal/dto"
	"github.com/propledger/property_ledger_app/internal/middleware"
)

// recentEntryLimit is how many ledger entries the single-account view shows.
const recentEntryLimit = 10

// chartAccountService implements the chart of accounts manager.
type chartAccountService struct {
	entityRepo  portsrepo.EntityReader
	accountRepo portsrepo.ChartAccountRepositoryFacade
	entryRepo   portsrepo.LedgerEntryRepositoryFacade
}

// NewChartAccountService creates a new chart account service.
func NewChartAccountService(entityRepo portsrepo.EntityReader, accountRepo portsrepo.ChartAccountRepositoryFacade, entryRepo portsrepo.LedgerEntryRepositoryFacade) portssvc.ChartAccountSvcFacade {
	return &chartAccountService{
		entityRepo:  entityRepo,
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
	}
}

var _ portssvc.ChartAccountSvcFacade = (*chartAccountService)(nil)

func (s *chartAccountService) CreateChartAccount(ctx context.Context, entityID string, req dto.CreateChartAccountRequest, userID string) (*domain.ChartAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.entityRepo.FindEntityByID(ctx, entityID); err != nil {
		return nil, fmt.Errorf("entity %s: %w", entityID, err)
	}

	if !domain.ValidAccountType(req.AccountType) {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.AccountType)
	}

	// Account codes are unique within an entity.
	existing, err := s.accountRepo.FindChartAccountByCode(ctx, entityID, req.AccountCode)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to check account code uniqueness", slog.String("error", err.Error()), slog.String("account_code", req.AccountCode))
		return nil, fmt.Errorf("failed to check account code: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: account code %s already exists for entity", apperrors.ErrDuplicate, req.AccountCode)
	}

	parentID := ""
	if req.ParentAccountID != nil && *req.ParentAccountID != "" {
		parentID = *req.ParentAccountID
		parent, err := s.accountRepo.FindChartAccountByID(ctx, parentID)
		if err != nil {
			return nil, fmt.Errorf("parent account %s: %w", parentID, err)
		}
		if parent.EntityID != entityID || !parent.IsActive {
			// Obscure existence of accounts outside the caller's entity.
			return nil, fmt.Errorf("%w: no active parent account %s", apperrors.ErrNotFound, parentID)
		}
		// A parent may only have children of its own account type.
		if parent.AccountType != req.AccountType {
			return nil, fmt.Errorf("%w: parent account type %s does not match child account type %s", apperrors.ErrValidation, parent.AccountType, req.AccountType)
		}
	}

	now := time.Now().UTC()
	account := domain.ChartAccount{
		ChartAccountID:  uuid.NewString(),
		EntityID:        entityID,
		AccountCode:     req.AccountCode,
		AccountName:     req.AccountName,
		AccountType:     req.AccountType,
		ParentAccountID: parentID,
		Description:     req.Description,
		IsActive:        true,
		AuditFields:     domain.NewAuditFields(userID, now),
	}

	if err := s.accountRepo.SaveChartAccount(ctx, account); err != nil {
		logger.Error("Failed to save chart account", slog.String("error", err.Error()), slog.String("entity_id", entityID))
		return nil, err
	}

	logger.Info("Chart account created", slog.String("chart_account_id", account.ChartAccountID), slog.String("account_code", account.AccountCode))
	return &account, nil
}

func (s *chartAccountService) ListChartAccounts(ctx context.Context, entityID string, includeInactive bool) ([]domain.ChartAccountNode, error) {
	if _, err := s.entityRepo.FindEntityByID(ctx, entityID); err != nil {
		return nil, fmt.Errorf("entity %s: %w", entityID, err)
	}

	accounts, err := s.accountRepo.ListChartAccountsByEntity(ctx, entityID, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to list chart accounts: %w", err)
	}

	return buildAccountTree(accounts), nil
}

// buildAccountTree groups a flat, code-ordered account list into root nodes
// with nested children. An account whose parent is absent from the listing
// (e.g. an inactive parent excluded by the filter) surfaces as a root.
func buildAccountTree(accounts []domain.ChartAccount) []domain.ChartAccountNode {
	present := make(map[string]bool, len(accounts))
	for _, acc := range accounts {
		present[acc.ChartAccountID] = true
	}

	childrenByParent := make(map[string][]domain.ChartAccount)
	roots := make([]domain.ChartAccount, 0)
	for _, acc := range accounts {
		if acc.ParentAccountID != "" && present[acc.ParentAccountID] {
			childrenByParent[acc.ParentAccountID] = append(childrenByParent[acc.ParentAccountID], acc)
		} else {
			roots = append(roots, acc)
		}
	}

	var attach func(accs []domain.ChartAccount) []domain.ChartAccountNode
	attach = func(accs []domain.ChartAccount) []domain.ChartAccountNode {
		nodes := make([]domain.ChartAccountNode, len(accs))
		for i, acc := range accs {
			nodes[i] = domain.ChartAccountNode{
				ChartAccount: acc,
				Children:     attach(childrenByParent[acc.ChartAccountID]),
			}
		}
		return nodes
	}
	return attach(roots)
}

func (s *chartAccountService) GetChartAccountByID(ctx context.Context, entityID string, chartAccountID string) (*dto.ChartAccountDetailResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.findScopedAccount(ctx, entityID, chartAccountID)
	if err != nil {
		return nil, err
	}

	detail := &dto.ChartAccountDetailResponse{
		Account:  dto.ToChartAccountResponse(account),
		Children: []dto.ChartAccountSummary{},
	}

	if account.ParentAccountID != "" {
		parent, err := s.accountRepo.FindChartAccountByID(ctx, account.ParentAccountID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to load parent account: %w", err)
		}
		if parent != nil {
			summary := dto.ToChartAccountSummary(parent)
			detail.Parent = &summary
		}
	}

	children, err := s.accountRepo.FindChildren(ctx, chartAccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load child accounts: %w", err)
	}
	for i := range children {
		detail.Children = append(detail.Children, dto.ToChartAccountSummary(&children[i]))
	}

	entries, count, err := s.entryRepo.ListRecentEntriesByChartAccount(ctx, chartAccountID, recentEntryLimit)
	if err != nil {
		logger.Error("Failed to load recent ledger entries", slog.String("error", err.Error()), slog.String("chart_account_id", chartAccountID))
		return nil, fmt.Errorf("failed to load recent ledger entries: %w", err)
	}
	detail.RecentEntries = dto.ToLedgerEntryResponses(entries)
	detail.EntryCount = count

	return detail, nil
}

func (s *chartAccountService) UpdateChartAccount(ctx context.Context, entityID string, chartAccountID string, req dto.UpdateChartAccountRequest, userID string) (*domain.ChartAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.findScopedAccount(ctx, entityID, chartAccountID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.AccountName != nil {
		account.AccountName = *req.AccountName
		updated = true
	}
	if req.Description != nil {
		account.Description = *req.Description
		updated = true
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
		updated = true
	}
	if !updated {
		return account, nil
	}

	account.Touch(userID, time.Now().UTC())
	if err := s.accountRepo.UpdateChartAccount(ctx, *account); err != nil {
		logger.Error("Failed to update chart account", slog.String("error", err.Error()), slog.String("chart_account_id", chartAccountID))
		return nil, err
	}

	logger.Info("Chart account updated", slog.String("chart_account_id", chartAccountID))
	return account, nil
}

func (s *chartAccountService) DeactivateChartAccount(ctx context.Context, entityID string, chartAccountID string, userID string) (*domain.ChartAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.findScopedAccount(ctx, entityID, chartAccountID)
	if err != nil {
		return nil, err
	}

	activeChildren, err := s.accountRepo.FindActiveChildren(ctx, chartAccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to check child accounts: %w", err)
	}
	if len(activeChildren) > 0 {
		return nil, fmt.Errorf("%w: account has %d active child accounts", apperrors.ErrValidation, len(activeChildren))
	}

	// Existing ledger entries are deliberately not checked: deactivation is
	// a soft marker that blocks new postings while keeping history intact.
	account.IsActive = false
	account.Touch(userID, time.Now().UTC())
	if err := s.accountRepo.UpdateChartAccount(ctx, *account); err != nil {
		logger.Error("Failed to deactivate chart account", slog.String("error", err.Error()), slog.String("chart_account_id", chartAccountID))
		return nil, err
	}

	logger.Info("Chart account deactivated", slog.String("chart_account_id", chartAccountID))
	return account, nil
}

func (s *chartAccountService) ListChartAccountsByType(ctx context.Context, entityID string, accountType domain.AccountType) ([]domain.ChartAccount, error) {
	if !domain.ValidAccountType(accountType) {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, accountType)
	}
	accounts, err := s.accountRepo.ListChartAccountsByType(ctx, entityID, accountType)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts by type: %w", err)
	}
	if accounts == nil {
		accounts = []domain.ChartAccount{}
	}
	return accounts, nil
}

func (s *chartAccountService) BootstrapDefaultChart(ctx context.Context, entityID string, userID string) ([]domain.ChartAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.entityRepo.FindEntityByID(ctx, entityID); err != nil {
		return nil, fmt.Errorf("entity %s: %w", entityID, err)
	}

	existing, err := s.accountRepo.ListChartAccountsByEntity(ctx, entityID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect existing chart: %w", err)
	}
	if len(existing) > 0 {
		return nil, fmt.Errorf("%w: entity already has %d chart accounts", apperrors.ErrConflict, len(existing))
	}

	now := time.Now().UTC()
	audit := domain.NewAuditFields(userID, now)

	// Two passes: roots first so children can resolve their parent IDs.
	idByCode := make(map[string]string, len(domain.DefaultChart))
	accounts := make([]domain.ChartAccount, 0, len(domain.DefaultChart))
	for _, def := range domain.DefaultChart {
		if def.ParentCode != "" {
			continue
		}
		acc := defaultAccount(entityID, def, "", audit)
		idByCode[def.AccountCode] = acc.ChartAccountID
		accounts = append(accounts, acc)
	}
	for _, def := range domain.DefaultChart {
		if def.ParentCode == "" {
			continue
		}
		parentID, ok := idByCode[def.ParentCode]
		if !ok {
			return nil, fmt.Errorf("%w: default chart parent code %s missing", apperrors.ErrInternal, def.ParentCode)
		}
		accounts = append(accounts, defaultAccount(entityID, def, parentID, audit))
	}

	if err := s.accountRepo.SaveChartAccounts(ctx, accounts); err != nil {
		logger.Error("Failed to bootstrap default chart", slog.String("error", err.Error()), slog.String("entity_id", entityID))
		return nil, fmt.Errorf("failed to bootstrap default chart: %w", err)
	}

	logger.Info("Default chart bootstrapped", slog.String("entity_id", entityID), slog.Int("account_count", len(accounts)))
	return accounts, nil
}

func defaultAccount(entityID string, def domain.DefaultChartAccount, parentID string, audit domain.AuditFields) domain.ChartAccount {
	return domain.ChartAccount{
		ChartAccountID:  uuid.NewString(),
		EntityID:        entityID,
		AccountCode:     def.AccountCode,
		AccountName:     def.AccountName,
		AccountType:     def.AccountType,
		ParentAccountID: parentID,
		IsActive:        true,
		AuditFields:     audit,
	}
}

// findScopedAccount fetches an account and verifies it belongs to the given
// entity, returning ErrNotFound otherwise to obscure existence.
func (s *chartAccountService) findScopedAccount(ctx context.Context, entityID, chartAccountID string) (*domain.ChartAccount, error) {
	account, err := s.accountRepo.FindChartAccountByID(ctx, chartAccountID)
	if err != nil {
		return nil, fmt.Errorf("chart account %s: %w", chartAccountID, err)
	}
	if account.EntityID != entityID {
		return nil, fmt.Errorf("chart account %s: %w", chartAccountID, apperrors.ErrNotFound)
	}
	return account, nil
}
