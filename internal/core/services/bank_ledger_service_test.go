package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/propledger/property_ledger_app/internal/apperrors"
	"github.com/propledger/property_ledger_app/internal/core/domain"
	portssvc "github.com/propledger/property_ledger_app/internal/core/ports/services"
	"github.com/propledger/property_ledger_app/internal/core/services"
	"github.com/propledger/property_ledger_app/internal/dto"
)

// MockBankLedgerRepository is a mock type for the BankLedgerRepositoryFacade interface
type MockBankLedgerRepository struct {
	mock.Mock
}

func (m *MockBankLedgerRepository) SaveBankLedger(ctx context.Context, ledger domain.BankLedger) error {
	args := m.Called(ctx, ledger)
	return args.Error(0)
}

func (m *MockBankLedgerRepository) FindBankLedgerByID(ctx context.Context, bankLedgerID string) (*domain.BankLedger, error) {
	args := m.Called(ctx, bankLedgerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankLedger), args.Error(1)
}

func (m *MockBankLedgerRepository) ListBankLedgersByEntity(ctx context.Context, entityID string) ([]domain.BankLedger, error) {
	args := m.Called(ctx, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankLedger), args.Error(1)
}

func (m *MockBankLedgerRepository) UpdateBankLedger(ctx context.Context, ledger domain.BankLedger) error {
	args := m.Called(ctx, ledger)
	return args.Error(0)
}

func (m *MockBankLedgerRepository) FindBankLedgersByIDsForUpdate(ctx context.Context, tx pgx.Tx, bankLedgerIDs []string) (map[string]domain.BankLedger, error) {
	args := m.Called(ctx, tx, bankLedgerIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.BankLedger), args.Error(1)
}

func (m *MockBankLedgerRepository) ApplyBalanceDeltasInTx(ctx context.Context, tx pgx.Tx, deltas map[string]decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, deltas, userID, now)
	return args.Error(0)
}

// --- Test Suite Setup ---

type BankLedgerServiceTestSuite struct {
	suite.Suite
	mockEntityRepo  *MockEntityRepository
	mockBankRepo    *MockBankLedgerRepository
	mockAccountRepo *MockChartAccountRepository
	service         portssvc.BankLedgerSvcFacade

	entityID string
	userID   string
	entity   *domain.Entity
}

func (suite *BankLedgerServiceTestSuite) SetupTest() {
	suite.mockEntityRepo = new(MockEntityRepository)
	suite.mockBankRepo = new(MockBankLedgerRepository)
	suite.mockAccountRepo = new(MockChartAccountRepository)
	suite.service = services.NewBankLedgerService(suite.mockEntityRepo, suite.mockBankRepo, suite.mockAccountRepo)

	suite.entityID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.entity = &domain.Entity{EntityID: suite.entityID, Name: "Oakwood Properties LLC", IsActive: true}
}

// --- Test Cases ---

func (suite *BankLedgerServiceTestSuite) TestCreateBankLedger_MasksAccountNumber() {
	ctx := context.Background()
	req := dto.CreateBankLedgerRequest{
		AccountName:     "Operating Checking",
		BankName:        "First National",
		BankAccountType: domain.Checking,
		AccountNumber:   "123456789012",
		RoutingNumber:   "021000021",
	}

	suite.mockEntityRepo.On("FindEntityByID", mock.Anything, suite.entityID).Return(suite.entity, nil).Once()
	suite.mockBankRepo.On("SaveBankLedger", ctx, mock.AnythingOfType("domain.BankLedger")).Return(nil).Once()

	ledger, err := suite.service.CreateBankLedger(ctx, suite.entityID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(ledger)
	suite.Equal("****9012", ledger.AccountNumber)
	suite.True(ledger.CurrentBalance.IsZero())
	suite.True(ledger.IsActive)
	suite.False(ledger.IsLinked())
	suite.mockBankRepo.AssertExpectations(suite.T())
}

func (suite *BankLedgerServiceTestSuite) TestCreateBankLedger_WithNonAssetLink() {
	ctx := context.Background()
	accountID := uuid.NewString()
	revenue := &domain.ChartAccount{
		ChartAccountID: accountID,
		EntityID:       suite.entityID,
		AccountCode:    "4100",
		AccountType:    domain.Revenue,
		IsActive:       true,
	}
	req := dto.CreateBankLedgerRequest{
		AccountName:     "Operating Checking",
		BankName:        "First National",
		BankAccountType: domain.Checking,
		AccountNumber:   "123456789012",
		ChartAccountID:  &accountID,
	}

	suite.mockEntityRepo.On("FindEntityByID", mock.Anything, suite.entityID).Return(suite.entity, nil).Once()
	suite.mockAccountRepo.On("FindChartAccountByID", ctx, accountID).Return(revenue, nil).Once()

	ledger, err := suite.service.CreateBankLedger(ctx, suite.entityID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(ledger)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockBankRepo.AssertNotCalled(suite.T(), "SaveBankLedger", mock.Anything, mock.Anything)
}

func (suite *BankLedgerServiceTestSuite) TestGetBankLedger_WrongEntity() {
	ctx := context.Background()
	ledgerID := uuid.NewString()
	ledger := &domain.BankLedger{
		BankLedgerID: ledgerID,
		EntityID:     uuid.NewString(),
		IsActive:     true,
	}

	suite.mockBankRepo.On("FindBankLedgerByID", ctx, ledgerID).Return(ledger, nil).Once()

	found, err := suite.service.GetBankLedger(ctx, suite.entityID, ledgerID)

	suite.Require().Error(err)
	suite.Nil(found)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *BankLedgerServiceTestSuite) TestGetBalance_ReturnsCachedBalance() {
	ctx := context.Background()
	ledgerID := uuid.NewString()
	ledger := &domain.BankLedger{
		BankLedgerID:   ledgerID,
		EntityID:       suite.entityID,
		CurrentBalance: decimal.RequireFromString("1523.75"),
		IsActive:       true,
	}

	suite.mockBankRepo.On("FindBankLedgerByID", ctx, ledgerID).Return(ledger, nil).Once()

	balance, err := suite.service.GetBalance(ctx, suite.entityID, ledgerID)

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.RequireFromString("1523.75")))
}

func (suite *BankLedgerServiceTestSuite) TestLinkChartAccount_Success() {
	ctx := context.Background()
	ledgerID := uuid.NewString()
	accountID := uuid.NewString()
	asset := &domain.ChartAccount{
		ChartAccountID: accountID,
		EntityID:       suite.entityID,
		AccountCode:    "1100",
		AccountType:    domain.Asset,
		IsActive:       true,
	}
	ledger := &domain.BankLedger{
		BankLedgerID: ledgerID,
		EntityID:     suite.entityID,
		AccountName:  "Operating Checking",
		IsActive:     true,
	}
	linkedLedger := &domain.BankLedger{
		BankLedgerID:   ledgerID,
		EntityID:       suite.entityID,
		AccountName:    "Operating Checking",
		ChartAccountID: accountID,
		IsActive:       true,
		ChartAccount:   asset,
	}

	suite.mockBankRepo.On("FindBankLedgerByID", ctx, ledgerID).Return(ledger, nil).Once()
	suite.mockAccountRepo.On("FindChartAccountByID", ctx, accountID).Return(asset, nil).Once()
	suite.mockBankRepo.On("UpdateBankLedger", ctx, mock.MatchedBy(func(l domain.BankLedger) bool {
		return l.BankLedgerID == ledgerID && l.ChartAccountID == accountID
	})).Return(nil).Once()
	suite.mockBankRepo.On("FindBankLedgerByID", ctx, ledgerID).Return(linkedLedger, nil).Once()

	updated, err := suite.service.LinkChartAccount(ctx, suite.entityID, ledgerID, accountID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(updated)
	suite.True(updated.IsLinked())
	suite.Equal(accountID, updated.ChartAccountID)
	suite.mockBankRepo.AssertExpectations(suite.T())
}

func (suite *BankLedgerServiceTestSuite) TestLinkChartAccount_InactiveAccount() {
	ctx := context.Background()
	ledgerID := uuid.NewString()
	accountID := uuid.NewString()
	inactive := &domain.ChartAccount{
		ChartAccountID: accountID,
		EntityID:       suite.entityID,
		AccountCode:    "1100",
		AccountType:    domain.Asset,
		IsActive:       false,
	}
	ledger := &domain.BankLedger{
		BankLedgerID: ledgerID,
		EntityID:     suite.entityID,
		IsActive:     true,
	}

	suite.mockBankRepo.On("FindBankLedgerByID", ctx, ledgerID).Return(ledger, nil).Once()
	suite.mockAccountRepo.On("FindChartAccountByID", ctx, accountID).Return(inactive, nil).Once()

	updated, err := suite.service.LinkChartAccount(ctx, suite.entityID, ledgerID, accountID, suite.userID)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockBankRepo.AssertNotCalled(suite.T(), "UpdateBankLedger", mock.Anything, mock.Anything)
}

func (suite *BankLedgerServiceTestSuite) TestListBankLedgers_EmptyIsNotNil() {
	ctx := context.Background()

	suite.mockBankRepo.On("ListBankLedgersByEntity", ctx, suite.entityID).Return(nil, nil).Once()

	ledgers, err := suite.service.ListBankLedgers(ctx, suite.entityID)

	suite.Require().NoError(err)
	suite.NotNil(ledgers)
	suite.Empty(ledgers)
}

func TestBankLedgerService(t *testing.T) {
	suite.Run(t, new(BankLedgerServiceTestSuite))
}
