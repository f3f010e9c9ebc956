package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/propledger/property_ledger_app/internal/apperrors"
	"github.com/propledger/property_ledger_app/internal/core/domain"
	portssvc "github.com/propledger/property_ledger_app/internal/core/ports/services"
	"github.com/propledger/property_ledger_app/internal/core/services"
	"github.com/propledger/property_ledger_app/internal/dto"
)

type LedgerEntryServiceTestSuite struct {
	suite.Suite
	mockBankRepo    *MockBankLedgerRepository
	mockAccountRepo *MockChartAccountRepository
	mockEntryRepo   *MockLedgerEntryRepository
	service         portssvc.LedgerEntrySvcFacade

	entityID       string
	userID         string
	bankLedgerID   string
	assetAccountID string
	revenueAcctID  string
	bankLedger     *domain.BankLedger
	assetAccount   domain.ChartAccount
	revenueAccount domain.ChartAccount
}

func (suite *LedgerEntryServiceTestSuite) SetupTest() {
	suite.mockBankRepo = new(MockBankLedgerRepository)
	suite.mockAccountRepo = new(MockChartAccountRepository)
	suite.mockEntryRepo = new(MockLedgerEntryRepository)
	suite.service = services.NewLedgerEntryService(suite.mockBankRepo, suite.mockAccountRepo, suite.mockEntryRepo)

	suite.entityID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.bankLedgerID = uuid.NewString()
	suite.assetAccountID = uuid.NewString()
	suite.revenueAcctID = uuid.NewString()

	suite.assetAccount = domain.ChartAccount{
		ChartAccountID: suite.assetAccountID,
		EntityID:       suite.entityID,
		AccountCode:    "1100",
		AccountName:    "Cash - Checking Account",
		AccountType:    domain.Asset,
		IsActive:       true,
	}
	suite.revenueAccount = domain.ChartAccount{
		ChartAccountID: suite.revenueAcctID,
		EntityID:       suite.entityID,
		AccountCode:    "4100",
		AccountName:    "Rental Income",
		AccountType:    domain.Revenue,
		IsActive:       true,
	}
	suite.bankLedger = &domain.BankLedger{
		BankLedgerID:   suite.bankLedgerID,
		EntityID:       suite.entityID,
		AccountName:    "Operating Checking",
		ChartAccountID: suite.assetAccountID,
		IsActive:       true,
	}
}

// balancedRequest is a rent receipt: debit cash, credit rental income.
func (suite *LedgerEntryServiceTestSuite) balancedRequest(amount string) dto.CreateLedgerEntriesRequest {
	return dto.CreateLedgerEntriesRequest{
		TransactionDescription: "August rent unit 4B",
		Entries: []dto.LedgerEntryInput{
			{
				BankLedgerID:    suite.bankLedgerID,
				ChartAccountID:  suite.assetAccountID,
				EntryType:       "PAYMENT",
				DebitAmount:     decimal.RequireFromString(amount),
				TransactionDate: "2025-08-01",
			},
			{
				BankLedgerID:    suite.bankLedgerID,
				ChartAccountID:  suite.revenueAcctID,
				EntryType:       "PAYMENT",
				CreditAmount:    decimal.RequireFromString(amount),
				TransactionDate: "2025-08-01",
			},
		},
	}
}

// --- Test Cases ---

func (suite *LedgerEntryServiceTestSuite) TestCreateEntries_Success() {
	ctx := context.Background()
	req := suite.balancedRequest("1200.00")

	suite.mockBankRepo.On("FindBankLedgerByID", ctx, suite.bankLedgerID).Return(suite.bankLedger, nil).Once()
	suite.mockAccountRepo.On("FindChartAccountsByIDs", ctx, []string{suite.assetAccountID, suite.revenueAcctID}).
		Return(map[string]domain.ChartAccount{
			suite.assetAccountID: suite.assetAccount,
			suite.revenueAcctID:  suite.revenueAccount,
		}, nil).Once()

	var savedDeltas map[string]decimal.Decimal
	suite.mockEntryRepo.On("SaveEntries", ctx, mock.AnythingOfType("[]domain.LedgerEntry"), mock.Anything).
		Run(func(args mock.Arguments) {
			savedDeltas = args.Get(2).(map[string]decimal.Decimal)
		}).Return(nil).Once()

	entries, err := suite.service.CreateEntries(ctx, suite.entityID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(entries, 2)
	suite.Equal(domain.Debit, entries[0].TransactionType)
	suite.True(entries[0].Amount.Equal(decimal.RequireFromString("1200.00")))
	suite.Equal(domain.Credit, entries[1].TransactionType)
	suite.Equal("August rent unit 4B", entries[0].Description)
	suite.Equal(time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC), entries[0].TransactionDate)

	// Only the debit against the linked asset account moves the cached balance.
	suite.Require().Len(savedDeltas, 1)
	suite.True(savedDeltas[suite.bankLedgerID].Equal(decimal.RequireFromString("1200.00")))

	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *LedgerEntryServiceTestSuite) TestCreateEntries_Unbalanced() {
	ctx := context.Background()
	req := suite.balancedRequest("1200.00")
	req.Entries[1].CreditAmount = decimal.RequireFromString("1100.00")

	entries, err := suite.service.CreateEntries(ctx, suite.entityID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(entries)
	suite.ErrorIs(err, apperrors.ErrUnbalanced)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "SaveEntries", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerEntryServiceTestSuite) TestCreateEntries_BothSidesSet() {
	ctx := context.Background()
	req := suite.balancedRequest("500.00")
	req.Entries[0].CreditAmount = decimal.RequireFromString("500.00")

	entries, err := suite.service.CreateEntries(ctx, suite.entityID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(entries)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerEntryServiceTestSuite) TestCreateEntries_SingleEntryRejected() {
	ctx := context.Background()
	req := suite.balancedRequest("500.00")
	req.Entries = req.Entries[:1]

	entries, err := suite.service.CreateEntries(ctx, suite.entityID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(entries)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerEntryServiceTestSuite) TestCreateEntries_BadDate() {
	ctx := context.Background()
	req := suite.balancedRequest("500.00")
	req.Entries[0].TransactionDate = "01/08/2025"

	entries, err := suite.service.CreateEntries(ctx, suite.entityID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(entries)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerEntryServiceTestSuite) TestCreateEntries_InactiveBankLedger() {
	ctx := context.Background()
	req := suite.balancedRequest("750.00")
	inactive := *suite.bankLedger
	inactive.IsActive = false

	suite.mockBankRepo.On("FindBankLedgerByID", ctx, suite.bankLedgerID).Return(&inactive, nil).Once()

	entries, err := suite.service.CreateEntries(ctx, suite.entityID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(entries)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerEntryServiceTestSuite) TestCreateEntries_BankLedgerOutsideEntity() {
	ctx := context.Background()
	req := suite.balancedRequest("750.00")
	foreign := *suite.bankLedger
	foreign.EntityID = uuid.NewString()

	suite.mockBankRepo.On("FindBankLedgerByID", ctx, suite.bankLedgerID).Return(&foreign, nil).Once()

	entries, err := suite.service.CreateEntries(ctx, suite.entityID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(entries)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *LedgerEntryServiceTestSuite) TestCreateEntries_InactiveChartAccount() {
	ctx := context.Background()
	req := suite.balancedRequest("320.00")
	deactivated := suite.revenueAccount
	deactivated.IsActive = false

	suite.mockBankRepo.On("FindBankLedgerByID", ctx, suite.bankLedgerID).Return(suite.bankLedger, nil).Once()
	suite.mockAccountRepo.On("FindChartAccountsByIDs", ctx, []string{suite.assetAccountID, suite.revenueAcctID}).
		Return(map[string]domain.ChartAccount{
			suite.assetAccountID: suite.assetAccount,
			suite.revenueAcctID:  deactivated,
		}, nil).Once()

	entries, err := suite.service.CreateEntries(ctx, suite.entityID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(entries)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "SaveEntries", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerEntryServiceTestSuite) TestCreateEntries_MissingChartAccount() {
	ctx := context.Background()
	req := suite.balancedRequest("320.00")

	suite.mockBankRepo.On("FindBankLedgerByID", ctx, suite.bankLedgerID).Return(suite.bankLedger, nil).Once()
	suite.mockAccountRepo.On("FindChartAccountsByIDs", ctx, []string{suite.assetAccountID, suite.revenueAcctID}).
		Return(map[string]domain.ChartAccount{
			suite.assetAccountID: suite.assetAccount,
		}, nil).Once()

	entries, err := suite.service.CreateEntries(ctx, suite.entityID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(entries)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *LedgerEntryServiceTestSuite) TestCreateEntries_TransferNetsToZeroDelta() {
	ctx := context.Background()
	// Debit and credit both land on the linked asset account: the entries are
	// recorded but the cached balance must not move.
	req := dto.CreateLedgerEntriesRequest{
		TransactionDescription: "Same-account correction",
		Entries: []dto.LedgerEntryInput{
			{
				BankLedgerID:    suite.bankLedgerID,
				ChartAccountID:  suite.assetAccountID,
				EntryType:       "DEPOSIT",
				DebitAmount:     decimal.RequireFromString("250.00"),
				TransactionDate: "2025-08-05",
			},
			{
				BankLedgerID:    suite.bankLedgerID,
				ChartAccountID:  suite.assetAccountID,
				EntryType:       "DEPOSIT",
				CreditAmount:    decimal.RequireFromString("250.00"),
				TransactionDate: "2025-08-05",
			},
		},
	}

	suite.mockBankRepo.On("FindBankLedgerByID", ctx, suite.bankLedgerID).Return(suite.bankLedger, nil).Once()
	suite.mockAccountRepo.On("FindChartAccountsByIDs", ctx, []string{suite.assetAccountID}).
		Return(map[string]domain.ChartAccount{suite.assetAccountID: suite.assetAccount}, nil).Once()

	var savedDeltas map[string]decimal.Decimal
	suite.mockEntryRepo.On("SaveEntries", ctx, mock.AnythingOfType("[]domain.LedgerEntry"), mock.Anything).
		Run(func(args mock.Arguments) {
			savedDeltas = args.Get(2).(map[string]decimal.Decimal)
		}).Return(nil).Once()

	entries, err := suite.service.CreateEntries(ctx, suite.entityID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Len(entries, 2)
	suite.Empty(savedDeltas)
}

func (suite *LedgerEntryServiceTestSuite) TestListEntriesByBankLedger_DefaultLimit() {
	ctx := context.Background()

	suite.mockBankRepo.On("FindBankLedgerByID", ctx, suite.bankLedgerID).Return(suite.bankLedger, nil).Once()
	suite.mockEntryRepo.On("ListEntriesByBankLedger", ctx, suite.bankLedgerID, 50).Return([]domain.LedgerEntry{}, nil).Once()

	entries, err := suite.service.ListEntriesByBankLedger(ctx, suite.entityID, suite.bankLedgerID, 0)

	suite.Require().NoError(err)
	suite.NotNil(entries)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *LedgerEntryServiceTestSuite) TestListEntriesByBankLedger_WrongEntity() {
	ctx := context.Background()
	foreign := *suite.bankLedger
	foreign.EntityID = uuid.NewString()

	suite.mockBankRepo.On("FindBankLedgerByID", ctx, suite.bankLedgerID).Return(&foreign, nil).Once()

	entries, err := suite.service.ListEntriesByBankLedger(ctx, suite.entityID, suite.bankLedgerID, 20)

	suite.Require().Error(err)
	suite.Nil(entries)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestLedgerEntryService(t *testing.T) {
	suite.Run(t, new(LedgerEntryServiceTestSuite))
}
