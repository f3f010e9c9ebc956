package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/propledger/property_ledger_app/internal/apperrors"
	"github.com/propledger/property_ledger_app/internal/core/domain"
	portsrepo "github.com/propledger/property_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/propledger/property_ledger_app/internal/core/ports/services"
	"github.com/propledger/property_ledger_app/internal/core/services"
	"github.com/propledger/property_ledger_app/internal/dto"
)

// MockPaymentRepository is a mock type for the PaymentRepositoryFacade interface
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListPayments(ctx context.Context, entityID string, filters portsrepo.ListPaymentsFilters) ([]domain.Payment, error) {
	args := m.Called(ctx, entityID, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) UpdatePayment(ctx context.Context, payment domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) FindApplicationsByPaymentID(ctx context.Context, paymentID string) ([]domain.PaymentApplication, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentApplication), args.Error(1)
}

func (m *MockPaymentRepository) SavePaymentBatch(ctx context.Context, writes []portsrepo.PaymentWrite, entries []domain.LedgerEntry, deltas map[string]decimal.Decimal) error {
	args := m.Called(ctx, writes, entries, deltas)
	return args.Error(0)
}

// MockInvoiceRepository is a mock type for the InvoiceReader interface
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindInvoiceWithLineItems(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

// --- Test Suite Setup ---

type PaymentServiceTestSuite struct {
	suite.Suite
	mockEntityRepo  *MockEntityRepository
	mockBankRepo    *MockBankLedgerRepository
	mockAccountRepo *MockChartAccountRepository
	mockPaymentRepo *MockPaymentRepository
	mockInvoiceRepo *MockInvoiceRepository
	service         portssvc.PaymentSvcFacade

	entityID       string
	userID         string
	bankLedgerID   string
	assetAccountID string
	revenueAcctID  string
	bankLedger     *domain.BankLedger
	assetAccount   *domain.ChartAccount
	revenueAccount *domain.ChartAccount
}

func (suite *PaymentServiceTestSuite) SetupTest() {
	suite.mockEntityRepo = new(MockEntityRepository)
	suite.mockBankRepo = new(MockBankLedgerRepository)
	suite.mockAccountRepo = new(MockChartAccountRepository)
	suite.mockPaymentRepo = new(MockPaymentRepository)
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.service = services.NewPaymentService(suite.mockEntityRepo, suite.mockBankRepo, suite.mockAccountRepo, suite.mockPaymentRepo, suite.mockInvoiceRepo)

	suite.entityID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.bankLedgerID = uuid.NewString()
	suite.assetAccountID = uuid.NewString()
	suite.revenueAcctID = uuid.NewString()

	suite.assetAccount = &domain.ChartAccount{
		ChartAccountID: suite.assetAccountID,
		EntityID:       suite.entityID,
		AccountCode:    "1100",
		AccountName:    "Cash - Checking Account",
		AccountType:    domain.Asset,
		IsActive:       true,
	}
	suite.revenueAccount = &domain.ChartAccount{
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
		BankName:       "First National",
		ChartAccountID: suite.assetAccountID,
		IsActive:       true,
		ChartAccount:   suite.assetAccount,
	}
}

func (suite *PaymentServiceTestSuite) expectEntity() {
	entity := &domain.Entity{EntityID: suite.entityID, Name: "Oakwood Properties LLC", IsActive: true}
	suite.mockEntityRepo.On("FindEntityByID", mock.Anything, suite.entityID).Return(entity, nil).Once()
}

func (suite *PaymentServiceTestSuite) expectBankLedger() {
	suite.mockBankRepo.On("FindBankLedgerByID", mock.Anything, suite.bankLedgerID).Return(suite.bankLedger, nil).Once()
}

func (suite *PaymentServiceTestSuite) expectRevenueAccount() {
	suite.mockAccountRepo.On("FindChartAccountByID", mock.Anything, suite.revenueAcctID).Return(suite.revenueAccount, nil).Once()
}

// expectFreshBalance covers the balance re-read after a posting commits.
func (suite *PaymentServiceTestSuite) expectFreshBalance(balance string) {
	updated := *suite.bankLedger
	updated.CurrentBalance = decimal.RequireFromString(balance)
	suite.mockBankRepo.On("FindBankLedgerByID", mock.Anything, suite.bankLedgerID).Return(&updated, nil).Once()
}

// --- RecordPayment ---

func (suite *PaymentServiceTestSuite) TestRecordPayment_Success() {
	ctx := context.Background()
	req := dto.RecordPaymentRequest{
		BankLedgerID:     suite.bankLedgerID,
		RevenueAccountID: suite.revenueAcctID,
		Amount:           decimal.RequireFromString("1200.00"),
		PaymentType:      domain.PaymentCash,
		PayerName:        "Jordan Miles",
		PaymentDate:      "2025-08-15",
	}

	suite.expectEntity()
	suite.expectBankLedger()
	suite.expectRevenueAccount()

	var savedWrites []portsrepo.PaymentWrite
	var savedEntries []domain.LedgerEntry
	var savedDeltas map[string]decimal.Decimal
	suite.mockPaymentRepo.On("SavePaymentBatch", ctx, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			savedWrites = args.Get(1).([]portsrepo.PaymentWrite)
			savedEntries = args.Get(2).([]domain.LedgerEntry)
			savedDeltas = args.Get(3).(map[string]decimal.Decimal)
		}).Return(nil).Once()
	suite.expectFreshBalance("1200.00")

	resp, err := suite.service.RecordPayment(ctx, suite.entityID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.True(strings.HasPrefix(resp.Payment.PaymentNumber, "PAY-"))
	suite.Equal(domain.PaymentCompleted, resp.Payment.Status)
	suite.Equal(domain.ProcessingPending, resp.Payment.ProcessingStatus)
	suite.True(resp.Payment.IsDeposited)
	suite.True(resp.BankBalance.Equal(decimal.RequireFromString("1200.00")))
	suite.Equal(suite.assetAccountID, resp.BankChartAccountUsed.ChartAccountID)

	// The batch carries one insert, a balanced pair and a positive delta.
	suite.Require().Len(savedWrites, 1)
	suite.False(savedWrites[0].IsUpdate)
	suite.Nil(savedWrites[0].Application)
	suite.Require().Len(savedEntries, 2)
	suite.True(savedEntries[0].DebitAmount.Equal(savedEntries[1].CreditAmount))
	suite.Equal(suite.assetAccountID, savedEntries[0].ChartAccountID)
	suite.Equal(suite.revenueAcctID, savedEntries[1].ChartAccountID)
	suite.Equal(domain.EntryPayment, savedEntries[0].EntryType)
	suite.True(savedDeltas[suite.bankLedgerID].Equal(decimal.RequireFromString("1200.00")))

	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_UnlinkedBankLedger() {
	ctx := context.Background()
	unlinked := &domain.BankLedger{
		BankLedgerID: suite.bankLedgerID,
		EntityID:     suite.entityID,
		IsActive:     true,
	}
	req := dto.RecordPaymentRequest{
		BankLedgerID:     suite.bankLedgerID,
		RevenueAccountID: suite.revenueAcctID,
		Amount:           decimal.RequireFromString("500.00"),
		PaymentType:      domain.PaymentCash,
	}

	suite.expectEntity()
	suite.mockBankRepo.On("FindBankLedgerByID", mock.Anything, suite.bankLedgerID).Return(unlinked, nil).Once()

	resp, err := suite.service.RecordPayment(ctx, suite.entityID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "SavePaymentBatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_NonRevenueAccount() {
	ctx := context.Background()
	expense := &domain.ChartAccount{
		ChartAccountID: suite.revenueAcctID,
		EntityID:       suite.entityID,
		AccountCode:    "5100",
		AccountType:    domain.Expense,
		IsActive:       true,
	}
	req := dto.RecordPaymentRequest{
		BankLedgerID:     suite.bankLedgerID,
		RevenueAccountID: suite.revenueAcctID,
		Amount:           decimal.RequireFromString("500.00"),
		PaymentType:      domain.PaymentCash,
	}

	suite.expectEntity()
	suite.expectBankLedger()
	suite.mockAccountRepo.On("FindChartAccountByID", mock.Anything, suite.revenueAcctID).Return(expense, nil).Once()

	resp, err := suite.service.RecordPayment(ctx, suite.entityID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_NonPositiveAmount() {
	ctx := context.Background()
	req := dto.RecordPaymentRequest{
		BankLedgerID:     suite.bankLedgerID,
		RevenueAccountID: suite.revenueAcctID,
		Amount:           decimal.Zero,
		PaymentType:      domain.PaymentCash,
	}

	suite.expectEntity()
	suite.expectBankLedger()
	suite.expectRevenueAccount()

	resp, err := suite.service.RecordPayment(ctx, suite.entityID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_CompletesPreRecorded() {
	ctx := context.Background()
	paymentID := uuid.NewString()
	preRecorded := &domain.Payment{
		PaymentID:        paymentID,
		EntityID:         suite.entityID,
		Amount:           decimal.RequireFromString("950.00"),
		PaymentType:      domain.PaymentCheck,
		PaymentMethod:    domain.MethodManual,
		Status:           domain.PaymentPending,
		ProcessingStatus: domain.ProcessingPending,
		PaymentNumber:    "PAY-1722520800000",
		PayerName:        "Casey Bern",
	}
	req := dto.RecordPaymentRequest{
		BankLedgerID:     suite.bankLedgerID,
		RevenueAccountID: suite.revenueAcctID,
		PaymentID:        &paymentID,
		PaymentDate:      "2025-08-20",
	}

	suite.expectEntity()
	suite.expectBankLedger()
	suite.expectRevenueAccount()
	suite.mockPaymentRepo.On("FindPaymentByID", ctx, paymentID).Return(preRecorded, nil).Once()

	var savedWrites []portsrepo.PaymentWrite
	suite.mockPaymentRepo.On("SavePaymentBatch", ctx, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			savedWrites = args.Get(1).([]portsrepo.PaymentWrite)
		}).Return(nil).Once()
	suite.expectFreshBalance("950.00")

	resp, err := suite.service.RecordPayment(ctx, suite.entityID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.Require().Len(savedWrites, 1)
	suite.True(savedWrites[0].IsUpdate)
	suite.Equal(domain.PaymentCompleted, savedWrites[0].Payment.Status)
	suite.True(savedWrites[0].Payment.IsDeposited)
	suite.Equal(suite.bankLedgerID, savedWrites[0].Payment.BankLedgerID)
	suite.Require().NotNil(savedWrites[0].Payment.DepositDate)
	suite.Equal(time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC), *savedWrites[0].Payment.DepositDate)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_AlreadyDeposited() {
	ctx := context.Background()
	paymentID := uuid.NewString()
	deposited := &domain.Payment{
		PaymentID:   paymentID,
		EntityID:    suite.entityID,
		Amount:      decimal.RequireFromString("950.00"),
		Status:      domain.PaymentCompleted,
		IsDeposited: true,
	}
	req := dto.RecordPaymentRequest{
		BankLedgerID:     suite.bankLedgerID,
		RevenueAccountID: suite.revenueAcctID,
		PaymentID:        &paymentID,
	}

	suite.expectEntity()
	suite.expectBankLedger()
	suite.expectRevenueAccount()
	suite.mockPaymentRepo.On("FindPaymentByID", ctx, paymentID).Return(deposited, nil).Once()

	resp, err := suite.service.RecordPayment(ctx, suite.entityID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "SavePaymentBatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_WithInvoiceApplication() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	invoice := &domain.Invoice{
		InvoiceID:     invoiceID,
		EntityID:      suite.entityID,
		InvoiceNumber: "INV-2025-0042",
		TotalAmount:   decimal.RequireFromString("1200.00"),
	}
	req := dto.RecordPaymentRequest{
		BankLedgerID:     suite.bankLedgerID,
		RevenueAccountID: suite.revenueAcctID,
		InvoiceID:        &invoiceID,
		Amount:           decimal.RequireFromString("1200.00"),
		PaymentType:      domain.PaymentACH,
		PayerName:        "Jordan Miles",
	}

	suite.expectEntity()
	suite.expectBankLedger()
	suite.expectRevenueAccount()
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoiceID).Return(invoice, nil).Once()

	var savedWrites []portsrepo.PaymentWrite
	suite.mockPaymentRepo.On("SavePaymentBatch", ctx, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			savedWrites = args.Get(1).([]portsrepo.PaymentWrite)
		}).Return(nil).Once()
	suite.expectFreshBalance("1200.00")

	resp, err := suite.service.RecordPayment(ctx, suite.entityID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.Require().Len(savedWrites, 1)
	suite.Require().NotNil(savedWrites[0].Application)
	suite.Equal(invoiceID, savedWrites[0].Application.InvoiceID)
	suite.True(savedWrites[0].Application.AppliedAmount.Equal(decimal.RequireFromString("1200.00")))
}

// --- RecordCheckDeposit ---

func (suite *PaymentServiceTestSuite) TestRecordCheckDeposit_Success() {
	ctx := context.Background()
	req := dto.RecordCheckDepositRequest{
		BankLedgerID: suite.bankLedgerID,
		DepositDate:  "2025-08-18",
		TotalAmount:  decimal.RequireFromString("2150.00"),
		Checks: []dto.CheckItem{
			{CheckNumber: "1042", Amount: decimal.RequireFromString("1200.00"), PayerName: "Jordan Miles", RevenueAccountID: suite.revenueAcctID},
			{CheckNumber: "587", Amount: decimal.RequireFromString("950.00"), PayerName: "Casey Bern", RevenueAccountID: suite.revenueAcctID},
		},
	}

	suite.expectEntity()
	suite.expectBankLedger()
	suite.mockAccountRepo.On("FindChartAccountByID", mock.Anything, suite.revenueAcctID).Return(suite.revenueAccount, nil).Twice()

	var savedWrites []portsrepo.PaymentWrite
	var savedEntries []domain.LedgerEntry
	var savedDeltas map[string]decimal.Decimal
	suite.mockPaymentRepo.On("SavePaymentBatch", ctx, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			savedWrites = args.Get(1).([]portsrepo.PaymentWrite)
			savedEntries = args.Get(2).([]domain.LedgerEntry)
			savedDeltas = args.Get(3).(map[string]decimal.Decimal)
		}).Return(nil).Once()
	suite.expectFreshBalance("2150.00")

	resp, err := suite.service.RecordCheckDeposit(ctx, suite.entityID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.True(strings.HasPrefix(resp.DepositSummary.SlipNumber, "DEP-"))
	suite.Equal(2, resp.DepositSummary.TotalChecks)
	suite.True(resp.DepositSummary.TotalAmount.Equal(decimal.RequireFromString("2150.00")))
	suite.Require().Len(resp.Payments, 2)
	suite.True(strings.HasPrefix(resp.Payments[0].PaymentNumber, "CHK-1042-"))
	suite.Equal(domain.PaymentCheck, resp.Payments[0].PaymentType)
	suite.Equal("1042", resp.Payments[0].ReferenceNumber)

	suite.Len(savedWrites, 2)
	suite.Len(savedEntries, 4)
	suite.Equal(domain.EntryDeposit, savedEntries[0].EntryType)
	suite.True(savedDeltas[suite.bankLedgerID].Equal(decimal.RequireFromString("2150.00")))
}

func (suite *PaymentServiceTestSuite) TestRecordCheckDeposit_TotalMismatch() {
	ctx := context.Background()
	req := dto.RecordCheckDepositRequest{
		BankLedgerID: suite.bankLedgerID,
		DepositDate:  "2025-08-18",
		TotalAmount:  decimal.RequireFromString("2000.00"),
		Checks: []dto.CheckItem{
			{CheckNumber: "1042", Amount: decimal.RequireFromString("1200.00"), RevenueAccountID: suite.revenueAcctID},
			{CheckNumber: "587", Amount: decimal.RequireFromString("950.00"), RevenueAccountID: suite.revenueAcctID},
		},
	}

	suite.expectEntity()
	suite.expectBankLedger()
	suite.mockAccountRepo.On("FindChartAccountByID", mock.Anything, suite.revenueAcctID).Return(suite.revenueAccount, nil).Twice()

	resp, err := suite.service.RecordCheckDeposit(ctx, suite.entityID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "SavePaymentBatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestRecordCheckDeposit_OmittedTotalRejected() {
	ctx := context.Background()
	req := dto.RecordCheckDepositRequest{
		BankLedgerID: suite.bankLedgerID,
		DepositDate:  "2025-08-18",
		Checks: []dto.CheckItem{
			{CheckNumber: "1042", Amount: decimal.RequireFromString("500.00"), RevenueAccountID: suite.revenueAcctID},
			{CheckNumber: "587", Amount: decimal.RequireFromString("350.50"), RevenueAccountID: suite.revenueAcctID},
		},
	}

	suite.expectEntity()
	suite.expectBankLedger()
	suite.mockAccountRepo.On("FindChartAccountByID", mock.Anything, suite.revenueAcctID).Return(suite.revenueAccount, nil).Twice()

	resp, err := suite.service.RecordCheckDeposit(ctx, suite.entityID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorContains(err, "850.5")
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "SavePaymentBatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestRecordCheckDeposit_PreRecordedAmountMismatch() {
	ctx := context.Background()
	paymentID := uuid.NewString()
	preRecorded := &domain.Payment{
		PaymentID:        paymentID,
		EntityID:         suite.entityID,
		Amount:           decimal.RequireFromString("950.00"),
		Status:           domain.PaymentPending,
		ProcessingStatus: domain.ProcessingPending,
	}
	req := dto.RecordCheckDepositRequest{
		BankLedgerID: suite.bankLedgerID,
		DepositDate:  "2025-08-18",
		Checks: []dto.CheckItem{
			{CheckNumber: "1042", Amount: decimal.RequireFromString("900.00"), RevenueAccountID: suite.revenueAcctID, PaymentID: &paymentID},
		},
	}

	suite.expectEntity()
	suite.expectBankLedger()
	suite.expectRevenueAccount()
	suite.mockPaymentRepo.On("FindPaymentByID", ctx, paymentID).Return(preRecorded, nil).Once()

	resp, err := suite.service.RecordCheckDeposit(ctx, suite.entityID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorContains(err, "check 1042")
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "SavePaymentBatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- RecordPaymentBatch ---

func (suite *PaymentServiceTestSuite) TestRecordPaymentBatch_DuplicatePayment() {
	ctx := context.Background()
	paymentID := uuid.NewString()
	req := dto.RecordPaymentBatchRequest{
		BankLedgerID: suite.bankLedgerID,
		Items: []dto.PaymentBatchItem{
			{PaymentID: paymentID, RevenueAccountID: suite.revenueAcctID},
			{PaymentID: paymentID, RevenueAccountID: suite.revenueAcctID},
		},
	}
	preRecorded := &domain.Payment{
		PaymentID:        paymentID,
		EntityID:         suite.entityID,
		Amount:           decimal.RequireFromString("600.00"),
		Status:           domain.PaymentPending,
		ProcessingStatus: domain.ProcessingPending,
	}

	suite.expectEntity()
	suite.expectBankLedger()
	suite.expectRevenueAccount()
	suite.mockPaymentRepo.On("FindPaymentByID", ctx, paymentID).Return(preRecorded, nil).Once()

	resp, err := suite.service.RecordPaymentBatch(ctx, suite.entityID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "SavePaymentBatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestRecordPaymentBatch_Success() {
	ctx := context.Background()
	firstID := uuid.NewString()
	secondID := uuid.NewString()
	first := &domain.Payment{
		PaymentID:        firstID,
		EntityID:         suite.entityID,
		Amount:           decimal.RequireFromString("600.00"),
		PaymentNumber:    "PAY-1722520800000",
		PayerName:        "Jordan Miles",
		Status:           domain.PaymentPending,
		ProcessingStatus: domain.ProcessingPending,
	}
	second := &domain.Payment{
		PaymentID:        secondID,
		EntityID:         suite.entityID,
		Amount:           decimal.RequireFromString("400.00"),
		PaymentNumber:    "PAY-1722520900000",
		PayerName:        "Casey Bern",
		Status:           domain.PaymentPending,
		ProcessingStatus: domain.ProcessingPending,
	}
	req := dto.RecordPaymentBatchRequest{
		BankLedgerID: suite.bankLedgerID,
		DepositDate:  "2025-08-19",
		Items: []dto.PaymentBatchItem{
			{PaymentID: firstID, RevenueAccountID: suite.revenueAcctID},
			{PaymentID: secondID, RevenueAccountID: suite.revenueAcctID},
		},
	}

	suite.expectEntity()
	suite.expectBankLedger()
	suite.mockAccountRepo.On("FindChartAccountByID", mock.Anything, suite.revenueAcctID).Return(suite.revenueAccount, nil).Twice()
	suite.mockPaymentRepo.On("FindPaymentByID", ctx, firstID).Return(first, nil).Once()
	suite.mockPaymentRepo.On("FindPaymentByID", ctx, secondID).Return(second, nil).Once()

	var savedWrites []portsrepo.PaymentWrite
	var savedDeltas map[string]decimal.Decimal
	suite.mockPaymentRepo.On("SavePaymentBatch", ctx, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			savedWrites = args.Get(1).([]portsrepo.PaymentWrite)
			savedDeltas = args.Get(3).(map[string]decimal.Decimal)
		}).Return(nil).Once()
	suite.expectFreshBalance("1000.00")

	resp, err := suite.service.RecordPaymentBatch(ctx, suite.entityID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.Len(resp.Payments, 2)
	suite.Require().Len(savedWrites, 2)
	suite.True(savedWrites[0].IsUpdate)
	suite.True(savedWrites[1].IsUpdate)
	suite.True(savedDeltas[suite.bankLedgerID].Equal(decimal.RequireFromString("1000.00")))
	suite.True(resp.BankBalance.Equal(decimal.RequireFromString("1000.00")))
}

// --- Reconciliation ---

func (suite *PaymentServiceTestSuite) TestGetUnreconciledPayments_FiltersAndTotals() {
	ctx := context.Background()
	payments := []domain.Payment{
		{PaymentID: uuid.NewString(), EntityID: suite.entityID, Amount: decimal.RequireFromString("600.00"), ProcessingStatus: domain.ProcessingPending},
		{PaymentID: uuid.NewString(), EntityID: suite.entityID, Amount: decimal.RequireFromString("150.50"), ProcessingStatus: domain.ProcessingPending},
	}
	params := dto.ListUnreconciledParams{
		BankLedgerID:  suite.bankLedgerID,
		StartDate:     "2025-08-01",
		EndDate:       "2025-08-31",
		PaymentMethod: "CHECK",
	}

	suite.mockPaymentRepo.On("ListPayments", ctx, suite.entityID, mock.MatchedBy(func(f portsrepo.ListPaymentsFilters) bool {
		return f.OnlyUnreconciled &&
			f.BankLedgerID == suite.bankLedgerID &&
			f.PaymentType == domain.PaymentCheck &&
			f.StartDate != nil && f.StartDate.Equal(time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)) &&
			f.EndDate != nil && f.EndDate.Equal(time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC))
	})).Return(payments, nil).Once()

	resp, err := suite.service.GetUnreconciledPayments(ctx, suite.entityID, params)

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.Len(resp.Payments, 2)
	suite.True(resp.TotalAmount.Equal(decimal.RequireFromString("750.50")))
}

func (suite *PaymentServiceTestSuite) TestGetUnreconciledPayments_UnknownMethod() {
	ctx := context.Background()
	params := dto.ListUnreconciledParams{PaymentMethod: "BITCOIN"}

	resp, err := suite.service.GetUnreconciledPayments(ctx, suite.entityID, params)

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PaymentServiceTestSuite) TestReconcilePayment_Success() {
	ctx := context.Background()
	paymentID := uuid.NewString()
	memo := "Cleared on Aug statement"
	payment := &domain.Payment{
		PaymentID:        paymentID,
		EntityID:         suite.entityID,
		Amount:           decimal.RequireFromString("600.00"),
		ProcessingStatus: domain.ProcessingPending,
	}

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, paymentID).Return(payment, nil).Once()
	suite.mockPaymentRepo.On("UpdatePayment", ctx, mock.MatchedBy(func(p domain.Payment) bool {
		return p.PaymentID == paymentID && p.ProcessingStatus == domain.ProcessingCleared && p.Memo == memo
	})).Return(nil).Once()

	reconciled, err := suite.service.ReconcilePayment(ctx, suite.entityID, paymentID, dto.ReconcilePaymentRequest{Memo: &memo}, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(reconciled)
	suite.Equal(domain.ProcessingCleared, reconciled.ProcessingStatus)
	suite.Equal(suite.userID, reconciled.LastUpdatedBy)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestReconcilePayment_AlreadyCleared() {
	ctx := context.Background()
	paymentID := uuid.NewString()
	payment := &domain.Payment{
		PaymentID:        paymentID,
		EntityID:         suite.entityID,
		ProcessingStatus: domain.ProcessingCleared,
	}

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, paymentID).Return(payment, nil).Once()

	reconciled, err := suite.service.ReconcilePayment(ctx, suite.entityID, paymentID, dto.ReconcilePaymentRequest{}, suite.userID)

	suite.Require().Error(err)
	suite.Nil(reconciled)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "UpdatePayment", mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestReconcilePayment_WrongEntity() {
	ctx := context.Background()
	paymentID := uuid.NewString()
	payment := &domain.Payment{
		PaymentID:        paymentID,
		EntityID:         uuid.NewString(),
		ProcessingStatus: domain.ProcessingPending,
	}

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, paymentID).Return(payment, nil).Once()

	reconciled, err := suite.service.ReconcilePayment(ctx, suite.entityID, paymentID, dto.ReconcilePaymentRequest{}, suite.userID)

	suite.Require().Error(err)
	suite.Nil(reconciled)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- Receipts and vocabulary ---

func (suite *PaymentServiceTestSuite) TestGenerateReceipt_WithInvoiceLines() {
	ctx := context.Background()
	paymentID := "a1b2c3d4-0000-0000-0000-000000000000"
	invoiceID := uuid.NewString()
	payment := &domain.Payment{
		PaymentID:     paymentID,
		EntityID:      suite.entityID,
		Amount:        decimal.RequireFromString("1200.00"),
		PaymentType:   domain.PaymentCheck,
		PaymentNumber: "CHK-1042-1722520800",
		PayerName:     "Jordan Miles",
	}
	applications := []domain.PaymentApplication{
		{PaymentApplicationID: uuid.NewString(), PaymentID: paymentID, InvoiceID: invoiceID, AppliedAmount: decimal.RequireFromString("1200.00")},
	}
	invoice := &domain.Invoice{
		InvoiceID:     invoiceID,
		EntityID:      suite.entityID,
		InvoiceNumber: "INV-2025-0042",
		LineItems: []domain.InvoiceLineItem{
			{LineItemID: uuid.NewString(), InvoiceID: invoiceID, Description: "August rent", Amount: decimal.RequireFromString("1150.00")},
			{LineItemID: uuid.NewString(), InvoiceID: invoiceID, Description: "Pet rent", Amount: decimal.RequireFromString("50.00")},
		},
	}

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, paymentID).Return(payment, nil).Once()
	suite.mockPaymentRepo.On("FindApplicationsByPaymentID", ctx, paymentID).Return(applications, nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceWithLineItems", ctx, invoiceID).Return(invoice, nil).Once()

	receipt, err := suite.service.GenerateReceipt(ctx, suite.entityID, paymentID, dto.GenerateReceiptRequest{Notes: "Thank you"})

	suite.Require().NoError(err)
	suite.Require().NotNil(receipt)
	suite.Equal("R-A1B2C3D4", receipt.ReceiptNumber)
	suite.Equal("INV-2025-0042", receipt.InvoiceNumber)
	suite.Require().Len(receipt.LineItems, 2)
	suite.Equal("August rent", receipt.LineItems[0].Description)
	suite.Equal("Thank you", receipt.Notes)
	suite.WithinDuration(time.Now(), receipt.GeneratedAt, time.Second)
}

func (suite *PaymentServiceTestSuite) TestGenerateReceipt_NoApplications() {
	ctx := context.Background()
	paymentID := uuid.NewString()
	payment := &domain.Payment{
		PaymentID:     paymentID,
		EntityID:      suite.entityID,
		Amount:        decimal.RequireFromString("300.00"),
		PaymentType:   domain.PaymentCash,
		PaymentNumber: "PAY-1722520800000",
	}

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, paymentID).Return(payment, nil).Once()
	suite.mockPaymentRepo.On("FindApplicationsByPaymentID", ctx, paymentID).Return([]domain.PaymentApplication{}, nil).Once()

	receipt, err := suite.service.GenerateReceipt(ctx, suite.entityID, paymentID, dto.GenerateReceiptRequest{})

	suite.Require().NoError(err)
	suite.Require().NotNil(receipt)
	suite.Empty(receipt.InvoiceNumber)
	suite.Empty(receipt.LineItems)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "FindInvoiceWithLineItems", mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestGetPaymentMethods_ReturnsVocabulary() {
	methods := suite.service.GetPaymentMethods()

	suite.Equal(domain.PaymentTypes, methods)

	// Mutating the returned slice must not leak into the vocabulary.
	methods[0] = domain.PaymentType("TAMPERED")
	suite.Equal(domain.PaymentCheck, domain.PaymentTypes[0])
}

func TestPaymentService(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}
