package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/mediakarsa/backoffice/internal/apperrors"
	"github.com/mediakarsa/backoffice/internal/core/domain"
	portsrepo "github.com/mediakarsa/backoffice/internal/core/ports/repositories"
	portssvc "github.com/mediakarsa/backoffice/internal/core/ports/services"
	"github.com/mediakarsa/backoffice/internal/core/services"
	"github.com/mediakarsa/backoffice/internal/dto"
)

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.TransactionRepository = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, entries []domain.Entry) error {
	args := m.Called(ctx, txn, entries)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindEntriesByTransactionID(ctx context.Context, transactionID string) ([]domain.Entry, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Entry), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, organizationID string, filter portsrepo.ListTransactionsFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, organizationID, filter, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Transaction), returnedNextToken, args.Error(2)
}

func (m *MockTransactionRepository) ListEntriesByAccount(ctx context.Context, organizationID string, accountID string, limit int, nextToken *string) ([]domain.Entry, *string, error) {
	args := m.Called(ctx, organizationID, accountID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Entry), returnedNextToken, args.Error(2)
}

func (m *MockTransactionRepository) PostTransaction(ctx context.Context, transactionID string, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, transactionID, balanceChanges, userID, now)
	return args.Error(0)
}

func (m *MockTransactionRepository) SaveReversal(ctx context.Context, reversal domain.Transaction, entries []domain.Entry, balanceChanges map[string]decimal.Decimal, originalTransactionID string) error {
	args := m.Called(ctx, reversal, entries, balanceChanges, originalTransactionID)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteDraftTransaction(ctx context.Context, transactionID string) error {
	args := m.Called(ctx, transactionID)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindVoucher(ctx context.Context, transactionID string) (*domain.TransactionVoucher, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionVoucher), args.Error(1)
}

// --- Mock AccountService (as used by TransactionService and PettyCashService) ---
type MockAccountService struct {
	mock.Mock
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

func (m *MockAccountService) CreateHeadAccount(ctx context.Context, req dto.CreateHeadAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) CreateSubAccount(ctx context.Context, parentID string, req dto.CreateSubAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, parentID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, organizationID string, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, organizationID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) GetValidParents(ctx context.Context, organizationID string) ([]domain.Account, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	args := m.Called(ctx, accountID, userID)
	return args.Error(0)
}

func (m *MockAccountService) DeleteAccount(ctx context.Context, accountID string) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

// --- Test Suite Setup ---
type TransactionServiceTestSuite struct {
	suite.Suite
	mockTxnRepo    *MockTransactionRepository
	mockAccountSvc *MockAccountService
	service        portssvc.TransactionSvcFacade
	organizationID string
	userID         string
	cashAccount    domain.Account
	incomeAccount  domain.Account
	expenseAccount domain.Account
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockAccountSvc = new(MockAccountService)
	suite.service = services.NewTransactionService(suite.mockTxnRepo, suite.mockAccountSvc)

	suite.organizationID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.cashAccount = domain.Account{
		AccountID:      uuid.NewString(),
		OrganizationID: suite.organizationID,
		AccountNumber:  "1000-01",
		AccountType:    domain.Asset,
		IsActive:       true,
	}
	suite.incomeAccount = domain.Account{
		AccountID:      uuid.NewString(),
		OrganizationID: suite.organizationID,
		AccountNumber:  "4000-01",
		AccountType:    domain.Income,
		IsActive:       true,
	}
	suite.expenseAccount = domain.Account{
		AccountID:      uuid.NewString(),
		OrganizationID: suite.organizationID,
		AccountNumber:  "5000-01",
		AccountType:    domain.Expense,
		IsActive:       true,
	}
}

func (suite *TransactionServiceTestSuite) accountsMap(accounts ...domain.Account) map[string]domain.Account {
	m := make(map[string]domain.Account, len(accounts))
	for _, a := range accounts {
		m[a.AccountID] = a
	}
	return m
}

// --- CreateTransaction ---

func (suite *TransactionServiceTestSuite) TestCreateTransaction_Success() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Date:        time.Now(),
		Description: "Cash sale",
		Entries: []dto.EntryRequest{
			{AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(100)},
			{AccountID: suite.incomeAccount.AccountID, Credit: decimal.NewFromInt(100)},
		},
	}

	suite.mockAccountSvc.On("GetAccountsByIDs", ctx, []string{suite.cashAccount.AccountID, suite.incomeAccount.AccountID}).
		Return(suite.accountsMap(suite.cashAccount, suite.incomeAccount), nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.AnythingOfType("[]domain.Entry")).Return(nil).Once()

	created, err := suite.service.CreateTransaction(ctx, suite.organizationID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.NotEmpty(created.TransactionID)
	suite.Equal(domain.Draft, created.Status)
	suite.Equal(suite.organizationID, created.OrganizationID)
	suite.True(decimal.NewFromInt(100).Equal(created.Amount))
	suite.Require().Len(created.Entries, 2)

	// Signed amounts are derived at creation time: debit on an asset and
	// credit on an income account both carry a positive impact.
	suite.True(decimal.NewFromInt(100).Equal(created.Entries[0].Amount))
	suite.True(decimal.NewFromInt(100).Equal(created.Entries[1].Amount))

	suite.mockAccountSvc.AssertExpectations(suite.T())
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_Unbalanced() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Date:        time.Now(),
		Description: "Broken journal",
		Entries: []dto.EntryRequest{
			{AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(100)},
			{AccountID: suite.incomeAccount.AccountID, Credit: decimal.NewFromInt(90)},
		},
	}

	created, err := suite.service.CreateTransaction(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, services.ErrUnbalanced)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_WithinTolerance() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Date:        time.Now(),
		Description: "Rounding remainder",
		Entries: []dto.EntryRequest{
			{AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromFloat(100.0005)},
			{AccountID: suite.incomeAccount.AccountID, Credit: decimal.NewFromInt(100)},
		},
	}

	suite.mockAccountSvc.On("GetAccountsByIDs", ctx, mock.AnythingOfType("[]string")).
		Return(suite.accountsMap(suite.cashAccount, suite.incomeAccount), nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.AnythingOfType("[]domain.Entry")).Return(nil).Once()

	created, err := suite.service.CreateTransaction(ctx, suite.organizationID, req, suite.userID)

	suite.Require().NoError(err)
	suite.NotNil(created)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_CrossTenantAccount() {
	ctx := context.Background()
	foreignAccount := domain.Account{
		AccountID:      uuid.NewString(),
		OrganizationID: uuid.NewString(), // different tenant
		AccountType:    domain.Asset,
		IsActive:       true,
	}
	req := dto.CreateTransactionRequest{
		Date:        time.Now(),
		Description: "Cross tenant",
		Entries: []dto.EntryRequest{
			{AccountID: foreignAccount.AccountID, Debit: decimal.NewFromInt(50)},
			{AccountID: suite.incomeAccount.AccountID, Credit: decimal.NewFromInt(50)},
		},
	}

	suite.mockAccountSvc.On("GetAccountsByIDs", ctx, mock.AnythingOfType("[]string")).
		Return(suite.accountsMap(foreignAccount, suite.incomeAccount), nil).Once()

	created, err := suite.service.CreateTransaction(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(created)
	// Foreign accounts are reported as not found, not as forbidden.
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_InactiveAccount() {
	ctx := context.Background()
	inactive := suite.cashAccount
	inactive.IsActive = false
	req := dto.CreateTransactionRequest{
		Date:        time.Now(),
		Description: "Inactive account",
		Entries: []dto.EntryRequest{
			{AccountID: inactive.AccountID, Debit: decimal.NewFromInt(50)},
			{AccountID: suite.incomeAccount.AccountID, Credit: decimal.NewFromInt(50)},
		},
	}

	suite.mockAccountSvc.On("GetAccountsByIDs", ctx, mock.AnythingOfType("[]string")).
		Return(suite.accountsMap(inactive, suite.incomeAccount), nil).Once()

	created, err := suite.service.CreateTransaction(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_GlobalAccountAllowed() {
	ctx := context.Background()
	globalHead := domain.Account{
		AccountID:   uuid.NewString(),
		AccountType: domain.Equity,
		IsActive:    true, // no organization: shared head account
	}
	req := dto.CreateTransactionRequest{
		Date:        time.Now(),
		Description: "Opening equity",
		Entries: []dto.EntryRequest{
			{AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(500)},
			{AccountID: globalHead.AccountID, Credit: decimal.NewFromInt(500)},
		},
	}

	suite.mockAccountSvc.On("GetAccountsByIDs", ctx, mock.AnythingOfType("[]string")).
		Return(suite.accountsMap(suite.cashAccount, globalHead), nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.AnythingOfType("[]domain.Entry")).Return(nil).Once()

	created, err := suite.service.CreateTransaction(ctx, suite.organizationID, req, suite.userID)

	suite.Require().NoError(err)
	suite.NotNil(created)
}

func (suite *TransactionServiceTestSuite) TestCreateFromCostingLines() {
	ctx := context.Background()
	jobBookingID := uuid.NewString()
	req := dto.CreateFromCostingRequest{
		JobBookingID: jobBookingID,
		Date:         time.Now(),
		Description:  "Job materials",
		Lines: []dto.CostingLine{
			{AccountID: suite.expenseAccount.AccountID, Debit: decimal.NewFromInt(250)},
			{AccountID: suite.cashAccount.AccountID, Credit: decimal.NewFromInt(250)},
		},
	}

	suite.mockAccountSvc.On("GetAccountsByIDs", ctx, mock.AnythingOfType("[]string")).
		Return(suite.accountsMap(suite.expenseAccount, suite.cashAccount), nil).Once()

	var savedTxn domain.Transaction
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.AnythingOfType("[]domain.Entry")).
		Run(func(args mock.Arguments) {
			savedTxn = args.Get(1).(domain.Transaction)
		}).Return(nil).Once()

	created, err := suite.service.CreateFromCostingLines(ctx, suite.organizationID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.Equal(domain.TypeExpense, savedTxn.TransactionType)
	suite.Require().NotNil(savedTxn.JobBookingID)
	suite.Equal(jobBookingID, *savedTxn.JobBookingID)
}

// --- PostTransaction ---

func (suite *TransactionServiceTestSuite) TestPostTransaction_Success() {
	ctx := context.Background()
	transactionID := uuid.NewString()
	draft := &domain.Transaction{
		TransactionID:  transactionID,
		OrganizationID: suite.organizationID,
		Status:         domain.Draft,
	}
	entries := []domain.Entry{
		{AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(100), Amount: decimal.NewFromInt(100)},
		{AccountID: suite.incomeAccount.AccountID, Credit: decimal.NewFromInt(100), Amount: decimal.NewFromInt(100)},
	}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, transactionID).Return(draft, nil).Once()
	suite.mockTxnRepo.On("FindEntriesByTransactionID", ctx, transactionID).Return(entries, nil).Once()

	var appliedChanges map[string]decimal.Decimal
	suite.mockTxnRepo.On("PostTransaction", ctx, transactionID, mock.AnythingOfType("map[string]decimal.Decimal"), suite.userID, mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			appliedChanges = args.Get(2).(map[string]decimal.Decimal)
		}).Return(nil).Once()

	posted, err := suite.service.PostTransaction(ctx, suite.organizationID, transactionID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.Posted, posted.Status)
	suite.Require().Len(appliedChanges, 2)
	suite.True(decimal.NewFromInt(100).Equal(appliedChanges[suite.cashAccount.AccountID]))
	suite.True(decimal.NewFromInt(100).Equal(appliedChanges[suite.incomeAccount.AccountID]))
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestPostTransaction_AlreadyPosted() {
	ctx := context.Background()
	transactionID := uuid.NewString()
	posted := &domain.Transaction{
		TransactionID:  transactionID,
		OrganizationID: suite.organizationID,
		Status:         domain.Posted,
	}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, transactionID).Return(posted, nil).Once()

	result, err := suite.service.PostTransaction(ctx, suite.organizationID, transactionID, suite.userID)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, services.ErrNotDraft)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "PostTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestPostTransaction_WrongOrganization() {
	ctx := context.Background()
	transactionID := uuid.NewString()
	other := &domain.Transaction{
		TransactionID:  transactionID,
		OrganizationID: uuid.NewString(),
		Status:         domain.Draft,
	}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, transactionID).Return(other, nil).Once()

	result, err := suite.service.PostTransaction(ctx, suite.organizationID, transactionID, suite.userID)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- ReverseTransaction ---

func (suite *TransactionServiceTestSuite) TestReverseTransaction_Success() {
	ctx := context.Background()
	transactionID := uuid.NewString()
	original := &domain.Transaction{
		TransactionID:  transactionID,
		OrganizationID: suite.organizationID,
		Status:         domain.Posted,
		Description:    "Cash sale",
		Amount:         decimal.NewFromInt(100),
	}
	entries := []domain.Entry{
		{AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(100), Amount: decimal.NewFromInt(100)},
		{AccountID: suite.incomeAccount.AccountID, Credit: decimal.NewFromInt(100), Amount: decimal.NewFromInt(100)},
	}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, transactionID).Return(original, nil).Once()
	suite.mockTxnRepo.On("FindEntriesByTransactionID", ctx, transactionID).Return(entries, nil).Once()

	var savedReversal domain.Transaction
	var savedEntries []domain.Entry
	var appliedChanges map[string]decimal.Decimal
	suite.mockTxnRepo.On("SaveReversal", ctx, mock.AnythingOfType("domain.Transaction"), mock.AnythingOfType("[]domain.Entry"), mock.AnythingOfType("map[string]decimal.Decimal"), transactionID).
		Run(func(args mock.Arguments) {
			savedReversal = args.Get(1).(domain.Transaction)
			savedEntries = args.Get(2).([]domain.Entry)
			appliedChanges = args.Get(3).(map[string]decimal.Decimal)
		}).Return(nil).Once()

	reversal, err := suite.service.ReverseTransaction(ctx, suite.organizationID, transactionID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(reversal)
	suite.Equal(domain.Posted, savedReversal.Status)
	suite.Equal(domain.TypeReturn, savedReversal.TransactionType)
	suite.Require().NotNil(savedReversal.OriginalTransactionID)
	suite.Equal(transactionID, *savedReversal.OriginalTransactionID)
	suite.Contains(savedReversal.Description, "Reversal of")

	// Entries are mirrored: debits become credits and the signed impact flips.
	suite.Require().Len(savedEntries, 2)
	suite.True(savedEntries[0].Debit.IsZero())
	suite.True(decimal.NewFromInt(100).Equal(savedEntries[0].Credit))
	suite.True(decimal.NewFromInt(-100).Equal(savedEntries[0].Amount))
	suite.True(decimal.NewFromInt(100).Equal(savedEntries[1].Debit))
	suite.True(savedEntries[1].Credit.IsZero())
	suite.True(decimal.NewFromInt(-100).Equal(savedEntries[1].Amount))

	// Reversal balance changes exactly negate the original posting.
	suite.True(decimal.NewFromInt(-100).Equal(appliedChanges[suite.cashAccount.AccountID]))
	suite.True(decimal.NewFromInt(-100).Equal(appliedChanges[suite.incomeAccount.AccountID]))
}

func (suite *TransactionServiceTestSuite) TestReverseTransaction_NotPosted() {
	ctx := context.Background()
	transactionID := uuid.NewString()
	draft := &domain.Transaction{
		TransactionID:  transactionID,
		OrganizationID: suite.organizationID,
		Status:         domain.Draft,
	}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, transactionID).Return(draft, nil).Once()

	_, err := suite.service.ReverseTransaction(ctx, suite.organizationID, transactionID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrNotPosted)
}

func (suite *TransactionServiceTestSuite) TestReverseTransaction_AlreadyReversed() {
	ctx := context.Background()
	transactionID := uuid.NewString()
	reversingID := uuid.NewString()
	original := &domain.Transaction{
		TransactionID:          transactionID,
		OrganizationID:         suite.organizationID,
		Status:                 domain.Posted,
		ReversingTransactionID: &reversingID,
	}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, transactionID).Return(original, nil).Once()

	_, err := suite.service.ReverseTransaction(ctx, suite.organizationID, transactionID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAlreadyReversed)
}

func (suite *TransactionServiceTestSuite) TestReverseTransaction_OfReversal() {
	ctx := context.Background()
	transactionID := uuid.NewString()
	originalID := uuid.NewString()
	reversal := &domain.Transaction{
		TransactionID:         transactionID,
		OrganizationID:        suite.organizationID,
		Status:                domain.Posted,
		OriginalTransactionID: &originalID,
	}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, transactionID).Return(reversal, nil).Once()

	_, err := suite.service.ReverseTransaction(ctx, suite.organizationID, transactionID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrReversalOfReversal)
}

// --- DeleteTransaction ---

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_DraftOnly() {
	ctx := context.Background()
	transactionID := uuid.NewString()
	draft := &domain.Transaction{
		TransactionID:  transactionID,
		OrganizationID: suite.organizationID,
		Status:         domain.Draft,
	}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, transactionID).Return(draft, nil).Once()
	suite.mockTxnRepo.On("DeleteDraftTransaction", ctx, transactionID).Return(nil).Once()

	err := suite.service.DeleteTransaction(ctx, suite.organizationID, transactionID)

	suite.Require().NoError(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_PostedRejected() {
	ctx := context.Background()
	transactionID := uuid.NewString()
	posted := &domain.Transaction{
		TransactionID:  transactionID,
		OrganizationID: suite.organizationID,
		Status:         domain.Posted,
	}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, transactionID).Return(posted, nil).Once()

	err := suite.service.DeleteTransaction(ctx, suite.organizationID, transactionID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "DeleteDraftTransaction", mock.Anything, mock.Anything)
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
