package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/mediakarsa/backoffice/internal/apperrors"
	"github.com/mediakarsa/backoffice/internal/core/domain"
	portssvc "github.com/mediakarsa/backoffice/internal/core/ports/services"
	"github.com/mediakarsa/backoffice/internal/dto"
	"github.com/mediakarsa/backoffice/internal/handlers"
	"github.com/mediakarsa/backoffice/internal/platform/config"
)

// --- Mock AccountService ---
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

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

func (m *MockTransactionService) CreateTransaction(ctx context.Context, organizationID string, req dto.CreateTransactionRequest, userID string) (*domain.Transaction, error) {
	args := m.Called(ctx, organizationID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) CreateFromCostingLines(ctx context.Context, organizationID string, req dto.CreateFromCostingRequest, userID string) (*domain.Transaction, error) {
	args := m.Called(ctx, organizationID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) GetTransactionByID(ctx context.Context, organizationID string, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, organizationID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) ListTransactions(ctx context.Context, organizationID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	args := m.Called(ctx, organizationID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransactionsResponse), args.Error(1)
}

func (m *MockTransactionService) ListEntriesByAccount(ctx context.Context, organizationID string, accountID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	args := m.Called(ctx, organizationID, accountID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListEntriesResponse), args.Error(1)
}

func (m *MockTransactionService) PostTransaction(ctx context.Context, organizationID string, transactionID string, userID string) (*domain.Transaction, error) {
	args := m.Called(ctx, organizationID, transactionID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) ReverseTransaction(ctx context.Context, organizationID string, transactionID string, userID string) (*domain.Transaction, error) {
	args := m.Called(ctx, organizationID, transactionID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) DeleteTransaction(ctx context.Context, organizationID string, transactionID string) error {
	args := m.Called(ctx, organizationID, transactionID)
	return args.Error(0)
}

func (m *MockTransactionService) GetVoucher(ctx context.Context, organizationID string, transactionID string) (*domain.TransactionVoucher, error) {
	args := m.Called(ctx, organizationID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionVoucher), args.Error(1)
}

// --- Mock OrganizationService ---
type MockOrganizationService struct {
	mock.Mock
}

var _ portssvc.OrganizationSvcFacade = (*MockOrganizationService)(nil)

func (m *MockOrganizationService) CreateOrganization(ctx context.Context, req dto.CreateOrganizationRequest, userID string) (*domain.Organization, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}

func (m *MockOrganizationService) GetOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}

func (m *MockOrganizationService) ListOrganizations(ctx context.Context, limit int, offset int) ([]domain.Organization, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Organization), args.Error(1)
}

func (m *MockOrganizationService) UpdateOrganization(ctx context.Context, organizationID string, req dto.UpdateOrganizationRequest, userID string) (*domain.Organization, error) {
	args := m.Called(ctx, organizationID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}

func (m *MockOrganizationService) DeactivateOrganization(ctx context.Context, organizationID string, userID string) error {
	args := m.Called(ctx, organizationID, userID)
	return args.Error(0)
}

// --- Mock PettyCashService ---
type MockPettyCashService struct {
	mock.Mock
}

var _ portssvc.PettyCashSvcFacade = (*MockPettyCashService)(nil)

func (m *MockPettyCashService) CreatePettyCash(ctx context.Context, organizationID string, req dto.CreatePettyCashRequest, userID string) (*domain.PettyCash, error) {
	args := m.Called(ctx, organizationID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PettyCash), args.Error(1)
}

func (m *MockPettyCashService) GetPettyCashByID(ctx context.Context, organizationID string, pettyCashID string) (*domain.PettyCash, error) {
	args := m.Called(ctx, organizationID, pettyCashID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PettyCash), args.Error(1)
}

func (m *MockPettyCashService) ListPettyCash(ctx context.Context, organizationID string, params dto.ListPettyCashParams) (*dto.ListPettyCashResponse, error) {
	args := m.Called(ctx, organizationID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListPettyCashResponse), args.Error(1)
}

func (m *MockPettyCashService) PostPettyCash(ctx context.Context, organizationID string, pettyCashID string, userID string) (*domain.PettyCash, error) {
	args := m.Called(ctx, organizationID, pettyCashID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PettyCash), args.Error(1)
}

func (m *MockPettyCashService) VoidPettyCash(ctx context.Context, organizationID string, pettyCashID string, userID string) (*domain.PettyCash, error) {
	args := m.Called(ctx, organizationID, pettyCashID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PettyCash), args.Error(1)
}

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

var _ portssvc.ReportingSvcFacade = (*MockReportingService)(nil)

func (m *MockReportingService) TrialBalance(ctx context.Context, organizationID string, start, end time.Time) (*domain.TrialBalanceReport, error) {
	args := m.Called(ctx, organizationID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrialBalanceReport), args.Error(1)
}

func (m *MockReportingService) IncomeStatement(ctx context.Context, organizationID string, start, end time.Time) (*domain.IncomeStatementReport, error) {
	args := m.Called(ctx, organizationID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IncomeStatementReport), args.Error(1)
}

func (m *MockReportingService) BalanceSheet(ctx context.Context, organizationID string, asOf time.Time) (*domain.BalanceSheetReport, error) {
	args := m.Called(ctx, organizationID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceSheetReport), args.Error(1)
}

// --- Test Suite ---
type AccountHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockAccountSvc  *MockAccountService
	mockTxnSvc      *MockTransactionService
	mockOrgSvc      *MockOrganizationService
	mockPettySvc    *MockPettyCashService
	mockReportSvc   *MockReportingService
	jwtSecret       string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *AccountHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "backoffice-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	dto.RegisterCustomValidators()
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockAccountSvc = new(MockAccountService)
	suite.mockTxnSvc = new(MockTransactionService)
	suite.mockOrgSvc = new(MockOrganizationService)
	suite.mockPettySvc = new(MockPettyCashService)
	suite.mockReportSvc = new(MockReportingService)

	cfg := &config.Config{
		JWTSecret:    suite.jwtSecret,
		IsProduction: true, // keep swagger routes out of the test router
	}
	services := &portssvc.ServiceContainer{
		Organization: suite.mockOrgSvc,
		Account:      suite.mockAccountSvc,
		Transaction:  suite.mockTxnSvc,
		PettyCash:    suite.mockPettySvc,
		Reporting:    suite.mockReportSvc,
	}
	handlers.RegisterRoutes(suite.router, cfg, services)
}

func (suite *AccountHandlerTestSuite) authorizedRequest(method, url string, body []byte, userID string) *http.Request {
	var req *http.Request
	if body != nil {
		req, _ = http.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, url, nil)
	}
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	req.Header.Set("Accept", "application/json")
	return req
}

// --- Test Cases ---

func (suite *AccountHandlerTestSuite) TestCreateHeadAccount_Success() {
	userID := uuid.NewString()
	account := &domain.Account{
		AccountID:     uuid.NewString(),
		AccountNumber: "1000",
		Name:          "Current Assets",
		AccountType:   domain.Asset,
		IsActive:      true,
		IsParent:      true,
	}

	suite.mockAccountSvc.On("CreateHeadAccount",
		mock.Anything,
		mock.MatchedBy(func(req dto.CreateHeadAccountRequest) bool {
			return req.AccountNumber == "1000" && req.AccountType == domain.Asset
		}),
		userID,
	).Return(account, nil).Once()

	body, _ := json.Marshal(dto.CreateHeadAccountRequest{
		AccountNumber: "1000",
		Name:          "Current Assets",
		AccountType:   domain.Asset,
		IsParent:      true,
	})
	req := suite.authorizedRequest(http.MethodPost, "/api/v1/accounts/head", body, userID)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.AccountResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(account.AccountID, resp.AccountID)
	suite.Equal("1000", resp.AccountNumber)
	suite.mockAccountSvc.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestCreateHeadAccount_Unauthorized() {
	body, _ := json.Marshal(dto.CreateHeadAccountRequest{
		AccountNumber: "1000",
		Name:          "Current Assets",
		AccountType:   domain.Asset,
	})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/accounts/head", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockAccountSvc.AssertNotCalled(suite.T(), "CreateHeadAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestGetAccount_NotFound() {
	userID := uuid.NewString()
	accountID := uuid.NewString()

	suite.mockAccountSvc.On("GetAccountByID", mock.Anything, accountID).Return(nil, apperrors.ErrNotFound).Once()

	req := suite.authorizedRequest(http.MethodGet, "/api/v1/accounts/"+accountID, nil, userID)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *AccountHandlerTestSuite) TestDeleteAccount_ConflictWhenUsed() {
	userID := uuid.NewString()
	accountID := uuid.NewString()

	suite.mockAccountSvc.On("DeleteAccount", mock.Anything, accountID).
		Return(fmt.Errorf("%w: account has ledger entries and cannot be deleted", apperrors.ErrConflict)).Once()

	req := suite.authorizedRequest(http.MethodDelete, "/api/v1/accounts/"+accountID, nil, userID)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *AccountHandlerTestSuite) TestPostTransaction_Success() {
	userID := uuid.NewString()
	organizationID := uuid.NewString()
	transactionID := uuid.NewString()
	posted := &domain.Transaction{
		TransactionID:  transactionID,
		OrganizationID: organizationID,
		Status:         domain.Posted,
		Amount:         decimal.NewFromInt(100),
	}

	suite.mockTxnSvc.On("PostTransaction", mock.Anything, organizationID, transactionID, userID).Return(posted, nil).Once()

	url := fmt.Sprintf("/api/v1/organizations/%s/transactions/%s/post", organizationID, transactionID)
	req := suite.authorizedRequest(http.MethodPost, url, nil, userID)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.TransactionResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.Posted, resp.Status)
	suite.mockTxnSvc.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestPostTransaction_ConflictWhenNotDraft() {
	userID := uuid.NewString()
	organizationID := uuid.NewString()
	transactionID := uuid.NewString()

	suite.mockTxnSvc.On("PostTransaction", mock.Anything, organizationID, transactionID, userID).
		Return(nil, fmt.Errorf("%w: transaction is not in draft status", apperrors.ErrConflict)).Once()

	url := fmt.Sprintf("/api/v1/organizations/%s/transactions/%s/post", organizationID, transactionID)
	req := suite.authorizedRequest(http.MethodPost, url, nil, userID)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *AccountHandlerTestSuite) TestHealthCheck_Public() {
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

// --- Run Test Suite ---
func TestAccountHandler(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
