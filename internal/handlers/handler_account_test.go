package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/divya9658/financial-ledger-api/internal/core/domain"
	portssvc "github.com/divya9658/financial-ledger-api/internal/core/ports/services"
	"github.com/divya9658/financial-ledger-api/internal/core/services"
	"github.com/divya9658/financial-ledger-api/internal/dto"
	"github.com/divya9658/financial-ledger-api/internal/handlers"
)

// --- Test Suite Setup ---
type AccountHandlerTestSuite struct {
	suite.Suite
	router            *gin.Engine
	mockAccountSvc    *MockAccountService
	mockLedgerService *MockLedgerService
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.mockAccountSvc = new(MockAccountService)
	suite.mockLedgerService = new(MockLedgerService)

	handlers.RegisterRoutes(suite.router, &portssvc.ServiceContainer{
		Account: suite.mockAccountSvc,
		Ledger:  suite.mockLedgerService,
	})
}

// --- Test Cases ---

func (suite *AccountHandlerTestSuite) TestCreateAccount_Created() {
	userID := uuid.NewString()
	account := &domain.Account{
		AccountID:    uuid.NewString(),
		UserID:       userID,
		AccountType:  domain.Checking,
		CurrencyCode: "USD",
		Status:       domain.AccountActive,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	suite.mockAccountSvc.On("CreateAccount", mock.Anything, mock.MatchedBy(func(req dto.CreateAccountRequest) bool {
		return req.UserID == userID && req.CurrencyCode == "USD"
	})).Return(account, nil).Once()

	body, _ := json.Marshal(gin.H{"userID": userID, "accountType": "CHECKING", "currencyCode": "USD"})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/accounts", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusCreated, w.Code)

	var responseBody dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &responseBody))
	suite.Equal(account.AccountID, responseBody.AccountID)
	suite.mockAccountSvc.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_InvalidCurrency() {
	body, _ := json.Marshal(gin.H{"userID": uuid.NewString(), "accountType": "CHECKING", "currencyCode": "NOPE"})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/accounts", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAccountSvc.AssertNotCalled(suite.T(), "CreateAccount", mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_Duplicate() {
	suite.mockAccountSvc.On("CreateAccount", mock.Anything, mock.AnythingOfType("dto.CreateAccountRequest")).
		Return(nil, fmt.Errorf("%w: user u1 currency USD", services.ErrDuplicateAccount)).Once()

	body, _ := json.Marshal(gin.H{"userID": uuid.NewString(), "accountType": "SAVINGS", "currencyCode": "USD"})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/accounts", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *AccountHandlerTestSuite) TestGetAccount_WithBalance() {
	account := &domain.Account{
		AccountID:    uuid.NewString(),
		UserID:       uuid.NewString(),
		AccountType:  domain.Savings,
		CurrencyCode: "EUR",
		Status:       domain.AccountActive,
	}
	suite.mockAccountSvc.On("GetAccountByID", mock.Anything, account.AccountID).Return(account, nil).Once()
	suite.mockLedgerService.On("GetBalance", mock.Anything, account.AccountID).Return(decimal.NewFromInt(250), nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/accounts/"+account.AccountID, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var responseBody dto.AccountWithBalanceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &responseBody))
	suite.Equal(account.AccountID, responseBody.AccountID)
	suite.True(responseBody.Balance.Equal(decimal.NewFromInt(250)))
}

func (suite *AccountHandlerTestSuite) TestGetAccount_NotFound() {
	accountID := uuid.NewString()
	suite.mockAccountSvc.On("GetAccountByID", mock.Anything, accountID).
		Return(nil, fmt.Errorf("%w: %s", services.ErrAccountNotFound, accountID)).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/accounts/"+accountID, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockLedgerService.AssertNotCalled(suite.T(), "GetBalance", mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestGetBalance_AsOf() {
	accountID := uuid.NewString()
	asOf := time.Now().UTC().Truncate(time.Second)
	suite.mockLedgerService.On("GetBalanceAsOf", mock.Anything, accountID, mock.MatchedBy(func(got time.Time) bool {
		return got.Equal(asOf)
	})).Return(decimal.NewFromInt(80), nil).Once()

	url := fmt.Sprintf("/api/v1/accounts/%s/balance?asOf=%s", accountID, asOf.Format(time.RFC3339))
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var responseBody dto.AccountBalanceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &responseBody))
	suite.True(responseBody.Balance.Equal(decimal.NewFromInt(80)))
	suite.Require().NotNil(responseBody.AsOf)
}

func (suite *AccountHandlerTestSuite) TestGetBalance_BadAsOf() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/accounts/"+uuid.NewString()+"/balance?asOf=yesterday", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLedgerService.AssertNotCalled(suite.T(), "GetBalanceAsOf", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestListEntries() {
	accountID := uuid.NewString()
	entries := []domain.LedgerEntry{
		{EntryID: uuid.NewString(), TransactionID: uuid.NewString(), AccountID: accountID, EntryType: domain.Credit, Amount: decimal.NewFromInt(100)},
		{EntryID: uuid.NewString(), TransactionID: uuid.NewString(), AccountID: accountID, EntryType: domain.Debit, Amount: decimal.NewFromInt(40)},
	}
	suite.mockLedgerService.On("ListEntriesByAccount", mock.Anything, accountID).Return(entries, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/accounts/"+accountID+"/entries", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var responseBody dto.ListEntriesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &responseBody))
	suite.Len(responseBody.Entries, 2)
}

func TestAccountHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
