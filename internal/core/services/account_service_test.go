package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/divya9658/financial-ledger-api/internal/apperrors"
	"github.com/divya9658/financial-ledger-api/internal/core/domain"
	portsrepo "github.com/divya9658/financial-ledger-api/internal/core/ports/repositories"
	"github.com/divya9658/financial-ledger-api/internal/core/services"
	"github.com/divya9658/financial-ledger-api/internal/dto"
)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccountsByUser(ctx context.Context, userID string) ([]domain.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func TestCreateAccount_Success(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockAccountRepository)
	svc := services.NewAccountService(mockRepo)
	req := dto.CreateAccountRequest{
		UserID:       uuid.NewString(),
		AccountType:  domain.Checking,
		CurrencyCode: "USD",
	}

	mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := svc.CreateAccount(ctx, req)

	require.NoError(t, err)
	require.NotNil(t, account)
	assert.NotEmpty(t, account.AccountID)
	assert.Equal(t, req.UserID, account.UserID)
	assert.Equal(t, domain.Checking, account.AccountType)
	assert.Equal(t, "USD", account.CurrencyCode)
	assert.Equal(t, domain.AccountActive, account.Status)
	mockRepo.AssertExpectations(t)
}

func TestCreateAccount_Duplicate(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockAccountRepository)
	svc := services.NewAccountService(mockRepo)
	req := dto.CreateAccountRequest{
		UserID:       uuid.NewString(),
		AccountType:  domain.Savings,
		CurrencyCode: "EUR",
	}

	mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(apperrors.ErrDuplicate).Once()

	_, err := svc.CreateAccount(ctx, req)

	require.Error(t, err)
	assert.ErrorIs(t, err, services.ErrDuplicateAccount)
	mockRepo.AssertExpectations(t)
}

func TestGetAccountByID_NotFound(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockAccountRepository)
	svc := services.NewAccountService(mockRepo)
	accountID := uuid.NewString()

	mockRepo.On("FindAccountByID", ctx, accountID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := svc.GetAccountByID(ctx, accountID)

	require.Error(t, err)
	assert.ErrorIs(t, err, services.ErrAccountNotFound)
	mockRepo.AssertExpectations(t)
}

func TestGetAccountByID_Success(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockAccountRepository)
	svc := services.NewAccountService(mockRepo)
	expected := &domain.Account{
		AccountID:    uuid.NewString(),
		UserID:       uuid.NewString(),
		AccountType:  domain.Checking,
		CurrencyCode: "USD",
		Status:       domain.AccountActive,
	}

	mockRepo.On("FindAccountByID", ctx, expected.AccountID).Return(expected, nil).Once()

	account, err := svc.GetAccountByID(ctx, expected.AccountID)

	require.NoError(t, err)
	assert.Equal(t, expected, account)
	mockRepo.AssertExpectations(t)
}
