package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/divya9658/financial-ledger-api/internal/apperrors"
	"github.com/divya9658/financial-ledger-api/internal/core/domain"
	portsrepo "github.com/divya9658/financial-ledger-api/internal/core/ports/repositories"
	portssvc "github.com/divya9658/financial-ledger-api/internal/core/ports/services"
	"github.com/divya9658/financial-ledger-api/internal/dto"
	"github.com/divya9658/financial-ledger-api/internal/middleware"
)

var (
	ErrAccountNotFound  = errors.New("account not found")
	ErrDuplicateAccount = errors.New("account already exists for this user and currency")
)

// accountService provides the account directory operations. It is read-mostly
// from the ledger's point of view: accounts are created at onboarding and
// never mutated by ledger operations.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount onboards a new account. A user may hold at most one account
// per currency; violations surface as ErrDuplicateAccount.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:    uuid.NewString(),
		UserID:       req.UserID,
		AccountType:  req.AccountType,
		CurrencyCode: req.CurrencyCode,
		Status:       domain.AccountActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: user %s currency %s", ErrDuplicateAccount, req.UserID, req.CurrencyCode)
		}
		logger.Error("Failed to save account", slog.String("error", err.Error()), slog.String("user_id", req.UserID))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("currency", account.CurrencyCode))
	return &account, nil
}

// GetAccountByID retrieves an account or ErrAccountNotFound.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, accountID)
		}
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	return account, nil
}

// GetAccountsByIDs retrieves several accounts at once, keyed by ID. Missing
// accounts are simply absent from the result map.
func (s *accountService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to find accounts: %w", err)
	}
	return accounts, nil
}

// ListAccountsByUser retrieves all accounts owned by a user.
func (s *accountService) ListAccountsByUser(ctx context.Context, userID string) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccountsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts for user %s: %w", userID, err)
	}
	return accounts, nil
}
