package services

import (
	"context"

	"github.com/divya9658/financial-ledger-api/internal/core/domain"
	"github.com/divya9658/financial-ledger-api/internal/dto"
)

// AccountSvcFacade defines the operations of the account directory. Accounts
// carry identity and currency only; balances live in the ledger service.
type AccountSvcFacade interface {
	// CreateAccount onboards a new account for a user.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error)

	// GetAccountByID retrieves an account or ErrAccountNotFound.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// GetAccountsByIDs retrieves several accounts at once, keyed by ID.
	GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccountsByUser retrieves all accounts owned by a user.
	ListAccountsByUser(ctx context.Context, userID string) ([]domain.Account, error)
}
