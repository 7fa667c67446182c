package dto

import (
	"time"

	"github.com/divya9658/financial-ledger-api/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to onboard a new account.
type CreateAccountRequest struct {
	UserID       string             `json:"userID" binding:"required"`
	AccountType  domain.AccountType `json:"accountType" binding:"required,oneof=CHECKING SAVINGS"`
	CurrencyCode string             `json:"currencyCode" binding:"required,iso4217"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID    string             `json:"accountID"`
	UserID       string             `json:"userID"`
	AccountType  domain.AccountType `json:"accountType"`
	CurrencyCode string             `json:"currencyCode"`
	Status       string             `json:"status"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}

// AccountWithBalanceResponse is AccountResponse plus the derived balance.
// The balance is computed from the ledger at request time, never stored.
type AccountWithBalanceResponse struct {
	AccountResponse
	Balance decimal.Decimal `json:"balance"`
}

// AccountBalanceResponse defines the data returned for a balance query.
type AccountBalanceResponse struct {
	AccountID string          `json:"accountID"`
	Balance   decimal.Decimal `json:"balance"`
	AsOf      *time.Time      `json:"asOf,omitempty"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:    acc.AccountID,
		UserID:       acc.UserID,
		AccountType:  acc.AccountType,
		CurrencyCode: acc.CurrencyCode,
		Status:       string(acc.Status),
		CreatedAt:    acc.CreatedAt,
		UpdatedAt:    acc.UpdatedAt,
	}
}

// ToListAccountResponse converts a slice of domain.Account to response DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}
