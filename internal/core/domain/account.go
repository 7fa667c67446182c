package domain

import "time"

// AccountType classifies an account at onboarding time.
type AccountType string

const (
	Checking AccountType = "CHECKING"
	Savings  AccountType = "SAVINGS"
)

// AccountStatus is the lifecycle state of an account.
type AccountStatus string

const (
	AccountActive AccountStatus = "ACTIVE"
	AccountClosed AccountStatus = "CLOSED"
)

// Account identifies who owns a ledger position and in which currency.
// It deliberately carries no balance field: balances are always derived by
// folding over the account's ledger entries, never stored.
type Account struct {
	AccountID    string        `json:"accountID"`    // Primary Key (UUID)
	UserID       string        `json:"userID"`       // Owning user reference
	AccountType  AccountType   `json:"accountType"`  // CHECKING or SAVINGS
	CurrencyCode string        `json:"currencyCode"` // ISO 4217, e.g. "USD"
	Status       AccountStatus `json:"status"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// IsActive reports whether the account may participate in new transactions.
func (a *Account) IsActive() bool {
	return a.Status == AccountActive
}
