package dto

import (
	"time"

	"github.com/divya9658/financial-ledger-api/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DepositRequest credits a single account.
type DepositRequest struct {
	AccountID   string          `json:"accountID" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
}

// WithdrawalRequest debits a single account.
type WithdrawalRequest struct {
	AccountID   string          `json:"accountID" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
}

// TransferRequest moves value from a source to a destination account.
type TransferRequest struct {
	SourceAccountID string          `json:"sourceAccountID" binding:"required"`
	DestAccountID   string          `json:"destAccountID" binding:"required"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	Description     string          `json:"description"`
}

// EntryResponse defines the data returned for a single ledger entry.
type EntryResponse struct {
	EntryID       string          `json:"entryID"`
	TransactionID string          `json:"transactionID"`
	AccountID     string          `json:"accountID"`
	EntryType     string          `json:"entryType"`
	Amount        decimal.Decimal `json:"amount"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// TransactionResponse defines the data returned for a transaction header.
type TransactionResponse struct {
	TransactionID string          `json:"transactionID"`
	Kind          string          `json:"kind"`
	Status        string          `json:"status"`
	Amount        decimal.Decimal `json:"amount"`
	CurrencyCode  string          `json:"currencyCode"`
	Description   string          `json:"description,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// TransactionResult is returned by the orchestrator on a successful commit:
// the transaction, its entries, and the post-commit balance of each affected
// account (computed while the account locks were still held).
type TransactionResult struct {
	Transaction TransactionResponse       `json:"transaction"`
	Entries     []EntryResponse           `json:"entries"`
	NewBalances map[string]decimal.Decimal `json:"newBalances"`
}

// GetTransactionResponse combines a transaction header with its entries.
type GetTransactionResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	Entries     []EntryResponse     `json:"entries"`
}

// ListEntriesResponse wraps an account's ledger entries.
type ListEntriesResponse struct {
	AccountID string          `json:"accountID"`
	Entries   []EntryResponse `json:"entries"`
}

// ToTransactionResponse converts a domain.Transaction to its DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: txn.TransactionID,
		Kind:          string(txn.Kind),
		Status:        string(txn.Status),
		Amount:        txn.Amount,
		CurrencyCode:  txn.CurrencyCode,
		Description:   txn.Description,
		CreatedAt:     txn.CreatedAt,
	}
}

// ToEntryResponse converts a domain.LedgerEntry to its DTO.
func ToEntryResponse(e *domain.LedgerEntry) EntryResponse {
	return EntryResponse{
		EntryID:       e.EntryID,
		TransactionID: e.TransactionID,
		AccountID:     e.AccountID,
		EntryType:     string(e.EntryType),
		Amount:        e.Amount,
		CreatedAt:     e.CreatedAt,
	}
}

// ToEntryResponses converts a slice of entries to DTOs.
func ToEntryResponses(entries []domain.LedgerEntry) []EntryResponse {
	res := make([]EntryResponse, len(entries))
	for i := range entries {
		res[i] = ToEntryResponse(&entries[i])
	}
	return res
}
