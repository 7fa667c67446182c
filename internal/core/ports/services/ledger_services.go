package services

import (
	"context"
	"time"

	"github.com/divya9658/financial-ledger-api/internal/core/domain"
	"github.com/divya9658/financial-ledger-api/internal/dto"
	"github.com/shopspring/decimal"
)

// LedgerSvcFacade is the transaction orchestrator: it sequences lock
// acquisition, balance checks, entry construction, and atomic commit for the
// three supported operation kinds, and exposes read-only ledger queries.
type LedgerSvcFacade interface {
	// Deposit credits an account. Credits cannot overdraw, so no balance
	// check is performed.
	Deposit(ctx context.Context, req dto.DepositRequest) (*dto.TransactionResult, error)

	// Withdraw debits an account after verifying sufficient funds under lock.
	Withdraw(ctx context.Context, req dto.WithdrawalRequest) (*dto.TransactionResult, error)

	// Transfer moves value between two same-currency accounts as one debit
	// and one matching credit, committed atomically.
	Transfer(ctx context.Context, req dto.TransferRequest) (*dto.TransactionResult, error)

	// GetBalance derives the current balance by folding the account's
	// ledger entries. Lock-free; may trail concurrent writers slightly.
	GetBalance(ctx context.Context, accountID string) (decimal.Decimal, error)

	// GetBalanceAsOf derives the balance from entries committed at or
	// before asOf.
	GetBalanceAsOf(ctx context.Context, accountID string, asOf time.Time) (decimal.Decimal, error)

	// GetTransactionByID returns a committed transaction with its entries.
	GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, []domain.LedgerEntry, error)

	// ListEntriesByAccount returns the account's ledger entries in commit order.
	ListEntriesByAccount(ctx context.Context, accountID string) ([]domain.LedgerEntry, error)
}
