package repositories

import (
	"context"
	"time"

	"github.com/divya9658/financial-ledger-api/internal/core/domain"
)

// LedgerReader defines read operations over the append-only ledger.
type LedgerReader interface {
	// FindTransactionByID retrieves a committed transaction header.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// FindEntriesByTransactionID retrieves all entries belonging to a transaction.
	FindEntriesByTransactionID(ctx context.Context, transactionID string) ([]domain.LedgerEntry, error)

	// FindEntriesByAccountID retrieves all entries affecting an account,
	// ordered by creation time.
	FindEntriesByAccountID(ctx context.Context, accountID string) ([]domain.LedgerEntry, error)

	// FindEntriesByAccountIDAsOf retrieves the entries affecting an account
	// that were committed at or before asOf, for point-in-time balances.
	FindEntriesByAccountIDAsOf(ctx context.Context, accountID string, asOf time.Time) ([]domain.LedgerEntry, error)

	// CountEntriesByAccountID reports how many entries an account has.
	CountEntriesByAccountID(ctx context.Context, accountID string) (int64, error)
}

// LedgerWriter defines the single mutation the ledger supports: appending a
// transaction together with its entries as one atomic unit. Either every row
// becomes visible or none does; committed rows are never updated or deleted.
type LedgerWriter interface {
	SaveTransaction(ctx context.Context, txn domain.Transaction, entries []domain.LedgerEntry) error
}

// LedgerRepositoryFacade combines all ledger repository interfaces
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}
