package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/divya9658/financial-ledger-api/internal/apperrors"
	"github.com/divya9658/financial-ledger-api/internal/core/domain"
	portsrepo "github.com/divya9658/financial-ledger-api/internal/core/ports/repositories"
)

// PgxLedgerRepository persists transactions and ledger entries. The ledger is
// append-only: this repository exposes no update or delete statement at all.
type PgxLedgerRepository struct {
	pool *pgxpool.Pool
}

// NewPgxLedgerRepository creates a new repository for ledger data.
func NewPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{pool: pool}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

// SaveTransaction appends a transaction and its entries within one database
// transaction: all rows become visible together or not at all.
func (r *PgxLedgerRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, entries []domain.LedgerEntry) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txnQuery := `
		INSERT INTO transactions (transaction_id, kind, status, amount, currency_code, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err = tx.Exec(ctx, txnQuery,
		txn.TransactionID,
		txn.Kind,
		txn.Status,
		txn.Amount,
		txn.CurrencyCode,
		txn.Description,
		txn.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction %s: %w", txn.TransactionID, err)
	}

	batch := &pgx.Batch{}
	entryQuery := `
		INSERT INTO ledger_entries (entry_id, transaction_id, account_id, entry_type, amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	for _, entry := range entries {
		batch.Queue(entryQuery,
			entry.EntryID,
			entry.TransactionID,
			entry.AccountID,
			entry.EntryType,
			entry.Amount,
			entry.CreatedAt,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert entries for transaction %s: %w", txn.TransactionID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction %s: %w", txn.TransactionID, err)
	}

	return nil
}

// FindTransactionByID retrieves a committed transaction header.
func (r *PgxLedgerRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `
		SELECT transaction_id, kind, status, amount, currency_code, description, created_at
		FROM transactions
		WHERE transaction_id = $1;
	`
	var txn domain.Transaction
	err := r.pool.QueryRow(ctx, query, transactionID).Scan(
		&txn.TransactionID,
		&txn.Kind,
		&txn.Status,
		&txn.Amount,
		&txn.CurrencyCode,
		&txn.Description,
		&txn.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	return &txn, nil
}

// FindEntriesByTransactionID retrieves all entries belonging to a transaction.
func (r *PgxLedgerRepository) FindEntriesByTransactionID(ctx context.Context, transactionID string) ([]domain.LedgerEntry, error) {
	query := `
		SELECT entry_id, transaction_id, account_id, entry_type, amount, created_at
		FROM ledger_entries
		WHERE transaction_id = $1
		ORDER BY created_at, entry_id;
	`
	return r.queryEntries(ctx, query, transactionID)
}

// FindEntriesByAccountID retrieves all entries affecting an account in commit order.
func (r *PgxLedgerRepository) FindEntriesByAccountID(ctx context.Context, accountID string) ([]domain.LedgerEntry, error) {
	query := `
		SELECT entry_id, transaction_id, account_id, entry_type, amount, created_at
		FROM ledger_entries
		WHERE account_id = $1
		ORDER BY created_at, entry_id;
	`
	return r.queryEntries(ctx, query, accountID)
}

// FindEntriesByAccountIDAsOf retrieves the entries committed at or before asOf.
func (r *PgxLedgerRepository) FindEntriesByAccountIDAsOf(ctx context.Context, accountID string, asOf time.Time) ([]domain.LedgerEntry, error) {
	query := `
		SELECT entry_id, transaction_id, account_id, entry_type, amount, created_at
		FROM ledger_entries
		WHERE account_id = $1 AND created_at <= $2
		ORDER BY created_at, entry_id;
	`
	return r.queryEntries(ctx, query, accountID, asOf)
}

// CountEntriesByAccountID reports how many entries an account has.
func (r *PgxLedgerRepository) CountEntriesByAccountID(ctx context.Context, accountID string) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM ledger_entries WHERE account_id = $1`, accountID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count entries for account %s: %w", accountID, err)
	}
	return count, nil
}

func (r *PgxLedgerRepository) queryEntries(ctx context.Context, query string, args ...any) ([]domain.LedgerEntry, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.LedgerEntry{}
	for rows.Next() {
		var entry domain.LedgerEntry
		if err := rows.Scan(
			&entry.EntryID,
			&entry.TransactionID,
			&entry.AccountID,
			&entry.EntryType,
			&entry.Amount,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry row: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger entry rows: %w", err)
	}
	return entries, nil
}
