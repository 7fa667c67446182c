package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"

	"github.com/divya9658/financial-ledger-api/internal/apperrors"
	"github.com/divya9658/financial-ledger-api/internal/core/domain"
	"github.com/divya9658/financial-ledger-api/internal/core/locking"
	"github.com/divya9658/financial-ledger-api/internal/core/ports/events"
	portsrepo "github.com/divya9658/financial-ledger-api/internal/core/ports/repositories"
	portssvc "github.com/divya9658/financial-ledger-api/internal/core/ports/services"
	"github.com/divya9658/financial-ledger-api/internal/dto"
	"github.com/divya9658/financial-ledger-api/internal/middleware"
)

var (
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrSameAccount       = errors.New("source and destination accounts must differ")
	ErrCurrencyMismatch  = errors.New("accounts do not share a currency")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrAccountInactive   = errors.New("account is not active")
)

var transactionsCommitted = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "ledger_transactions_committed_total",
	Help: "Committed ledger transactions by kind",
}, []string{"kind"})

// ledgerService is the transaction orchestrator. Each operation walks the same
// state machine: validate, lock the affected accounts in deterministic order,
// read balances under the lock, construct the transaction and its entries,
// commit them as one atomic unit, release the locks.
type ledgerService struct {
	accountSvc portssvc.AccountSvcFacade
	ledgerRepo portsrepo.LedgerRepositoryFacade
	locks      *locking.Manager
	publisher  events.Publisher // optional; nil disables event publishing
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade, accountSvc portssvc.AccountSvcFacade, locks *locking.Manager, publisher events.Publisher) portssvc.LedgerSvcFacade {
	return &ledgerService{
		accountSvc: accountSvc,
		ledgerRepo: ledgerRepo,
		locks:      locks,
		publisher:  publisher,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// balanceFor folds an account's entries into its current balance. Callers that
// need a write-consistent value must hold the account lock.
func (s *ledgerService) balanceFor(ctx context.Context, accountID string) (decimal.Decimal, error) {
	entries, err := s.ledgerRepo.FindEntriesByAccountID(ctx, accountID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to read ledger entries for account %s: %w", accountID, err)
	}
	return domain.BalanceOf(entries), nil
}

// resolveActiveAccount fetches an account and rejects inactive ones. Runs
// before any lock is taken so validation failures have no side effects.
func (s *ledgerService) resolveActiveAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountSvc.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !account.IsActive() {
		return nil, fmt.Errorf("%w: %s", ErrAccountInactive, accountID)
	}
	return account, nil
}

// Deposit credits an account. No sufficiency check: a credit cannot produce a
// negative balance.
func (s *ledgerService) Deposit(ctx context.Context, req dto.DepositRequest) (*dto.TransactionResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidAmount, req.Amount)
	}
	account, err := s.resolveActiveAccount(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}

	handle, err := s.locks.Acquire(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}
	defer handle.Release()

	balance, err := s.balanceFor(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		Kind:          domain.Deposit,
		Status:        domain.Completed,
		Amount:        req.Amount,
		CurrencyCode:  account.CurrencyCode,
		Description:   req.Description,
		CreatedAt:     now,
	}
	entries := []domain.LedgerEntry{
		{
			EntryID:       uuid.NewString(),
			TransactionID: txn.TransactionID,
			AccountID:     req.AccountID,
			EntryType:     domain.Credit,
			Amount:        req.Amount,
			CreatedAt:     now,
		},
	}

	if err := s.commit(ctx, txn, entries); err != nil {
		return nil, err
	}

	logger.Info("Deposit committed",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("account_id", req.AccountID),
		slog.String("amount", req.Amount.String()),
	)
	s.publishCommitted(ctx, txn, "", req.AccountID)

	return buildResult(txn, entries, map[string]decimal.Decimal{
		req.AccountID: balance.Add(req.Amount),
	}), nil
}

// Withdraw debits an account after a sufficiency check performed under the
// account lock. A balance exactly equal to the amount is sufficient.
func (s *ledgerService) Withdraw(ctx context.Context, req dto.WithdrawalRequest) (*dto.TransactionResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidAmount, req.Amount)
	}
	account, err := s.resolveActiveAccount(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}

	handle, err := s.locks.Acquire(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}
	defer handle.Release()

	balance, err := s.balanceFor(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}
	if balance.LessThan(req.Amount) {
		return nil, fmt.Errorf("%w: balance %s, requested %s", ErrInsufficientFunds, balance, req.Amount)
	}

	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		Kind:          domain.Withdrawal,
		Status:        domain.Completed,
		Amount:        req.Amount,
		CurrencyCode:  account.CurrencyCode,
		Description:   req.Description,
		CreatedAt:     now,
	}
	entries := []domain.LedgerEntry{
		{
			EntryID:       uuid.NewString(),
			TransactionID: txn.TransactionID,
			AccountID:     req.AccountID,
			EntryType:     domain.Debit,
			Amount:        req.Amount,
			CreatedAt:     now,
		},
	}

	if err := s.commit(ctx, txn, entries); err != nil {
		return nil, err
	}

	logger.Info("Withdrawal committed",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("account_id", req.AccountID),
		slog.String("amount", req.Amount.String()),
	)
	s.publishCommitted(ctx, txn, req.AccountID, "")

	return buildResult(txn, entries, map[string]decimal.Decimal{
		req.AccountID: balance.Sub(req.Amount),
	}), nil
}

// Transfer moves value between two same-currency accounts as one debit and one
// matching credit. Both account locks are held, in ascending id order, from
// before the source balance read until the atomic commit completes.
func (s *ledgerService) Transfer(ctx context.Context, req dto.TransferRequest) (*dto.TransactionResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidAmount, req.Amount)
	}
	if req.SourceAccountID == req.DestAccountID {
		return nil, fmt.Errorf("%w: %s", ErrSameAccount, req.SourceAccountID)
	}

	accounts, err := s.accountSvc.GetAccountsByIDs(ctx, []string{req.SourceAccountID, req.DestAccountID})
	if err != nil {
		return nil, err
	}
	source, ok := accounts[req.SourceAccountID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, req.SourceAccountID)
	}
	dest, ok := accounts[req.DestAccountID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, req.DestAccountID)
	}
	if !source.IsActive() {
		return nil, fmt.Errorf("%w: %s", ErrAccountInactive, source.AccountID)
	}
	if !dest.IsActive() {
		return nil, fmt.Errorf("%w: %s", ErrAccountInactive, dest.AccountID)
	}
	if source.CurrencyCode != dest.CurrencyCode {
		return nil, fmt.Errorf("%w: source %s, destination %s", ErrCurrencyMismatch, source.CurrencyCode, dest.CurrencyCode)
	}

	handle, err := s.locks.Acquire(ctx, req.SourceAccountID, req.DestAccountID)
	if err != nil {
		return nil, err
	}
	defer handle.Release()

	sourceBalance, err := s.balanceFor(ctx, req.SourceAccountID)
	if err != nil {
		return nil, err
	}
	if sourceBalance.LessThan(req.Amount) {
		return nil, fmt.Errorf("%w: balance %s, requested %s", ErrInsufficientFunds, sourceBalance, req.Amount)
	}
	destBalance, err := s.balanceFor(ctx, req.DestAccountID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		Kind:          domain.Transfer,
		Status:        domain.Completed,
		Amount:        req.Amount,
		CurrencyCode:  source.CurrencyCode,
		Description:   req.Description,
		CreatedAt:     now,
	}
	entries := []domain.LedgerEntry{
		{
			EntryID:       uuid.NewString(),
			TransactionID: txn.TransactionID,
			AccountID:     req.SourceAccountID,
			EntryType:     domain.Debit,
			Amount:        req.Amount,
			CreatedAt:     now,
		},
		{
			EntryID:       uuid.NewString(),
			TransactionID: txn.TransactionID,
			AccountID:     req.DestAccountID,
			EntryType:     domain.Credit,
			Amount:        req.Amount,
			CreatedAt:     now,
		},
	}

	if err := s.commit(ctx, txn, entries); err != nil {
		return nil, err
	}

	logger.Info("Transfer committed",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("source_account_id", req.SourceAccountID),
		slog.String("dest_account_id", req.DestAccountID),
		slog.String("amount", req.Amount.String()),
	)
	s.publishCommitted(ctx, txn, req.SourceAccountID, req.DestAccountID)

	return buildResult(txn, entries, map[string]decimal.Decimal{
		req.SourceAccountID: sourceBalance.Sub(req.Amount),
		req.DestAccountID:   destBalance.Add(req.Amount),
	}), nil
}

// commit runs the final double-entry guard and appends the transaction with
// its entries as a single atomic unit.
func (s *ledgerService) commit(ctx context.Context, txn domain.Transaction, entries []domain.LedgerEntry) error {
	if err := domain.ValidateEntrySet(txn.Kind, entries); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if err := s.ledgerRepo.SaveTransaction(ctx, txn, entries); err != nil {
		return fmt.Errorf("failed to commit transaction %s: %w", txn.TransactionID, err)
	}
	transactionsCommitted.WithLabelValues(string(txn.Kind)).Inc()
	return nil
}

// publishCommitted emits the committed-transaction event. Best effort: the
// ledger commit already happened, so a publish failure is only logged.
func (s *ledgerService) publishCommitted(ctx context.Context, txn domain.Transaction, sourceID, destID string) {
	if s.publisher == nil {
		return
	}
	event := events.TransactionCommitted{
		TransactionID: txn.TransactionID,
		Kind:          string(txn.Kind),
		SourceAccount: sourceID,
		DestAccount:   destID,
		Amount:        txn.Amount,
		CurrencyCode:  txn.CurrencyCode,
		OccurredAt:    txn.CreatedAt,
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Failed to publish transaction event",
			slog.String("transaction_id", txn.TransactionID),
			slog.String("error", err.Error()),
		)
	}
}

// GetBalance derives the current balance for an account. Lock-free by design:
// a read may trail a concurrent in-flight write, which is acceptable for a
// read-only query.
func (s *ledgerService) GetBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	if _, err := s.accountSvc.GetAccountByID(ctx, accountID); err != nil {
		return decimal.Zero, err
	}
	return s.balanceFor(ctx, accountID)
}

// GetBalanceAsOf derives the balance from entries committed at or before asOf.
func (s *ledgerService) GetBalanceAsOf(ctx context.Context, accountID string, asOf time.Time) (decimal.Decimal, error) {
	if _, err := s.accountSvc.GetAccountByID(ctx, accountID); err != nil {
		return decimal.Zero, err
	}
	entries, err := s.ledgerRepo.FindEntriesByAccountIDAsOf(ctx, accountID, asOf)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to read ledger entries for account %s: %w", accountID, err)
	}
	return domain.BalanceOf(entries), nil
}

// GetTransactionByID returns a committed transaction header with its entries.
func (s *ledgerService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, []domain.LedgerEntry, error) {
	txn, err := s.ledgerRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, apperrors.ErrNotFound
		}
		return nil, nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	entries, err := s.ledgerRepo.FindEntriesByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find entries for transaction %s: %w", transactionID, err)
	}
	return txn, entries, nil
}

// ListEntriesByAccount returns an account's ledger entries in commit order.
func (s *ledgerService) ListEntriesByAccount(ctx context.Context, accountID string) ([]domain.LedgerEntry, error) {
	if _, err := s.accountSvc.GetAccountByID(ctx, accountID); err != nil {
		return nil, err
	}
	entries, err := s.ledgerRepo.FindEntriesByAccountID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries for account %s: %w", accountID, err)
	}
	return entries, nil
}

func buildResult(txn domain.Transaction, entries []domain.LedgerEntry, balances map[string]decimal.Decimal) *dto.TransactionResult {
	return &dto.TransactionResult{
		Transaction: dto.ToTransactionResponse(&txn),
		Entries:     dto.ToEntryResponses(entries),
		NewBalances: balances,
	}
}
