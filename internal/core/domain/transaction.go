package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind names the financial event a transaction records.
type TransactionKind string

const (
	Transfer   TransactionKind = "TRANSFER"
	Deposit    TransactionKind = "DEPOSIT"
	Withdrawal TransactionKind = "WITHDRAWAL"
)

// TransactionStatus is the state of a committed transaction. Transactions are
// only ever persisted in COMPLETED state; an aborted operation writes nothing.
type TransactionStatus string

const (
	Completed TransactionStatus = "COMPLETED"
)

// Transaction is the immutable header of a single financial event. Its ledger
// entries carry the per-account effects; the header carries the economic value
// moved and an optional memo.
type Transaction struct {
	TransactionID string            `json:"transactionID"` // Primary Key (UUID)
	Kind          TransactionKind   `json:"kind"`
	Status        TransactionStatus `json:"status"`
	Amount        decimal.Decimal   `json:"amount"` // Value moved; always positive
	CurrencyCode  string            `json:"currencyCode"`
	Description   string            `json:"description"` // Optional memo
	CreatedAt     time.Time         `json:"createdAt"`
}
