package events

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionCommitted is emitted after a ledger transaction and its entries
// have been durably committed. Consumers must tolerate duplicates.
type TransactionCommitted struct {
	TransactionID string          `json:"transaction_id"`
	Kind          string          `json:"kind"`
	SourceAccount string          `json:"source_account,omitempty"`
	DestAccount   string          `json:"dest_account,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	CurrencyCode  string          `json:"currency_code"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

// Publisher delivers committed-transaction events to interested systems.
// Publishing is best effort from the ledger's point of view: a failed publish
// never unwinds a committed transaction.
type Publisher interface {
	Publish(ctx context.Context, event TransactionCommitted) error
}
