package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// EntryType indicates whether an entry moves value out of (DEBIT) or into
// (CREDIT) an account. The sign of the effect lives here, never in the amount.
type EntryType string

const (
	Debit  EntryType = "DEBIT"
	Credit EntryType = "CREDIT"
)

// LedgerEntry is one leg of a transaction, affecting exactly one account.
// Entries are append-only: once committed they are never updated or deleted.
type LedgerEntry struct {
	EntryID       string          `json:"entryID"`       // Primary Key (UUID)
	TransactionID string          `json:"transactionID"` // FK -> Transaction
	AccountID     string          `json:"accountID"`     // FK -> Account
	EntryType     EntryType       `json:"entryType"`
	Amount        decimal.Decimal `json:"amount"` // Strictly positive
	CreatedAt     time.Time       `json:"createdAt"`
}

// Signed returns the entry's effect on its account balance: positive for a
// credit, negative for a debit.
func (e *LedgerEntry) Signed() decimal.Decimal {
	if e.EntryType == Debit {
		return e.Amount.Neg()
	}
	return e.Amount
}

// BalanceOf folds a set of entries into a point-in-time balance,
// sum(credits) - sum(debits).
func BalanceOf(entries []LedgerEntry) decimal.Decimal {
	balance := decimal.Zero
	for i := range entries {
		balance = balance.Add(entries[i].Signed())
	}
	return balance
}

// ValidateEntrySet checks the double-entry shape of a transaction's entries
// before commit: positive amounts, the leg count the kind demands, and a
// zero-sum debit/credit split for transfers.
func ValidateEntrySet(kind TransactionKind, entries []LedgerEntry) error {
	debits := decimal.Zero
	credits := decimal.Zero
	debitCount, creditCount := 0, 0
	for i := range entries {
		if entries[i].Amount.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("entry %s has non-positive amount %s", entries[i].EntryID, entries[i].Amount)
		}
		switch entries[i].EntryType {
		case Debit:
			debits = debits.Add(entries[i].Amount)
			debitCount++
		case Credit:
			credits = credits.Add(entries[i].Amount)
			creditCount++
		default:
			return fmt.Errorf("entry %s has unknown entry type %q", entries[i].EntryID, entries[i].EntryType)
		}
	}

	switch kind {
	case Transfer:
		if debitCount != 1 || creditCount != 1 {
			return fmt.Errorf("transfer requires exactly one debit and one credit entry, got %d debits and %d credits", debitCount, creditCount)
		}
		if !debits.Equal(credits) {
			return fmt.Errorf("transfer entries do not balance: debits %s, credits %s", debits, credits)
		}
	case Deposit:
		if debitCount != 0 || creditCount != 1 {
			return fmt.Errorf("deposit requires exactly one credit entry, got %d debits and %d credits", debitCount, creditCount)
		}
	case Withdrawal:
		if debitCount != 1 || creditCount != 0 {
			return fmt.Errorf("withdrawal requires exactly one debit entry, got %d debits and %d credits", debitCount, creditCount)
		}
	default:
		return fmt.Errorf("unknown transaction kind %q", kind)
	}
	return nil
}
