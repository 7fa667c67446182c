package domain_test

import (
	"testing"

	"github.com/divya9658/financial-ledger-api/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func entry(entryType domain.EntryType, amount string) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:   "entry-" + string(entryType) + "-" + amount,
		EntryType: entryType,
		Amount:    decimal.RequireFromString(amount),
	}
}

func TestLedgerEntry_Signed(t *testing.T) {
	credit := entry(domain.Credit, "25.50")
	debit := entry(domain.Debit, "25.50")

	assert.True(t, credit.Signed().Equal(decimal.RequireFromString("25.50")))
	assert.True(t, debit.Signed().Equal(decimal.RequireFromString("-25.50")))
}

func TestBalanceOf(t *testing.T) {
	tests := []struct {
		name    string
		entries []domain.LedgerEntry
		want    string
	}{
		{
			name:    "no entries yields zero",
			entries: nil,
			want:    "0",
		},
		{
			name: "credits add and debits subtract",
			entries: []domain.LedgerEntry{
				entry(domain.Credit, "100"),
				entry(domain.Debit, "40"),
				entry(domain.Credit, "0.25"),
			},
			want: "60.25",
		},
		{
			name: "balance can reach exactly zero",
			entries: []domain.LedgerEntry{
				entry(domain.Credit, "50"),
				entry(domain.Debit, "50"),
			},
			want: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.BalanceOf(tt.entries)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s, want %s", got, tt.want)
		})
	}
}

func TestValidateEntrySet(t *testing.T) {
	tests := []struct {
		name    string
		kind    domain.TransactionKind
		entries []domain.LedgerEntry
		wantErr bool
	}{
		{
			name: "valid transfer",
			kind: domain.Transfer,
			entries: []domain.LedgerEntry{
				entry(domain.Debit, "75"),
				entry(domain.Credit, "75"),
			},
			wantErr: false,
		},
		{
			name: "transfer with unequal legs",
			kind: domain.Transfer,
			entries: []domain.LedgerEntry{
				entry(domain.Debit, "75"),
				entry(domain.Credit, "70"),
			},
			wantErr: true,
		},
		{
			name: "transfer with two credits",
			kind: domain.Transfer,
			entries: []domain.LedgerEntry{
				entry(domain.Credit, "75"),
				entry(domain.Credit, "75"),
			},
			wantErr: true,
		},
		{
			name:    "valid deposit",
			kind:    domain.Deposit,
			entries: []domain.LedgerEntry{entry(domain.Credit, "10")},
			wantErr: false,
		},
		{
			name:    "deposit must not debit",
			kind:    domain.Deposit,
			entries: []domain.LedgerEntry{entry(domain.Debit, "10")},
			wantErr: true,
		},
		{
			name:    "valid withdrawal",
			kind:    domain.Withdrawal,
			entries: []domain.LedgerEntry{entry(domain.Debit, "10")},
			wantErr: false,
		},
		{
			name:    "withdrawal must not credit",
			kind:    domain.Withdrawal,
			entries: []domain.LedgerEntry{entry(domain.Credit, "10")},
			wantErr: true,
		},
		{
			name:    "non-positive amount rejected",
			kind:    domain.Deposit,
			entries: []domain.LedgerEntry{entry(domain.Credit, "0")},
			wantErr: true,
		},
		{
			name:    "negative amount rejected",
			kind:    domain.Withdrawal,
			entries: []domain.LedgerEntry{entry(domain.Debit, "-5")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := domain.ValidateEntrySet(tt.kind, tt.entries)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
