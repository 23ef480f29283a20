package accounting_test

import (
	"testing"

	"github.com/mediakarsa/backoffice/internal/core/domain"
	"github.com/mediakarsa/backoffice/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignedAmount(t *testing.T) {
	hundred := decimal.NewFromInt(100)

	tests := []struct {
		name        string
		debit       decimal.Decimal
		credit      decimal.Decimal
		accountType domain.AccountType
		want        decimal.Decimal
	}{
		{"debit increases asset", hundred, decimal.Zero, domain.Asset, hundred},
		{"credit decreases asset", decimal.Zero, hundred, domain.Asset, hundred.Neg()},
		{"debit increases expense", hundred, decimal.Zero, domain.Expense, hundred},
		{"credit increases liability", decimal.Zero, hundred, domain.Liability, hundred},
		{"debit decreases liability", hundred, decimal.Zero, domain.Liability, hundred.Neg()},
		{"credit increases equity", decimal.Zero, hundred, domain.Equity, hundred},
		{"credit increases income", decimal.Zero, hundred, domain.Income, hundred},
		{"debit decreases income", hundred, decimal.Zero, domain.Income, hundred.Neg()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := accounting.SignedAmount(tt.debit, tt.credit, tt.accountType)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestSignedAmount_UnknownType(t *testing.T) {
	_, err := accounting.SignedAmount(decimal.NewFromInt(1), decimal.Zero, domain.AccountType("BOGUS"))
	assert.Error(t, err)
}

func TestValidateEntriesBalance(t *testing.T) {
	entry := func(debit, credit float64) domain.Entry {
		return domain.Entry{
			Debit:  decimal.NewFromFloat(debit),
			Credit: decimal.NewFromFloat(credit),
		}
	}

	t.Run("balanced pair passes", func(t *testing.T) {
		err := accounting.ValidateEntriesBalance([]domain.Entry{entry(100, 0), entry(0, 100)})
		assert.NoError(t, err)
	})

	t.Run("split credit passes", func(t *testing.T) {
		err := accounting.ValidateEntriesBalance([]domain.Entry{entry(100, 0), entry(0, 60), entry(0, 40)})
		assert.NoError(t, err)
	})

	t.Run("difference below tolerance passes", func(t *testing.T) {
		err := accounting.ValidateEntriesBalance([]domain.Entry{entry(100.0005, 0), entry(0, 100)})
		assert.NoError(t, err)
	})

	t.Run("difference at tolerance fails", func(t *testing.T) {
		err := accounting.ValidateEntriesBalance([]domain.Entry{entry(100.001, 0), entry(0, 100)})
		assert.Error(t, err)
	})

	t.Run("unbalanced fails", func(t *testing.T) {
		err := accounting.ValidateEntriesBalance([]domain.Entry{entry(100, 0), entry(0, 90)})
		assert.Error(t, err)
	})

	t.Run("single entry fails", func(t *testing.T) {
		err := accounting.ValidateEntriesBalance([]domain.Entry{entry(100, 0)})
		assert.Error(t, err)
	})

	t.Run("negative debit fails", func(t *testing.T) {
		err := accounting.ValidateEntriesBalance([]domain.Entry{entry(-100, 0), entry(0, -100)})
		assert.Error(t, err)
	})

	t.Run("empty line fails", func(t *testing.T) {
		err := accounting.ValidateEntriesBalance([]domain.Entry{entry(100, 0), entry(0, 100), entry(0, 0)})
		assert.Error(t, err)
	})
}

func TestEntriesTotal(t *testing.T) {
	entries := []domain.Entry{
		{Debit: decimal.NewFromInt(70)},
		{Debit: decimal.NewFromInt(30)},
		{Credit: decimal.NewFromInt(100)},
	}
	total := accounting.EntriesTotal(entries)
	assert.True(t, decimal.NewFromInt(100).Equal(total), "got %s", total)
}
