package accounting

import (
	"fmt"

	"github.com/mediakarsa/backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceTolerance is the maximum difference between total debits and total
// credits a transaction may carry and still be considered balanced.
var BalanceTolerance = decimal.NewFromFloat(0.001)

// SignedAmount derives the signed balance impact of a debit/credit pair for
// an account of the given type. Debits increase asset and expense balances;
// credits increase liability, equity and income balances. This is used by
// the posting engine when applying entries and by reporting when summing
// period activity, so the convention lives in exactly one place.
func SignedAmount(debit, credit decimal.Decimal, accountType domain.AccountType) (decimal.Decimal, error) {
	switch accountType {
	case domain.Asset, domain.Expense:
		return debit.Sub(credit), nil
	case domain.Liability, domain.Equity, domain.Income:
		return credit.Sub(debit), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown account type %q", accountType)
	}
}

// ValidateEntriesBalance checks that a set of entries forms a valid balanced
// transaction: at least two lines, no negative debit or credit, and total
// debits equal to total credits within BalanceTolerance.
func ValidateEntriesBalance(entries []domain.Entry) error {
	if len(entries) < 2 {
		return fmt.Errorf("transaction must have at least two entries, got %d", len(entries))
	}

	totalDebits := decimal.Zero
	totalCredits := decimal.Zero
	for i, e := range entries {
		if e.Debit.IsNegative() {
			return fmt.Errorf("entry %d: debit must not be negative, got %s", i, e.Debit)
		}
		if e.Credit.IsNegative() {
			return fmt.Errorf("entry %d: credit must not be negative, got %s", i, e.Credit)
		}
		if e.Debit.IsZero() && e.Credit.IsZero() {
			return fmt.Errorf("entry %d: either debit or credit must be set", i)
		}
		totalDebits = totalDebits.Add(e.Debit)
		totalCredits = totalCredits.Add(e.Credit)
	}

	if totalDebits.Sub(totalCredits).Abs().GreaterThanOrEqual(BalanceTolerance) {
		return fmt.Errorf("entries do not balance: total debits %s, total credits %s",
			totalDebits, totalCredits)
	}
	return nil
}

// EntriesTotal computes the common total of a balanced entry set, which is
// the sum of its debit side.
func EntriesTotal(entries []domain.Entry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Debit)
	}
	return total
}
