package pgsql

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The report queries run only against a live database, so their shape is
// pinned here: the invariants below are the ones a query rewrite is most
// likely to break silently.

func TestReportQueriesScopeToActiveAccounts(t *testing.T) {
	for name, query := range map[string]string{
		"account activity": accountActivityQuery,
		"income statement": incomeStatementQuery,
		"balance sheet":    balanceSheetQuery,
	} {
		assert.Contains(t, query, "a.is_active = TRUE", "%s query must exclude inactive accounts", name)
	}
}

func TestBalanceSheetQueryKeepsAccountsWithoutPostedActivity(t *testing.T) {
	whereIdx := strings.Index(balanceSheetQuery, "WHERE")
	require.Positive(t, whereIdx)

	// The posted/org/date predicates belong to the LEFT JOIN, not the WHERE
	// clause. Filtering joined rows in WHERE drops accounts whose only
	// entries are drafts or dated after asOf, instead of reporting them
	// with their opening balance.
	for _, predicate := range []string{"t.status = 'POSTED'", "t.date <= $1"} {
		idx := strings.Index(balanceSheetQuery, predicate)
		require.Positive(t, idx, "balance sheet query must qualify transactions with %q", predicate)
		assert.Less(t, idx, whereIdx, "%q must sit in the join condition, before WHERE", predicate)
	}

	// With the predicates in the join, unmatched entry rows survive with a
	// NULL transaction, so the sum has to skip them explicitly.
	assert.Contains(t, balanceSheetQuery, "CASE WHEN t.transaction_id IS NOT NULL THEN e.amount ELSE 0 END")
}
