package domain

import (
	"github.com/shopspring/decimal"
)

// Entry is a single debit-or-credit line tied to one account and one
// transaction. Debit and Credit are both non-negative; Amount is the signed
// impact on the account balance derived from the account type at creation
// time. Entries are created together with their transaction and never
// mutated afterwards; they disappear only when an unposted transaction is
// deleted.
type Entry struct {
	EntryID       string          `json:"entryID"` // Primary Key (UUID)
	TransactionID string          `json:"transactionID"`
	AccountID     string          `json:"accountID"`
	Description   string          `json:"description"`
	Debit         decimal.Decimal `json:"debit"`  // >= 0
	Credit        decimal.Decimal `json:"credit"` // >= 0
	Amount        decimal.Decimal `json:"amount"` // Signed impact on the account balance
	AuditFields
}
