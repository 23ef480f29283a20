package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus indicates the lifecycle state of a transaction.
type TransactionStatus string

const (
	// Draft transactions have been validated and persisted but have not
	// touched any account balance yet.
	Draft TransactionStatus = "DRAFT"
	// Posted transactions have had their entries applied to account balances.
	Posted TransactionStatus = "POSTED"
	// Void is reachable only by the petty cash variant.
	Void TransactionStatus = "VOID"
)

// Well-known transaction type tags. The field is free-form; these are the
// values the rest of the application uses.
const (
	TypeTransaction = "transaction"
	TypeFund        = "fund"
	TypeLoan        = "loan"
	TypeReturn      = "return"
	TypeExpense     = "expense"
)

// Transaction is a journal entry header: a balanced set of entries with a
// lifecycle status. Amount holds the common total (sum of debits == sum of
// credits). A posted transaction is never mutated in place; corrections are
// expressed as a linked reversal transaction.
type Transaction struct {
	TransactionID   string            `json:"transactionID"` // Primary Key (UUID)
	OrganizationID  string            `json:"organizationID"`
	Date            time.Time         `json:"date"`
	Reference       string            `json:"reference"`
	Description     string            `json:"description"`
	Status          TransactionStatus `json:"status"`
	TransactionType string            `json:"transactionType"` // Free-form tag, see Type* constants
	Amount          decimal.Decimal   `json:"amount"`          // Total debits == total credits
	JobBookingID    *string           `json:"jobBookingID"`    // Optional link to a job booking
	// OriginalTransactionID is set on a reversal and points at the
	// transaction it cancels. ReversingTransactionID is the inverse link on
	// the original, which itself stays POSTED.
	OriginalTransactionID  *string `json:"originalTransactionID"`
	ReversingTransactionID *string `json:"reversingTransactionID"`
	CreatedBy              string  `json:"createdBy"`
	Entries                []Entry `json:"entries,omitempty"`
	AuditFields
}

// IsReversal reports whether the transaction is a counter-transaction.
func (t Transaction) IsReversal() bool {
	return t.OriginalTransactionID != nil
}

// IsReversed reports whether the transaction has been cancelled by a reversal.
func (t Transaction) IsReversed() bool {
	return t.ReversingTransactionID != nil
}
