package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus indicates the lifecycle state of a transaction row.
type TransactionStatus string

const (
	Draft  TransactionStatus = "DRAFT"
	Posted TransactionStatus = "POSTED"
	Void   TransactionStatus = "VOID"
)

// Transaction represents a journal entry header row.
type Transaction struct {
	TransactionID          string            `db:"transaction_id"`
	OrganizationID         string            `db:"organization_id"`
	Date                   time.Time         `db:"date"`
	Reference              string            `db:"reference"`
	Description            string            `db:"description"`
	Status                 TransactionStatus `db:"status"`
	TransactionType        string            `db:"transaction_type"`
	Amount                 decimal.Decimal   `db:"amount"`
	JobBookingID           *string           `db:"job_booking_id"`           // Nullable
	OriginalTransactionID  *string           `db:"original_transaction_id"`  // Nullable
	ReversingTransactionID *string           `db:"reversing_transaction_id"` // Nullable
	AuditFields
}

// Entry represents a single ledger line row.
type Entry struct {
	EntryID       string          `db:"entry_id"`
	TransactionID string          `db:"transaction_id"`
	AccountID     string          `db:"account_id"`
	Description   string          `db:"description"`
	Debit         decimal.Decimal `db:"debit"`
	Credit        decimal.Decimal `db:"credit"`
	Amount        decimal.Decimal `db:"amount"`
	AuditFields
}
