package repositories

import (
	"context"
	"time"

	"github.com/mediakarsa/backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ListTransactionsFilter narrows a transaction listing. Zero values mean
// "no filter" for that dimension.
type ListTransactionsFilter struct {
	Status          domain.TransactionStatus
	TransactionType string
	DateFrom        *time.Time
	DateTo          *time.Time
}

// TransactionRepository defines persistence operations for transactions and
// their entries. Multi-row mutations are single atomic operations: either
// the whole journal lands or none of it does.
type TransactionRepository interface {
	// SaveTransaction inserts a draft header and all its entries in one
	// database transaction. Balances are not touched.
	SaveTransaction(ctx context.Context, txn domain.Transaction, entries []domain.Entry) error
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)
	FindEntriesByTransactionID(ctx context.Context, transactionID string) ([]domain.Entry, error)
	ListTransactions(ctx context.Context, organizationID string, filter ListTransactionsFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error)
	// ListEntriesByAccount returns an account's ledger history, newest first.
	ListEntriesByAccount(ctx context.Context, organizationID string, accountID string, limit int, nextToken *string) ([]domain.Entry, *string, error)
	// PostTransaction flips a draft to POSTED and applies the balance
	// changes to the affected accounts, all inside one database
	// transaction with the account rows locked.
	PostTransaction(ctx context.Context, transactionID string, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error
	// SaveReversal inserts an auto-posted counter-transaction with its
	// entries, applies its balance changes, and links the original to it,
	// atomically.
	SaveReversal(ctx context.Context, reversal domain.Transaction, entries []domain.Entry, balanceChanges map[string]decimal.Decimal, originalTransactionID string) error
	// DeleteDraftTransaction removes an unposted header and cascades to its
	// entries.
	DeleteDraftTransaction(ctx context.Context, transactionID string) error
	// FindVoucher loads the read-only voucher projection of a transaction
	// with accounts and organization resolved.
	FindVoucher(ctx context.Context, transactionID string) (*domain.TransactionVoucher, error)
}
