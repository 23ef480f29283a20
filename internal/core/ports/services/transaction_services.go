package services

import (
	"context"

	"github.com/mediakarsa/backoffice/internal/core/domain"
	"github.com/mediakarsa/backoffice/internal/dto"
)

// TransactionSvcFacade is the service boundary for the transaction lifecycle
// and the posting engine.
type TransactionSvcFacade interface {
	// CreateTransaction validates and persists a draft transaction with its
	// entries. Account balances are untouched.
	CreateTransaction(ctx context.Context, organizationID string, req dto.CreateTransactionRequest, userID string) (*domain.Transaction, error)
	// CreateFromCostingLines is the job costing bridge: it builds a draft
	// transaction from candidate lines supplied by the costing subsystem.
	CreateFromCostingLines(ctx context.Context, organizationID string, req dto.CreateFromCostingRequest, userID string) (*domain.Transaction, error)
	GetTransactionByID(ctx context.Context, organizationID string, transactionID string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, organizationID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
	ListEntriesByAccount(ctx context.Context, organizationID string, accountID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
	// PostTransaction applies a draft's entries to account balances. A
	// transaction that is not DRAFT is rejected.
	PostTransaction(ctx context.Context, organizationID string, transactionID string, userID string) (*domain.Transaction, error)
	// ReverseTransaction creates and posts the mirrored counter-transaction
	// of a posted transaction, leaving the original POSTED with a link to
	// its reversal.
	ReverseTransaction(ctx context.Context, organizationID string, transactionID string, userID string) (*domain.Transaction, error)
	// DeleteTransaction removes a draft and its entries; posted transactions
	// are rejected.
	DeleteTransaction(ctx context.Context, organizationID string, transactionID string) error
	// GetVoucher returns the read-only projection used for voucher export.
	GetVoucher(ctx context.Context, organizationID string, transactionID string) (*domain.TransactionVoucher, error)
}
