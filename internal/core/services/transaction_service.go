package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mediakarsa/backoffice/internal/apperrors"
	"github.com/mediakarsa/backoffice/internal/core/domain"
	portsrepo "github.com/mediakarsa/backoffice/internal/core/ports/repositories"
	portssvc "github.com/mediakarsa/backoffice/internal/core/ports/services"
	"github.com/mediakarsa/backoffice/internal/dto"
	"github.com/mediakarsa/backoffice/internal/middleware"
	"github.com/mediakarsa/backoffice/internal/utils/accounting"
)

var (
	// ErrUnbalanced is returned when a transaction's debits and credits
	// differ by more than the accounting tolerance.
	ErrUnbalanced = fmt.Errorf("%w: entries do not balance", apperrors.ErrValidation)
	// ErrNotDraft is returned when posting or deleting anything but a draft.
	ErrNotDraft = fmt.Errorf("%w: transaction is not in draft status", apperrors.ErrConflict)
	// ErrNotPosted is returned when reversing a transaction that is not posted.
	ErrNotPosted = fmt.Errorf("%w: transaction is not posted", apperrors.ErrConflict)
	// ErrAlreadyReversed is returned when reversing a transaction twice.
	ErrAlreadyReversed = fmt.Errorf("%w: transaction has already been reversed", apperrors.ErrConflict)
	// ErrReversalOfReversal is returned when reversing a counter-transaction.
	ErrReversalOfReversal = fmt.Errorf("%w: cannot reverse a reversal", apperrors.ErrConflict)
)

// transactionService owns the transaction lifecycle and is, together with
// the petty cash service, the only writer of account balances.
type transactionService struct {
	transactionRepo portsrepo.TransactionRepository
	accountSvc      portssvc.AccountSvcFacade
}

// NewTransactionService creates a new transaction service.
func NewTransactionService(transactionRepo portsrepo.TransactionRepository, accountSvc portssvc.AccountSvcFacade) portssvc.TransactionSvcFacade {
	return &transactionService{
		transactionRepo: transactionRepo,
		accountSvc:      accountSvc,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// CreateTransaction validates a balanced entry set and persists it as a
// draft. Every domain rule is checked before any persistence happens; the
// repository then writes header and entries in one database transaction.
func (s *transactionService) CreateTransaction(ctx context.Context, organizationID string, req dto.CreateTransactionRequest, userID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	transactionID := uuid.NewString()

	entries := make([]domain.Entry, len(req.Entries))
	for i, line := range req.Entries {
		entries[i] = domain.Entry{
			EntryID:       uuid.NewString(),
			TransactionID: transactionID,
			AccountID:     line.AccountID,
			Description:   line.Description,
			Debit:         line.Debit,
			Credit:        line.Credit,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}

	if err := accounting.ValidateEntriesBalance(entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnbalanced, err)
	}

	accountTypes, err := s.resolveAccountTypes(ctx, organizationID, entries)
	if err != nil {
		return nil, err
	}

	// Derive each entry's signed balance impact up front so that posting
	// and reporting never have to re-apply the sign convention.
	for i := range entries {
		amount, err := accounting.SignedAmount(entries[i].Debit, entries[i].Credit, accountTypes[entries[i].AccountID])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		entries[i].Amount = amount
	}

	transactionType := req.TransactionType
	if transactionType == "" {
		transactionType = domain.TypeTransaction
	}

	txn := domain.Transaction{
		TransactionID:   transactionID,
		OrganizationID:  organizationID,
		Date:            req.Date,
		Reference:       req.Reference,
		Description:     req.Description,
		Status:          domain.Draft,
		TransactionType: transactionType,
		Amount:          accounting.EntriesTotal(entries),
		JobBookingID:    req.JobBookingID,
		CreatedBy:       userID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.transactionRepo.SaveTransaction(ctx, txn, entries); err != nil {
		logger.Error("Failed to save draft transaction", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	logger.Info("Draft transaction created", slog.String("transaction_id", txn.TransactionID), slog.String("organization_id", organizationID))
	txn.Entries = entries
	return &txn, nil
}

// CreateFromCostingLines is the bridge from job costing: candidate lines
// become an ordinary draft transaction tagged with the booking.
func (s *transactionService) CreateFromCostingLines(ctx context.Context, organizationID string, req dto.CreateFromCostingRequest, userID string) (*domain.Transaction, error) {
	entries := make([]dto.EntryRequest, len(req.Lines))
	for i, line := range req.Lines {
		entries[i] = dto.EntryRequest{
			AccountID:   line.AccountID,
			Description: line.Description,
			Debit:       line.Debit,
			Credit:      line.Credit,
		}
	}

	jobBookingID := req.JobBookingID
	return s.CreateTransaction(ctx, organizationID, dto.CreateTransactionRequest{
		Date:            req.Date,
		Reference:       req.Reference,
		Description:     req.Description,
		TransactionType: domain.TypeExpense,
		JobBookingID:    &jobBookingID,
		Entries:         entries,
	}, userID)
}

// resolveAccountTypes checks each referenced account exists, is active and
// belongs to the organization, returning the account types keyed by ID.
func (s *transactionService) resolveAccountTypes(ctx context.Context, organizationID string, entries []domain.Entry) (map[string]domain.AccountType, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	accountIDs := make([]string, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if _, ok := seen[e.AccountID]; ok {
			continue
		}
		seen[e.AccountID] = struct{}{}
		accountIDs = append(accountIDs, e.AccountID)
	}

	accountsMap, err := s.accountSvc.GetAccountsByIDs(ctx, accountIDs)
	if err != nil {
		logger.Error("Failed to fetch accounts for transaction", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}

	accountTypes := make(map[string]domain.AccountType, len(accountIDs))
	for _, id := range accountIDs {
		acc, found := accountsMap[id]
		if !found {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
		if !acc.IsGlobal() && acc.OrganizationID != organizationID {
			// Treat cross-tenant references as not found to avoid
			// leaking another organization's chart of accounts.
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, acc.AccountNumber)
		}
		accountTypes[id] = acc.AccountType
	}
	return accountTypes, nil
}

// GetTransactionByID retrieves a transaction with its entries populated.
func (s *transactionService) GetTransactionByID(ctx context.Context, organizationID string, transactionID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.findInOrganization(ctx, organizationID, transactionID)
	if err != nil {
		return nil, err
	}

	entries, err := s.transactionRepo.FindEntriesByTransactionID(ctx, transactionID)
	if err != nil {
		logger.Error("Failed to fetch entries for transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to retrieve entries for transaction %s: %w", transactionID, err)
	}
	txn.Entries = entries
	return txn, nil
}

// ListTransactions retrieves a page of transaction headers.
func (s *transactionService) ListTransactions(ctx context.Context, organizationID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	filter := portsrepo.ListTransactionsFilter{
		Status:          domain.TransactionStatus(params.Status),
		TransactionType: params.TransactionType,
		DateFrom:        params.DateFrom,
		DateTo:          params.DateTo,
	}

	txns, nextToken, err := s.transactionRepo.ListTransactions(ctx, organizationID, filter, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list transactions", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to retrieve transactions: %w", err)
	}

	responses := make([]dto.TransactionResponse, len(txns))
	for i := range txns {
		if params.IncludeEntries {
			entries, err := s.transactionRepo.FindEntriesByTransactionID(ctx, txns[i].TransactionID)
			if err != nil {
				logger.Warn("Failed to fetch entries for listed transaction", slog.String("error", err.Error()), slog.String("transaction_id", txns[i].TransactionID))
			} else {
				txns[i].Entries = entries
			}
		}
		responses[i] = dto.ToTransactionResponse(&txns[i])
	}

	return &dto.ListTransactionsResponse{
		Transactions: responses,
		NextToken:    nextToken,
	}, nil
}

// ListEntriesByAccount retrieves an account's ledger history.
func (s *transactionService) ListEntriesByAccount(ctx context.Context, organizationID string, accountID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	entries, nextToken, err := s.transactionRepo.ListEntriesByAccount(ctx, organizationID, accountID, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve entries: %w", err)
	}

	return &dto.ListEntriesResponse{
		Entries:   dto.ToEntryResponses(entries),
		NextToken: nextToken,
	}, nil
}

// PostTransaction applies a draft's entries to account balances. Posting is
// guarded: anything that is not DRAFT is rejected, so a double post fails
// loudly instead of applying balances twice.
func (s *transactionService) PostTransaction(ctx context.Context, organizationID string, transactionID string, userID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.findInOrganization(ctx, organizationID, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.Status != domain.Draft {
		logger.Warn("Attempted to post non-draft transaction", slog.String("transaction_id", transactionID), slog.String("status", string(txn.Status)))
		return nil, fmt.Errorf("%w: status is %s", ErrNotDraft, txn.Status)
	}

	entries, err := s.transactionRepo.FindEntriesByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve entries for posting: %w", err)
	}

	balanceChanges := balanceChangesFromEntries(entries)

	now := time.Now().UTC()
	if err := s.transactionRepo.PostTransaction(ctx, transactionID, balanceChanges, userID, now); err != nil {
		logger.Error("Failed to post transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to post transaction: %w", err)
	}

	logger.Info("Transaction posted", slog.String("transaction_id", transactionID), slog.Int("entry_count", len(entries)))

	txn.Status = domain.Posted
	txn.LastUpdatedAt = now
	txn.LastUpdatedBy = userID
	txn.Entries = entries
	return txn, nil
}

// ReverseTransaction creates the mirrored counter-transaction of a posted
// transaction and posts it in the same unit of work. The original keeps its
// POSTED status and gains a link to the reversal, preserving audit history.
func (s *transactionService) ReverseTransaction(ctx context.Context, organizationID string, transactionID string, userID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.findInOrganization(ctx, organizationID, transactionID)
	if err != nil {
		return nil, err
	}
	if original.Status != domain.Posted {
		return nil, fmt.Errorf("%w: status is %s", ErrNotPosted, original.Status)
	}
	if original.IsReversal() {
		return nil, ErrReversalOfReversal
	}
	if original.IsReversed() {
		return nil, ErrAlreadyReversed
	}

	originalEntries, err := s.transactionRepo.FindEntriesByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve entries for reversal: %w", err)
	}

	now := time.Now().UTC()
	reversalID := uuid.NewString()

	reversalEntries := make([]domain.Entry, len(originalEntries))
	for i, orig := range originalEntries {
		reversalEntries[i] = domain.Entry{
			EntryID:       uuid.NewString(),
			TransactionID: reversalID,
			AccountID:     orig.AccountID,
			Description:   orig.Description,
			Debit:         orig.Credit,
			Credit:        orig.Debit,
			Amount:        orig.Amount.Neg(),
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}

	originalID := original.TransactionID
	reversal := domain.Transaction{
		TransactionID:         reversalID,
		OrganizationID:        organizationID,
		Date:                  original.Date,
		Reference:             original.Reference,
		Description:           fmt.Sprintf("Reversal of: %s", original.Description),
		Status:                domain.Posted,
		TransactionType:       domain.TypeReturn,
		Amount:                original.Amount,
		JobBookingID:          original.JobBookingID,
		OriginalTransactionID: &originalID,
		CreatedBy:             userID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	balanceChanges := balanceChangesFromEntries(reversalEntries)

	if err := s.transactionRepo.SaveReversal(ctx, reversal, reversalEntries, balanceChanges, originalID); err != nil {
		logger.Error("Failed to save reversal", slog.String("error", err.Error()), slog.String("original_transaction_id", originalID))
		return nil, fmt.Errorf("failed to save reversal: %w", err)
	}

	logger.Info("Transaction reversed", slog.String("original_transaction_id", originalID), slog.String("reversal_transaction_id", reversalID))
	reversal.Entries = reversalEntries
	return &reversal, nil
}

// DeleteTransaction removes a draft and its entries. Posted transactions
// are immutable history and must be reversed instead.
func (s *transactionService) DeleteTransaction(ctx context.Context, organizationID string, transactionID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.findInOrganization(ctx, organizationID, transactionID)
	if err != nil {
		return err
	}
	if txn.Status != domain.Draft {
		return fmt.Errorf("%w: only draft transactions can be deleted, status is %s", apperrors.ErrConflict, txn.Status)
	}

	if err := s.transactionRepo.DeleteDraftTransaction(ctx, transactionID); err != nil {
		logger.Error("Failed to delete draft transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	logger.Info("Draft transaction deleted", slog.String("transaction_id", transactionID))
	return nil
}

// GetVoucher returns the read-only voucher projection for export rendering.
func (s *transactionService) GetVoucher(ctx context.Context, organizationID string, transactionID string) (*domain.TransactionVoucher, error) {
	if _, err := s.findInOrganization(ctx, organizationID, transactionID); err != nil {
		return nil, err
	}
	voucher, err := s.transactionRepo.FindVoucher(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load voucher for transaction %s: %w", transactionID, err)
	}
	return voucher, nil
}

// findInOrganization loads a transaction and hides its existence from other
// tenants.
func (s *transactionService) findInOrganization(ctx context.Context, organizationID string, transactionID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		}
		return nil, err
	}
	if txn.OrganizationID != organizationID {
		logger.Warn("Transaction belongs to a different organization", slog.String("transaction_id", transactionID))
		return nil, apperrors.ErrNotFound
	}
	return txn, nil
}

// balanceChangesFromEntries folds entry amounts into one delta per account.
func balanceChangesFromEntries(entries []domain.Entry) map[string]decimal.Decimal {
	changes := make(map[string]decimal.Decimal)
	for _, e := range entries {
		changes[e.AccountID] = changes[e.AccountID].Add(e.Amount)
	}
	return changes
}
