package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/mediakarsa/backoffice/internal/apperrors"
	"github.com/mediakarsa/backoffice/internal/core/domain"
	portsrepo "github.com/mediakarsa/backoffice/internal/core/ports/repositories"
	"github.com/mediakarsa/backoffice/internal/models"
	"github.com/mediakarsa/backoffice/internal/utils/mapping"
	"github.com/mediakarsa/backoffice/internal/utils/pagination"
)

const transactionColumns = `transaction_id, organization_id, date, reference, description, status, transaction_type, amount, job_booking_id, original_transaction_id, reversing_transaction_id, created_at, created_by, last_updated_at, last_updated_by`

const entryColumns = `entry_id, transaction_id, account_id, description, debit, credit, amount, created_at, created_by, last_updated_at, last_updated_by`

type PgxTransactionRepository struct {
	BaseRepository
	balances portsrepo.AccountBalanceUpdater
}

// newPgxTransactionRepository creates a new repository for transaction and
// entry data. The balance updater is injected so balance writes share the
// repository's database transactions.
func newPgxTransactionRepository(pool *pgxpool.Pool, balances portsrepo.AccountBalanceUpdater) portsrepo.TransactionRepository {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
		balances:       balances,
	}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepository
var _ portsrepo.TransactionRepository = (*PgxTransactionRepository)(nil)

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	var jobBookingID, originalID, reversingID sql.NullString

	err := row.Scan(
		&m.TransactionID,
		&m.OrganizationID,
		&m.Date,
		&m.Reference,
		&m.Description,
		&m.Status,
		&m.TransactionType,
		&m.Amount,
		&jobBookingID,
		&originalID,
		&reversingID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.Transaction{}, err
	}
	if jobBookingID.Valid {
		m.JobBookingID = &jobBookingID.String
	}
	if originalID.Valid {
		m.OriginalTransactionID = &originalID.String
	}
	if reversingID.Valid {
		m.ReversingTransactionID = &reversingID.String
	}
	return m, nil
}

// insertTransactionTx inserts a transaction header inside tx.
func (r *PgxTransactionRepository) insertTransactionTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := tx.Exec(ctx, query,
		m.TransactionID,
		m.OrganizationID,
		m.Date,
		m.Reference,
		m.Description,
		m.Status,
		m.TransactionType,
		m.Amount,
		m.JobBookingID,
		m.OriginalTransactionID,
		m.ReversingTransactionID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert transaction "+m.TransactionID, err)
	}
	return nil
}

// insertEntriesTx batch-inserts entries inside tx.
func (r *PgxTransactionRepository) insertEntriesTx(ctx context.Context, tx pgx.Tx, entries []domain.Entry) error {
	batch := &pgx.Batch{}
	query := `
		INSERT INTO entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	for _, entry := range entries {
		m := mapping.ToModelEntry(entry)
		batch.Queue(query,
			m.EntryID,
			m.TransactionID,
			m.AccountID,
			m.Description,
			m.Debit,
			m.Credit,
			m.Amount,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute entry insert batch", err)
	}
	return nil
}

// SaveTransaction saves a draft header and its entries within a DB
// transaction. Account balances are untouched until posting.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, entries []domain.Entry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.insertTransactionTx(ctx, tx, txn); err != nil {
		return err
	}
	if err := r.insertEntriesTx(ctx, tx, entries); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// FindTransactionByID retrieves a transaction header by its ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`

	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction by ID "+transactionID, err)
	}

	domainTxn := mapping.ToDomainTransaction(m)
	return &domainTxn, nil
}

// FindEntriesByTransactionID retrieves all entries of a transaction.
func (r *PgxTransactionRepository) FindEntriesByTransactionID(ctx context.Context, transactionID string) ([]domain.Entry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM entries
		WHERE transaction_id = $1
		ORDER BY entry_id;
	`
	rows, err := r.Pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query entries for transaction "+transactionID, err)
	}
	defer rows.Close()

	entries := []models.Entry{}
	for rows.Next() {
		var e models.Entry
		err := rows.Scan(
			&e.EntryID,
			&e.TransactionID,
			&e.AccountID,
			&e.Description,
			&e.Debit,
			&e.Credit,
			&e.Amount,
			&e.CreatedAt,
			&e.CreatedBy,
			&e.LastUpdatedAt,
			&e.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan entry row for transaction "+transactionID, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating entry rows for transaction "+transactionID, err)
	}

	return mapping.ToDomainEntrySlice(entries), nil
}

// ListTransactions retrieves a paginated list of transaction headers for an
// organization using token-based pagination, newest first.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, organizationID string, filter portsrepo.ListTransactionsFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + transactionColumns + ` FROM transactions`
	filterClause := `WHERE organization_id = $1`
	args := []interface{}{organizationID}

	if filter.Status != "" {
		args = append(args, string(filter.Status))
		filterClause += ` AND status = $` + strconv.Itoa(len(args))
	}
	if filter.TransactionType != "" {
		args = append(args, filter.TransactionType)
		filterClause += ` AND transaction_type = $` + strconv.Itoa(len(args))
	}
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		filterClause += ` AND date >= $` + strconv.Itoa(len(args))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		filterClause += ` AND date <= $` + strconv.Itoa(len(args))
	}

	// Ordering must be stable for keyset pagination; created_at breaks
	// date ties.
	orderByClause := `ORDER BY date DESC, created_at DESC`

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastDate, lastCreatedAt)
		filterClause += ` AND (date, created_at) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	args = append(args, fetchLimit)
	query := baseQuery + " " + filterClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query transactions for organization "+organizationID, err)
	}
	defer rows.Close()

	modelTxns := make([]models.Transaction, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanTransaction(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan transaction row for organization "+organizationID, scanErr)
		}
		modelTxns = append(modelTxns, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating transaction rows for organization "+organizationID, err)
	}

	var nextTokenVal *string
	results := modelTxns
	if len(modelTxns) > limit {
		last := modelTxns[limit-1]
		token := pagination.EncodeToken(last.Date, last.CreatedAt)
		nextTokenVal = &token
		results = modelTxns[:limit]
	}

	domainTxns := make([]domain.Transaction, len(results))
	for i, m := range results {
		domainTxns[i] = mapping.ToDomainTransaction(m)
	}
	return domainTxns, nextTokenVal, nil
}

// ListEntriesByAccount retrieves a paginated ledger history for an account.
// Only entries of posted transactions appear; drafts have no balance effect.
func (r *PgxTransactionRepository) ListEntriesByAccount(ctx context.Context, organizationID string, accountID string, limit int, nextToken *string) ([]domain.Entry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `
		SELECT e.entry_id, e.transaction_id, e.account_id, e.description, e.debit, e.credit, e.amount,
		       e.created_at, e.created_by, e.last_updated_at, e.last_updated_by, t.date
		FROM entries e
		JOIN transactions t ON e.transaction_id = t.transaction_id
		WHERE e.account_id = $1 AND t.organization_id = $2 AND t.status = 'POSTED'
	`
	orderByClause := `ORDER BY t.date DESC, e.created_at DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{accountID, organizationID}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		cursorClause := `AND (t.date, e.created_at) < ($3, $4)`
		args = append(args, lastDate, lastCreatedAt)
		query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}

	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query entries for account "+accountID, err)
	}
	defer rows.Close()

	type entryWithDate struct {
		entry models.Entry
		date  time.Time
	}
	scanned := make([]entryWithDate, 0, fetchLimit)
	for rows.Next() {
		var e models.Entry
		var date time.Time
		scanErr := rows.Scan(
			&e.EntryID,
			&e.TransactionID,
			&e.AccountID,
			&e.Description,
			&e.Debit,
			&e.Credit,
			&e.Amount,
			&e.CreatedAt,
			&e.CreatedBy,
			&e.LastUpdatedAt,
			&e.LastUpdatedBy,
			&date,
		)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan entry row for account "+accountID, scanErr)
		}
		scanned = append(scanned, entryWithDate{entry: e, date: date})
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating entry rows for account "+accountID, err)
	}

	var nextTokenVal *string
	if len(scanned) > limit {
		last := scanned[limit-1]
		token := pagination.EncodeToken(last.date, last.entry.CreatedAt)
		nextTokenVal = &token
		scanned = scanned[:limit]
	}

	results := make([]models.Entry, len(scanned))
	for i, s := range scanned {
		results[i] = s.entry
	}
	return mapping.ToDomainEntrySlice(results), nextTokenVal, nil
}

// PostTransaction flips a draft to POSTED and applies the balance changes to
// the affected accounts, all inside one database transaction. The status
// flip is conditional on DRAFT so a concurrent double post applies balances
// at most once.
func (r *PgxTransactionRepository) PostTransaction(ctx context.Context, transactionID string, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE transactions
		SET status = 'POSTED', last_updated_at = $2, last_updated_by = $3
		WHERE transaction_id = $1 AND status = 'DRAFT';
	`
	cmdTag, err := tx.Exec(ctx, query, transactionID, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status for transaction "+transactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: transaction %s is not in draft status", apperrors.ErrConflict, transactionID)
	}

	if err := r.applyBalanceChanges(ctx, tx, r.balances, balanceChanges, userID, now); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// SaveReversal inserts an auto-posted counter-transaction with its entries,
// applies its balance changes, and stamps the original with the reversal
// link, atomically. The original must not have been reversed already.
func (r *PgxTransactionRepository) SaveReversal(ctx context.Context, reversal domain.Transaction, entries []domain.Entry, balanceChanges map[string]decimal.Decimal, originalTransactionID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	// Claim the original first; the conditional update doubles as the
	// concurrency guard against two simultaneous reversals.
	linkQuery := `
		UPDATE transactions
		SET reversing_transaction_id = $2, last_updated_at = $3, last_updated_by = $4
		WHERE transaction_id = $1 AND status = 'POSTED' AND reversing_transaction_id IS NULL;
	`
	cmdTag, err := tx.Exec(ctx, linkQuery, originalTransactionID, reversal.TransactionID, reversal.CreatedAt, reversal.CreatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to link reversal to transaction "+originalTransactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: transaction %s cannot be reversed", apperrors.ErrConflict, originalTransactionID)
	}

	if err := r.insertTransactionTx(ctx, tx, reversal); err != nil {
		return err
	}
	if err := r.insertEntriesTx(ctx, tx, entries); err != nil {
		return err
	}

	if err := r.applyBalanceChanges(ctx, tx, r.balances, balanceChanges, reversal.CreatedBy, reversal.CreatedAt); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// DeleteDraftTransaction removes an unposted header and its entries.
func (r *PgxTransactionRepository) DeleteDraftTransaction(ctx context.Context, transactionID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM entries WHERE transaction_id = $1;`, transactionID); err != nil {
		return apperrors.NewAppError(500, "failed to delete entries for transaction "+transactionID, err)
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1 AND status = 'DRAFT';`, transactionID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete transaction "+transactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: transaction %s is not a deletable draft", apperrors.ErrConflict, transactionID)
	}

	return r.Commit(ctx, tx)
}

// FindVoucher loads the voucher projection of a transaction with its
// organization and account names resolved.
func (r *PgxTransactionRepository) FindVoucher(ctx context.Context, transactionID string) (*domain.TransactionVoucher, error) {
	headerQuery := `
		SELECT t.transaction_id, o.name, t.date, t.reference, t.description, t.status, t.amount
		FROM transactions t
		JOIN organizations o ON t.organization_id = o.organization_id
		WHERE t.transaction_id = $1;
	`
	var voucher domain.TransactionVoucher
	err := r.Pool.QueryRow(ctx, headerQuery, transactionID).Scan(
		&voucher.TransactionID,
		&voucher.OrganizationName,
		&voucher.Date,
		&voucher.Reference,
		&voucher.Description,
		&voucher.Status,
		&voucher.Amount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to load voucher header for transaction "+transactionID, err)
	}

	linesQuery := `
		SELECT a.account_number, a.name, e.description, e.debit, e.credit
		FROM entries e
		JOIN accounts a ON e.account_id = a.account_id
		WHERE e.transaction_id = $1
		ORDER BY e.entry_id;
	`
	rows, err := r.Pool.Query(ctx, linesQuery, transactionID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to load voucher lines for transaction "+transactionID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var line domain.VoucherLine
		if err := rows.Scan(&line.AccountNumber, &line.AccountName, &line.Description, &line.Debit, &line.Credit); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan voucher line for transaction "+transactionID, err)
		}
		voucher.Lines = append(voucher.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating voucher lines for transaction "+transactionID, err)
	}

	return &voucher, nil
}
