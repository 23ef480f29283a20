package pgsql

import (
	"context"
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

const pettyCashColumns = `petty_cash_id, organization_id, account_id, debit, credit, reference, description, transaction_date, status, created_at, created_by, last_updated_at, last_updated_by`

type PgxPettyCashRepository struct {
	BaseRepository
	balances portsrepo.AccountBalanceUpdater
}

// newPgxPettyCashRepository creates a new repository for petty cash data.
func newPgxPettyCashRepository(pool *pgxpool.Pool, balances portsrepo.AccountBalanceUpdater) portsrepo.PettyCashRepository {
	return &PgxPettyCashRepository{
		BaseRepository: BaseRepository{Pool: pool},
		balances:       balances,
	}
}

// Ensure PgxPettyCashRepository implements portsrepo.PettyCashRepository
var _ portsrepo.PettyCashRepository = (*PgxPettyCashRepository)(nil)

func scanPettyCash(row pgx.Row) (models.PettyCash, error) {
	var m models.PettyCash
	err := row.Scan(
		&m.PettyCashID,
		&m.OrganizationID,
		&m.AccountID,
		&m.Debit,
		&m.Credit,
		&m.Reference,
		&m.Description,
		&m.TransactionDate,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SavePettyCash inserts a new petty cash record.
func (r *PgxPettyCashRepository) SavePettyCash(ctx context.Context, record domain.PettyCash) error {
	m := mapping.ToModelPettyCash(record)
	query := `
		INSERT INTO petty_cash (` + pettyCashColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.PettyCashID,
		m.OrganizationID,
		m.AccountID,
		m.Debit,
		m.Credit,
		m.Reference,
		m.Description,
		m.TransactionDate,
		m.Status,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert petty cash record "+m.PettyCashID, err)
	}
	return nil
}

// FindPettyCashByID retrieves a petty cash record by its ID.
func (r *PgxPettyCashRepository) FindPettyCashByID(ctx context.Context, pettyCashID string) (*domain.PettyCash, error) {
	query := `SELECT ` + pettyCashColumns + ` FROM petty_cash WHERE petty_cash_id = $1;`

	m, err := scanPettyCash(r.Pool.QueryRow(ctx, query, pettyCashID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find petty cash record by ID "+pettyCashID, err)
	}

	record := mapping.ToDomainPettyCash(m)
	return &record, nil
}

// ListPettyCash retrieves a paginated list of petty cash records using
// token-based pagination, newest first.
func (r *PgxPettyCashRepository) ListPettyCash(ctx context.Context, organizationID string, dateFrom, dateTo *time.Time, limit int, nextToken *string) ([]domain.PettyCash, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + pettyCashColumns + ` FROM petty_cash`
	filterClause := `WHERE organization_id = $1`
	args := []interface{}{organizationID}

	if dateFrom != nil {
		args = append(args, *dateFrom)
		filterClause += ` AND transaction_date >= $` + strconv.Itoa(len(args))
	}
	if dateTo != nil {
		args = append(args, *dateTo)
		filterClause += ` AND transaction_date <= $` + strconv.Itoa(len(args))
	}

	orderByClause := `ORDER BY transaction_date DESC, created_at DESC`

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastDate, lastCreatedAt)
		filterClause += ` AND (transaction_date, created_at) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	args = append(args, fetchLimit)
	query := baseQuery + " " + filterClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query petty cash records for organization "+organizationID, err)
	}
	defer rows.Close()

	modelRecords := make([]models.PettyCash, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanPettyCash(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan petty cash row for organization "+organizationID, scanErr)
		}
		modelRecords = append(modelRecords, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating petty cash rows for organization "+organizationID, err)
	}

	var nextTokenVal *string
	results := modelRecords
	if len(modelRecords) > limit {
		last := modelRecords[limit-1]
		token := pagination.EncodeToken(last.TransactionDate, last.CreatedAt)
		nextTokenVal = &token
		results = modelRecords[:limit]
	}

	return mapping.ToDomainPettyCashSlice(results), nextTokenVal, nil
}

// MarkPosted flips a draft record to POSTED and applies delta to its account
// balance in one database transaction.
func (r *PgxPettyCashRepository) MarkPosted(ctx context.Context, pettyCashID string, accountID string, delta decimal.Decimal, userID string, now time.Time) error {
	return r.transition(ctx, pettyCashID, accountID, delta, userID, now,
		`UPDATE petty_cash
		 SET status = 'POSTED', last_updated_at = $2, last_updated_by = $3
		 WHERE petty_cash_id = $1 AND status = 'DRAFT';`,
		pettyCashID, now, userID)
}

// MarkVoid flips a record to VOID and applies the balance correction, which
// is zero for records that were never posted. The update is conditional on
// fromStatus, the status the correction was computed against, so a record
// that moved on since the caller read it fails the guard instead of voiding
// with a stale delta.
func (r *PgxPettyCashRepository) MarkVoid(ctx context.Context, pettyCashID string, accountID string, delta decimal.Decimal, fromStatus domain.PettyCashStatus, userID string, now time.Time) error {
	return r.transition(ctx, pettyCashID, accountID, delta, userID, now,
		`UPDATE petty_cash
		 SET status = 'VOID', last_updated_at = $2, last_updated_by = $3
		 WHERE petty_cash_id = $1 AND status = $4;`,
		pettyCashID, now, userID, string(fromStatus))
}

// transition runs a conditional status flip plus a balance delta in one
// database transaction. The conditional update is the concurrency guard;
// zero rows affected means the record was already past the transition.
func (r *PgxPettyCashRepository) transition(ctx context.Context, pettyCashID string, accountID string, delta decimal.Decimal, userID string, now time.Time, statusQuery string, statusArgs ...any) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	cmdTag, err := tx.Exec(ctx, statusQuery, statusArgs...)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status for petty cash record "+pettyCashID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: petty cash record %s is not in a valid state for this transition", apperrors.ErrConflict, pettyCashID)
	}

	if !delta.IsZero() {
		changes := map[string]decimal.Decimal{accountID: delta}
		if err := r.applyBalanceChanges(ctx, tx, r.balances, changes, userID, now); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}
