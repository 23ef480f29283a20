package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/mediakarsa/backoffice/internal/apperrors"
	portsrepo "github.com/mediakarsa/backoffice/internal/core/ports/repositories"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// applyBalanceChanges locks the affected accounts and adds each delta to its
// balance, within the caller's transaction. Posting, reversal and the petty
// cash transitions all funnel balance writes through here so the lock order
// stays consistent across writers.
func (r *BaseRepository) applyBalanceChanges(ctx context.Context, tx pgx.Tx, balances portsrepo.AccountBalanceUpdater, changes map[string]decimal.Decimal, userID string, now time.Time) error {
	accountIDs := make([]string, 0, len(changes))
	for accID := range changes {
		accountIDs = append(accountIDs, accID)
	}
	if _, err := balances.FindAccountsByIDsForUpdate(ctx, tx, accountIDs); err != nil {
		return apperrors.NewAppError(500, "failed to lock accounts for balance update", err)
	}
	if err := balances.ApplyBalanceChangesInTx(ctx, tx, changes, userID, now); err != nil {
		return apperrors.NewAppError(500, "failed to apply balance changes", err)
	}
	return nil
}
