package repositories

import (
	"context"
	"time"

	"github.com/mediakarsa/backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PettyCashRepository defines persistence operations for petty cash records.
type PettyCashRepository interface {
	SavePettyCash(ctx context.Context, record domain.PettyCash) error
	FindPettyCashByID(ctx context.Context, pettyCashID string) (*domain.PettyCash, error)
	ListPettyCash(ctx context.Context, organizationID string, dateFrom, dateTo *time.Time, limit int, nextToken *string) ([]domain.PettyCash, *string, error)
	// MarkPosted flips a draft record to POSTED and applies delta to its
	// account balance in one database transaction.
	MarkPosted(ctx context.Context, pettyCashID string, accountID string, delta decimal.Decimal, userID string, now time.Time) error
	// MarkVoid flips a record to VOID. delta carries the balance
	// correction to apply (zero when the record was never posted).
	// fromStatus is the status the caller computed delta against; the
	// flip only succeeds while the record still holds that status, so a
	// record posted concurrently cannot be voided with a stale delta.
	MarkVoid(ctx context.Context, pettyCashID string, accountID string, delta decimal.Decimal, fromStatus domain.PettyCashStatus, userID string, now time.Time) error
}
