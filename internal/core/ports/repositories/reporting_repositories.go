package repositories

import (
	"context"
	"time"

	"github.com/mediakarsa/backoffice/internal/core/domain"
)

// ReportingRepository exposes the aggregate queries the reporting engine is
// built on. All queries consider only POSTED activity.
type ReportingRepository interface {
	// GetAccountActivity returns, for every active account of the
	// organization, the signed entry sums on or before start and within
	// (start, end], alongside the account's seeded opening balance.
	GetAccountActivity(ctx context.Context, organizationID string, start, end time.Time) ([]domain.AccountActivity, error)
	// GetIncomeStatementData returns net period amounts for income and
	// expense accounts.
	GetIncomeStatementData(ctx context.Context, organizationID string, from, to time.Time) (income []domain.AccountAmount, expenses []domain.AccountAmount, err error)
	// GetBalanceSheetData returns current balances for asset, liability and
	// equity accounts as of a date.
	GetBalanceSheetData(ctx context.Context, organizationID string, asOf time.Time) (assets []domain.AccountAmount, liabilities []domain.AccountAmount, equity []domain.AccountAmount, err error)
}
