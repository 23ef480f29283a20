package services

import (
	"context"
	"time"

	"github.com/mediakarsa/backoffice/internal/core/domain"
)

// ReportingSvcFacade is the service boundary for the reporting engine. All
// reports return numeric values only; formatting belongs to the consumers.
type ReportingSvcFacade interface {
	TrialBalance(ctx context.Context, organizationID string, start, end time.Time) (*domain.TrialBalanceReport, error)
	IncomeStatement(ctx context.Context, organizationID string, start, end time.Time) (*domain.IncomeStatementReport, error)
	BalanceSheet(ctx context.Context, organizationID string, asOf time.Time) (*domain.BalanceSheetReport, error)
}
