package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mediakarsa/backoffice/internal/apperrors"
	"github.com/mediakarsa/backoffice/internal/core/domain"
	portsrepo "github.com/mediakarsa/backoffice/internal/core/ports/repositories"
	portssvc "github.com/mediakarsa/backoffice/internal/core/ports/services"
	"github.com/mediakarsa/backoffice/internal/middleware"
)

// reportingService derives financial reports from posted activity. It never
// reads the cached account balances; every figure is recomputed from entry
// sums so reports stay correct even for historical windows.
type reportingService struct {
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates a new reporting service.
func NewReportingService(reportingRepo portsrepo.ReportingRepository) portssvc.ReportingSvcFacade {
	return &reportingService{reportingRepo: reportingRepo}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// TrialBalance builds the per-account debit/credit activity report for a
// period. Opening balance is the seeded opening balance plus all posted
// activity dated on or before the period start; closing adds the period
// activity on top. Period activity lands in the debit column for asset and
// expense accounts when positive, in the credit column otherwise, with the
// convention inverted for liability, equity and income accounts.
func (s *reportingService) TrialBalance(ctx context.Context, organizationID string, start, end time.Time) (*domain.TrialBalanceReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validatePeriod(start, end); err != nil {
		return nil, err
	}

	activity, err := s.reportingRepo.GetAccountActivity(ctx, organizationID, start, end)
	if err != nil {
		logger.Error("Failed to load account activity", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to load account activity: %w", err)
	}

	report := &domain.TrialBalanceReport{
		OrganizationID: organizationID,
		StartDate:      start,
		EndDate:        end,
		Rows:           make([]domain.TrialBalanceRow, 0, len(activity)),
	}

	for _, act := range activity {
		opening := act.OpeningBalance.Add(act.SumBeforeStart)
		closing := opening.Add(act.SumInPeriod)

		row := domain.TrialBalanceRow{
			AccountID:      act.AccountID,
			AccountNumber:  act.AccountNumber,
			AccountName:    act.AccountName,
			AccountType:    act.AccountType,
			OpeningBalance: opening,
			ClosingBalance: closing,
		}
		row.Debit, row.Credit = activityColumns(act.AccountType, act.SumInPeriod)

		report.TotalDebits = report.TotalDebits.Add(row.Debit)
		report.TotalCredits = report.TotalCredits.Add(row.Credit)
		report.Rows = append(report.Rows, row)
	}

	return report, nil
}

// activityColumns places a signed period sum into the debit/credit columns.
// For asset and expense accounts a positive signed sum means net debits; for
// the other types a positive signed sum means net credits.
func activityColumns(accountType domain.AccountType, signed decimal.Decimal) (debit, credit decimal.Decimal) {
	debitNatural := accountType == domain.Asset || accountType == domain.Expense
	if signed.IsNegative() {
		debitNatural = !debitNatural
		signed = signed.Neg()
	}
	if debitNatural {
		return signed, decimal.Zero
	}
	return decimal.Zero, signed
}

// IncomeStatement summarises income and expense activity for a period.
func (s *reportingService) IncomeStatement(ctx context.Context, organizationID string, start, end time.Time) (*domain.IncomeStatementReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validatePeriod(start, end); err != nil {
		return nil, err
	}

	income, expenses, err := s.reportingRepo.GetIncomeStatementData(ctx, organizationID, start, end)
	if err != nil {
		logger.Error("Failed to load income statement data", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to load income statement data: %w", err)
	}

	report := &domain.IncomeStatementReport{
		OrganizationID: organizationID,
		StartDate:      start,
		EndDate:        end,
		Income:         income,
		Expenses:       expenses,
	}
	// Totals sum the magnitude of each account's activity. A signed sum
	// would let a refund-heavy income account shrink total income instead
	// of contributing its size.
	for _, a := range income {
		report.TotalIncome = report.TotalIncome.Add(a.NetAmount.Abs())
	}
	for _, a := range expenses {
		report.TotalExpenses = report.TotalExpenses.Add(a.NetAmount.Abs())
	}
	report.NetIncome = report.TotalIncome.Sub(report.TotalExpenses)

	return report, nil
}

// BalanceSheet lists asset, liability and equity balances as of a date.
func (s *reportingService) BalanceSheet(ctx context.Context, organizationID string, asOf time.Time) (*domain.BalanceSheetReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if asOf.IsZero() {
		return nil, fmt.Errorf("%w: as-of date is required", apperrors.ErrValidation)
	}

	assets, liabilities, equity, err := s.reportingRepo.GetBalanceSheetData(ctx, organizationID, asOf)
	if err != nil {
		logger.Error("Failed to load balance sheet data", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to load balance sheet data: %w", err)
	}

	report := &domain.BalanceSheetReport{
		OrganizationID: organizationID,
		AsOf:           asOf,
		Assets:         assets,
		Liabilities:    liabilities,
		Equity:         equity,
	}
	for _, a := range assets {
		report.TotalAssets = report.TotalAssets.Add(a.NetAmount)
	}
	for _, a := range liabilities {
		report.TotalLiabilities = report.TotalLiabilities.Add(a.NetAmount)
	}
	for _, a := range equity {
		report.TotalEquity = report.TotalEquity.Add(a.NetAmount)
	}
	report.TotalLiabilitiesAndEquity = report.TotalLiabilities.Add(report.TotalEquity)

	return report, nil
}

func validatePeriod(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", apperrors.ErrValidation)
	}
	if end.Before(start) {
		return fmt.Errorf("%w: end date must not be before start date", apperrors.ErrValidation)
	}
	return nil
}
