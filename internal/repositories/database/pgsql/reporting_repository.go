package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/mediakarsa/backoffice/internal/core/domain"
	portsrepo "github.com/mediakarsa/backoffice/internal/core/ports/repositories"
)

// reportingRepository implements the ReportingRepository interface.
//
// Entry rows store the signed balance impact per the account-type sign
// convention, so these aggregates sum e.amount directly instead of
// re-deriving signs from debit/credit columns.
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository.
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

const accountActivityQuery = `
		SELECT
			a.account_id,
			a.account_number,
			a.name,
			a.account_type,
			a.opening_balance,
			COALESCE(SUM(CASE WHEN t.date <= $2 THEN e.amount ELSE 0 END), 0) AS sum_before_start,
			COALESCE(SUM(CASE WHEN t.date > $2 AND t.date <= $3 THEN e.amount ELSE 0 END), 0) AS sum_in_period
		FROM accounts a
		LEFT JOIN entries e ON e.account_id = a.account_id
		LEFT JOIN transactions t ON t.transaction_id = e.transaction_id
			AND t.status = 'POSTED'
			AND t.organization_id = $1
		WHERE a.is_active = TRUE
			AND (a.organization_id = $1 OR a.organization_id IS NULL)
		GROUP BY a.account_id, a.account_number, a.name, a.account_type, a.opening_balance
		ORDER BY a.account_number;`

// GetAccountActivity returns, per active account visible to the organization,
// the signed entry sums dated on or before start and within (start, end],
// alongside the seeded opening balance. Accounts with no activity still get
// a row so the trial balance carries their opening balances.
func (r *reportingRepository) GetAccountActivity(ctx context.Context, organizationID string, start, end time.Time) ([]domain.AccountActivity, error) {
	rows, err := r.Pool.Query(ctx, accountActivityQuery, organizationID, start, end)
	if err != nil {
		return nil, fmt.Errorf("error querying account activity: %w", err)
	}
	defer rows.Close()

	result := []domain.AccountActivity{}
	for rows.Next() {
		var act domain.AccountActivity
		var accountType string

		if err := rows.Scan(
			&act.AccountID,
			&act.AccountNumber,
			&act.AccountName,
			&accountType,
			&act.OpeningBalance,
			&act.SumBeforeStart,
			&act.SumInPeriod,
		); err != nil {
			return nil, fmt.Errorf("error scanning account activity row: %w", err)
		}

		act.AccountType = domain.AccountType(accountType)
		result = append(result, act)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account activity rows: %w", err)
	}

	return result, nil
}

const incomeStatementQuery = `
		SELECT
			a.account_type,
			a.account_id,
			a.account_number,
			a.name,
			SUM(e.amount) AS net
		FROM entries e
		JOIN accounts a ON e.account_id = a.account_id
		JOIN transactions t ON e.transaction_id = t.transaction_id
		WHERE t.date > $1 AND t.date <= $2
			AND t.organization_id = $3
			AND t.status = 'POSTED'
			AND a.is_active = TRUE
			AND a.account_type IN ('INCOME', 'EXPENSE')
		GROUP BY a.account_type, a.account_id, a.account_number, a.name
		ORDER BY a.account_number;`

// GetIncomeStatementData retrieves net period amounts for active income and
// expense accounts. Signed amounts are already positive when the account
// grows, so no sign inversion is needed for either side.
func (r *reportingRepository) GetIncomeStatementData(ctx context.Context, organizationID string, from, to time.Time) ([]domain.AccountAmount, []domain.AccountAmount, error) {
	rows, err := r.Pool.Query(ctx, incomeStatementQuery, from, to, organizationID)
	if err != nil {
		return nil, nil, fmt.Errorf("error querying income statement data: %w", err)
	}
	defer rows.Close()

	var income []domain.AccountAmount
	var expenses []domain.AccountAmount

	for rows.Next() {
		var accountType, accountID, accountNumber, name string
		var netAmount decimal.Decimal

		if err := rows.Scan(&accountType, &accountID, &accountNumber, &name, &netAmount); err != nil {
			return nil, nil, fmt.Errorf("error scanning income statement row: %w", err)
		}

		accountAmount := domain.AccountAmount{
			AccountID:     accountID,
			AccountNumber: accountNumber,
			Name:          name,
			NetAmount:     netAmount,
		}

		switch accountType {
		case string(domain.Income):
			income = append(income, accountAmount)
		case string(domain.Expense):
			expenses = append(expenses, accountAmount)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating income statement rows: %w", err)
	}

	if income == nil {
		income = []domain.AccountAmount{}
	}
	if expenses == nil {
		expenses = []domain.AccountAmount{}
	}

	return income, expenses, nil
}

const balanceSheetQuery = `
		SELECT
			a.account_type,
			a.account_id,
			a.account_number,
			a.name,
			a.opening_balance + COALESCE(SUM(CASE WHEN t.transaction_id IS NOT NULL THEN e.amount ELSE 0 END), 0) AS net
		FROM accounts a
		LEFT JOIN entries e ON e.account_id = a.account_id
		LEFT JOIN transactions t ON t.transaction_id = e.transaction_id
			AND t.status = 'POSTED'
			AND t.organization_id = $2
			AND t.date <= $1
		WHERE a.is_active = TRUE
			AND (a.organization_id = $2 OR a.organization_id IS NULL)
			AND a.account_type IN ('ASSET', 'LIABILITY', 'EQUITY')
		GROUP BY a.account_type, a.account_id, a.account_number, a.name, a.opening_balance
		ORDER BY a.account_number;`

// GetBalanceSheetData retrieves balances for asset, liability and equity
// accounts as of a date: the seeded opening balance plus all posted signed
// activity up to and including asOf. Accounts whose only entries are drafts
// or dated after asOf still get a row carrying their opening balance.
func (r *reportingRepository) GetBalanceSheetData(ctx context.Context, organizationID string, asOf time.Time) ([]domain.AccountAmount, []domain.AccountAmount, []domain.AccountAmount, error) {
	rows, err := r.Pool.Query(ctx, balanceSheetQuery, asOf, organizationID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("error querying balance sheet data: %w", err)
	}
	defer rows.Close()

	var assets []domain.AccountAmount
	var liabilities []domain.AccountAmount
	var equity []domain.AccountAmount

	for rows.Next() {
		var accountType, accountID, accountNumber, name string
		var netAmount decimal.Decimal

		if err := rows.Scan(&accountType, &accountID, &accountNumber, &name, &netAmount); err != nil {
			return nil, nil, nil, fmt.Errorf("error scanning balance sheet row: %w", err)
		}

		accountAmount := domain.AccountAmount{
			AccountID:     accountID,
			AccountNumber: accountNumber,
			Name:          name,
			NetAmount:     netAmount,
		}

		switch accountType {
		case string(domain.Asset):
			assets = append(assets, accountAmount)
		case string(domain.Liability):
			liabilities = append(liabilities, accountAmount)
		case string(domain.Equity):
			equity = append(equity, accountAmount)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, nil, nil, fmt.Errorf("error iterating balance sheet rows: %w", err)
	}

	if assets == nil {
		assets = []domain.AccountAmount{}
	}
	if liabilities == nil {
		liabilities = []domain.AccountAmount{}
	}
	if equity == nil {
		equity = []domain.AccountAmount{}
	}

	return assets, liabilities, equity, nil
}
