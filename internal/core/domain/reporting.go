package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountActivity is the raw reporting row produced by the repository for
// one account over a report window: the sum of signed entry amounts dated on
// or before the window start, and the sum strictly inside the window.
type AccountActivity struct {
	AccountID      string          `json:"accountID"`
	AccountNumber  string          `json:"accountNumber"`
	AccountName    string          `json:"accountName"`
	AccountType    AccountType     `json:"accountType"`
	OpeningBalance decimal.Decimal `json:"openingBalance"` // Seeded opening balance of the account
	SumBeforeStart decimal.Decimal `json:"sumBeforeStart"` // Signed entry amounts dated <= start
	SumInPeriod    decimal.Decimal `json:"sumInPeriod"`    // Signed entry amounts within (start, end]
}

// TrialBalanceRow is one account's line on a trial balance: the opening and
// closing balances around the period plus the period activity placed in the
// debit or credit column by account-type convention.
type TrialBalanceRow struct {
	AccountID      string          `json:"accountID"`
	AccountNumber  string          `json:"accountNumber"`
	AccountName    string          `json:"accountName"`
	AccountType    AccountType     `json:"accountType"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
}

// TrialBalanceReport is the full trial balance for a period. TotalDebits and
// TotalCredits must be equal on a consistent ledger; both are carried so the
// presentation layer can display the check.
type TrialBalanceReport struct {
	OrganizationID string            `json:"organizationID"`
	StartDate      time.Time         `json:"startDate"`
	EndDate        time.Time         `json:"endDate"`
	Rows           []TrialBalanceRow `json:"rows"`
	TotalDebits    decimal.Decimal   `json:"totalDebits"`
	TotalCredits   decimal.Decimal   `json:"totalCredits"`
}

// AccountAmount represents an account with its net amount on a financial report.
type AccountAmount struct {
	AccountID     string          `json:"accountID"`
	AccountNumber string          `json:"accountNumber"`
	Name          string          `json:"name"`
	NetAmount     decimal.Decimal `json:"netAmount"`
}

// IncomeStatementReport summarises income and expense activity for a period.
type IncomeStatementReport struct {
	OrganizationID string          `json:"organizationID"`
	StartDate      time.Time       `json:"startDate"`
	EndDate        time.Time       `json:"endDate"`
	Income         []AccountAmount `json:"income"`
	Expenses       []AccountAmount `json:"expenses"`
	TotalIncome    decimal.Decimal `json:"totalIncome"`
	TotalExpenses  decimal.Decimal `json:"totalExpenses"`
	NetIncome      decimal.Decimal `json:"netIncome"`
}

// BalanceSheetReport lists asset, liability and equity balances as of a date.
// TotalLiabilitiesAndEquity is displayed alongside TotalAssets; the two
// reconcile on a balanced ledger but the report does not enforce it.
type BalanceSheetReport struct {
	OrganizationID            string          `json:"organizationID"`
	AsOf                      time.Time       `json:"asOf"`
	Assets                    []AccountAmount `json:"assets"`
	Liabilities               []AccountAmount `json:"liabilities"`
	Equity                    []AccountAmount `json:"equity"`
	TotalAssets               decimal.Decimal `json:"totalAssets"`
	TotalLiabilities          decimal.Decimal `json:"totalLiabilities"`
	TotalEquity               decimal.Decimal `json:"totalEquity"`
	TotalLiabilitiesAndEquity decimal.Decimal `json:"totalLiabilitiesAndEquity"`
}

// VoucherLine is one entry on a transaction voucher with its account resolved.
type VoucherLine struct {
	AccountNumber string          `json:"accountNumber"`
	AccountName   string          `json:"accountName"`
	Description   string          `json:"description"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
}

// TransactionVoucher is the read-only projection of a transaction handed to
// the export layer for voucher rendering. Values are numeric; formatting is
// the consumer's concern.
type TransactionVoucher struct {
	TransactionID    string            `json:"transactionID"`
	OrganizationName string            `json:"organizationName"`
	Date             time.Time         `json:"date"`
	Reference        string            `json:"reference"`
	Description      string            `json:"description"`
	Status           TransactionStatus `json:"status"`
	Amount           decimal.Decimal   `json:"amount"`
	Lines            []VoucherLine     `json:"lines"`
}
