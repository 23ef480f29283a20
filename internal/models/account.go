package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// Account represents a chart-of-accounts row.
// Note: OrganizationID and ParentID use empty string for NULL; repositories
// translate to sql.NullString at the boundary.
type Account struct {
	AccountID      string          `db:"account_id"`
	OrganizationID string          `db:"organization_id"` // Nullable: global head accounts
	AccountNumber  string          `db:"account_number"`
	Name           string          `db:"name"`
	AccountType    AccountType     `db:"account_type"`
	Description    string          `db:"description"`
	IsActive       bool            `db:"is_active"`
	IsParent       bool            `db:"is_parent"`
	ParentID       string          `db:"parent_id"` // Nullable
	Level          int             `db:"level"`
	OpeningBalance decimal.Decimal `db:"opening_balance"`
	Balance        decimal.Decimal `db:"balance"`
	BalanceDate    time.Time       `db:"balance_date"`
	AuditFields
}
