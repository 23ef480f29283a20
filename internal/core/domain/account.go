package domain

import (
	"strings"
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

// AccountTypes returns the fixed enumeration of account types with display labels,
// in the conventional chart-of-accounts order.
func AccountTypes() []AccountTypeInfo {
	return []AccountTypeInfo{
		{Type: Asset, Label: "Asset"},
		{Type: Liability, Label: "Liability"},
		{Type: Equity, Label: "Equity"},
		{Type: Income, Label: "Income"},
		{Type: Expense, Label: "Expense"},
	}
}

// AccountTypeInfo pairs an AccountType with its display label.
type AccountTypeInfo struct {
	Type  AccountType `json:"type"`
	Label string      `json:"label"`
}

// IsValid reports whether t is one of the five known account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Income, Expense:
		return true
	}
	return false
}

// NumberSeparator joins a parent account number with a child suffix,
// e.g. "1000" + "01" -> "1000-01". Head account numbers never contain it.
const NumberSeparator = "-"

// Account is a chart-of-accounts node carrying a running balance.
// OrganizationID is empty for global head accounts shared across tenants.
// Balance is written exclusively by the posting engine.
type Account struct {
	AccountID      string          `json:"accountID"`      // Primary Key (UUID)
	OrganizationID string          `json:"organizationID"` // Empty for global head accounts
	AccountNumber  string          `json:"accountNumber"`  // Unique within organization scope
	Name           string          `json:"name"`
	AccountType    AccountType     `json:"accountType"`
	Description    string          `json:"description"`
	IsActive       bool            `json:"isActive"`
	IsParent       bool            `json:"isParent"`
	ParentID       string          `json:"parentID"` // Empty for head accounts
	Level          int             `json:"level"`    // 0 for head accounts
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	Balance        decimal.Decimal `json:"balance"`
	BalanceDate    time.Time       `json:"balanceDate"`
	AuditFields
}

// IsHead reports whether the account sits at the top of the hierarchy.
func (a Account) IsHead() bool {
	return a.ParentID == ""
}

// IsGlobal reports whether the account is a shared head account visible to
// every organization.
func (a Account) IsGlobal() bool {
	return a.OrganizationID == ""
}

// HasSubNumber reports whether number contains the sub-account suffix separator.
func HasSubNumber(number string) bool {
	return strings.Contains(number, NumberSeparator)
}
