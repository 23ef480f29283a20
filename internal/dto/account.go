package dto

import (
	"time"

	"github.com/mediakarsa/backoffice/internal/core/domain"
	"github.com/mediakarsa/backoffice/internal/utils"
	"github.com/shopspring/decimal"
)

// CreateHeadAccountRequest defines the data needed to create a top-level
// account. OrganizationID may be omitted only for parent accounts, which
// then become global heads shared by all organizations.
type CreateHeadAccountRequest struct {
	OrganizationID *string            `json:"organizationID"`
	AccountNumber  string             `json:"accountNumber" binding:"required,headacctnumber"`
	Name           string             `json:"name" binding:"required"`
	AccountType    domain.AccountType `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY INCOME EXPENSE"`
	Description    string             `json:"description"`
	IsParent       bool               `json:"isParent"`
	OpeningBalance decimal.Decimal    `json:"openingBalance"`
}

// CreateSubAccountRequest defines the data needed to create a sub-account
// under an existing parent. The account number is generated, not supplied.
type CreateSubAccountRequest struct {
	Name           string              `json:"name" binding:"required"`
	AccountType    *domain.AccountType `json:"accountType" binding:"omitempty,oneof=ASSET LIABILITY EQUITY INCOME EXPENSE"` // Defaults to the parent's type
	OrganizationID *string             `json:"organizationID"`                                                              // Defaults to the parent's organization
	Description    string              `json:"description"`
	IsParent       bool                `json:"isParent"`
	OpeningBalance decimal.Decimal     `json:"openingBalance"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID        string             `json:"accountID"`
	OrganizationID   string             `json:"organizationID,omitempty"`
	AccountNumber    string             `json:"accountNumber"`
	Name             string             `json:"name"`
	AccountType      domain.AccountType `json:"accountType"`
	Description      string             `json:"description"`
	IsActive         bool               `json:"isActive"`
	IsParent         bool               `json:"isParent"`
	ParentID         string             `json:"parentID,omitempty"`
	Level            int                `json:"level"`
	OpeningBalance   decimal.Decimal    `json:"openingBalance"`
	Balance          decimal.Decimal    `json:"balance"`
	BalanceFormatted string             `json:"balanceFormatted"`
	BalanceDate      time.Time          `json:"balanceDate"`
	CreatedAt        time.Time          `json:"createdAt"`
	CreatedBy        string             `json:"createdBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:        acc.AccountID,
		OrganizationID:   acc.OrganizationID,
		AccountNumber:    acc.AccountNumber,
		Name:             acc.Name,
		AccountType:      acc.AccountType,
		Description:      acc.Description,
		IsActive:         acc.IsActive,
		IsParent:         acc.IsParent,
		ParentID:         acc.ParentID,
		Level:            acc.Level,
		OpeningBalance:   acc.OpeningBalance,
		Balance:          acc.Balance,
		BalanceFormatted: utils.FormatAmount(acc.Balance),
		BalanceDate:      acc.BalanceDate,
		CreatedAt:        acc.CreatedAt,
		CreatedBy:        acc.CreatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.Account to responses.
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Limit  int `form:"limit,default=50"`
	Offset int `form:"offset,default=0"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// AccountTypeResponse mirrors domain.AccountTypeInfo for the API surface.
type AccountTypeResponse struct {
	Type  domain.AccountType `json:"type"`
	Label string             `json:"label"`
}
