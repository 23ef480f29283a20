package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PettyCashStatus mirrors TransactionStatus for the petty cash variant.
type PettyCashStatus string

const (
	PettyCashDraft  PettyCashStatus = "DRAFT"
	PettyCashPosted PettyCashStatus = "POSTED"
	PettyCashVoid   PettyCashStatus = "VOID"
)

// PettyCash is a simplified single-account transaction: one line, one
// account, debit for money paid out and credit for money received. It
// follows the same posting rules as Transaction but additionally supports
// voiding, which unwinds the applied balance impact when the record was
// already posted.
type PettyCash struct {
	PettyCashID     string          `json:"pettyCashID"` // Primary Key (UUID)
	OrganizationID  string          `json:"organizationID"`
	AccountID       string          `json:"accountID"`
	Debit           decimal.Decimal `json:"debit"`
	Credit          decimal.Decimal `json:"credit"`
	Reference       string          `json:"reference"`
	Description     string          `json:"description"`
	TransactionDate time.Time       `json:"transactionDate"`
	Status          PettyCashStatus `json:"status"`
	CreatedBy       string          `json:"createdBy"`
	AuditFields
}
