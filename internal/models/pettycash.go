package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PettyCashStatus mirrors TransactionStatus for the petty cash table.
type PettyCashStatus string

const (
	PettyCashDraft  PettyCashStatus = "DRAFT"
	PettyCashPosted PettyCashStatus = "POSTED"
	PettyCashVoid   PettyCashStatus = "VOID"
)

// PettyCash represents a single-account petty cash record row.
type PettyCash struct {
	PettyCashID     string          `db:"petty_cash_id"`
	OrganizationID  string          `db:"organization_id"`
	AccountID       string          `db:"account_id"`
	Debit           decimal.Decimal `db:"debit"`
	Credit          decimal.Decimal `db:"credit"`
	Reference       string          `db:"reference"`
	Description     string          `db:"description"`
	TransactionDate time.Time       `db:"transaction_date"`
	Status          PettyCashStatus `db:"status"`
	AuditFields
}
