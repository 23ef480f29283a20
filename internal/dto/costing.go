package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CostingLine is one candidate ledger line produced by the job costing
// subsystem. The ledger core validates and posts these; it does not decide
// them.
type CostingLine struct {
	AccountID   string          `json:"accountID" binding:"required"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// CreateFromCostingRequest turns a job booking's costing lines into a draft
// transaction linked back to the booking.
type CreateFromCostingRequest struct {
	Date         time.Time     `json:"date" binding:"required"`
	Reference    string        `json:"reference"`
	Description  string        `json:"description" binding:"required"`
	JobBookingID string        `json:"jobBookingID" binding:"required"`
	Lines        []CostingLine `json:"lines" binding:"required,min=2,dive"`
}
