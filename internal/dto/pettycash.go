package dto

import (
	"time"

	"github.com/mediakarsa/backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePettyCashRequest defines the data needed to create a petty cash
// record. Exactly one of debit/credit should be nonzero; the service
// validates this since form bindings cannot express it.
type CreatePettyCashRequest struct {
	AccountID       string          `json:"accountID" binding:"required"`
	Debit           decimal.Decimal `json:"debit"`
	Credit          decimal.Decimal `json:"credit"`
	Reference       string          `json:"reference"`
	Description     string          `json:"description" binding:"required"`
	TransactionDate time.Time       `json:"transactionDate" binding:"required"`
}

// PettyCashResponse defines the data returned for a petty cash record.
type PettyCashResponse struct {
	PettyCashID     string                 `json:"pettyCashID"`
	OrganizationID  string                 `json:"organizationID"`
	AccountID       string                 `json:"accountID"`
	Debit           decimal.Decimal        `json:"debit"`
	Credit          decimal.Decimal        `json:"credit"`
	Reference       string                 `json:"reference"`
	Description     string                 `json:"description"`
	TransactionDate time.Time              `json:"transactionDate"`
	Status          domain.PettyCashStatus `json:"status"`
	CreatedAt       time.Time              `json:"createdAt"`
	CreatedBy       string                 `json:"createdBy"`
}

// ToPettyCashResponse converts a domain.PettyCash to PettyCashResponse.
func ToPettyCashResponse(p *domain.PettyCash) PettyCashResponse {
	return PettyCashResponse{
		PettyCashID:     p.PettyCashID,
		OrganizationID:  p.OrganizationID,
		AccountID:       p.AccountID,
		Debit:           p.Debit,
		Credit:          p.Credit,
		Reference:       p.Reference,
		Description:     p.Description,
		TransactionDate: p.TransactionDate,
		Status:          p.Status,
		CreatedAt:       p.CreatedAt,
		CreatedBy:       p.CreatedBy,
	}
}

// ToPettyCashResponses converts a slice of domain.PettyCash to responses.
func ToPettyCashResponses(records []domain.PettyCash) []PettyCashResponse {
	res := make([]PettyCashResponse, len(records))
	for i, p := range records {
		res[i] = ToPettyCashResponse(&p)
	}
	return res
}

// ListPettyCashParams defines query parameters for listing petty cash records.
type ListPettyCashParams struct {
	DateFrom  *time.Time `form:"dateFrom" time_format:"2006-01-02"`
	DateTo    *time.Time `form:"dateTo" time_format:"2006-01-02"`
	Limit     int        `form:"limit,default=20"`
	NextToken *string    `form:"nextToken"`
}

// ListPettyCashResponse wraps a page of petty cash records.
type ListPettyCashResponse struct {
	Records   []PettyCashResponse `json:"records"`
	NextToken *string             `json:"nextToken,omitempty"`
}
