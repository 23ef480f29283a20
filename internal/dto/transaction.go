package dto

import (
	"time"

	"github.com/mediakarsa/backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EntryRequest is one debit-or-credit line of a transaction being created.
type EntryRequest struct {
	AccountID   string          `json:"accountID" binding:"required"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// CreateTransactionRequest defines the data needed to create a draft
// transaction with its entries.
type CreateTransactionRequest struct {
	Date            time.Time      `json:"date" binding:"required"`
	Reference       string         `json:"reference"`
	Description     string         `json:"description" binding:"required"`
	TransactionType string         `json:"transactionType"`
	JobBookingID    *string        `json:"jobBookingID"`
	Entries         []EntryRequest `json:"entries" binding:"required,min=2,dive"`
}

// EntryResponse defines the data returned for one ledger line.
type EntryResponse struct {
	EntryID     string          `json:"entryID"`
	AccountID   string          `json:"accountID"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Amount      decimal.Decimal `json:"amount"`
}

// TransactionResponse defines the data returned for a transaction header.
type TransactionResponse struct {
	TransactionID          string                   `json:"transactionID"`
	OrganizationID         string                   `json:"organizationID"`
	Date                   time.Time                `json:"date"`
	Reference              string                   `json:"reference"`
	Description            string                   `json:"description"`
	Status                 domain.TransactionStatus `json:"status"`
	TransactionType        string                   `json:"transactionType"`
	Amount                 decimal.Decimal          `json:"amount"`
	JobBookingID           *string                  `json:"jobBookingID,omitempty"`
	OriginalTransactionID  *string                  `json:"originalTransactionID,omitempty"`
	ReversingTransactionID *string                  `json:"reversingTransactionID,omitempty"`
	CreatedAt              time.Time                `json:"createdAt"`
	CreatedBy              string                   `json:"createdBy"`
	Entries                []EntryResponse          `json:"entries,omitempty"`
}

// ToEntryResponse converts a domain.Entry to EntryResponse.
func ToEntryResponse(e *domain.Entry) EntryResponse {
	return EntryResponse{
		EntryID:     e.EntryID,
		AccountID:   e.AccountID,
		Description: e.Description,
		Debit:       e.Debit,
		Credit:      e.Credit,
		Amount:      e.Amount,
	}
}

// ToEntryResponses converts a slice of domain.Entry to responses.
func ToEntryResponses(entries []domain.Entry) []EntryResponse {
	res := make([]EntryResponse, len(entries))
	for i, e := range entries {
		res[i] = ToEntryResponse(&e)
	}
	return res
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	resp := TransactionResponse{
		TransactionID:          t.TransactionID,
		OrganizationID:         t.OrganizationID,
		Date:                   t.Date,
		Reference:              t.Reference,
		Description:            t.Description,
		Status:                 t.Status,
		TransactionType:        t.TransactionType,
		Amount:                 t.Amount,
		JobBookingID:           t.JobBookingID,
		OriginalTransactionID:  t.OriginalTransactionID,
		ReversingTransactionID: t.ReversingTransactionID,
		CreatedAt:              t.CreatedAt,
		CreatedBy:              t.CreatedBy,
	}
	if len(t.Entries) > 0 {
		resp.Entries = ToEntryResponses(t.Entries)
	}
	return resp
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	Status          string     `form:"status" binding:"omitempty,oneof=DRAFT POSTED VOID"`
	TransactionType string     `form:"type"`
	DateFrom        *time.Time `form:"dateFrom" time_format:"2006-01-02"`
	DateTo          *time.Time `form:"dateTo" time_format:"2006-01-02"`
	Limit           int        `form:"limit,default=20"`
	NextToken       *string    `form:"nextToken"`
	IncludeEntries  bool       `form:"includeEntries"`
}

// ListTransactionsResponse wraps a page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ListEntriesParams defines query parameters for an account's ledger history.
type ListEntriesParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListEntriesResponse wraps a page of ledger lines.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}
