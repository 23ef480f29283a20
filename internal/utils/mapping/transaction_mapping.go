package mapping

import (
	"github.com/mediakarsa/backoffice/internal/core/domain"
	"github.com/mediakarsa/backoffice/internal/models"
)

// ToModelTransaction converts a domain Transaction header to a model Transaction.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:          d.TransactionID,
		OrganizationID:         d.OrganizationID,
		Date:                   d.Date,
		Reference:              d.Reference,
		Description:            d.Description,
		Status:                 models.TransactionStatus(d.Status),
		TransactionType:        d.TransactionType,
		Amount:                 d.Amount,
		JobBookingID:           d.JobBookingID,
		OriginalTransactionID:  d.OriginalTransactionID,
		ReversingTransactionID: d.ReversingTransactionID,
		AuditFields:            ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:          m.TransactionID,
		OrganizationID:         m.OrganizationID,
		Date:                   m.Date,
		Reference:              m.Reference,
		Description:            m.Description,
		Status:                 domain.TransactionStatus(m.Status),
		TransactionType:        m.TransactionType,
		Amount:                 m.Amount,
		JobBookingID:           m.JobBookingID,
		OriginalTransactionID:  m.OriginalTransactionID,
		ReversingTransactionID: m.ReversingTransactionID,
		CreatedBy:              m.CreatedBy,
		AuditFields:            ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelEntry converts a domain Entry to a model Entry.
func ToModelEntry(d domain.Entry) models.Entry {
	return models.Entry{
		EntryID:       d.EntryID,
		TransactionID: d.TransactionID,
		AccountID:     d.AccountID,
		Description:   d.Description,
		Debit:         d.Debit,
		Credit:        d.Credit,
		Amount:        d.Amount,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainEntry converts a model Entry to a domain Entry.
func ToDomainEntry(m models.Entry) domain.Entry {
	return domain.Entry{
		EntryID:       m.EntryID,
		TransactionID: m.TransactionID,
		AccountID:     m.AccountID,
		Description:   m.Description,
		Debit:         m.Debit,
		Credit:        m.Credit,
		Amount:        m.Amount,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainEntrySlice converts a slice of model Entries to domain Entries.
func ToDomainEntrySlice(ms []models.Entry) []domain.Entry {
	ds := make([]domain.Entry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainEntry(m)
	}
	return ds
}
