package mapping

import (
	"github.com/mediakarsa/backoffice/internal/core/domain"
	"github.com/mediakarsa/backoffice/internal/models"
)

// ToModelPettyCash converts a domain PettyCash record to a model PettyCash.
func ToModelPettyCash(d domain.PettyCash) models.PettyCash {
	return models.PettyCash{
		PettyCashID:     d.PettyCashID,
		OrganizationID:  d.OrganizationID,
		AccountID:       d.AccountID,
		Debit:           d.Debit,
		Credit:          d.Credit,
		Reference:       d.Reference,
		Description:     d.Description,
		TransactionDate: d.TransactionDate,
		Status:          models.PettyCashStatus(d.Status),
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPettyCash converts a model PettyCash to a domain PettyCash.
func ToDomainPettyCash(m models.PettyCash) domain.PettyCash {
	return domain.PettyCash{
		PettyCashID:     m.PettyCashID,
		OrganizationID:  m.OrganizationID,
		AccountID:       m.AccountID,
		Debit:           m.Debit,
		Credit:          m.Credit,
		Reference:       m.Reference,
		Description:     m.Description,
		TransactionDate: m.TransactionDate,
		Status:          domain.PettyCashStatus(m.Status),
		CreatedBy:       m.CreatedBy,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPettyCashSlice converts a slice of model PettyCash to domain records.
func ToDomainPettyCashSlice(ms []models.PettyCash) []domain.PettyCash {
	ds := make([]domain.PettyCash, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPettyCash(m)
	}
	return ds
}
