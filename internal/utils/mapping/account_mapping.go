package mapping

import (
	"github.com/mediakarsa/backoffice/internal/core/domain"
	"github.com/mediakarsa/backoffice/internal/models"
)

// ToModelAccount converts a domain Account to a model Account.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:      d.AccountID,
		OrganizationID: d.OrganizationID,
		AccountNumber:  d.AccountNumber,
		Name:           d.Name,
		AccountType:    models.AccountType(d.AccountType),
		Description:    d.Description,
		IsActive:       d.IsActive,
		IsParent:       d.IsParent,
		ParentID:       d.ParentID,
		Level:          d.Level,
		OpeningBalance: d.OpeningBalance,
		Balance:        d.Balance,
		BalanceDate:    d.BalanceDate,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:      m.AccountID,
		OrganizationID: m.OrganizationID,
		AccountNumber:  m.AccountNumber,
		Name:           m.Name,
		AccountType:    domain.AccountType(m.AccountType),
		Description:    m.Description,
		IsActive:       m.IsActive,
		IsParent:       m.IsParent,
		ParentID:       m.ParentID,
		Level:          m.Level,
		OpeningBalance: m.OpeningBalance,
		Balance:        m.Balance,
		BalanceDate:    m.BalanceDate,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to domain Accounts.
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
