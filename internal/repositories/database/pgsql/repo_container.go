package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/mediakarsa/backoffice/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	transactionRepo := newPgxTransactionRepository(dbPool, accountRepo)
	pettyCashRepo := newPgxPettyCashRepository(dbPool, accountRepo)
	organizationRepo := newPgxOrganizationRepository(dbPool)
	reportingRepo := newReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:      accountRepo,
		TransactionRepo:  transactionRepo,
		PettyCashRepo:    pettyCashRepo,
		OrganizationRepo: organizationRepo,
		ReportingRepo:    reportingRepo,
	}
}
