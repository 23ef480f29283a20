package repositories

// RepositoryProvider bundles the concrete repositories handed to the service
// layer at startup.
type RepositoryProvider struct {
	AccountRepo      AccountRepositoryWithBalances
	TransactionRepo  TransactionRepository
	PettyCashRepo    PettyCashRepository
	OrganizationRepo OrganizationRepository
	ReportingRepo    ReportingRepository
}
