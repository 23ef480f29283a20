package domain

// Organization represents a tenant of the back office. Every leaf account,
// transaction and petty cash record belongs to exactly one organization;
// only head accounts in the shared chart of accounts may exist without one.
type Organization struct {
	OrganizationID string `json:"organizationID"` // Primary Key (UUID)
	Name           string `json:"name"`
	Description    string `json:"description"`
	IsActive       bool   `json:"isActive"`
	AuditFields
}
