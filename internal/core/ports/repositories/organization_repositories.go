package repositories

import (
	"context"
	"time"

	"github.com/mediakarsa/backoffice/internal/core/domain"
)

// OrganizationRepository defines persistence operations for tenants.
type OrganizationRepository interface {
	SaveOrganization(ctx context.Context, org domain.Organization) error
	FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error)
	ListOrganizations(ctx context.Context, limit int, offset int) ([]domain.Organization, error)
	UpdateOrganization(ctx context.Context, org domain.Organization) error
	DeactivateOrganization(ctx context.Context, organizationID string, userID string, now time.Time) error
}
