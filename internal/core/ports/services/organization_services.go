package services

import (
	"context"

	"github.com/mediakarsa/backoffice/internal/core/domain"
	"github.com/mediakarsa/backoffice/internal/dto"
)

// OrganizationSvcFacade is the service boundary for tenant management.
type OrganizationSvcFacade interface {
	CreateOrganization(ctx context.Context, req dto.CreateOrganizationRequest, userID string) (*domain.Organization, error)
	GetOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error)
	ListOrganizations(ctx context.Context, limit int, offset int) ([]domain.Organization, error)
	UpdateOrganization(ctx context.Context, organizationID string, req dto.UpdateOrganizationRequest, userID string) (*domain.Organization, error)
	DeactivateOrganization(ctx context.Context, organizationID string, userID string) error
}
