package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mediakarsa/backoffice/internal/apperrors"
	"github.com/mediakarsa/backoffice/internal/core/domain"
	portsrepo "github.com/mediakarsa/backoffice/internal/core/ports/repositories"
	portssvc "github.com/mediakarsa/backoffice/internal/core/ports/services"
	"github.com/mediakarsa/backoffice/internal/dto"
	"github.com/mediakarsa/backoffice/internal/middleware"
)

type organizationService struct {
	orgRepo portsrepo.OrganizationRepository
}

// NewOrganizationService creates a new organization service.
func NewOrganizationService(orgRepo portsrepo.OrganizationRepository) portssvc.OrganizationSvcFacade {
	return &organizationService{orgRepo: orgRepo}
}

var _ portssvc.OrganizationSvcFacade = (*organizationService)(nil)

// CreateOrganization registers a new tenant.
func (s *organizationService) CreateOrganization(ctx context.Context, req dto.CreateOrganizationRequest, userID string) (*domain.Organization, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	org := domain.Organization{
		OrganizationID: uuid.NewString(),
		Name:           req.Name,
		Description:    req.Description,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.orgRepo.SaveOrganization(ctx, org); err != nil {
		logger.Error("Failed to save organization", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save organization: %w", err)
	}

	logger.Info("Organization created", slog.String("organization_id", org.OrganizationID), slog.String("name", org.Name))
	return &org, nil
}

// GetOrganizationByID retrieves a tenant by ID.
func (s *organizationService) GetOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	org, err := s.orgRepo.FindOrganizationByID(ctx, organizationID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find organization", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
		}
		return nil, err
	}
	return org, nil
}

// ListOrganizations retrieves a page of tenants.
func (s *organizationService) ListOrganizations(ctx context.Context, limit int, offset int) ([]domain.Organization, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	orgs, err := s.orgRepo.ListOrganizations(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve organizations: %w", err)
	}
	return orgs, nil
}

// UpdateOrganization applies the provided fields to a tenant.
func (s *organizationService) UpdateOrganization(ctx context.Context, organizationID string, req dto.UpdateOrganizationRequest, userID string) (*domain.Organization, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	org, err := s.GetOrganizationByID(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", apperrors.ErrValidation)
		}
		org.Name = *req.Name
	}
	if req.Description != nil {
		org.Description = *req.Description
	}
	org.LastUpdatedAt = time.Now().UTC()
	org.LastUpdatedBy = userID

	if err := s.orgRepo.UpdateOrganization(ctx, *org); err != nil {
		logger.Error("Failed to update organization", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to update organization: %w", err)
	}

	return org, nil
}

// DeactivateOrganization soft-disables a tenant. Its history stays readable;
// new accounts and transactions are rejected by the services that check
// tenant activity.
func (s *organizationService) DeactivateOrganization(ctx context.Context, organizationID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.GetOrganizationByID(ctx, organizationID); err != nil {
		return err
	}

	if err := s.orgRepo.DeactivateOrganization(ctx, organizationID, userID, time.Now().UTC()); err != nil {
		logger.Error("Failed to deactivate organization", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
		return fmt.Errorf("failed to deactivate organization: %w", err)
	}

	logger.Info("Organization deactivated", slog.String("organization_id", organizationID))
	return nil
}
