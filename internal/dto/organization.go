package dto

import (
	"time"

	"github.com/mediakarsa/backoffice/internal/core/domain"
)

// CreateOrganizationRequest defines the data needed to create a tenant.
type CreateOrganizationRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// UpdateOrganizationRequest defines the data allowed for updating a tenant.
// Pointers distinguish "not provided" from zero values.
type UpdateOrganizationRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// OrganizationResponse defines the data returned for a tenant.
type OrganizationResponse struct {
	OrganizationID string    `json:"organizationID"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
	CreatedBy      string    `json:"createdBy"`
}

// ToOrganizationResponse converts a domain.Organization to a response DTO.
func ToOrganizationResponse(o *domain.Organization) OrganizationResponse {
	return OrganizationResponse{
		OrganizationID: o.OrganizationID,
		Name:           o.Name,
		Description:    o.Description,
		IsActive:       o.IsActive,
		CreatedAt:      o.CreatedAt,
		CreatedBy:      o.CreatedBy,
	}
}

// ToOrganizationResponses converts a slice of domain.Organization to DTOs.
func ToOrganizationResponses(orgs []domain.Organization) []OrganizationResponse {
	res := make([]OrganizationResponse, len(orgs))
	for i, o := range orgs {
		res[i] = ToOrganizationResponse(&o)
	}
	return res
}
