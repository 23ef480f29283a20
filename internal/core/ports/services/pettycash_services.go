package services

import (
	"context"

	"github.com/mediakarsa/backoffice/internal/core/domain"
	"github.com/mediakarsa/backoffice/internal/dto"
)

// PettyCashSvcFacade is the service boundary for petty cash records.
type PettyCashSvcFacade interface {
	CreatePettyCash(ctx context.Context, organizationID string, req dto.CreatePettyCashRequest, userID string) (*domain.PettyCash, error)
	GetPettyCashByID(ctx context.Context, organizationID string, pettyCashID string) (*domain.PettyCash, error)
	ListPettyCash(ctx context.Context, organizationID string, params dto.ListPettyCashParams) (*dto.ListPettyCashResponse, error)
	PostPettyCash(ctx context.Context, organizationID string, pettyCashID string, userID string) (*domain.PettyCash, error)
	VoidPettyCash(ctx context.Context, organizationID string, pettyCashID string, userID string) (*domain.PettyCash, error)
}
