package services

import (
	"context"

	"github.com/mediakarsa/backoffice/internal/core/domain"
	"github.com/mediakarsa/backoffice/internal/dto"
)

// AccountSvcFacade is the service boundary for chart-of-accounts operations.
type AccountSvcFacade interface {
	CreateHeadAccount(ctx context.Context, req dto.CreateHeadAccountRequest, userID string) (*domain.Account, error)
	CreateSubAccount(ctx context.Context, parentID string, req dto.CreateSubAccountRequest, userID string) (*domain.Account, error)
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)
	ListAccounts(ctx context.Context, organizationID string, limit int, offset int) ([]domain.Account, error)
	GetValidParents(ctx context.Context, organizationID string) ([]domain.Account, error)
	DeactivateAccount(ctx context.Context, accountID string, userID string) error
	DeleteAccount(ctx context.Context, accountID string) error
}
