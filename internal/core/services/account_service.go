package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mediakarsa/backoffice/internal/apperrors"
	"github.com/mediakarsa/backoffice/internal/core/domain"
	portsrepo "github.com/mediakarsa/backoffice/internal/core/ports/repositories"
	portssvc "github.com/mediakarsa/backoffice/internal/core/ports/services"
	"github.com/mediakarsa/backoffice/internal/dto"
	"github.com/mediakarsa/backoffice/internal/middleware"
)

const subNumberWidth = 2

// accountService provides chart-of-accounts operations.
type accountService struct {
	accountRepo portsrepo.AccountRepository
	orgRepo     portsrepo.OrganizationRepository
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepository, orgRepo portsrepo.OrganizationRepository) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: accountRepo,
		orgRepo:     orgRepo,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateHeadAccount inserts a top-level account (level 0). The organization
// is optional only for parent accounts, which then become global heads.
func (s *accountService) CreateHeadAccount(ctx context.Context, req dto.CreateHeadAccountRequest, userID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.AccountType.IsValid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.AccountType)
	}
	if domain.HasSubNumber(req.AccountNumber) {
		return nil, fmt.Errorf("%w: head account number %q must not contain %q", apperrors.ErrValidation, req.AccountNumber, domain.NumberSeparator)
	}

	organizationID := ""
	if req.OrganizationID != nil {
		organizationID = *req.OrganizationID
	}
	if organizationID == "" && !req.IsParent {
		return nil, fmt.Errorf("%w: a non-parent account must belong to an organization", apperrors.ErrValidation)
	}
	if organizationID != "" {
		if err := s.requireActiveOrganization(ctx, organizationID); err != nil {
			return nil, err
		}
	}

	if err := s.requireNumberAvailable(ctx, organizationID, req.AccountNumber); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:      uuid.NewString(),
		OrganizationID: organizationID,
		AccountNumber:  req.AccountNumber,
		Name:           req.Name,
		AccountType:    req.AccountType,
		Description:    req.Description,
		IsActive:       true,
		IsParent:       req.IsParent,
		Level:          0,
		OpeningBalance: req.OpeningBalance,
		Balance:        req.OpeningBalance,
		BalanceDate:    now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save head account", slog.String("error", err.Error()), slog.String("account_number", req.AccountNumber))
		return nil, err
	}

	logger.Info("Head account created", slog.String("account_id", account.AccountID), slog.String("account_number", account.AccountNumber))
	return &account, nil
}

// CreateSubAccount inserts a child account under parentID. The account
// number is generated from the parent's number plus the next unused
// zero-padded suffix; freed lower suffixes are never reused.
func (s *accountService) CreateSubAccount(ctx context.Context, parentID string, req dto.CreateSubAccountRequest, userID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	parent, err := s.accountRepo.FindAccountByID(ctx, parentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: parent account %s", apperrors.ErrNotFound, parentID)
		}
		return nil, fmt.Errorf("failed to load parent account: %w", err)
	}
	if !parent.IsParent {
		return nil, fmt.Errorf("%w: account %s is not a parent account", apperrors.ErrValidation, parent.AccountNumber)
	}

	organizationID := parent.OrganizationID
	if req.OrganizationID != nil && *req.OrganizationID != "" {
		organizationID = *req.OrganizationID
	}
	if organizationID == "" && !req.IsParent {
		return nil, fmt.Errorf("%w: a non-parent account must belong to an organization", apperrors.ErrValidation)
	}
	if parent.OrganizationID != "" && organizationID != parent.OrganizationID {
		return nil, fmt.Errorf("%w: sub-account organization must match parent organization", apperrors.ErrValidation)
	}
	if organizationID != "" {
		if err := s.requireActiveOrganization(ctx, organizationID); err != nil {
			return nil, err
		}
	}

	accountType := parent.AccountType
	if req.AccountType != nil {
		if !req.AccountType.IsValid() {
			return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, *req.AccountType)
		}
		accountType = *req.AccountType
	}

	number, err := s.nextSubAccountNumber(ctx, parent)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:      uuid.NewString(),
		OrganizationID: organizationID,
		AccountNumber:  number,
		Name:           req.Name,
		AccountType:    accountType,
		Description:    req.Description,
		IsActive:       true,
		IsParent:       req.IsParent,
		ParentID:       parent.AccountID,
		Level:          parent.Level + 1,
		OpeningBalance: req.OpeningBalance,
		Balance:        req.OpeningBalance,
		BalanceDate:    now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save sub-account", slog.String("error", err.Error()), slog.String("parent_id", parentID))
		return nil, err
	}

	logger.Info("Sub-account created", slog.String("account_id", account.AccountID), slog.String("account_number", account.AccountNumber))
	return &account, nil
}

// nextSubAccountNumber scans the parent's existing children and picks
// max(suffix)+1, zero-padded. Deleted children leave gaps that are never
// refilled, so numbering stays stable in historical documents.
func (s *accountService) nextSubAccountNumber(ctx context.Context, parent *domain.Account) (string, error) {
	children, err := s.accountRepo.ListChildAccounts(ctx, parent.AccountID)
	if err != nil {
		return "", fmt.Errorf("failed to list child accounts of %s: %w", parent.AccountID, err)
	}

	maxSuffix := 0
	prefix := parent.AccountNumber + domain.NumberSeparator
	for _, child := range children {
		rest, ok := strings.CutPrefix(child.AccountNumber, prefix)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(rest)
		if err != nil {
			continue
		}
		if n > maxSuffix {
			maxSuffix = n
		}
	}

	return fmt.Sprintf("%s%0*d", prefix, subNumberWidth, maxSuffix+1), nil
}

func (s *accountService) requireNumberAvailable(ctx context.Context, organizationID, accountNumber string) error {
	existing, err := s.accountRepo.FindAccountByNumber(ctx, organizationID, accountNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to check account number availability: %w", err)
	}
	return fmt.Errorf("%w: account number %s already exists in this scope", apperrors.ErrDuplicate, existing.AccountNumber)
}

func (s *accountService) requireActiveOrganization(ctx context.Context, organizationID string) error {
	org, err := s.orgRepo.FindOrganizationByID(ctx, organizationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: organization %s", apperrors.ErrNotFound, organizationID)
		}
		return fmt.Errorf("failed to load organization: %w", err)
	}
	if !org.IsActive {
		return fmt.Errorf("%w: organization %s is inactive", apperrors.ErrValidation, organizationID)
	}
	return nil
}

// GetAccountByID retrieves a single account.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find account by ID", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

// GetAccountsByIDs retrieves multiple accounts keyed by ID.
func (s *accountService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	return s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
}

// ListAccounts retrieves the active accounts visible to an organization.
func (s *accountService) ListAccounts(ctx context.Context, organizationID string, limit int, offset int) ([]domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	accounts, err := s.accountRepo.ListAccounts(ctx, organizationID, limit, offset)
	if err != nil {
		logger.Error("Failed to list accounts", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

// GetValidParents returns the accounts a new sub-account may be nested
// under: the organization's parent accounts plus global heads.
func (s *accountService) GetValidParents(ctx context.Context, organizationID string) ([]domain.Account, error) {
	parents, err := s.accountRepo.ListValidParents(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list valid parents: %w", err)
	}
	if parents == nil {
		return []domain.Account{}, nil
	}
	return parents, nil
}

// DeactivateAccount marks an account inactive without deleting history.
func (s *accountService) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	if err := s.accountRepo.DeactivateAccount(ctx, accountID, userID, time.Now().UTC()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to deactivate account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return err
	}
	logger.Info("Account deactivated", slog.String("account_id", accountID))
	return nil
}

// DeleteAccount removes an account that has never been used: accounts with
// ledger entries or child accounts are rejected with a conflict error.
func (s *accountService) DeleteAccount(ctx context.Context, accountID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return err
	}

	hasEntries, err := s.accountRepo.HasEntries(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to check account entries: %w", err)
	}
	if hasEntries {
		return fmt.Errorf("%w: account has ledger entries and cannot be deleted", apperrors.ErrConflict)
	}

	hasChildren, err := s.accountRepo.HasChildren(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to check child accounts: %w", err)
	}
	if hasChildren {
		return fmt.Errorf("%w: account has sub-accounts and cannot be deleted", apperrors.ErrConflict)
	}

	if err := s.accountRepo.DeleteAccount(ctx, accountID); err != nil {
		logger.Error("Failed to delete account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return err
	}

	logger.Info("Account deleted", slog.String("account_id", accountID))
	return nil
}
