package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mediakarsa/backoffice/internal/apperrors"
	"github.com/mediakarsa/backoffice/internal/core/domain"
	portsrepo "github.com/mediakarsa/backoffice/internal/core/ports/repositories"
	portssvc "github.com/mediakarsa/backoffice/internal/core/ports/services"
	"github.com/mediakarsa/backoffice/internal/dto"
	"github.com/mediakarsa/backoffice/internal/middleware"
	"github.com/mediakarsa/backoffice/internal/utils/accounting"
)

// pettyCashService handles the simplified single-account transaction
// variant. It shares the sign convention with the posting engine but adds a
// void path that unwinds an applied balance impact.
type pettyCashService struct {
	pettyCashRepo portsrepo.PettyCashRepository
	accountSvc    portssvc.AccountSvcFacade
}

// NewPettyCashService creates a new petty cash service.
func NewPettyCashService(pettyCashRepo portsrepo.PettyCashRepository, accountSvc portssvc.AccountSvcFacade) portssvc.PettyCashSvcFacade {
	return &pettyCashService{
		pettyCashRepo: pettyCashRepo,
		accountSvc:    accountSvc,
	}
}

var _ portssvc.PettyCashSvcFacade = (*pettyCashService)(nil)

// CreatePettyCash validates and persists a draft petty cash record.
// Exactly one of debit/credit must be set to a positive value.
func (s *pettyCashService) CreatePettyCash(ctx context.Context, organizationID string, req dto.CreatePettyCashRequest, userID string) (*domain.PettyCash, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Debit.IsNegative() || req.Credit.IsNegative() {
		return nil, fmt.Errorf("%w: debit and credit must not be negative", apperrors.ErrValidation)
	}
	if req.Debit.IsPositive() == req.Credit.IsPositive() {
		return nil, fmt.Errorf("%w: exactly one of debit or credit must be set", apperrors.ErrValidation)
	}

	if _, err := s.resolveAccount(ctx, organizationID, req.AccountID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	record := domain.PettyCash{
		PettyCashID:     uuid.NewString(),
		OrganizationID:  organizationID,
		AccountID:       req.AccountID,
		Debit:           req.Debit,
		Credit:          req.Credit,
		Reference:       req.Reference,
		Description:     req.Description,
		TransactionDate: req.TransactionDate,
		Status:          domain.PettyCashDraft,
		CreatedBy:       userID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.pettyCashRepo.SavePettyCash(ctx, record); err != nil {
		logger.Error("Failed to save petty cash record", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to save petty cash record: %w", err)
	}

	logger.Info("Petty cash record created", slog.String("petty_cash_id", record.PettyCashID))
	return &record, nil
}

// GetPettyCashByID retrieves a petty cash record scoped to the organization.
func (s *pettyCashService) GetPettyCashByID(ctx context.Context, organizationID string, pettyCashID string) (*domain.PettyCash, error) {
	return s.findInOrganization(ctx, organizationID, pettyCashID)
}

// ListPettyCash retrieves a page of petty cash records.
func (s *pettyCashService) ListPettyCash(ctx context.Context, organizationID string, params dto.ListPettyCashParams) (*dto.ListPettyCashResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	records, nextToken, err := s.pettyCashRepo.ListPettyCash(ctx, organizationID, params.DateFrom, params.DateTo, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve petty cash records: %w", err)
	}

	return &dto.ListPettyCashResponse{
		Records:   dto.ToPettyCashResponses(records),
		NextToken: nextToken,
	}, nil
}

// PostPettyCash applies a draft record's balance impact to its account.
func (s *pettyCashService) PostPettyCash(ctx context.Context, organizationID string, pettyCashID string, userID string) (*domain.PettyCash, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	record, err := s.findInOrganization(ctx, organizationID, pettyCashID)
	if err != nil {
		return nil, err
	}
	if record.Status != domain.PettyCashDraft {
		logger.Warn("Attempted to post non-draft petty cash record", slog.String("petty_cash_id", pettyCashID), slog.String("status", string(record.Status)))
		return nil, fmt.Errorf("%w: status is %s", ErrNotDraft, record.Status)
	}

	delta, err := s.balanceImpact(ctx, organizationID, record)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.pettyCashRepo.MarkPosted(ctx, pettyCashID, record.AccountID, delta, userID, now); err != nil {
		logger.Error("Failed to post petty cash record", slog.String("error", err.Error()), slog.String("petty_cash_id", pettyCashID))
		return nil, fmt.Errorf("failed to post petty cash record: %w", err)
	}

	logger.Info("Petty cash record posted", slog.String("petty_cash_id", pettyCashID))
	record.Status = domain.PettyCashPosted
	record.LastUpdatedAt = now
	record.LastUpdatedBy = userID
	return record, nil
}

// VoidPettyCash cancels a record. Voiding a draft only flips the status;
// voiding a posted record additionally reverses the balance impact that
// posting applied, leaving the account exactly as it was before.
func (s *pettyCashService) VoidPettyCash(ctx context.Context, organizationID string, pettyCashID string, userID string) (*domain.PettyCash, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	record, err := s.findInOrganization(ctx, organizationID, pettyCashID)
	if err != nil {
		return nil, err
	}
	if record.Status == domain.PettyCashVoid {
		return nil, fmt.Errorf("%w: record is already void", apperrors.ErrConflict)
	}

	delta := decimal.Zero
	if record.Status == domain.PettyCashPosted {
		impact, err := s.balanceImpact(ctx, organizationID, record)
		if err != nil {
			return nil, err
		}
		delta = impact.Neg()
	}

	now := time.Now().UTC()
	if err := s.pettyCashRepo.MarkVoid(ctx, pettyCashID, record.AccountID, delta, record.Status, userID, now); err != nil {
		logger.Error("Failed to void petty cash record", slog.String("error", err.Error()), slog.String("petty_cash_id", pettyCashID))
		return nil, fmt.Errorf("failed to void petty cash record: %w", err)
	}

	logger.Info("Petty cash record voided", slog.String("petty_cash_id", pettyCashID), slog.String("previous_status", string(record.Status)))
	record.Status = domain.PettyCashVoid
	record.LastUpdatedAt = now
	record.LastUpdatedBy = userID
	return record, nil
}

// balanceImpact computes the signed delta the record applies to its account.
func (s *pettyCashService) balanceImpact(ctx context.Context, organizationID string, record *domain.PettyCash) (decimal.Decimal, error) {
	account, err := s.resolveAccount(ctx, organizationID, record.AccountID)
	if err != nil {
		return decimal.Zero, err
	}
	delta, err := accounting.SignedAmount(record.Debit, record.Credit, account.AccountType)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	return delta, nil
}

// resolveAccount loads the record's account and enforces tenancy and
// activity the same way the posting engine does.
func (s *pettyCashService) resolveAccount(ctx context.Context, organizationID string, accountID string) (*domain.Account, error) {
	account, err := s.accountSvc.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !account.IsGlobal() && account.OrganizationID != organizationID {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, account.AccountNumber)
	}
	return account, nil
}

func (s *pettyCashService) findInOrganization(ctx context.Context, organizationID string, pettyCashID string) (*domain.PettyCash, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	record, err := s.pettyCashRepo.FindPettyCashByID(ctx, pettyCashID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find petty cash record", slog.String("error", err.Error()), slog.String("petty_cash_id", pettyCashID))
		}
		return nil, err
	}
	if record.OrganizationID != organizationID {
		return nil, apperrors.ErrNotFound
	}
	return record, nil
}
