package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/mediakarsa/backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountRepository defines persistence operations for chart-of-accounts data.
type AccountRepository interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	FindAccountByNumber(ctx context.Context, organizationID string, accountNumber string) (*domain.Account, error)
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)
	// ListAccounts returns active accounts visible to the organization:
	// the organization's own accounts plus global head accounts.
	ListAccounts(ctx context.Context, organizationID string, limit int, offset int) ([]domain.Account, error)
	// ListChildAccounts returns all direct children of a parent account,
	// ordered by account number.
	ListChildAccounts(ctx context.Context, parentID string) ([]domain.Account, error)
	// ListValidParents returns accounts usable as a sub-account parent for
	// the organization: is_parent accounts belonging to it or global heads.
	ListValidParents(ctx context.Context, organizationID string) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, account domain.Account) error
	DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error
	// DeleteAccount removes an account row. Callers must enforce the
	// deletion guards first; the FK constraints are the backstop.
	DeleteAccount(ctx context.Context, accountID string) error
	HasEntries(ctx context.Context, accountID string) (bool, error)
	HasChildren(ctx context.Context, accountID string) (bool, error)
}

// AccountBalanceUpdater exposes the balance mutation hooks the posting
// engine calls inside its own database transaction. No other code path may
// write Account.Balance.
type AccountBalanceUpdater interface {
	// FindAccountsByIDsForUpdate locks the given accounts (FOR UPDATE, in
	// deterministic order) and returns their current state.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)
	// ApplyBalanceChangesInTx adds each delta to its account's balance
	// inside tx and stamps balance_date and audit columns.
	ApplyBalanceChangesInTx(ctx context.Context, tx pgx.Tx, changes map[string]decimal.Decimal, userID string, now time.Time) error
}

// AccountRepositoryWithBalances combines account persistence with the
// posting engine's balance hooks.
type AccountRepositoryWithBalances interface {
	AccountRepository
	AccountBalanceUpdater
}
