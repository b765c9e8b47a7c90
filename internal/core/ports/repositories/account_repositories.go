package repositories

import (
	"context"

	"github.com/SscSPs/smb_books/internal/core/domain"
	"github.com/SscSPs/smb_books/internal/utils/accounting"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts by their IDs. Missing IDs are simply absent from the map.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// FindAccountByCode looks up a code among the owner's accounts first, then the shared ones.
	FindAccountByCode(ctx context.Context, ownerID string, code string) (*domain.Account, error)

	// ListAccounts returns the owner's accounts together with shared accounts, ordered by code.
	ListAccounts(ctx context.Context, ownerID string, limit int, offset int) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	UpdateAccount(ctx context.Context, account domain.Account) error

	// UpsertSharedAccounts inserts or refreshes ownerless accounts keyed by code.
	UpsertSharedAccounts(ctx context.Context, accounts []domain.Account) (int, error)
}

// AccountBalanceReader sums posted journal lines per account.
type AccountBalanceReader interface {
	SumAccountLines(ctx context.Context, accountID string) (accounting.Totals, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountBalanceReader
}
