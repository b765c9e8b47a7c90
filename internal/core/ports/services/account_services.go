package services

import (
	"context"

	"github.com/SscSPs/smb_books/internal/core/domain"
	"github.com/SscSPs/smb_books/internal/dto"
)

// AccountReaderSvc defines read operations for the chart of accounts
type AccountReaderSvc interface {
	GetAccountByID(ctx context.Context, ownerID string, accountID string) (*domain.Account, error)
	GetAccountByCode(ctx context.Context, ownerID string, code string) (*domain.Account, error)
	ListAccounts(ctx context.Context, ownerID string, params dto.ListAccountsParams) ([]domain.Account, error)
	GetAccountBalance(ctx context.Context, ownerID string, accountID string) (*dto.AccountBalanceResponse, error)
}

// AccountWriterSvc defines write operations for the chart of accounts
type AccountWriterSvc interface {
	CreateAccount(ctx context.Context, ownerID string, req dto.CreateAccountRequest) (*domain.Account, error)
	UpdateAccount(ctx context.Context, ownerID string, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
