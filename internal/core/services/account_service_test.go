package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/smb_books/internal/apperrors"
	"github.com/SscSPs/smb_books/internal/core/domain"
	"github.com/SscSPs/smb_books/internal/core/services"
	"github.com/SscSPs/smb_books/internal/dto"
	"github.com/SscSPs/smb_books/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAccountService_CreateAccount(t *testing.T) {
	ownerID := uuid.NewString()
	parent := &domain.Account{AccountID: uuid.NewString(), AccountType: domain.Expense, IsActive: true}

	t.Run("child of shared parent", func(t *testing.T) {
		repo := new(MockAccountRepository)
		svc := services.NewAccountService(repo)
		repo.On("FindAccountByID", mock.Anything, parent.AccountID).Return(parent, nil).Once()
		repo.On("SaveAccount", mock.Anything, mock.AnythingOfType("domain.Account")).Return(nil).Once()

		acc, err := svc.CreateAccount(context.Background(), ownerID, dto.CreateAccountRequest{
			Code:            "6110",
			Name:            "Office rent",
			AccountType:     domain.Expense,
			ParentAccountID: &parent.AccountID,
		})

		require.NoError(t, err)
		assert.Equal(t, ownerID, acc.OwnerID)
		assert.Equal(t, parent.AccountID, acc.ParentAccountID)
		assert.True(t, acc.IsActive)
		repo.AssertExpectations(t)
	})

	t.Run("parent type mismatch", func(t *testing.T) {
		repo := new(MockAccountRepository)
		svc := services.NewAccountService(repo)
		repo.On("FindAccountByID", mock.Anything, parent.AccountID).Return(parent, nil).Once()

		_, err := svc.CreateAccount(context.Background(), ownerID, dto.CreateAccountRequest{
			Code:            "1010",
			Name:            "Petty cash",
			AccountType:     domain.Asset,
			ParentAccountID: &parent.AccountID,
		})

		assert.ErrorIs(t, err, apperrors.ErrValidation)
		repo.AssertNotCalled(t, "SaveAccount", mock.Anything, mock.Anything)
	})

	t.Run("duplicate code", func(t *testing.T) {
		repo := new(MockAccountRepository)
		svc := services.NewAccountService(repo)
		repo.On("SaveAccount", mock.Anything, mock.Anything).Return(apperrors.ErrDuplicate).Once()

		_, err := svc.CreateAccount(context.Background(), ownerID, dto.CreateAccountRequest{Code: "1000", Name: "Cash", AccountType: domain.Asset})

		assert.ErrorIs(t, err, apperrors.ErrDuplicate)
	})
}

func TestAccountService_OtherOwnersAccountIsNotFound(t *testing.T) {
	repo := new(MockAccountRepository)
	svc := services.NewAccountService(repo)
	acc := &domain.Account{AccountID: uuid.NewString(), OwnerID: uuid.NewString()}
	repo.On("FindAccountByID", mock.Anything, acc.AccountID).Return(acc, nil)

	_, err := svc.GetAccountByID(context.Background(), uuid.NewString(), acc.AccountID)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAccountService_UpdateSharedAccountForbidden(t *testing.T) {
	repo := new(MockAccountRepository)
	svc := services.NewAccountService(repo)
	shared := &domain.Account{AccountID: uuid.NewString(), Code: "9999", IsActive: true}
	repo.On("FindAccountByID", mock.Anything, shared.AccountID).Return(shared, nil).Once()
	name := "Renamed"

	_, err := svc.UpdateAccount(context.Background(), uuid.NewString(), shared.AccountID, dto.UpdateAccountRequest{Name: &name})

	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	repo.AssertNotCalled(t, "UpdateAccount", mock.Anything, mock.Anything)
}

func TestAccountService_GetAccountBalance(t *testing.T) {
	repo := new(MockAccountRepository)
	svc := services.NewAccountService(repo)
	ownerID := uuid.NewString()
	payable := &domain.Account{AccountID: uuid.NewString(), OwnerID: ownerID, AccountType: domain.Liability}
	repo.On("FindAccountByID", mock.Anything, payable.AccountID).Return(payable, nil).Once()
	repo.On("SumAccountLines", mock.Anything, payable.AccountID).Return(accounting.Totals{Debit: d("40"), Credit: d("100")}, nil).Once()

	bal, err := svc.GetAccountBalance(context.Background(), ownerID, payable.AccountID)

	require.NoError(t, err)
	assert.True(t, bal.Balance.Equal(d("60")), "liability balance should be credit-normal, got %s", bal.Balance)
}
