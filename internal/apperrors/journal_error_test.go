package apperrors_test

import (
	"errors"
	"testing"

	"github.com/SscSPs/smb_books/internal/apperrors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestJournalError_Sentinels(t *testing.T) {
	cause := errors.New("connection reset")

	tests := []struct {
		name     string
		err      *apperrors.JournalError
		sentinel error
	}{
		{"unbalanced is validation", &apperrors.JournalError{Kind: apperrors.KindUnbalanced}, apperrors.ErrValidation},
		{"both sides is validation", &apperrors.JournalError{Kind: apperrors.KindLineHasBothDebitAndCredit, Line: 2}, apperrors.ErrValidation},
		{"auto-balance failure is internal", &apperrors.JournalError{Kind: apperrors.KindAutoBalanceFailed}, apperrors.ErrInternal},
		{"insert failure is persistence", &apperrors.JournalError{Kind: apperrors.KindInsertFailed, Err: cause}, apperrors.ErrPersistence},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.sentinel)
		})
	}
}

func TestJournalError_WrapsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := &apperrors.JournalError{Kind: apperrors.KindInsertFailed, Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.False(t, err.IsValidation())
}

func TestJournalError_UnbalancedMessage(t *testing.T) {
	err := &apperrors.JournalError{
		Kind:        apperrors.KindUnbalanced,
		TotalDebit:  decimal.NewFromInt(100),
		TotalCredit: decimal.NewFromInt(99),
	}

	assert.Equal(t, "1.00", err.Difference().StringFixed(2))
	assert.Contains(t, err.Error(), "debits 100.00, credits 99.00, difference 1.00")
}
