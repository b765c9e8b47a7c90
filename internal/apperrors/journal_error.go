package apperrors

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// JournalErrorKind names the rule a journal violated.
type JournalErrorKind string

const (
	KindEmptyJournal              JournalErrorKind = "EmptyJournal"
	KindMissingField              JournalErrorKind = "MissingField"
	KindNegativeAmount            JournalErrorKind = "NegativeAmount"
	KindLineHasBothDebitAndCredit JournalErrorKind = "LineHasBothDebitAndCredit"
	KindUnbalanced                JournalErrorKind = "Unbalanced"
	KindAutoBalanceFailed         JournalErrorKind = "AutoBalanceFailed"
	KindInsertFailed              JournalErrorKind = "InsertFailed"
)

// JournalError is returned by the journal validator and poster.
// Line is 1-based and zero when the error is not tied to a single line.
type JournalError struct {
	Kind        JournalErrorKind
	Line        int
	Field       string
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
	Err         error
}

// Difference is the signed debit minus credit total.
func (e *JournalError) Difference() decimal.Decimal {
	return e.TotalDebit.Sub(e.TotalCredit)
}

func (e *JournalError) Error() string {
	switch e.Kind {
	case KindEmptyJournal:
		return "journal has no lines"
	case KindMissingField:
		return fmt.Sprintf("line %d: missing %s", e.Line, e.Field)
	case KindNegativeAmount:
		return fmt.Sprintf("line %d: %s must not be negative", e.Line, e.Field)
	case KindLineHasBothDebitAndCredit:
		return fmt.Sprintf("line %d: has both debit and credit", e.Line)
	case KindUnbalanced:
		return fmt.Sprintf("journal is unbalanced: debits %s, credits %s, difference %s",
			e.TotalDebit.StringFixed(2), e.TotalCredit.StringFixed(2), e.Difference().StringFixed(2))
	case KindAutoBalanceFailed:
		return fmt.Sprintf("auto-balance left journal unbalanced: debits %s, credits %s",
			e.TotalDebit.StringFixed(2), e.TotalCredit.StringFixed(2))
	case KindInsertFailed:
		if e.Err != nil {
			return fmt.Sprintf("failed to insert journal: %v", e.Err)
		}
		return "failed to insert journal"
	}
	return string(e.Kind)
}

// IsValidation reports whether the caller can fix the error by correcting input.
func (e *JournalError) IsValidation() bool {
	switch e.Kind {
	case KindAutoBalanceFailed, KindInsertFailed:
		return false
	}
	return true
}

// Unwrap lets errors.Is match the matching sentinel as well as the cause.
func (e *JournalError) Unwrap() []error {
	var sentinel error
	switch e.Kind {
	case KindAutoBalanceFailed:
		sentinel = ErrInternal
	case KindInsertFailed:
		sentinel = ErrPersistence
	default:
		sentinel = ErrValidation
	}
	if e.Err != nil {
		return []error{sentinel, e.Err}
	}
	return []error{sentinel}
}
