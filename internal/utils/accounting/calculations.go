package accounting

import (
	"github.com/SscSPs/smb_books/internal/apperrors"
	"github.com/SscSPs/smb_books/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Tolerance is the largest debit/credit difference still treated as balanced.
var Tolerance = decimal.New(1, -2)

// AutoBalanceDescription labels the suspense line added to unbalanced legacy journals.
const AutoBalanceDescription = "Auto-balance adjustment"

// Totals are the summed sides of a set of journal lines.
type Totals struct {
	Debit  decimal.Decimal `json:"totalDebit"`
	Credit decimal.Decimal `json:"totalCredit"`
}

// Difference is debit minus credit.
func (t Totals) Difference() decimal.Decimal {
	return t.Debit.Sub(t.Credit)
}

// Balanced reports whether the sides agree within Tolerance.
func (t Totals) Balanced() bool {
	return t.Difference().Abs().LessThanOrEqual(Tolerance)
}

// SumLines adds up both sides without checking any rule.
func SumLines(lines []domain.JournalLine) Totals {
	totals := Totals{Debit: decimal.Zero, Credit: decimal.Zero}
	for _, l := range lines {
		totals.Debit = totals.Debit.Add(l.Debit)
		totals.Credit = totals.Credit.Add(l.Credit)
	}
	return totals
}

// ValidateLines checks the per-line rules in caller order and then the balance.
// The returned Totals are populated whenever every line passed its own checks,
// including when the journal is rejected as unbalanced.
func ValidateLines(lines []domain.JournalLine) (Totals, error) {
	if len(lines) == 0 {
		return Totals{}, &apperrors.JournalError{Kind: apperrors.KindEmptyJournal}
	}

	for i, l := range lines {
		n := i + 1
		if l.AccountID == "" {
			return Totals{}, &apperrors.JournalError{Kind: apperrors.KindMissingField, Line: n, Field: "accountId"}
		}
		if l.Debit.IsNegative() {
			return Totals{}, &apperrors.JournalError{Kind: apperrors.KindNegativeAmount, Line: n, Field: "debit"}
		}
		if l.Credit.IsNegative() {
			return Totals{}, &apperrors.JournalError{Kind: apperrors.KindNegativeAmount, Line: n, Field: "credit"}
		}
		if l.Debit.IsPositive() && l.Credit.IsPositive() {
			return Totals{}, &apperrors.JournalError{Kind: apperrors.KindLineHasBothDebitAndCredit, Line: n}
		}
		if l.Debit.IsZero() && l.Credit.IsZero() {
			return Totals{}, &apperrors.JournalError{Kind: apperrors.KindMissingField, Line: n, Field: "amount"}
		}
	}

	totals := SumLines(lines)
	if !totals.Balanced() {
		return totals, &apperrors.JournalError{
			Kind:        apperrors.KindUnbalanced,
			TotalDebit:  totals.Debit,
			TotalCredit: totals.Credit,
		}
	}
	return totals, nil
}

// AppendBalancingLine returns lines plus one line on suspenseAccountID that
// offsets the difference in totals. The input slice is not modified.
func AppendBalancingLine(lines []domain.JournalLine, totals Totals, suspenseAccountID string) []domain.JournalLine {
	out := make([]domain.JournalLine, len(lines), len(lines)+1)
	copy(out, lines)

	diff := totals.Difference()
	if diff.IsPositive() {
		return append(out, domain.CreditLine(suspenseAccountID, AutoBalanceDescription, diff))
	}
	return append(out, domain.DebitLine(suspenseAccountID, AutoBalanceDescription, diff.Neg()))
}

// NumberLines stamps 1-based line numbers in slice order onto a copy of lines.
func NumberLines(lines []domain.JournalLine) []domain.JournalLine {
	out := make([]domain.JournalLine, len(lines))
	for i, l := range lines {
		l.LineNumber = i + 1
		out[i] = l
	}
	return out
}

// NetBalance applies the normal-balance convention of accountType to summed lines.
// Assets and expenses grow with debits; liabilities, equity and revenue grow with credits.
func NetBalance(accountType domain.AccountType, totals Totals) decimal.Decimal {
	switch accountType {
	case domain.Asset, domain.Expense:
		return totals.Debit.Sub(totals.Credit)
	default:
		return totals.Credit.Sub(totals.Debit)
	}
}
