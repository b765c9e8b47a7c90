package accounting

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/smb_books/internal/apperrors"
	"github.com/shopspring/decimal"
)

var (
	dueOnReceiptRe = regexp.MustCompile(`^(due\s+(on|upon)\s+receipt|on\s+receipt|cod|immediate)$`)
	netTermsRe     = regexp.MustCompile(`^(?:(\d+(?:\.\d+)?)\s*/\s*(\d+)\s*,?\s*)?(?:net|n)\s*(\d+)(\s+eom)?$`)
	eomRe          = regexp.MustCompile(`^eom$`)
)

// MaxTermDays bounds net and discount periods.
const MaxTermDays = 3650

// PaymentTerms is the parsed form of an invoice's payment terms text.
type PaymentTerms struct {
	NetDays         int
	DiscountPercent decimal.Decimal
	DiscountDays    int
	EndOfMonth      bool
}

// ParsePaymentTerms understands "Due on receipt", "Net 30", "2/10 Net 30",
// "Net 30 EOM" and "EOM". Empty text means due on receipt.
func ParsePaymentTerms(text string) (PaymentTerms, error) {
	s := strings.ToLower(strings.Join(strings.Fields(text), " "))
	terms := PaymentTerms{DiscountPercent: decimal.Zero}

	switch {
	case s == "" || dueOnReceiptRe.MatchString(s):
		return terms, nil
	case eomRe.MatchString(s):
		terms.EndOfMonth = true
		return terms, nil
	}

	m := netTermsRe.FindStringSubmatch(s)
	if m == nil {
		return PaymentTerms{}, fmt.Errorf("%w: unrecognised payment terms %q", apperrors.ErrValidation, text)
	}
	if m[1] != "" {
		pct, err := decimal.NewFromString(m[1])
		if err != nil {
			return PaymentTerms{}, fmt.Errorf("%w: invalid discount in %q", apperrors.ErrValidation, text)
		}
		terms.DiscountPercent = pct
		if terms.DiscountDays, err = termDays(m[2], text); err != nil {
			return PaymentTerms{}, err
		}
	}
	var err error
	if terms.NetDays, err = termDays(m[3], text); err != nil {
		return PaymentTerms{}, err
	}
	terms.EndOfMonth = m[4] != ""

	if terms.DiscountDays > terms.NetDays {
		return PaymentTerms{}, fmt.Errorf("%w: discount period exceeds net period in %q", apperrors.ErrValidation, text)
	}
	return terms, nil
}

// termDays parses a day count from the terms text and bounds it to MaxTermDays.
func termDays(digits string, text string) (int, error) {
	days, err := strconv.Atoi(digits)
	if err != nil || days > MaxTermDays {
		return 0, fmt.Errorf("%w: payment period in %q must be at most %d days", apperrors.ErrValidation, text, MaxTermDays)
	}
	return days, nil
}

// DueDate applies the terms to an invoice date.
func (t PaymentTerms) DueDate(invoiceDate time.Time) time.Time {
	base := invoiceDate
	if t.EndOfMonth {
		base = time.Date(invoiceDate.Year(), invoiceDate.Month()+1, 0, 0, 0, 0, 0, invoiceDate.Location())
	}
	return base.AddDate(0, 0, t.NetDays)
}

// DiscountDeadline is the last day the early payment discount applies.
// It returns false when the terms carry no discount.
func (t PaymentTerms) DiscountDeadline(invoiceDate time.Time) (time.Time, bool) {
	if t.DiscountDays == 0 || !t.DiscountPercent.IsPositive() {
		return time.Time{}, false
	}
	return invoiceDate.AddDate(0, 0, t.DiscountDays), true
}
