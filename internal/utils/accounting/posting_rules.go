package accounting

import (
	"fmt"
	"slices"

	"github.com/SscSPs/smb_books/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BillTotal sums bill line amounts. Stored totals are never trusted.
func BillTotal(lines []domain.BillLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Amount)
	}
	return total
}

// BillCreditTotal sums bill credit line amounts.
func BillCreditTotal(lines []domain.BillCreditLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Amount)
	}
	return total
}

// InvoiceLineAmount is quantity times unit price rounded to cents.
func InvoiceLineAmount(quantity, unitPrice decimal.Decimal) decimal.Decimal {
	return quantity.Mul(unitPrice).Round(2)
}

// InvoiceTotal sums invoice line amounts.
func InvoiceTotal(lines []domain.InvoiceLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Amount)
	}
	return total
}

// BillApprovalLines debits each expense line and credits payables for the total.
func BillApprovalLines(bill domain.Bill) []domain.JournalLine {
	lines := make([]domain.JournalLine, 0, len(bill.Lines)+1)
	for _, bl := range bill.Lines {
		if bl.Amount.IsZero() {
			continue
		}
		lines = append(lines, domain.DebitLine(bl.ExpenseAccountID, lineDescription(bill.BillNumber, bl.Description), bl.Amount).WithDimensions(bl.Dimensions))
	}
	lines = append(lines, domain.CreditLine(bill.APAccountID, fmt.Sprintf("Bill %s - %s", bill.BillNumber, bill.VendorName), BillTotal(bill.Lines)))
	return lines
}

// BillPaymentLines clears payables against the paying account.
func BillPaymentLines(bill domain.Bill, payment domain.BillPayment) []domain.JournalLine {
	desc := fmt.Sprintf("Payment for bill %s", bill.BillNumber)
	return []domain.JournalLine{
		domain.DebitLine(bill.APAccountID, desc, payment.Amount),
		domain.CreditLine(payment.PaymentAccountID, desc, payment.Amount),
	}
}

// BillRefundLines debits the deposit account and credits either payables or,
// when the refund is allocated, each original expense account by its share.
// A bill whose lines sum to zero falls back to a single payables credit.
func BillRefundLines(bill domain.Bill, refund domain.BillRefund) []domain.JournalLine {
	desc := fmt.Sprintf("Refund for bill %s", bill.BillNumber)
	lines := []domain.JournalLine{domain.DebitLine(refund.DepositAccountID, desc, refund.Amount)}

	if !refund.AllocateToLines || len(bill.Lines) == 0 {
		return append(lines, domain.CreditLine(bill.APAccountID, desc, refund.Amount))
	}

	weights := make([]decimal.Decimal, len(bill.Lines))
	for i, bl := range bill.Lines {
		weights[i] = bl.Amount
	}
	shares, ok := ProportionalSplit(refund.Amount, weights)
	if !ok {
		return append(lines, domain.CreditLine(bill.APAccountID, desc, refund.Amount))
	}

	for i, bl := range bill.Lines {
		if shares[i].IsZero() {
			continue
		}
		lines = append(lines, domain.CreditLine(bl.ExpenseAccountID, lineDescription(desc, bl.Description), shares[i]).WithDimensions(bl.Dimensions))
	}
	return lines
}

// BillCreditLines debits payables for the total and credits each expense line.
func BillCreditLines(credit domain.BillCredit) []domain.JournalLine {
	lines := make([]domain.JournalLine, 0, len(credit.Lines)+1)
	lines = append(lines, domain.DebitLine(credit.APAccountID, fmt.Sprintf("Bill credit %s - %s", credit.CreditNumber, credit.VendorName), BillCreditTotal(credit.Lines)))
	for _, cl := range credit.Lines {
		if cl.Amount.IsZero() {
			continue
		}
		lines = append(lines, domain.CreditLine(cl.ExpenseAccountID, lineDescription(credit.CreditNumber, cl.Description), cl.Amount).WithDimensions(cl.Dimensions))
	}
	return lines
}

// InvoiceCreationLines debits receivables for the total and credits each revenue line.
func InvoiceCreationLines(inv domain.Invoice) []domain.JournalLine {
	lines := make([]domain.JournalLine, 0, len(inv.Lines)+1)
	lines = append(lines, domain.DebitLine(inv.ARAccountID, fmt.Sprintf("Invoice %s - %s", inv.InvoiceNumber, inv.CustomerName), InvoiceTotal(inv.Lines)))
	for _, il := range inv.Lines {
		if il.Amount.IsZero() {
			continue
		}
		lines = append(lines, domain.CreditLine(il.RevenueAccountID, lineDescription(inv.InvoiceNumber, il.Description), il.Amount).WithDimensions(il.Dimensions))
	}
	return lines
}

// InvoicePaymentLines moves the received amount from receivables to the deposit account.
func InvoicePaymentLines(inv domain.Invoice, payment domain.InvoicePayment) []domain.JournalLine {
	desc := fmt.Sprintf("Payment for invoice %s", inv.InvoiceNumber)
	return []domain.JournalLine{
		domain.DebitLine(payment.DepositAccountID, desc, payment.Amount),
		domain.CreditLine(inv.ARAccountID, desc, payment.Amount),
	}
}

// ProportionalSplit divides amount across weights in whole cents. Each share
// is first truncated to cents, then the remaining cents go one at a time to
// the shares with the largest truncated remainder (earlier index on ties), so
// the shares add up to amount and none changes sign. It returns false when
// the weights sum to zero.
func ProportionalSplit(amount decimal.Decimal, weights []decimal.Decimal) ([]decimal.Decimal, bool) {
	sum := decimal.Zero
	for _, w := range weights {
		sum = sum.Add(w)
	}
	if sum.IsZero() {
		return nil, false
	}

	negative := amount.IsNegative()
	total := amount.Abs()

	shares := make([]decimal.Decimal, len(weights))
	remainders := make([]decimal.Decimal, len(weights))
	allocated := decimal.Zero
	for i, w := range weights {
		exact := w.Mul(total).Div(sum)
		shares[i] = exact.Truncate(2)
		remainders[i] = exact.Sub(shares[i])
		allocated = allocated.Add(shares[i])
	}

	order := make([]int, len(weights))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return remainders[b].Cmp(remainders[a])
	})

	cent := decimal.New(1, -2)
	left := total.Sub(allocated)
	for k := 0; left.GreaterThanOrEqual(cent) && k < len(order); k++ {
		i := order[k]
		shares[i] = shares[i].Add(cent)
		left = left.Sub(cent)
	}

	if negative {
		for i := range shares {
			shares[i] = shares[i].Neg()
		}
	}
	return shares, true
}

func lineDescription(prefix, desc string) string {
	if desc == "" {
		return prefix
	}
	return prefix + ": " + desc
}
