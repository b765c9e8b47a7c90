package accounting_test

import (
	"testing"

	"github.com/SscSPs/smb_books/internal/core/domain"
	"github.com/SscSPs/smb_books/internal/utils/accounting"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var decimalEqual = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

// side reduces lines to account/debit/credit so descriptions don't matter.
type side struct {
	Account string
	Debit   decimal.Decimal
	Credit  decimal.Decimal
}

func sides(lines []domain.JournalLine) []side {
	out := make([]side, len(lines))
	for i, l := range lines {
		out[i] = side{Account: l.AccountID, Debit: l.Debit, Credit: l.Credit}
	}
	return out
}

func dr(account, amount string) side {
	return side{Account: account, Debit: d(amount), Credit: decimal.Zero}
}

func cr(account, amount string) side {
	return side{Account: account, Debit: decimal.Zero, Credit: d(amount)}
}

func testBill() domain.Bill {
	return domain.Bill{
		BillNumber:  "B-100",
		VendorName:  "Acme",
		APAccountID: "ap",
		Lines: []domain.BillLine{
			{ExpenseAccountID: "A", Amount: d("30"), Description: "paper"},
			{ExpenseAccountID: "B", Amount: d("70"), Dimensions: domain.Dimensions{Location: "HQ"}},
		},
		TotalAmount: d("9999"), // stored totals are ignored
	}
}

func assertBalanced(t *testing.T, lines []domain.JournalLine) {
	t.Helper()
	_, err := accounting.ValidateLines(lines)
	require.NoError(t, err)
}

func TestBillApprovalLines(t *testing.T) {
	lines := accounting.BillApprovalLines(testBill())

	want := []side{dr("A", "30"), dr("B", "70"), cr("ap", "100")}
	if diff := cmp.Diff(want, sides(lines), decimalEqual); diff != "" {
		t.Errorf("bill approval lines mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "HQ", lines[1].Location)
	assertBalanced(t, lines)
}

func TestBillPaymentLines(t *testing.T) {
	lines := accounting.BillPaymentLines(testBill(), domain.BillPayment{PaymentAccountID: "bank", Amount: d("40")})

	want := []side{dr("ap", "40"), cr("bank", "40")}
	if diff := cmp.Diff(want, sides(lines), decimalEqual); diff != "" {
		t.Errorf("bill payment lines mismatch (-want +got):\n%s", diff)
	}
}

func TestBillRefundLines_NoLineDetail(t *testing.T) {
	lines := accounting.BillRefundLines(testBill(), domain.BillRefund{DepositAccountID: "bank", Amount: d("50")})

	want := []side{dr("bank", "50"), cr("ap", "50")}
	if diff := cmp.Diff(want, sides(lines), decimalEqual); diff != "" {
		t.Errorf("refund lines mismatch (-want +got):\n%s", diff)
	}
}

func TestBillRefundLines_ProportionalSplit(t *testing.T) {
	lines := accounting.BillRefundLines(testBill(), domain.BillRefund{
		DepositAccountID: "bank",
		Amount:           d("50"),
		AllocateToLines:  true,
	})

	want := []side{dr("bank", "50"), cr("A", "15.00"), cr("B", "35.00")}
	if diff := cmp.Diff(want, sides(lines), decimalEqual); diff != "" {
		t.Errorf("refund split mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "HQ", lines[2].Location)
	assertBalanced(t, lines)
}

func TestBillRefundLines_ResidueKeepsBalance(t *testing.T) {
	bill := domain.Bill{
		APAccountID: "ap",
		Lines: []domain.BillLine{
			{ExpenseAccountID: "A", Amount: d("1")},
			{ExpenseAccountID: "B", Amount: d("1")},
			{ExpenseAccountID: "C", Amount: d("1")},
		},
	}

	lines := accounting.BillRefundLines(bill, domain.BillRefund{DepositAccountID: "bank", Amount: d("10"), AllocateToLines: true})

	want := []side{dr("bank", "10"), cr("A", "3.34"), cr("B", "3.33"), cr("C", "3.33")}
	if diff := cmp.Diff(want, sides(lines), decimalEqual); diff != "" {
		t.Errorf("refund residue mismatch (-want +got):\n%s", diff)
	}
	totals := accounting.SumLines(lines)
	assert.True(t, totals.Difference().IsZero())
}

func TestBillRefundLines_ZeroWeightsFallBackToPayables(t *testing.T) {
	bill := domain.Bill{
		APAccountID: "ap",
		Lines: []domain.BillLine{
			{ExpenseAccountID: "A", Amount: decimal.Zero},
			{ExpenseAccountID: "B", Amount: decimal.Zero},
		},
	}

	lines := accounting.BillRefundLines(bill, domain.BillRefund{DepositAccountID: "bank", Amount: d("20"), AllocateToLines: true})

	want := []side{dr("bank", "20"), cr("ap", "20")}
	if diff := cmp.Diff(want, sides(lines), decimalEqual); diff != "" {
		t.Errorf("fallback mismatch (-want +got):\n%s", diff)
	}
}

func TestBillRefundLines_SmallLastLineStaysNonNegative(t *testing.T) {
	bill := domain.Bill{
		APAccountID: "ap",
		Lines: []domain.BillLine{
			{ExpenseAccountID: "A", Amount: d("100")},
			{ExpenseAccountID: "B", Amount: d("100")},
			{ExpenseAccountID: "C", Amount: d("100")},
			{ExpenseAccountID: "D", Amount: d("0.01")},
		},
	}

	lines := accounting.BillRefundLines(bill, domain.BillRefund{DepositAccountID: "bank", Amount: d("5"), AllocateToLines: true})

	want := []side{dr("bank", "5"), cr("A", "1.67"), cr("B", "1.67"), cr("C", "1.66")}
	if diff := cmp.Diff(want, sides(lines), decimalEqual); diff != "" {
		t.Errorf("refund split mismatch (-want +got):\n%s", diff)
	}
	assertBalanced(t, lines)
}

func TestBillCreditLines(t *testing.T) {
	credit := domain.BillCredit{
		CreditNumber: "C-1",
		APAccountID:  "ap",
		Lines: []domain.BillCreditLine{
			{ExpenseAccountID: "A", Amount: d("12.50")},
			{ExpenseAccountID: "B", Amount: d("7.50")},
		},
	}

	lines := accounting.BillCreditLines(credit)

	want := []side{dr("ap", "20"), cr("A", "12.50"), cr("B", "7.50")}
	if diff := cmp.Diff(want, sides(lines), decimalEqual); diff != "" {
		t.Errorf("bill credit lines mismatch (-want +got):\n%s", diff)
	}
	assertBalanced(t, lines)
}

func TestInvoiceLines(t *testing.T) {
	inv := domain.Invoice{
		InvoiceNumber: "INV-7",
		ARAccountID:   "ar",
		Lines: []domain.InvoiceLine{
			{RevenueAccountID: "sales", Amount: accounting.InvoiceLineAmount(d("3"), d("19.99"))},
			{RevenueAccountID: "services", Amount: accounting.InvoiceLineAmount(d("1.5"), d("100"))},
		},
	}

	created := accounting.InvoiceCreationLines(inv)
	want := []side{dr("ar", "209.97"), cr("sales", "59.97"), cr("services", "150")}
	if diff := cmp.Diff(want, sides(created), decimalEqual); diff != "" {
		t.Errorf("invoice creation mismatch (-want +got):\n%s", diff)
	}
	assertBalanced(t, created)

	paid := accounting.InvoicePaymentLines(inv, domain.InvoicePayment{DepositAccountID: "bank", Amount: d("100")})
	want = []side{dr("bank", "100"), cr("ar", "100")}
	if diff := cmp.Diff(want, sides(paid), decimalEqual); diff != "" {
		t.Errorf("invoice payment mismatch (-want +got):\n%s", diff)
	}
}

func TestProportionalSplit(t *testing.T) {
	shares, ok := accounting.ProportionalSplit(d("50"), []decimal.Decimal{d("30"), d("70")})
	require.True(t, ok)
	if diff := cmp.Diff([]decimal.Decimal{d("15"), d("35")}, shares, decimalEqual); diff != "" {
		t.Errorf("split mismatch (-want +got):\n%s", diff)
	}

	// the spare cent goes to the share with the largest remainder
	shares, ok = accounting.ProportionalSplit(d("1"), []decimal.Decimal{d("1"), d("2"), decimal.Zero})
	require.True(t, ok)
	if diff := cmp.Diff([]decimal.Decimal{d("0.33"), d("0.67"), decimal.Zero}, shares, decimalEqual); diff != "" {
		t.Errorf("split mismatch (-want +got):\n%s", diff)
	}

	shares, ok = accounting.ProportionalSplit(d("0.05"), []decimal.Decimal{d("1"), d("1"), d("1"), d("1"), d("1"), d("1"), d("1")})
	require.True(t, ok)
	sum := decimal.Zero
	for _, s := range shares {
		assert.False(t, s.IsNegative(), "share %s is negative", s)
		sum = sum.Add(s)
	}
	assert.True(t, sum.Equal(d("0.05")))

	_, ok = accounting.ProportionalSplit(d("1"), []decimal.Decimal{decimal.Zero})
	assert.False(t, ok)
}
