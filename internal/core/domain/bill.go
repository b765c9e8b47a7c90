package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillStatus is the lifecycle state of a vendor bill.
type BillStatus string

const (
	BillStatusDraft BillStatus = "Draft"
	BillStatusOpen  BillStatus = "Open"
	BillStatusPaid  BillStatus = "Paid"
)

// Bill is a payable owed to a vendor.
type Bill struct {
	BillID         string          `json:"billID"`
	OwnerID        string          `json:"ownerID"`
	VendorName     string          `json:"vendorName"`
	BillNumber     string          `json:"billNumber"`
	BillDate       time.Time       `json:"billDate"`
	DueDate        time.Time       `json:"dueDate"`
	APAccountID    string          `json:"apAccountID"`
	Status         BillStatus      `json:"status"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	AmountPaid     decimal.Decimal `json:"amountPaid"`
	AmountRefunded decimal.Decimal `json:"amountRefunded"`
	JournalID      string          `json:"journalID,omitempty"`
	Memo           string          `json:"memo"`
	Lines          []BillLine      `json:"lines"`
	AuditFields
}

// OpenBalance is what is still owed on the bill.
func (b Bill) OpenBalance() decimal.Decimal {
	return b.TotalAmount.Sub(b.AmountPaid)
}

// RefundableAmount is what the vendor can still refund.
func (b Bill) RefundableAmount() decimal.Decimal {
	return b.AmountPaid.Sub(b.AmountRefunded)
}

// BillLine is one expense on a bill.
type BillLine struct {
	LineID           string          `json:"lineID"`
	LineNumber       int             `json:"lineNumber"`
	ExpenseAccountID string          `json:"expenseAccountID"`
	Description      string          `json:"description"`
	Amount           decimal.Decimal `json:"amount"`
	Dimensions
}

// BillPayment records money paid against a bill.
type BillPayment struct {
	PaymentID        string          `json:"paymentID"`
	BillID           string          `json:"billID"`
	PaymentDate      time.Time       `json:"paymentDate"`
	PaymentAccountID string          `json:"paymentAccountID"`
	Amount           decimal.Decimal `json:"amount"`
	ReferenceNumber  string          `json:"referenceNumber"`
	JournalID        string          `json:"journalID"`
	CreatedBy        string          `json:"createdBy"`
	CreatedAt        time.Time       `json:"createdAt"`
}

// BillRefund records money returned by a vendor against a paid bill.
// AllocateToLines splits the refund across the bill's expense accounts.
type BillRefund struct {
	RefundID         string          `json:"refundID"`
	BillID           string          `json:"billID"`
	RefundDate       time.Time       `json:"refundDate"`
	DepositAccountID string          `json:"depositAccountID"`
	Amount           decimal.Decimal `json:"amount"`
	Reason           string          `json:"reason"`
	AllocateToLines  bool            `json:"allocateToLines"`
	JournalID        string          `json:"journalID"`
	CreatedBy        string          `json:"createdBy"`
	CreatedAt        time.Time       `json:"createdAt"`
}

// BillCredit is a vendor credit that reduces what is owed.
type BillCredit struct {
	CreditID     string           `json:"creditID"`
	OwnerID      string           `json:"ownerID"`
	VendorName   string           `json:"vendorName"`
	CreditNumber string           `json:"creditNumber"`
	CreditDate   time.Time        `json:"creditDate"`
	APAccountID  string           `json:"apAccountID"`
	TotalAmount  decimal.Decimal  `json:"totalAmount"`
	JournalID    string           `json:"journalID,omitempty"`
	Memo         string           `json:"memo"`
	Lines        []BillCreditLine `json:"lines"`
	AuditFields
}

// BillCreditLine is one expense reversed by a bill credit.
type BillCreditLine struct {
	LineID           string          `json:"lineID"`
	LineNumber       int             `json:"lineNumber"`
	ExpenseAccountID string          `json:"expenseAccountID"`
	Description      string          `json:"description"`
	Amount           decimal.Decimal `json:"amount"`
	Dimensions
}
