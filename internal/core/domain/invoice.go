package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is the collection state of a customer invoice.
type InvoiceStatus string

const (
	InvoiceStatusOpen          InvoiceStatus = "Open"
	InvoiceStatusPartiallyPaid InvoiceStatus = "PartiallyPaid"
	InvoiceStatusPaid          InvoiceStatus = "Paid"
)

// Invoice is a receivable billed to a customer.
type Invoice struct {
	InvoiceID     string           `json:"invoiceID"`
	OwnerID       string           `json:"ownerID"`
	CustomerName  string           `json:"customerName"`
	InvoiceNumber string           `json:"invoiceNumber"`
	InvoiceDate   time.Time        `json:"invoiceDate"`
	DueDate       time.Time        `json:"dueDate"`
	PaymentTerms  string           `json:"paymentTerms"`
	ARAccountID   string           `json:"arAccountID"`
	Status        InvoiceStatus    `json:"status"`
	TotalAmount   decimal.Decimal  `json:"totalAmount"`
	AmountPaid    decimal.Decimal  `json:"amountPaid"`
	JournalID     string           `json:"journalID,omitempty"`
	Memo          string           `json:"memo"`
	Lines         []InvoiceLine    `json:"lines"`
	Payments      []InvoicePayment `json:"payments,omitempty"`

	// DiscountDueDate is the last day an early payment discount applies.
	// It is derived from PaymentTerms and not stored.
	DiscountDueDate *time.Time `json:"discountDueDate,omitempty"`

	AuditFields
}

// Outstanding is the amount the customer still owes.
func (i Invoice) Outstanding() decimal.Decimal {
	return i.TotalAmount.Sub(i.AmountPaid)
}

// StatusFor derives the status implied by a paid amount.
func (i Invoice) StatusFor(amountPaid decimal.Decimal) InvoiceStatus {
	switch {
	case amountPaid.GreaterThanOrEqual(i.TotalAmount):
		return InvoiceStatusPaid
	case amountPaid.IsPositive():
		return InvoiceStatusPartiallyPaid
	}
	return InvoiceStatusOpen
}

// InvoiceLine is one revenue line on an invoice. Amount is Quantity * UnitPrice.
type InvoiceLine struct {
	LineID           string          `json:"lineID"`
	LineNumber       int             `json:"lineNumber"`
	RevenueAccountID string          `json:"revenueAccountID"`
	Description      string          `json:"description"`
	Quantity         decimal.Decimal `json:"quantity"`
	UnitPrice        decimal.Decimal `json:"unitPrice"`
	Amount           decimal.Decimal `json:"amount"`
	Dimensions
}

// InvoicePayment records money received against an invoice.
type InvoicePayment struct {
	PaymentID        string          `json:"paymentID"`
	InvoiceID        string          `json:"invoiceID"`
	PaymentDate      time.Time       `json:"paymentDate"`
	DepositAccountID string          `json:"depositAccountID"`
	Amount           decimal.Decimal `json:"amount"`
	ReferenceNumber  string          `json:"referenceNumber"`
	JournalID        string          `json:"journalID"`
	CreatedBy        string          `json:"createdBy"`
	CreatedAt        time.Time       `json:"createdAt"`
}
