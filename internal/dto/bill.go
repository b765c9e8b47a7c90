package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillLineRequest is one expense line on a new bill.
type BillLineRequest struct {
	ExpenseAccountID string          `json:"expenseAccountID" binding:"required,uuid"`
	Description      string          `json:"description"`
	Amount           decimal.Decimal `json:"amount" binding:"money"`
	Category         string          `json:"category,omitempty"`
	Location         string          `json:"location,omitempty"`
	Funder           string          `json:"funder,omitempty"`
}

// CreateBillRequest defines the data needed to create a draft bill.
type CreateBillRequest struct {
	VendorName  string            `json:"vendorName" binding:"required"`
	BillNumber  string            `json:"billNumber" binding:"required"`
	BillDate    time.Time         `json:"billDate" binding:"required"`
	DueDate     *time.Time        `json:"dueDate"`
	APAccountID string            `json:"apAccountID" binding:"required,uuid"`
	Memo        string            `json:"memo"`
	Lines       []BillLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// RecordBillPaymentRequest defines a payment against an open bill.
type RecordBillPaymentRequest struct {
	PaymentDate      time.Time       `json:"paymentDate" binding:"required"`
	PaymentAccountID string          `json:"paymentAccountID" binding:"required,uuid"`
	Amount           decimal.Decimal `json:"amount" binding:"money"`
	ReferenceNumber  string          `json:"referenceNumber"`
}

// RecordBillRefundRequest defines money returned by a vendor.
type RecordBillRefundRequest struct {
	RefundDate       time.Time       `json:"refundDate" binding:"required"`
	DepositAccountID string          `json:"depositAccountID" binding:"required,uuid"`
	Amount           decimal.Decimal `json:"amount" binding:"money"`
	Reason           string          `json:"reason"`
	AllocateToLines  bool            `json:"allocateToLines"`
}

// BillCreditLineRequest is one expense reversed by a vendor credit.
type BillCreditLineRequest struct {
	ExpenseAccountID string          `json:"expenseAccountID" binding:"required,uuid"`
	Description      string          `json:"description"`
	Amount           decimal.Decimal `json:"amount" binding:"money"`
	Category         string          `json:"category,omitempty"`
	Location         string          `json:"location,omitempty"`
	Funder           string          `json:"funder,omitempty"`
}

// CreateBillCreditRequest defines the data needed to record a vendor credit.
type CreateBillCreditRequest struct {
	VendorName   string                  `json:"vendorName" binding:"required"`
	CreditNumber string                  `json:"creditNumber" binding:"required"`
	CreditDate   time.Time               `json:"creditDate" binding:"required"`
	APAccountID  string                  `json:"apAccountID" binding:"required,uuid"`
	Memo         string                  `json:"memo"`
	Lines        []BillCreditLineRequest `json:"lines" binding:"required,min=1,dive"`
}
