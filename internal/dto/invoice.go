package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceLineRequest is one revenue line on a new invoice.
type InvoiceLineRequest struct {
	RevenueAccountID string          `json:"revenueAccountID" binding:"required,uuid"`
	Description      string          `json:"description"`
	Quantity         decimal.Decimal `json:"quantity"`
	UnitPrice        decimal.Decimal `json:"unitPrice" binding:"money"`
	Category         string          `json:"category,omitempty"`
	Location         string          `json:"location,omitempty"`
	Funder           string          `json:"funder,omitempty"`
}

// CreateInvoiceRequest defines the data needed to issue an invoice.
type CreateInvoiceRequest struct {
	CustomerName  string               `json:"customerName" binding:"required"`
	InvoiceNumber string               `json:"invoiceNumber" binding:"required"`
	InvoiceDate   time.Time            `json:"invoiceDate" binding:"required"`
	PaymentTerms  string               `json:"paymentTerms"`
	ARAccountID   string               `json:"arAccountID" binding:"required,uuid"`
	Memo          string               `json:"memo"`
	Lines         []InvoiceLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// RecordInvoicePaymentRequest defines a customer payment against an invoice.
type RecordInvoicePaymentRequest struct {
	PaymentDate      time.Time       `json:"paymentDate" binding:"required"`
	DepositAccountID string          `json:"depositAccountID" binding:"required,uuid"`
	Amount           decimal.Decimal `json:"amount" binding:"money"`
	ReferenceNumber  string          `json:"referenceNumber"`
}
