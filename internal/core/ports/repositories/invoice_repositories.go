package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/smb_books/internal/core/domain"
	"github.com/shopspring/decimal"
)

// InvoiceReader defines read operations for invoices
type InvoiceReader interface {
	// FindInvoiceByID loads the invoice with its lines and payments.
	FindInvoiceByID(ctx context.Context, ownerID string, invoiceID string) (*domain.Invoice, error)

	// FindInvoiceForUpdate loads the invoice header and locks the row
	// until the surrounding transaction ends.
	FindInvoiceForUpdate(ctx context.Context, ownerID string, invoiceID string) (*domain.Invoice, error)
}

// InvoiceWriter defines write operations for invoices and their payments
type InvoiceWriter interface {
	SaveInvoice(ctx context.Context, invoice domain.Invoice) error
	SetInvoiceJournalID(ctx context.Context, invoiceID string, journalID string) error
	SaveInvoicePayment(ctx context.Context, payment domain.InvoicePayment) error
	UpdateInvoicePaymentState(ctx context.Context, invoiceID string, amountPaid decimal.Decimal, status domain.InvoiceStatus, userID string, now time.Time) error
}

// InvoiceRepositoryFacade combines all invoice-related repository interfaces
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}
