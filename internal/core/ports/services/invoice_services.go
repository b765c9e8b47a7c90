package services

import (
	"context"

	"github.com/SscSPs/smb_books/internal/core/domain"
	"github.com/SscSPs/smb_books/internal/dto"
)

// InvoiceSvcFacade manages customer invoices and their receivables journals.
type InvoiceSvcFacade interface {
	CreateInvoice(ctx context.Context, ownerID string, req dto.CreateInvoiceRequest) (*domain.Invoice, error)
	GetInvoice(ctx context.Context, ownerID string, invoiceID string) (*domain.Invoice, error)
	RecordPayment(ctx context.Context, ownerID string, invoiceID string, req dto.RecordInvoicePaymentRequest) (*domain.InvoicePayment, error)
}
