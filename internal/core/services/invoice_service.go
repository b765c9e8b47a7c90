package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/smb_books/internal/apperrors"
	"github.com/SscSPs/smb_books/internal/core/domain"
	portsrepo "github.com/SscSPs/smb_books/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/smb_books/internal/core/ports/services"
	"github.com/SscSPs/smb_books/internal/dto"
	"github.com/SscSPs/smb_books/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// invoiceService drives the receivables workflow.
type invoiceService struct {
	BaseService
	txManager   portsrepo.TransactionManager
	invoiceRepo portsrepo.InvoiceRepositoryFacade
	poster      portssvc.JournalPosterSvc
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(txManager portsrepo.TransactionManager, invoiceRepo portsrepo.InvoiceRepositoryFacade, poster portssvc.JournalPosterSvc) portssvc.InvoiceSvcFacade {
	return &invoiceService{
		txManager:   txManager,
		invoiceRepo: invoiceRepo,
		poster:      poster,
	}
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

// CreateInvoice stores the invoice, derives its due date from the payment
// terms and posts the receivables journal in one transaction.
func (s *invoiceService) CreateInvoice(ctx context.Context, ownerID string, req dto.CreateInvoiceRequest) (*domain.Invoice, error) {
	terms, err := accounting.ParsePaymentTerms(req.PaymentTerms)
	if err != nil {
		return nil, err
	}

	lines := make([]domain.InvoiceLine, len(req.Lines))
	for i, l := range req.Lines {
		if !l.Quantity.IsPositive() {
			return nil, fmt.Errorf("%w: line %d quantity must be greater than zero", apperrors.ErrValidation, i+1)
		}
		if l.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: line %d unit price must not be negative", apperrors.ErrValidation, i+1)
		}
		lines[i] = domain.InvoiceLine{
			LineNumber:       i + 1,
			RevenueAccountID: l.RevenueAccountID,
			Description:      l.Description,
			Quantity:         l.Quantity,
			UnitPrice:        l.UnitPrice,
			Amount:           accounting.InvoiceLineAmount(l.Quantity, l.UnitPrice),
			Dimensions: domain.Dimensions{
				Category: l.Category,
				Location: l.Location,
				Funder:   l.Funder,
			},
		}
	}

	total := accounting.InvoiceTotal(lines)
	if !total.IsPositive() {
		return nil, fmt.Errorf("%w: invoice total must be greater than zero", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	inv := domain.Invoice{
		InvoiceID:     uuid.NewString(),
		OwnerID:       ownerID,
		CustomerName:  req.CustomerName,
		InvoiceNumber: req.InvoiceNumber,
		InvoiceDate:   req.InvoiceDate,
		DueDate:       terms.DueDate(req.InvoiceDate),
		PaymentTerms:  req.PaymentTerms,
		ARAccountID:   req.ARAccountID,
		Status:        domain.InvoiceStatusOpen,
		TotalAmount:   total,
		AmountPaid:    decimal.Zero,
		Memo:          req.Memo,
		Lines:         lines,
		AuditFields:   domain.NewAuditFields(ownerID, now),
	}
	applyDiscountDeadline(&inv, terms)

	var journal *domain.Journal
	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.invoiceRepo.SaveInvoice(ctx, inv); err != nil {
			return err
		}
		var err error
		journal, err = s.poster.PostJournal(ctx, domain.Journal{
			JournalDate:     inv.InvoiceDate,
			Memo:            fmt.Sprintf("Invoice %s - %s", inv.InvoiceNumber, inv.CustomerName),
			Source:          domain.SourceInvoiceCreate,
			JournalType:     domain.JournalTypeReceivables,
			ReferenceNumber: inv.InvoiceNumber,
			OwnerID:         ownerID,
			CreatedBy:       ownerID,
		}, accounting.InvoiceCreationLines(inv), domain.PolicyStrict)
		return err
	})
	if err != nil {
		return nil, err
	}

	if s.linkJournal(ctx, "invoice", inv.InvoiceID, journal.JournalID, s.invoiceRepo.SetInvoiceJournalID) {
		inv.JournalID = journal.JournalID
	}
	s.LogInfo(ctx, "Invoice created",
		slog.String("invoice_id", inv.InvoiceID),
		slog.String("total", total.StringFixed(2)),
		slog.Time("due_date", inv.DueDate))
	return &inv, nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, ownerID string, invoiceID string) (*domain.Invoice, error) {
	inv, err := s.invoiceRepo.FindInvoiceByID(ctx, ownerID, invoiceID)
	if err != nil {
		return nil, err
	}
	// terms were validated when the invoice was created
	if terms, err := accounting.ParsePaymentTerms(inv.PaymentTerms); err == nil {
		applyDiscountDeadline(inv, terms)
	}
	return inv, nil
}

func applyDiscountDeadline(inv *domain.Invoice, terms accounting.PaymentTerms) {
	if deadline, ok := terms.DiscountDeadline(inv.InvoiceDate); ok {
		inv.DiscountDueDate = &deadline
	}
}

// RecordPayment applies a customer payment. The invoice row is locked while
// the payment, its journal and the new status are written.
func (s *invoiceService) RecordPayment(ctx context.Context, ownerID string, invoiceID string, req dto.RecordInvoicePaymentRequest) (*domain.InvoicePayment, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment amount must be greater than zero", apperrors.ErrValidation)
	}

	var payment domain.InvoicePayment
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		inv, err := s.invoiceRepo.FindInvoiceForUpdate(ctx, ownerID, invoiceID)
		if err != nil {
			return err
		}
		if inv.Status == domain.InvoiceStatusPaid {
			return fmt.Errorf("invoice %s is already paid: %w", inv.InvoiceNumber, apperrors.ErrConflict)
		}
		if req.Amount.GreaterThan(inv.Outstanding()) {
			return fmt.Errorf("%w: payment %s exceeds outstanding %s", apperrors.ErrValidation,
				req.Amount.StringFixed(2), inv.Outstanding().StringFixed(2))
		}

		now := time.Now().UTC()
		payment = domain.InvoicePayment{
			PaymentID:        uuid.NewString(),
			InvoiceID:        inv.InvoiceID,
			PaymentDate:      req.PaymentDate,
			DepositAccountID: req.DepositAccountID,
			Amount:           req.Amount,
			ReferenceNumber:  req.ReferenceNumber,
			CreatedBy:        ownerID,
			CreatedAt:        now,
		}

		journal, err := s.poster.PostJournal(ctx, domain.Journal{
			JournalDate:     req.PaymentDate,
			Memo:            fmt.Sprintf("Payment for invoice %s - %s", inv.InvoiceNumber, inv.CustomerName),
			Source:          domain.SourceInvoicePayment,
			JournalType:     domain.JournalTypeReceivables,
			ReferenceNumber: req.ReferenceNumber,
			OwnerID:         ownerID,
			CreatedBy:       ownerID,
		}, accounting.InvoicePaymentLines(*inv, payment), domain.PolicyStrict)
		if err != nil {
			return err
		}
		payment.JournalID = journal.JournalID

		if err := s.invoiceRepo.SaveInvoicePayment(ctx, payment); err != nil {
			return err
		}
		paid := inv.AmountPaid.Add(req.Amount)
		return s.invoiceRepo.UpdateInvoicePaymentState(ctx, inv.InvoiceID, paid, inv.StatusFor(paid), ownerID, now)
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Invoice payment recorded", slog.String("invoice_id", invoiceID), slog.String("journal_id", payment.JournalID))
	return &payment, nil
}
