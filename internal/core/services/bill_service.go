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

// billService drives the payables workflow. Every state change that moves
// money goes through the journal poster inside the same transaction.
type billService struct {
	BaseService
	txManager portsrepo.TransactionManager
	billRepo  portsrepo.BillRepositoryFacade
	poster    portssvc.JournalPosterSvc
}

// NewBillService creates a new bill service
func NewBillService(txManager portsrepo.TransactionManager, billRepo portsrepo.BillRepositoryFacade, poster portssvc.JournalPosterSvc) portssvc.BillSvcFacade {
	return &billService{
		txManager: txManager,
		billRepo:  billRepo,
		poster:    poster,
	}
}

var _ portssvc.BillSvcFacade = (*billService)(nil)

// CreateBill stores a draft bill. The total is always recomputed from the lines.
func (s *billService) CreateBill(ctx context.Context, ownerID string, req dto.CreateBillRequest) (*domain.Bill, error) {
	lines := make([]domain.BillLine, len(req.Lines))
	for i, l := range req.Lines {
		if l.Amount.IsNegative() {
			return nil, fmt.Errorf("%w: line %d amount must not be negative", apperrors.ErrValidation, i+1)
		}
		lines[i] = domain.BillLine{
			LineNumber:       i + 1,
			ExpenseAccountID: l.ExpenseAccountID,
			Description:      l.Description,
			Amount:           l.Amount,
			Dimensions: domain.Dimensions{
				Category: l.Category,
				Location: l.Location,
				Vendor:   req.VendorName,
				Funder:   l.Funder,
			},
		}
	}

	total := accounting.BillTotal(lines)
	if !total.IsPositive() {
		return nil, fmt.Errorf("%w: bill total must be greater than zero", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	bill := domain.Bill{
		BillID:         uuid.NewString(),
		OwnerID:        ownerID,
		VendorName:     req.VendorName,
		BillNumber:     req.BillNumber,
		BillDate:       req.BillDate,
		APAccountID:    req.APAccountID,
		Status:         domain.BillStatusDraft,
		TotalAmount:    total,
		AmountPaid:     decimal.Zero,
		AmountRefunded: decimal.Zero,
		Memo:           req.Memo,
		Lines:          lines,
		AuditFields:    domain.NewAuditFields(ownerID, now),
	}
	if req.DueDate != nil {
		bill.DueDate = *req.DueDate
	}

	if err := s.billRepo.SaveBill(ctx, bill); err != nil {
		s.LogError(ctx, err, "Failed to save bill", slog.String("bill_number", req.BillNumber))
		return nil, err
	}
	s.LogInfo(ctx, "Bill created", slog.String("bill_id", bill.BillID), slog.String("total", total.StringFixed(2)))
	return &bill, nil
}

func (s *billService) GetBill(ctx context.Context, ownerID string, billID string) (*domain.Bill, error) {
	return s.billRepo.FindBillByID(ctx, ownerID, billID)
}

// ApproveBill moves a draft bill to Open and posts its payables journal.
func (s *billService) ApproveBill(ctx context.Context, ownerID string, billID string) (*domain.Bill, error) {
	var (
		bill    *domain.Bill
		journal *domain.Journal
	)

	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		bill, err = s.billRepo.FindBillForUpdate(ctx, ownerID, billID)
		if err != nil {
			return err
		}
		if bill.Status != domain.BillStatusDraft {
			return fmt.Errorf("bill %s is %s, only draft bills can be approved: %w", bill.BillNumber, bill.Status, apperrors.ErrConflict)
		}

		journal, err = s.poster.PostJournal(ctx, domain.Journal{
			JournalDate:     bill.BillDate,
			Memo:            fmt.Sprintf("Bill %s - %s", bill.BillNumber, bill.VendorName),
			Source:          domain.SourceBills,
			JournalType:     domain.JournalTypePayables,
			ReferenceNumber: bill.BillNumber,
			OwnerID:         ownerID,
			CreatedBy:       ownerID,
		}, accounting.BillApprovalLines(*bill), domain.PolicyStrict)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		if err := s.billRepo.UpdateBillStatus(ctx, bill.BillID, domain.BillStatusOpen, ownerID, now); err != nil {
			return err
		}
		bill.Status = domain.BillStatusOpen
		bill.LastUpdatedAt = now
		bill.LastUpdatedBy = ownerID
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.linkJournal(ctx, "bill", bill.BillID, journal.JournalID, s.billRepo.SetBillJournalID) {
		bill.JournalID = journal.JournalID
	}
	s.LogInfo(ctx, "Bill approved", slog.String("bill_id", bill.BillID), slog.String("journal_id", journal.JournalID))
	return bill, nil
}

// RecordPayment pays down an open bill. The bill row stays locked until the
// payment, its journal and the new paid amount are committed together.
func (s *billService) RecordPayment(ctx context.Context, ownerID string, billID string, req dto.RecordBillPaymentRequest) (*domain.BillPayment, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment amount must be greater than zero", apperrors.ErrValidation)
	}

	var payment domain.BillPayment
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		bill, err := s.billRepo.FindBillForUpdate(ctx, ownerID, billID)
		if err != nil {
			return err
		}
		if bill.Status != domain.BillStatusOpen {
			return fmt.Errorf("bill %s is %s, only open bills can be paid: %w", bill.BillNumber, bill.Status, apperrors.ErrConflict)
		}
		if req.Amount.GreaterThan(bill.OpenBalance()) {
			return fmt.Errorf("%w: payment %s exceeds open balance %s", apperrors.ErrValidation,
				req.Amount.StringFixed(2), bill.OpenBalance().StringFixed(2))
		}

		now := time.Now().UTC()
		payment = domain.BillPayment{
			PaymentID:        uuid.NewString(),
			BillID:           bill.BillID,
			PaymentDate:      req.PaymentDate,
			PaymentAccountID: req.PaymentAccountID,
			Amount:           req.Amount,
			ReferenceNumber:  req.ReferenceNumber,
			CreatedBy:        ownerID,
			CreatedAt:        now,
		}

		journal, err := s.poster.PostJournal(ctx, domain.Journal{
			JournalDate:     req.PaymentDate,
			Memo:            fmt.Sprintf("Payment for bill %s - %s", bill.BillNumber, bill.VendorName),
			Source:          domain.SourceBillPayment,
			JournalType:     domain.JournalTypePayables,
			ReferenceNumber: req.ReferenceNumber,
			OwnerID:         ownerID,
			CreatedBy:       ownerID,
		}, accounting.BillPaymentLines(*bill, payment), domain.PolicyStrict)
		if err != nil {
			return err
		}
		payment.JournalID = journal.JournalID

		if err := s.billRepo.SaveBillPayment(ctx, payment); err != nil {
			return err
		}

		paid := bill.AmountPaid.Add(req.Amount)
		status := domain.BillStatusOpen
		if paid.GreaterThanOrEqual(bill.TotalAmount) {
			status = domain.BillStatusPaid
		}
		return s.billRepo.UpdateBillAmounts(ctx, bill.BillID, paid, bill.AmountRefunded, status, ownerID, now)
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Bill payment recorded", slog.String("bill_id", billID), slog.String("journal_id", payment.JournalID))
	return &payment, nil
}

// RecordRefund books money returned by the vendor. The amount may not exceed
// what was paid less earlier refunds; the check and the writes share one
// transaction with the bill row locked so concurrent refunds cannot overshoot.
func (s *billService) RecordRefund(ctx context.Context, ownerID string, billID string, req dto.RecordBillRefundRequest) (*domain.BillRefund, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: refund amount must be greater than zero", apperrors.ErrValidation)
	}

	var refund domain.BillRefund
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		bill, err := s.billRepo.FindBillForUpdate(ctx, ownerID, billID)
		if err != nil {
			return err
		}
		if bill.Status == domain.BillStatusDraft {
			return fmt.Errorf("bill %s is still a draft: %w", bill.BillNumber, apperrors.ErrConflict)
		}
		if req.Amount.GreaterThan(bill.RefundableAmount()) {
			return fmt.Errorf("%w: refund %s exceeds refundable amount %s", apperrors.ErrValidation,
				req.Amount.StringFixed(2), bill.RefundableAmount().StringFixed(2))
		}

		now := time.Now().UTC()
		refund = domain.BillRefund{
			RefundID:         uuid.NewString(),
			BillID:           bill.BillID,
			RefundDate:       req.RefundDate,
			DepositAccountID: req.DepositAccountID,
			Amount:           req.Amount,
			Reason:           req.Reason,
			AllocateToLines:  req.AllocateToLines,
			CreatedBy:        ownerID,
			CreatedAt:        now,
		}

		journal, err := s.poster.PostJournal(ctx, domain.Journal{
			JournalDate:     req.RefundDate,
			Memo:            fmt.Sprintf("Refund for bill %s - %s", bill.BillNumber, bill.VendorName),
			Source:          domain.SourceBillRefund,
			JournalType:     domain.JournalTypeBillRefund,
			ReferenceNumber: bill.BillNumber,
			OwnerID:         ownerID,
			CreatedBy:       ownerID,
		}, accounting.BillRefundLines(*bill, refund), domain.PolicyStrict)
		if err != nil {
			return err
		}
		refund.JournalID = journal.JournalID

		if err := s.billRepo.SaveBillRefund(ctx, refund); err != nil {
			return err
		}
		return s.billRepo.UpdateBillAmounts(ctx, bill.BillID, bill.AmountPaid, bill.AmountRefunded.Add(req.Amount), bill.Status, ownerID, now)
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Bill refund recorded",
		slog.String("bill_id", billID),
		slog.String("journal_id", refund.JournalID),
		slog.Bool("allocated", refund.AllocateToLines))
	return &refund, nil
}

// CreateBillCredit stores a vendor credit and posts it immediately.
func (s *billService) CreateBillCredit(ctx context.Context, ownerID string, req dto.CreateBillCreditRequest) (*domain.BillCredit, error) {
	lines := make([]domain.BillCreditLine, len(req.Lines))
	for i, l := range req.Lines {
		if l.Amount.IsNegative() {
			return nil, fmt.Errorf("%w: line %d amount must not be negative", apperrors.ErrValidation, i+1)
		}
		lines[i] = domain.BillCreditLine{
			LineNumber:       i + 1,
			ExpenseAccountID: l.ExpenseAccountID,
			Description:      l.Description,
			Amount:           l.Amount,
			Dimensions: domain.Dimensions{
				Category: l.Category,
				Location: l.Location,
				Vendor:   req.VendorName,
				Funder:   l.Funder,
			},
		}
	}
	total := accounting.BillCreditTotal(lines)
	if !total.IsPositive() {
		return nil, fmt.Errorf("%w: bill credit total must be greater than zero", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	credit := domain.BillCredit{
		CreditID:     uuid.NewString(),
		OwnerID:      ownerID,
		VendorName:   req.VendorName,
		CreditNumber: req.CreditNumber,
		CreditDate:   req.CreditDate,
		APAccountID:  req.APAccountID,
		TotalAmount:  total,
		Memo:         req.Memo,
		Lines:        lines,
		AuditFields:  domain.NewAuditFields(ownerID, now),
	}

	var journal *domain.Journal
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.billRepo.SaveBillCredit(ctx, credit); err != nil {
			return err
		}
		var err error
		journal, err = s.poster.PostJournal(ctx, domain.Journal{
			JournalDate:     credit.CreditDate,
			Memo:            fmt.Sprintf("Bill credit %s - %s", credit.CreditNumber, credit.VendorName),
			Source:          domain.SourceBillCredit,
			JournalType:     domain.JournalTypePayables,
			ReferenceNumber: credit.CreditNumber,
			OwnerID:         ownerID,
			CreatedBy:       ownerID,
		}, accounting.BillCreditLines(credit), domain.PolicyStrict)
		return err
	})
	if err != nil {
		return nil, err
	}

	if s.linkJournal(ctx, "bill_credit", credit.CreditID, journal.JournalID, s.billRepo.SetBillCreditJournalID) {
		credit.JournalID = journal.JournalID
	}
	return &credit, nil
}

func (s *billService) GetBillCredit(ctx context.Context, ownerID string, creditID string) (*domain.BillCredit, error) {
	return s.billRepo.FindBillCreditByID(ctx, ownerID, creditID)
}
