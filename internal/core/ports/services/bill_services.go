package services

import (
	"context"

	"github.com/SscSPs/smb_books/internal/core/domain"
	"github.com/SscSPs/smb_books/internal/dto"
)

// BillSvc manages vendor bills and their payables journals.
type BillSvc interface {
	CreateBill(ctx context.Context, ownerID string, req dto.CreateBillRequest) (*domain.Bill, error)
	GetBill(ctx context.Context, ownerID string, billID string) (*domain.Bill, error)
	ApproveBill(ctx context.Context, ownerID string, billID string) (*domain.Bill, error)
	RecordPayment(ctx context.Context, ownerID string, billID string, req dto.RecordBillPaymentRequest) (*domain.BillPayment, error)
	RecordRefund(ctx context.Context, ownerID string, billID string, req dto.RecordBillRefundRequest) (*domain.BillRefund, error)
}

// BillCreditSvc manages vendor credits.
type BillCreditSvc interface {
	CreateBillCredit(ctx context.Context, ownerID string, req dto.CreateBillCreditRequest) (*domain.BillCredit, error)
	GetBillCredit(ctx context.Context, ownerID string, creditID string) (*domain.BillCredit, error)
}

// BillSvcFacade combines bill and bill credit services
type BillSvcFacade interface {
	BillSvc
	BillCreditSvc
}
