package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/smb_books/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BillReader defines read operations for bills
type BillReader interface {
	// FindBillByID loads the bill header and its lines.
	FindBillByID(ctx context.Context, ownerID string, billID string) (*domain.Bill, error)

	// FindBillForUpdate loads the bill with its lines and locks the header row
	// until the surrounding transaction ends.
	FindBillForUpdate(ctx context.Context, ownerID string, billID string) (*domain.Bill, error)
}

// BillWriter defines write operations for bills and their payments and refunds
type BillWriter interface {
	SaveBill(ctx context.Context, bill domain.Bill) error
	UpdateBillStatus(ctx context.Context, billID string, status domain.BillStatus, userID string, now time.Time) error
	UpdateBillAmounts(ctx context.Context, billID string, amountPaid, amountRefunded decimal.Decimal, status domain.BillStatus, userID string, now time.Time) error
	SetBillJournalID(ctx context.Context, billID string, journalID string) error

	SaveBillPayment(ctx context.Context, payment domain.BillPayment) error
	SaveBillRefund(ctx context.Context, refund domain.BillRefund) error
}

// BillCreditRepository stores vendor credits.
type BillCreditRepository interface {
	SaveBillCredit(ctx context.Context, credit domain.BillCredit) error
	FindBillCreditByID(ctx context.Context, ownerID string, creditID string) (*domain.BillCredit, error)
	SetBillCreditJournalID(ctx context.Context, creditID string, journalID string) error
}

// BillRepositoryFacade combines all bill-related repository interfaces
type BillRepositoryFacade interface {
	BillReader
	BillWriter
	BillCreditRepository
}
