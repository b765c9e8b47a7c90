package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/smb_books/internal/core/domain"
	portsrepo "github.com/SscSPs/smb_books/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/smb_books/internal/core/ports/services"
	"github.com/SscSPs/smb_books/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- fakeTxManager runs fn directly and counts transactions ---
type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, ownerID string, code string) (*domain.Account, error) {
	args := m.Called(ctx, ownerID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, ownerID string, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, ownerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	return m.Called(ctx, account).Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	return m.Called(ctx, account).Error(0)
}

func (m *MockAccountRepository) UpsertSharedAccounts(ctx context.Context, accounts []domain.Account) (int, error) {
	args := m.Called(ctx, accounts)
	return args.Int(0), args.Error(1)
}

func (m *MockAccountRepository) SumAccountLines(ctx context.Context, accountID string) (accounting.Totals, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(accounting.Totals), args.Error(1)
}

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) InsertJournal(ctx context.Context, journal domain.Journal, lines []domain.JournalLine) (*domain.Journal, error) {
	args := m.Called(ctx, journal, lines)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) FindJournalByID(ctx context.Context, ownerID string, journalID string) (*domain.Journal, error) {
	args := m.Called(ctx, ownerID, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) FindLinesByJournalID(ctx context.Context, journalID string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) ListJournals(ctx context.Context, ownerID string, limit int, after *portsrepo.JournalCursor) ([]domain.Journal, error) {
	args := m.Called(ctx, ownerID, limit, after)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Journal), args.Error(1)
}

// --- Mock BillRepository ---
type MockBillRepository struct {
	mock.Mock
}

var _ portsrepo.BillRepositoryFacade = (*MockBillRepository)(nil)

func (m *MockBillRepository) FindBillByID(ctx context.Context, ownerID string, billID string) (*domain.Bill, error) {
	args := m.Called(ctx, ownerID, billID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bill), args.Error(1)
}

func (m *MockBillRepository) FindBillForUpdate(ctx context.Context, ownerID string, billID string) (*domain.Bill, error) {
	args := m.Called(ctx, ownerID, billID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bill), args.Error(1)
}

func (m *MockBillRepository) SaveBill(ctx context.Context, bill domain.Bill) error {
	return m.Called(ctx, bill).Error(0)
}

func (m *MockBillRepository) UpdateBillStatus(ctx context.Context, billID string, status domain.BillStatus, userID string, now time.Time) error {
	return m.Called(ctx, billID, status, userID, now).Error(0)
}

func (m *MockBillRepository) UpdateBillAmounts(ctx context.Context, billID string, amountPaid, amountRefunded decimal.Decimal, status domain.BillStatus, userID string, now time.Time) error {
	return m.Called(ctx, billID, amountPaid, amountRefunded, status, userID, now).Error(0)
}

func (m *MockBillRepository) SetBillJournalID(ctx context.Context, billID string, journalID string) error {
	return m.Called(ctx, billID, journalID).Error(0)
}

func (m *MockBillRepository) SaveBillPayment(ctx context.Context, payment domain.BillPayment) error {
	return m.Called(ctx, payment).Error(0)
}

func (m *MockBillRepository) SaveBillRefund(ctx context.Context, refund domain.BillRefund) error {
	return m.Called(ctx, refund).Error(0)
}

func (m *MockBillRepository) SaveBillCredit(ctx context.Context, credit domain.BillCredit) error {
	return m.Called(ctx, credit).Error(0)
}

func (m *MockBillRepository) FindBillCreditByID(ctx context.Context, ownerID string, creditID string) (*domain.BillCredit, error) {
	args := m.Called(ctx, ownerID, creditID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BillCredit), args.Error(1)
}

func (m *MockBillRepository) SetBillCreditJournalID(ctx context.Context, creditID string, journalID string) error {
	return m.Called(ctx, creditID, journalID).Error(0)
}

// --- Mock InvoiceRepository ---
type MockInvoiceRepository struct {
	mock.Mock
}

var _ portsrepo.InvoiceRepositoryFacade = (*MockInvoiceRepository)(nil)

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, ownerID string, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, ownerID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindInvoiceForUpdate(ctx context.Context, ownerID string, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, ownerID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	return m.Called(ctx, invoice).Error(0)
}

func (m *MockInvoiceRepository) SetInvoiceJournalID(ctx context.Context, invoiceID string, journalID string) error {
	return m.Called(ctx, invoiceID, journalID).Error(0)
}

func (m *MockInvoiceRepository) SaveInvoicePayment(ctx context.Context, payment domain.InvoicePayment) error {
	return m.Called(ctx, payment).Error(0)
}

func (m *MockInvoiceRepository) UpdateInvoicePaymentState(ctx context.Context, invoiceID string, amountPaid decimal.Decimal, status domain.InvoiceStatus, userID string, now time.Time) error {
	return m.Called(ctx, invoiceID, amountPaid, status, userID, now).Error(0)
}

// --- Mock JournalPoster (as used by document services) ---
type MockJournalPoster struct {
	mock.Mock
}

var _ portssvc.JournalPosterSvc = (*MockJournalPoster)(nil)

func (m *MockJournalPoster) ValidateJournal(ctx context.Context, lines []domain.JournalLine) (accounting.Totals, error) {
	args := m.Called(ctx, lines)
	return args.Get(0).(accounting.Totals), args.Error(1)
}

func (m *MockJournalPoster) PostJournal(ctx context.Context, journal domain.Journal, lines []domain.JournalLine, policy domain.BalancePolicy) (*domain.Journal, error) {
	args := m.Called(ctx, journal, lines, policy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

// --- recordingTracker captures analytics events ---
type recordingTracker struct {
	events []string
}

func (r *recordingTracker) Enqueue(distinctID string, event string, properties map[string]any) {
	r.events = append(r.events, event)
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
