package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/smb_books/internal/apperrors"
	"github.com/SscSPs/smb_books/internal/core/domain"
	portsrepo "github.com/SscSPs/smb_books/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/smb_books/internal/core/ports/services"
	"github.com/SscSPs/smb_books/internal/core/services"
	"github.com/SscSPs/smb_books/internal/dto"
	"github.com/SscSPs/smb_books/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockAccountRepo *MockAccountRepository
	tracker         *recordingTracker
	service         portssvc.JournalSvcFacade

	ownerID  string
	cash     domain.Account
	rent     domain.Account
	suspense domain.Account
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.tracker = &recordingTracker{}
	suite.service = services.NewJournalService(suite.mockJournalRepo, suite.mockAccountRepo,
		services.WithEventTracker(suite.tracker))

	suite.ownerID = uuid.NewString()
	suite.cash = domain.Account{AccountID: uuid.NewString(), Code: "1000", AccountType: domain.Asset, OwnerID: suite.ownerID, IsActive: true}
	suite.rent = domain.Account{AccountID: uuid.NewString(), Code: "6100", AccountType: domain.Expense, OwnerID: suite.ownerID, IsActive: true}
	// shared account
	suite.suspense = domain.Account{AccountID: uuid.NewString(), Code: "9999", AccountType: domain.Expense, IsActive: true}
}

func (suite *JournalServiceTestSuite) accounts(accs ...domain.Account) map[string]domain.Account {
	out := make(map[string]domain.Account, len(accs))
	for _, a := range accs {
		out[a.AccountID] = a
	}
	return out
}

func (suite *JournalServiceTestSuite) journal(source string) domain.Journal {
	return domain.Journal{
		JournalDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Memo:        "March rent",
		Source:      source,
		JournalType: domain.JournalTypeGeneral,
		OwnerID:     suite.ownerID,
	}
}


func savedJournal(args mock.Arguments) *domain.Journal {
	j := args.Get(1).(domain.Journal)
	j.JournalID = uuid.NewString()
	return &j
}

func (suite *JournalServiceTestSuite) expectInsert() *[]domain.JournalLine {
	var captured []domain.JournalLine
	var saved domain.Journal
	suite.mockJournalRepo.On("InsertJournal", mock.Anything, mock.AnythingOfType("domain.Journal"), mock.AnythingOfType("[]domain.JournalLine")).
		Run(func(args mock.Arguments) {
			captured = args.Get(2).([]domain.JournalLine)
			saved = *savedJournal(args)
		}).
		Return(&saved, nil).Once()
	return &captured
}

func (suite *JournalServiceTestSuite) TestPostJournal_Success_NumbersLinesInOrder() {
	ctx := context.Background()
	lines := []domain.JournalLine{
		domain.DebitLine(suite.rent.AccountID, "rent", decimal.NewFromInt(1200)),
		domain.CreditLine(suite.cash.AccountID, "paid", decimal.NewFromInt(1200)),
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, []string{suite.rent.AccountID, suite.cash.AccountID}).
		Return(suite.accounts(suite.rent, suite.cash), nil).Once()
	captured := suite.expectInsert()

	posted, err := suite.service.PostJournal(ctx, suite.journal(domain.SourceManual), lines, domain.PolicyStrict)

	suite.Require().NoError(err)
	suite.Require().NotNil(posted)
	suite.True(posted.IsPosted)
	suite.Equal(suite.ownerID, posted.CreatedBy)
	suite.Require().Len(*captured, 2)
	suite.Equal(1, (*captured)[0].LineNumber)
	suite.Equal(suite.rent.AccountID, (*captured)[0].AccountID)
	suite.Equal(2, (*captured)[1].LineNumber)
	suite.Equal(suite.cash.AccountID, (*captured)[1].AccountID)
	suite.Equal([]string{"journal_posted"}, suite.tracker.events)

	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestPostJournal_UnknownTypeFallsBackToGeneral() {
	j := suite.journal(domain.SourceManual)
	j.JournalType = "XYZ"
	lines := []domain.JournalLine{
		domain.DebitLine(suite.rent.AccountID, "", decimal.NewFromInt(5)),
		domain.CreditLine(suite.cash.AccountID, "", decimal.NewFromInt(5)),
	}
	suite.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, mock.Anything).Return(suite.accounts(suite.rent, suite.cash), nil).Once()
	suite.expectInsert()

	posted, err := suite.service.PostJournal(context.Background(), j, lines, domain.PolicyStrict)

	suite.Require().NoError(err)
	suite.Equal(domain.JournalTypeGeneral, posted.JournalType)
}

func (suite *JournalServiceTestSuite) TestPostJournal_StrictRejectsUnbalanced() {
	lines := []domain.JournalLine{
		domain.DebitLine(suite.rent.AccountID, "", decimal.NewFromInt(100)),
		domain.CreditLine(suite.cash.AccountID, "", decimal.NewFromInt(90)),
	}

	_, err := suite.service.PostJournal(context.Background(), suite.journal(domain.SourceManual), lines, domain.PolicyStrict)

	var je *apperrors.JournalError
	suite.Require().ErrorAs(err, &je)
	suite.Equal(apperrors.KindUnbalanced, je.Kind)
	suite.Equal("10.00", je.Difference().StringFixed(2))
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountByCode", mock.Anything, mock.Anything, mock.Anything)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "InsertJournal", mock.Anything, mock.Anything, mock.Anything)
	suite.Empty(suite.tracker.events)
}

func (suite *JournalServiceTestSuite) TestPostJournal_AutoBalanceAppendsSuspenseLine() {
	lines := []domain.JournalLine{
		domain.DebitLine(suite.rent.AccountID, "", decimal.NewFromInt(100)),
		domain.CreditLine(suite.cash.AccountID, "", decimal.NewFromInt(90)),
	}

	suite.mockAccountRepo.On("FindAccountByCode", mock.Anything, suite.ownerID, services.DefaultSuspenseAccountCode).
		Return(&suite.suspense, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, []string{suite.rent.AccountID, suite.cash.AccountID, suite.suspense.AccountID}).
		Return(suite.accounts(suite.rent, suite.cash, suite.suspense), nil).Once()
	captured := suite.expectInsert()

	_, err := suite.service.PostJournal(context.Background(), suite.journal(domain.SourceLegacyImport), lines, domain.PolicyAutoBalance)

	suite.Require().NoError(err)
	suite.Require().Len(*captured, 3)
	last := (*captured)[2]
	suite.Equal(3, last.LineNumber)
	suite.Equal(suite.suspense.AccountID, last.AccountID)
	suite.True(last.Credit.Equal(decimal.NewFromInt(10)))
	suite.True(last.Debit.IsZero())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestPostJournal_AutoBalanceWithoutSuspenseReturnsUnbalanced() {
	lines := []domain.JournalLine{
		domain.DebitLine(suite.rent.AccountID, "", decimal.NewFromInt(50)),
		domain.CreditLine(suite.cash.AccountID, "", decimal.NewFromInt(60)),
	}
	suite.mockAccountRepo.On("FindAccountByCode", mock.Anything, suite.ownerID, services.DefaultSuspenseAccountCode).
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.PostJournal(context.Background(), suite.journal(domain.SourceLegacyImport), lines, domain.PolicyAutoBalance)

	var je *apperrors.JournalError
	suite.Require().ErrorAs(err, &je)
	suite.Equal(apperrors.KindUnbalanced, je.Kind)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "InsertJournal", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestPostJournal_AutoBalanceDoesNotRescueLineErrors() {
	lines := []domain.JournalLine{
		{AccountID: suite.rent.AccountID, Debit: decimal.NewFromInt(5), Credit: decimal.NewFromInt(5)},
	}

	_, err := suite.service.PostJournal(context.Background(), suite.journal(domain.SourceLegacyImport), lines, domain.PolicyAutoBalance)

	var je *apperrors.JournalError
	suite.Require().ErrorAs(err, &je)
	suite.Equal(apperrors.KindLineHasBothDebitAndCredit, je.Kind)
	suite.Equal(1, je.Line)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountByCode", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestPostJournal_AccountChecks() {
	foreign := domain.Account{AccountID: uuid.NewString(), Code: "1000", OwnerID: uuid.NewString(), IsActive: true}
	inactive := suite.cash
	inactive.IsActive = false

	tests := []struct {
		name     string
		accounts map[string]domain.Account
		credit   string
		wantErr  error
	}{
		{"missing account", suite.accounts(suite.rent), suite.cash.AccountID, apperrors.ErrNotFound},
		{"other owner's account", suite.accounts(suite.rent, foreign), foreign.AccountID, apperrors.ErrValidation},
		{"inactive account", suite.accounts(suite.rent, inactive), suite.cash.AccountID, apperrors.ErrValidation},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.mockAccountRepo = new(MockAccountRepository)
			suite.mockJournalRepo = new(MockJournalRepository)
			suite.service = services.NewJournalService(suite.mockJournalRepo, suite.mockAccountRepo)
			lines := []domain.JournalLine{
				domain.DebitLine(suite.rent.AccountID, "", decimal.NewFromInt(1)),
				domain.CreditLine(tt.credit, "", decimal.NewFromInt(1)),
			}
			suite.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, mock.Anything).Return(tt.accounts, nil).Once()

			_, err := suite.service.PostJournal(context.Background(), suite.journal(domain.SourceManual), lines, domain.PolicyStrict)

			suite.ErrorIs(err, tt.wantErr)
			suite.mockJournalRepo.AssertNotCalled(suite.T(), "InsertJournal", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func (suite *JournalServiceTestSuite) TestPostJournal_MalformedAccountID() {
	lines := []domain.JournalLine{
		domain.DebitLine("not-a-uuid", "", decimal.NewFromInt(1)),
		domain.CreditLine(suite.cash.AccountID, "", decimal.NewFromInt(1)),
	}

	_, err := suite.service.PostJournal(context.Background(), suite.journal(domain.SourceManual), lines, domain.PolicyStrict)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountsByIDs", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestPostJournal_InsertFailure() {
	lines := []domain.JournalLine{
		domain.DebitLine(suite.rent.AccountID, "", decimal.NewFromInt(1)),
		domain.CreditLine(suite.cash.AccountID, "", decimal.NewFromInt(1)),
	}
	insertErr := &apperrors.JournalError{Kind: apperrors.KindInsertFailed, Line: 2, Err: errors.New("boom")}
	suite.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, mock.Anything).Return(suite.accounts(suite.rent, suite.cash), nil).Once()
	suite.mockJournalRepo.On("InsertJournal", mock.Anything, mock.Anything, mock.Anything).Return(nil, insertErr).Once()

	_, err := suite.service.PostJournal(context.Background(), suite.journal(domain.SourceManual), lines, domain.PolicyStrict)

	suite.ErrorIs(err, apperrors.ErrPersistence)
	suite.Empty(suite.tracker.events)
}

func (suite *JournalServiceTestSuite) ingestRequest() dto.CreateJournalRequest {
	return dto.CreateJournalRequest{
		JournalDate: time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		Memo:        "legacy batch 12",
		Lines: []dto.JournalLineRequest{
			{AccountID: suite.rent.AccountID, Debit: decimal.RequireFromString("10.50")},
			{AccountID: suite.cash.AccountID, Credit: decimal.RequireFromString("10.00")},
		},
	}
}

func (suite *JournalServiceTestSuite) TestIngestJournal_StrictByDefault() {
	_, err := suite.service.IngestJournal(context.Background(), suite.ownerID, suite.ingestRequest())

	var je *apperrors.JournalError
	suite.Require().ErrorAs(err, &je)
	suite.Equal(apperrors.KindUnbalanced, je.Kind)
}

func (suite *JournalServiceTestSuite) TestIngestJournal_LegacyAutoBalance() {
	svc := services.NewJournalService(suite.mockJournalRepo, suite.mockAccountRepo,
		services.WithLegacyAutoBalance(true),
		services.WithSuspenseAccountCode("9000"))

	suite.mockAccountRepo.On("FindAccountByCode", mock.Anything, suite.ownerID, "9000").Return(&suite.suspense, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, mock.Anything).
		Return(suite.accounts(suite.rent, suite.cash, suite.suspense), nil).Once()
	captured := suite.expectInsert()

	posted, err := svc.IngestJournal(context.Background(), suite.ownerID, suite.ingestRequest())

	suite.Require().NoError(err)
	suite.Equal(domain.SourceLegacyImport, posted.Source)
	suite.Require().Len(*captured, 3)
	suite.True((*captured)[2].Credit.Equal(decimal.RequireFromString("0.50")))
}

func (suite *JournalServiceTestSuite) TestCreateJournal_NeverAutoBalances() {
	svc := services.NewJournalService(suite.mockJournalRepo, suite.mockAccountRepo, services.WithLegacyAutoBalance(true))

	_, err := svc.CreateJournal(context.Background(), suite.ownerID, suite.ingestRequest())

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountByCode", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestGetJournalByID() {
	journalID := uuid.NewString()
	header := &domain.Journal{JournalID: journalID, OwnerID: suite.ownerID}
	lines := []domain.JournalLine{{JournalID: journalID, LineNumber: 1}, {JournalID: journalID, LineNumber: 2}}
	suite.mockJournalRepo.On("FindJournalByID", mock.Anything, suite.ownerID, journalID).Return(header, nil).Once()
	suite.mockJournalRepo.On("FindLinesByJournalID", mock.Anything, journalID).Return(lines, nil).Once()

	got, err := suite.service.GetJournalByID(context.Background(), suite.ownerID, journalID)

	suite.Require().NoError(err)
	suite.Len(got.Lines, 2)
}

func (suite *JournalServiceTestSuite) TestGetJournalByID_NotFound() {
	journalID := uuid.NewString()
	suite.mockJournalRepo.On("FindJournalByID", mock.Anything, suite.ownerID, journalID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockJournalRepo.On("FindLinesByJournalID", mock.Anything, journalID).Return([]domain.JournalLine{}, nil).Maybe()

	_, err := suite.service.GetJournalByID(context.Background(), suite.ownerID, journalID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *JournalServiceTestSuite) TestListJournals_NextToken() {
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	page := []domain.Journal{
		{JournalID: "j3", JournalDate: base.AddDate(0, 0, 2), CreatedAt: base},
		{JournalID: "j2", JournalDate: base.AddDate(0, 0, 1), CreatedAt: base},
		{JournalID: "j1", JournalDate: base, CreatedAt: base},
	}
	suite.mockJournalRepo.On("ListJournals", mock.Anything, suite.ownerID, 3, (*portsrepo.JournalCursor)(nil)).Return(page, nil).Once()

	resp, err := suite.service.ListJournals(context.Background(), suite.ownerID, dto.ListJournalsParams{Limit: 2})

	suite.Require().NoError(err)
	suite.Len(resp.Journals, 2)
	suite.Require().NotNil(resp.NextToken)
	journalDate, createdAt, err := pagination.DecodeToken(*resp.NextToken)
	suite.Require().NoError(err)
	suite.True(journalDate.Equal(base.AddDate(0, 0, 1)))
	suite.True(createdAt.Equal(base))
}

func (suite *JournalServiceTestSuite) TestListJournals_LastPageHasNoToken() {
	suite.mockJournalRepo.On("ListJournals", mock.Anything, suite.ownerID, pagination.DefaultLimit+1, mock.Anything).
		Return([]domain.Journal{{JournalID: "j1"}}, nil).Once()

	resp, err := suite.service.ListJournals(context.Background(), suite.ownerID, dto.ListJournalsParams{})

	suite.Require().NoError(err)
	suite.Len(resp.Journals, 1)
	suite.Nil(resp.NextToken)
}

func (suite *JournalServiceTestSuite) TestListJournals_BadToken() {
	bad := "%%%"
	_, err := suite.service.ListJournals(context.Background(), suite.ownerID, dto.ListJournalsParams{NextToken: &bad})

	suite.ErrorIs(err, apperrors.ErrValidation)
}
