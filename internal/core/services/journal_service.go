package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/smb_books/internal/apperrors"
	"github.com/SscSPs/smb_books/internal/core/domain"
	portsrepo "github.com/SscSPs/smb_books/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/smb_books/internal/core/ports/services"
	"github.com/SscSPs/smb_books/internal/dto"
	"github.com/SscSPs/smb_books/internal/utils/accounting"
	"github.com/SscSPs/smb_books/internal/utils/pagination"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// DefaultSuspenseAccountCode is where auto-balanced differences are posted.
const DefaultSuspenseAccountCode = "9999"

// EventTracker receives product analytics events.
type EventTracker interface {
	Enqueue(distinctID string, event string, properties map[string]any)
}

// journalService validates and posts journals for every document workflow.
type journalService struct {
	BaseService
	journalRepo       portsrepo.JournalRepositoryFacade
	accountRepo       portsrepo.AccountReader
	suspenseCode      string
	legacyAutoBalance bool
	events            EventTracker
}

// JournalServiceOption configures the journal service
type JournalServiceOption func(*journalService)

// WithSuspenseAccountCode overrides the suspense account code used by auto-balance.
func WithSuspenseAccountCode(code string) JournalServiceOption {
	return func(s *journalService) {
		if code != "" {
			s.suspenseCode = code
		}
	}
}

// WithLegacyAutoBalance lets ingested journals be plugged to the suspense account.
func WithLegacyAutoBalance(enabled bool) JournalServiceOption {
	return func(s *journalService) {
		s.legacyAutoBalance = enabled
	}
}

// WithEventTracker reports posted journals to analytics.
func WithEventTracker(t EventTracker) JournalServiceOption {
	return func(s *journalService) {
		s.events = t
	}
}

// NewJournalService creates a new JournalService.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, accountRepo portsrepo.AccountReader, options ...JournalServiceOption) portssvc.JournalSvcFacade {
	svc := &journalService{
		journalRepo:  journalRepo,
		accountRepo:  accountRepo,
		suspenseCode: DefaultSuspenseAccountCode,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// ValidateJournal runs the line and balance rules only.
func (s *journalService) ValidateJournal(ctx context.Context, lines []domain.JournalLine) (accounting.Totals, error) {
	totals, err := accounting.ValidateLines(lines)
	if err != nil {
		s.LogDebug(ctx, "Journal failed validation", slog.String("error", err.Error()))
	}
	return totals, err
}

// PostJournal validates lines under policy, numbers them in caller order,
// checks every account is usable by the owner and stores the journal.
func (s *journalService) PostJournal(ctx context.Context, journal domain.Journal, lines []domain.JournalLine, policy domain.BalancePolicy) (*domain.Journal, error) {
	logger := s.GetLogger(ctx)

	if _, err := accounting.ValidateLines(lines); err != nil {
		lines, err = s.autoBalance(ctx, journal.OwnerID, lines, policy, err)
		if err != nil {
			logger.Warn("Journal rejected",
				slog.String("source", journal.Source),
				slog.String("error", err.Error()))
			return nil, err
		}
	}

	lines = accounting.NumberLines(lines)
	if err := s.checkAccounts(ctx, journal.OwnerID, lines); err != nil {
		logger.Warn("Journal references unusable account", slog.String("error", err.Error()))
		return nil, err
	}

	journal.JournalType = domain.ParseJournalType(string(journal.JournalType))
	journal.IsPosted = true
	if journal.CreatedBy == "" {
		journal.CreatedBy = journal.OwnerID
	}

	saved, err := s.journalRepo.InsertJournal(ctx, journal, lines)
	if err != nil {
		s.LogError(ctx, err, "Failed to insert journal", slog.String("source", journal.Source))
		return nil, err
	}

	logger.Info("Journal posted",
		slog.String("journal_id", saved.JournalID),
		slog.String("source", saved.Source),
		slog.String("journal_type", string(saved.JournalType)),
		slog.Int("line_count", len(lines)))

	if s.events != nil {
		s.events.Enqueue(saved.OwnerID, "journal_posted", map[string]any{
			"journal_id":   saved.JournalID,
			"source":       saved.Source,
			"journal_type": string(saved.JournalType),
			"line_count":   len(lines),
		})
	}
	return saved, nil
}

// autoBalance recovers an unbalanced journal under PolicyAutoBalance by adding
// one suspense line. Any other error, or policy, returns validationErr unchanged.
func (s *journalService) autoBalance(ctx context.Context, ownerID string, lines []domain.JournalLine, policy domain.BalancePolicy, validationErr error) ([]domain.JournalLine, error) {
	var je *apperrors.JournalError
	if policy != domain.PolicyAutoBalance || !errors.As(validationErr, &je) || je.Kind != apperrors.KindUnbalanced {
		return nil, validationErr
	}

	suspense, err := s.accountRepo.FindAccountByCode(ctx, ownerID, s.suspenseCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.GetLogger(ctx).Warn("Suspense account not found, cannot auto-balance",
				slog.String("account_code", s.suspenseCode))
			return nil, validationErr
		}
		return nil, err
	}

	unbalanced := accounting.Totals{Debit: je.TotalDebit, Credit: je.TotalCredit}
	balanced := accounting.AppendBalancingLine(lines, unbalanced, suspense.AccountID)
	totals, err := accounting.ValidateLines(balanced)
	if err != nil {
		return nil, &apperrors.JournalError{
			Kind:        apperrors.KindAutoBalanceFailed,
			TotalDebit:  totals.Debit,
			TotalCredit: totals.Credit,
			Err:         err,
		}
	}

	s.GetLogger(ctx).Info("Journal auto-balanced to suspense account",
		slog.String("account_code", s.suspenseCode),
		slog.String("difference", unbalanced.Difference().StringFixed(2)))
	return balanced, nil
}

func (s *journalService) checkAccounts(ctx context.Context, ownerID string, lines []domain.JournalLine) error {
	ids := make([]string, 0, len(lines))
	seen := make(map[string]bool, len(lines))
	for _, l := range lines {
		if seen[l.AccountID] {
			continue
		}
		if _, err := uuid.Parse(l.AccountID); err != nil {
			return fmt.Errorf("line %d: account id %q is not a valid id: %w", l.LineNumber, l.AccountID, apperrors.ErrValidation)
		}
		seen[l.AccountID] = true
		ids = append(ids, l.AccountID)
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, ids)
	if err != nil {
		return err
	}

	for _, l := range lines {
		acc, ok := accounts[l.AccountID]
		switch {
		case !ok:
			return fmt.Errorf("line %d: account %s: %w", l.LineNumber, l.AccountID, apperrors.ErrNotFound)
		case !acc.VisibleTo(ownerID):
			return fmt.Errorf("line %d: account %s does not belong to this user: %w", l.LineNumber, l.AccountID, apperrors.ErrValidation)
		case !acc.IsActive:
			return fmt.Errorf("line %d: account %s is inactive: %w", l.LineNumber, acc.Code, apperrors.ErrValidation)
		}
	}
	return nil
}

// CreateJournal posts a manual journal entered by the owner.
func (s *journalService) CreateJournal(ctx context.Context, ownerID string, req dto.CreateJournalRequest) (*domain.Journal, error) {
	journal := newJournalFromRequest(ownerID, req, domain.SourceManual)
	return s.PostJournal(ctx, journal, dto.ToDomainLines(req.Lines), domain.PolicyStrict)
}

// IngestJournal posts a journal from the legacy import feed. Unbalanced
// journals are only plugged to suspense when legacy auto-balance is enabled.
func (s *journalService) IngestJournal(ctx context.Context, ownerID string, req dto.CreateJournalRequest) (*domain.Journal, error) {
	policy := domain.PolicyStrict
	if s.legacyAutoBalance {
		policy = domain.PolicyAutoBalance
	}
	journal := newJournalFromRequest(ownerID, req, domain.SourceLegacyImport)
	return s.PostJournal(ctx, journal, dto.ToDomainLines(req.Lines), policy)
}

func newJournalFromRequest(ownerID string, req dto.CreateJournalRequest, source string) domain.Journal {
	return domain.Journal{
		JournalDate:     req.JournalDate,
		Memo:            req.Memo,
		Source:          source,
		JournalType:     domain.ParseJournalType(req.JournalType),
		ReferenceNumber: req.ReferenceNumber,
		OwnerID:         ownerID,
		CreatedBy:       ownerID,
	}
}

// GetJournalByID loads the header and lines concurrently. It must not be
// called with a transaction in ctx since both queries would share one connection.
func (s *journalService) GetJournalByID(ctx context.Context, ownerID string, journalID string) (*domain.Journal, error) {
	var (
		journal *domain.Journal
		lines   []domain.JournalLine
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		journal, err = s.journalRepo.FindJournalByID(gctx, ownerID, journalID)
		return err
	})
	g.Go(func() error {
		var err error
		lines, err = s.journalRepo.FindLinesByJournalID(gctx, journalID)
		return err
	})
	if err := g.Wait(); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load journal", slog.String("journal_id", journalID))
		}
		return nil, err
	}

	journal.Lines = lines
	return journal, nil
}

// ListJournals returns a page of the owner's journals, newest first.
func (s *journalService) ListJournals(ctx context.Context, ownerID string, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error) {
	limit := pagination.ClampLimit(params.Limit)

	var cursor *portsrepo.JournalCursor
	if params.NextToken != nil && *params.NextToken != "" {
		journalDate, createdAt, err := pagination.DecodeToken(*params.NextToken)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		cursor = &portsrepo.JournalCursor{JournalDate: journalDate, CreatedAt: createdAt}
	}

	// one extra row tells us whether another page exists
	journals, err := s.journalRepo.ListJournals(ctx, ownerID, limit+1, cursor)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journals")
		return nil, err
	}

	resp := &dto.ListJournalsResponse{Journals: make([]dto.JournalResponse, 0, min(len(journals), limit))}
	if len(journals) > limit {
		journals = journals[:limit]
		last := journals[limit-1]
		token := pagination.EncodeToken(last.JournalDate, last.CreatedAt)
		resp.NextToken = &token
	}
	for i := range journals {
		resp.Journals = append(resp.Journals, dto.ToJournalResponse(&journals[i]))
	}
	return resp, nil
}
