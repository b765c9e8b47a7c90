package services

import (
	"context"

	"github.com/SscSPs/smb_books/internal/core/domain"
	"github.com/SscSPs/smb_books/internal/dto"
	"github.com/SscSPs/smb_books/internal/utils/accounting"
)

// JournalPosterSvc is the entry point every financial document posts through.
type JournalPosterSvc interface {
	// ValidateJournal checks lines without touching storage.
	ValidateJournal(ctx context.Context, lines []domain.JournalLine) (accounting.Totals, error)

	// PostJournal validates under policy and persists the journal atomically.
	// It joins the caller's transaction when ctx carries one.
	PostJournal(ctx context.Context, journal domain.Journal, lines []domain.JournalLine, policy domain.BalancePolicy) (*domain.Journal, error)
}

// JournalReaderSvc defines read operations for journal data
type JournalReaderSvc interface {
	GetJournalByID(ctx context.Context, ownerID string, journalID string) (*domain.Journal, error)
	ListJournals(ctx context.Context, ownerID string, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error)
}

// JournalWriterSvc defines journal entry endpoints
type JournalWriterSvc interface {
	// CreateJournal posts a manual journal under the strict policy.
	CreateJournal(ctx context.Context, ownerID string, req dto.CreateJournalRequest) (*domain.Journal, error)

	// IngestJournal posts a journal from the legacy import feed.
	IngestJournal(ctx context.Context, ownerID string, req dto.CreateJournalRequest) (*domain.Journal, error)
}

// JournalSvcFacade combines all journal-related service interfaces
type JournalSvcFacade interface {
	JournalPosterSvc
	JournalReaderSvc
	JournalWriterSvc
}
