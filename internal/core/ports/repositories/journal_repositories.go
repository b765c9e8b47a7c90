package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/smb_books/internal/core/domain"
)

// JournalWriter persists journals.
type JournalWriter interface {
	// InsertJournal writes the header and all lines atomically and returns the
	// stored header with its generated ID. Line numbers are taken from the lines as given.
	InsertJournal(ctx context.Context, journal domain.Journal, lines []domain.JournalLine) (*domain.Journal, error)
}

// JournalReader defines read operations for journal data
type JournalReader interface {
	FindJournalByID(ctx context.Context, ownerID string, journalID string) (*domain.Journal, error)
	FindLinesByJournalID(ctx context.Context, journalID string) ([]domain.JournalLine, error)

	// ListJournals returns journals newest first, continuing after the cursor when one is given.
	ListJournals(ctx context.Context, ownerID string, limit int, after *JournalCursor) ([]domain.Journal, error)
}

// JournalCursor marks the last journal of a previous page.
type JournalCursor struct {
	JournalDate time.Time
	CreatedAt   time.Time
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalWriter
	JournalReader
}
