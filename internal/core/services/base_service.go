package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/smb_books/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct{}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// linkJournal records the soft back-reference from a document to the journal
// it produced. The journal is already committed, so a failure is only logged.
func (s *BaseService) linkJournal(ctx context.Context, docType, docID, journalID string, link func(ctx context.Context, docID, journalID string) error) bool {
	if err := link(ctx, docID, journalID); err != nil {
		s.LogError(ctx, err, "Failed to link journal to source document",
			slog.String("document_type", docType),
			slog.String("document_id", docID),
			slog.String("journal_id", journalID))
		return false
	}
	return true
}
