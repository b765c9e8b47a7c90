package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/smb_books/internal/apperrors"
	"github.com/SscSPs/smb_books/internal/core/domain"
	portsrepo "github.com/SscSPs/smb_books/internal/core/ports/repositories"
	"github.com/SscSPs/smb_books/internal/models"
	"github.com/SscSPs/smb_books/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const (
	insertJournalSQL = `
		INSERT INTO journals (journal_date, memo, source, journal_type, reference_number, is_posted, owner_id, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING journal_id, created_at;
	`
	insertJournalLineSQL = `
		INSERT INTO journal_lines (journal_id, line_number, account_id, description, debit, credit, category, location, vendor, funder)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	selectJournalColumns = `journal_id, journal_date, memo, source, journal_type, reference_number, is_posted, owner_id, created_by, created_at`
)

type PgxJournalRepository struct {
	BaseRepository
}

// NewJournalRepository creates a new repository for journals and their lines.
func NewJournalRepository(pool PgxPool) *PgxJournalRepository {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

// InsertJournal writes the header, then each line in the order given, inside
// one transaction. Any failure rolls the whole journal back and is reported as
// an InsertFailed journal error.
func (r *PgxJournalRepository) InsertJournal(ctx context.Context, journal domain.Journal, lines []domain.JournalLine) (*domain.Journal, error) {
	m := mapping.ToModelJournal(journal)

	err := r.WithinTransaction(ctx, func(ctx context.Context) error {
		q := r.conn(ctx)

		err := q.QueryRow(ctx, insertJournalSQL,
			m.JournalDate,
			m.Memo,
			m.Source,
			m.JournalType,
			m.ReferenceNumber,
			m.IsPosted,
			m.OwnerID,
			m.CreatedBy,
		).Scan(&m.JournalID, &m.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert journal header: %w", err)
		}

		for _, line := range lines {
			ml := mapping.ToModelJournalLine(line)
			_, err := q.Exec(ctx, insertJournalLineSQL,
				m.JournalID,
				ml.LineNumber,
				ml.AccountID,
				ml.Description,
				ml.Debit,
				ml.Credit,
				ml.Category,
				ml.Location,
				ml.Vendor,
				ml.Funder,
			)
			if err != nil {
				return fmt.Errorf("insert journal line %d: %w", ml.LineNumber, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, &apperrors.JournalError{Kind: apperrors.KindInsertFailed, Err: err}
	}

	saved := mapping.ToDomainJournal(m)
	saved.Lines = make([]domain.JournalLine, len(lines))
	for i, l := range lines {
		l.JournalID = saved.JournalID
		saved.Lines[i] = l
	}
	return &saved, nil
}

// FindJournalByID retrieves a journal header visible to the owner.
func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, ownerID string, journalID string) (*domain.Journal, error) {
	query := `SELECT ` + selectJournalColumns + ` FROM journals WHERE journal_id = $1 AND owner_id = $2;`

	m, err := scanJournal(r.conn(ctx).QueryRow(ctx, query, journalID, ownerID))
	if err != nil {
		return nil, mapError(err, "find journal "+journalID)
	}
	j := mapping.ToDomainJournal(m)
	return &j, nil
}

// FindLinesByJournalID returns the journal's lines ordered by line number.
func (r *PgxJournalRepository) FindLinesByJournalID(ctx context.Context, journalID string) ([]domain.JournalLine, error) {
	query := `
		SELECT line_id, journal_id, line_number, account_id, description, debit, credit, category, location, vendor, funder
		FROM journal_lines
		WHERE journal_id = $1
		ORDER BY line_number;
	`
	rows, err := r.conn(ctx).Query(ctx, query, journalID)
	if err != nil {
		return nil, mapError(err, "query journal lines")
	}
	defer rows.Close()

	var lines []domain.JournalLine
	for rows.Next() {
		var m models.JournalLine
		if err := rows.Scan(
			&m.LineID,
			&m.JournalID,
			&m.LineNumber,
			&m.AccountID,
			&m.Description,
			&m.Debit,
			&m.Credit,
			&m.Category,
			&m.Location,
			&m.Vendor,
			&m.Funder,
		); err != nil {
			return nil, mapError(err, "scan journal line")
		}
		lines = append(lines, mapping.ToDomainJournalLine(m))
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "iterate journal lines")
	}
	return lines, nil
}

// ListJournals returns the owner's journals newest first using keyset pagination.
func (r *PgxJournalRepository) ListJournals(ctx context.Context, ownerID string, limit int, after *portsrepo.JournalCursor) ([]domain.Journal, error) {
	args := []any{ownerID, limit}
	query := `SELECT ` + selectJournalColumns + ` FROM journals WHERE owner_id = $1`
	if after != nil {
		query += ` AND (journal_date, created_at) < ($3, $4)`
		args = append(args, after.JournalDate, after.CreatedAt)
	}
	query += ` ORDER BY journal_date DESC, created_at DESC LIMIT $2;`

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "list journals")
	}
	defer rows.Close()

	journals := []domain.Journal{}
	for rows.Next() {
		m, err := scanJournal(rows)
		if err != nil {
			return nil, mapError(err, "scan journal")
		}
		journals = append(journals, mapping.ToDomainJournal(m))
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "iterate journals")
	}
	return journals, nil
}

func scanJournal(row pgx.Row) (models.Journal, error) {
	var m models.Journal
	err := row.Scan(
		&m.JournalID,
		&m.JournalDate,
		&m.Memo,
		&m.Source,
		&m.JournalType,
		&m.ReferenceNumber,
		&m.IsPosted,
		&m.OwnerID,
		&m.CreatedBy,
		&m.CreatedAt,
	)
	return m, err
}
