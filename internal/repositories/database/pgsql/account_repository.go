package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/smb_books/internal/apperrors"
	"github.com/SscSPs/smb_books/internal/core/domain"
	portsrepo "github.com/SscSPs/smb_books/internal/core/ports/repositories"
	"github.com/SscSPs/smb_books/internal/models"
	"github.com/SscSPs/smb_books/internal/utils/accounting"
	"github.com/SscSPs/smb_books/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const selectAccountColumns = `account_id, code, name, account_type, parent_account_id, owner_id, description, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	BaseRepository
}

// NewAccountRepository creates a new repository for account data.
func NewAccountRepository(pool PgxPool) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (account_id, code, name, account_type, parent_account_id, owner_id, description, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.conn(ctx).Exec(ctx, query,
		m.AccountID,
		m.Code,
		m.Name,
		m.AccountType,
		m.ParentAccountID,
		m.OwnerID,
		m.Description,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	return mapError(err, fmt.Sprintf("save account %s", m.Code))
}

// UpdateAccount updates the mutable fields of an account.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	query := `
		UPDATE accounts
		SET name = $1, description = $2, is_active = $3, last_updated_at = $4, last_updated_by = $5
		WHERE account_id = $6;
	`
	tag, err := r.conn(ctx).Exec(ctx, query,
		account.Name,
		account.Description,
		account.IsActive,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
		account.AccountID,
	)
	if err != nil {
		return mapError(err, "update account "+account.AccountID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update account %s: %w", account.AccountID, apperrors.ErrNotFound)
	}
	return nil
}

// UpsertSharedAccounts inserts ownerless accounts, refreshing name, type and
// description of codes that already exist.
func (r *PgxAccountRepository) UpsertSharedAccounts(ctx context.Context, accounts []domain.Account) (int, error) {
	query := `
		INSERT INTO accounts (account_id, code, name, account_type, parent_account_id, owner_id, description, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, NULL, NULL, $5, TRUE, $6, $7, $6, $7)
		ON CONFLICT (code) WHERE owner_id IS NULL
		DO UPDATE SET name = EXCLUDED.name, account_type = EXCLUDED.account_type, description = EXCLUDED.description,
		              last_updated_at = EXCLUDED.last_updated_at, last_updated_by = EXCLUDED.last_updated_by;
	`
	count := 0
	err := r.WithinTransaction(ctx, func(ctx context.Context) error {
		q := r.conn(ctx)
		for _, a := range accounts {
			if _, err := q.Exec(ctx, query, a.AccountID, a.Code, a.Name, string(a.AccountType), a.Description, a.CreatedAt, a.CreatedBy); err != nil {
				return mapError(err, "upsert shared account "+a.Code)
			}
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + selectAccountColumns + ` FROM accounts WHERE account_id = $1;`

	m, err := scanAccount(r.conn(ctx).QueryRow(ctx, query, accountID))
	if err != nil {
		return nil, mapError(err, "find account "+accountID)
	}
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

// FindAccountsByIDs retrieves multiple accounts keyed by ID.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	result := make(map[string]domain.Account, len(accountIDs))
	if len(accountIDs) == 0 {
		return result, nil
	}

	query := `SELECT ` + selectAccountColumns + ` FROM accounts WHERE account_id = ANY($1);`
	rows, err := r.conn(ctx).Query(ctx, query, accountIDs)
	if err != nil {
		return nil, mapError(err, "find accounts")
	}
	defer rows.Close()

	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, mapError(err, "scan account")
		}
		result[m.AccountID] = mapping.ToDomainAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "iterate accounts")
	}
	return result, nil
}

// FindAccountByCode prefers the owner's own account over a shared one with the same code.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, ownerID string, code string) (*domain.Account, error) {
	query := `
		SELECT ` + selectAccountColumns + `
		FROM accounts
		WHERE code = $1 AND (owner_id = $2 OR owner_id IS NULL)
		ORDER BY owner_id NULLS LAST
		LIMIT 1;
	`
	m, err := scanAccount(r.conn(ctx).QueryRow(ctx, query, code, ownerID))
	if err != nil {
		return nil, mapError(err, "find account by code "+code)
	}
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

// ListAccounts returns the owner's and shared accounts ordered by code.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, ownerID string, limit int, offset int) ([]domain.Account, error) {
	query := `
		SELECT ` + selectAccountColumns + `
		FROM accounts
		WHERE owner_id = $1 OR owner_id IS NULL
		ORDER BY code, owner_id NULLS LAST
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.conn(ctx).Query(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, mapError(err, "list accounts")
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, mapError(err, "scan account")
		}
		accounts = append(accounts, mapping.ToDomainAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "iterate accounts")
	}
	return accounts, nil
}

// SumAccountLines totals the posted debit and credit activity of one account.
func (r *PgxAccountRepository) SumAccountLines(ctx context.Context, accountID string) (accounting.Totals, error) {
	query := `
		SELECT COALESCE(SUM(l.debit), 0), COALESCE(SUM(l.credit), 0)
		FROM journal_lines l
		JOIN journals j ON j.journal_id = l.journal_id
		WHERE l.account_id = $1 AND j.is_posted;
	`
	var totals accounting.Totals
	if err := r.conn(ctx).QueryRow(ctx, query, accountID).Scan(&totals.Debit, &totals.Credit); err != nil {
		return accounting.Totals{}, mapError(err, "sum account lines")
	}
	return totals, nil
}

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.Code,
		&m.Name,
		&m.AccountType,
		&m.ParentAccountID,
		&m.OwnerID,
		&m.Description,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}
