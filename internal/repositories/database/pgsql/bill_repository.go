package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/smb_books/internal/apperrors"
	"github.com/SscSPs/smb_books/internal/core/domain"
	portsrepo "github.com/SscSPs/smb_books/internal/core/ports/repositories"
	"github.com/SscSPs/smb_books/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

type PgxBillRepository struct {
	BaseRepository
}

// NewBillRepository creates a new repository for bills, bill payments, refunds and credits.
func NewBillRepository(pool PgxPool) *PgxBillRepository {
	return &PgxBillRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BillRepositoryFacade = (*PgxBillRepository)(nil)

// SaveBill inserts the bill header and its lines in one transaction.
func (r *PgxBillRepository) SaveBill(ctx context.Context, bill domain.Bill) error {
	return r.WithinTransaction(ctx, func(ctx context.Context) error {
		q := r.conn(ctx)
		var dueDate *time.Time
		if !bill.DueDate.IsZero() {
			dueDate = &bill.DueDate
		}
		_, err := q.Exec(ctx, `
			INSERT INTO bills (bill_id, owner_id, vendor_name, bill_number, bill_date, due_date, ap_account_id, status,
			                   total_amount, amount_paid, amount_refunded, memo, created_at, created_by, last_updated_at, last_updated_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);`,
			bill.BillID, bill.OwnerID, bill.VendorName, bill.BillNumber, bill.BillDate, dueDate, bill.APAccountID, string(bill.Status),
			bill.TotalAmount, bill.AmountPaid, bill.AmountRefunded, bill.Memo,
			bill.CreatedAt, bill.CreatedBy, bill.LastUpdatedAt, bill.LastUpdatedBy,
		)
		if err != nil {
			return mapError(err, "save bill "+bill.BillNumber)
		}

		for _, l := range bill.Lines {
			_, err := q.Exec(ctx, `
				INSERT INTO bill_lines (bill_id, line_number, expense_account_id, description, amount, category, location, vendor, funder)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`,
				bill.BillID, l.LineNumber, l.ExpenseAccountID, l.Description, l.Amount,
				mapping.NullableString(l.Category), mapping.NullableString(l.Location), mapping.NullableString(l.Vendor), mapping.NullableString(l.Funder),
			)
			if err != nil {
				return mapError(err, fmt.Sprintf("save bill line %d", l.LineNumber))
			}
		}
		return nil
	})
}

// FindBillByID loads the bill header and its lines.
func (r *PgxBillRepository) FindBillByID(ctx context.Context, ownerID string, billID string) (*domain.Bill, error) {
	return r.loadBill(ctx, ownerID, billID, false)
}

// FindBillForUpdate loads the bill and holds a row lock on its header.
func (r *PgxBillRepository) FindBillForUpdate(ctx context.Context, ownerID string, billID string) (*domain.Bill, error) {
	return r.loadBill(ctx, ownerID, billID, true)
}

func (r *PgxBillRepository) loadBill(ctx context.Context, ownerID string, billID string, forUpdate bool) (*domain.Bill, error) {
	query := `
		SELECT bill_id, owner_id, vendor_name, bill_number, bill_date, due_date, ap_account_id, status,
		       total_amount, amount_paid, amount_refunded, journal_id, memo, created_at, created_by, last_updated_at, last_updated_by
		FROM bills
		WHERE bill_id = $1 AND owner_id = $2`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var (
		b         domain.Bill
		status    string
		dueDate   *time.Time
		journalID *string
	)
	q := r.conn(ctx)
	err := q.QueryRow(ctx, query, billID, ownerID).Scan(
		&b.BillID, &b.OwnerID, &b.VendorName, &b.BillNumber, &b.BillDate, &dueDate, &b.APAccountID, &status,
		&b.TotalAmount, &b.AmountPaid, &b.AmountRefunded, &journalID, &b.Memo,
		&b.CreatedAt, &b.CreatedBy, &b.LastUpdatedAt, &b.LastUpdatedBy,
	)
	if err != nil {
		return nil, mapError(err, "find bill "+billID)
	}
	b.Status = domain.BillStatus(status)
	b.JournalID = mapping.StringValue(journalID)
	if dueDate != nil {
		b.DueDate = *dueDate
	}

	rows, err := q.Query(ctx, `
		SELECT line_id, line_number, expense_account_id, description, amount, category, location, vendor, funder
		FROM bill_lines WHERE bill_id = $1 ORDER BY line_number;`, billID)
	if err != nil {
		return nil, mapError(err, "query bill lines")
	}
	defer rows.Close()

	for rows.Next() {
		var (
			l                                  domain.BillLine
			category, location, vendor, funder *string
		)
		if err := rows.Scan(&l.LineID, &l.LineNumber, &l.ExpenseAccountID, &l.Description, &l.Amount, &category, &location, &vendor, &funder); err != nil {
			return nil, mapError(err, "scan bill line")
		}
		l.Dimensions = domain.Dimensions{
			Category: mapping.StringValue(category),
			Location: mapping.StringValue(location),
			Vendor:   mapping.StringValue(vendor),
			Funder:   mapping.StringValue(funder),
		}
		b.Lines = append(b.Lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "iterate bill lines")
	}
	return &b, nil
}

// UpdateBillStatus moves the bill to a new lifecycle state.
func (r *PgxBillRepository) UpdateBillStatus(ctx context.Context, billID string, status domain.BillStatus, userID string, now time.Time) error {
	tag, err := r.conn(ctx).Exec(ctx,
		`UPDATE bills SET status = $1, last_updated_at = $2, last_updated_by = $3 WHERE bill_id = $4;`,
		string(status), now, userID, billID)
	if err != nil {
		return mapError(err, "update bill status")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update bill status %s: %w", billID, apperrors.ErrNotFound)
	}
	return nil
}

// UpdateBillAmounts stores new paid and refunded totals along with the derived status.
func (r *PgxBillRepository) UpdateBillAmounts(ctx context.Context, billID string, amountPaid, amountRefunded decimal.Decimal, status domain.BillStatus, userID string, now time.Time) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE bills
		SET amount_paid = $1, amount_refunded = $2, status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE bill_id = $6;`,
		amountPaid, amountRefunded, string(status), now, userID, billID)
	if err != nil {
		return mapError(err, "update bill amounts")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update bill amounts %s: %w", billID, apperrors.ErrNotFound)
	}
	return nil
}

// SetBillJournalID records the approval journal on the bill.
func (r *PgxBillRepository) SetBillJournalID(ctx context.Context, billID string, journalID string) error {
	_, err := r.conn(ctx).Exec(ctx, `UPDATE bills SET journal_id = $1 WHERE bill_id = $2;`, journalID, billID)
	return mapError(err, "link bill journal")
}

// SaveBillPayment inserts a payment row.
func (r *PgxBillRepository) SaveBillPayment(ctx context.Context, p domain.BillPayment) error {
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO bill_payments (payment_id, bill_id, payment_date, payment_account_id, amount, reference_number, journal_id, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`,
		p.PaymentID, p.BillID, p.PaymentDate, p.PaymentAccountID, p.Amount, mapping.NullableString(p.ReferenceNumber), p.JournalID, p.CreatedBy, p.CreatedAt)
	return mapError(err, "save bill payment")
}

// SaveBillRefund inserts a refund row.
func (r *PgxBillRepository) SaveBillRefund(ctx context.Context, rf domain.BillRefund) error {
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO bill_refunds (refund_id, bill_id, refund_date, deposit_account_id, amount, reason, allocate_to_lines, journal_id, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`,
		rf.RefundID, rf.BillID, rf.RefundDate, rf.DepositAccountID, rf.Amount, rf.Reason, rf.AllocateToLines, rf.JournalID, rf.CreatedBy, rf.CreatedAt)
	return mapError(err, "save bill refund")
}

// SaveBillCredit inserts the credit header and its lines in one transaction.
func (r *PgxBillRepository) SaveBillCredit(ctx context.Context, c domain.BillCredit) error {
	return r.WithinTransaction(ctx, func(ctx context.Context) error {
		q := r.conn(ctx)
		_, err := q.Exec(ctx, `
			INSERT INTO bill_credits (credit_id, owner_id, vendor_name, credit_number, credit_date, ap_account_id, total_amount, memo,
			                          created_at, created_by, last_updated_at, last_updated_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);`,
			c.CreditID, c.OwnerID, c.VendorName, c.CreditNumber, c.CreditDate, c.APAccountID, c.TotalAmount, c.Memo,
			c.CreatedAt, c.CreatedBy, c.LastUpdatedAt, c.LastUpdatedBy,
		)
		if err != nil {
			return mapError(err, "save bill credit "+c.CreditNumber)
		}
		for _, l := range c.Lines {
			_, err := q.Exec(ctx, `
				INSERT INTO bill_credit_lines (credit_id, line_number, expense_account_id, description, amount, category, location, vendor, funder)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`,
				c.CreditID, l.LineNumber, l.ExpenseAccountID, l.Description, l.Amount,
				mapping.NullableString(l.Category), mapping.NullableString(l.Location), mapping.NullableString(l.Vendor), mapping.NullableString(l.Funder),
			)
			if err != nil {
				return mapError(err, fmt.Sprintf("save bill credit line %d", l.LineNumber))
			}
		}
		return nil
	})
}

// FindBillCreditByID loads a vendor credit and its lines.
func (r *PgxBillRepository) FindBillCreditByID(ctx context.Context, ownerID string, creditID string) (*domain.BillCredit, error) {
	var (
		c         domain.BillCredit
		journalID *string
	)
	q := r.conn(ctx)
	err := q.QueryRow(ctx, `
		SELECT credit_id, owner_id, vendor_name, credit_number, credit_date, ap_account_id, total_amount, journal_id, memo,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM bill_credits WHERE credit_id = $1 AND owner_id = $2;`, creditID, ownerID).Scan(
		&c.CreditID, &c.OwnerID, &c.VendorName, &c.CreditNumber, &c.CreditDate, &c.APAccountID, &c.TotalAmount, &journalID, &c.Memo,
		&c.CreatedAt, &c.CreatedBy, &c.LastUpdatedAt, &c.LastUpdatedBy,
	)
	if err != nil {
		return nil, mapError(err, "find bill credit "+creditID)
	}
	c.JournalID = mapping.StringValue(journalID)

	rows, err := q.Query(ctx, `
		SELECT line_id, line_number, expense_account_id, description, amount, category, location, vendor, funder
		FROM bill_credit_lines WHERE credit_id = $1 ORDER BY line_number;`, creditID)
	if err != nil {
		return nil, mapError(err, "query bill credit lines")
	}
	defer rows.Close()

	for rows.Next() {
		var (
			l                                  domain.BillCreditLine
			category, location, vendor, funder *string
		)
		if err := rows.Scan(&l.LineID, &l.LineNumber, &l.ExpenseAccountID, &l.Description, &l.Amount, &category, &location, &vendor, &funder); err != nil {
			return nil, mapError(err, "scan bill credit line")
		}
		l.Dimensions = domain.Dimensions{
			Category: mapping.StringValue(category),
			Location: mapping.StringValue(location),
			Vendor:   mapping.StringValue(vendor),
			Funder:   mapping.StringValue(funder),
		}
		c.Lines = append(c.Lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "iterate bill credit lines")
	}
	return &c, nil
}

// SetBillCreditJournalID records the posting journal on the credit.
func (r *PgxBillRepository) SetBillCreditJournalID(ctx context.Context, creditID string, journalID string) error {
	_, err := r.conn(ctx).Exec(ctx, `UPDATE bill_credits SET journal_id = $1 WHERE credit_id = $2;`, journalID, creditID)
	return mapError(err, "link bill credit journal")
}
