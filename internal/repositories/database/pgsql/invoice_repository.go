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

type PgxInvoiceRepository struct {
	BaseRepository
}

// NewInvoiceRepository creates a new repository for invoices and invoice payments.
func NewInvoiceRepository(pool PgxPool) *PgxInvoiceRepository {
	return &PgxInvoiceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

// SaveInvoice inserts the invoice header and its lines in one transaction.
func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, inv domain.Invoice) error {
	return r.WithinTransaction(ctx, func(ctx context.Context) error {
		q := r.conn(ctx)
		_, err := q.Exec(ctx, `
			INSERT INTO invoices (invoice_id, owner_id, customer_name, invoice_number, invoice_date, due_date, payment_terms, ar_account_id,
			                      status, total_amount, amount_paid, memo, created_at, created_by, last_updated_at, last_updated_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);`,
			inv.InvoiceID, inv.OwnerID, inv.CustomerName, inv.InvoiceNumber, inv.InvoiceDate, inv.DueDate, inv.PaymentTerms, inv.ARAccountID,
			string(inv.Status), inv.TotalAmount, inv.AmountPaid, inv.Memo,
			inv.CreatedAt, inv.CreatedBy, inv.LastUpdatedAt, inv.LastUpdatedBy,
		)
		if err != nil {
			return mapError(err, "save invoice "+inv.InvoiceNumber)
		}

		for _, l := range inv.Lines {
			_, err := q.Exec(ctx, `
				INSERT INTO invoice_lines (invoice_id, line_number, revenue_account_id, description, quantity, unit_price, amount, category, location, funder)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`,
				inv.InvoiceID, l.LineNumber, l.RevenueAccountID, l.Description, l.Quantity, l.UnitPrice, l.Amount,
				mapping.NullableString(l.Category), mapping.NullableString(l.Location), mapping.NullableString(l.Funder),
			)
			if err != nil {
				return mapError(err, fmt.Sprintf("save invoice line %d", l.LineNumber))
			}
		}
		return nil
	})
}

// FindInvoiceByID loads the invoice with its lines and payments.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, ownerID string, invoiceID string) (*domain.Invoice, error) {
	inv, err := r.loadHeader(ctx, ownerID, invoiceID, false)
	if err != nil {
		return nil, err
	}
	if inv.Lines, err = r.findLines(ctx, invoiceID); err != nil {
		return nil, err
	}
	if inv.Payments, err = r.findPayments(ctx, invoiceID); err != nil {
		return nil, err
	}
	return inv, nil
}

// FindInvoiceForUpdate loads the invoice and its lines, holding a row lock on the header.
func (r *PgxInvoiceRepository) FindInvoiceForUpdate(ctx context.Context, ownerID string, invoiceID string) (*domain.Invoice, error) {
	inv, err := r.loadHeader(ctx, ownerID, invoiceID, true)
	if err != nil {
		return nil, err
	}
	if inv.Lines, err = r.findLines(ctx, invoiceID); err != nil {
		return nil, err
	}
	return inv, nil
}

func (r *PgxInvoiceRepository) loadHeader(ctx context.Context, ownerID string, invoiceID string, forUpdate bool) (*domain.Invoice, error) {
	query := `
		SELECT invoice_id, owner_id, customer_name, invoice_number, invoice_date, due_date, payment_terms, ar_account_id,
		       status, total_amount, amount_paid, journal_id, memo, created_at, created_by, last_updated_at, last_updated_by
		FROM invoices
		WHERE invoice_id = $1 AND owner_id = $2`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var (
		inv       domain.Invoice
		status    string
		journalID *string
	)
	err := r.conn(ctx).QueryRow(ctx, query, invoiceID, ownerID).Scan(
		&inv.InvoiceID, &inv.OwnerID, &inv.CustomerName, &inv.InvoiceNumber, &inv.InvoiceDate, &inv.DueDate, &inv.PaymentTerms, &inv.ARAccountID,
		&status, &inv.TotalAmount, &inv.AmountPaid, &journalID, &inv.Memo,
		&inv.CreatedAt, &inv.CreatedBy, &inv.LastUpdatedAt, &inv.LastUpdatedBy,
	)
	if err != nil {
		return nil, mapError(err, "find invoice "+invoiceID)
	}
	inv.Status = domain.InvoiceStatus(status)
	inv.JournalID = mapping.StringValue(journalID)
	return &inv, nil
}

func (r *PgxInvoiceRepository) findLines(ctx context.Context, invoiceID string) ([]domain.InvoiceLine, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT line_id, line_number, revenue_account_id, description, quantity, unit_price, amount, category, location, funder
		FROM invoice_lines WHERE invoice_id = $1 ORDER BY line_number;`, invoiceID)
	if err != nil {
		return nil, mapError(err, "query invoice lines")
	}
	defer rows.Close()

	var lines []domain.InvoiceLine
	for rows.Next() {
		var (
			l                          domain.InvoiceLine
			category, location, funder *string
		)
		if err := rows.Scan(&l.LineID, &l.LineNumber, &l.RevenueAccountID, &l.Description, &l.Quantity, &l.UnitPrice, &l.Amount, &category, &location, &funder); err != nil {
			return nil, mapError(err, "scan invoice line")
		}
		l.Dimensions = domain.Dimensions{
			Category: mapping.StringValue(category),
			Location: mapping.StringValue(location),
			Funder:   mapping.StringValue(funder),
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "iterate invoice lines")
	}
	return lines, nil
}

func (r *PgxInvoiceRepository) findPayments(ctx context.Context, invoiceID string) ([]domain.InvoicePayment, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT payment_id, invoice_id, payment_date, deposit_account_id, amount, reference_number, journal_id, created_by, created_at
		FROM invoice_payments WHERE invoice_id = $1 ORDER BY payment_date, created_at;`, invoiceID)
	if err != nil {
		return nil, mapError(err, "query invoice payments")
	}
	defer rows.Close()

	var payments []domain.InvoicePayment
	for rows.Next() {
		var (
			p   domain.InvoicePayment
			ref *string
		)
		if err := rows.Scan(&p.PaymentID, &p.InvoiceID, &p.PaymentDate, &p.DepositAccountID, &p.Amount, &ref, &p.JournalID, &p.CreatedBy, &p.CreatedAt); err != nil {
			return nil, mapError(err, "scan invoice payment")
		}
		p.ReferenceNumber = mapping.StringValue(ref)
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "iterate invoice payments")
	}
	return payments, nil
}

// SetInvoiceJournalID records the creation journal on the invoice.
func (r *PgxInvoiceRepository) SetInvoiceJournalID(ctx context.Context, invoiceID string, journalID string) error {
	_, err := r.conn(ctx).Exec(ctx, `UPDATE invoices SET journal_id = $1 WHERE invoice_id = $2;`, journalID, invoiceID)
	return mapError(err, "link invoice journal")
}

// SaveInvoicePayment inserts a payment row.
func (r *PgxInvoiceRepository) SaveInvoicePayment(ctx context.Context, p domain.InvoicePayment) error {
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO invoice_payments (payment_id, invoice_id, payment_date, deposit_account_id, amount, reference_number, journal_id, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`,
		p.PaymentID, p.InvoiceID, p.PaymentDate, p.DepositAccountID, p.Amount, mapping.NullableString(p.ReferenceNumber), p.JournalID, p.CreatedBy, p.CreatedAt)
	return mapError(err, "save invoice payment")
}

// UpdateInvoicePaymentState stores the paid total and derived status.
func (r *PgxInvoiceRepository) UpdateInvoicePaymentState(ctx context.Context, invoiceID string, amountPaid decimal.Decimal, status domain.InvoiceStatus, userID string, now time.Time) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE invoices SET amount_paid = $1, status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE invoice_id = $5;`,
		amountPaid, string(status), now, userID, invoiceID)
	if err != nil {
		return mapError(err, "update invoice payment state")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update invoice %s: %w", invoiceID, apperrors.ErrNotFound)
	}
	return nil
}
