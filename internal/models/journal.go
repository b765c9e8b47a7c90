package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Journal represents a row of the journals table.
type Journal struct {
	JournalID       string    `db:"journal_id"`
	JournalDate     time.Time `db:"journal_date"`
	Memo            string    `db:"memo"`
	Source          string    `db:"source"`
	JournalType     string    `db:"journal_type"`
	ReferenceNumber *string   `db:"reference_number"`
	IsPosted        bool      `db:"is_posted"`
	OwnerID         string    `db:"owner_id"`
	CreatedBy       string    `db:"created_by"`
	CreatedAt       time.Time `db:"created_at"`
}

// JournalLine represents a row of the journal_lines table.
type JournalLine struct {
	LineID      string          `db:"line_id"`
	JournalID   string          `db:"journal_id"`
	LineNumber  int             `db:"line_number"`
	AccountID   string          `db:"account_id"`
	Description string          `db:"description"`
	Debit       decimal.Decimal `db:"debit"`
	Credit      decimal.Decimal `db:"credit"`
	Category    *string         `db:"category"`
	Location    *string         `db:"location"`
	Vendor      *string         `db:"vendor"`
	Funder      *string         `db:"funder"`
}
