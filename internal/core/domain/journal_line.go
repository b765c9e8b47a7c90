package domain

import "github.com/shopspring/decimal"

// JournalLine is one account movement within a journal.
// Exactly one of Debit and Credit is non-zero once validated.
type JournalLine struct {
	LineID      string          `json:"lineID"`
	JournalID   string          `json:"journalID"`
	LineNumber  int             `json:"lineNumber"` // 1-based, assigned at posting
	AccountID   string          `json:"accountID"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Category    string          `json:"category,omitempty"`
	Location    string          `json:"location,omitempty"`
	Vendor      string          `json:"vendor,omitempty"`
	Funder      string          `json:"funder,omitempty"`
}

// DebitLine builds a debit-side line.
func DebitLine(accountID, description string, amount decimal.Decimal) JournalLine {
	return JournalLine{AccountID: accountID, Description: description, Debit: amount, Credit: decimal.Zero}
}

// CreditLine builds a credit-side line.
func CreditLine(accountID, description string, amount decimal.Decimal) JournalLine {
	return JournalLine{AccountID: accountID, Description: description, Debit: decimal.Zero, Credit: amount}
}

// WithDimensions copies the optional reporting dimensions onto the line.
func (l JournalLine) WithDimensions(d Dimensions) JournalLine {
	l.Category = d.Category
	l.Location = d.Location
	l.Vendor = d.Vendor
	l.Funder = d.Funder
	return l
}

// Dimensions are optional reporting tags carried from documents to journal lines.
type Dimensions struct {
	Category string `json:"category,omitempty"`
	Location string `json:"location,omitempty"`
	Vendor   string `json:"vendor,omitempty"`
	Funder   string `json:"funder,omitempty"`
}
