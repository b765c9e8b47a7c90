package dto

import (
	"time"

	"github.com/SscSPs/smb_books/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalLineRequest is one line of a journal as submitted by a client.
// Amounts are validated by the journal validator, not by binding, so that
// callers get the full totals in the error.
type JournalLineRequest struct {
	AccountID   string          `json:"accountId"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit" binding:"money"`
	Credit      decimal.Decimal `json:"credit" binding:"money"`
	Category    string          `json:"category,omitempty"`
	Location    string          `json:"location,omitempty"`
	Vendor      string          `json:"vendor,omitempty"`
	Funder      string          `json:"funder,omitempty"`
}

// CreateJournalRequest defines the data needed to post a journal.
type CreateJournalRequest struct {
	JournalDate     time.Time            `json:"journalDate" binding:"required"`
	Memo            string               `json:"memo"`
	JournalType     string               `json:"journalType"`
	ReferenceNumber string               `json:"referenceNumber"`
	Lines           []JournalLineRequest `json:"lines" binding:"dive"`
}

// ValidateJournalRequest carries lines to check without posting.
type ValidateJournalRequest struct {
	Lines []JournalLineRequest `json:"lines" binding:"dive"`
}

// ValidateJournalResponse reports the totals of a journal that passed validation.
type ValidateJournalResponse struct {
	Balanced    bool   `json:"balanced"`
	TotalDebit  string `json:"totalDebit"`
	TotalCredit string `json:"totalCredit"`
	Difference  string `json:"difference"`
}

// ListJournalsParams defines query parameters for listing journals.
type ListJournalsParams struct {
	Limit     int     `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// JournalLineResponse defines the data returned for a journal line.
type JournalLineResponse struct {
	LineNumber  int             `json:"lineNumber"`
	AccountID   string          `json:"accountId"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Category    string          `json:"category,omitempty"`
	Location    string          `json:"location,omitempty"`
	Vendor      string          `json:"vendor,omitempty"`
	Funder      string          `json:"funder,omitempty"`
}

// JournalResponse defines the data returned for a journal entry.
type JournalResponse struct {
	JournalID       string                `json:"journalID"`
	JournalDate     time.Time             `json:"journalDate"`
	Memo            string                `json:"memo"`
	Source          string                `json:"source"`
	JournalType     domain.JournalType    `json:"journalType"`
	ReferenceNumber string                `json:"referenceNumber,omitempty"`
	IsPosted        bool                  `json:"isPosted"`
	CreatedAt       time.Time             `json:"createdAt"`
	CreatedBy       string                `json:"createdBy"`
	Lines           []JournalLineResponse `json:"lines,omitempty"`
}

// ListJournalsResponse is a page of journals.
type ListJournalsResponse struct {
	Journals  []JournalResponse `json:"journals"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToDomainLines converts request lines to journal lines in submitted order.
func ToDomainLines(reqs []JournalLineRequest) []domain.JournalLine {
	lines := make([]domain.JournalLine, len(reqs))
	for i, r := range reqs {
		lines[i] = domain.JournalLine{
			AccountID:   r.AccountID,
			Description: r.Description,
			Debit:       r.Debit,
			Credit:      r.Credit,
			Category:    r.Category,
			Location:    r.Location,
			Vendor:      r.Vendor,
			Funder:      r.Funder,
		}
	}
	return lines
}

// ToJournalResponse converts a domain.Journal to JournalResponse DTO.
func ToJournalResponse(j *domain.Journal) JournalResponse {
	resp := JournalResponse{
		JournalID:       j.JournalID,
		JournalDate:     j.JournalDate,
		Memo:            j.Memo,
		Source:          j.Source,
		JournalType:     j.JournalType,
		ReferenceNumber: j.ReferenceNumber,
		IsPosted:        j.IsPosted,
		CreatedAt:       j.CreatedAt,
		CreatedBy:       j.CreatedBy,
	}
	if len(j.Lines) > 0 {
		resp.Lines = make([]JournalLineResponse, len(j.Lines))
		for i, l := range j.Lines {
			resp.Lines[i] = JournalLineResponse{
				LineNumber:  l.LineNumber,
				AccountID:   l.AccountID,
				Description: l.Description,
				Debit:       l.Debit,
				Credit:      l.Credit,
				Category:    l.Category,
				Location:    l.Location,
				Vendor:      l.Vendor,
				Funder:      l.Funder,
			}
		}
	}
	return resp
}
