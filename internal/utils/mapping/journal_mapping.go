package mapping

import (
	"github.com/SscSPs/smb_books/internal/core/domain"
	"github.com/SscSPs/smb_books/internal/models"
)

// ToModelJournal converts a domain Journal to a model Journal
func ToModelJournal(d domain.Journal) models.Journal {
	return models.Journal{
		JournalID:       d.JournalID,
		JournalDate:     d.JournalDate,
		Memo:            d.Memo,
		Source:          d.Source,
		JournalType:     string(d.JournalType),
		ReferenceNumber: NullableString(d.ReferenceNumber),
		IsPosted:        d.IsPosted,
		OwnerID:         d.OwnerID,
		CreatedBy:       d.CreatedBy,
		CreatedAt:       d.CreatedAt,
	}
}

// ToDomainJournal converts a model Journal to a domain Journal
func ToDomainJournal(m models.Journal) domain.Journal {
	return domain.Journal{
		JournalID:       m.JournalID,
		JournalDate:     m.JournalDate,
		Memo:            m.Memo,
		Source:          m.Source,
		JournalType:     domain.ParseJournalType(m.JournalType),
		ReferenceNumber: StringValue(m.ReferenceNumber),
		IsPosted:        m.IsPosted,
		OwnerID:         m.OwnerID,
		CreatedBy:       m.CreatedBy,
		CreatedAt:       m.CreatedAt,
	}
}

// ToModelJournalLine converts a domain JournalLine to a model JournalLine
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:      d.LineID,
		JournalID:   d.JournalID,
		LineNumber:  d.LineNumber,
		AccountID:   d.AccountID,
		Description: d.Description,
		Debit:       d.Debit,
		Credit:      d.Credit,
		Category:    NullableString(d.Category),
		Location:    NullableString(d.Location),
		Vendor:      NullableString(d.Vendor),
		Funder:      NullableString(d.Funder),
	}
}

// ToDomainJournalLine converts a model JournalLine to a domain JournalLine
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:      m.LineID,
		JournalID:   m.JournalID,
		LineNumber:  m.LineNumber,
		AccountID:   m.AccountID,
		Description: m.Description,
		Debit:       m.Debit,
		Credit:      m.Credit,
		Category:    StringValue(m.Category),
		Location:    StringValue(m.Location),
		Vendor:      StringValue(m.Vendor),
		Funder:      StringValue(m.Funder),
	}
}
