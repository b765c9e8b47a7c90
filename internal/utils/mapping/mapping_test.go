package mapping

import (
	"testing"
	"time"

	"github.com/SscSPs/smb_books/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestToModelAccount_SharedAccountHasNullOwner(t *testing.T) {
	m := ToModelAccount(domain.Account{AccountID: "a", Code: "9999", AccountType: domain.Liability})

	assert.Nil(t, m.OwnerID)
	assert.Nil(t, m.ParentAccountID)
	assert.True(t, ToDomainAccount(m).IsShared())
}

func TestToDomainJournal_UnknownTypeFallsBackToGeneral(t *testing.T) {
	j := ToDomainJournal(ToModelJournal(domain.Journal{JournalType: "ZZ", JournalDate: time.Now()}))

	assert.Equal(t, domain.JournalTypeGeneral, j.JournalType)
	assert.Empty(t, j.ReferenceNumber)
}

func TestJournalLineMapping_OptionalDimensions(t *testing.T) {
	line := domain.DebitLine("acc", "desc", decimal.NewFromInt(10))
	line.Funder = "grant"

	m := ToModelJournalLine(line)

	assert.Nil(t, m.Category)
	assert.Equal(t, "grant", *m.Funder)
	assert.Equal(t, line, ToDomainJournalLine(m))
}
