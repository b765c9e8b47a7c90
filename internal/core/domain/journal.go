package domain

import "time"

// JournalType is the ledger book a journal belongs to.
type JournalType string

const (
	JournalTypeGeneral     JournalType = "GJ"
	JournalTypePayables    JournalType = "AP"
	JournalTypeReceivables JournalType = "AR"
	JournalTypeBillRefund  JournalType = "BR"
	JournalTypeCreditCard  JournalType = "CCY"
)

// ParseJournalType maps a code to a JournalType. Unknown codes fall back to GJ.
func ParseJournalType(code string) JournalType {
	switch t := JournalType(code); t {
	case JournalTypeGeneral, JournalTypePayables, JournalTypeReceivables, JournalTypeBillRefund, JournalTypeCreditCard:
		return t
	}
	return JournalTypeGeneral
}

// Source tags identify which workflow produced a journal.
const (
	SourceManual         = "manual"
	SourceLegacyImport   = "legacy_import"
	SourceBills          = "bills"
	SourceBillPayment    = "bill_payment"
	SourceBillRefund     = "bill_refund"
	SourceBillCredit     = "bill_credit"
	SourceInvoiceCreate  = "invoice_create"
	SourceInvoicePayment = "invoice_payment"
)

// BalancePolicy decides what happens when a journal's lines do not balance.
type BalancePolicy int

const (
	// PolicyStrict rejects unbalanced journals.
	PolicyStrict BalancePolicy = iota
	// PolicyAutoBalance posts the difference to the suspense account.
	PolicyAutoBalance
)

// Journal is the header of one balanced financial event.
type Journal struct {
	JournalID       string        `json:"journalID"`
	JournalDate     time.Time     `json:"journalDate"`
	Memo            string        `json:"memo"`
	Source          string        `json:"source"`
	JournalType     JournalType   `json:"journalType"`
	ReferenceNumber string        `json:"referenceNumber"`
	IsPosted        bool          `json:"isPosted"`
	OwnerID         string        `json:"ownerID"`
	CreatedBy       string        `json:"createdBy"`
	CreatedAt       time.Time     `json:"createdAt"`
	Lines           []JournalLine `json:"lines,omitempty"`
}
