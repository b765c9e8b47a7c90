package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Valid reports whether t is one of the five account types.
func (t AccountType) Valid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// Account is a node in the chart of accounts.
// An empty OwnerID marks a shared system account visible to every user.
type Account struct {
	AccountID       string      `json:"accountID"`
	Code            string      `json:"code"`
	Name            string      `json:"name"`
	AccountType     AccountType `json:"accountType"`
	ParentAccountID string      `json:"parentAccountID"`
	OwnerID         string      `json:"ownerID"`
	Description     string      `json:"description"`
	IsActive        bool        `json:"isActive"`
	AuditFields
}

// IsShared reports whether the account belongs to no single user.
func (a Account) IsShared() bool {
	return a.OwnerID == ""
}

// VisibleTo reports whether ownerID may reference the account.
func (a Account) VisibleTo(ownerID string) bool {
	return a.IsShared() || a.OwnerID == ownerID
}
