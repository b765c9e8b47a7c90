package models

// AccountType defines the fundamental accounting type of an account.
type AccountType string

// Account represents a row of the accounts table.
// Nullable columns use pointers; a nil OwnerID is a shared account.
type Account struct {
	AccountID       string      `db:"account_id"`
	Code            string      `db:"code"`
	Name            string      `db:"name"`
	AccountType     AccountType `db:"account_type"`
	ParentAccountID *string     `db:"parent_account_id"`
	OwnerID         *string     `db:"owner_id"`
	Description     string      `db:"description"`
	IsActive        bool        `db:"is_active"`
	AuditFields
}
