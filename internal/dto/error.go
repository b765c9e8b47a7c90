package dto

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// JournalErrorResponse is returned when a journal fails validation. Totals
// are formatted to two decimals and present once every line passed its own checks.
type JournalErrorResponse struct {
	Error       string `json:"error"`
	Kind        string `json:"kind"`
	Line        int    `json:"line,omitempty"`
	Field       string `json:"field,omitempty"`
	TotalDebit  string `json:"totalDebit,omitempty"`
	TotalCredit string `json:"totalCredit,omitempty"`
	Difference  string `json:"difference,omitempty"`
}
