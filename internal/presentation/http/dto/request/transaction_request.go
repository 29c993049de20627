package request

// TransactionFilterRequest represents ledger filter parameters.
// Dates are YYYY-MM-DD in the shop time zone; to is inclusive.
type TransactionFilterRequest struct {
	From    string `form:"from"`
	To      string `form:"to"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}

// ReportRequest selects the report range
type ReportRequest struct {
	Range string `form:"range"`
}
