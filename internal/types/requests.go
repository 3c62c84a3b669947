package types

// SearchOptions holds the optional parameters of a search request. Empty
// values are not sent.
type SearchOptions struct {
	// IndexNames defaults to the application name when empty.
	IndexNames       []string
	FetchFields      []string
	QP               string
	Disable          string // only "qp" is supported
	FirstFormulaName string
	FormulaName      string
	Summary          *SearchSummary
}

// SuggestOptions holds the optional parameters of a suggest request.
type SuggestOptions struct {
	Hint int // zero means server default
}

// ErrorLogRequest selects a page of the application error log.
type ErrorLogRequest struct {
	Page     int
	PageSize int
	SortMode string // "ASC" or "DESC"
}
