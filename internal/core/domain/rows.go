package domain

// RowMatch is a spreadsheet row whose content matched a search term.
type RowMatch struct {
	// RowNumber is the 1-based position of the row in the searched range.
	RowNumber int `json:"row_number"`
	// Data is the original, unmodified row.
	Data []any `json:"data"`
}

// RowSearchResult is the outcome of a row search.
type RowSearchResult struct {
	Matches      []RowMatch `json:"matches"`
	TotalMatches int        `json:"total_matches"`
}

// RowQuery describes a row search.
type RowQuery struct {
	// Term is the substring to look for.
	Term string
	// Column restricts the search to one column letter. Empty searches all cells.
	Column string
	// CaseSensitive disables lowercasing of the term and compared text.
	CaseSensitive bool
}
