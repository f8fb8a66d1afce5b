package shape

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/toolbridge/internal/core/domain"
)

// ColumnIndex converts a single column letter to its zero-based index.
// Multi-letter columns are rejected rather than mis-indexed.
func ColumnIndex(column string) (int, error) {
	col := strings.ToUpper(strings.TrimSpace(column))
	if len(col) != 1 || col[0] < 'A' || col[0] > 'Z' {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidColumn, column)
	}
	return int(col[0] - 'A'), nil
}

// SearchRows returns the rows containing q.Term, numbered by their 1-based
// position in rows. Row data is returned untouched.
func SearchRows(rows [][]any, q domain.RowQuery) (domain.RowSearchResult, error) {
	col := -1
	if q.Column != "" {
		idx, err := ColumnIndex(q.Column)
		if err != nil {
			return domain.RowSearchResult{}, err
		}
		col = idx
	}

	term := q.Term
	if !q.CaseSensitive {
		term = strings.ToLower(term)
	}

	matches := make([]domain.RowMatch, 0)
	for i, row := range rows {
		var text string
		if col >= 0 {
			if col >= len(row) {
				continue
			}
			text = cellString(row[col])
		} else {
			cells := make([]string, len(row))
			for j, cell := range row {
				cells[j] = cellString(cell)
			}
			text = strings.Join(cells, " ")
		}

		if !q.CaseSensitive {
			text = strings.ToLower(text)
		}
		if strings.Contains(text, term) {
			matches = append(matches, domain.RowMatch{RowNumber: i + 1, Data: row})
		}
	}

	return domain.RowSearchResult{Matches: matches, TotalMatches: len(matches)}, nil
}

// cellString renders a cell the way it reads in the sheet.
func cellString(cell any) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
