package sqlite

import (
	"fmt"
	"strings"
	"time"
)

// parseRFC3339 decodes a timestamp column stored as RFC3339 text,
// naming the column in the error when the value is malformed.
func parseRFC3339(value, fieldName string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	return t, nil
}

// appendPagination adds LIMIT/OFFSET clauses for the positive filter values,
// leaving the query unpaginated otherwise.
func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	if limit > 0 {
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}
