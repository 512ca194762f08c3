package query

import "strings"

// SortField is one ORDER BY term.
type SortField struct {
	Field      string `json:"field"`
	Descending bool   `json:"descending"`
}

// ParseSortFields parses a comma-separated list such as "name,-created_at".
// A leading "-" sorts descending. Empty input yields nil.
func ParseSortFields(s string) []SortField {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	var fields []SortField
	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if name, ok := strings.CutPrefix(part, "-"); ok {
			fields = append(fields, SortField{Field: name, Descending: true})
			continue
		}
		fields = append(fields, SortField{Field: part})
	}
	return fields
}
