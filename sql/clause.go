package sql

import (
	"strings"

	"github.com/nickyhof/PrimitiveDB/core"
)

// ParseWhere parses a single "column = value" condition. The split happens at
// the first '='. ok is false for empty input, a missing '=' or an empty
// column name.
func ParseWhere(raw string) (where core.Clause, ok bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, false
	}

	column, value, found := strings.Cut(raw, "=")
	if !found {
		return nil, false
	}

	column = strings.TrimSpace(column)
	if column == "" {
		return nil, false
	}

	return core.Clause{{Column: column, Value: strings.TrimSpace(value)}}, true
}

// ParseSet parses comma separated "column = value" assignments. Fragments
// without '=' are skipped rather than rejected; a repeated column keeps its
// first position and its last value.
func ParseSet(raw string) core.Clause {
	set := core.Clause{}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return set
	}

	for _, part := range strings.Split(raw, ",") {
		column, value, found := strings.Cut(part, "=")
		if !found {
			continue
		}
		column = strings.TrimSpace(column)
		if column == "" {
			continue
		}
		set = set.Set(column, strings.TrimSpace(value))
	}

	return set
}
