package core

// Row maps column names to typed values (int64, string or bool).
type Row map[string]any

// ID returns the row identity, or 0 when the row carries none.
func (r Row) ID() int64 {
	id, _ := r[IDColumn].(int64)
	return id
}

// Strings renders the row in the given column order.
func (r Row) Strings(columns []string) []string {
	out := make([]string, len(columns))
	for i, column := range columns {
		if v, ok := r[column]; ok {
			out[i] = Stringify(v)
		}
	}
	return out
}

// Matches reports whether every filter pair equals the row's stringified
// value. Columns absent from the row never match.
func (r Row) Matches(filter Clause) bool {
	for _, pair := range filter {
		v, ok := r[pair.Column]
		if !ok || Stringify(v) != pair.Value {
			return false
		}
	}
	return true
}

// NextID is max(existing IDs)+1, or 1 for an empty slice.
func NextID(rows []Row) int64 {
	var max int64
	for _, row := range rows {
		if id := row.ID(); id > max {
			max = id
		}
	}
	return max + 1
}
