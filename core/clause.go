package core

import "strings"

type Pair struct {
	Column string
	Value  string
}

// Clause is an ordered column -> literal mapping parsed from a WHERE or SET
// fragment. A nil Clause means "no filter".
type Clause []Pair

// Set assigns value to column, replacing an earlier pair in place.
func (c Clause) Set(column, value string) Clause {
	for i := range c {
		if c[i].Column == column {
			c[i].Value = value
			return c
		}
	}
	return append(c, Pair{Column: column, Value: value})
}

func (c Clause) Get(column string) (string, bool) {
	for _, pair := range c {
		if pair.Column == column {
			return pair.Value, true
		}
	}
	return "", false
}

// Fingerprint is a stable textual key for the clause, used for memoization.
func (c Clause) Fingerprint() string {
	if c == nil {
		return "*"
	}
	parts := make([]string, len(c))
	for i, pair := range c {
		parts[i] = pair.Column + "=" + pair.Value
	}
	return strings.Join(parts, "\x00")
}
