package sql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nickyhof/PrimitiveDB/core"
)

func TestParseWhere(t *testing.T) {
	where, ok := ParseWhere(" age = 31 ")
	require.True(t, ok)
	assert.Equal(t, core.Clause{{Column: "age", Value: "31"}}, where)

	where, ok = ParseWhere("expr=a=b")
	require.True(t, ok)
	assert.Equal(t, core.Clause{{Column: "expr", Value: "a=b"}}, where)

	where, ok = ParseWhere("name =")
	require.True(t, ok)
	assert.Equal(t, core.Clause{{Column: "name", Value: ""}}, where)

	for _, raw := range []string{"", "   ", "age 31", "= 31"} {
		_, ok := ParseWhere(raw)
		assert.False(t, ok, "raw %q", raw)
	}
}

func TestParseSet(t *testing.T) {
	set := ParseSet("age=31, name = Bob")
	assert.Equal(t, core.Clause{{Column: "age", Value: "31"}, {Column: "name", Value: "Bob"}}, set)

	set = ParseSet("age=31, garbage, name=Bob")
	assert.Equal(t, core.Clause{{Column: "age", Value: "31"}, {Column: "name", Value: "Bob"}}, set)

	set = ParseSet("age=1, age=2")
	assert.Equal(t, core.Clause{{Column: "age", Value: "2"}}, set)

	assert.Empty(t, ParseSet(""))
	assert.Empty(t, ParseSet("nothing here"))
}
