package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerce(t *testing.T) {
	tests := []struct {
		name     string
		literal  string
		typ      ColumnType
		expected any
	}{
		{"int", "30", IntType, int64(30)},
		{"negative int", "-7", IntType, int64(-7)},
		{"int with spaces", " 42 ", IntType, int64(42)},
		{"bool lower", "true", BoolType, true},
		{"bool mixed case", "FaLsE", BoolType, false},
		{"double quoted str", `"Ann"`, StrType, "Ann"},
		{"single quoted str", `'Ann Lee'`, StrType, "Ann Lee"},
		{"bare str", "Ann", StrType, "Ann"},
		{"mismatched quotes kept", `"Ann'`, StrType, `"Ann'`},
		{"lone quote kept", `"`, StrType, `"`},
		{"only outer pair stripped", `""x""`, StrType, `"x"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Coerce(tt.literal, tt.typ)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestCoerceFailures(t *testing.T) {
	tests := []struct {
		literal string
		typ     ColumnType
	}{
		{"abc", IntType},
		{"3.5", IntType},
		{"", IntType},
		{"yes", BoolType},
		{"1", BoolType},
		{`"true"`, BoolType},
	}

	for _, tt := range tests {
		_, err := Coerce(tt.literal, tt.typ)
		require.ErrorIs(t, err, ErrTypeConversion, "literal %q as %s", tt.literal, tt.typ)
	}
}

func TestStringify(t *testing.T) {
	assert.Equal(t, "31", Stringify(int64(31)))
	assert.Equal(t, "true", Stringify(true))
	assert.Equal(t, "Ann", Stringify("Ann"))
	assert.Equal(t, "", Stringify(nil))
}

func TestNormalize(t *testing.T) {
	v, err := Normalize(json.Number("12"), IntType)
	require.NoError(t, err)
	assert.Equal(t, int64(12), v)

	v, err = Normalize(int8(5), IntType)
	require.NoError(t, err)
	assert.Equal(t, int64(5), v)

	v, err = Normalize(float64(3), IntType)
	require.NoError(t, err)
	assert.Equal(t, int64(3), v)

	_, err = Normalize(3.5, IntType)
	require.ErrorIs(t, err, ErrTypeConversion)

	_, err = Normalize("x", BoolType)
	require.ErrorIs(t, err, ErrTypeConversion)
}
