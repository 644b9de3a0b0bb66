package core

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Coerce converts a textual literal into a value of the given column type.
func Coerce(literal string, t ColumnType) (any, error) {
	switch t {
	case IntType:
		n, err := strconv.ParseInt(strings.TrimSpace(literal), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not an int", ErrTypeConversion, literal)
		}
		return n, nil
	case BoolType:
		switch strings.ToLower(strings.TrimSpace(literal)) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		return nil, fmt.Errorf("%w: %q is not a bool", ErrTypeConversion, literal)
	case StrType:
		return unquote(literal), nil
	default:
		return nil, fmt.Errorf("%w: unsupported type %s", ErrTypeConversion, t)
	}
}

// unquote strips one matching pair of single or double quotes.
func unquote(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '"' || first == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// Stringify is the textual form filters compare against.
func Stringify(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case int64:
		return strconv.FormatInt(value, 10)
	case bool:
		return strconv.FormatBool(value)
	default:
		return fmt.Sprint(value)
	}
}

// Normalize converts a decoded document value to the Go type of t. Decoders
// hand back json.Number, float64 or any msgpack integer width for ints.
func Normalize(v any, t ColumnType) (any, error) {
	switch t {
	case IntType:
		return normalizeInt(v)
	case StrType:
		if s, ok := v.(string); ok {
			return s, nil
		}
	case BoolType:
		if b, ok := v.(bool); ok {
			return b, nil
		}
	}
	return nil, fmt.Errorf("%w: stored value %v (%T) is not %s", ErrTypeConversion, v, v, t)
}

func normalizeInt(v any) (any, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case int8:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case uint8:
		return int64(n), nil
	case uint16:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case uint64:
		if n <= math.MaxInt64 {
			return int64(n), nil
		}
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, nil
		}
	case float64:
		if n == math.Trunc(n) {
			return int64(n), nil
		}
	}
	return nil, fmt.Errorf("%w: stored value %v (%T) is not int", ErrTypeConversion, v, v)
}
