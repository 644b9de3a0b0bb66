package core

import "errors"

// Error taxonomy. Every layer wraps one of these with context, callers
// match with errors.Is.
var (
	ErrDuplicateTable  = errors.New("table already exists")
	ErrUnknownTable    = errors.New("table does not exist")
	ErrMalformedColumn = errors.New("malformed column")
	ErrUnknownType     = errors.New("unknown column type")
	ErrInvalidName     = errors.New("invalid name")
	ErrArity           = errors.New("wrong number of values")
	ErrTypeConversion  = errors.New("type conversion failed")
	ErrMalformedFilter = errors.New("malformed filter")
	ErrIO              = errors.New("storage error")
)
