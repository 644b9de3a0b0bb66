package core

import (
	"fmt"
	"regexp"
	"strings"
)

type ColumnType int

const (
	IntType ColumnType = iota
	StrType
	BoolType
)

// IDColumn is the synthetic identity column every table starts with.
const IDColumn = "ID"

// namePattern restricts table names, which become document paths.
var namePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func (t ColumnType) String() string {
	switch t {
	case IntType:
		return "int"
	case StrType:
		return "str"
	case BoolType:
		return "bool"
	default:
		return fmt.Sprintf("ColumnType(%d)", int(t))
	}
}

// ParseColumnType maps a type token to its ColumnType. Only the exact
// lower-case forms int, str and bool are accepted.
func ParseColumnType(token string) (ColumnType, error) {
	switch token {
	case "int":
		return IntType, nil
	case "str":
		return StrType, nil
	case "bool":
		return BoolType, nil
	default:
		return 0, fmt.Errorf("%w: %q (allowed: int, str, bool)", ErrUnknownType, token)
	}
}

type Identity struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Column struct {
	Name string     `json:"name"`
	Type ColumnType `json:"type"`
}

// Spec renders the column in its persisted "name:type" form.
func (c Column) Spec() string {
	return c.Name + ":" + c.Type.String()
}

// ParseColumn parses a "name:type" spec. Any non-empty name is allowed.
func ParseColumn(spec string) (Column, error) {
	name, typeToken, ok := strings.Cut(spec, ":")
	if !ok {
		return Column{}, fmt.Errorf("%w: %q has no ':' separator", ErrMalformedColumn, spec)
	}
	if name == "" {
		return Column{}, fmt.Errorf("%w: %q has an empty column name", ErrMalformedColumn, spec)
	}
	columnType, err := ParseColumnType(typeToken)
	if err != nil {
		return Column{}, err
	}
	return Column{Name: name, Type: columnType}, nil
}

type Table struct {
	Name    string   `json:"name"`
	Columns []Column `json:"columns"`
}

// ValidateName reports whether name can be used as a table name.
func ValidateName(name string) error {
	if !namePattern.MatchString(name) {
		return fmt.Errorf("%w: table name %q", ErrInvalidName, name)
	}
	return nil
}

// NewTable builds a table from user column specs, prepending ID:int.
func NewTable(name string, specs []string) (Table, error) {
	if err := ValidateName(name); err != nil {
		return Table{}, err
	}

	columns := make([]Column, 0, len(specs)+1)
	columns = append(columns, Column{Name: IDColumn, Type: IntType})
	seen := map[string]bool{IDColumn: true}

	for _, spec := range specs {
		column, err := ParseColumn(spec)
		if err != nil {
			return Table{}, err
		}
		if seen[column.Name] {
			return Table{}, fmt.Errorf("%w: duplicate column %q", ErrMalformedColumn, column.Name)
		}
		seen[column.Name] = true
		columns = append(columns, column)
	}

	return Table{Name: name, Columns: columns}, nil
}

// TableFromSpecs rebuilds a table from its persisted specs (ID included).
func TableFromSpecs(name string, specs []string) (Table, error) {
	columns := make([]Column, 0, len(specs))
	for _, spec := range specs {
		column, err := ParseColumn(spec)
		if err != nil {
			return Table{}, fmt.Errorf("table %s: %w", name, err)
		}
		columns = append(columns, column)
	}
	return Table{Name: name, Columns: columns}, nil
}

func (t Table) Specs() []string {
	specs := make([]string, len(t.Columns))
	for i, column := range t.Columns {
		specs[i] = column.Spec()
	}
	return specs
}

func (t Table) Column(name string) (Column, bool) {
	for _, column := range t.Columns {
		if column.Name == name {
			return column, true
		}
	}
	return Column{}, false
}

func (t Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, column := range t.Columns {
		names[i] = column.Name
	}
	return names
}
