package sql

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nickyhof/PrimitiveDB/core"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrUsage          = errors.New("usage")
)

type StatementType int

const (
	EmptyStatementType StatementType = iota
	CreateTableStatementType
	ListTablesStatementType
	DropTableStatementType
	InfoStatementType
	InsertStatementType
	SelectStatementType
	UpdateStatementType
	DeleteStatementType
	ExportStatementType
	HelpStatementType
	ExitStatementType
)

type Statement interface {
	Type() StatementType
}

type EmptyStatement struct{}

type CreateTableStatement struct {
	Table   string
	Columns []string
}

type ListTablesStatement struct{}

type DropTableStatement struct {
	Table string
}

type InfoStatement struct {
	Table string
}

type InsertStatement struct {
	Table  string
	Values []string
}

type SelectStatement struct {
	Table string
	Where core.Clause
}

type UpdateStatement struct {
	Table string
	Set   core.Clause
	Where core.Clause
}

type DeleteStatement struct {
	Table string
	Where core.Clause
}

// ExportStatement writes a table as CSV to a local path, file:// or s3:// URL.
type ExportStatement struct {
	Table  string
	Target string
}

type HelpStatement struct{}

type ExitStatement struct{}

func (s EmptyStatement) Type() StatementType       { return EmptyStatementType }
func (s CreateTableStatement) Type() StatementType { return CreateTableStatementType }
func (s ListTablesStatement) Type() StatementType  { return ListTablesStatementType }
func (s DropTableStatement) Type() StatementType   { return DropTableStatementType }
func (s InfoStatement) Type() StatementType        { return InfoStatementType }
func (s InsertStatement) Type() StatementType      { return InsertStatementType }
func (s SelectStatement) Type() StatementType      { return SelectStatementType }
func (s UpdateStatement) Type() StatementType      { return UpdateStatementType }
func (s DeleteStatement) Type() StatementType      { return DeleteStatementType }
func (s ExportStatement) Type() StatementType      { return ExportStatementType }
func (s HelpStatement) Type() StatementType        { return HelpStatementType }
func (s ExitStatement) Type() StatementType        { return ExitStatementType }

// Usage strings, also used by the help screen.
const (
	CreateTableUsage = "create_table <name> <column:type> [<column:type> ...]"
	ListTablesUsage  = "list_tables"
	DropTableUsage   = "drop_table <name>"
	InfoUsage        = "info <name>"
	InsertUsage      = "insert into <name> values (<value1>, <value2>, ...)"
	SelectUsage      = "select from <name> [where <column> = <value>]"
	UpdateUsage      = "update <name> set <column>=<value>[, ...] where <column>=<value>"
	DeleteUsage      = "delete from <name> [where <column> = <value>]"
	ExportUsage      = "export <name> <path|file://path|s3://bucket/key>"
)

type Parser struct {
	line   string
	tokens []Token
}

func NewParser(line string) *Parser {
	return &Parser{line: line}
}

func (parser *Parser) Parse() (Statement, error) {
	tokens, err := Tokenize(parser.line)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return EmptyStatement{}, nil
	}
	parser.tokens = tokens

	switch command := strings.ToLower(tokens[0].Value); command {
	case "create_table":
		return ParseCreateTable(parser)
	case "list_tables":
		return ParseListTables(parser)
	case "drop_table":
		return ParseDropTable(parser)
	case "info":
		return ParseInfo(parser)
	case "insert":
		return ParseInsert(parser)
	case "select":
		return ParseSelect(parser)
	case "update":
		return ParseUpdate(parser)
	case "delete":
		return ParseDelete(parser)
	case "export":
		return ParseExport(parser)
	case "help":
		return HelpStatement{}, nil
	case "exit":
		return ExitStatement{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, tokens[0].Value)
	}
}

func usage(format string) error {
	return fmt.Errorf("%w: %s", ErrUsage, format)
}

// joined returns the unquoted values of tokens[from:to] separated by spaces.
func (parser *Parser) joined(from, to int) string {
	values := make([]string, 0, to-from)
	for _, token := range parser.tokens[from:to] {
		values = append(values, token.Value)
	}
	return strings.Join(values, " ")
}

func ParseCreateTable(parser *Parser) (Statement, error) {
	if len(parser.tokens) < 3 {
		return nil, usage(CreateTableUsage)
	}

	columns := make([]string, 0, len(parser.tokens)-2)
	for _, token := range parser.tokens[2:] {
		columns = append(columns, token.Value)
	}

	return CreateTableStatement{Table: parser.tokens[1].Value, Columns: columns}, nil
}

func ParseListTables(parser *Parser) (Statement, error) {
	if len(parser.tokens) != 1 {
		return nil, usage(ListTablesUsage)
	}
	return ListTablesStatement{}, nil
}

func ParseDropTable(parser *Parser) (Statement, error) {
	if len(parser.tokens) != 2 {
		return nil, usage(DropTableUsage)
	}
	return DropTableStatement{Table: parser.tokens[1].Value}, nil
}

func ParseInfo(parser *Parser) (Statement, error) {
	if len(parser.tokens) != 2 {
		return nil, usage(InfoUsage)
	}
	return InfoStatement{Table: parser.tokens[1].Value}, nil
}

func ParseInsert(parser *Parser) (Statement, error) {
	tokens := parser.tokens
	if len(tokens) < 4 || !tokens[1].Keyword("into") || !tokens[3].Keyword("values") {
		return nil, usage(InsertUsage)
	}

	// Values come from the raw text so quoting survives until coercion.
	values := SplitValues(parser.line[tokens[3].End:])

	return InsertStatement{Table: tokens[2].Value, Values: values}, nil
}

// parseOptionalWhere handles the "[where <col> = <value>]" tail starting at
// tokens[from]. A nil clause means there was no tail.
func (parser *Parser) parseOptionalWhere(from int, format string) (core.Clause, error) {
	if len(parser.tokens) <= from {
		return nil, nil
	}
	if !parser.tokens[from].Keyword("where") {
		return nil, usage(format)
	}
	where, ok := ParseWhere(parser.joined(from+1, len(parser.tokens)))
	if !ok {
		return nil, fmt.Errorf("%w: invalid WHERE condition", core.ErrMalformedFilter)
	}
	return where, nil
}

func ParseSelect(parser *Parser) (Statement, error) {
	if len(parser.tokens) < 3 || !parser.tokens[1].Keyword("from") {
		return nil, usage(SelectUsage)
	}

	where, err := parser.parseOptionalWhere(3, SelectUsage)
	if err != nil {
		return nil, err
	}

	return SelectStatement{Table: parser.tokens[2].Value, Where: where}, nil
}

func ParseUpdate(parser *Parser) (Statement, error) {
	tokens := parser.tokens
	if len(tokens) < 6 || !tokens[2].Keyword("set") {
		return nil, usage(UpdateUsage)
	}

	whereIndex := -1
	for i := len(tokens) - 1; i > 2; i-- {
		if tokens[i].Keyword("where") {
			whereIndex = i
			break
		}
	}
	if whereIndex == -1 {
		return nil, usage(UpdateUsage)
	}

	set := ParseSet(parser.joined(3, whereIndex))
	if len(set) == 0 {
		return nil, fmt.Errorf("%w: invalid SET assignments", core.ErrMalformedFilter)
	}

	where, ok := ParseWhere(parser.joined(whereIndex+1, len(tokens)))
	if !ok {
		return nil, fmt.Errorf("%w: invalid WHERE condition", core.ErrMalformedFilter)
	}

	return UpdateStatement{Table: tokens[1].Value, Set: set, Where: where}, nil
}

func ParseDelete(parser *Parser) (Statement, error) {
	if len(parser.tokens) < 3 || !parser.tokens[1].Keyword("from") {
		return nil, usage(DeleteUsage)
	}

	where, err := parser.parseOptionalWhere(3, DeleteUsage)
	if err != nil {
		return nil, err
	}

	return DeleteStatement{Table: parser.tokens[2].Value, Where: where}, nil
}

func ParseExport(parser *Parser) (Statement, error) {
	if len(parser.tokens) != 3 {
		return nil, usage(ExportUsage)
	}
	return ExportStatement{Table: parser.tokens[1].Value, Target: parser.tokens[2].Value}, nil
}
