package db

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nickyhof/PrimitiveDB/core"
	"github.com/nickyhof/PrimitiveDB/op"
	"github.com/nickyhof/PrimitiveDB/ps"
	"github.com/nickyhof/PrimitiveDB/sql"
)

// Engine is one interactive session: the catalog loaded from the document
// store, the select cache, and the confirmation gate.
type Engine struct {
	Schema    *op.SchemaOp
	Cache     *Cache
	Confirmer Confirmer
	Remote    *S3Config
	Logger    *slog.Logger
}

// NewEngine starts a session on documents. A catalog that cannot be read
// is treated as no catalog yet: the session starts without tables and the
// failure is reported again by the next Reload.
func NewEngine(documents *ps.Documents, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	schema, err := op.LoadSchema(documents)
	if err != nil {
		logger.Warn("catalog unreadable, starting empty", "error", err)
	}

	return &Engine{
		Schema: schema,
		Cache:  NewCache(logger),
		Logger: logger,
	}
}

// WithConfirmer sets the gate for destructive commands. Without one they
// are always cancelled.
func (engine *Engine) WithConfirmer(confirmer Confirmer) *Engine {
	engine.Confirmer = confirmer
	return engine
}

// WithRemote sets the S3 settings used by export.
func (engine *Engine) WithRemote(cfg *S3Config) *Engine {
	engine.Remote = cfg
	return engine
}

// Reload refreshes the catalog from the store. On failure the previous
// catalog stays in use.
func (engine *Engine) Reload() error {
	if err := engine.Schema.Reload(); err != nil {
		engine.Logger.Warn("catalog reload failed", "error", err)
		return err
	}
	return nil
}

// Execute parses and runs one command line. An empty line returns a nil
// Result.
func (engine *Engine) Execute(line string) (Result, error) {
	statement, err := sql.NewParser(line).Parse()
	if err != nil {
		return nil, err
	}
	return engine.ExecuteStatement(statement)
}

func (engine *Engine) ExecuteStatement(statement sql.Statement) (Result, error) {
	var execute handler

	switch statement.Type() {
	case sql.EmptyStatementType:
		return nil, nil
	case sql.HelpStatementType:
		return MessageResult{Text: HelpText()}, nil
	case sql.ExitStatementType:
		return ExitResult{}, nil
	case sql.CreateTableStatementType:
		execute = engine.executeCreateTableStatement
	case sql.ListTablesStatementType:
		execute = engine.executeListTablesStatement
	case sql.DropTableStatementType:
		execute = engine.executeDropTableStatement
	case sql.InfoStatementType:
		execute = engine.executeInfoStatement
	case sql.InsertStatementType:
		execute = engine.executeInsertStatement
	case sql.SelectStatementType:
		execute = engine.executeSelectStatement
	case sql.UpdateStatementType:
		execute = engine.executeUpdateStatement
	case sql.DeleteStatementType:
		execute = engine.executeDeleteStatement
	case sql.ExportStatementType:
		execute = engine.executeExportStatement
	default:
		return nil, fmt.Errorf("unsupported statement type: %v", statement.Type())
	}

	pipeline := chain(execute,
		withValidation(engine.Schema),
		withConfirmation(engine.Confirmer),
		withTiming(engine.Logger),
		withCacheInvalidation(engine.Cache),
	)
	return pipeline(describeCommand(statement))
}

func (engine *Engine) tableOp(name string) (*op.TableOp, error) {
	tableOp, err := op.GetTable(engine.Schema, name)
	if err != nil {
		return nil, err
	}
	return tableOp.WithLogger(engine.Logger), nil
}

func (engine *Engine) executeCreateTableStatement(cmd command) (Result, error) {
	statement := cmd.statement.(sql.CreateTableStatement)

	if _, err := engine.Schema.CreateTable(statement.Table, statement.Columns); err != nil {
		return nil, err
	}

	return CommitResult{TablesCreated: 1}, nil
}

func (engine *Engine) executeListTablesStatement(cmd command) (Result, error) {
	names := engine.Schema.ListTables()
	if len(names) == 0 {
		return MessageResult{Text: "No tables."}, nil
	}

	data := make([][]string, len(names))
	for i, name := range names {
		data[i] = []string{name}
	}

	return QueryResult{
		Columns:     []string{"Table"},
		Data:        data,
		RecordsRead: len(data),
	}, nil
}

func (engine *Engine) executeDropTableStatement(cmd command) (Result, error) {
	statement := cmd.statement.(sql.DropTableStatement)

	if err := engine.Schema.DropTable(statement.Table); err != nil {
		return nil, err
	}

	return CommitResult{TablesDeleted: 1}, nil
}

func (engine *Engine) executeInfoStatement(cmd command) (Result, error) {
	statement := cmd.statement.(sql.InfoStatement)

	table, count, err := engine.Schema.Describe(statement.Table)
	if err != nil {
		return nil, err
	}

	data := make([][]string, len(table.Columns))
	for i, column := range table.Columns {
		data[i] = []string{column.Name, column.Type.String()}
	}

	return QueryResult{
		Title:       fmt.Sprintf("Table %s: %d row(s)", table.Name, count),
		Columns:     []string{"Column", "Type"},
		Data:        data,
		RecordsRead: len(data),
	}, nil
}

func (engine *Engine) executeInsertStatement(cmd command) (Result, error) {
	statement := cmd.statement.(sql.InsertStatement)

	tableOp, err := engine.tableOp(statement.Table)
	if err != nil {
		return nil, err
	}

	row, err := tableOp.Insert(statement.Values)
	if err != nil {
		return nil, err
	}

	return CommitResult{RecordsWritten: 1, InsertedID: row.ID()}, nil
}

func (engine *Engine) executeSelectStatement(cmd command) (Result, error) {
	statement := cmd.statement.(sql.SelectStatement)

	tableOp, err := engine.tableOp(statement.Table)
	if err != nil {
		return nil, err
	}

	computed := false
	rows, err := engine.Cache.Memoize(statement.Table, statement.Where.Fingerprint(), func() ([]core.Row, error) {
		computed = true
		return tableOp.Select(statement.Where)
	})
	if err != nil {
		return nil, err
	}

	columns := tableOp.Table.ColumnNames()
	return QueryResult{
		Columns:     columns,
		Data:        tableData(columns, rows),
		RecordsRead: len(rows),
		Cached:      !computed,
	}, nil
}

func (engine *Engine) executeUpdateStatement(cmd command) (Result, error) {
	statement := cmd.statement.(sql.UpdateStatement)

	tableOp, err := engine.tableOp(statement.Table)
	if err != nil {
		return nil, err
	}

	result, err := tableOp.Update(statement.Set, statement.Where)
	if err != nil {
		return nil, err
	}

	return CommitResult{RecordsMatched: result.Matched, RecordsUpdated: result.Updated}, nil
}

func (engine *Engine) executeDeleteStatement(cmd command) (Result, error) {
	statement := cmd.statement.(sql.DeleteStatement)

	tableOp, err := engine.tableOp(statement.Table)
	if err != nil {
		return nil, err
	}

	deleted, err := tableOp.Delete(statement.Where)
	if err != nil {
		return nil, err
	}

	return CommitResult{RecordsDeleted: deleted}, nil
}

func (engine *Engine) executeExportStatement(cmd command) (Result, error) {
	statement := cmd.statement.(sql.ExportStatement)

	tableOp, err := engine.tableOp(statement.Table)
	if err != nil {
		return nil, err
	}

	rows, err := tableOp.Select(nil)
	if err != nil {
		return nil, err
	}

	if err := exportTable(context.Background(), statement.Target, engine.Remote, tableOp.Table, rows); err != nil {
		return nil, err
	}

	return CommitResult{RecordsExported: len(rows), Location: statement.Target}, nil
}

// HelpText lists every command with its usage.
func HelpText() string {
	var b strings.Builder

	b.WriteString("Table management:\n")
	for _, line := range [][2]string{
		{sql.CreateTableUsage, "create a table (ID:int is added automatically)"},
		{sql.ListTablesUsage, "list all tables"},
		{sql.DropTableUsage, "drop a table and its rows"},
		{sql.InfoUsage, "show the columns and row count of a table"},
	} {
		fmt.Fprintf(&b, "  %s\n      %s\n", line[0], line[1])
	}

	b.WriteString("\nData:\n")
	for _, line := range [][2]string{
		{sql.InsertUsage, "insert a row"},
		{sql.SelectUsage, "read rows, optionally filtered"},
		{sql.UpdateUsage, "update matching rows"},
		{sql.DeleteUsage, "delete matching rows, or all rows without where"},
		{sql.ExportUsage, "write a table as CSV"},
	} {
		fmt.Fprintf(&b, "  %s\n      %s\n", line[0], line[1])
	}

	b.WriteString("\nGeneral:\n")
	b.WriteString("  help\n      show this help\n")
	b.WriteString("  exit\n      leave the program")

	return b.String()
}
