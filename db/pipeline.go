package db

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/nickyhof/PrimitiveDB/op"
	"github.com/nickyhof/PrimitiveDB/sql"
)

// Confirmer asks the user a yes/no question before a destructive command.
type Confirmer interface {
	Confirm(question string) (bool, error)
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(question string) (bool, error)

func (f ConfirmFunc) Confirm(question string) (bool, error) { return f(question) }

// command is a parsed statement plus what the pipeline needs to know
// about it.
type command struct {
	statement sql.Statement
	table     string
	// create is set for create_table, the only table command whose table
	// must not exist yet
	create  bool
	mutates bool
	// question is non-empty for destructive commands
	question string
}

type handler func(cmd command) (Result, error)

type middleware func(next handler) handler

// chain wraps h so that middlewares[0] runs first.
func chain(h handler, middlewares ...middleware) handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

func describeCommand(statement sql.Statement) command {
	cmd := command{statement: statement}

	switch s := statement.(type) {
	case sql.CreateTableStatement:
		cmd.table, cmd.create, cmd.mutates = s.Table, true, true
	case sql.DropTableStatement:
		cmd.table, cmd.mutates = s.Table, true
		cmd.question = fmt.Sprintf("Drop table %q and all of its rows?", s.Table)
	case sql.InfoStatement:
		cmd.table = s.Table
	case sql.InsertStatement:
		cmd.table, cmd.mutates = s.Table, true
	case sql.SelectStatement:
		cmd.table = s.Table
	case sql.UpdateStatement:
		cmd.table, cmd.mutates = s.Table, true
	case sql.DeleteStatement:
		cmd.table, cmd.mutates = s.Table, true
		if s.Where == nil {
			cmd.question = fmt.Sprintf("Delete ALL rows from %q?", s.Table)
		}
	case sql.ExportStatement:
		cmd.table = s.Table
	}

	return cmd
}

// withValidation rejects commands on unknown tables before anything is
// asked or written.
func withValidation(schema *op.SchemaOp) middleware {
	return func(next handler) handler {
		return func(cmd command) (Result, error) {
			if cmd.table != "" && !cmd.create {
				if _, err := schema.Table(cmd.table); err != nil {
					return nil, err
				}
			}
			return next(cmd)
		}
	}
}

// withConfirmation gates destructive commands. A declined answer leaves
// all state untouched.
func withConfirmation(confirmer Confirmer) middleware {
	return func(next handler) handler {
		return func(cmd command) (Result, error) {
			if cmd.question == "" {
				return next(cmd)
			}

			if confirmer == nil {
				return MessageResult{Text: "Operation cancelled."}, nil
			}

			ok, err := confirmer.Confirm(cmd.question)
			if err != nil {
				return nil, err
			}
			if !ok {
				return MessageResult{Text: "Operation cancelled."}, nil
			}
			return next(cmd)
		}
	}
}

// withTiming records the execution time on the result and logs it.
func withTiming(logger *slog.Logger) middleware {
	return func(next handler) handler {
		return func(cmd command) (Result, error) {
			start := time.Now()
			result, err := next(cmd)
			elapsed := time.Since(start)

			logger.Debug("command executed", "type", cmd.statement.Type(), "table", cmd.table, "elapsed", elapsed, "error", err)

			switch r := result.(type) {
			case QueryResult:
				r.ExecutionTimeSec = elapsed.Seconds()
				result = r
			case CommitResult:
				r.ExecutionTimeSec = elapsed.Seconds()
				result = r
			}
			return result, err
		}
	}
}

// withCacheInvalidation drops cached selects of the table a command
// touches. Only mutating commands invalidate.
func withCacheInvalidation(cache *Cache) middleware {
	return func(next handler) handler {
		return func(cmd command) (Result, error) {
			result, err := next(cmd)
			if cmd.mutates && cmd.table != "" {
				cache.Invalidate(cmd.table)
			}
			return result, err
		}
	}
}
