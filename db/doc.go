// Package db provides the command engine for PrimitiveDB.
//
// The Engine type is the main entry point for executing commands. It
// parses a command line, runs it through a small handler pipeline
// (validate, confirm, time, invalidate cache) and returns a Result.
//
// # Engine Usage
//
//	engine := db.NewEngine(documents, logger)
//	result, err := engine.Execute("select from users where name = Ann")
//	if err != nil {
//	    fmt.Println(db.Diagnostic(err))
//	}
//	result.Display(os.Stdout)
//
// # Result Types
//
//   - QueryResult: returned by select, info and list_tables
//   - CommitResult: returned by create_table, drop_table, insert, update,
//     delete and export
//   - MessageResult: help text, empty listings and cancelled confirmations
//   - ExitResult: returned by exit
//
// # Interactive Loop
//
// REPL reads lines from a LineReader, reloads the catalog before every
// command and prints results or diagnostics. Destructive commands
// (drop_table and delete without where) are confirmed on the same reader.
package db
