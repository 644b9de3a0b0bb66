// Package sql provides lexing and parsing for the PrimitiveDB command
// language.
//
// The package includes a quote-aware lexer that splits a command line into
// tokens, the WHERE/SET clause parsers, and a parser that turns a command
// line into a typed statement.
//
// # Lexer Usage
//
//	lexer := sql.NewLexer(`insert into users values ("Ann Lee", 30)`)
//	for {
//	    token, ok, err := lexer.NextToken()
//	    if err != nil || !ok {
//	        break
//	    }
//	    fmt.Printf("%q (raw %q)\n", token.Value, token.Raw)
//	}
//
// # Parser Usage
//
//	statement, err := sql.NewParser("select from users where age = 30").Parse()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Supported Statements
//
//   - CreateTableStatement: create_table <name> <col:type> ...
//   - ListTablesStatement:  list_tables
//   - DropTableStatement:   drop_table <name>
//   - InfoStatement:        info <name>
//   - InsertStatement:      insert into <name> values (<v1>, <v2>, ...)
//   - SelectStatement:      select from <name> [where <col> = <value>]
//   - UpdateStatement:      update <name> set <col>=<val>[, ...] where <col>=<value>
//   - DeleteStatement:      delete from <name> [where <col> = <value>]
//   - ExportStatement:      export <name> <path>
//   - HelpStatement, ExitStatement
//
// Filters support a single equality only; SET accepts a comma separated
// list of assignments. Fragments without '=' inside a SET list are dropped.
package sql
