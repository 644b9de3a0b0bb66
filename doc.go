// Package PrimitiveDB is a small single-user table store driven by a
// line-oriented command language.
//
// Tables have a fixed schema of int, str and bool columns plus an
// auto-assigned ID. The catalog and each table's rows are stored as whole
// documents in a pluggable store: a git repository where every write is a
// commit, a bbolt file, or memory.
//
// # Quick Start
//
//	store, _ := PrimitiveDB.OpenBackend(PrimitiveDB.BackendMemory, "", nil)
//	instance := PrimitiveDB.Open(store, nil)
//	engine := instance.Engine(core.Identity{Name: "App", Email: "app@example.com"}, nil)
//
//	engine.Execute("create_table users name:str age:int")
//	engine.Execute(`insert into users values ("Ann", 30)`)
//
//	result, _ := engine.Execute("select from users where age = 30")
//	result.Display(os.Stdout)
//
// # Commands
//
//   - create_table, drop_table, list_tables, info
//   - insert, select, update, delete with a single equality where clause
//   - export of a table as CSV to a local path or an s3:// URL
//   - help, exit
//
// drop_table and an unfiltered delete ask for confirmation first.
package PrimitiveDB
