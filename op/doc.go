// Package op provides the schema and row operations of PrimitiveDB.
//
// The op package sits between the command engine (db/) and the persistence
// layer (ps/). It owns validation, ID assignment, value coercion and filter
// matching; ps only moves whole documents.
//
// # SchemaOp
//
// SchemaOp wraps catalog-level operations:
//
//	schema, err := op.LoadSchema(documents)
//	tableOp, err := schema.CreateTable("users", []string{"name:str", "age:int"})
//	names := schema.ListTables()                 // insertion order
//	table, count, err := schema.Describe("users")
//	err = schema.DropTable("users")
//
// # TableOp
//
// TableOp wraps row-level operations on one table:
//
//	tableOp, err := op.GetTable(schema, "users")
//
//	row, err := tableOp.Insert([]string{`"Ann"`, "30"})
//	rows, err := tableOp.Select(core.Clause{{Column: "age", Value: "30"}})
//	result, err := tableOp.Update(set, where)    // UpdateResult{Matched, Updated}
//	deleted, err := tableOp.Delete(nil)          // nil filter deletes every row
//
// # Architecture
//
// The layering is:
//
//	Command Parser (sql/)
//	     ↓
//	Command Engine (db/)
//	     ↓
//	Operations (op/)     ← This package
//	     ↓
//	Documents (ps/)
//	     ↓
//	Git or bbolt storage
package op
