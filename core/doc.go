// Package core provides core types used throughout PrimitiveDB.
//
// The package defines fundamental types like Identity, Table, Column,
// Catalog, Row and Clause, the column type constants, value coercion and
// the error taxonomy shared by every layer.
//
// # Identity
//
// Identity identifies the author of changes (Git commit author when the
// git store is used):
//
//	identity := core.Identity{
//	    Name:  "John Doe",
//	    Email: "john@example.com",
//	}
//
// # Column Types
//
// Supported column types:
//   - IntType: 64-bit signed integers ("int")
//   - StrType: strings ("str")
//   - BoolType: true/false ("bool")
//
// # Table Definition
//
// Every table starts with the synthetic ID column:
//
//	table, err := core.NewTable("users", []string{"name:str", "age:int"})
//	// table.Columns = ID:int, name:str, age:int
//
// # Coercion
//
// Literals typed by the user are converted against the declared column type:
//
//	v, err := core.Coerce("30", core.IntType)      // int64(30)
//	v, err = core.Coerce(`"Ann"`, core.StrType)    // "Ann"
//	v, err = core.Coerce("TRUE", core.BoolType)    // true
package core
