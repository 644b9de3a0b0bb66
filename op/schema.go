package op

import (
	"fmt"

	"github.com/nickyhof/PrimitiveDB/core"
	"github.com/nickyhof/PrimitiveDB/ps"
)

// SchemaOp holds the catalog of one database session and applies schema
// changes through the document gateway.
type SchemaOp struct {
	Catalog   core.Catalog
	Documents *ps.Documents
}

// LoadSchema reads the catalog from documents. The returned schema is
// always usable: when the catalog cannot be read it starts empty and the
// error is returned alongside it.
func LoadSchema(documents *ps.Documents) (*SchemaOp, error) {
	op := &SchemaOp{
		Catalog:   core.NewCatalog(),
		Documents: documents,
	}
	return op, op.Reload()
}

// Reload replaces the in-memory catalog with the stored one. On failure
// the previous catalog is kept.
func (op *SchemaOp) Reload() error {
	catalog, err := op.Documents.LoadCatalog()
	if err != nil {
		return err
	}
	op.Catalog = catalog
	return nil
}

// CreateTable adds a table with an ID:int column followed by specs and
// writes an empty row document for it.
func (op *SchemaOp) CreateTable(name string, specs []string) (*TableOp, error) {
	if _, exists := op.Catalog.Get(name); exists {
		return nil, fmt.Errorf("%w: %s", core.ErrDuplicateTable, name)
	}

	table, err := core.NewTable(name, specs)
	if err != nil {
		return nil, err
	}

	next := op.Catalog.With(table)
	if err := op.Documents.CreateTable(next, table); err != nil {
		return nil, err
	}
	op.Catalog = next

	return &TableOp{Table: table, Documents: op.Documents}, nil
}

// DropTable removes the catalog entry and the row document of name.
func (op *SchemaOp) DropTable(name string) error {
	if _, exists := op.Catalog.Get(name); !exists {
		return fmt.Errorf("%w: %s", core.ErrUnknownTable, name)
	}

	next := op.Catalog.Without(name)
	if err := op.Documents.DropTable(next, name); err != nil {
		return err
	}
	op.Catalog = next
	return nil
}

func (op *SchemaOp) ListTables() []string {
	return op.Catalog.Names()
}

func (op *SchemaOp) Table(name string) (core.Table, error) {
	table, exists := op.Catalog.Get(name)
	if !exists {
		return core.Table{}, fmt.Errorf("%w: %s", core.ErrUnknownTable, name)
	}
	return table, nil
}

// Describe returns the schema of name and its current row count.
func (op *SchemaOp) Describe(name string) (core.Table, int, error) {
	tableOp, err := GetTable(op, name)
	if err != nil {
		return core.Table{}, 0, err
	}

	count, err := tableOp.Count()
	if err != nil {
		return core.Table{}, 0, err
	}
	return tableOp.Table, count, nil
}
