package core

// Catalog is the ordered set of table definitions. Order is creation order.
type Catalog struct {
	tables []Table
}

func NewCatalog(tables ...Table) Catalog {
	return Catalog{tables: append([]Table(nil), tables...)}
}

func (c Catalog) Len() int {
	return len(c.tables)
}

func (c Catalog) Tables() []Table {
	return append([]Table(nil), c.tables...)
}

func (c Catalog) Names() []string {
	names := make([]string, len(c.tables))
	for i, table := range c.tables {
		names[i] = table.Name
	}
	return names
}

func (c Catalog) Get(name string) (Table, bool) {
	for _, table := range c.tables {
		if table.Name == name {
			return table, true
		}
	}
	return Table{}, false
}

// With returns a copy of the catalog with table appended.
func (c Catalog) With(table Table) Catalog {
	tables := make([]Table, 0, len(c.tables)+1)
	tables = append(tables, c.tables...)
	return Catalog{tables: append(tables, table)}
}

// Without returns a copy of the catalog without the named table.
func (c Catalog) Without(name string) Catalog {
	tables := make([]Table, 0, len(c.tables))
	for _, table := range c.tables {
		if table.Name != name {
			tables = append(tables, table)
		}
	}
	return Catalog{tables: tables}
}
