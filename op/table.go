package op

import (
	"fmt"
	"log/slog"

	"github.com/nickyhof/PrimitiveDB/core"
	"github.com/nickyhof/PrimitiveDB/ps"
)

type TableOp struct {
	Table     core.Table
	Documents *ps.Documents
	Logger    *slog.Logger
}

// UpdateResult reports how many rows matched the filter and how many of
// them received at least one assignment.
type UpdateResult struct {
	Matched int
	Updated int
}

func GetTable(schema *SchemaOp, name string) (*TableOp, error) {
	table, err := schema.Table(name)
	if err != nil {
		return nil, err
	}

	return &TableOp{
		Table:     table,
		Documents: schema.Documents,
	}, nil
}

// WithLogger sets the logger used to report skipped assignments.
func (op *TableOp) WithLogger(logger *slog.Logger) *TableOp {
	op.Logger = logger
	return op
}

func (op *TableOp) log() *slog.Logger {
	if op.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return op.Logger
}

func (op *TableOp) Rows() ([]core.Row, error) {
	return op.Documents.LoadRows(op.Table)
}

func (op *TableOp) Count() (int, error) {
	rows, err := op.Rows()
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

// Insert coerces one literal per non-ID column and appends the row with the
// next ID. Nothing is written when any literal fails.
func (op *TableOp) Insert(literals []string) (core.Row, error) {
	if len(literals) != len(op.Table.Columns)-1 {
		return nil, fmt.Errorf("%w: %s expects %d values, got %d",
			core.ErrArity, op.Table.Name, len(op.Table.Columns)-1, len(literals))
	}

	rows, err := op.Rows()
	if err != nil {
		return nil, err
	}

	row := core.Row{core.IDColumn: core.NextID(rows)}
	for i, column := range op.Table.Columns[1:] {
		value, err := core.Coerce(literals[i], column.Type)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", column.Name, err)
		}
		row[column.Name] = value
	}

	rows = append(rows, row)
	if err := op.Documents.SaveRows(op.Table, rows, fmt.Sprintf("insert into %s", op.Table.Name)); err != nil {
		return nil, err
	}
	return row, nil
}

// Select returns the rows matching filter in storage order. A nil filter
// returns every row.
func (op *TableOp) Select(filter core.Clause) ([]core.Row, error) {
	rows, err := op.Rows()
	if err != nil {
		return nil, err
	}

	if filter == nil {
		return rows, nil
	}

	matched := make([]core.Row, 0)
	for _, row := range rows {
		if row.Matches(filter) {
			matched = append(matched, row)
		}
	}
	return matched, nil
}

// Update applies set to every row matching where. Assignments to unknown
// columns or to ID are ignored, and a literal that does not coerce skips
// only that assignment.
func (op *TableOp) Update(set, where core.Clause) (UpdateResult, error) {
	rows, err := op.Rows()
	if err != nil {
		return UpdateResult{}, err
	}

	var result UpdateResult
	for _, row := range rows {
		if !row.Matches(where) {
			continue
		}
		result.Matched++

		changed := false
		for _, assignment := range set {
			column, exists := op.Table.Column(assignment.Column)
			if !exists || column.Name == core.IDColumn {
				op.log().Debug("assignment ignored", "table", op.Table.Name, "column", assignment.Column)
				continue
			}

			value, err := core.Coerce(assignment.Value, column.Type)
			if err != nil {
				op.log().Warn("assignment skipped", "table", op.Table.Name, "id", row.ID(), "column", column.Name, "error", err)
				continue
			}
			row[column.Name] = value
			changed = true
		}
		if changed {
			result.Updated++
		}
	}

	if result.Matched == 0 {
		return result, nil
	}

	if err := op.Documents.SaveRows(op.Table, rows, fmt.Sprintf("update %s", op.Table.Name)); err != nil {
		return UpdateResult{}, err
	}
	return result, nil
}

// Delete removes the rows matching filter, or all rows for a nil filter.
func (op *TableOp) Delete(filter core.Clause) (int, error) {
	rows, err := op.Rows()
	if err != nil {
		return 0, err
	}

	kept := make([]core.Row, 0, len(rows))
	for _, row := range rows {
		if filter != nil && !row.Matches(filter) {
			kept = append(kept, row)
		}
	}

	deleted := len(rows) - len(kept)
	if deleted == 0 {
		return 0, nil
	}

	if err := op.Documents.SaveRows(op.Table, kept, fmt.Sprintf("delete from %s", op.Table.Name)); err != nil {
		return 0, err
	}
	return deleted, nil
}
