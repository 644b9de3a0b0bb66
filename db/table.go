package db

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/nickyhof/PrimitiveDB/core"
)

// SimpleTable renders rows as a boxed text grid. Widths are counted in
// runes, so names like "имя" line up.
type SimpleTable struct {
	writer  io.Writer
	headers []string
	rows    [][]string
}

// NewTable creates a table that renders to w
func NewTable(w io.Writer) *SimpleTable {
	return &SimpleTable{
		writer: w,
		rows:   make([][]string, 0),
	}
}

// Header sets the column titles
func (t *SimpleTable) Header(headers []string) {
	t.headers = headers
}

// Bulk appends rows in display order
func (t *SimpleTable) Bulk(rows [][]string) {
	t.rows = append(t.rows, rows...)
}

// Render outputs the formatted table
func (t *SimpleTable) Render() {
	if len(t.headers) == 0 && len(t.rows) == 0 {
		return
	}

	colWidths := t.calculateWidths()
	separator := t.buildSeparator(colWidths)

	fmt.Fprintln(t.writer, separator)

	// Header block
	if len(t.headers) > 0 {
		fmt.Fprintln(t.writer, t.formatRow(t.headers, colWidths))
		fmt.Fprintln(t.writer, separator)
	}

	for _, row := range t.rows {
		fmt.Fprintln(t.writer, t.formatRow(row, colWidths))
	}

	fmt.Fprintln(t.writer, separator)
}

// calculateWidths measures cells in runes so non-ASCII values line up.
func (t *SimpleTable) calculateWidths() []int {
	numCols := len(t.headers)
	for _, row := range t.rows {
		if len(row) > numCols {
			numCols = len(row)
		}
	}

	widths := make([]int, numCols)

	for i, h := range t.headers {
		widths[i] = max(widths[i], utf8.RuneCountInString(h))
	}

	for _, row := range t.rows {
		for i, cell := range row {
			widths[i] = max(widths[i], utf8.RuneCountInString(cell))
		}
	}

	for i := range widths {
		widths[i] = max(widths[i], 1)
	}

	return widths
}

// buildSeparator draws a +----+ rule for the given widths
func (t *SimpleTable) buildSeparator(widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strings.Repeat("-", w+2)
	}
	return "+" + strings.Join(parts, "+") + "+"
}

// formatRow pads each cell to its column width. Short rows get empty cells.
func (t *SimpleTable) formatRow(row []string, widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		parts[i] = " " + cell + strings.Repeat(" ", w-utf8.RuneCountInString(cell)+1)
	}
	return "|" + strings.Join(parts, "|") + "|"
}

// tableData lays rows out in column order for rendering.
func tableData(columns []string, rows []core.Row) [][]string {
	data := make([][]string, len(rows))
	for i, row := range rows {
		data[i] = row.Strings(columns)
	}
	return data
}
