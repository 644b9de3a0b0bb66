package db

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nickyhof/PrimitiveDB/core"
)

func TestSimpleTableAlignsRunes(t *testing.T) {
	var out bytes.Buffer

	table := NewTable(&out)
	table.Header([]string{"ID", "имя"})
	table.Bulk([][]string{{"1", "Анна"}, {"2"}})
	table.Render()

	assert.Equal(t, "+----+------+\n"+
		"| ID | имя  |\n"+
		"+----+------+\n"+
		"| 1  | Анна |\n"+
		"| 2  |      |\n"+
		"+----+------+\n", out.String())
}

func TestSimpleTableEmpty(t *testing.T) {
	var out bytes.Buffer
	NewTable(&out).Render()
	assert.Empty(t, out.String())
}

func TestTableDataFollowsColumnOrder(t *testing.T) {
	rows := []core.Row{{core.IDColumn: int64(1), "имя": "Анна", "age": int64(30)}}
	assert.Equal(t, [][]string{{"30", "Анна", "1"}}, tableData([]string{"age", "имя", core.IDColumn}, rows))
}
