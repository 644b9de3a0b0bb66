package db

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nickyhof/PrimitiveDB/core"
	"github.com/nickyhof/PrimitiveDB/ps"
	"github.com/nickyhof/PrimitiveDB/sql"
)

// scriptReader replays fixed lines and then reports io.EOF.
type scriptReader struct {
	lines   []string
	prompts []string
}

func (r *scriptReader) ReadLine(prompt string) (string, error) {
	r.prompts = append(r.prompts, prompt)
	if len(r.lines) == 0 {
		return "", io.EOF
	}
	line := r.lines[0]
	r.lines = r.lines[1:]
	return line, nil
}

func runScript(t *testing.T, engine *Engine, lines ...string) (string, *scriptReader) {
	t.Helper()

	reader := &scriptReader{lines: lines}
	var out bytes.Buffer
	require.NoError(t, NewREPL(engine, reader, &out).Run())
	return out.String(), reader
}

func TestREPLSession(t *testing.T) {
	engine := setupTestEngine(t)

	out, _ := runScript(t, engine,
		`insert into users values ("Ann", 30)`,
		"",
		"select from users",
		"bogus",
		"exit",
		"select from users",
	)

	assert.Contains(t, out, "1 record(s) written, ID 1")
	assert.Contains(t, out, "| 1  | Ann  | 30  |")
	assert.Contains(t, out, `Error: unknown command: "bogus". Type help for the list of commands.`)
	assert.Contains(t, out, "Bye.")
	assert.Equal(t, 1, bytes.Count([]byte(out), []byte("| ID |")), "nothing runs after exit")
}

func TestREPLConfirmationUsesReader(t *testing.T) {
	engine := setupTestEngine(t)
	mustExecute(t, engine, `insert into users values ("Ann", 30)`)

	out, reader := runScript(t, engine,
		"delete from users",
		"no",
		"delete from users",
		" YES ",
	)

	assert.Contains(t, out, "Operation cancelled.")
	assert.Contains(t, out, "1 record(s) deleted")
	assert.Contains(t, reader.prompts, `Delete ALL rows from "users"? (yes/no): `)

	qr := mustExecute(t, engine, "select from users").(QueryResult)
	assert.Equal(t, 0, qr.RecordsRead)
}

func TestREPLEOFDuringConfirmationDeclines(t *testing.T) {
	engine := setupTestEngine(t)

	out, _ := runScript(t, engine, "drop_table users")
	assert.Contains(t, out, "Operation cancelled.")
	assert.Equal(t, []string{"users"}, engine.Schema.ListTables())
}

func TestREPLReadError(t *testing.T) {
	engine := setupTestEngine(t)
	boom := errors.New("boom")

	reader := failingReader{err: boom}
	err := NewREPL(engine, reader, io.Discard).Run()
	assert.ErrorIs(t, err, boom)
}

type failingReader struct{ err error }

func (r failingReader) ReadLine(string) (string, error) { return "", r.err }

func TestIsYes(t *testing.T) {
	for _, answer := range []string{"y", "Y", "yes", "YES", " Yes "} {
		assert.True(t, IsYes(answer), answer)
	}
	for _, answer := range []string{"", "n", "no", "yep", "sure"} {
		assert.False(t, IsYes(answer), answer)
	}
}

func TestDiagnostic(t *testing.T) {
	engine := setupTestEngine(t)

	tests := []struct {
		line     string
		expected string
	}{
		{"info", "Invalid format, usage: " + sql.InfoUsage},
		{`select from "users`, "Syntax error: "},
		{"info ghosts", "Error: table does not exist: ghosts"},
	}

	for _, tt := range tests {
		_, err := engine.Execute(tt.line)
		require.Error(t, err, tt.line)
		assert.Contains(t, Diagnostic(err), tt.expected, tt.line)
	}

	assert.Equal(t, "Storage error: storage error: disk gone",
		Diagnostic(fmt.Errorf("%w: disk gone", core.ErrIO)))
}

func TestREPLStartsOnUnreadableCatalog(t *testing.T) {
	persistence, err := ps.NewMemoryPersistence()
	require.NoError(t, err)

	identity := core.Identity{Name: "test", Email: "test@test.com"}
	_, err = persistence.Apply([]ps.Change{{Path: "db_meta.json", Data: []byte("{not json")}}, identity, "corrupt")
	require.NoError(t, err)

	engine := NewEngine(ps.NewDocuments(persistence, ps.JSONCodec{}, identity, nil), nil)
	require.NotNil(t, engine)
	assert.Empty(t, engine.Schema.ListTables())

	out, _ := runScript(t, engine,
		"list_tables",
		"create_table users name:str",
		"list_tables",
	)

	assert.Contains(t, out, "Storage error: storage error: failed to decode catalog")
	assert.Contains(t, out, "No tables.")
	assert.Contains(t, out, "| users |")
}
