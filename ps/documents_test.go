package ps

import (
	"bytes"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nickyhof/PrimitiveDB/core"
)

func mustTable(t *testing.T, name string, specs ...string) core.Table {
	t.Helper()
	table, err := core.NewTable(name, specs)
	require.NoError(t, err)
	return table
}

func storesUnderTest(t *testing.T) map[string]*Documents {
	t.Helper()

	memory, err := NewMemoryPersistence()
	require.NoError(t, err)

	file, err := NewFilePersistence(t.TempDir())
	require.NoError(t, err)

	bolt, err := NewBoltPersistence(filepath.Join(t.TempDir(), "primitive.db"))
	require.NoError(t, err)
	t.Cleanup(func() { bolt.Close() })

	return map[string]*Documents{
		"git memory json": NewDocuments(memory, JSONCodec{}, testIdentity, nil),
		"git file json":   NewDocuments(file, JSONCodec{}, testIdentity, nil),
		"bolt msgpack":    NewDocuments(bolt, MsgpackCodec{}, testIdentity, nil),
	}
}

func TestDocumentsCatalogLifecycle(t *testing.T) {
	for name, docs := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			catalog, err := docs.LoadCatalog()
			require.NoError(t, err)
			assert.Equal(t, 0, catalog.Len())

			zebra := mustTable(t, "zebra", "stripes:int")
			apple := mustTable(t, "apple", "color:str", "ripe:bool")

			catalog = catalog.With(zebra)
			require.NoError(t, docs.CreateTable(catalog, zebra))
			catalog = catalog.With(apple)
			require.NoError(t, docs.CreateTable(catalog, apple))

			loaded, err := docs.LoadCatalog()
			require.NoError(t, err)
			assert.Equal(t, []string{"zebra", "apple"}, loaded.Names())

			got, ok := loaded.Get("apple")
			require.True(t, ok)
			assert.Equal(t, []string{"ID:int", "color:str", "ripe:bool"}, got.Specs())

			rows, err := docs.LoadRows(apple)
			require.NoError(t, err)
			assert.Empty(t, rows)

			require.NoError(t, docs.DropTable(loaded.Without("zebra"), "zebra"))

			loaded, err = docs.LoadCatalog()
			require.NoError(t, err)
			assert.Equal(t, []string{"apple"}, loaded.Names())

			_, exists, err := docs.Store().ReadFile(docs.RowsPath("zebra"))
			require.NoError(t, err)
			assert.False(t, exists)
		})
	}
}

func TestDocumentsRowsRoundTrip(t *testing.T) {
	for name, docs := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			users := mustTable(t, "users", "name:str", "age:int", "active:bool")
			require.NoError(t, docs.CreateTable(core.NewCatalog(users), users))

			rows := []core.Row{
				{"ID": int64(1), "name": "Ann", "age": int64(30), "active": true},
				{"ID": int64(2), "name": "Bob, Jr.", "age": int64(-4), "active": false},
			}
			require.NoError(t, docs.SaveRows(users, rows, "insert"))

			loaded, err := docs.LoadRows(users)
			require.NoError(t, err)
			assert.Equal(t, rows, loaded)
		})
	}
}

func TestDocumentsJSONLayout(t *testing.T) {
	memory, err := NewMemoryPersistence()
	require.NoError(t, err)
	docs := NewDocuments(memory, JSONCodec{}, testIdentity, nil)

	users := mustTable(t, "users", "name:str", "age:int")
	require.NoError(t, docs.CreateTable(core.NewCatalog(users), users))
	require.NoError(t, docs.SaveRows(users, []core.Row{
		{"age": int64(30), "name": "Ann", "ID": int64(1)},
	}, "insert"))

	assert.Equal(t, "db_meta.json", docs.CatalogPath())
	assert.Equal(t, "data/users.json", docs.RowsPath("users"))

	data, _, err := memory.ReadFile("db_meta.json")
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"users\": [\n        \"ID:int\",\n        \"name:str\",\n        \"age:int\"\n    ]\n}", string(data))

	data, _, err = memory.ReadFile("data/users.json")
	require.NoError(t, err)
	assert.Equal(t, "[\n    {\n        \"ID\": 1,\n        \"name\": \"Ann\",\n        \"age\": 30\n    }\n]", string(data))
}

func TestDocumentsCorruptCatalogIsIOError(t *testing.T) {
	memory, err := NewMemoryPersistence()
	require.NoError(t, err)

	_, err = memory.Apply([]Change{{Path: "db_meta.json", Data: []byte("{not json")}}, testIdentity, "corrupt")
	require.NoError(t, err)

	docs := NewDocuments(memory, JSONCodec{}, testIdentity, nil)
	_, err = docs.LoadCatalog()
	assert.ErrorIs(t, err, core.ErrIO)
}

func TestDocumentsStoredTypeMismatchIsIOError(t *testing.T) {
	memory, err := NewMemoryPersistence()
	require.NoError(t, err)

	_, err = memory.Apply([]Change{{Path: "data/users.json", Data: []byte(`[{"ID": "one"}]`)}}, testIdentity, "bad")
	require.NoError(t, err)

	docs := NewDocuments(memory, JSONCodec{}, testIdentity, nil)
	_, err = docs.LoadRows(mustTable(t, "users"))
	assert.ErrorIs(t, err, core.ErrIO)
	assert.ErrorIs(t, err, core.ErrTypeConversion)
}

func TestParseCodec(t *testing.T) {
	codec, err := ParseCodec("JSON")
	require.NoError(t, err)
	assert.Equal(t, "json", codec.Extension())

	codec, err = ParseCodec("msgpack")
	require.NoError(t, err)
	assert.Equal(t, "msgpack", codec.Extension())

	_, err = ParseCodec("yaml")
	assert.Error(t, err)
}

// failingStore reads nothing and refuses every write.
type failingStore struct {
	err     error
	applied int
}

func (s *failingStore) ReadFile(string) ([]byte, bool, error) { return nil, false, nil }

func (s *failingStore) Apply(changes []Change, _ core.Identity, _ string) (Transaction, error) {
	s.applied += len(changes)
	return Transaction{}, s.err
}

func (s *failingStore) Close() error { return nil }

func TestDocumentsFailedCommitIsIOError(t *testing.T) {
	boom := errors.New("disk full")
	store := &failingStore{err: boom}

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	docs := NewDocuments(store, JSONCodec{}, testIdentity, logger)

	table := mustTable(t, "users", "name:str")
	err := docs.CreateTable(core.NewCatalog().With(table), table)
	require.ErrorIs(t, err, core.ErrIO)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 2, store.applied)
	assert.Contains(t, logs.String(), "documents not written")
	assert.Contains(t, logs.String(), "changes=2")

	err = docs.SaveRows(table, []core.Row{{core.IDColumn: int64(1), "name": "Ann"}}, "insert")
	require.ErrorIs(t, err, core.ErrIO)
	assert.Equal(t, 3, store.applied, "a failed batch is not carried into the next commit")
}
