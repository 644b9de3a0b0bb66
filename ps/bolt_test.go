package ps

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoltPersistenceRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "primitive.db")

	store, err := NewBoltPersistence(path)
	require.NoError(t, err)

	_, exists, err := store.ReadFile("db_meta.msgpack")
	require.NoError(t, err)
	assert.False(t, exists, "empty file has no documents")

	txn, err := store.Apply([]Change{
		{Path: "db_meta.msgpack", Data: []byte{0x80}},
		{Path: "data/users.msgpack", Data: []byte{0x90}},
	}, testIdentity, "create table users")
	require.NoError(t, err)
	assert.NotEmpty(t, txn.Id)

	_, err = store.Apply([]Change{{Path: "data/users.msgpack", Delete: true}}, testIdentity, "drop table users")
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := NewBoltPersistence(path)
	require.NoError(t, err)
	defer reopened.Close()

	data, exists, err := reopened.ReadFile("db_meta.msgpack")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, []byte{0x80}, data)

	_, exists, err = reopened.ReadFile("data/users.msgpack")
	require.NoError(t, err)
	assert.False(t, exists)
}
