package kv

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStores(t *testing.T) map[string]Store {
	t.Helper()
	sqlite, err := NewSQLiteStore(filepath.Join(t.TempDir(), "kv.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close() })

	return map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": sqlite,
	}
}

func TestStoreGetSetDelete(t *testing.T) {
	ctx := context.Background()
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := store.Get(ctx, "user:u1:transactions")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, store.Set(ctx, "user:u1:transactions", []byte(`[]`)))
			v, ok, err := store.Get(ctx, "user:u1:transactions")
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, `[]`, string(v))

			// overwrite replaces the whole value
			require.NoError(t, store.Set(ctx, "user:u1:transactions", []byte(`[{"id":"1"}]`)))
			v, _, err = store.Get(ctx, "user:u1:transactions")
			require.NoError(t, err)
			assert.Equal(t, `[{"id":"1"}]`, string(v))

			require.NoError(t, store.Delete(ctx, "user:u1:transactions"))
			_, ok, err = store.Get(ctx, "user:u1:transactions")
			require.NoError(t, err)
			assert.False(t, ok)

			// deleting an absent key is fine
			require.NoError(t, store.Delete(ctx, "user:u1:transactions"))
		})
	}
}

func TestStoreListByPrefix(t *testing.T) {
	ctx := context.Background()
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Set(ctx, "user:u1:budgets", []byte(`[]`)))
			require.NoError(t, store.Set(ctx, "user:u1:goals", []byte(`[]`)))
			require.NoError(t, store.Set(ctx, "user:u2:budgets", []byte(`[]`)))

			entries, err := store.List(ctx, "user:u1:")
			require.NoError(t, err)
			require.Len(t, entries, 2)
			assert.Equal(t, "user:u1:budgets", entries[0].Key)
			assert.Equal(t, "user:u1:goals", entries[1].Key)
		})
	}
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "kv.db")

	store, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "session:tok", []byte("u1")))
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	v, ok, err := reopened.Get(ctx, "session:tok")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "u1", string(v))
}
