package kv

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStores(t *testing.T) {
	sqliteStore, err := OpenSQLite(filepath.Join(t.TempDir(), "kv.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqliteStore.Close() })

	stores := map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": sqliteStore,
	}

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := store.Get(ctx, "resume_info")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, store.Set(ctx, "resume_info", []byte(`{"fileName":"a.pdf"}`)))
			got, err := store.Get(ctx, "resume_info")
			require.NoError(t, err)
			assert.JSONEq(t, `{"fileName":"a.pdf"}`, string(got))

			require.NoError(t, store.Set(ctx, "resume_info", []byte(`{"originalName":"b.pdf"}`)))
			got, err = store.Get(ctx, "resume_info")
			require.NoError(t, err)
			assert.JSONEq(t, `{"originalName":"b.pdf"}`, string(got), "set must overwrite, not merge")

			require.NoError(t, store.Delete(ctx, "resume_info"))
			require.NoError(t, store.Delete(ctx, "resume_info"), "deleting an absent key must succeed")
			_, err = store.Get(ctx, "resume_info")
			assert.ErrorIs(t, err, ErrNotFound)

			assert.NoError(t, store.Ping(ctx))
		})
	}
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	store := NewMemoryStore()
	value := []byte(`{"a":1}`)
	require.NoError(t, store.Set(context.Background(), "k", value))

	value[2] = 'b'
	got, err := store.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(got))
}

func TestOpenSQLiteRequiresPath(t *testing.T) {
	_, err := OpenSQLite("")
	assert.Error(t, err)
}
