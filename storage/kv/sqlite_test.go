package kv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studymate/studymate/core"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteGetMissingKey(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, core.ErrKeyNotFound)
}

func TestSQLiteSetGet(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Set(ctx, core.KeyNotes, `{"v":1,"data":[]}`))
	got, err := store.Get(ctx, core.KeyNotes)
	require.NoError(t, err)
	assert.Equal(t, `{"v":1,"data":[]}`, got)
}

func TestSQLiteSetOverwrites(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Set(ctx, core.KeyProfile, "first"))
	require.NoError(t, store.Set(ctx, core.KeyProfile, "second"))

	got, err := store.Get(ctx, core.KeyProfile)
	require.NoError(t, err)
	assert.Equal(t, "second", got)
}

func TestSQLiteKeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Set(ctx, core.KeyTasks, "tasks"))
	require.NoError(t, store.Set(ctx, core.KeySchedule, "schedule"))

	got, err := store.Get(ctx, core.KeyTasks)
	require.NoError(t, err)
	assert.Equal(t, "tasks", got)
}
