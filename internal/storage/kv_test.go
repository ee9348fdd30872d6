package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteKVPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	db, err := OpenDB(dir)
	require.NoError(t, err)
	kv := NewSQLiteKV(db)

	_, ok, err := kv.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set("k", "one"))
	require.NoError(t, kv.Set("k", "two"))
	require.NoError(t, db.Close())

	db, err = OpenDB(dir)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	v, ok, err := NewSQLiteKV(db).Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "two", v)
}

func TestMemoryKV(t *testing.T) {
	kv := NewMemoryKV()
	_, ok, err := kv.Get("k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set("k", "v"))
	v, ok, _ := kv.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}
