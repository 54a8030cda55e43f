package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSQLiteStore_EmptyPath(t *testing.T) {
	_, err := OpenSQLiteStore("")
	assert.Error(t, err)
}

func TestSQLiteStore_Memory(t *testing.T) {
	s, err := OpenSQLiteStore(":memory:")
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	require.NoError(t, s.SetItem(ctx, "k", "v"))

	v, ok, err := s.GetItem(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "kv.db")
	ctx := context.Background()

	s, err := OpenSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, s.SetItem(ctx, "mermaider-snippets", `[{"id":"snippet-1"}]`))
	require.NoError(t, s.Close())

	reopened, err := OpenSQLiteStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	v, ok, err := reopened.GetItem(ctx, "mermaider-snippets")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"snippet-1"}]`, v)
}

func TestSQLiteStore_ClosedDatabase(t *testing.T) {
	s, err := OpenSQLiteStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, _, err = s.GetItem(context.Background(), "k")
	assert.Error(t, err)
	assert.Error(t, s.SetItem(context.Background(), "k", "v"))
}
