package storage

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/containerd/errdefs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFileStore_EmptyDir(t *testing.T) {
	_, err := NewFileStore("")
	require.Error(t, err)
	assert.True(t, errdefs.IsInvalidArgument(err))
}

func TestNewFileStore_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	_, err := NewFileStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestFileStore_Path(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	p, err := s.Path("mermaider-snippets")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "mermaider-snippets.json"), p)

	for _, bad := range []string{"", ".", "..", "a/b", `a\b`, "../escape"} {
		_, err := s.Path(bad)
		assert.Truef(t, errdefs.IsInvalidArgument(err), "key %q should be rejected", bad)
	}
}

func TestFileStore_WritesPlainFile(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, s.SetItem(context.Background(), "mermaider-snippets", "[]"))

	data, err := os.ReadFile(filepath.Join(dir, "mermaider-snippets.json"))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	// no temp files left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileStore_SharedDirectory(t *testing.T) {
	dir := t.TempDir()
	a, err := NewFileStore(dir)
	require.NoError(t, err)
	b, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, a.SetItem(context.Background(), "k", "from-a"))

	v, ok, err := b.GetItem(context.Background(), "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "from-a", v)
}

func TestFileStore_CanceledContext(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, s.SetItem(ctx, "k", "v"), context.Canceled)
	_, _, err = s.GetItem(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, s.RemoveItem(ctx, "k"), context.Canceled)
}

func TestFileStore_WatchRequiresCallback(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, s.Watch(context.Background(), nil))
}

func TestFileStore_WatchReportsExternalWrites(t *testing.T) {
	dir := t.TempDir()
	watched, err := NewFileStore(dir, WithDebounce(20*time.Millisecond))
	require.NoError(t, err)
	writer, err := NewFileStore(dir)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var keys []string
	require.NoError(t, watched.Watch(ctx, func(key string) {
		mu.Lock()
		defer mu.Unlock()
		keys = append(keys, key)
	}))

	require.NoError(t, writer.SetItem(context.Background(), "mermaider-snippets", "[]"))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(keys) > 0
	}, 2*time.Second, 10*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	for _, k := range keys {
		assert.Equal(t, "mermaider-snippets", k)
	}
}

func TestFileStore_WatchStopsOnCancel(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir, WithDebounce(10*time.Millisecond))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())

	var mu sync.Mutex
	calls := 0
	require.NoError(t, s.Watch(ctx, func(string) {
		mu.Lock()
		calls++
		mu.Unlock()
	}))
	cancel()
	time.Sleep(50 * time.Millisecond)

	require.NoError(t, s.SetItem(context.Background(), "k", "v"))
	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Zero(t, calls)
}

func TestKeyFromPath(t *testing.T) {
	tests := []struct {
		path   string
		key    string
		wanted bool
	}{
		{"/data/mermaider-snippets.json", "mermaider-snippets", true},
		{"/data/mermaider-snippets.json.tmp-12345", "", false},
		{"/data/.json", "", false},
		{"/data/notes.txt", "", false},
	}
	for _, tt := range tests {
		key, ok := keyFromPath(tt.path)
		assert.Equal(t, tt.wanted, ok, tt.path)
		assert.Equal(t, tt.key, key, tt.path)
	}
}
