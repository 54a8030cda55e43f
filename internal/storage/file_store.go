package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bassista/mermaider/internal/logger"
	"github.com/containerd/errdefs"
	"github.com/fsnotify/fsnotify"
)

const (
	fileExt         = ".json"
	DefaultDebounce = 200 * time.Millisecond
)

// FileStore keeps one file per key inside a directory.
// Writes go through a temp file and a rename so readers never see a partial value.
type FileStore struct {
	dir      string
	debounce time.Duration
	mu       sync.Mutex
}

// FileStoreOption configures a FileStore.
type FileStoreOption func(*FileStore)

// WithDebounce sets the quiet period Watch waits before reporting a change.
func WithDebounce(d time.Duration) FileStoreOption {
	return func(s *FileStore) {
		if d > 0 {
			s.debounce = d
		}
	}
}

// NewFileStore creates the directory if needed and returns a store rooted at it.
func NewFileStore(dir string, opts ...FileStoreOption) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("storage directory is required: %w", errdefs.ErrInvalidArgument)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}

	s := &FileStore{dir: dir, debounce: DefaultDebounce}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

// Path returns the file backing key.
func (s *FileStore) Path(key string) (string, error) {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return "", fmt.Errorf("invalid key %q: %w", key, errdefs.ErrInvalidArgument)
	}
	return filepath.Join(s.dir, key+fileExt), nil
}

// GetItem reads the value stored under key.
func (s *FileStore) GetItem(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	path, err := s.Path(key)
	if err != nil {
		return "", false, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read %s: %w", key, err)
	}
	return string(data), true, nil
}

// SetItem atomically replaces the value stored under key.
func (s *FileStore) SetItem(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.Path(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmpFile, err := os.CreateTemp(s.dir, filepath.Base(path)+".tmp-")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		tmpFile.Close()
		os.Remove(tmpFile.Name())
	}()

	if _, err := tmpFile.WriteString(value); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpFile.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", key, err)
	}
	return nil
}

// RemoveItem deletes the file backing key.
func (s *FileStore) RemoveItem(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.Path(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

// Watch listens for changes to any key file and calls onChange after debounce.
// It watches the directory (not the files) so temp+rename replacements are
// still observed. Events are debounced per key to coalesce write+chmod/rename
// bursts. Cancel ctx to stop the goroutine and close the watcher.
func (s *FileStore) Watch(ctx context.Context, onChange func(key string)) error {
	if onChange == nil {
		return errors.New("onChange callback is required")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(s.dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch dir: %w", err)
	}

	log := logger.WithComponent("file-store")

	go func() {
		defer watcher.Close()

		timers := make(map[string]*time.Timer)
		defer func() {
			for _, t := range timers {
				t.Stop()
			}
		}()

		schedule := func(key string) {
			if t, ok := timers[key]; ok {
				t.Stop()
			}
			timers[key] = time.AfterFunc(s.debounce, func() {
				if ctx.Err() == nil {
					onChange(key)
				}
			})
		}

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				key, ok := keyFromPath(event.Name)
				if !ok {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Chmod|fsnotify.Remove|fsnotify.Rename) != 0 {
					log.Tracef("change on %s (%s)", key, event.Op)
					schedule(key)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Errorf("watcher error: %v", err)
			}
		}
	}()

	return nil
}

// keyFromPath maps a file name back to its key, skipping temp files.
func keyFromPath(path string) (string, bool) {
	base := filepath.Base(path)
	if !strings.HasSuffix(base, fileExt) {
		return "", false
	}
	key := strings.TrimSuffix(base, fileExt)
	if key == "" {
		return "", false
	}
	return key, true
}
