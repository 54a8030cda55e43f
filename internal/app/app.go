// Package app wires storage, the snippet adapters and their lifecycle.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/bassista/mermaider/internal/config"
	"github.com/bassista/mermaider/internal/logger"
	"github.com/bassista/mermaider/internal/snippet"
	"github.com/bassista/mermaider/internal/storage"
	"github.com/containerd/errdefs"
)

// App is the application container (immutable dependencies + lifecycle context).
type App struct {
	Config   *config.Config
	Store    storage.KeyValueStore
	Cache    *snippet.CachingAdapter
	Snippets *snippet.Persistence

	key string

	BaseCtx context.Context
	Cancel  context.CancelFunc
}

// New wires the snippet stack over store. A nil store is allowed and makes
// every write a no-op and every read empty.
func New(cfg *config.Config, store storage.KeyValueStore) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("resolve timezone: %w", err)
	}

	local := snippet.NewLocalStorageAdapter(store, snippet.WithStorageKey(cfg.Storage.Key))
	if !local.Available() {
		logger.WithComponent("app").Warn("no storage backend configured; snippets will not be persisted")
	}
	cache := snippet.NewCachingAdapter(local)

	snippets, err := snippet.NewPersistence(cache, snippet.WithLocation(loc))
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &App{
		Config:   cfg,
		Store:    store,
		Cache:    cache,
		Snippets: snippets,
		key:      local.Key(),
		BaseCtx:  ctx,
		Cancel:   cancel,
	}, nil
}

// Shutdown cancels the base context and releases the store.
func (a *App) Shutdown() {
	if a == nil {
		return
	}
	if a.Cancel != nil {
		a.Cancel()
	}
	if c, ok := a.Store.(io.Closer); ok {
		if err := c.Close(); err != nil {
			logger.WithComponent("app").Errorf("close store: %v", err)
		}
	}
}

// StartWatchers invalidates the snippet cache whenever another process
// changes the collection, then calls onChange (which may be nil).
// Stores that cannot be watched are silently skipped.
func (a *App) StartWatchers(onChange func()) error {
	w, ok := a.Store.(storage.Watcher)
	if !ok {
		logger.WithComponent("app").Debugf("storage backend %q does not support watching", a.Config.Storage.Backend)
		return nil
	}

	return w.Watch(a.BaseCtx, func(key string) {
		if key != a.key {
			return
		}
		logger.WithComponent("app").Debug("snippets changed on disk, invalidating cache")
		a.Cache.Invalidate()
		if onChange != nil {
			onChange()
		}
	})
}

// Snippet returns the snippet with id, or an errdefs not-found error.
func (a *App) Snippet(ctx context.Context, id string) (snippet.Snippet, error) {
	s, err := a.Snippets.GetSnippetByID(ctx, id)
	if err != nil {
		return snippet.Snippet{}, err
	}
	if s == nil {
		return snippet.Snippet{}, fmt.Errorf("snippet %q: %w", id, errdefs.ErrNotFound)
	}
	return *s, nil
}
