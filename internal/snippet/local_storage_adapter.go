package snippet

import (
	"context"
	"fmt"
	"slices"

	"github.com/bassista/mermaider/internal/logger"
	"github.com/bassista/mermaider/internal/storage"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// DefaultStorageKey is the key holding the serialized collection.
const DefaultStorageKey = "mermaider-snippets"

// LocalStorageAdapter keeps every snippet in one JSON array under a single
// key of a storage.KeyValueStore. Every mutation rewrites the whole array.
//
// With a nil store (no storage in this execution context) reads return an
// empty list and writes succeed without persisting anything.
type LocalStorageAdapter struct {
	store     storage.KeyValueStore
	key       string
	validator *validator.Validate
	log       *logrus.Entry
}

// AdapterOption configures a LocalStorageAdapter.
type AdapterOption func(*LocalStorageAdapter)

// WithStorageKey overrides DefaultStorageKey.
func WithStorageKey(key string) AdapterOption {
	return func(a *LocalStorageAdapter) {
		if key != "" {
			a.key = key
		}
	}
}

// NewLocalStorageAdapter creates an adapter over store, which may be nil.
func NewLocalStorageAdapter(store storage.KeyValueStore, opts ...AdapterOption) *LocalStorageAdapter {
	a := &LocalStorageAdapter{
		store:     store,
		key:       DefaultStorageKey,
		validator: validator.New(),
		log:       logger.WithComponent("snippet-adapter"),
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Available reports whether a backing store is present.
func (a *LocalStorageAdapter) Available() bool {
	return a.store != nil
}

// Key returns the storage key holding the collection.
func (a *LocalStorageAdapter) Key() string {
	return a.key
}

// Save upserts s by ID and rewrites the collection sorted newest first.
func (a *LocalStorageAdapter) Save(ctx context.Context, s Snippet) error {
	if !a.Available() {
		return nil
	}

	snippets, _ := a.GetAll(ctx)
	if i := slices.IndexFunc(snippets, func(x Snippet) bool { return x.ID == s.ID }); i >= 0 {
		snippets[i] = s
	} else {
		snippets = append(snippets, s)
	}
	sortNewestFirst(snippets)

	a.log.Debugf("saving snippet %s (%d total)", s.ID, len(snippets))
	return a.write(ctx, snippets)
}

// GetAll never fails: an unreadable or undecodable blob is logged and
// treated as an empty collection, malformed records are skipped.
func (a *LocalStorageAdapter) GetAll(ctx context.Context) ([]Snippet, error) {
	if !a.Available() {
		return []Snippet{}, nil
	}

	blob, ok, err := a.store.GetItem(ctx, a.key)
	if err != nil {
		a.log.WithError(err).Error("error reading snippets from storage")
		return []Snippet{}, nil
	}
	if !ok || blob == "" {
		return []Snippet{}, nil
	}

	snippets, err := decodeSnippets(blob, a.validator)
	if err != nil {
		a.log.WithError(err).Error("error reading snippets from storage")
		return []Snippet{}, nil
	}
	sortNewestFirst(snippets)
	return snippets, nil
}

// GetByID scans the collection for id.
func (a *LocalStorageAdapter) GetByID(ctx context.Context, id string) (*Snippet, error) {
	snippets, err := a.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range snippets {
		if snippets[i].ID == id {
			s := snippets[i]
			return &s, nil
		}
	}
	return nil, nil
}

// Delete rewrites the collection without id. An unknown id is not an error.
func (a *LocalStorageAdapter) Delete(ctx context.Context, id string) error {
	if !a.Available() {
		return nil
	}

	snippets, _ := a.GetAll(ctx)
	snippets = slices.DeleteFunc(snippets, func(s Snippet) bool { return s.ID == id })

	a.log.Debugf("deleting snippet %s (%d remaining)", id, len(snippets))
	return a.write(ctx, snippets)
}

// Clear removes the storage key.
func (a *LocalStorageAdapter) Clear(ctx context.Context) error {
	if !a.Available() {
		return nil
	}
	if err := a.store.RemoveItem(ctx, a.key); err != nil {
		return fmt.Errorf("clear snippets: %w", err)
	}
	return nil
}

func (a *LocalStorageAdapter) write(ctx context.Context, snippets []Snippet) error {
	blob, err := encodeSnippets(snippets)
	if err != nil {
		return err
	}
	if err := a.store.SetItem(ctx, a.key, blob); err != nil {
		return fmt.Errorf("write snippets: %w", err)
	}
	return nil
}
