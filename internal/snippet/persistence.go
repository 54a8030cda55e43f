package snippet

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"
)

const (
	idSuffixLen = 9
	base36      = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// Persistence creates snippets from raw code and delegates storage to an Adapter.
type Persistence struct {
	adapter Adapter
	now     func() time.Time
	loc     *time.Location
	intN    func(n int) int
}

// Option configures a Persistence.
type Option func(*Persistence)

// WithClock replaces time.Now as the source of default timestamps.
func WithClock(now func() time.Time) Option {
	return func(p *Persistence) { p.now = now }
}

// WithLocation sets the zone used to render titles. Default time.Local.
func WithLocation(loc *time.Location) Option {
	return func(p *Persistence) {
		if loc != nil {
			p.loc = loc
		}
	}
}

// WithRand sets the random source for ID suffixes. r is not safe for
// concurrent use, so neither is the resulting Persistence.
func WithRand(r *rand.Rand) Option {
	return func(p *Persistence) { p.intN = r.IntN }
}

// NewPersistence creates the façade over adapter.
func NewPersistence(adapter Adapter, opts ...Option) (*Persistence, error) {
	if adapter == nil {
		return nil, errors.New("snippet adapter is nil")
	}
	p := &Persistence{
		adapter: adapter,
		now:     time.Now,
		loc:     time.Local,
		intN:    rand.IntN,
	}
	for _, o := range opts {
		o(p)
	}
	return p, nil
}

// SaveSnippet builds a snippet from code and saves it. createdAt is in
// milliseconds; 0 means now. The snippet is returned even when the adapter
// had no storage to write to.
func (p *Persistence) SaveSnippet(ctx context.Context, code string, createdAt int64) (Snippet, error) {
	if createdAt == 0 {
		createdAt = p.now().UnixMilli()
	}

	t := DetectSnippetType(code)
	s := Snippet{
		ID:        p.newID(createdAt),
		Title:     GenerateSnippetTitle(t, createdAt, p.loc),
		Code:      code,
		Type:      t,
		CreatedAt: createdAt,
	}

	if err := p.adapter.Save(ctx, s); err != nil {
		return s, fmt.Errorf("save snippet %s: %w", s.ID, err)
	}
	return s, nil
}

// GetAllSnippets returns every snippet, newest first.
func (p *Persistence) GetAllSnippets(ctx context.Context) ([]Snippet, error) {
	return p.adapter.GetAll(ctx)
}

// GetSnippetByID returns nil when id is unknown.
func (p *Persistence) GetSnippetByID(ctx context.Context, id string) (*Snippet, error) {
	return p.adapter.GetByID(ctx, id)
}

func (p *Persistence) DeleteSnippet(ctx context.Context, id string) error {
	return p.adapter.Delete(ctx, id)
}

func (p *Persistence) ClearAllSnippets(ctx context.Context) error {
	return p.adapter.Clear(ctx)
}

// newID returns "snippet-<createdAt>-<9 base36 chars>".
func (p *Persistence) newID(createdAt int64) string {
	suffix := make([]byte, idSuffixLen)
	for i := range suffix {
		suffix[i] = base36[p.intN(len(base36))]
	}
	return fmt.Sprintf("snippet-%d-%s", createdAt, suffix)
}
