package snippet

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"slices"

	"github.com/go-playground/validator/v10"
)

// storedRecord mirrors one element of the persisted array. Pointer fields
// distinguish a missing key from a zero value.
type storedRecord struct {
	ID        *string  `validate:"required"`
	Title     *string  `validate:"required"`
	Code      *string  `validate:"required"`
	Type      *string  `validate:"required"`
	CreatedAt *float64 `validate:"required"`
}

// maxExactMillis bounds createdAt to values that survive a float64 round trip.
const maxExactMillis = 1 << 53

// parseStoredRecord fills a storedRecord from an object's members. Keys match
// exactly; encoding/json would also accept "Code" or "CODE" for a tagged field.
func parseStoredRecord(item json.RawMessage) (*storedRecord, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(item, &fields); err != nil || fields == nil {
		return nil, false
	}

	rec := &storedRecord{}
	for key, dst := range map[string]interface{}{
		"id":        &rec.ID,
		"title":     &rec.Title,
		"code":      &rec.Code,
		"type":      &rec.Type,
		"createdAt": &rec.CreatedAt,
	} {
		raw, ok := fields[key]
		if !ok {
			return nil, false
		}
		if err := json.Unmarshal(raw, dst); err != nil {
			return nil, false
		}
	}
	return rec, true
}

// validCreatedAt reports whether f is a whole number of milliseconds that
// converts to int64 without changing value.
func validCreatedAt(f float64) bool {
	return f == math.Trunc(f) && f >= -maxExactMillis && f <= maxExactMillis
}

func (r *storedRecord) snippet() Snippet {
	return Snippet{
		ID:        *r.ID,
		Title:     *r.Title,
		Code:      *r.Code,
		Type:      Type(*r.Type),
		CreatedAt: int64(*r.CreatedAt),
	}
}

// decodeSnippets parses a persisted blob. A blob that is not a JSON array is an
// error; individual elements of the wrong shape are dropped.
func decodeSnippets(blob string, v *validator.Validate) ([]Snippet, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal([]byte(blob), &raw); err != nil {
		return nil, fmt.Errorf("decode snippets: %w", err)
	}

	snippets := make([]Snippet, 0, len(raw))
	for _, item := range raw {
		rec, ok := parseStoredRecord(item)
		if !ok {
			continue
		}
		if err := v.Struct(rec); err != nil {
			continue
		}
		if !validCreatedAt(*rec.CreatedAt) {
			continue
		}
		snippets = append(snippets, rec.snippet())
	}
	return snippets, nil
}

// encodeSnippets serializes the collection as a compact JSON array without
// HTML escaping, so diagram arrows like "->" stay readable in the blob.
func encodeSnippets(snippets []Snippet) (string, error) {
	if snippets == nil {
		snippets = []Snippet{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(snippets); err != nil {
		return "", fmt.Errorf("encode snippets: %w", err)
	}
	return string(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

// sortNewestFirst orders by CreatedAt descending, keeping the relative order of ties.
func sortNewestFirst(snippets []Snippet) {
	slices.SortStableFunc(snippets, func(a, b Snippet) int {
		switch {
		case a.CreatedAt > b.CreatedAt:
			return -1
		case a.CreatedAt < b.CreatedAt:
			return 1
		default:
			return 0
		}
	})
}
