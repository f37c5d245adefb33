// Package pagination assembles offset- and cursor-based pages over an abstract
// document source. It knows nothing about the storage behind Source.
package pagination

import (
	"context"
	"strings"
)

// Direction is the sort direction of a single field, using Mongo's 1 / -1 convention.
type Direction int

const (
	Asc  Direction = 1
	Desc Direction = -1
)

// SortField orders results by one field.
type SortField struct {
	Field     string
	Direction Direction
}

// Sort is an ordered list of sort fields; earlier fields take precedence.
type Sort []SortField

// Filter maps a field to a condition. Conditions are passed through to the Source untouched.
type Filter map[string]any

// Has reports whether the sort already orders by field.
func (s Sort) Has(field string) bool {
	for _, f := range s {
		if f.Field == field {
			return true
		}
	}
	return false
}

// Fields returns the field names in order.
func (s Sort) Fields() []string {
	out := make([]string, len(s))
	for i, f := range s {
		out[i] = f.Field
	}
	return out
}

// String renders the sort in the same syntax ParseSort accepts.
func (s Sort) String() string {
	parts := make([]string, len(s))
	for i, f := range s {
		if f.Direction == Desc {
			parts[i] = "-" + f.Field
		} else {
			parts[i] = f.Field
		}
	}
	return strings.Join(parts, ",")
}

// ParseSort parses "-createdAt,total" style input: comma separated fields, a leading
// "-" for descending and an optional "+" for ascending. Empty input yields a nil Sort.
func ParseSort(raw string) (Sort, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	var out Sort
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		dir := Asc
		switch {
		case strings.HasPrefix(part, "-"):
			dir = Desc
			part = part[1:]
		case strings.HasPrefix(part, "+"):
			part = part[1:]
		}
		out = append(out, SortField{Field: part, Direction: dir})
	}
	if err := validateSort("parse sort", out); err != nil {
		return nil, err
	}
	return out, nil
}

// Request describes one offset page.
type Request struct {
	Page   int
	Limit  int
	Filter Filter
	Sort   Sort
}

// CursorRequest describes one cursor window. An empty LastKey starts from the beginning.
type CursorRequest struct {
	LastKey string
	Limit   int
}

// Page is the uniform result of both pagination modes.
//
// In cursor mode TotalItems, TotalPages and CurrentPage are not computed and stay zero;
// use Count when a total is needed.
type Page[T any] struct {
	Items       []T      `json:"items"`
	TotalItems  int64    `json:"total_items"`
	TotalPages  int      `json:"total_pages"`
	CurrentPage int      `json:"current_page"`
	Limit       int      `json:"limit"`
	HasNext     bool     `json:"has_next"`
	HasPrev     bool     `json:"has_prev"`
	NextCursor  string   `json:"next_cursor,omitempty"`
	Metadata    Metadata `json:"-"`
}

// Source is the storage capability the engine consumes.
//
// FindAfter must return only documents strictly after the cursor in sort order, and
// CursorOf must produce a key FindAfter accepts for the same sort. Sources report a
// malformed cursor by wrapping ErrInvalidParameter.
type Source[T any] interface {
	Find(ctx context.Context, filter Filter, sort Sort, skip, limit int64) ([]T, error)
	Count(ctx context.Context, filter Filter) (int64, error)
	FindAfter(ctx context.Context, filter Filter, sort Sort, cursor string, limit int64) ([]T, error)
	CursorOf(item T, sort Sort) (string, error)
}
