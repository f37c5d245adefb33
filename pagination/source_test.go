package pagination_test

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strconv"
	"sync/atomic"

	"doc-pager/pagination"
)

type doc struct {
	ID    int
	Score int
	City  string
}

// memSource is an in-memory Source used to exercise the engine without a database.
type memSource struct {
	docs []doc

	findErr   error
	countErr  error
	findHook  func(ctx context.Context) error
	countHook func(ctx context.Context) error

	finds  atomic.Int32
	counts atomic.Int32
	afters atomic.Int32

	// minSkip tracks the smallest skip Find was asked for.
	minSkip atomic.Int64
}

func newDocs(n int) []doc {
	out := make([]doc, n)
	for i := range out {
		city := "New York"
		if i%2 == 1 {
			city = "Los Angeles"
		}
		out[i] = doc{ID: i + 1, Score: (i + 1) % 4, City: city}
	}
	return out
}

func (s *memSource) Find(ctx context.Context, filter pagination.Filter, sort pagination.Sort, skip, limit int64) ([]doc, error) {
	s.finds.Add(1)
	if skip < s.minSkip.Load() {
		s.minSkip.Store(skip)
	}
	if skip < 0 {
		return nil, fmt.Errorf("negative skip %d", skip)
	}
	if s.findHook != nil {
		if err := s.findHook(ctx); err != nil {
			return nil, err
		}
	}
	if s.findErr != nil {
		return nil, s.findErr
	}
	all := s.sorted(filter, sort)
	if skip >= int64(len(all)) {
		return nil, nil
	}
	end := min(skip+limit, int64(len(all)))
	return all[skip:end], nil
}

func (s *memSource) Count(ctx context.Context, filter pagination.Filter) (int64, error) {
	s.counts.Add(1)
	if s.countHook != nil {
		if err := s.countHook(ctx); err != nil {
			return 0, err
		}
	}
	if s.countErr != nil {
		return 0, s.countErr
	}
	return int64(len(s.filtered(filter))), nil
}

func (s *memSource) FindAfter(ctx context.Context, filter pagination.Filter, sort pagination.Sort, cursor string, limit int64) ([]doc, error) {
	s.afters.Add(1)
	if s.findErr != nil {
		return nil, s.findErr
	}
	id, err := strconv.Atoi(cursor)
	if err != nil {
		return nil, fmt.Errorf("%w: cursor %q", pagination.ErrInvalidParameter, cursor)
	}
	idx := slices.IndexFunc(s.docs, func(d doc) bool { return d.ID == id })
	if idx < 0 {
		return nil, fmt.Errorf("%w: unknown cursor %q", pagination.ErrInvalidParameter, cursor)
	}
	last := s.docs[idx]

	var out []doc
	for _, d := range s.sorted(filter, sort) {
		if compareDocs(d, last, sort) > 0 {
			out = append(out, d)
			if int64(len(out)) == limit {
				break
			}
		}
	}
	return out, nil
}

func (s *memSource) CursorOf(item doc, _ pagination.Sort) (string, error) {
	return strconv.Itoa(item.ID), nil
}

func (s *memSource) filtered(filter pagination.Filter) []doc {
	var out []doc
	for _, d := range s.docs {
		if city, ok := filter["city"]; ok && d.City != city {
			continue
		}
		if score, ok := filter["score"]; ok && d.Score != score {
			continue
		}
		out = append(out, d)
	}
	return out
}

func (s *memSource) sorted(filter pagination.Filter, sort pagination.Sort) []doc {
	out := s.filtered(filter)
	slices.SortStableFunc(out, func(a, b doc) int { return compareDocs(a, b, sort) })
	return out
}

func compareDocs(a, b doc, sort pagination.Sort) int {
	for _, f := range sort {
		var c int
		switch f.Field {
		case "_id":
			c = cmp.Compare(a.ID, b.ID)
		case "score":
			c = cmp.Compare(a.Score, b.Score)
		case "city":
			c = cmp.Compare(a.City, b.City)
		}
		if c != 0 {
			if f.Direction == pagination.Desc {
				return -c
			}
			return c
		}
	}
	return 0
}

func ids(items []doc) []int {
	out := make([]int, len(items))
	for i, d := range items {
		out[i] = d.ID
	}
	return out
}
