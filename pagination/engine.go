package pagination

import (
	"context"
	"math"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Engine clamps requests and assembles pages. It holds only its configuration and is
// safe for concurrent use.
type Engine struct {
	cfg Config
}

func New(cfg Config) *Engine {
	return &Engine{cfg: cfg.withDefaults()}
}

func (e *Engine) Config() Config { return e.cfg }

// ClampPage bounds page to >= 1.
func (e *Engine) ClampPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// ClampLimit maps limit <= 0 to the default and caps it at the maximum.
func (e *Engine) ClampLimit(limit int) int {
	if limit <= 0 {
		return e.cfg.DefaultLimit
	}
	if limit > e.cfg.MaxLimit {
		return e.cfg.MaxLimit
	}
	return limit
}

// NormalizeSort appends the tie-break field (ascending) unless the sort already has it,
// giving every query a total order.
func (e *Engine) NormalizeSort(sort Sort) Sort {
	out := make(Sort, 0, len(sort)+1)
	out = append(out, sort...)
	if !out.Has(e.cfg.TieBreakField) {
		out = append(out, SortField{Field: e.cfg.TieBreakField, Direction: Asc})
	}
	return out
}

// PaginateByOffset fetches one page with skip/limit and counts the matching documents.
// Both reads run concurrently; the call fails as a whole if either does.
func PaginateByOffset[T any](ctx context.Context, e *Engine, src Source[T], req Request) (Page[T], error) {
	const op = "paginate by offset"
	if err := validateFilter(op, req.Filter); err != nil {
		return Page[T]{}, err
	}
	if err := validateSort(op, req.Sort); err != nil {
		return Page[T]{}, err
	}
	if err := ctx.Err(); err != nil {
		return Page[T]{}, &Error{Op: op, Kind: ErrCanceled, Err: err}
	}

	page := e.ClampPage(req.Page)
	limit := e.ClampLimit(req.Limit)
	sort := e.NormalizeSort(req.Sort)
	skip := CalculateSkip(page, limit)

	var (
		items []T
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	// A saturated skip lies past any collection, so only the count is needed.
	if skip < math.MaxInt64 {
		g.Go(func() error {
			var err error
			items, err = src.Find(gctx, req.Filter, sort, skip, int64(limit))
			return err
		})
	}
	g.Go(func() error {
		var err error
		total, err = src.Count(gctx, req.Filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return Page[T]{}, classify(ctx, op, err)
	}

	if skip >= total || items == nil {
		items = []T{}
	}
	if len(items) > limit {
		items = items[:limit]
	}

	md := BuildMetadata(page, limit, total)
	return Page[T]{
		Items:       items,
		TotalItems:  total,
		TotalPages:  md.TotalPages,
		CurrentPage: page,
		Limit:       limit,
		HasNext:     md.HasNext,
		HasPrev:     md.HasPrev,
		Metadata:    md,
	}, nil
}

// PaginateByCursor fetches the window strictly after req.LastKey. NextCursor is set
// only when a full window came back; a short window marks the end of the sequence.
func PaginateByCursor[T any](ctx context.Context, e *Engine, src Source[T], filter Filter, sort Sort, req CursorRequest) (Page[T], error) {
	const op = "paginate by cursor"
	if err := validateFilter(op, filter); err != nil {
		return Page[T]{}, err
	}
	if err := validateSort(op, sort); err != nil {
		return Page[T]{}, err
	}
	if err := ctx.Err(); err != nil {
		return Page[T]{}, &Error{Op: op, Kind: ErrCanceled, Err: err}
	}

	limit := e.ClampLimit(req.Limit)
	sort = e.NormalizeSort(sort)
	lastKey := strings.TrimSpace(req.LastKey)

	var (
		items []T
		err   error
	)
	if lastKey == "" {
		items, err = src.Find(ctx, filter, sort, 0, int64(limit))
	} else {
		items, err = src.FindAfter(ctx, filter, sort, lastKey, int64(limit))
	}
	if err != nil {
		return Page[T]{}, classify(ctx, op, err)
	}
	if items == nil {
		items = []T{}
	}
	if len(items) > limit {
		items = items[:limit]
	}

	var next string
	if len(items) == limit {
		next, err = src.CursorOf(items[len(items)-1], sort)
		if err != nil {
			return Page[T]{}, &Error{Op: op, Kind: ErrSourceQueryFailed, Err: err}
		}
	}

	return Page[T]{
		Items:      items,
		Limit:      limit,
		HasNext:    next != "",
		HasPrev:    lastKey != "",
		NextCursor: next,
		Metadata: Metadata{
			Limit:   limit,
			HasNext: next != "",
			HasPrev: lastKey != "",
		},
	}, nil
}

// Count returns the number of documents matching filter, for cursor callers that need a total.
func Count[T any](ctx context.Context, e *Engine, src Source[T], filter Filter) (int64, error) {
	const op = "count"
	if err := validateFilter(op, filter); err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, &Error{Op: op, Kind: ErrCanceled, Err: err}
	}
	n, err := src.Count(ctx, filter)
	if err != nil {
		return 0, classify(ctx, op, err)
	}
	return n, nil
}
