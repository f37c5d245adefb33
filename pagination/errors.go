package pagination

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameter is returned for structurally malformed filter, sort or cursor input.
	// Out-of-range page and limit values are clamped and never produce it.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrSourceQueryFailed wraps any failure reported by the underlying Source.
	ErrSourceQueryFailed = errors.New("source query failed")
	// ErrCanceled is returned when the caller's context ends before the page is assembled.
	ErrCanceled = errors.New("pagination canceled")
)

// Error carries the failed operation, its kind (one of the sentinels above) and the cause.
type Error struct {
	Op   string
	Kind error
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("pagination: %s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("pagination: %s: %v: %v", e.Op, e.Kind, e.Err)
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func invalidParam(op, format string, args ...any) error {
	return &Error{Op: op, Kind: ErrInvalidParameter, Err: fmt.Errorf(format, args...)}
}

// classify turns a raw source error into an *Error. ctx is the caller's context, not
// the errgroup-derived one, so a sibling failure is never reported as a cancellation.
func classify(ctx context.Context, op string, err error) error {
	if err == nil {
		return nil
	}
	var perr *Error
	if errors.As(err, &perr) {
		return err
	}
	if errors.Is(err, ErrInvalidParameter) {
		return &Error{Op: op, Kind: ErrInvalidParameter, Err: err}
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return &Error{Op: op, Kind: ErrCanceled, Err: ctxErr}
	}
	return &Error{Op: op, Kind: ErrSourceQueryFailed, Err: err}
}
