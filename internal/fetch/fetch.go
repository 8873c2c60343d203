// Package fetch runs API calls as Bubble Tea commands and tracks their loading
// state. A helper hands out at most one command at a time: while a call is in
// flight, triggering it again yields a nil command.
package fetch

import (
	"context"
	"errors"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
)

var lastID atomic.Uint64

func nextID() uint64 {
	return lastID.Add(1)
}

// resultMsg carries the outcome of one call back to the helper that issued it.
type resultMsg struct {
	id    uint64
	value any
	err   error
}

// fieldErrorer is implemented by errors that carry per-field messages.
type fieldErrorer interface {
	FieldErrors() map[string]string
}

// Result is the outcome of a resolved Request.
type Result[T any] struct {
	Value T
	Err   error
}

type Request[T any] struct {
	id          uint64
	ctx         context.Context
	cancel      context.CancelFunc
	loading     bool
	err         error
	fieldErrors map[string]string
}

func NewRequest[T any](parent context.Context) *Request[T] {
	ctx, cancel := context.WithCancel(parent)
	return &Request[T]{
		id:     nextID(),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Load starts fn unless a call is already in flight or the request is stopped.
func (r *Request[T]) Load(fn func(ctx context.Context) (T, error)) tea.Cmd {
	if r.loading || r.ctx.Err() != nil {
		return nil
	}
	r.loading = true
	r.err = nil

	id, ctx := r.id, r.ctx
	return func() tea.Msg {
		value, err := fn(ctx)
		return resultMsg{id: id, value: value, err: err}
	}
}

// Resolve reports whether msg is this request's result. Results that arrive
// after Stop are swallowed and reported as not handled.
func (r *Request[T]) Resolve(msg tea.Msg) (Result[T], bool) {
	res, ok := msg.(resultMsg)
	if !ok || res.id != r.id || r.ctx.Err() != nil {
		return Result[T]{}, false
	}
	r.loading = false

	if res.err != nil {
		r.err = res.err
		r.fieldErrors = nil
		var fe fieldErrorer
		if errors.As(res.err, &fe) {
			r.fieldErrors = copyFields(fe.FieldErrors())
		}
		return Result[T]{Err: res.err}, true
	}

	r.fieldErrors = nil
	value, _ := res.value.(T)
	return Result[T]{Value: value}, true
}

func (r *Request[T]) Loading() bool {
	return r.loading
}

// Err is the error of the last resolved call, nil on success.
func (r *Request[T]) Err() error {
	return r.err
}

func (r *Request[T]) FieldError(field string) string {
	return r.fieldErrors[field]
}

func (r *Request[T]) Errors() map[string]string {
	return copyFields(r.fieldErrors)
}

func (r *Request[T]) ClearError(field string) {
	delete(r.fieldErrors, field)
}

// Stop cancels the call in flight. The request cannot be used afterwards.
func (r *Request[T]) Stop() {
	r.cancel()
	r.loading = false
}

func copyFields(fields map[string]string) map[string]string {
	if fields == nil {
		return nil
	}
	result := make(map[string]string, len(fields))
	for k, v := range fields {
		result[k] = v
	}
	return result
}
