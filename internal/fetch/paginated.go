package fetch

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

type Page[T any] struct {
	Items   []T
	Count   int64
	HasMore bool
}

type PageFunc[T any] func(ctx context.Context, page int) (Page[T], error)

// Paginated accumulates the pages of a collection. Pages are requested one at
// a time and appended in request order.
type Paginated[T any] struct {
	id      uint64
	ctx     context.Context
	cancel  context.CancelFunc
	fetch   PageFunc[T]
	items   []T
	count   int64
	hasMore bool
	page    int
	loading bool
	err     error
	key     func(T) any
}

func NewPaginated[T any](parent context.Context, fetch PageFunc[T]) *Paginated[T] {
	ctx, cancel := context.WithCancel(parent)
	return &Paginated[T]{
		id:      nextID(),
		ctx:     ctx,
		cancel:  cancel,
		fetch:   fetch,
		hasMore: true,
		page:    1,
	}
}

// Load requests the next page. It returns nil while a page is loading, once
// the collection is exhausted, or after Stop.
func (p *Paginated[T]) Load() tea.Cmd {
	if p.loading || !p.hasMore || p.ctx.Err() != nil {
		return nil
	}
	p.loading = true
	p.err = nil

	id, ctx, page, fetch := p.id, p.ctx, p.page, p.fetch
	return func() tea.Msg {
		value, err := fetch(ctx, page)
		return resultMsg{id: id, value: value, err: err}
	}
}

// Resolve applies msg if it is this collection's page result. A failed page
// leaves the items already loaded untouched.
func (p *Paginated[T]) Resolve(msg tea.Msg) bool {
	res, ok := msg.(resultMsg)
	if !ok || res.id != p.id || p.ctx.Err() != nil {
		return false
	}
	p.loading = false

	if res.err != nil {
		p.err = res.err
		return true
	}

	page, _ := res.value.(Page[T])
	p.items = append(p.items, p.unseen(page.Items)...)
	p.count = page.Count
	p.hasMore = page.HasMore
	p.page++
	return true
}

// KeyBy makes Resolve skip page items whose key matches an item already held,
// such as a comment created locally that the next page returns again.
func (p *Paginated[T]) KeyBy(key func(T) any) {
	p.key = key
}

func (p *Paginated[T]) Items() []T {
	return p.items
}

func (p *Paginated[T]) unseen(items []T) []T {
	if p.key == nil {
		return items
	}

	seen := make(map[any]struct{}, len(p.items))
	for _, item := range p.items {
		seen[p.key(item)] = struct{}{}
	}
	result := make([]T, 0, len(items))
	for _, item := range items {
		if _, ok := seen[p.key(item)]; ok {
			continue
		}
		seen[p.key(item)] = struct{}{}
		result = append(result, item)
	}
	return result
}

// SetItems replaces the loaded items with fn's result. Count and HasMore are
// server-reported and stay as they are.
func (p *Paginated[T]) SetItems(fn func([]T) []T) {
	p.items = fn(p.items)
}

func (p *Paginated[T]) Count() int64 {
	return p.count
}

func (p *Paginated[T]) HasMore() bool {
	return p.hasMore
}

func (p *Paginated[T]) Loading() bool {
	return p.loading
}

func (p *Paginated[T]) Err() error {
	return p.err
}

func (p *Paginated[T]) Stop() {
	p.cancel()
	p.loading = false
}
