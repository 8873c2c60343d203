package fetch

import (
	"context"
	"errors"
	"testing"
)

type fieldsErr map[string]string

func (e fieldsErr) Error() string                  { return "validation failed" }
func (e fieldsErr) FieldErrors() map[string]string { return e }

func TestRequest(t *testing.T) {
	r := NewRequest[string](context.Background())

	calls := 0
	cmd := r.Load(func(ctx context.Context) (string, error) {
		calls++
		return "ok", nil
	})
	if cmd == nil {
		t.Fatal("Load() = nil cmd")
	}
	if !r.Loading() {
		t.Error("Loading() = false after Load()")
	}
	if again := r.Load(func(ctx context.Context) (string, error) { return "", nil }); again != nil {
		t.Error("second Load() while loading returned a cmd")
	}

	res, ok := r.Resolve(cmd())
	if !ok || res.Err != nil || res.Value != "ok" {
		t.Fatalf("Resolve() = %+v %v, want ok", res, ok)
	}
	if r.Loading() || calls != 1 {
		t.Errorf("after resolve: loading %v calls %d", r.Loading(), calls)
	}

	if _, ok := r.Resolve("unrelated"); ok {
		t.Error("Resolve() handled an unrelated message")
	}
}

func TestRequest_FieldErrors(t *testing.T) {
	r := NewRequest[int](context.Background())

	cmd := r.Load(func(ctx context.Context) (int, error) {
		return 0, fieldsErr{"content": "Comment is too short (5 characters minimum)"}
	})
	res, ok := r.Resolve(cmd())
	if !ok || res.Err == nil {
		t.Fatalf("Resolve() = %+v %v, want an error", res, ok)
	}
	if r.Loading() {
		t.Error("Loading() = true after a failure")
	}
	if r.FieldError("content") == "" {
		t.Fatal("FieldError(content) is empty")
	}

	r.ClearError("content")
	if r.FieldError("content") != "" {
		t.Error("ClearError() kept the message")
	}
}

func TestRequest_ResultsAfterStopAreIgnored(t *testing.T) {
	r := NewRequest[string](context.Background())

	var sawCancel bool
	cmd := r.Load(func(ctx context.Context) (string, error) {
		<-ctx.Done()
		sawCancel = true
		return "", ctx.Err()
	})
	r.Stop()

	if _, ok := r.Resolve(cmd()); ok {
		t.Error("Resolve() after Stop() handled the result")
	}
	if !sawCancel {
		t.Error("Stop() did not cancel the call in flight")
	}
	if r.Load(func(ctx context.Context) (string, error) { return "", nil }) != nil {
		t.Error("Load() after Stop() returned a cmd")
	}
}

func TestPaginated(t *testing.T) {
	server := []int{3, 2, 1}
	fetchPage := func(ctx context.Context, page int) (Page[int], error) {
		const size = 2
		start := (page - 1) * size
		end := start + size
		if end > len(server) {
			end = len(server)
		}
		return Page[int]{
			Items:   server[start:end],
			Count:   int64(len(server)),
			HasMore: end < len(server),
		}, nil
	}
	p := NewPaginated[int](context.Background(), fetchPage)

	cmd := p.Load()
	if p.Load() != nil {
		t.Error("Load() while loading returned a cmd")
	}
	if !p.Resolve(cmd()) {
		t.Fatal("Resolve() = false")
	}
	if len(p.Items()) != 2 || p.Count() != 3 || !p.HasMore() {
		t.Fatalf("after page 1: items %v count %d hasMore %v", p.Items(), p.Count(), p.HasMore())
	}

	p.Resolve(p.Load()())
	if got := p.Items(); len(got) != 3 || got[0] != 3 || got[2] != 1 || p.HasMore() {
		t.Fatalf("after page 2: items %v hasMore %v", got, p.HasMore())
	}
	if int64(len(p.Items())) > p.Count() {
		t.Errorf("items %d exceed count %d", len(p.Items()), p.Count())
	}
	if p.Load() != nil {
		t.Error("Load() after the last page returned a cmd")
	}
}

func TestPaginated_FailureKeepsItems(t *testing.T) {
	fail := false
	p := NewPaginated[string](context.Background(), func(ctx context.Context, page int) (Page[string], error) {
		if fail {
			return Page[string]{}, errors.New("connection refused")
		}
		return Page[string]{Items: []string{"a", "b"}, Count: 4, HasMore: true}, nil
	})

	p.Resolve(p.Load()())
	fail = true
	p.Resolve(p.Load()())

	if p.Loading() {
		t.Error("Loading() = true after a failed page")
	}
	if p.Err() == nil {
		t.Error("Err() = nil after a failed page")
	}
	if len(p.Items()) != 2 || !p.HasMore() {
		t.Errorf("items %v hasMore %v, want the first page kept", p.Items(), p.HasMore())
	}

	fail = false
	p.Resolve(p.Load()())
	if len(p.Items()) != 4 {
		t.Errorf("retry: items %v, want page 2 appended", p.Items())
	}
}

func TestPaginated_SetItems(t *testing.T) {
	p := NewPaginated[string](context.Background(), func(ctx context.Context, page int) (Page[string], error) {
		return Page[string]{Items: []string{"a"}, Count: 1}, nil
	})
	p.Resolve(p.Load()())

	p.SetItems(func(items []string) []string { return append([]string{"new"}, items...) })
	if got := p.Items(); len(got) != 2 || got[0] != "new" {
		t.Errorf("Items() = %v", got)
	}
	if p.Count() != 1 {
		t.Errorf("Count() = %d, want server count 1", p.Count())
	}
}

func TestRequest_FieldErrorsReplacedByLaterFailure(t *testing.T) {
	r := NewRequest[int](context.Background())

	spam := fieldsErr{"content": "The content of this comment is considered spam."}
	for i := 0; i < 2; i++ {
		r.Resolve(r.Load(func(ctx context.Context) (int, error) { return 0, spam })())
	}
	if r.FieldError("content") == "" {
		t.Fatal("FieldError(content) is empty after a rejection")
	}

	r.Resolve(r.Load(func(ctx context.Context) (int, error) {
		return 0, errors.New("connection refused")
	})())
	if r.FieldError("content") != "" || len(r.Errors()) != 0 {
		t.Errorf("Errors() = %v after a transport failure, want none", r.Errors())
	}
	if r.Err() == nil {
		t.Error("Err() = nil after a transport failure")
	}
}

func TestPaginated_KeyBySkipsHeldItems(t *testing.T) {
	pages := map[int][]string{
		1: {"d", "c"},
		2: {"c", "b"},
	}
	p := NewPaginated[string](context.Background(), func(ctx context.Context, page int) (Page[string], error) {
		return Page[string]{Items: pages[page], Count: 4, HasMore: page < 2}, nil
	})
	p.KeyBy(func(s string) any { return s })

	p.Resolve(p.Load()())
	p.Resolve(p.Load()())

	if got := p.Items(); len(got) != 3 || got[0] != "d" || got[1] != "c" || got[2] != "b" {
		t.Errorf("Items() = %v, want [d c b]", got)
	}
}
