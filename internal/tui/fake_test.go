package tui

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/BloggingApp/comment-service/internal/dto"
	"github.com/google/uuid"
)

var (
	janeID = uuid.MustParse("6f1c4d2e-0b5a-4c1e-9a43-2f4b1e7d9c10")
	tomID  = uuid.MustParse("0c5e9a61-7d2f-4b83-a1e4-5f6d7c8b9a01")

	errNetwork = errors.New("dial tcp 127.0.0.1:8080: connect: connection refused")
)

// fakeAPI is an in-memory comment API holding the comments of one post,
// newest first.
type fakeAPI struct {
	mu        sync.Mutex
	pageSize  int
	author    dto.AuthorRead
	comments  []dto.CommentRead
	nextID    int64
	post      dto.PostRead
	listErr   error
	createErr error
	updateErr error
	deleteErr error
	calls     map[string]int
}

func newFakeAPI(pageSize int) *fakeAPI {
	return &fakeAPI{
		pageSize: pageSize,
		author:   dto.AuthorRead{ID: janeID, Username: "jane_admin", FullName: "Jane Doe"},
		nextID:   1,
		calls:    make(map[string]int),
		post: dto.PostRead{
			IRI:   dto.PostIRI(1),
			ID:    1,
			Title: "Lorem ipsum",
		},
	}
}

// seed stores comments oldest first, so the last one given is the newest.
func (f *fakeAPI) seed(authorID uuid.UUID, contents ...string) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for _, content := range contents {
		id := f.nextID
		f.nextID++
		c := dto.CommentRead{
			IRI:         dto.CommentIRI(id),
			ID:          id,
			Content:     content,
			PublishedAt: base.Add(time.Duration(id) * time.Minute),
			Author:      dto.AuthorRead{ID: authorID, Username: authorID.String()[:8], FullName: authorID.String()[:8]},
		}
		f.comments = append([]dto.CommentRead{c}, f.comments...)
	}
}

func (f *fakeAPI) count(call string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[call]
}

func (f *fakeAPI) ListComments(ctx context.Context, postID int64, page int) (*dto.CommentPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["list"]++
	if f.listErr != nil {
		return nil, f.listErr
	}

	start := (page - 1) * f.pageSize
	if start > len(f.comments) {
		start = len(f.comments)
	}
	end := start + f.pageSize
	if end > len(f.comments) {
		end = len(f.comments)
	}
	items := append([]dto.CommentRead(nil), f.comments[start:end]...)

	return &dto.CommentPage{
		Items:    items,
		Count:    int64(len(f.comments)),
		Page:     page,
		PageSize: f.pageSize,
		HasMore:  end < len(f.comments),
	}, nil
}

func (f *fakeAPI) CreateComment(ctx context.Context, postID int64, content string) (*dto.CommentReadFull, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["create"]++
	if f.createErr != nil {
		return nil, f.createErr
	}

	id := f.nextID
	f.nextID++
	c := dto.CommentRead{
		IRI:         dto.CommentIRI(id),
		ID:          id,
		Content:     content,
		PublishedAt: time.Now().UTC(),
		Author:      f.author,
	}
	f.comments = append([]dto.CommentRead{c}, f.comments...)
	return &dto.CommentReadFull{CommentRead: c, Post: dto.PostIRI(postID)}, nil
}

func (f *fakeAPI) UpdateComment(ctx context.Context, iri string, content string) (*dto.CommentReadFull, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["update"]++
	if f.updateErr != nil {
		return nil, f.updateErr
	}

	for i := range f.comments {
		if f.comments[i].IRI == iri {
			f.comments[i].Content = content
			return &dto.CommentReadFull{CommentRead: f.comments[i], Post: f.post.IRI}, nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeAPI) DeleteComment(ctx context.Context, iri string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["delete"]++
	if f.deleteErr != nil {
		return f.deleteErr
	}

	for i := range f.comments {
		if f.comments[i].IRI == iri {
			f.comments = append(f.comments[:i], f.comments[i+1:]...)
			return nil
		}
	}
	return errors.New("not found")
}

func (f *fakeAPI) GetPost(ctx context.Context, postID int64) (*dto.PostRead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["post"]++
	post := f.post
	return &post, nil
}

type fieldErr map[string]string

func (e fieldErr) Error() string                  { return "validation failed" }
func (e fieldErr) FieldErrors() map[string]string { return e }
