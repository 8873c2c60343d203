// Package tui is the terminal comment widget: a post screen whose comment
// section mounts when scrolled into view.
package tui

import (
	"context"

	"github.com/BloggingApp/comment-service/internal/dto"
	"github.com/google/uuid"
)

type CommentsAPI interface {
	ListComments(ctx context.Context, postID int64, page int) (*dto.CommentPage, error)
	CreateComment(ctx context.Context, postID int64, content string) (*dto.CommentReadFull, error)
	UpdateComment(ctx context.Context, iri string, content string) (*dto.CommentReadFull, error)
	DeleteComment(ctx context.Context, iri string) error
}

type PostsAPI interface {
	GetPost(ctx context.Context, postID int64) (*dto.PostRead, error)
}

type API interface {
	CommentsAPI
	PostsAPI
}

// Session is the signed-in reader, if any.
type Session struct {
	UserID   uuid.UUID
	SignedIn bool
}

// CanEdit reports whether the reader wrote comment.
func (s Session) CanEdit(comment *dto.CommentRead) bool {
	return s.SignedIn && comment != nil && s.UserID != uuid.Nil && comment.Author.ID == s.UserID
}
