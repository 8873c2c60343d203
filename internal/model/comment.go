package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	CommentMinLength = 5
	CommentMaxLength = 10000
)

type Comment struct {
	ID          int64     `json:"id"`
	PostID      int64     `json:"post_id"`
	AuthorID    uuid.UUID `json:"author_id"`
	Content     string    `json:"content"`
	PublishedAt time.Time `json:"published_at"`
}

type FullComment struct {
	Comment Comment    `json:"comment"`
	Author  UserAuthor `json:"author"`
}

// CommentsPage is one page of a post's comments, newest first.
type CommentsPage struct {
	PostID   int64          `json:"post_id"`
	Comments []*FullComment `json:"comments"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
	Count    int64          `json:"count"`
	HasMore  bool           `json:"has_more"`
}
