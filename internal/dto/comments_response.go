package dto

import (
	"time"

	"github.com/BloggingApp/comment-service/internal/model"
	"github.com/google/uuid"
)

type AuthorRead struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	FullName string    `json:"fullName"`
}

// CommentRead is the projection used by collection responses.
type CommentRead struct {
	IRI         string     `json:"@id"`
	ID          int64      `json:"id"`
	Content     string     `json:"content"`
	PublishedAt time.Time  `json:"publishedAt"`
	Author      AuthorRead `json:"author"`
}

// CommentReadFull is the item projection: the list projection plus the post locator.
type CommentReadFull struct {
	CommentRead
	Post string `json:"post"`
}

type CommentPage struct {
	Items    []CommentRead `json:"items"`
	Count    int64         `json:"count"`
	Page     int           `json:"page"`
	PageSize int           `json:"pageSize"`
	HasMore  bool          `json:"hasMore"`
	Next     string        `json:"next,omitempty"`
}

type Violation struct {
	PropertyPath string `json:"propertyPath"`
	Message      string `json:"message"`
	Code         string `json:"code,omitempty"`
}

type ValidationResponse struct {
	Ok         bool        `json:"ok"`
	Details    string      `json:"details"`
	Violations []Violation `json:"violations"`
}

func NewAuthorRead(author model.UserAuthor) AuthorRead {
	return AuthorRead{
		ID:       author.ID,
		Username: author.Username,
		FullName: author.FullName,
	}
}

func NewCommentRead(c *model.FullComment) CommentRead {
	return CommentRead{
		IRI:         CommentIRI(c.Comment.ID),
		ID:          c.Comment.ID,
		Content:     c.Comment.Content,
		PublishedAt: c.Comment.PublishedAt,
		Author:      NewAuthorRead(c.Author),
	}
}

func NewCommentReadFull(c *model.FullComment) CommentReadFull {
	return CommentReadFull{
		CommentRead: NewCommentRead(c),
		Post:        PostIRI(c.Comment.PostID),
	}
}

func NewCommentPage(p *model.CommentsPage) CommentPage {
	items := make([]CommentRead, 0, len(p.Comments))
	for _, c := range p.Comments {
		items = append(items, NewCommentRead(c))
	}

	page := CommentPage{
		Items:    items,
		Count:    p.Count,
		Page:     p.Page,
		PageSize: p.PageSize,
		HasMore:  p.HasMore,
	}
	if p.HasMore {
		page.Next = CommentsPageIRI(p.PostID, p.Page+1)
	}
	return page
}
