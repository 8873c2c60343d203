package dto

import (
	"time"

	"github.com/BloggingApp/comment-service/internal/model"
)

type PostRead struct {
	IRI         string     `json:"@id"`
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Summary     string     `json:"summary"`
	Content     string     `json:"content"`
	PublishedAt time.Time  `json:"publishedAt"`
	Author      AuthorRead `json:"author"`
}

func NewPostRead(p *model.FullPost) PostRead {
	return PostRead{
		IRI:         PostIRI(p.Post.ID),
		ID:          p.Post.ID,
		Title:       p.Post.Title,
		Slug:        p.Post.Slug,
		Summary:     p.Post.Summary,
		Content:     p.Post.Content,
		PublishedAt: p.Post.PublishedAt,
		Author:      NewAuthorRead(p.Author),
	}
}
