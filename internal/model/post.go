package model

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	ID          int64     `json:"id"`
	AuthorID    uuid.UUID `json:"author_id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Summary     string    `json:"summary"`
	Content     string    `json:"content"`
	PublishedAt time.Time `json:"published_at"`
}

type FullPost struct {
	Post   Post       `json:"post"`
	Author UserAuthor `json:"author"`
}
