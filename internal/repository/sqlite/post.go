package sqlite

import (
	"context"
	"time"

	"github.com/BloggingApp/comment-service/internal/model"
	"github.com/BloggingApp/comment-service/internal/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type postRow struct {
	ID          int64     `db:"id"`
	AuthorID    uuid.UUID `db:"author_id"`
	Title       string    `db:"title"`
	Slug        string    `db:"slug"`
	Summary     string    `db:"summary"`
	Content     string    `db:"content"`
	PublishedAt time.Time `db:"published_at"`
	Username    string    `db:"username"`
	FullName    string    `db:"full_name"`
}

type postRepo struct {
	db *sqlx.DB
}

func newPostRepo(db *sqlx.DB) repository.Post {
	return &postRepo{
		db: db,
	}
}

func (r *postRepo) Create(ctx context.Context, post model.Post) (*model.Post, error) {
	if post.PublishedAt.IsZero() {
		post.PublishedAt = time.Now().UTC()
	}
	res, err := r.db.ExecContext(
		ctx,
		"INSERT INTO posts(author_id, title, slug, summary, content, published_at) VALUES(?, ?, ?, ?, ?, ?)",
		post.AuthorID,
		post.Title,
		post.Slug,
		post.Summary,
		post.Content,
		post.PublishedAt.UTC(),
	)
	if err != nil {
		return nil, err
	}

	post.ID, err = res.LastInsertId()
	if err != nil {
		return nil, err
	}

	return &post, nil
}

func (r *postRepo) FindByID(ctx context.Context, id int64) (*model.FullPost, error) {
	var row postRow
	if err := r.db.GetContext(
		ctx,
		&row,
		`SELECT
		p.id, p.author_id, p.title, p.slug, p.summary, p.content, p.published_at, u.username, u.full_name
		FROM posts p
		JOIN cached_users u ON p.author_id = u.id
		WHERE p.id = ?`,
		id,
	); err != nil {
		return nil, notFound(err)
	}

	return &model.FullPost{
		Post: model.Post{
			ID:          row.ID,
			AuthorID:    row.AuthorID,
			Title:       row.Title,
			Slug:        row.Slug,
			Summary:     row.Summary,
			Content:     row.Content,
			PublishedAt: row.PublishedAt,
		},
		Author: model.UserAuthor{
			ID:       row.AuthorID,
			Username: row.Username,
			FullName: row.FullName,
		},
	}, nil
}
