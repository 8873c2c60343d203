package postgres

import (
	"context"
	"time"

	"github.com/BloggingApp/comment-service/internal/model"
	"github.com/BloggingApp/comment-service/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postRepo struct {
	db *pgxpool.Pool
}

func newPostRepo(db *pgxpool.Pool) repository.Post {
	return &postRepo{
		db: db,
	}
}

func (r *postRepo) Create(ctx context.Context, post model.Post) (*model.Post, error) {
	if post.PublishedAt.IsZero() {
		post.PublishedAt = time.Now().UTC()
	}
	if err := r.db.QueryRow(
		ctx,
		"INSERT INTO posts(author_id, title, slug, summary, content, published_at) VALUES($1, $2, $3, $4, $5, $6) RETURNING id",
		post.AuthorID,
		post.Title,
		post.Slug,
		post.Summary,
		post.Content,
		post.PublishedAt,
	).Scan(&post.ID); err != nil {
		return nil, err
	}

	return &post, nil
}

func (r *postRepo) FindByID(ctx context.Context, id int64) (*model.FullPost, error) {
	var post model.FullPost
	if err := r.db.QueryRow(
		ctx,
		`SELECT
		p.id, p.author_id, p.title, p.slug, p.summary, p.content, p.published_at, u.username, u.full_name
		FROM posts p
		JOIN cached_users u ON p.author_id = u.id
		WHERE p.id = $1`,
		id,
	).Scan(
		&post.Post.ID,
		&post.Post.AuthorID,
		&post.Post.Title,
		&post.Post.Slug,
		&post.Post.Summary,
		&post.Post.Content,
		&post.Post.PublishedAt,
		&post.Author.Username,
		&post.Author.FullName,
	); err != nil {
		return nil, notFound(err)
	}
	post.Author.ID = post.Post.AuthorID

	return &post, nil
}
