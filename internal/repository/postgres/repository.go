package postgres

import (
	"context"
	"errors"

	"github.com/BloggingApp/comment-service/internal/config"
	"github.com/BloggingApp/comment-service/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS cached_users(
		id UUID PRIMARY KEY,
		username TEXT NOT NULL,
		full_name TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS posts(
		id BIGSERIAL PRIMARY KEY,
		author_id UUID NOT NULL REFERENCES cached_users(id),
		title TEXT NOT NULL,
		slug TEXT NOT NULL,
		summary TEXT NOT NULL DEFAULT '',
		content TEXT NOT NULL,
		published_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS comments(
		id BIGSERIAL PRIMARY KEY,
		post_id BIGINT NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
		author_id UUID NOT NULL REFERENCES cached_users(id),
		content TEXT NOT NULL,
		published_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS comments_post_published_idx ON comments(post_id, published_at DESC, id DESC)`,
}

// DB opens a connection pool for cfg.
func DB(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	return pgxpool.New(ctx, cfg.ConnString())
}

// Migrate creates the tables the service needs if they are missing.
func Migrate(ctx context.Context, db *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func New(db *pgxpool.Pool) *repository.Store {
	return &repository.Store{
		Comment: newCommentRepo(db),
		Post:    newPostRepo(db),
		User:    newUserCacheRepo(db),
	}
}

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	return err
}
