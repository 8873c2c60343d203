// Package sqlite is the embedded storage backend used for local development and
// tests. It implements the same repositories as the postgres package.
package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/BloggingApp/comment-service/internal/repository"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS cached_users(
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL,
		full_name TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS posts(
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		author_id TEXT NOT NULL REFERENCES cached_users(id),
		title TEXT NOT NULL,
		slug TEXT NOT NULL,
		summary TEXT NOT NULL DEFAULT '',
		content TEXT NOT NULL,
		published_at DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS comments(
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		post_id INTEGER NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
		author_id TEXT NOT NULL REFERENCES cached_users(id),
		content TEXT NOT NULL,
		published_at DATETIME NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS comments_post_published_idx ON comments(post_id, published_at DESC, id DESC)`,
}

// Connect opens the database and checks the connection.
func Connect(dsn string) (*sqlx.DB, error) {
	return sqlx.Connect("sqlite3", dsn)
}

// Migrate creates the tables the service needs if they are missing.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, stmt := range schema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func New(db *sqlx.DB) *repository.Store {
	return &repository.Store{
		Comment: newCommentRepo(db),
		Post:    newPostRepo(db),
		User:    newUserCacheRepo(db),
	}
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	return err
}

func affected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
