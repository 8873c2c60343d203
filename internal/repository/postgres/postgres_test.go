package postgres

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/BloggingApp/comment-service/internal/model"
	"github.com/BloggingApp/comment-service/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

const dbEnv = "TEST_DB_URL"

func TestPostgres(t *testing.T) {
	_ = godotenv.Load(".env")
	connstr, ok := os.LookupEnv(dbEnv)
	if !ok {
		t.Skipf("environment variable %s not set, skipping tests", dbEnv)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, connstr)
	if err != nil {
		t.Fatalf("pgxpool.New() = err %v", err)
	}
	defer pool.Close()

	if err := Migrate(ctx, pool); err != nil {
		t.Fatalf("Migrate() = err %v", err)
	}
	store := New(pool)

	user := model.CachedUser{ID: uuid.New(), Username: "jane_admin", FullName: "Jane Doe"}
	if err := store.User.Create(ctx, user); err != nil {
		t.Fatalf("User.Create() = err %v", err)
	}
	post, err := store.Post.Create(ctx, model.Post{AuthorID: user.ID, Title: "Title", Slug: "title", Content: "Body"})
	if err != nil {
		t.Fatalf("Post.Create() = err %v", err)
	}

	t.Run("Create()_and_FindByID()", func(t *testing.T) {
		c, err := store.Comment.Create(ctx, model.Comment{PostID: post.ID, AuthorID: user.ID, Content: "Hello there"})
		if err != nil {
			t.Fatalf("Create() = err %v", err)
		}
		got, err := store.Comment.FindByID(ctx, c.ID)
		if err != nil {
			t.Fatalf("FindByID() = err %v", err)
		}
		if got.Comment.Content != "Hello there" || got.Author.Username != user.Username {
			t.Errorf("FindByID() = %+v", got)
		}
	})

	t.Run("FindByID()_missing", func(t *testing.T) {
		if _, err := store.Comment.FindByID(ctx, -1); !errors.Is(err, repository.ErrNotFound) {
			t.Errorf("FindByID() = err %v, want %v", err, repository.ErrNotFound)
		}
	})
}
