package repository

import (
	"context"
	"errors"

	"github.com/BloggingApp/comment-service/internal/model"
	"github.com/BloggingApp/comment-service/internal/repository/redisrepo"
	"github.com/google/uuid"
)

const MAX_LIMIT = 50

func MaxLimit(limit *int) {
	if *limit > MAX_LIMIT {
		*limit = MAX_LIMIT
	}
	if *limit < 1 {
		*limit = 1
	}
}

var (
	ErrNotFound                 = errors.New("record not found")
	ErrFieldsNotAllowedToUpdate = errors.New("fields not allowed to update")
)

// UserUpdatableFields are the cached user columns that may be changed by
// user-info-updated messages.
var UserUpdatableFields = []string{"username", "full_name"}

type Comment interface {
	Create(ctx context.Context, comment model.Comment) (*model.Comment, error)
	FindByID(ctx context.Context, id int64) (*model.FullComment, error)
	FindPostComments(ctx context.Context, postID int64, limit int, offset int) ([]*model.FullComment, error)
	CountPostComments(ctx context.Context, postID int64) (int64, error)
	UpdateContent(ctx context.Context, id int64, content string) error
	Delete(ctx context.Context, id int64) error
}

type Post interface {
	Create(ctx context.Context, post model.Post) (*model.Post, error)
	FindByID(ctx context.Context, id int64) (*model.FullPost, error)
}

type User interface {
	Create(ctx context.Context, user model.CachedUser) error
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.CachedUser, error)
}

// Store groups the persistent repositories of one storage backend.
type Store struct {
	Comment Comment
	Post    Post
	User    User
}

type Repository struct {
	Store *Store
	Redis *redisrepo.RedisRepository
}

func New(store *Store, redis *redisrepo.RedisRepository) *Repository {
	return &Repository{
		Store: store,
		Redis: redis,
	}
}

// CheckUpdates validates the keys of an update set against allowed.
func CheckUpdates(updates map[string]interface{}, allowed []string) error {
	allowedFieldsSet := make(map[string]struct{}, len(allowed))
	for _, field := range allowed {
		allowedFieldsSet[field] = struct{}{}
	}

	for field := range updates {
		if _, ok := allowedFieldsSet[field]; !ok {
			return ErrFieldsNotAllowedToUpdate
		}
	}
	return nil
}
