package sqlite

import (
	"context"

	"github.com/BloggingApp/comment-service/internal/model"
	"github.com/BloggingApp/comment-service/internal/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type userCacheRepo struct {
	db *sqlx.DB
}

func newUserCacheRepo(db *sqlx.DB) repository.User {
	return &userCacheRepo{
		db: db,
	}
}

func (r *userCacheRepo) Create(ctx context.Context, cachedUser model.CachedUser) error {
	_, err := r.db.NamedExecContext(
		ctx,
		"INSERT INTO cached_users(id, username, full_name) VALUES(:id, :username, :full_name) ON CONFLICT(id) DO NOTHING",
		cachedUser,
	)
	return err
}

func (r *userCacheRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}

	if err := repository.CheckUpdates(updates, repository.UserUpdatableFields); err != nil {
		return err
	}

	query := "UPDATE cached_users SET "
	args := map[string]interface{}{"id": id}
	for column, value := range updates {
		query += column + " = :" + column + ", "
		args[column] = value
	}
	query = query[:len(query)-2] + " WHERE id = :id"

	_, err := r.db.NamedExecContext(ctx, query, args)
	return err
}

func (r *userCacheRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.CachedUser, error) {
	var user model.CachedUser
	if err := r.db.GetContext(ctx, &user, "SELECT id, username, full_name FROM cached_users WHERE id = ?", id); err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}
