package service

import (
	"context"
	"errors"

	"github.com/BloggingApp/comment-service/internal/config"
	"github.com/BloggingApp/comment-service/internal/model"
	"github.com/BloggingApp/comment-service/internal/repository"
	"github.com/BloggingApp/comment-service/internal/repository/redisrepo"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type postService struct {
	logger *zap.Logger
	repo   *repository.Repository
	cfg    config.CommentsConfig
}

func newPostService(logger *zap.Logger, repo *repository.Repository, cfg config.CommentsConfig) *postService {
	return &postService{
		logger: logger,
		repo:   repo,
		cfg:    cfg.Normalized(),
	}
}

func (s *postService) FindByID(ctx context.Context, id int64) (*model.FullPost, error) {
	cachedPost, err := redisrepo.Get[model.FullPost](s.repo.Redis.Default, ctx, redisrepo.PostKey(id))
	if err == nil && cachedPost != nil {
		return cachedPost, nil
	}
	if err != nil && !errors.Is(err, redis.Nil) {
		s.logger.Sugar().Errorf("failed to get post(%d) from redis: %s", id, err.Error())
	}

	post, err := s.repo.Store.Post.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		s.logger.Sugar().Errorf("failed to find post(%d): %s", id, err.Error())
		return nil, ErrInternal
	}

	if err := s.repo.Redis.Default.SetJSON(ctx, redisrepo.PostKey(id), post, s.cfg.CacheTTL); err != nil {
		s.logger.Sugar().Errorf("failed to set post(%d) in redis: %s", id, err.Error())
	}

	return post, nil
}
