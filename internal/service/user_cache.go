package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/BloggingApp/comment-service/internal/config"
	"github.com/BloggingApp/comment-service/internal/dto"
	"github.com/BloggingApp/comment-service/internal/model"
	"github.com/BloggingApp/comment-service/internal/rabbitmq"
	"github.com/BloggingApp/comment-service/internal/repository"
	"github.com/BloggingApp/comment-service/internal/repository/redisrepo"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type userCacheService struct {
	logger *zap.Logger
	repo   *repository.Repository
	broker Broker
	cfg    config.CommentsConfig
}

func newUserCacheService(logger *zap.Logger, repo *repository.Repository, broker Broker, cfg config.CommentsConfig) UserCache {
	return &userCacheService{
		logger: logger,
		repo:   repo,
		broker: broker,
		cfg:    cfg.Normalized(),
	}
}

// CreateOrGet returns the cached copy of user, storing the given identity the
// first time the user is seen.
func (s *userCacheService) CreateOrGet(ctx context.Context, user model.CachedUser) (*model.CachedUser, error) {
	cachedUser, err := s.FindByID(ctx, user.ID)
	if err == nil {
		return cachedUser, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	if err := s.repo.Store.User.Create(ctx, user); err != nil {
		s.logger.Sugar().Errorf("failed to create cached user(%s): %s", user.ID.String(), err.Error())
		return nil, ErrInternal
	}

	return &user, nil
}

func (s *userCacheService) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	if err := s.repo.Store.User.Update(ctx, id, updates); err != nil {
		s.logger.Sugar().Errorf("failed to update cached user(%s): %s", id.String(), err.Error())
		if errors.Is(err, repository.ErrFieldsNotAllowedToUpdate) {
			return err
		}
		return ErrInternal
	}

	if err := s.repo.Redis.Default.Del(ctx, redisrepo.UserCacheKey(id.String())).Err(); err != nil {
		s.logger.Sugar().Errorf("failed to delete cached user(%s) from redis: %s", id.String(), err.Error())
	}

	return nil
}

func (s *userCacheService) FindByID(ctx context.Context, id uuid.UUID) (*model.CachedUser, error) {
	cachedUser, err := redisrepo.Get[model.CachedUser](s.repo.Redis.Default, ctx, redisrepo.UserCacheKey(id.String()))
	if err == nil && cachedUser != nil {
		return cachedUser, nil
	}
	if err != nil && !errors.Is(err, redis.Nil) {
		s.logger.Sugar().Errorf("failed to get cached user(%s) from redis: %s", id.String(), err.Error())
	}

	user, err := s.repo.Store.User.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}

		s.logger.Sugar().Errorf("failed to get cached user(%s) from storage: %s", id.String(), err.Error())
		return nil, ErrInternal
	}

	if err := s.repo.Redis.Default.SetJSON(ctx, redisrepo.UserCacheKey(id.String()), user, s.cfg.CacheTTL); err != nil {
		s.logger.Sugar().Errorf("failed to set user(%s) in redis: %s", id.String(), err.Error())
	}

	return user, nil
}

func (s *userCacheService) StartConsumeUpdates(ctx context.Context) {
	if s.broker == nil {
		return
	}

	queue := rabbitmq.USER_INFO_UPDATED_QUEUE
	msgs, err := s.broker.Consume(queue)
	if err != nil {
		s.logger.Sugar().Errorf("failed to start consume updates from queue(%s): %s", queue, err.Error())
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}

			var data dto.MQUserUpdatedMsg
			if err := json.Unmarshal(msg.Body, &data); err != nil {
				s.logger.Sugar().Errorf("failed to unmarshal json in queue(%s): %s", queue, err.Error())
				_ = msg.Nack(false, false)
				continue
			}

			userIDString, exists := data["user_id"].(string)
			if !exists {
				s.logger.Sugar().Errorf("'user_id' field is not provided")
				_ = msg.Nack(false, false)
				continue
			}
			userID, err := uuid.Parse(userIDString)
			if err != nil {
				s.logger.Sugar().Errorf("provided an invalid user_id")
				_ = msg.Nack(false, false)
				continue
			}

			delete(data, "user_id")

			if err := s.Update(ctx, userID, data); err != nil {
				// a bad field set will never succeed, so only requeue storage failures
				_ = msg.Nack(false, !errors.Is(err, repository.ErrFieldsNotAllowedToUpdate))
				continue
			}

			_ = msg.Ack(false)
		}
	}
}
