package service

import (
	"context"
	"time"

	"github.com/BloggingApp/comment-service/internal/config"
	"github.com/BloggingApp/comment-service/internal/dto"
	"github.com/BloggingApp/comment-service/internal/model"
	"github.com/BloggingApp/comment-service/internal/repository"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type Comment interface {
	List(ctx context.Context, postID int64, page int) (*model.CommentsPage, error)
	Get(ctx context.Context, id int64) (*model.FullComment, error)
	Create(ctx context.Context, user *model.CachedUser, req dto.CreateCommentRequest) (*model.FullComment, error)
	Update(ctx context.Context, user *model.CachedUser, id int64, req dto.UpdateCommentRequest) (*model.FullComment, error)
	Delete(ctx context.Context, user *model.CachedUser, id int64) error
}

type Post interface {
	FindByID(ctx context.Context, id int64) (*model.FullPost, error)
}

type UserCache interface {
	CreateOrGet(ctx context.Context, user model.CachedUser) (*model.CachedUser, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.CachedUser, error)
	StartConsumeUpdates(ctx context.Context)
}

// Broker is the message broker as seen by the services. A nil Broker disables
// event publishing and consuming.
type Broker interface {
	PublishJSON(ctx context.Context, queue string, v interface{}) error
	Consume(queue string) (<-chan amqp.Delivery, error)
}

type Service struct {
	Comment
	Post
	UserCache
}

func New(logger *zap.Logger, repo *repository.Repository, broker Broker, cfg config.CommentsConfig) *Service {
	posts := newPostService(logger, repo, cfg)
	return &Service{
		Comment:   newCommentService(logger, repo, posts, broker, cfg, time.Now),
		Post:      posts,
		UserCache: newUserCacheService(logger, repo, broker, cfg),
	}
}

// StartConsumeAll blocks consuming every queue this service listens to.
func (s *Service) StartConsumeAll(ctx context.Context) {
	s.UserCache.StartConsumeUpdates(ctx)
}
