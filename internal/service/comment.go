package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/BloggingApp/comment-service/internal/config"
	"github.com/BloggingApp/comment-service/internal/dto"
	"github.com/BloggingApp/comment-service/internal/model"
	"github.com/BloggingApp/comment-service/internal/policy"
	"github.com/BloggingApp/comment-service/internal/rabbitmq"
	"github.com/BloggingApp/comment-service/internal/repository"
	"github.com/BloggingApp/comment-service/internal/repository/redisrepo"
	"github.com/BloggingApp/comment-service/internal/validation"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type commentService struct {
	logger *zap.Logger
	repo   *repository.Repository
	posts  Post
	broker Broker
	cfg    config.CommentsConfig
	now    func() time.Time
}

func newCommentService(logger *zap.Logger, repo *repository.Repository, posts Post, broker Broker, cfg config.CommentsConfig, now func() time.Time) Comment {
	return &commentService{
		logger: logger,
		repo:   repo,
		posts:  posts,
		broker: broker,
		cfg:    cfg.Normalized(),
		now:    now,
	}
}

func (s *commentService) List(ctx context.Context, postID int64, page int) (*model.CommentsPage, error) {
	limit := s.cfg.PageSize
	repository.MaxLimit(&limit)
	if page < 1 || page-1 > math.MaxInt/limit {
		return nil, ErrInvalidPage
	}
	offset := (page - 1) * limit

	count, err := s.countPostComments(ctx, postID)
	if err != nil {
		return nil, err
	}

	comments, err := s.repo.Store.Comment.FindPostComments(ctx, postID, limit, offset)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find post(%d) comments page(%d): %s", postID, page, err.Error())
		return nil, ErrInternal
	}

	return &model.CommentsPage{
		PostID:   postID,
		Comments: comments,
		Page:     page,
		PageSize: limit,
		Count:    count,
		HasMore:  int64(offset+len(comments)) < count,
	}, nil
}

func (s *commentService) countPostComments(ctx context.Context, postID int64) (int64, error) {
	key := redisrepo.PostCommentsCountKey(postID)

	count, err := redisrepo.GetInt64(s.repo.Redis.Default, ctx, key)
	if err == nil {
		return count, nil
	}
	if !errors.Is(err, redis.Nil) {
		s.logger.Sugar().Errorf("failed to get post(%d) comments count from redis: %s", postID, err.Error())
	}

	count, err = s.repo.Store.Comment.CountPostComments(ctx, postID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to count post(%d) comments: %s", postID, err.Error())
		return 0, ErrInternal
	}

	if err := s.repo.Redis.Default.Set(ctx, key, count, s.cfg.CacheTTL); err != nil {
		s.logger.Sugar().Errorf("failed to set post(%d) comments count in redis: %s", postID, err.Error())
	}

	return count, nil
}

func (s *commentService) Get(ctx context.Context, id int64) (*model.FullComment, error) {
	comment, err := s.repo.Store.Comment.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCommentNotFound
		}
		s.logger.Sugar().Errorf("failed to find comment(%d): %s", id, err.Error())
		return nil, ErrInternal
	}

	return comment, nil
}

func (s *commentService) Create(ctx context.Context, user *model.CachedUser, req dto.CreateCommentRequest) (*model.FullComment, error) {
	if !policy.IsAuthenticated(user) {
		return nil, ErrNotAuthenticated
	}

	postID, err := dto.ParsePostIRI(req.Post)
	if err != nil {
		return nil, ErrInvalidPostIRI
	}

	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		return nil, err
	}

	if err := validation.ValidateCommentContent(req.Content); err != nil {
		return nil, err
	}

	created, err := s.repo.Store.Comment.Create(ctx, model.Comment{
		PostID:      postID,
		AuthorID:    user.ID,
		Content:     req.Content,
		PublishedAt: s.now().UTC(),
	})
	if err != nil {
		s.logger.Sugar().Errorf("failed to create user(%s) comment on post(%d): %s", user.ID.String(), postID, err.Error())
		return nil, ErrInternal
	}

	s.invalidateCount(ctx, postID)
	s.publish(ctx, rabbitmq.COMMENT_CREATED_QUEUE, created)

	return &model.FullComment{
		Comment: *created,
		Author:  user.AsAuthor(),
	}, nil
}

func (s *commentService) Update(ctx context.Context, user *model.CachedUser, id int64, req dto.UpdateCommentRequest) (*model.FullComment, error) {
	comment, err := s.editable(ctx, user, id)
	if err != nil {
		return nil, err
	}

	if err := validation.ValidateCommentContent(req.Content); err != nil {
		return nil, err
	}

	if err := s.repo.Store.Comment.UpdateContent(ctx, id, req.Content); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCommentNotFound
		}
		s.logger.Sugar().Errorf("failed to update comment(%d): %s", id, err.Error())
		return nil, ErrInternal
	}
	comment.Comment.Content = req.Content

	s.publish(ctx, rabbitmq.COMMENT_UPDATED_QUEUE, &comment.Comment)

	return comment, nil
}

func (s *commentService) Delete(ctx context.Context, user *model.CachedUser, id int64) error {
	comment, err := s.editable(ctx, user, id)
	if err != nil {
		return err
	}

	if err := s.repo.Store.Comment.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCommentNotFound
		}
		s.logger.Sugar().Errorf("failed to delete comment(%d): %s", id, err.Error())
		return ErrInternal
	}

	s.invalidateCount(ctx, comment.Comment.PostID)
	s.publish(ctx, rabbitmq.COMMENT_DELETED_QUEUE, &comment.Comment)

	return nil
}

// editable loads a comment and checks that user may change it.
func (s *commentService) editable(ctx context.Context, user *model.CachedUser, id int64) (*model.FullComment, error) {
	if !policy.IsAuthenticated(user) {
		return nil, ErrNotAuthenticated
	}

	comment, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !policy.CanEditComment(user, &comment.Comment) {
		return nil, ErrForbidden
	}

	return comment, nil
}

func (s *commentService) invalidateCount(ctx context.Context, postID int64) {
	if err := s.repo.Redis.Default.Del(ctx, redisrepo.PostCommentsCountKey(postID)).Err(); err != nil {
		s.logger.Sugar().Errorf("failed to delete post(%d) comments count from redis: %s", postID, err.Error())
	}
}

func (s *commentService) publish(ctx context.Context, queue string, comment *model.Comment) {
	if s.broker == nil {
		return
	}

	msg := dto.MQCommentEventMsg{
		CommentID:  comment.ID,
		PostID:     comment.PostID,
		AuthorID:   comment.AuthorID,
		Content:    comment.Content,
		OccurredAt: s.now().UTC(),
	}
	if queue == rabbitmq.COMMENT_DELETED_QUEUE {
		msg.Content = ""
	}

	if err := s.broker.PublishJSON(ctx, queue, msg); err != nil {
		s.logger.Sugar().Errorf("failed to publish comment(%d) to queue(%s): %s", comment.ID, queue, err.Error())
	}
}
