package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/BloggingApp/comment-service/internal/model"
	"github.com/BloggingApp/comment-service/internal/service"
	"github.com/BloggingApp/comment-service/pkg/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const cachedUserKey = "cached-user"

type Options struct {
	// AccessSecret verifies bearer tokens.
	AccessSecret []byte
	// AllowOrigins lists the CORS origins; empty allows any origin.
	AllowOrigins []string
}

type Handler struct {
	services *service.Service
	logger   *zap.Logger
	opts     Options
}

func New(services *service.Service, logger *zap.Logger, opts Options) *Handler {
	return &Handler{
		services: services,
		logger:   logger,
		opts:     opts,
	}
}

func (h *Handler) InitRoutes() *gin.Engine {
	r := gin.New()

	r.Use(
		h.requestIDMiddleware,
		h.wideEventLogMiddleware,
		gin.CustomRecovery(h.recoveryHandler),
		cors.New(h.corsConfig()),
	)

	api := r.Group("/api", h.notRequiredAuthMiddleware)
	{
		comments := api.Group("/comments")
		{
			comments.GET("", h.commentsList)
			comments.POST("", h.authMiddleware, h.commentsCreate)

			comment := comments.Group("/:commentID")
			{
				comment.GET("", h.commentsGet)
				comment.PUT("", h.authMiddleware, h.commentsUpdate)
				comment.DELETE("", h.authMiddleware, h.commentsDelete)
			}
		}

		api.GET("/posts/:postID", h.postsGetByID)
	}

	return r
}

func (h *Handler) corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
	}
	if len(h.opts.AllowOrigins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = h.opts.AllowOrigins
	cfg.AllowCredentials = true
	return cfg
}

func (h *Handler) getUserDataFromAccessTokenClaims(ctx context.Context, accessToken string) (*model.CachedUser, error) {
	claims, err := utils.DecodeJWT(accessToken, h.opts.AccessSecret)
	if err != nil {
		return nil, err
	}

	return h.getUserDataFromClaims(ctx, claims)
}

func (h *Handler) getUserDataFromClaims(ctx context.Context, claims jwt.MapClaims) (*model.CachedUser, error) {
	idString, ok := claims["id"].(string)
	if !ok {
		return nil, errors.New("token has no id claim")
	}
	id, err := uuid.Parse(idString)
	if err != nil {
		return nil, err
	}

	username, _ := claims["username"].(string)
	fullName, _ := claims["full_name"].(string)

	return h.services.UserCache.CreateOrGet(ctx, model.CachedUser{
		ID:       id,
		Username: username,
		FullName: fullName,
	})
}

func (h *Handler) getUserFromRequest(c *gin.Context) *model.CachedUser {
	userReq, _ := c.Get(cachedUserKey)

	user, ok := userReq.(model.CachedUser)
	if !ok {
		return nil
	}

	return &user
}
