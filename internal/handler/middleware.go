package handler

import (
	"net/http"
	"time"

	"github.com/BloggingApp/comment-service/internal/dto"
	"github.com/BloggingApp/comment-service/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request-id"
)

// requestIDMiddleware takes the request id from the X-Request-ID header or
// generates one, and echoes it back in the response.
func (h *Handler) requestIDMiddleware(c *gin.Context) {
	rid := c.GetHeader(requestIDHeader)
	if rid == "" {
		rid = uuid.NewString()
	}
	c.Set(requestIDKey, rid)
	c.Header(requestIDHeader, rid)

	c.Next()
}

// wideEventLogMiddleware logs one line per request once it is served.
func (h *Handler) wideEventLogMiddleware(c *gin.Context) {
	start := time.Now()

	c.Next()

	fields := []zap.Field{
		zap.String("request_id", c.GetString(requestIDKey)),
		zap.Int("status_code", c.Writer.Status()),
		zap.Int("response_length", c.Writer.Size()),
		zap.Int64("content_length", c.Request.ContentLength),
		zap.String("method", c.Request.Method),
		zap.String("proto", c.Request.Proto),
		zap.String("remote_addr", c.ClientIP()),
		zap.String("uri", c.Request.RequestURI),
		zap.String("user_agent", c.Request.UserAgent()),
		zap.Duration("latency", time.Since(start)),
	}
	if user := h.getUserFromRequest(c); user != nil {
		fields = append(fields, zap.String("user_id", user.ID.String()))
	}
	if err := c.Errors.Last(); err != nil {
		fields = append(fields, zap.Error(err.Err))
	}

	h.logger.Info("request received", fields...)
}

func (h *Handler) recoveryHandler(c *gin.Context, recovered any) {
	h.logger.Sugar().Errorf("panic while serving %s %s: %v", c.Request.Method, c.Request.URL.Path, recovered)
	c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewBasicResponse(false, service.ErrInternal.Error()))
}
