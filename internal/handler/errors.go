package handler

import (
	"errors"
	"net/http"
	"sort"

	"github.com/BloggingApp/comment-service/internal/dto"
	"github.com/BloggingApp/comment-service/internal/service"
	"github.com/BloggingApp/comment-service/internal/validation"
	"github.com/gin-gonic/gin"
)

var (
	errNotAuthorized = errors.New("user is not authorized")
	errInvalidPostID = errors.New("invalid post ID")
	errInvalidID     = errors.New("invalid ID")
)

// writeError maps a service error onto its status code and response body.
func (h *Handler) writeError(c *gin.Context, err error) {
	_ = c.Error(err)

	var verrs validation.Errors
	if errors.As(err, &verrs) {
		c.JSON(http.StatusUnprocessableEntity, dto.NewValidationResponse(violations(verrs)))
		return
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrNotAuthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrCommentNotFound), errors.Is(err, service.ErrPostNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrInvalidPage), errors.Is(err, service.ErrInvalidPostIRI):
		status = http.StatusBadRequest
	default:
		err = service.ErrInternal
	}

	c.JSON(status, dto.NewBasicResponse(false, err.Error()))
}

func violations(errs validation.Errors) []dto.Violation {
	result := make([]dto.Violation, 0, len(errs))
	for _, fieldErr := range errs {
		result = append(result, dto.Violation{
			PropertyPath: fieldErr.Field,
			Message:      fieldErr.Message,
			Code:         fieldErr.Code,
		})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].PropertyPath < result[j].PropertyPath
	})
	return result
}
