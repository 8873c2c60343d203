package handler

import (
	"net/http"

	"github.com/BloggingApp/comment-service/internal/dto"
	"github.com/gin-gonic/gin"
)

func (h *Handler) commentsList(c *gin.Context) {
	var input dto.GetCommentsQuery
	if err := c.ShouldBindQuery(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	postID, err := dto.ParsePostIRI(input.Post)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidPostID.Error()))
		return
	}

	page, err := h.services.Comment.List(c.Request.Context(), postID, input.Page)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCommentPage(page))
}

func (h *Handler) commentsGet(c *gin.Context) {
	commentID, ok := h.commentIDParam(c)
	if !ok {
		return
	}

	comment, err := h.services.Comment.Get(c.Request.Context(), commentID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCommentReadFull(comment))
}

func (h *Handler) commentsCreate(c *gin.Context) {
	user := h.getUserFromRequest(c)

	var input dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	createdComment, err := h.services.Comment.Create(c.Request.Context(), user, input)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.Header("Location", dto.CommentIRI(createdComment.Comment.ID))
	c.JSON(http.StatusCreated, dto.NewCommentReadFull(createdComment))
}

func (h *Handler) commentsUpdate(c *gin.Context) {
	user := h.getUserFromRequest(c)

	commentID, ok := h.commentIDParam(c)
	if !ok {
		return
	}

	var input dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	updatedComment, err := h.services.Comment.Update(c.Request.Context(), user, commentID, input)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCommentReadFull(updatedComment))
}

func (h *Handler) commentsDelete(c *gin.Context) {
	user := h.getUserFromRequest(c)

	commentID, ok := h.commentIDParam(c)
	if !ok {
		return
	}

	if err := h.services.Comment.Delete(c.Request.Context(), user, commentID); err != nil {
		h.writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) commentIDParam(c *gin.Context) (int64, bool) {
	commentID, err := dto.ParseCommentIRI(c.Param("commentID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidID.Error()))
		return 0, false
	}
	return commentID, true
}
