package policy

import (
	"github.com/BloggingApp/comment-service/internal/model"
	"github.com/google/uuid"
)

func IsAuthenticated(user *model.CachedUser) bool {
	return user != nil && user.ID != uuid.Nil
}

func IsAuthor(user *model.CachedUser, comment *model.Comment) bool {
	if user == nil || comment == nil {
		return false
	}
	return user.ID == comment.AuthorID
}

// CanEditComment guards both update and delete of a comment.
func CanEditComment(user *model.CachedUser, comment *model.Comment) bool {
	return IsAuthenticated(user) && IsAuthor(user, comment)
}
