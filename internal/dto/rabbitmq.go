package dto

import (
	"time"

	"github.com/google/uuid"
)

type MQCommentEventMsg struct {
	CommentID  int64     `json:"comment_id"`
	PostID     int64     `json:"post_id"`
	AuthorID   uuid.UUID `json:"author_id"`
	Content    string    `json:"content,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// MQUserUpdatedMsg carries a user id plus the changed columns, e.g.
// {"user_id": "...", "username": "...", "full_name": "..."}.
type MQUserUpdatedMsg map[string]interface{}
