package dto

// CreateCommentRequest is the create projection: only content and the owning post
// are accepted from the client.
type CreateCommentRequest struct {
	Content string `json:"content"`
	Post    string `json:"post" binding:"required"`
}

// UpdateCommentRequest is the update projection. Post, author and publishedAt are
// not part of it, so they can never be changed through an update.
type UpdateCommentRequest struct {
	Content string `json:"content"`
}

// GetCommentsQuery filters the collection by post. Post takes a locator or a
// bare id, the same as CreateCommentRequest.Post.
type GetCommentsQuery struct {
	Post string `form:"post" binding:"required"`
	Page int    `form:"page,default=1"`
}
