package service

import "errors"

var (
	ErrInternal         = errors.New("internal server error")
	ErrNotAuthenticated = errors.New("full authentication is required to access this resource")
	ErrForbidden        = errors.New("access denied")
	ErrCommentNotFound  = errors.New("comment not found")
	ErrPostNotFound     = errors.New("post not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrInvalidPage      = errors.New("page must be a positive integer")
	ErrInvalidPostIRI   = errors.New("invalid post reference")
)
