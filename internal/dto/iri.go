package dto

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	CommentsPath = "/api/comments"
	PostsPath    = "/api/posts"
)

var ErrInvalidIRI = errors.New("invalid resource locator")

func CommentIRI(id int64) string {
	return fmt.Sprintf("%s/%d", CommentsPath, id)
}

func PostIRI(id int64) string {
	return fmt.Sprintf("%s/%d", PostsPath, id)
}

// CommentsPageIRI is the locator of one page of a post's comment collection.
func CommentsPageIRI(postID int64, page int) string {
	return fmt.Sprintf("%s?post=%d&page=%d", CommentsPath, postID, page)
}

// ParsePostIRI accepts either a post locator ("/api/posts/42") or a bare id ("42").
func ParsePostIRI(iri string) (int64, error) {
	return parseIRI(iri, PostsPath)
}

func ParseCommentIRI(iri string) (int64, error) {
	return parseIRI(iri, CommentsPath)
}

func parseIRI(iri string, prefix string) (int64, error) {
	s := strings.TrimSpace(iri)
	if strings.HasPrefix(s, "/") {
		if !strings.HasPrefix(s, prefix+"/") {
			return 0, ErrInvalidIRI
		}
		s = strings.TrimPrefix(s, prefix+"/")
	}

	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidIRI
	}
	return id, nil
}
