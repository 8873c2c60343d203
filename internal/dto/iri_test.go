package dto

import (
	"errors"
	"testing"
)

func TestParseIRI(t *testing.T) {
	tests := []struct {
		name    string
		parse   func(string) (int64, error)
		in      string
		want    int64
		wantErr bool
	}{
		{"comment_locator", ParseCommentIRI, "/api/comments/7", 7, false},
		{"comment_bare_id", ParseCommentIRI, " 7 ", 7, false},
		{"comment_wrong_collection", ParseCommentIRI, "/api/posts/7", 0, true},
		{"comment_zero", ParseCommentIRI, "0", 0, true},
		{"comment_garbage", ParseCommentIRI, "abc", 0, true},
		{"post_locator", ParsePostIRI, "/api/posts/42", 42, false},
		{"post_bare_id", ParsePostIRI, "42", 42, false},
		{"post_negative", ParsePostIRI, "-3", 0, true},
		{"post_trailing_path", ParsePostIRI, "/api/posts/42/comments", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.parse(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidIRI) {
					t.Errorf("parse(%q) = %d, err %v, want %v", tt.in, got, err, ErrInvalidIRI)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("parse(%q) = %d, err %v, want %d", tt.in, got, err, tt.want)
			}
		})
	}

	if got, err := ParseCommentIRI(CommentIRI(12)); err != nil || got != 12 {
		t.Errorf("ParseCommentIRI(CommentIRI(12)) = %d, err %v", got, err)
	}
}
