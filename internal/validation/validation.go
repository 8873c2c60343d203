// Package validation holds the content checks applied to comments before they are
// stored. Every check reports a stable code together with a readable message.
package validation

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/BloggingApp/comment-service/internal/model"
)

const FieldContent = "content"

const (
	CodeBlank    = "comment.blank"
	CodeTooShort = "comment.too_short"
	CodeTooLong  = "comment.too_long"
	CodeIsSpam   = "comment.is_spam"
)

var messages = map[string]string{
	CodeBlank:    "Please don't leave your comment blank!",
	CodeTooShort: "Comment is too short (%d characters minimum)",
	CodeTooLong:  "Comment is too long (%d characters maximum)",
	CodeIsSpam:   "The content of this comment is considered spam.",
}

type FieldError struct {
	Field   string
	Code    string
	Message string
}

// Errors maps a field to the first violation found for it.
type Errors map[string]FieldError

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+e[field].Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e Errors) add(field, code string, args ...interface{}) {
	if _, exists := e[field]; exists {
		return
	}
	e[field] = FieldError{
		Field:   field,
		Code:    code,
		Message: fmt.Sprintf(messages[code], args...),
	}
}

func NotBlank(s string) bool {
	return strings.TrimSpace(s) != ""
}

// Length reports whether s has between min and max characters. Characters are
// counted as runes, not bytes.
func Length(s string, min, max int) (tooShort bool, tooLong bool) {
	n := utf8.RuneCountInString(s)
	return n < min, n > max
}

// NotSpam rejects anything containing "@", mentions and e-mail addresses included.
func NotSpam(s string) bool {
	return !strings.Contains(s, "@")
}

// ValidateCommentContent runs every content check and returns nil or Errors.
func ValidateCommentContent(content string) error {
	errs := Errors{}

	if !NotBlank(content) {
		errs.add(FieldContent, CodeBlank)
	} else {
		tooShort, tooLong := Length(content, model.CommentMinLength, model.CommentMaxLength)
		if tooShort {
			errs.add(FieldContent, CodeTooShort, model.CommentMinLength)
		}
		if tooLong {
			errs.add(FieldContent, CodeTooLong, model.CommentMaxLength)
		}
	}

	if !NotSpam(content) {
		errs.add(FieldContent, CodeIsSpam)
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
