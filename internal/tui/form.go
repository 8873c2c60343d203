package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/BloggingApp/comment-service/internal/dto"
	"github.com/BloggingApp/comment-service/internal/fetch"
	"github.com/BloggingApp/comment-service/internal/model"
	"github.com/BloggingApp/comment-service/internal/validation"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
)

const contentField = validation.FieldContent

var (
	msgRequired = "Please don't leave your comment blank!"
	msgTooShort = fmt.Sprintf("Comment is too short (%d characters minimum)", model.CommentMinLength)
	msgFailed   = "Could not save the comment, try again."
)

// CommentForm writes a new comment on a post, or edits an existing comment when
// one is given.
type CommentForm struct {
	api       CommentsAPI
	postID    int64
	comment   *dto.CommentRead
	input     textarea.Model
	req       *fetch.Request[*dto.CommentRead]
	localErr  string
	failed    bool
	onSuccess func(*dto.CommentRead)
	onCancel  func()
}

func NewCommentForm(ctx context.Context, api CommentsAPI, postID int64, comment *dto.CommentRead, onSuccess func(*dto.CommentRead), onCancel func()) *CommentForm {
	input := textarea.New()
	input.Placeholder = "Write a comment..."
	input.ShowLineNumbers = false
	input.CharLimit = model.CommentMaxLength
	input.SetHeight(3)

	f := &CommentForm{
		api:       api,
		postID:    postID,
		comment:   comment,
		input:     input,
		req:       fetch.NewRequest[*dto.CommentRead](ctx),
		onSuccess: onSuccess,
		onCancel:  onCancel,
	}
	if comment != nil {
		f.input.SetValue(comment.Content)
	}
	return f
}

func (f *CommentForm) Editing() bool {
	return f.comment != nil
}

// Submit checks the input locally and sends it. Nothing is sent while a
// submission is in flight or when the local check fails.
func (f *CommentForm) Submit() tea.Cmd {
	if f.req.Loading() {
		return nil
	}

	content := f.input.Value()
	if !validation.NotBlank(content) {
		f.localErr = msgRequired
		return nil
	}
	if tooShort, _ := validation.Length(content, model.CommentMinLength, model.CommentMaxLength); tooShort {
		f.localErr = msgTooShort
		return nil
	}
	f.localErr = ""
	f.failed = false

	if f.comment != nil {
		iri := f.comment.IRI
		return f.req.Load(func(ctx context.Context) (*dto.CommentRead, error) {
			updated, err := f.api.UpdateComment(ctx, iri, content)
			if err != nil {
				return nil, err
			}
			return &updated.CommentRead, nil
		})
	}

	postID := f.postID
	return f.req.Load(func(ctx context.Context) (*dto.CommentRead, error) {
		created, err := f.api.CreateComment(ctx, postID, content)
		if err != nil {
			return nil, err
		}
		return &created.CommentRead, nil
	})
}

// Cancel leaves edit mode. A create form has nothing to cancel.
func (f *CommentForm) Cancel() bool {
	if f.comment == nil {
		return false
	}
	f.req.Stop()
	if f.onCancel != nil {
		f.onCancel()
	}
	return true
}

func (f *CommentForm) Update(msg tea.Msg) tea.Cmd {
	if res, ok := f.req.Resolve(msg); ok {
		if res.Err != nil {
			f.failed = len(f.req.Errors()) == 0
			return nil
		}
		if f.comment == nil {
			f.input.Reset()
		}
		if f.onSuccess != nil {
			f.onSuccess(res.Value)
		}
		return nil
	}

	if _, ok := msg.(tea.KeyMsg); !ok {
		return nil
	}

	before := f.input.Value()
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	if f.input.Value() != before {
		f.localErr = ""
		f.failed = false
		f.req.ClearError(contentField)
	}
	return cmd
}

// FieldError is the message shown under the input, local or from the server.
func (f *CommentForm) FieldError() string {
	if f.localErr != "" {
		return f.localErr
	}
	return f.req.FieldError(contentField)
}

// Failed reports a rejection that carries no field message.
func (f *CommentForm) Failed() bool {
	return f.failed
}

func (f *CommentForm) Loading() bool {
	return f.req.Loading()
}

func (f *CommentForm) Value() string {
	return f.input.Value()
}

func (f *CommentForm) SetValue(s string) {
	f.input.SetValue(s)
}

func (f *CommentForm) Focus() tea.Cmd {
	return f.input.Focus()
}

func (f *CommentForm) Blur() {
	f.input.Blur()
}

func (f *CommentForm) Focused() bool {
	return f.input.Focused()
}

func (f *CommentForm) Stop() {
	f.req.Stop()
}

func (f *CommentForm) View(width int) string {
	if width > 4 {
		f.input.SetWidth(width - 4)
	}

	var b strings.Builder
	b.WriteString(f.input.View())

	if msg := f.FieldError(); msg != "" {
		b.WriteString("\n" + errorStyle.Render(msg))
	} else if f.Failed() {
		b.WriteString("\n" + errorStyle.Render(msgFailed))
	}

	switch {
	case f.req.Loading():
		b.WriteString("\n" + navStyle.Render("Sending..."))
	case f.Editing(), f.input.Focused():
		b.WriteString("\n" + helpLine(keys.Submit, keys.Cancel))
	default:
		b.WriteString("\n" + helpLine(keys.New))
	}

	return formStyle.Render(b.String())
}
