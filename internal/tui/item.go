package tui

import (
	"context"
	"strings"

	"github.com/BloggingApp/comment-service/internal/dto"
	"github.com/BloggingApp/comment-service/internal/fetch"
	tea "github.com/charmbracelet/bubbletea"
)

type Mode int

const (
	Viewing Mode = iota
	Editing
)

func (m Mode) String() string {
	if m == Editing {
		return "EDITING"
	}
	return "VIEWING"
}

// commentMutator is the part of the list an item may change.
type commentMutator interface {
	UpdateComment(newComment, oldComment *dto.CommentRead)
	RemoveComment(comment *dto.CommentRead)
}

type CommentItem struct {
	ctx       context.Context
	api       CommentsAPI
	list      commentMutator
	comment   *dto.CommentRead
	canEdit   bool
	mode      Mode
	published string
	form      *CommentForm
	del       *fetch.Request[struct{}]
}

func NewCommentItem(ctx context.Context, api CommentsAPI, list commentMutator, comment *dto.CommentRead, canEdit bool, dateLayout string) *CommentItem {
	return &CommentItem{
		ctx:       ctx,
		api:       api,
		list:      list,
		comment:   comment,
		canEdit:   canEdit,
		mode:      Viewing,
		published: comment.PublishedAt.Local().Format(dateLayout),
		del:       fetch.NewRequest[struct{}](ctx),
	}
}

func (i *CommentItem) Comment() *dto.CommentRead {
	return i.comment
}

func (i *CommentItem) CanEdit() bool {
	return i.canEdit
}

func (i *CommentItem) Mode() Mode {
	return i.mode
}

// Published is publishedAt as formatted when the item was built.
func (i *CommentItem) Published() string {
	return i.published
}

func (i *CommentItem) Form() *CommentForm {
	return i.form
}

func (i *CommentItem) Deleting() bool {
	return i.del.Loading()
}

// Edit switches to EDITING with the current content in the form.
func (i *CommentItem) Edit() tea.Cmd {
	if !i.canEdit || i.mode != Viewing || i.del.Loading() {
		return nil
	}

	i.form = NewCommentForm(i.ctx, i.api, 0, i.comment, i.edited, i.cancelled)
	i.mode = Editing
	return i.form.Focus()
}

// Cancel drops the unsaved input and returns to VIEWING.
func (i *CommentItem) Cancel() {
	if i.mode != Editing {
		return
	}
	i.form.Cancel()
}

func (i *CommentItem) cancelled() {
	i.form = nil
	i.mode = Viewing
}

func (i *CommentItem) edited(updated *dto.CommentRead) {
	old := i.comment
	i.form = nil
	i.mode = Viewing
	i.list.UpdateComment(updated, old)
}

// Delete asks the server to delete the comment. It is a no-op while editing,
// without permission, or while a delete is already in flight.
func (i *CommentItem) Delete() tea.Cmd {
	if !i.canEdit || i.mode != Viewing {
		return nil
	}

	iri := i.comment.IRI
	return i.del.Load(func(ctx context.Context) (struct{}, error) {
		return struct{}{}, i.api.DeleteComment(ctx, iri)
	})
}

func (i *CommentItem) Update(msg tea.Msg) tea.Cmd {
	if res, ok := i.del.Resolve(msg); ok {
		if res.Err == nil {
			i.list.RemoveComment(i.comment)
		}
		return nil
	}

	if i.form != nil {
		return i.form.Update(msg)
	}
	return nil
}

// Stop cancels any request the item has in flight.
func (i *CommentItem) Stop() {
	i.del.Stop()
	if i.form != nil {
		i.form.Stop()
	}
}

func (i *CommentItem) View(width int, selected bool) string {
	var b strings.Builder

	marker := "  "
	if selected {
		marker = selectedStyle.Render("▸ ")
	}
	b.WriteString(marker + authorStyle.Render(i.comment.Author.FullName) + " " + dateStyle.Render(i.published))

	if i.mode == Editing {
		b.WriteString("\n" + i.form.View(width-2))
		return b.String()
	}

	b.WriteString("\n" + commentTextStyle.Render(indent(wrapByWidth(plainText(i.comment.Content), width-2), "  ")))

	if i.canEdit && selected {
		switch {
		case i.del.Loading():
			b.WriteString("\n  " + navStyle.Render("Deleting..."))
		case i.del.Err() != nil:
			b.WriteString("\n  " + errorStyle.Render("Could not delete the comment.") + " " + helpLine(keys.Delete))
		default:
			b.WriteString("\n  " + helpLine(keys.Edit, keys.Delete))
		}
	}

	return b.String()
}
