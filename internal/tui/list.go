package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/BloggingApp/comment-service/internal/config"
	"github.com/BloggingApp/comment-service/internal/dto"
	"github.com/BloggingApp/comment-service/internal/fetch"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// CommentList owns the comments of one post: the pages fetched so far plus
// the local add, update and remove operations applied since. It is the only
// writer of that sequence.
type CommentList struct {
	ctx        context.Context
	cancel     context.CancelFunc
	api        CommentsAPI
	postID     int64
	session    Session
	dateLayout string

	comments *fetch.Paginated[*dto.CommentRead]
	items    map[*dto.CommentRead]*CommentItem
	form     *CommentForm

	started     bool
	cursor      int
	formFocused bool
}

func NewCommentList(parent context.Context, api CommentsAPI, postID int64, session Session, dateLayout string) *CommentList {
	if dateLayout == "" {
		dateLayout = config.DefaultDateLayout
	}
	ctx, cancel := context.WithCancel(parent)

	l := &CommentList{
		ctx:        ctx,
		cancel:     cancel,
		api:        api,
		postID:     postID,
		session:    session,
		dateLayout: dateLayout,
		items:      make(map[*dto.CommentRead]*CommentItem),
	}
	l.comments = fetch.NewPaginated[*dto.CommentRead](ctx, l.fetchPage)
	l.comments.KeyBy(func(c *dto.CommentRead) any { return c.ID })
	if session.SignedIn {
		l.form = NewCommentForm(ctx, api, postID, nil, l.AddComment, nil)
	}
	return l
}

func (l *CommentList) fetchPage(ctx context.Context, page int) (fetch.Page[*dto.CommentRead], error) {
	result, err := l.api.ListComments(ctx, l.postID, page)
	if err != nil {
		return fetch.Page[*dto.CommentRead]{}, err
	}

	items := make([]*dto.CommentRead, 0, len(result.Items))
	for i := range result.Items {
		items = append(items, &result.Items[i])
	}
	return fetch.Page[*dto.CommentRead]{
		Items:   items,
		Count:   result.Count,
		HasMore: result.HasMore,
	}, nil
}

// Start runs the initial load. Later calls do nothing.
func (l *CommentList) Start() tea.Cmd {
	if l.started {
		return nil
	}
	l.started = true
	return l.Load()
}

// Stop cancels every request of the list and its items. Results arriving
// afterwards are ignored.
func (l *CommentList) Stop() {
	l.cancel()
	l.comments.Stop()
	for _, item := range l.items {
		item.Stop()
	}
	if l.form != nil {
		l.form.Stop()
	}
}

// Load fetches the next page. It returns nil while a page is in flight or when
// there is nothing more to load.
func (l *CommentList) Load() tea.Cmd {
	return l.comments.Load()
}

// AddComment puts a newly created comment in front of the others.
func (l *CommentList) AddComment(comment *dto.CommentRead) {
	l.comments.SetItems(func(items []*dto.CommentRead) []*dto.CommentRead {
		return append([]*dto.CommentRead{comment}, items...)
	})
	l.item(comment)
}

// RemoveComment removes comment, matched by identity. Removing a comment that
// is not in the list does nothing.
func (l *CommentList) RemoveComment(comment *dto.CommentRead) {
	l.comments.SetItems(func(items []*dto.CommentRead) []*dto.CommentRead {
		result := make([]*dto.CommentRead, 0, len(items))
		for _, c := range items {
			if c != comment {
				result = append(result, c)
			}
		}
		return result
	})
	delete(l.items, comment)
	l.clampCursor()
}

// UpdateComment puts newComment where oldComment is, matched by identity.
func (l *CommentList) UpdateComment(newComment, oldComment *dto.CommentRead) {
	found := false
	l.comments.SetItems(func(items []*dto.CommentRead) []*dto.CommentRead {
		result := make([]*dto.CommentRead, len(items))
		for i, c := range items {
			if c == oldComment {
				result[i] = newComment
				found = true
				continue
			}
			result[i] = c
		}
		return result
	})
	if !found {
		return
	}

	if item, ok := l.items[oldComment]; ok {
		delete(l.items, oldComment)
		item.comment = newComment
		l.items[newComment] = item
	}
}

func (l *CommentList) Comments() []*dto.CommentRead {
	return l.comments.Items()
}

func (l *CommentList) Count() int64 {
	return l.comments.Count()
}

func (l *CommentList) HasMore() bool {
	return l.comments.HasMore()
}

func (l *CommentList) Loading() bool {
	return l.comments.Loading()
}

func (l *CommentList) Form() *CommentForm {
	return l.form
}

// Item returns the view state of comment, building it on first use.
func (l *CommentList) Item(comment *dto.CommentRead) *CommentItem {
	return l.item(comment)
}

func (l *CommentList) item(comment *dto.CommentRead) *CommentItem {
	if item, ok := l.items[comment]; ok {
		return item
	}
	item := NewCommentItem(l.ctx, l.api, l, comment, l.session.CanEdit(comment), l.dateLayout)
	l.items[comment] = item
	return item
}

func (l *CommentList) selected() *CommentItem {
	comments := l.comments.Items()
	if l.cursor < 0 || l.cursor >= len(comments) {
		return nil
	}
	return l.item(comments[l.cursor])
}

func (l *CommentList) Select(index int) {
	l.cursor = index
	l.clampCursor()
}

func (l *CommentList) clampCursor() {
	if n := len(l.comments.Items()); l.cursor >= n {
		l.cursor = n - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
}

// Typing reports whether key presses go to a text input.
func (l *CommentList) Typing() bool {
	if l.formFocused {
		return true
	}
	item := l.selected()
	return item != nil && item.Mode() == Editing
}

func (l *CommentList) Update(msg tea.Msg) tea.Cmd {
	if l.ctx.Err() != nil {
		return nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		return l.handleKey(msg)
	}

	if l.comments.Resolve(msg) {
		return nil
	}

	var cmds []tea.Cmd
	if l.form != nil {
		cmds = append(cmds, l.form.Update(msg))
	}
	for _, comment := range append([]*dto.CommentRead(nil), l.comments.Items()...) {
		if item, ok := l.items[comment]; ok {
			cmds = append(cmds, item.Update(msg))
		}
	}
	return tea.Batch(cmds...)
}

func (l *CommentList) handleKey(msg tea.KeyMsg) tea.Cmd {
	if l.formFocused {
		switch {
		case key.Matches(msg, keys.Cancel):
			l.formFocused = false
			l.form.Blur()
			return nil
		case key.Matches(msg, keys.Submit):
			return l.form.Submit()
		}
		return l.form.Update(msg)
	}

	item := l.selected()
	if item != nil && item.Mode() == Editing {
		switch {
		case key.Matches(msg, keys.Cancel):
			item.Cancel()
			return nil
		case key.Matches(msg, keys.Submit):
			return item.Form().Submit()
		}
		return item.Form().Update(msg)
	}

	switch {
	case key.Matches(msg, keys.Down):
		l.Select(l.cursor + 1)
	case key.Matches(msg, keys.Up):
		l.Select(l.cursor - 1)
	case key.Matches(msg, keys.New):
		if l.form != nil {
			l.formFocused = true
			return l.form.Focus()
		}
	case key.Matches(msg, keys.Edit):
		if item != nil {
			return item.Edit()
		}
	case key.Matches(msg, keys.Delete):
		if item != nil {
			return item.Delete()
		}
	case key.Matches(msg, keys.More):
		return l.Load()
	}
	return nil
}

func (l *CommentList) title() string {
	count := l.comments.Count()
	if count == 1 {
		return "1 comment"
	}
	return fmt.Sprintf("%d comments", count)
}

func (l *CommentList) View(width int) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(l.title()) + "\n")

	if l.form != nil {
		b.WriteString(l.form.View(width) + "\n")
	}

	comments := l.comments.Items()
	for i, comment := range comments {
		b.WriteString("\n" + l.item(comment).View(width, i == l.cursor && !l.formFocused) + "\n")
	}

	switch {
	case l.comments.Loading():
		b.WriteString("\n" + navStyle.Render("Loading comments..."))
	case l.comments.Err() != nil:
		b.WriteString("\n" + errorStyle.Render("Could not load comments.") + " " + helpLine(keys.More))
	case l.comments.HasMore():
		b.WriteString("\n" + helpLine(keys.More))
	case len(comments) == 0:
		b.WriteString("\n" + navStyle.Render("No comments yet."))
	}

	return b.String()
}
