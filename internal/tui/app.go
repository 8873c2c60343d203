package tui

import (
	"context"
	"strings"

	"github.com/BloggingApp/comment-service/internal/config"
	"github.com/BloggingApp/comment-service/internal/dto"
	"github.com/BloggingApp/comment-service/internal/fetch"
	"github.com/BloggingApp/comment-service/internal/lazymount"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

const (
	headerHeight = 2
	footerHeight = 2
)

type Options struct {
	PostID     int64
	Session    Session
	DateLayout string
}

// App is the post screen. The comment section below the post is mounted the
// first time it scrolls into view.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc
	api    API
	opts   Options
	logger *zap.Logger

	post     *dto.PostRead
	postReq  *fetch.Request[*dto.PostRead]
	viewport viewport.Model
	spinner  spinner.Model
	observer *SectionObserver
	boundary *lazymount.Boundary[*CommentList]

	focusComments bool
	ready         bool
	width         int
}

func NewApp(parent context.Context, api API, opts Options, logger *zap.Logger) *App {
	ctx, cancel := context.WithCancel(parent)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	a := &App{
		ctx:     ctx,
		cancel:  cancel,
		api:     api,
		opts:    opts,
		logger:  logger,
		postReq: fetch.NewRequest[*dto.PostRead](ctx),
		spinner: s,
	}
	a.viewport = viewport.New(0, 0)
	a.observer = NewSectionObserver(&a.viewport)
	a.boundary = lazymount.New(a.observer, func() *CommentList {
		a.logger.Debug("mounting comment section", zap.Int64("post_id", opts.PostID))
		return NewCommentList(ctx, api, opts.PostID, opts.Session, opts.DateLayout)
	})
	return a
}

func (a *App) Init() tea.Cmd {
	postID := a.opts.PostID
	return tea.Batch(
		a.spinner.Tick,
		a.postReq.Load(func(ctx context.Context) (*dto.PostRead, error) {
			return a.api.GetPost(ctx, postID)
		}),
	)
}

// Comments returns the comment section once it is mounted.
func (a *App) Comments() (*CommentList, bool) {
	return a.boundary.Component()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.viewport.Width = msg.Width
		a.viewport.Height = msg.Height - headerHeight - footerHeight
		a.ready = true
		a.render()
		return a, a.check()

	case spinner.TickMsg:
		if !a.postReq.Loading() {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		return a, a.handleKey(msg)
	}

	if res, ok := a.postReq.Resolve(msg); ok {
		if res.Err != nil {
			a.logger.Sugar().Errorf("failed to load post(%d): %s", a.opts.PostID, res.Err.Error())
			return a, nil
		}
		a.post = res.Value
		a.boundary.Connect()
		a.render()
		return a, a.check()
	}

	if list, ok := a.boundary.Component(); ok {
		cmd := list.Update(msg)
		a.render()
		return a, cmd
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	list, mounted := a.boundary.Component()
	typing := mounted && a.focusComments && list.Typing()

	if msg.String() == "ctrl+c" || (!typing && key.Matches(msg, keys.Quit)) {
		a.quit()
		return tea.Quit
	}

	if !typing && key.Matches(msg, keys.Focus) {
		a.focusComments = mounted && !a.focusComments
		a.render()
		return nil
	}

	if a.focusComments && mounted {
		cmd := list.Update(msg)
		a.render()
		return cmd
	}

	var cmd tea.Cmd
	a.viewport, cmd = a.viewport.Update(msg)
	return tea.Batch(cmd, a.check())
}

// check mounts the comment section if it has come into view.
func (a *App) check() tea.Cmd {
	cmd := a.observer.Check()
	if cmd != nil {
		a.render()
	}
	return cmd
}

// quit unmounts the comment section and cancels everything in flight.
func (a *App) quit() {
	a.boundary.Disconnect()
	a.cancel()
}

func (a *App) render() {
	if a.post == nil {
		return
	}

	width := a.width
	if width <= 0 {
		width = 80
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(a.post.Title) + "\n")
	b.WriteString(authorStyle.Render(a.post.Author.FullName) + " " +
		dateStyle.Render(a.post.PublishedAt.Local().Format(a.dateLayout())) + "\n\n")
	if summary := plainText(a.post.Summary); summary != "" {
		b.WriteString(strings.Join(wrapByWidth(summary, width), "\n") + "\n\n")
	}
	b.WriteString(strings.Join(wrapByWidth(plainText(a.post.Content), width), "\n"))
	body := b.String()

	a.observer.SetSectionLine(strings.Count(body, "\n") + 2)

	section := navStyle.Render("Comments load when you scroll here.")
	if list, ok := a.boundary.Component(); ok {
		section = list.View(width)
	}

	a.viewport.SetContent(body + "\n\n" + section)
}

func (a *App) dateLayout() string {
	if a.opts.DateLayout == "" {
		return config.DefaultDateLayout
	}
	return a.opts.DateLayout
}

func (a *App) View() string {
	if !a.ready {
		return "Loading..."
	}

	if a.post == nil {
		if err := a.postReq.Err(); err != nil {
			return errorStyle.Render("Could not load the post: "+err.Error()) + "\n\n" + helpLine(keys.Quit)
		}
		return a.spinner.View() + " Loading post..."
	}

	header := titleStyle.Render("Blog") + "\n"

	var help string
	list, mounted := a.boundary.Component()
	switch {
	case mounted && a.focusComments && list.Typing():
		help = helpLine(keys.Submit, keys.Cancel)
	case mounted && a.focusComments:
		help = helpLine(keys.Up, keys.Down, keys.New, keys.Edit, keys.Delete, keys.More, keys.Focus, keys.Quit)
	default:
		help = helpLine(keys.Up, keys.Down, keys.Focus, keys.Quit)
	}

	return header + a.viewport.View() + "\n\n" + help
}
