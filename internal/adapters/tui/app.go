package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"jsonbrowse/internal/adapters/tui/views"
	"jsonbrowse/internal/application"
	"jsonbrowse/internal/application/commands"
	"jsonbrowse/internal/domain"
	"jsonbrowse/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewPage ViewState = iota
	ViewConfirm
	ViewGoto
	ViewHelp
)

// PageMsg carries a finished render back to the event loop
type PageMsg struct {
	Page application.Page
}

// StoreChangedMsg reports that another process wrote the local store
type StoreChangedMsg struct{}

type openedMsg struct {
	uri string
	err error
}

type mutationDoneMsg struct {
	message string
	err     error
	form    views.Form
}

// Options configures a new App
type Options struct {
	Fragment  string // starting fragment; empty means #users
	Query     string // starting search input
	Logger    *zap.Logger
	Clipboard func(string) error // defaults to the system clipboard

	// OpenRemote opens the remote resource behind a target and returns its
	// URL. Nil disables the feature.
	OpenRemote func(domain.NavigationTarget) (string, error)
}

// App is the main TUI application model
type App struct {
	renderer *application.Renderer
	store    ports.LocalStore
	logger   *zap.Logger
	copy     func(string) error
	open     func(domain.NavigationTarget) (string, error)

	location     *Location
	ctx          context.Context
	stop         context.CancelFunc
	cancelRender context.CancelFunc

	state   ViewState
	page    *views.PageModel
	confirm *views.DeleteModel
	goTo    *views.GotoModel
	help    *views.HelpModel
}

// NewApp creates a new TUI application
func NewApp(renderer *application.Renderer, store ports.LocalStore, opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	copyFn := opts.Clipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}
	ctx, stop := context.WithCancel(context.Background())

	return &App{
		renderer: renderer,
		store:    store,
		logger:   logger,
		copy:     copyFn,
		open:     opts.OpenRemote,
		location: NewLocation(opts.Fragment),
		ctx:      ctx,
		stop:     stop,
		state:    ViewPage,
		page:     views.NewPageModel(opts.Query),
		confirm:  views.NewDeleteModel(),
		goTo:     views.NewGotoModel(),
		help:     views.NewHelpModel(),
	}
}

// Fragment returns the current location
func (a *App) Fragment() string {
	return a.location.Current()
}

// Close cancels in-flight renders and mutations
func (a *App) Close() {
	a.stop()
}

// Init renders the starting location
func (a *App) Init() tea.Cmd {
	return a.render()
}

// render starts a new generation for the current location and query. The
// previous render, if still running, is cancelled and its page will be
// dropped on arrival.
func (a *App) render() tea.Cmd {
	state := application.NewAppState(a.location.Current(), a.page.Query())
	if a.cancelRender != nil {
		a.cancelRender()
	}
	ctx, cancel := context.WithCancel(a.ctx)
	a.cancelRender = cancel
	gen := a.renderer.Begin()

	return func() tea.Msg {
		return PageMsg{Page: a.renderer.Render(ctx, gen, state)}
	}
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.page.SetSize(msg.Width, msg.Height)
		a.confirm.SetSize(msg.Width, msg.Height)
		a.goTo.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

	case PageMsg:
		if !a.renderer.IsCurrent(msg.Page) {
			a.logger.Debug("dropping stale page",
				zap.Uint64("generation", msg.Page.Generation),
				zap.String("fragment", msg.Page.State.Fragment))
			return a, nil
		}
		a.page.SetPage(msg.Page)
		return a, nil

	// Location
	case views.NavigateMsg:
		a.state = ViewPage
		return a, a.location.Navigate(msg.Fragment)

	case views.BackMsg:
		return a, a.location.Back()

	case views.ForwardMsg:
		return a, a.location.Forward()

	case FragmentChangedMsg:
		a.logger.Debug("location changed", zap.String("fragment", msg.Fragment))
		return a, a.render()

	// Re-render triggers
	case views.QueryChangedMsg, views.ReloadMsg:
		return a, a.render()

	case StoreChangedMsg:
		a.logger.Debug("local store changed by another process")
		return a, a.render()

	case views.CopyFragmentMsg:
		fragment := a.location.Current()
		if err := a.copy(fragment); err != nil {
			a.page.SetError(fmt.Errorf("copy failed: %w", err))
		} else {
			a.page.SetMessage("Copied "+fragment, false)
		}
		return a, nil

	case views.OpenRemoteMsg:
		if a.open == nil {
			return a, nil
		}
		target := domain.Resolve(a.location.Current())
		return a, func() tea.Msg {
			uri, err := a.open(target)
			return openedMsg{uri: uri, err: err}
		}

	case openedMsg:
		if msg.err != nil {
			a.page.SetError(fmt.Errorf("open failed: %w", msg.err))
		} else {
			a.page.SetMessage("Opened "+msg.uri, false)
		}
		return a, nil

	// Mutations
	case views.CreateUserMsg:
		return a, a.mutate(views.UserForm, func(ctx context.Context) (string, error) {
			res, err := commands.NewCreateUserCommand(a.store, msg.Name, msg.Email).Execute(ctx)
			if err != nil {
				return "", err
			}
			return res.Message, nil
		})

	case views.CreateTodoMsg:
		return a, a.mutate(views.TodoForm, func(ctx context.Context) (string, error) {
			res, err := commands.NewCreateTodoCommand(a.store, msg.UserID, msg.Title).Execute(ctx)
			if err != nil {
				return "", err
			}
			return res.Message, nil
		})

	case views.ConfirmDeleteMsg:
		a.confirm.SetTarget(msg.User)
		a.state = ViewConfirm
		return a, nil

	case views.DeleteUserMsg:
		a.state = ViewPage
		return a, a.mutate(views.NoForm, func(ctx context.Context) (string, error) {
			res, err := commands.NewDeleteUserCommand(a.store, msg.UserID).Execute(ctx)
			if err != nil {
				return "", err
			}
			return res.Message, nil
		})

	case mutationDoneMsg:
		return a, a.mutationDone(msg)

	// View switching messages
	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToGotoMsg:
		a.state = ViewGoto
		return a, a.goTo.Open(a.location.Current())

	case views.SwitchToPageMsg:
		a.state = ViewPage
		return a, nil
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewPage:
		_, cmd = a.page.Update(msg)
	case ViewConfirm:
		_, cmd = a.confirm.Update(msg)
	case ViewGoto:
		_, cmd = a.goTo.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

func (a *App) mutate(form views.Form, fn func(ctx context.Context) (string, error)) tea.Cmd {
	ctx := a.ctx
	return func() tea.Msg {
		message, err := fn(ctx)
		return mutationDoneMsg{message: message, err: err, form: form}
	}
}

// mutationDone reports the outcome and re-renders. Invalid input is ignored
// silently; a user that vanished in the meantime is not an error either.
func (a *App) mutationDone(msg mutationDoneMsg) tea.Cmd {
	switch {
	case msg.err == nil:
		a.logger.Info(msg.message)
		a.page.SetMessage(msg.message, false)
		a.page.ResetForm(msg.form)
	case application.IsValidation(msg.err):
		a.logger.Debug("ignoring invalid input", zap.Error(msg.err))
		return nil
	case errors.Is(msg.err, application.ErrNotFound):
		a.logger.Debug("mutation target gone", zap.Error(msg.err))
	default:
		a.logger.Error("mutation failed", zap.Error(msg.err))
		a.page.SetError(msg.err)
		return nil
	}
	return a.render()
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewConfirm:
		return a.confirm.View()
	case ViewGoto:
		return a.goTo.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.page.View()
	}
}
