package application

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"jsonbrowse/internal/domain"
	"jsonbrowse/internal/ports"
)

// Renderer turns an AppState into a Page. It is the only place where the
// remote and local populations meet.
type Renderer struct {
	remote ports.RemoteClient
	store  ports.LocalStore
	logger *zap.Logger
	gens   Generations
}

// NewRenderer creates a renderer over the given data sources
func NewRenderer(remote ports.RemoteClient, store ports.LocalStore, logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{
		remote: remote,
		store:  store,
		logger: logger,
	}
}

// Begin starts a new render generation. Callers that render asynchronously
// take the generation synchronously, then pass it to Render.
func (r *Renderer) Begin() uint64 {
	return r.gens.Next()
}

// IsCurrent reports whether a page is from the latest generation. Stale pages
// must be discarded instead of displayed.
func (r *Renderer) IsCurrent(p Page) bool {
	return r.gens.IsCurrent(p.Generation)
}

// RenderNow begins a generation and renders it synchronously
func (r *Renderer) RenderNow(ctx context.Context, state AppState) Page {
	return r.Render(ctx, r.Begin(), state)
}

// Render evaluates state and produces its page. Data source failures are
// logged and degrade to empty listings; Render never fails.
func (r *Renderer) Render(ctx context.Context, gen uint64, state AppState) Page {
	target := state.Target()
	page := Page{
		Generation: gen,
		State:      state,
		Target:     target,
		Crumbs:     domain.Breadcrumbs(state.Fragment),
	}

	log := r.logger.With(
		zap.Uint64("generation", gen),
		zap.String("fragment", state.Fragment),
		zap.Stringer("view", target.View),
	)
	log.Debug("rendering", zap.String("query", state.Query))

	switch target.View {
	case domain.ViewTodos:
		page.Todos = r.renderTodos(ctx, log, target.UserID, state.Query)
	case domain.ViewPosts:
		page.Posts = r.renderPosts(ctx, log, target.UserID, state.Query)
	case domain.ViewComments:
		page.Comments = r.renderComments(ctx, log, target.PostID, state.Query)
	default:
		page.Users = r.renderUsers(ctx, log, state.Query)
	}
	return page
}

func (r *Renderer) renderUsers(ctx context.Context, log *zap.Logger, query string) *UsersPage {
	var remote, local []domain.User

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		users, err := r.remote.FetchUsers(gctx)
		if err != nil {
			degrade(gctx, log, "could not fetch remote users", err)
			return nil
		}
		remote = users
		return nil
	})
	g.Go(func() error {
		local = r.loadLocal(gctx, log)
		return nil
	})
	_ = g.Wait()

	for i := range remote {
		remote[i].Local = false
		remote[i].Todos = nil
	}

	return &UsersPage{
		Local:  domain.FilterUsers(local, query),
		Remote: domain.FilterUsers(remote, query),
	}
}

// renderTodos lists a local user's todos, or fetches them remotely when no
// local user has the id. An absent or non-numeric userId skips the fetch
// and yields an empty list instead of asking the API for userId=NaN.
func (r *Renderer) renderTodos(ctx context.Context, log *zap.Logger, userID domain.ParamID, query string) *TodosPage {
	page := &TodosPage{UserID: userID}
	if !userID.Valid {
		page.Todos = []domain.Todo{}
		return page
	}

	var todos []domain.Todo
	if user, ok := domain.FindUser(r.loadLocal(ctx, log), userID.Value); ok {
		todos = user.Todos
		page.CanCreate = true
	} else {
		fetched, err := r.remote.FetchTodos(ctx, userID.Value)
		if err != nil {
			degrade(ctx, log, "could not fetch todos", err, zap.Int64("user_id", userID.Value))
		}
		for i := range fetched {
			fetched[i].Local = false
		}
		todos = fetched
	}

	page.Todos = domain.FilterTodos(todos, query)
	return page
}

func (r *Renderer) renderPosts(ctx context.Context, log *zap.Logger, userID domain.ParamID, query string) *PostsPage {
	page := &PostsPage{UserID: userID}
	if !userID.Valid {
		page.Posts = []domain.Post{}
		return page
	}

	posts, err := r.remote.FetchPosts(ctx, userID.Value)
	if err != nil {
		degrade(ctx, log, "could not fetch posts", err, zap.Int64("user_id", userID.Value))
	}
	page.Posts = domain.FilterPosts(posts, query)
	return page
}

func (r *Renderer) renderComments(ctx context.Context, log *zap.Logger, postID domain.ParamID, query string) *CommentsPage {
	page := &CommentsPage{PostID: postID}
	if !postID.Valid {
		page.Comments = []domain.Comment{}
		return page
	}

	comments, err := r.remote.FetchComments(ctx, postID.Value)
	if err != nil {
		degrade(ctx, log, "could not fetch comments", err, zap.Int64("post_id", postID.Value))
	}
	page.Comments = domain.FilterComments(comments, query)
	return page
}

// loadLocal reads the store fresh on every call
func (r *Renderer) loadLocal(ctx context.Context, log *zap.Logger) []domain.User {
	users, err := r.store.LoadUsers(ctx)
	if err != nil {
		degrade(ctx, log, "could not read local users", err)
		return nil
	}
	return users
}

// degrade logs a data source failure that the page absorbs as an empty
// listing. Failures of superseded renders are expected and logged at debug.
func degrade(ctx context.Context, log *zap.Logger, msg string, err error, fields ...zap.Field) {
	fields = append(fields, zap.Error(err))
	if ctx.Err() != nil {
		log.Debug(msg, fields...)
		return
	}
	log.Warn(msg, fields...)
}
