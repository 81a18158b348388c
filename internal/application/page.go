package application

import (
	"fmt"

	"jsonbrowse/internal/domain"
)

// Page is the display model produced by one render cycle. Exactly one of
// Users, Todos, Posts or Comments is set, matching Target.View.
type Page struct {
	Generation uint64
	State      AppState
	Target     domain.NavigationTarget
	Crumbs     []domain.Crumb

	Users    *UsersPage
	Todos    *TodosPage
	Posts    *PostsPage
	Comments *CommentsPage
}

// Title returns the heading shown above the listing
func (p Page) Title() string {
	switch p.Target.View {
	case domain.ViewTodos:
		return fmt.Sprintf("Todos of user %s", p.Target.UserID)
	case domain.ViewPosts:
		return fmt.Sprintf("Posts of user %s", p.Target.UserID)
	case domain.ViewComments:
		return fmt.Sprintf("Comments on post %s", p.Target.PostID)
	default:
		return "Users"
	}
}

// UsersPage lists both user populations, filtered independently.
// They are concatenated for display, never merged.
type UsersPage struct {
	Local  []domain.User
	Remote []domain.User
}

// ShowLocal reports whether the local section is rendered at all
func (p *UsersPage) ShowLocal() bool {
	return len(p.Local) > 0
}

// TodosPage lists a user's todos. CanCreate is true for local users, whose
// todos are editable.
type TodosPage struct {
	UserID    domain.ParamID
	CanCreate bool
	Todos     []domain.Todo
}

// PostsPage lists a user's posts
type PostsPage struct {
	UserID domain.ParamID
	Posts  []domain.Post
}

// CommentsPage lists the comments under a post
type CommentsPage struct {
	PostID   domain.ParamID
	Comments []domain.Comment
}

// Link is a navigation action embedded in rendered output
type Link struct {
	Label    string
	Fragment string
}

// UserLinks returns the navigation actions available on a user row
func UserLinks(u domain.User) []Link {
	return []Link{
		{Label: "Todos", Fragment: domain.TodosFragment(u.ID)},
		{Label: "Posts", Fragment: domain.PostsFragment(u.ID)},
	}
}

// PostLink returns the navigation action on a post row
func PostLink(p domain.Post) Link {
	return Link{Label: "Comments", Fragment: domain.CommentsFragment(p.ID)}
}

// Len returns the number of rows on the page
func (p Page) Len() int {
	switch {
	case p.Users != nil:
		return len(p.Users.Local) + len(p.Users.Remote)
	case p.Todos != nil:
		return len(p.Todos.Todos)
	case p.Posts != nil:
		return len(p.Posts.Posts)
	case p.Comments != nil:
		return len(p.Comments.Comments)
	default:
		return 0
	}
}
