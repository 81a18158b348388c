package domain

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// View identifies one of the four screens a fragment can resolve to
type View int

const (
	ViewUsers View = iota
	ViewTodos
	ViewPosts
	ViewComments
)

func (v View) String() string {
	switch v {
	case ViewTodos:
		return "Todos"
	case ViewPosts:
		return "Posts"
	case ViewComments:
		return "Comments"
	default:
		return "Users"
	}
}

// DefaultFragment is where navigation starts when no fragment is set
const DefaultFragment = "#users"

// ParamID is an integer path parameter taken from the fragment's query string.
// Valid is false when the parameter is missing or not an integer; such an ID
// matches nothing.
type ParamID struct {
	Value int64
	Valid bool
}

// SomeID returns a valid ParamID
func SomeID(v int64) ParamID {
	return ParamID{Value: v, Valid: true}
}

func (p ParamID) String() string {
	if !p.Valid {
		return "NaN"
	}
	return strconv.FormatInt(p.Value, 10)
}

// Is reports whether p is valid and equal to id
func (p ParamID) Is(id int64) bool {
	return p.Valid && p.Value == id
}

// NavigationTarget is the view and parameters a fragment points at
type NavigationTarget struct {
	View   View
	UserID ParamID
	PostID ParamID
}

// Resolve maps a location fragment to its navigation target.
//
// The order of checks matters: the comments fragment is nested under posts
// (#users#posts#comments?postId=N), so comments must win over posts.
func Resolve(fragment string) NavigationTarget {
	hash := strings.TrimPrefix(strings.TrimSpace(fragment), "#")

	switch {
	case hash == "" || hash == "users":
		return NavigationTarget{View: ViewUsers}
	case strings.Contains(hash, "todos"):
		return NavigationTarget{View: ViewTodos, UserID: queryParam(hash, "userId")}
	case strings.Contains(hash, "posts") && !strings.Contains(hash, "comments"):
		return NavigationTarget{View: ViewPosts, UserID: queryParam(hash, "userId")}
	case strings.Contains(hash, "comments"):
		return NavigationTarget{View: ViewComments, PostID: queryParam(hash, "postId")}
	default:
		return NavigationTarget{View: ViewUsers}
	}
}

// NormalizeFragment trims the fragment and ensures a leading '#'.
// An empty input yields an empty string.
func NormalizeFragment(fragment string) string {
	trimmed := strings.TrimSpace(fragment)
	if trimmed == "" {
		return ""
	}
	if !strings.HasPrefix(trimmed, "#") {
		trimmed = "#" + trimmed
	}
	return trimmed
}

func queryParam(hash, key string) ParamID {
	_, rawQuery, found := strings.Cut(hash, "?")
	if !found {
		return ParamID{}
	}
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		return ParamID{}
	}
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return ParamID{}
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return ParamID{}
	}
	return SomeID(n)
}

// UsersFragment returns the fragment of the users listing
func UsersFragment() string {
	return DefaultFragment
}

// TodosFragment returns the fragment of a user's todos
func TodosFragment(userID int64) string {
	return fmt.Sprintf("#users#todos?userId=%d", userID)
}

// PostsFragment returns the fragment of a user's posts
func PostsFragment(userID int64) string {
	return fmt.Sprintf("#users#posts?userId=%d", userID)
}

// CommentsFragment returns the fragment of a post's comments
func CommentsFragment(postID int64) string {
	return fmt.Sprintf("#users#posts#comments?postId=%d", postID)
}
