package domain

import "strings"

// Matches reports whether query is a case-insensitive substring of any field.
// An empty query matches everything.
func Matches(query string, fields ...string) bool {
	q := strings.ToLower(query)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// FilterUsers keeps users whose name or email contains query
func FilterUsers(users []User, query string) []User {
	return filter(users, func(u User) bool {
		return Matches(query, u.Name, u.Email)
	})
}

// FilterTodos keeps todos whose title contains query
func FilterTodos(todos []Todo, query string) []Todo {
	return filter(todos, func(t Todo) bool {
		return Matches(query, t.Title)
	})
}

// FilterPosts keeps posts whose title or body contains query
func FilterPosts(posts []Post, query string) []Post {
	return filter(posts, func(p Post) bool {
		return Matches(query, p.Title, p.Body)
	})
}

// FilterComments keeps comments whose author name or body contains query
func FilterComments(comments []Comment, query string) []Comment {
	return filter(comments, func(c Comment) bool {
		return Matches(query, c.Name, c.Body)
	})
}

// filter never returns nil and never aliases the input slice
func filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}
