package domain

// User represents a person from either the remote API or the local store.
// Only local users carry Todos; remote todos are fetched on demand.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Local bool   `json:"local,omitempty"`
	Todos []Todo `json:"todos,omitempty"`
}

// Todo represents a task owned by exactly one user
type Todo struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"userId,omitempty"` // set by the remote API only
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	Local     bool   `json:"local,omitempty"`
}

// Post is a remote-only publication by a user
type Post struct {
	ID     int64  `json:"id"`
	UserID int64  `json:"userId"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

// Comment is a remote-only reply under a post
type Comment struct {
	ID     int64  `json:"id"`
	PostID int64  `json:"postId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Body   string `json:"body"`
}

// FindUser returns the user with the given ID, if present
func FindUser(users []User, id int64) (User, bool) {
	for _, u := range users {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}

// NextLocalID returns an ID for a new local entity. It prefers the wall-clock
// millisecond value but never reuses or goes below an existing ID.
func NextLocalID(nowMillis int64, existing ...int64) int64 {
	id := nowMillis
	for _, e := range existing {
		if e >= id {
			id = e + 1
		}
	}
	return id
}

// CloneUsers returns a deep copy of users, including nested todos
func CloneUsers(users []User) []User {
	if users == nil {
		return nil
	}
	dup := make([]User, len(users))
	for i, u := range users {
		dup[i] = u
		if u.Todos != nil {
			dup[i].Todos = make([]Todo, len(u.Todos))
			copy(dup[i].Todos, u.Todos)
		}
	}
	return dup
}
