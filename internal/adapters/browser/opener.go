// Package browser opens the raw JSON behind a page in the system browser.
package browser

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strconv"

	"jsonbrowse/internal/domain"
)

// Opener builds and opens remote API URLs for navigation targets
type Opener struct {
	base *url.URL
	run  func(name string, args ...string) error
}

// NewOpener creates an opener for the API at baseURL
func NewOpener(baseURL string) (*Opener, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Host == "" {
		return nil, fmt.Errorf("invalid api base %q", baseURL)
	}
	return &Opener{base: u, run: runCommand}, nil
}

// BuildURL returns the collection URL a target's listing is fetched from.
// Targets without a usable id have no remote resource.
func (o *Opener) BuildURL(t domain.NavigationTarget) (string, error) {
	var (
		collection string
		key        string
		id         domain.ParamID
	)
	switch t.View {
	case domain.ViewUsers:
		return o.base.JoinPath("users").String(), nil
	case domain.ViewTodos:
		collection, key, id = "todos", "userId", t.UserID
	case domain.ViewPosts:
		collection, key, id = "posts", "userId", t.UserID
	case domain.ViewComments:
		collection, key, id = "comments", "postId", t.PostID
	}
	if !id.Valid {
		return "", fmt.Errorf("no %s in this location", key)
	}

	u := o.base.JoinPath(collection)
	u.RawQuery = url.Values{key: {strconv.FormatInt(id.Value, 10)}}.Encode()
	return u.String(), nil
}

// Open opens the target's remote resource in the default browser
func (o *Opener) Open(t domain.NavigationTarget) (string, error) {
	uri, err := o.BuildURL(t)
	if err != nil {
		return "", err
	}
	return uri, o.openURI(uri)
}

func (o *Opener) openURI(uri string) error {
	switch runtime.GOOS {
	case "darwin":
		return o.run("open", uri)
	case "linux", "freebsd", "openbsd":
		return o.run("xdg-open", uri)
	case "windows":
		return o.run("cmd", "/c", "start", "", uri)
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

func runCommand(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}
