package browser

import (
	"runtime"
	"testing"

	"jsonbrowse/internal/domain"
)

func TestNewOpener_RejectsBadBase(t *testing.T) {
	for _, base := range []string{"", "not a url", "/relative/only"} {
		if _, err := NewOpener(base); err == nil {
			t.Errorf("NewOpener(%q) should fail", base)
		}
	}
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		name     string
		fragment string
		wantURL  string
		wantErr  bool
	}{
		{
			name:     "users",
			fragment: "#users",
			wantURL:  "https://jsonplaceholder.typicode.com/users",
		},
		{
			name:     "todos of a user",
			fragment: "#users#todos?userId=3",
			wantURL:  "https://jsonplaceholder.typicode.com/todos?userId=3",
		},
		{
			name:     "posts of a user",
			fragment: "#users#posts?userId=1",
			wantURL:  "https://jsonplaceholder.typicode.com/posts?userId=1",
		},
		{
			name:     "comments of a post",
			fragment: "#users#posts#comments?postId=7",
			wantURL:  "https://jsonplaceholder.typicode.com/comments?postId=7",
		},
		{
			name:     "missing id",
			fragment: "#users#todos",
			wantErr:  true,
		},
		{
			name:     "non numeric id",
			fragment: "#users#posts?userId=abc",
			wantErr:  true,
		},
	}

	o, err := NewOpener("https://jsonplaceholder.typicode.com")
	if err != nil {
		t.Fatalf("NewOpener: %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := o.BuildURL(domain.Resolve(tt.fragment))
			if (err != nil) != tt.wantErr {
				t.Fatalf("BuildURL() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.wantURL {
				t.Errorf("BuildURL() = %q, want %q", got, tt.wantURL)
			}
		})
	}
}

func TestOpen_RunsPlatformCommand(t *testing.T) {
	if runtime.GOOS != "linux" && runtime.GOOS != "darwin" {
		t.Skip("command table only checked on linux and darwin")
	}
	o, err := NewOpener("https://example.com/api/")
	if err != nil {
		t.Fatalf("NewOpener: %v", err)
	}

	var gotName string
	var gotArgs []string
	o.run = func(name string, args ...string) error {
		gotName, gotArgs = name, args
		return nil
	}

	uri, err := o.Open(domain.Resolve("#users#todos?userId=2"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if uri != "https://example.com/api/todos?userId=2" {
		t.Errorf("uri = %q", uri)
	}
	want := map[string]string{"linux": "xdg-open", "darwin": "open"}[runtime.GOOS]
	if gotName != want || len(gotArgs) != 1 || gotArgs[0] != uri {
		t.Errorf("ran %s %v, want %s %s", gotName, gotArgs, want, uri)
	}
}
