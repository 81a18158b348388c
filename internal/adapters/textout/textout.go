// Package textout renders pages as plain text for the CLI and the MCP server.
// Output carries no styling; every data field is sanitized.
package textout

import (
	"fmt"
	"io"
	"strings"

	"jsonbrowse/internal/application"
	"jsonbrowse/internal/domain"
)

// Format renders p as plain text
func Format(p application.Page) string {
	var sb strings.Builder
	Write(&sb, p)
	return sb.String()
}

// Write renders p to w. The error is the first write error, if any.
func Write(w io.Writer, p application.Page) error {
	tw := &errWriter{w: w}

	tw.printf("%s\n", Crumbs(p.Crumbs))
	tw.printf("%s\n", p.Title())
	if p.State.Query != "" {
		tw.printf("filter: %s\n", domain.Sanitize(p.State.Query))
	}
	tw.printf("\n")

	switch {
	case p.Users != nil:
		if p.Users.ShowLocal() {
			tw.printf("Local users\n")
			for _, u := range p.Users.Local {
				writeUser(tw, u)
			}
			tw.printf("\n")
		}
		tw.printf("Remote users\n")
		if len(p.Users.Remote) == 0 {
			tw.printf("  (none)\n")
		}
		for _, u := range p.Users.Remote {
			writeUser(tw, u)
		}
	case p.Todos != nil:
		if len(p.Todos.Todos) == 0 {
			tw.printf("  (none)\n")
		}
		for _, t := range p.Todos.Todos {
			mark := "✗"
			if t.Completed {
				mark = "✅"
			}
			local := ""
			if t.Local {
				local = " (local)"
			}
			tw.printf("  %d  %s %s%s\n", t.ID, domain.Sanitize(t.Title), mark, local)
		}
	case p.Posts != nil:
		if len(p.Posts.Posts) == 0 {
			tw.printf("  (none)\n")
		}
		for _, post := range p.Posts.Posts {
			tw.printf("  %d  %s\n", post.ID, domain.Sanitize(post.Title))
			tw.printf("      %s\n", oneLine(post.Body))
			tw.printf("      -> %s\n", application.PostLink(post).Fragment)
		}
	case p.Comments != nil:
		if len(p.Comments.Comments) == 0 {
			tw.printf("  (none)\n")
		}
		for _, c := range p.Comments.Comments {
			tw.printf("  %d  %s <%s>\n", c.ID, domain.Sanitize(c.Name), domain.Sanitize(c.Email))
			tw.printf("      %s\n", oneLine(c.Body))
		}
	}
	return tw.err
}

func writeUser(tw *errWriter, u domain.User) {
	local := ""
	if u.Local {
		local = " (local)"
	}
	tw.printf("  %d  %s <%s>%s\n", u.ID, domain.Sanitize(u.Name), domain.Sanitize(u.Email), local)
	links := application.UserLinks(u)
	parts := make([]string, len(links))
	for i, l := range links {
		parts[i] = l.Label + " " + l.Fragment
	}
	if u.Local {
		parts = append(parts, fmt.Sprintf("delete: jsonbrowse-cli users delete %d", u.ID))
	}
	tw.printf("      %s\n", strings.Join(parts, "  "))
}

// Crumbs renders a breadcrumb trail as "1:users > 2:todos"
func Crumbs(crumbs []domain.Crumb) string {
	parts := make([]string, len(crumbs))
	for i, c := range crumbs {
		parts[i] = fmt.Sprintf("%d:%s", i+1, domain.Sanitize(c.Label))
	}
	return strings.Join(parts, " > ")
}

// oneLine collapses line breaks so multi-line bodies stay on one row
func oneLine(s string) string {
	return strings.Join(strings.Fields(domain.Sanitize(s)), " ")
}

type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
