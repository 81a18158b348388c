package domain

import "strings"

// Crumb is one navigable segment of the current fragment
type Crumb struct {
	Label    string // segment name without the query string
	Fragment string // cumulative fragment up to and including this segment
}

// Breadcrumbs splits a fragment on '#' and returns one crumb per non-empty
// segment. Activating crumb i navigates to segments 0..i joined by '#'.
func Breadcrumbs(fragment string) []Crumb {
	parts := strings.Split(strings.TrimSpace(fragment), "#")

	var crumbs []Crumb
	path := ""
	for _, part := range parts {
		if part == "" {
			continue
		}
		if path != "" {
			path += "#"
		}
		path += part

		label, _, _ := strings.Cut(part, "?")
		crumbs = append(crumbs, Crumb{
			Label:    label,
			Fragment: "#" + path,
		})
	}
	return crumbs
}
