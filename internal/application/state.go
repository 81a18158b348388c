package application

import (
	"strings"
	"sync/atomic"

	"jsonbrowse/internal/domain"
)

// AppState is everything a render depends on besides the data sources:
// where the user is and what they are searching for.
type AppState struct {
	Fragment string
	Query    string
}

// NewAppState builds a state from a raw fragment and raw search input
func NewAppState(fragment, rawQuery string) AppState {
	return AppState{
		Fragment: domain.NormalizeFragment(fragment),
		Query:    NormalizeQuery(rawQuery),
	}
}

// Target resolves the state's fragment
func (s AppState) Target() domain.NavigationTarget {
	return domain.Resolve(s.Fragment)
}

// NormalizeQuery trims and lowercases raw search input
func NormalizeQuery(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// Generations hands out monotonically increasing render generations.
// A result is only worth displaying if its generation is still the latest.
type Generations struct {
	n atomic.Uint64
}

// Next starts a new generation and returns it
func (g *Generations) Next() uint64 {
	return g.n.Add(1)
}

// Current returns the latest generation handed out
func (g *Generations) Current() uint64 {
	return g.n.Load()
}

// IsCurrent reports whether gen is the latest generation
func (g *Generations) IsCurrent(gen uint64) bool {
	return gen == g.n.Load()
}
