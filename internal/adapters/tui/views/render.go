package views

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/key"

	"jsonbrowse/internal/adapters/tui/styles"
	"jsonbrowse/internal/domain"
)

// RenderKeyHelp formats a key binding as help text (key + description)
func RenderKeyHelp(b key.Binding) string {
	help := b.Help()
	return fmt.Sprintf("%s %s",
		styles.HelpKey.Render(help.Key),
		styles.HelpDesc.Render(help.Desc),
	)
}

// RenderHelpLine renders multiple key bindings as a help line separated by bullets
func RenderHelpLine(bindings ...key.Binding) string {
	var parts []string
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		parts = append(parts, RenderKeyHelp(b))
	}
	return strings.Join(parts, styles.HelpSeparator.String())
}

// RenderMessage renders a message with appropriate styling based on isError
func RenderMessage(message string, isError bool) string {
	if message == "" {
		return ""
	}
	if isError {
		return styles.ErrorMsg.Render(message)
	}
	return styles.Success.Render(message)
}

// RenderCrumbs renders the breadcrumb trail. Each crumb is numbered with the
// key that activates it.
func RenderCrumbs(crumbs []domain.Crumb) string {
	if len(crumbs) == 0 {
		return styles.MutedText.Render("(no location)")
	}
	parts := make([]string, 0, len(crumbs))
	for i, c := range crumbs {
		label := domain.Sanitize(c.Label)
		style := styles.Crumb
		if i == len(crumbs)-1 {
			style = styles.CrumbCurrent
		}
		if i < 9 {
			parts = append(parts, styles.HelpKey.Render(fmt.Sprint(i+1))+" "+style.Render(label))
		} else {
			parts = append(parts, style.Render(label))
		}
	}
	return strings.Join(parts, styles.CrumbSep.String())
}

// Highlight marks the first case-insensitive occurrence of query in text.
// Matching is done rune by rune so case mappings that change a rune's
// encoded width never shift the cut.
func Highlight(text, query string) string {
	if query == "" {
		return text
	}
	tr, qr := []rune(text), foldRunes(query)
	lower := foldRunes(text)
	for i := 0; i+len(qr) <= len(lower); i++ {
		if runesEqual(lower[i:i+len(qr)], qr) {
			end := i + len(qr)
			return string(tr[:i]) + styles.SearchMatch.Render(string(tr[i:end])) + string(tr[end:])
		}
	}
	return text
}

func foldRunes(s string) []rune {
	r := []rune(s)
	for i := range r {
		r[i] = unicode.ToLower(r[i])
	}
	return r
}

func runesEqual(a, b []rune) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Truncate shortens s to width runes, marking the cut with an ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}

// ViewBuilder helps construct view output with consistent formatting
type ViewBuilder struct {
	b strings.Builder
}

// NewViewBuilder creates a new view builder
func NewViewBuilder() *ViewBuilder {
	return &ViewBuilder{}
}

// Title adds a title section
func (v *ViewBuilder) Title(title string) *ViewBuilder {
	v.b.WriteString(styles.Title.Render(title))
	v.b.WriteString("\n\n")
	return v
}

// Subtitle adds a subtitle section
func (v *ViewBuilder) Subtitle(subtitle string) *ViewBuilder {
	v.b.WriteString(styles.Subtitle.Render(subtitle))
	v.b.WriteString("\n\n")
	return v
}

// Section adds a section heading
func (v *ViewBuilder) Section(name string) *ViewBuilder {
	v.b.WriteString(styles.Section.Render(name))
	v.b.WriteString("\n")
	return v
}

// Line adds a line of text
func (v *ViewBuilder) Line(text string) *ViewBuilder {
	v.b.WriteString(text)
	v.b.WriteString("\n")
	return v
}

// BlankLine adds a blank line
func (v *ViewBuilder) BlankLine() *ViewBuilder {
	v.b.WriteString("\n")
	return v
}

// Muted adds muted text followed by a newline
func (v *ViewBuilder) Muted(text string) *ViewBuilder {
	v.b.WriteString(styles.MutedText.Render(text))
	v.b.WriteString("\n")
	return v
}

// Message adds a message if non-empty, with appropriate error/success styling
func (v *ViewBuilder) Message(message string, isError bool) *ViewBuilder {
	if message == "" {
		return v
	}
	v.b.WriteString("\n")
	v.b.WriteString(RenderMessage(message, isError))
	v.b.WriteString("\n")
	return v
}

// Help adds a help line with key bindings
func (v *ViewBuilder) Help(bindings ...key.Binding) *ViewBuilder {
	v.b.WriteString("\n")
	v.b.WriteString(RenderHelpLine(bindings...))
	return v
}

// Raw adds raw text without any formatting
func (v *ViewBuilder) Raw(text string) *ViewBuilder {
	v.b.WriteString(text)
	return v
}

// String returns the built view string wrapped in the app style
func (v *ViewBuilder) String() string {
	return styles.App.Render(v.b.String())
}
