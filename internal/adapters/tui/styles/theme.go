package styles

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Palette is the set of colors a theme is built from
type Palette struct {
	Primary   lipgloss.TerminalColor
	Secondary lipgloss.TerminalColor
	Muted     lipgloss.TerminalColor
	Warning   lipgloss.TerminalColor
	Error     lipgloss.TerminalColor
	Local     lipgloss.TerminalColor
	Fg        lipgloss.TerminalColor
}

var palettes = map[string]Palette{
	"default": {
		Primary:   lipgloss.Color("#7C3AED"), // Purple
		Secondary: lipgloss.Color("#10B981"), // Green
		Muted:     lipgloss.Color("#6B7280"), // Gray
		Warning:   lipgloss.Color("#F59E0B"), // Amber
		Error:     lipgloss.Color("#EF4444"), // Red
		Local:     lipgloss.Color("#60A5FA"), // Blue
		Fg:        lipgloss.Color("#FFFFFF"),
	},
	"mono": {
		Primary:   lipgloss.NoColor{},
		Secondary: lipgloss.NoColor{},
		Muted:     lipgloss.NoColor{},
		Warning:   lipgloss.NoColor{},
		Error:     lipgloss.NoColor{},
		Local:     lipgloss.NoColor{},
		Fg:        lipgloss.NoColor{},
	},
}

var (
	App           lipgloss.Style
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Section       lipgloss.Style
	RowSelected   lipgloss.Style
	RowLocal      lipgloss.Style
	Crumb         lipgloss.Style
	CrumbCurrent  lipgloss.Style
	CrumbSep      lipgloss.Style
	Done          lipgloss.Style
	NotDone       lipgloss.Style
	LocalTag      lipgloss.Style
	InputLabel    lipgloss.Style
	InputField    lipgloss.Style
	InputFocused  lipgloss.Style
	HelpKey       lipgloss.Style
	HelpDesc      lipgloss.Style
	HelpSeparator lipgloss.Style
	Success       lipgloss.Style
	ErrorMsg      lipgloss.Style
	SearchMatch   lipgloss.Style
	MutedText     lipgloss.Style
)

func init() {
	build(palettes["default"])
}

// Apply switches every style to the named theme
func Apply(name string) error {
	p, ok := palettes[name]
	if !ok {
		return fmt.Errorf("unknown theme %q", name)
	}
	build(p)
	return nil
}

func build(p Palette) {
	App = lipgloss.NewStyle().
		Padding(1, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Primary)

	Subtitle = lipgloss.NewStyle().
		Foreground(p.Muted).
		Italic(true)

	Section = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Secondary).
		MarginTop(1)

	RowSelected = lipgloss.NewStyle().
		Background(p.Primary).
		Foreground(p.Fg).
		Bold(true)

	RowLocal = lipgloss.NewStyle().
		Foreground(p.Local)

	Crumb = lipgloss.NewStyle().
		Foreground(p.Local).
		Underline(true)

	CrumbCurrent = lipgloss.NewStyle().
		Bold(true)

	CrumbSep = lipgloss.NewStyle().
		Foreground(p.Muted).
		SetString(" › ")

	Done = lipgloss.NewStyle().
		Foreground(p.Secondary)

	NotDone = lipgloss.NewStyle().
		Foreground(p.Error)

	LocalTag = lipgloss.NewStyle().
		Foreground(p.Local).
		Italic(true)

	InputLabel = lipgloss.NewStyle().
		Foreground(p.Secondary).
		Bold(true)

	InputField = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Primary).
		Padding(0, 1)

	InputFocused = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Secondary).
		Padding(0, 1)

	HelpKey = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)

	HelpDesc = lipgloss.NewStyle().
		Foreground(p.Muted)

	HelpSeparator = lipgloss.NewStyle().
		Foreground(p.Muted).
		SetString(" • ")

	Success = lipgloss.NewStyle().
		Foreground(p.Secondary).
		Bold(true)

	ErrorMsg = lipgloss.NewStyle().
		Foreground(p.Error).
		Bold(true)

	SearchMatch = lipgloss.NewStyle().
		Foreground(p.Warning).
		Bold(true)

	MutedText = lipgloss.NewStyle().
		Foreground(p.Muted)
}
