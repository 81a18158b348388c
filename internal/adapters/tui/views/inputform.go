package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"jsonbrowse/internal/adapters/tui/styles"
)

// InputFormKeyMap defines key bindings for input forms
type InputFormKeyMap struct {
	Submit key.Binding
	Cancel key.Binding
	Tab    key.Binding
}

// DefaultInputFormKeys returns the default input form key bindings
var DefaultInputFormKeys = InputFormKeyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "submit"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab", "shift+tab"),
		key.WithHelp("tab", "next field"),
	),
}

// InputField represents a single input field with label and textinput
type InputField struct {
	Label string
	Input textinput.Model
}

// InputForm manages multiple text input fields with focus handling.
// A new form starts blurred; call Focus to start typing.
type InputForm struct {
	Fields       []InputField
	FocusedField int
	Keys         InputFormKeyMap
	focused      bool
}

// NewInputForm creates a new input form with the given fields
func NewInputForm(fields ...InputField) *InputForm {
	return &InputForm{
		Fields: fields,
		Keys:   DefaultInputFormKeys,
	}
}

// NewInputField creates a new input field with the given label and placeholder
func NewInputField(label, placeholder string, charLimit int) InputField {
	input := textinput.New()
	input.Placeholder = placeholder
	input.Prompt = ""
	if charLimit > 0 {
		input.CharLimit = charLimit
	}
	return InputField{
		Label: label,
		Input: input,
	}
}

// Focus gives the form keyboard focus, starting at the first field
func (f *InputForm) Focus() tea.Cmd {
	f.focused = true
	f.SetFocus(0)
	return textinput.Blink
}

// Blur drops keyboard focus. Typed values are kept.
func (f *InputForm) Blur() {
	f.focused = false
	for i := range f.Fields {
		f.Fields[i].Input.Blur()
	}
}

// Focused reports whether the form has keyboard focus
func (f *InputForm) Focused() bool {
	return f.focused
}

// Update handles messages for the input form.
// Returns (handled, cmd) where handled is true if the key was processed.
func (f *InputForm) Update(msg tea.Msg) (bool, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, f.Keys.Tab) {
		if msg.String() == "shift+tab" {
			f.SetFocus((f.FocusedField + len(f.Fields) - 1) % len(f.Fields))
		} else {
			f.NextField()
		}
		return true, nil
	}

	var cmd tea.Cmd
	if f.FocusedField >= 0 && f.FocusedField < len(f.Fields) {
		f.Fields[f.FocusedField].Input, cmd = f.Fields[f.FocusedField].Input.Update(msg)
	}
	return false, cmd
}

// NextField moves focus to the next field
func (f *InputForm) NextField() {
	if len(f.Fields) <= 1 {
		return
	}
	f.SetFocus((f.FocusedField + 1) % len(f.Fields))
}

// SetFocus sets focus to a specific field
func (f *InputForm) SetFocus(index int) {
	if index < 0 || index >= len(f.Fields) {
		return
	}
	if f.FocusedField >= 0 && f.FocusedField < len(f.Fields) {
		f.Fields[f.FocusedField].Input.Blur()
	}
	f.FocusedField = index
	f.Fields[f.FocusedField].Input.Focus()
}

// Value returns the trimmed value of a field by index
func (f *InputForm) Value(index int) string {
	if index < 0 || index >= len(f.Fields) {
		return ""
	}
	return strings.TrimSpace(f.Fields[index].Input.Value())
}

// SetValue sets the value of a field by index
func (f *InputForm) SetValue(index int, value string) {
	if index < 0 || index >= len(f.Fields) {
		return
	}
	f.Fields[index].Input.SetValue(value)
}

// Reset clears all field values and moves back to the first field
func (f *InputForm) Reset() {
	for i := range f.Fields {
		f.Fields[i].Input.SetValue("")
	}
	if f.focused {
		f.SetFocus(0)
	}
}

// RenderInline renders every field on one line, labels first
func (f *InputForm) RenderInline() string {
	parts := make([]string, 0, len(f.Fields))
	for i, field := range f.Fields {
		style := styles.InputField
		if f.focused && i == f.FocusedField {
			style = styles.InputFocused
		}
		parts = append(parts, lipgloss.JoinHorizontal(lipgloss.Center,
			styles.InputLabel.Render(field.Label+" "),
			style.Render(field.Input.View()),
			"  ",
		))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

// RenderHelp renders the help text for the form
func (f *InputForm) RenderHelp(submitText string) string {
	var parts []string

	if len(f.Fields) > 1 {
		parts = append(parts, styles.HelpKey.Render("tab")+" "+styles.HelpDesc.Render("next field"))
	}
	parts = append(parts, styles.HelpKey.Render("enter")+" "+styles.HelpDesc.Render(submitText))
	parts = append(parts, styles.HelpKey.Render("esc")+" "+styles.HelpDesc.Render("cancel"))

	return strings.Join(parts, "  ")
}
