// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kameleon-labs/kameleon-cli/internal/adapters/driving/tui/styles"
)

// Field wraps a bubbles textinput with a label and an error line.
type Field struct {
	key       string
	label     string
	textinput textinput.Model
	styles    *styles.Styles
	width     int
}

// Option configures a Field.
type Option func(*Field)

// Secret hides the typed characters.
func Secret() Option {
	return func(f *Field) {
		f.textinput.EchoMode = textinput.EchoPassword
		f.textinput.EchoCharacter = '•'
	}
}

// Placeholder sets the hint shown while the field is empty.
func Placeholder(text string) Option {
	return func(f *Field) {
		f.textinput.Placeholder = text
	}
}

// CharLimit caps the number of characters.
func CharLimit(n int) Option {
	return func(f *Field) {
		f.textinput.CharLimit = n
	}
}

// NewField creates a new field. key identifies the field to form code.
func NewField(s *styles.Styles, key, label string, opts ...Option) *Field {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 40
	ti.Prompt = ""

	f := &Field{
		key:       key,
		label:     label,
		textinput: ti,
		styles:    s,
		width:     40,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Update handles input messages. It reports whether the value changed.
func (f *Field) Update(msg tea.Msg) (*Field, tea.Cmd, bool) {
	before := f.textinput.Value()
	var cmd tea.Cmd
	f.textinput, cmd = f.textinput.Update(msg)
	return f, cmd, f.textinput.Value() != before
}

// View renders the label, the input and errText when it is not empty.
func (f *Field) View(errText string) string {
	label := f.styles.Muted.Render(f.label)
	if f.Focused() {
		label = f.styles.Subtitle.Render(f.label)
	}
	box := f.styles.InputField.Width(f.width).Render(f.textinput.View())
	if errText == "" {
		return lipgloss.JoinVertical(lipgloss.Left, label, box)
	}
	return lipgloss.JoinVertical(lipgloss.Left, label, box, f.styles.Error.Render(errText))
}

// Key returns the field key.
func (f *Field) Key() string {
	return f.key
}

// Label returns the field label.
func (f *Field) Label() string {
	return f.label
}

// Value returns the current input value.
func (f *Field) Value() string {
	return f.textinput.Value()
}

// SetValue sets the input value.
func (f *Field) SetValue(value string) {
	f.textinput.SetValue(value)
}

// Focus sets focus on the input.
func (f *Field) Focus() tea.Cmd {
	return f.textinput.Focus()
}

// Blur removes focus from the input.
func (f *Field) Blur() {
	f.textinput.Blur()
}

// Focused returns whether the input is focused.
func (f *Field) Focused() bool {
	return f.textinput.Focused()
}

// SetWidth sets the width of the input.
func (f *Field) SetWidth(width int) {
	if width < 20 {
		width = 20
	}
	f.width = width
	f.textinput.Width = width - 4
}

// Reset clears the input.
func (f *Field) Reset() {
	f.textinput.Reset()
}
