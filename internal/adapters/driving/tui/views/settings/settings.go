// Package settings provides the settings configuration view for the TUI.
package settings

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kameleon-labs/kameleon-cli/internal/adapters/driving/tui/messages"
	"github.com/kameleon-labs/kameleon-cli/internal/adapters/driving/tui/styles"
	"github.com/kameleon-labs/kameleon-cli/internal/core/domain"
	"github.com/kameleon-labs/kameleon-cli/internal/core/ports/driving"
)

// descriptions explain each config key.
var descriptions = map[string]string{
	domain.KeyAPIURL:         "Backend base URL",
	domain.KeyAPITimeout:     "Request timeout in seconds",
	domain.KeyAPIRateLimit:   "Sustained requests per second",
	domain.KeyAPIBurst:       "Requests allowed in a burst",
	domain.KeyAuthRegion:     "Cognito region",
	domain.KeyAuthClientID:   "Cognito app client ID",
	domain.KeyAuthUserPoolID: "Cognito user pool ID",
	domain.KeyUITheme:        "Colour theme (enter cycles)",
}

// View is the settings configuration view.
type View struct {
	styles          *styles.Styles
	settingsService driving.SettingsService

	keys     []string
	values   map[string]string
	invalid  error
	selected int

	editing bool
	input   textinput.Model
	saving  string

	notice string
	err    error

	width  int
	height int
	ready  bool
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, settingsService driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	in := textinput.New()
	in.CharLimit = 256
	in.Width = 50

	return &View{
		styles:          s,
		settingsService: settingsService,
		keys:            domain.ConfigKeys(),
		values:          map[string]string{},
		input:           in,
	}
}

// Init loads the settings.
func (v *View) Init() tea.Cmd {
	return v.loadSettings()
}

// loadSettings returns a command that loads the effective settings.
func (v *View) loadSettings() tea.Cmd {
	svc := v.settingsService
	keys := v.keys
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsLoaded{Err: fmt.Errorf("settings service not available")}
		}
		settings, err := svc.Get()
		if err != nil {
			return messages.SettingsLoaded{Err: err}
		}
		values := make(map[string]string, len(keys))
		for _, k := range keys {
			value, err := svc.GetValue(k)
			if err != nil {
				return messages.SettingsLoaded{Err: err}
			}
			values[k] = value
		}
		return messages.SettingsLoaded{Settings: settings, Values: values, Invalid: svc.Validate()}
	}
}

// save returns a command that writes one key.
func (v *View) save(key, value string) tea.Cmd {
	v.saving = key
	v.notice = ""
	svc := v.settingsService
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsSaved{Key: key, Err: fmt.Errorf("settings service not available")}
		}
		return messages.SettingsSaved{Key: key, Err: svc.Set(key, value)}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.SettingsLoaded:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.values = msg.Values
		v.invalid = msg.Invalid
		return v, nil

	case messages.SettingsSaved:
		if msg.Key != v.saving {
			return v, nil
		}
		v.saving = ""
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.notice = fmt.Sprintf("Saved %s", msg.Key)
		return v, v.loadSettings()

	case messages.SettingsChanged:
		return v, v.loadSettings()

	case tea.KeyMsg:
		if v.editing {
			return v.handleEditKeyMsg(msg)
		}
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

// handleKeyMsg handles key presses while browsing keys.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case "down", "j":
		if v.selected < len(v.keys)-1 {
			v.selected++
		}
	case "enter":
		if v.saving != "" {
			return v, nil
		}
		key := v.keys[v.selected]
		if key == domain.KeyUITheme {
			return v, v.save(key, nextTheme(v.values[key]))
		}
		v.editing = true
		v.err = nil
		v.notice = ""
		v.input.SetValue(v.values[key])
		v.input.CursorEnd()
		return v, v.input.Focus()
	case "r":
		return v, v.loadSettings()
	case "esc":
		return v, func() tea.Msg { return messages.FocusMenu{} }
	}
	return v, nil
}

// handleEditKeyMsg handles key presses while editing a value.
func (v *View) handleEditKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "enter":
		v.editing = false
		v.input.Blur()
		return v, v.save(v.keys[v.selected], strings.TrimSpace(v.input.Value()))
	case "esc":
		v.editing = false
		v.input.Blur()
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// nextTheme returns the theme after current, wrapping around.
func nextTheme(current string) string {
	themes := domain.Themes()
	for i, t := range themes {
		if t == current {
			return themes[(i+1)%len(themes)]
		}
	}
	return themes[0]
}

// View renders the settings view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n")
	if v.settingsService != nil {
		b.WriteString(v.styles.Muted.Render("Config file: " + v.settingsService.ConfigPath()))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if v.invalid != nil {
		b.WriteString(v.styles.Warning.Render(v.invalid.Error()))
		b.WriteString("\n\n")
	}
	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	}
	if v.notice != "" {
		b.WriteString(v.styles.Success.Render(v.notice))
		b.WriteString("\n\n")
	}

	keyWidth := 0
	for _, k := range v.keys {
		keyWidth = max(keyWidth, len(k))
	}

	for i, k := range v.keys {
		value := v.values[k]
		if value == "" {
			value = "(not set)"
		}
		if v.editing && i == v.selected {
			b.WriteString(v.styles.Selected.Render(fmt.Sprintf("> %-*s  ", keyWidth, k)))
			b.WriteString(v.input.View())
			b.WriteString("\n")
			continue
		}
		if i == v.selected {
			b.WriteString(v.styles.Selected.Render(fmt.Sprintf("> %-*s  %s", keyWidth, k, value)))
		} else {
			b.WriteString(v.styles.Normal.Render(fmt.Sprintf("  %-*s  ", keyWidth, k)))
			b.WriteString(v.styles.Muted.Render(value))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(descriptions[v.keys[v.selected]]))
	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	if v.editing {
		return v.styles.Help.Render("[enter] save  [esc] cancel")
	}
	return v.styles.Help.Render("[↑/↓] navigate  [enter] edit  [r] reload  [esc] menu")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Values returns the loaded values keyed by config key.
func (v *View) Values() map[string]string {
	return v.values
}

// SelectedKey returns the highlighted config key.
func (v *View) SelectedKey() string {
	return v.keys[v.selected]
}

// Editing reports whether a value is being edited.
func (v *View) Editing() bool {
	return v.editing
}

// Notice returns the last save confirmation.
func (v *View) Notice() string {
	return v.notice
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
