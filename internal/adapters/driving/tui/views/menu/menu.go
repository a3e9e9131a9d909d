// Package menu provides the dashboard sidebar for the TUI.
package menu

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kameleon-labs/kameleon-cli/internal/adapters/driving/tui/messages"
	"github.com/kameleon-labs/kameleon-cli/internal/adapters/driving/tui/styles"
	"github.com/kameleon-labs/kameleon-cli/internal/core/forms"
)

// Width is the rendered width of the sidebar, border and margin included.
const Width = 22

// Item represents a single menu option.
type Item struct {
	Label   string
	Route   forms.Route
	SignOut bool // If true, selecting this item ends the session
}

// View represents the dashboard sidebar.
type View struct {
	styles   *styles.Styles
	items    []Item
	selected int
	active   forms.Route
	focused  bool
	width    int
	height   int
	ready    bool
}

// NewView creates a new sidebar view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles: s,
		items: []Item{
			{Label: "Dashboard", Route: forms.RouteDashboard},
			{Label: "Documents", Route: forms.RouteDocuments},
			{Label: "Personas", Route: forms.RoutePersonas},
			{Label: "Templates", Route: forms.RouteTemplates},
			{Label: "Axioms", Route: forms.RouteAxioms},
			{Label: "Settings", Route: forms.RouteSettings},
			{Label: "Sign out", SignOut: true},
		},
		active: forms.RouteDashboard,
		width:  Width,
		height: 24,
	}
}

// Init initialises the menu view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.selected > 0 {
				v.selected--
			}
			return v, nil

		case "down", "j":
			if v.selected < len(v.items)-1 {
				v.selected++
			}
			return v, nil

		case "enter", "right", "l":
			item := v.items[v.selected]
			if item.SignOut {
				return v, func() tea.Msg {
					return messages.SignOutRequested{}
				}
			}
			return v, func() tea.Msg {
				return messages.Navigate{To: forms.NavigateTo(item.Route)}
			}

		case "q":
			return v, tea.Quit
		}
	}

	return v, nil
}

// View renders the sidebar.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Kameleon"))
	b.WriteString("\n\n")

	for i, item := range v.items {
		cursor := "  "
		if i == v.selected && v.focused {
			cursor = "> "
		}

		label := item.Label
		switch {
		case i == v.selected && v.focused:
			label = v.styles.Selected.Render(label)
		case item.Route != "" && item.Route == v.active:
			label = v.styles.Subtitle.Render(label)
		default:
			label = v.styles.Normal.Render(label)
		}

		b.WriteString(cursor + label)
		b.WriteString("\n")
	}

	// The border and right margin take the remaining three columns.
	return v.styles.Sidebar.Width(Width - 3).Render(b.String())
}

// SetActive marks the item whose section contains route and selects it.
func (v *View) SetActive(route forms.Route) {
	for i, item := range v.items {
		if item.Route == "" {
			continue
		}
		if route == item.Route || strings.HasPrefix(string(route), string(item.Route)+"/") {
			if item.Route == forms.RouteDashboard && route != forms.RouteDashboard {
				continue
			}
			v.active = item.Route
			v.selected = i
			return
		}
	}
}

// Active returns the route of the highlighted section.
func (v *View) Active() forms.Route {
	return v.active
}

// SetFocused sets whether the sidebar receives keys.
func (v *View) SetFocused(focused bool) {
	v.focused = focused
}

// Focused returns whether the sidebar receives keys.
func (v *View) Focused() bool {
	return v.focused
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Selected returns the currently selected index.
func (v *View) Selected() int {
	return v.selected
}
