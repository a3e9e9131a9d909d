// Package landing provides the signed-out welcome screen for the TUI.
package landing

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kameleon-labs/kameleon-cli/internal/adapters/driving/tui/messages"
	"github.com/kameleon-labs/kameleon-cli/internal/adapters/driving/tui/styles"
	"github.com/kameleon-labs/kameleon-cli/internal/core/forms"
)

// Item represents a single landing action.
type Item struct {
	Label string
	Route forms.Route
	Quit  bool
}

// feature is one of the product pillars shown on the landing screen.
type feature struct {
	name        string
	title       string
	description string
}

var features = []feature{
	{"Axioms", "Guiding Principles",
		"Writing rules that ensure clarity and impact."},
	{"Templates", "Audience-Ready Structures",
		"Document formats tailored to Engineering, Product, or Leadership."},
	{"Personas", "Reviewer Calibration",
		"Profiles built from real feedback to match individual preferences."},
}

var steps = []string{
	"Select a Template",
	"Choose the Reviewer Persona",
	"Write Your Draft",
	"System Adapts Content",
	"Model Reviewer Validates",
}

// View represents the landing screen.
type View struct {
	styles   *styles.Styles
	items    []Item
	selected int
	width    int
	height   int
	ready    bool
}

// NewView creates a new landing view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles: s,
		items: []Item{
			{Label: "Sign in", Route: forms.RouteLogin},
			{Label: "Create account", Route: forms.RouteRegister},
			{Label: "Quit", Quit: true},
		},
		width:  80,
		height: 24,
	}
}

// Init initialises the landing view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the landing view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k", "left", "h":
			if v.selected > 0 {
				v.selected--
			}
			return v, nil

		case "down", "j", "right", "l", "tab":
			if v.selected < len(v.items)-1 {
				v.selected++
			}
			return v, nil

		case "enter":
			item := v.items[v.selected]
			if item.Quit {
				return v, tea.Quit
			}
			return v, navigate(item.Route)

		case "s":
			return v, navigate(forms.RouteLogin)

		case "c":
			return v, navigate(forms.RouteRegister)

		case "q":
			return v, tea.Quit
		}
	}

	return v, nil
}

func navigate(route forms.Route) tea.Cmd {
	return func() tea.Msg {
		return messages.Navigate{To: forms.NavigateTo(route)}
	}
}

// View renders the landing screen.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Kameleon"))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Subtitle.Render("PRDs That Land on the First Pass"))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(
		"Adapt your documents to reviewer preferences automatically."))
	b.WriteString("\n\n")

	for _, f := range features {
		b.WriteString(v.styles.Normal.Render(fmt.Sprintf("  %-10s", f.name)))
		b.WriteString(v.styles.Subtitle.Render(f.title))
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render("            " + f.description))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Normal.Render("How it works"))
	b.WriteString("\n")
	for i, step := range steps {
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  %d. %s", i+1, step)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for i, item := range v.items {
		if i == v.selected {
			b.WriteString(v.styles.Selected.Render(" " + item.Label + " "))
		} else {
			b.WriteString(v.styles.Normal.Render(" " + item.Label + " "))
		}
		b.WriteString("  ")
	}
	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[←/→] choose  [enter] select  [s] sign in  [c] create account  [q] quit"))

	return b.String()
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
