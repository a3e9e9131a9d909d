// Package dashboard provides the signed-in home screen for the TUI.
package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kameleon-labs/kameleon-cli/internal/adapters/driving/tui/messages"
	"github.com/kameleon-labs/kameleon-cli/internal/adapters/driving/tui/styles"
	"github.com/kameleon-labs/kameleon-cli/internal/core/domain"
	"github.com/kameleon-labs/kameleon-cli/internal/core/forms"
	"github.com/kameleon-labs/kameleon-cli/internal/core/ports/driving"
)

// cards is the display order of the resource counts.
var cards = []struct {
	kind  domain.ActivityKind
	label string
	route forms.Route
}{
	{domain.KindDocument, "Documents", forms.RouteDocuments},
	{domain.KindPersona, "Personas", forms.RoutePersonas},
	{domain.KindTemplate, "Templates", forms.RouteTemplates},
	{domain.KindAxiom, "Axioms", forms.RouteAxioms},
}

// View is the dashboard home screen.
type View struct {
	styles           *styles.Styles
	dashboardService driving.DashboardService
	ctx              context.Context

	overview *driving.Overview
	loading  bool
	err      error
	now      func() time.Time

	width  int
	height int
	ready  bool
}

// NewView creates a new dashboard view.
func NewView(s *styles.Styles, dashboardService driving.DashboardService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:           s,
		dashboardService: dashboardService,
		ctx:              context.Background(),
		now:              time.Now,
	}
}

// WithContext sets the context used for backend calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the overview.
func (v *View) Init() tea.Cmd {
	v.loading = true
	v.err = nil
	return v.loadOverview()
}

// loadOverview returns a command that loads the overview.
func (v *View) loadOverview() tea.Cmd {
	ctx := v.ctx
	svc := v.dashboardService
	return func() tea.Msg {
		if svc == nil {
			return messages.OverviewLoaded{Err: fmt.Errorf("dashboard service not available")}
		}
		overview, err := svc.Overview(ctx)
		return messages.OverviewLoaded{Overview: overview, Err: err}
	}
}

// Update handles messages for the dashboard view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.OverviewLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.overview = msg.Overview
		v.err = nil
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			return v, v.Init()
		case "n":
			return v, navigate(forms.RouteNewDocument)
		case "p":
			return v, navigate(forms.RouteNewPersona)
		case "d":
			return v, navigate(forms.RouteDocuments)
		case "esc":
			return v, func() tea.Msg { return messages.FocusMenu{} }
		}
	}

	return v, nil
}

func navigate(route forms.Route) tea.Cmd {
	return func() tea.Msg {
		return messages.Navigate{To: forms.NavigateTo(route)}
	}
}

// View renders the dashboard.
func (v *View) View() string {
	var b strings.Builder

	if v.loading && v.overview == nil {
		b.WriteString(v.styles.Title.Render("Dashboard"))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Muted.Render("Loading your workspace..."))
		return b.String()
	}

	if v.err != nil {
		b.WriteString(v.styles.Title.Render("Dashboard"))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Error.Render(domain.UserMessage(v.err, "Failed to load dashboard")))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	if v.overview == nil {
		return v.styles.Title.Render("Dashboard")
	}

	b.WriteString(v.styles.Title.Render(v.overview.Greeting))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render("Here's what's happening with your PRDs."))
	b.WriteString("\n\n")

	b.WriteString(v.renderCards())
	b.WriteString("\n\n")

	b.WriteString(v.styles.Subtitle.Render("Recent activity"))
	b.WriteString("\n")
	b.WriteString(v.renderActivity())
	b.WriteString("\n")

	b.WriteString(v.styles.Subtitle.Render("Quick actions"))
	b.WriteString("\n")
	b.WriteString(v.styles.Normal.Render("  [n] New document   [p] New persona   [d] All documents"))
	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

// renderCards renders one box per resource count.
func (v *View) renderCards() string {
	boxes := make([]string, 0, len(cards))
	for _, c := range cards {
		var value string
		if n, ok := v.overview.Count(c.kind); ok {
			value = v.styles.Title.Render(fmt.Sprintf("%d", n))
		} else {
			value = v.styles.Error.Render(v.overview.Errors[c.kind])
		}
		box := v.styles.Border.Padding(0, 1).Width(18).Render(
			v.styles.Muted.Render(c.label) + "\n" + value,
		)
		boxes = append(boxes, box)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

// renderActivity renders the recent activity list.
func (v *View) renderActivity() string {
	if len(v.overview.Recent) == 0 {
		return v.styles.Muted.Render("  No recent activity. Create a document to get started.") + "\n"
	}

	var b strings.Builder
	now := v.now()
	for _, a := range v.overview.Recent {
		b.WriteString(v.styles.Normal.Render("  " + a.Summary()))
		b.WriteString(v.styles.Muted.Render("  " + a.TimeAgo(now)))
		b.WriteString("\n")
	}
	return b.String()
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	return v.styles.Help.Render("[r] reload  [esc] menu")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Overview returns the loaded overview.
func (v *View) Overview() *driving.Overview {
	return v.overview
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
