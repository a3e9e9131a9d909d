// Package browse provides read-only list views for personas, templates and axioms.
package browse

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/kameleon-labs/kameleon-cli/internal/adapters/driving/tui/components/list"
	"github.com/kameleon-labs/kameleon-cli/internal/adapters/driving/tui/messages"
	"github.com/kameleon-labs/kameleon-cli/internal/adapters/driving/tui/styles"
	"github.com/kameleon-labs/kameleon-cli/internal/core/domain"
	"github.com/kameleon-labs/kameleon-cli/internal/core/forms"
	"github.com/kameleon-labs/kameleon-cli/internal/core/ports/driving"
)

// entry is one browsable item: its list row and the full preview text.
type entry struct {
	row     list.Row
	preview string
}

// View lists one kind of resource with a preview of the selected item.
type View struct {
	styles *styles.Styles
	ctx    context.Context

	title   string
	noun    string
	newItem forms.Route
	fetch   func(ctx context.Context) tea.Msg
	accept  func(msg tea.Msg) ([]entry, bool, error)

	list    *list.ItemList
	entries []entry
	loading bool
	err     error

	width  int
	height int
	ready  bool
}

func newView(s *styles.Styles, title, noun, empty string) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles: s,
		ctx:    context.Background(),
		title:  title,
		noun:   noun,
		list:   list.NewItemList(s, empty),
		width:  80,
		height: 24,
	}
}

// NewPersonas creates the personas view. [n] opens the new persona form.
func NewPersonas(s *styles.Styles, svc driving.PersonaService) *View {
	v := newView(s, "Personas", "personas", "No personas yet. Press [n] to calibrate your first reviewer.")
	v.newItem = forms.RouteNewPersona
	v.fetch = func(ctx context.Context) tea.Msg {
		if svc == nil {
			return messages.PersonasLoaded{Err: fmt.Errorf("persona service not available")}
		}
		page, err := svc.List(ctx, domain.ListParams{})
		if err != nil {
			return messages.PersonasLoaded{Err: err}
		}
		return messages.PersonasLoaded{Personas: page.Items}
	}
	v.accept = func(msg tea.Msg) ([]entry, bool, error) {
		m, ok := msg.(messages.PersonasLoaded)
		if !ok {
			return nil, false, nil
		}
		entries := make([]entry, len(m.Personas))
		for i, p := range m.Personas {
			entries[i] = personaEntry(p)
		}
		return entries, true, m.Err
	}
	return v
}

// NewTemplates creates the templates view.
func NewTemplates(s *styles.Styles, svc driving.TemplateService) *View {
	v := newView(s, "Templates", "templates", "No templates available.")
	v.fetch = func(ctx context.Context) tea.Msg {
		if svc == nil {
			return messages.TemplatesLoaded{Err: fmt.Errorf("template service not available")}
		}
		page, err := svc.List(ctx, domain.TemplateListParams{})
		if err != nil {
			return messages.TemplatesLoaded{Err: err}
		}
		return messages.TemplatesLoaded{Templates: page.Items}
	}
	v.accept = func(msg tea.Msg) ([]entry, bool, error) {
		m, ok := msg.(messages.TemplatesLoaded)
		if !ok {
			return nil, false, nil
		}
		entries := make([]entry, len(m.Templates))
		for i, t := range m.Templates {
			entries[i] = templateEntry(t)
		}
		return entries, true, m.Err
	}
	return v
}

// NewAxioms creates the axioms view.
func NewAxioms(s *styles.Styles, svc driving.AxiomService) *View {
	v := newView(s, "Axioms", "axioms", "No axioms yet. Add guiding principles with `kameleon axioms create`.")
	v.fetch = func(ctx context.Context) tea.Msg {
		if svc == nil {
			return messages.AxiomsLoaded{Err: fmt.Errorf("axiom service not available")}
		}
		page, err := svc.List(ctx, domain.ListParams{})
		if err != nil {
			return messages.AxiomsLoaded{Err: err}
		}
		return messages.AxiomsLoaded{Axioms: page.Items}
	}
	v.accept = func(msg tea.Msg) ([]entry, bool, error) {
		m, ok := msg.(messages.AxiomsLoaded)
		if !ok {
			return nil, false, nil
		}
		entries := make([]entry, len(m.Axioms))
		for i, a := range m.Axioms {
			entries[i] = axiomEntry(a)
		}
		return entries, true, m.Err
	}
	return v
}

func personaEntry(p domain.Persona) entry {
	prefs := p.Preferences
	var b strings.Builder
	fmt.Fprintf(&b, "Role: %s\n", orDash(p.Role))
	fmt.Fprintf(&b, "Tone: %s  Length: %s  Technical depth: %s\n",
		orDash(prefs.Tone), orDash(prefs.Length), orDash(prefs.TechnicalDepth))
	if len(prefs.Likes) > 0 {
		fmt.Fprintf(&b, "Likes: %s\n", strings.Join(prefs.Likes, ", "))
	}
	if len(prefs.Dislikes) > 0 {
		fmt.Fprintf(&b, "Dislikes: %s\n", strings.Join(prefs.Dislikes, ", "))
	}
	fmt.Fprintf(&b, "Examples: %d", len(p.Examples))

	return entry{
		row: list.Row{
			ID:     p.ID,
			Title:  p.Name,
			Badge:  fmt.Sprintf("%d examples", len(p.Examples)),
			Detail: p.Role,
		},
		preview: b.String(),
	}
}

func templateEntry(t domain.Template) entry {
	badge := t.Audience.Description()
	if t.IsDefault {
		badge += " · default"
	}
	return entry{
		row: list.Row{
			ID:     t.ID,
			Title:  t.Name,
			Badge:  badge,
			Detail: t.Structure,
		},
		preview: t.Structure,
	}
}

func axiomEntry(a domain.Axiom) entry {
	badge := ""
	if a.IsDefault {
		badge = "default"
	}
	return entry{
		row: list.Row{
			ID:     a.ID,
			Title:  a.Title,
			Badge:  badge,
			Detail: a.Content,
		},
		preview: a.Content,
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// WithContext sets the context used for backend calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the items.
func (v *View) Init() tea.Cmd {
	v.loading = true
	v.err = nil
	ctx := v.ctx
	fetch := v.fetch
	return func() tea.Msg {
		return fetch(ctx)
	}
}

// Update handles messages for the view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	if entries, ok, err := v.accept(msg); ok {
		v.loading = false
		if err != nil {
			v.err = err
			return v, nil
		}
		v.err = nil
		v.entries = entries
		rows := make([]list.Row, len(entries))
		for i := range entries {
			rows[i] = entries[i].row
		}
		v.list.SetRows(rows)
		return v, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "n":
			if v.newItem != "" {
				route := v.newItem
				return v, func() tea.Msg {
					return messages.Navigate{To: forms.NavigateTo(route)}
				}
			}
		case "r":
			return v, v.Init()
		case "esc":
			return v, func() tea.Msg { return messages.FocusMenu{} }
		default:
			v.list.Update(msg)
		}
	}

	return v, nil
}

// View renders the list and the preview of the selected item.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render(fmt.Sprintf("%s (%d)", v.title, len(v.entries))))
	b.WriteString("\n\n")

	if v.loading && len(v.entries) == 0 {
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("Loading %s...", v.noun)))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(domain.UserMessage(v.err, "Failed to load "+v.noun)))
		b.WriteString("\n\n")
	}

	b.WriteString(v.list.View())
	b.WriteString("\n")

	if i := v.list.Selected(); i < len(v.entries) && v.entries[i].preview != "" {
		b.WriteString("\n")
		b.WriteString(v.styles.Subtitle.Render(v.entries[i].row.Title))
		b.WriteString("\n")
		preview := ansi.Wrap(v.entries[i].preview, max(v.width-4, 20), "")
		lines := strings.Split(preview, "\n")
		if len(lines) > 8 {
			lines = append(lines[:8], "...")
		}
		b.WriteString(v.styles.Normal.Render(strings.Join(lines, "\n")))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	if v.newItem != "" {
		return v.styles.Help.Render("[↑/↓] navigate  [n] new  [r] reload  [esc] menu")
	}
	return v.styles.Help.Render("[↑/↓] navigate  [r] reload  [esc] menu")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	// Leave room for the preview pane.
	v.list.SetDimensions(width, height-16)
}

// Title returns the view title.
func (v *View) Title() string {
	return v.title
}

// Count returns the number of loaded items.
func (v *View) Count() int {
	return len(v.entries)
}

// SelectedID returns the ID of the selected item, or "" when empty.
func (v *View) SelectedID() string {
	if row := v.list.SelectedRow(); row != nil {
		return row.ID
	}
	return ""
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
