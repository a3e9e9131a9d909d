package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kameleon-labs/kameleon-cli/internal/adapters/driving/tui/components/status"
	"github.com/kameleon-labs/kameleon-cli/internal/adapters/driving/tui/keymap"
	"github.com/kameleon-labs/kameleon-cli/internal/adapters/driving/tui/messages"
	"github.com/kameleon-labs/kameleon-cli/internal/adapters/driving/tui/styles"
	"github.com/kameleon-labs/kameleon-cli/internal/adapters/driving/tui/views/auth"
	"github.com/kameleon-labs/kameleon-cli/internal/adapters/driving/tui/views/browse"
	"github.com/kameleon-labs/kameleon-cli/internal/adapters/driving/tui/views/dashboard"
	"github.com/kameleon-labs/kameleon-cli/internal/adapters/driving/tui/views/document"
	"github.com/kameleon-labs/kameleon-cli/internal/adapters/driving/tui/views/documents"
	"github.com/kameleon-labs/kameleon-cli/internal/adapters/driving/tui/views/landing"
	"github.com/kameleon-labs/kameleon-cli/internal/adapters/driving/tui/views/menu"
	"github.com/kameleon-labs/kameleon-cli/internal/adapters/driving/tui/views/newdocument"
	"github.com/kameleon-labs/kameleon-cli/internal/adapters/driving/tui/views/newpersona"
	"github.com/kameleon-labs/kameleon-cli/internal/adapters/driving/tui/views/settings"
	"github.com/kameleon-labs/kameleon-cli/internal/core/domain"
	"github.com/kameleon-labs/kameleon-cli/internal/core/forms"
)

// SessionExpiredMessage is shown when a request fails because the session
// could not be refreshed.
const SessionExpiredMessage = "Your session has expired. Please sign in again."

// delayedNavigate fires when a delayed navigation is due.
type delayedNavigate struct {
	to  *forms.Navigation
	seq int
}

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles, shared by every view.
	styles *styles.Styles

	keymap    *keymap.KeyMap
	help      help.Model
	statusBar *status.Bar

	landingView     *landing.View
	authView        *auth.View
	menuView        *menu.View
	dashboardView   *dashboard.View
	documentsView   *documents.View
	documentView    *document.View
	newDocumentView *newdocument.View
	personasView    *browse.View
	newPersonaView  *newpersona.View
	templatesView   *browse.View
	axiomsView      *browse.View
	settingsView    *settings.View

	// session is the last snapshot taken from the session service.
	session domain.SessionState

	// currentView tracks which view is active.
	currentView messages.ViewType

	// route is the route the current view was reached by.
	route forms.Route

	// menuFocused is set when keys go to the dashboard sidebar.
	menuFocused bool

	showHelp bool

	// navSeq invalidates pending delayed navigations.
	navSeq int

	// settingsChanged receives config file change events.
	settingsChanged chan struct{}

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	h := help.New()
	h.ShowAll = true

	return &App{
		ports:           ports,
		ctx:             context.Background(),
		styles:          s,
		keymap:          km,
		help:            h,
		statusBar:       status.NewBar(s, km),
		landingView:     landing.NewView(s),
		authView:        auth.NewView(s, ports.Auth),
		menuView:        menu.NewView(s),
		dashboardView:   dashboard.NewView(s, ports.Dashboard),
		documentsView:   documents.NewView(s, ports.Documents),
		documentView:    document.NewView(s, ports.Documents),
		newDocumentView: newdocument.NewView(s, ports.Documents, ports.Templates, ports.Personas),
		personasView:    browse.NewPersonas(s, ports.Personas),
		newPersonaView:  newpersona.NewView(s, ports.Personas),
		templatesView:   browse.NewTemplates(s, ports.Templates),
		axiomsView:      browse.NewAxioms(s, ports.Axioms),
		settingsView:    settings.NewView(s, ports.Settings),
		currentView:     messages.ViewLanding,
		route:           forms.RouteLanding,
		settingsChanged: make(chan struct{}, 1),
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.authView.WithContext(ctx)
	a.dashboardView.WithContext(ctx)
	a.documentsView.WithContext(ctx)
	a.documentView.WithContext(ctx)
	a.newDocumentView.WithContext(ctx)
	a.personasView.WithContext(ctx)
	a.newPersonaView.WithContext(ctx)
	a.templatesView.WithContext(ctx)
	a.axiomsView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
// It restores the session and starts watching the config file.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tea.SetWindowTitle("Kameleon"),
		a.initSession(),
	}
	if a.ports.Settings != nil {
		cmds = append(cmds, a.watchSettings(), a.waitSettings())
	}
	return tea.Batch(cmds...)
}

func (a *App) initSession() tea.Cmd {
	session := a.ports.Session
	ctx := a.ctx
	return func() tea.Msg {
		err := session.Initialize(ctx)
		return messages.SessionLoaded{State: session.State(), Err: err}
	}
}

// watchSettings starts the config file watcher. Change events are
// coalesced into settingsChanged.
func (a *App) watchSettings() tea.Cmd {
	svc := a.ports.Settings
	ctx := a.ctx
	ch := a.settingsChanged
	return func() tea.Msg {
		err := svc.Watch(ctx, func() {
			select {
			case ch <- struct{}{}:
			default:
			}
		})
		if err != nil {
			return messages.ErrorOccurred{Err: fmt.Errorf("watching config: %w", err)}
		}
		return nil
	}
}

func (a *App) waitSettings() tea.Cmd {
	ctx := a.ctx
	ch := a.settingsChanged
	return func() tea.Msg {
		select {
		case <-ch:
			return messages.SettingsChanged{}
		case <-ctx.Done():
			return nil
		}
	}
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocognit,gocyclo,funlen // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if expiredErr(msg) {
		return a, a.expire()
	}

	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.setDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case messages.Navigate:
		return a, a.navigate(msg.To)

	case delayedNavigate:
		if msg.seq != a.navSeq {
			return a, nil
		}
		return a, a.navigate(msg.to)

	case messages.FocusMenu:
		a.menuFocused = true
		a.menuView.SetFocused(true)
		return a, nil

	case messages.ViewChanged:
		a.currentView = msg.View
		return a, nil

	case messages.SessionLoaded:
		a.session = msg.State
		a.statusBar.SetUser(userLabel(msg.State))
		if msg.Err != nil && !errors.Is(msg.Err, domain.ErrAuthExpired) {
			a.err = msg.Err
		}
		if msg.State.Authenticated {
			return a, a.navigate(forms.NavigateTo(forms.RouteDashboard))
		}
		return a, a.navigate(forms.NavigateTo(forms.RouteLanding))

	case messages.SignOutRequested:
		session := a.ports.Session
		ctx := a.ctx
		a.statusBar.SetState(status.StateLoading)
		a.statusBar.SetMessage("Signing out...")
		return a, func() tea.Msg {
			return messages.SignedOut{Err: session.SignOut(ctx)}
		}

	case messages.SignedOut:
		a.err = msg.Err
		a.session = a.ports.Session.State()
		a.statusBar.SetUser(userLabel(a.session))
		return a, a.navigate(forms.NavigateTo(forms.RouteLanding))

	case messages.FormSubmitted, messages.CodeResent:
		a.authView, cmd = a.authView.Update(msg)
		return a, cmd

	case messages.OverviewLoaded:
		a.dashboardView, cmd = a.dashboardView.Update(msg)
		return a, cmd

	case messages.DocumentsLoaded:
		a.documentsView, cmd = a.documentsView.Update(msg)
		return a, cmd

	case messages.DocumentSubmitted:
		var listCmd, docCmd tea.Cmd
		a.documentsView, listCmd = a.documentsView.Update(msg)
		a.documentView, docCmd = a.documentView.Update(msg)
		return a, tea.Batch(listCmd, docCmd)

	case messages.DocumentSelected:
		a.currentView = messages.ViewDocument
		return a, a.documentView.SetDocument(msg.Document)

	case messages.DocumentLoaded:
		a.documentView, cmd = a.documentView.Update(msg)
		return a, cmd

	case messages.PersonasLoaded:
		a.personasView, cmd = a.personasView.Update(msg)
		return a, cmd

	case messages.TemplatesLoaded:
		a.templatesView, cmd = a.templatesView.Update(msg)
		return a, cmd

	case messages.AxiomsLoaded:
		a.axiomsView, cmd = a.axiomsView.Update(msg)
		return a, cmd

	case messages.ChoicesLoaded, messages.DocumentCreated:
		a.newDocumentView, cmd = a.newDocumentView.Update(msg)
		return a, cmd

	case messages.PersonaCreated:
		a.newPersonaView, cmd = a.newPersonaView.Update(msg)
		return a, cmd

	case messages.SettingsLoaded, messages.SettingsSaved:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.SettingsChanged:
		a.applyTheme()
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, tea.Batch(cmd, a.waitSettings())

	case messages.ErrorOccurred:
		a.err = msg.Err
		if msg.Err != nil {
			a.statusBar.SetState(status.StateError)
			a.statusBar.SetMessage(msg.Err.Error())
		}
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	return a.updateCurrent(msg)
}

func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	if a.showHelp {
		if keymap.Matches(msg.String(), a.keymap.Help) || msg.Type == tea.KeyEsc {
			a.showHelp = false
		}
		return a, nil
	}
	if keymap.Matches(msg.String(), a.keymap.Help) && !a.typing() {
		a.showHelp = true
		return a, nil
	}

	if a.menuFocused && !a.currentView.IsAuth() && a.currentView != messages.ViewLanding {
		var cmd tea.Cmd
		a.menuView, cmd = a.menuView.Update(msg)
		return a, cmd
	}
	return a.updateCurrent(msg)
}

// typing reports whether the current view has a focused text input.
func (a *App) typing() bool {
	if a.menuFocused {
		return false
	}
	switch a.currentView {
	case messages.ViewNewDocument, messages.ViewNewPersona:
		return true
	case messages.ViewSettings:
		return a.settingsView.Editing()
	default:
		return a.currentView.IsAuth()
	}
}

// updateCurrent forwards msg to the active view.
func (a *App) updateCurrent(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch a.currentView {
	case messages.ViewLanding:
		a.landingView, cmd = a.landingView.Update(msg)
	case messages.ViewLogin, messages.ViewRegister, messages.ViewVerifyEmail,
		messages.ViewForgotPassword, messages.ViewResetPassword:
		a.authView, cmd = a.authView.Update(msg)
	case messages.ViewDashboard:
		a.dashboardView, cmd = a.dashboardView.Update(msg)
	case messages.ViewDocuments:
		a.documentsView, cmd = a.documentsView.Update(msg)
	case messages.ViewDocument:
		a.documentView, cmd = a.documentView.Update(msg)
	case messages.ViewNewDocument:
		a.newDocumentView, cmd = a.newDocumentView.Update(msg)
	case messages.ViewPersonas:
		a.personasView, cmd = a.personasView.Update(msg)
	case messages.ViewNewPersona:
		a.newPersonaView, cmd = a.newPersonaView.Update(msg)
	case messages.ViewTemplates:
		a.templatesView, cmd = a.templatesView.Update(msg)
	case messages.ViewAxioms:
		a.axiomsView, cmd = a.axiomsView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewHelp:
		// Help is an overlay and owns no state.
	}

	return a, cmd
}

// navigate moves to nav, applying the session guard. A navigation with a
// delay is scheduled and dropped if another navigation happens first.
func (a *App) navigate(nav *forms.Navigation) tea.Cmd {
	if nav == nil {
		return nil
	}
	if nav.Delay > 0 {
		to := *nav
		to.Delay = 0
		seq := a.navSeq
		return tea.Tick(nav.Delay, func(time.Time) tea.Msg {
			return delayedNavigate{to: &to, seq: seq}
		})
	}

	a.navSeq++
	a.session = a.ports.Session.State()
	a.statusBar.SetUser(userLabel(a.session))

	route := guard(nav.Route, a.session.Authenticated)
	if route != nav.Route {
		nav = forms.NavigateTo(route)
	}

	a.route = route
	a.currentView = viewFor(route)
	a.menuFocused = false
	a.menuView.SetFocused(false)
	a.menuView.SetActive(route)
	a.showHelp = false
	a.statusBar.Clear()
	a.statusBar.SetHints(a.hints())

	return a.enter(a.currentView, nav)
}

// enter prepares view for display.
func (a *App) enter(view messages.ViewType, nav *forms.Navigation) tea.Cmd {
	switch view {
	case messages.ViewLogin, messages.ViewRegister, messages.ViewVerifyEmail,
		messages.ViewForgotPassword, messages.ViewResetPassword:
		return a.authView.SetPage(view, nav)
	case messages.ViewDashboard:
		return a.dashboardView.Init()
	case messages.ViewDocuments:
		return a.documentsView.Init()
	case messages.ViewNewDocument:
		return a.newDocumentView.Prepare(nav)
	case messages.ViewPersonas:
		return a.personasView.Init()
	case messages.ViewNewPersona:
		return a.newPersonaView.Reset()
	case messages.ViewTemplates:
		return a.templatesView.Init()
	case messages.ViewAxioms:
		return a.axiomsView.Init()
	case messages.ViewSettings:
		return a.settingsView.Init()
	default:
		return nil
	}
}

// expire sends the user back to sign in after the session ran out.
func (a *App) expire() tea.Cmd {
	cmd := a.navigate(forms.NavigateTo(forms.RouteLogin))
	a.err = domain.ErrAuthExpired
	a.statusBar.SetState(status.StateError)
	a.statusBar.SetMessage(SessionExpiredMessage)
	return cmd
}

// expiredErr reports whether msg carries an expired session error.
func expiredErr(msg tea.Msg) bool {
	var err error
	switch m := msg.(type) {
	case messages.OverviewLoaded:
		err = m.Err
	case messages.DocumentsLoaded:
		err = m.Err
	case messages.DocumentLoaded:
		err = m.Err
	case messages.DocumentSubmitted:
		err = m.Err
	case messages.PersonasLoaded:
		err = m.Err
	case messages.TemplatesLoaded:
		err = m.Err
	case messages.AxiomsLoaded:
		err = m.Err
	case messages.ChoicesLoaded:
		err = m.Err
	case messages.DocumentCreated:
		err = m.Err
	case messages.PersonaCreated:
		err = m.Err
	}
	return err != nil && errors.Is(err, domain.ErrAuthExpired)
}

// applyTheme restyles every view from the current ui.theme setting.
func (a *App) applyTheme() {
	cfg, err := a.ports.Settings.Get()
	if err != nil || cfg == nil {
		return
	}
	a.styles.Apply(styles.ThemeNamed(cfg.UI.Theme))
}

func (a *App) hints() []key.Binding {
	switch {
	case a.currentView.IsAuth(), a.currentView == messages.ViewNewPersona,
		a.currentView == messages.ViewNewDocument:
		return a.keymap.FormHelp()
	case a.currentView == messages.ViewDocuments, a.currentView == messages.ViewPersonas,
		a.currentView == messages.ViewTemplates, a.currentView == messages.ViewAxioms:
		return a.keymap.ListHelp()
	default:
		return nil
	}
}

func userLabel(state domain.SessionState) string {
	if !state.Authenticated || state.User == nil {
		return ""
	}
	return state.User.DisplayName()
}

func (a *App) setDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true

	// The status bar takes the last line.
	body := max(height-1, 0)
	content := max(width-menu.Width, 0)

	a.statusBar.SetWidth(width)
	a.help.Width = width
	a.landingView.SetDimensions(width, body)
	a.authView.SetDimensions(width, body)
	a.menuView.SetDimensions(menu.Width, body)
	a.dashboardView.SetDimensions(content, body)
	a.documentsView.SetDimensions(content, body)
	a.documentView.SetDimensions(content, body)
	a.newDocumentView.SetDimensions(content, body)
	a.personasView.SetDimensions(content, body)
	a.newPersonaView.SetDimensions(content, body)
	a.templatesView.SetDimensions(content, body)
	a.axiomsView.SetDimensions(content, body)
	a.settingsView.SetDimensions(content, body)
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch {
	case a.showHelp:
		body = a.viewHelp()
	case a.currentView == messages.ViewLanding:
		body = a.landingView.View()
	case a.currentView.IsAuth():
		body = a.authView.View()
	default:
		body = lipgloss.JoinHorizontal(lipgloss.Top, a.menuView.View(), a.viewContent())
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, a.statusBar.View())
}

func (a *App) viewContent() string {
	switch a.currentView {
	case messages.ViewDashboard:
		return a.dashboardView.View()
	case messages.ViewDocuments:
		return a.documentsView.View()
	case messages.ViewDocument:
		return a.documentView.View()
	case messages.ViewNewDocument:
		return a.newDocumentView.View()
	case messages.ViewPersonas:
		return a.personasView.View()
	case messages.ViewNewPersona:
		return a.newPersonaView.View()
	case messages.ViewTemplates:
		return a.templatesView.View()
	case messages.ViewAxioms:
		return a.axiomsView.View()
	case messages.ViewSettings:
		return a.settingsView.View()
	default:
		return ""
	}
}

// viewHelp renders the key binding overlay.
func (a *App) viewHelp() string {
	title := a.styles.Title.Render("Keyboard shortcuts")
	footer := a.styles.Muted.Render("[?/esc] close help")
	return lipgloss.JoinVertical(lipgloss.Left,
		title, "", a.help.FullHelpView(a.keymap.FullHelp()), "", footer)
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Route returns the route of the current view.
func (a *App) Route() forms.Route {
	return a.route
}

// Session returns the last session snapshot.
func (a *App) Session() domain.SessionState {
	return a.session
}

// MenuFocused reports whether keys go to the sidebar.
func (a *App) MenuFocused() bool {
	return a.menuFocused
}

// ShowingHelp reports whether the help overlay is open.
func (a *App) ShowingHelp() bool {
	return a.showHelp
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.setDimensions(width, height)
}
