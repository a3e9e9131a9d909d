package tui

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kameleon-labs/kameleon-cli/internal/adapters/driving/tui/components/status"
	"github.com/kameleon-labs/kameleon-cli/internal/adapters/driving/tui/messages"
	"github.com/kameleon-labs/kameleon-cli/internal/adapters/driving/tui/styles"
	"github.com/kameleon-labs/kameleon-cli/internal/core/domain"
	"github.com/kameleon-labs/kameleon-cli/internal/core/forms"
)

var signedIn = domain.SessionState{
	Authenticated: true,
	Initialized:   true,
	User:          &domain.SessionUser{ID: "u-1", Email: "ada@example.com", Name: "Ada Lovelace"},
}

func newTestApp(t *testing.T) (*App, *MockSessionService) {
	t.Helper()
	session := &MockSessionService{}
	ports := NewPorts(session, &MockAuthFlows{})
	ports.Documents = &MockDocumentService{}

	app, err := NewApp(ports)
	require.NoError(t, err)
	app.SetDimensions(120, 40)
	return app, session
}

func update(t *testing.T, app *App, msg tea.Msg) tea.Cmd {
	t.Helper()
	model, cmd := app.Update(msg)
	require.Same(t, app, model)
	return cmd
}

func TestNewApp(t *testing.T) {
	app, err := NewApp(NewPorts(&MockSessionService{}, &MockAuthFlows{}))

	require.NoError(t, err)
	require.NotNil(t, app)
	assert.Equal(t, messages.ViewLanding, app.CurrentView())
	assert.Equal(t, forms.RouteLanding, app.Route())
	assert.False(t, app.Ready())
}

func TestNewApp_InvalidPorts(t *testing.T) {
	app, err := NewApp(nil)

	assert.Nil(t, app)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidPorts)
	assert.Contains(t, err.Error(), "creating app")
}

func TestApp_Init(t *testing.T) {
	app, _ := newTestApp(t)

	assert.NotNil(t, app.Init())
}

func TestApp_InitSession(t *testing.T) {
	app, session := newTestApp(t)
	session.SetState(signedIn)

	msg := app.initSession()()

	loaded, ok := msg.(messages.SessionLoaded)
	require.True(t, ok)
	assert.NoError(t, loaded.Err)
	assert.True(t, loaded.State.Initialized)
	assert.True(t, loaded.State.Authenticated)
}

func TestApp_SessionLoaded_SignedIn(t *testing.T) {
	app, session := newTestApp(t)
	session.SetState(signedIn)

	cmd := update(t, app, messages.SessionLoaded{State: signedIn})

	assert.NotNil(t, cmd)
	assert.Equal(t, messages.ViewDashboard, app.CurrentView())
	assert.Equal(t, forms.RouteDashboard, app.Route())
	assert.Equal(t, "Ada Lovelace", app.statusBar.User())
}

func TestApp_SessionLoaded_SignedOut(t *testing.T) {
	app, _ := newTestApp(t)

	update(t, app, messages.SessionLoaded{State: domain.SessionState{Initialized: true}})

	assert.Equal(t, messages.ViewLanding, app.CurrentView())
	assert.Equal(t, "", app.statusBar.User())
	assert.NoError(t, app.Err())
}

func TestApp_SessionLoaded_ExpiredIsNotAnError(t *testing.T) {
	app, _ := newTestApp(t)

	update(t, app, messages.SessionLoaded{
		State: domain.SessionState{Initialized: true},
		Err:   domain.ErrAuthExpired,
	})

	assert.Equal(t, messages.ViewLanding, app.CurrentView())
	assert.NoError(t, app.Err())
}

func TestApp_Navigate_Guard(t *testing.T) {
	tests := []struct {
		name          string
		authenticated bool
		to            forms.Route
		wantRoute     forms.Route
		wantView      messages.ViewType
	}{
		{"signed out dashboard", false, forms.RouteDocuments, forms.RouteLogin, messages.ViewLogin},
		{"signed out register", false, forms.RouteRegister, forms.RouteRegister, messages.ViewRegister},
		{"signed in login", true, forms.RouteLogin, forms.RouteDashboard, messages.ViewDashboard},
		{"signed in documents", true, forms.RouteDocuments, forms.RouteDocuments, messages.ViewDocuments},
		{"signed in landing", true, forms.RouteLanding, forms.RouteLanding, messages.ViewLanding},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, session := newTestApp(t)
			if tt.authenticated {
				session.SetState(signedIn)
			}

			update(t, app, messages.Navigate{To: forms.NavigateTo(tt.to)})

			assert.Equal(t, tt.wantRoute, app.Route())
			assert.Equal(t, tt.wantView, app.CurrentView())
		})
	}
}

func TestApp_Navigate_PrefillsAuthForm(t *testing.T) {
	app, _ := newTestApp(t)

	update(t, app, messages.Navigate{
		To: forms.NavigateTo(forms.RouteVerifyEmail).With("email", "ada@example.com"),
	})

	assert.Equal(t, messages.ViewVerifyEmail, app.CurrentView())
	assert.Equal(t, "ada@example.com", app.authView.Value("email"))
}

func TestApp_Navigate_Delayed(t *testing.T) {
	app, _ := newTestApp(t)
	nav := forms.NavigateTo(forms.RouteLogin).After(2 * time.Second)

	cmd := update(t, app, messages.Navigate{To: nav})

	assert.NotNil(t, cmd)
	assert.Equal(t, messages.ViewLanding, app.CurrentView())

	update(t, app, delayedNavigate{to: forms.NavigateTo(forms.RouteLogin), seq: app.navSeq})
	assert.Equal(t, messages.ViewLogin, app.CurrentView())
}

func TestApp_Navigate_DelayedDroppedAfterNewNavigation(t *testing.T) {
	app, _ := newTestApp(t)
	seq := app.navSeq

	update(t, app, messages.Navigate{To: forms.NavigateTo(forms.RouteRegister)})
	update(t, app, delayedNavigate{to: forms.NavigateTo(forms.RouteLogin), seq: seq})

	assert.Equal(t, messages.ViewRegister, app.CurrentView())
}

func TestApp_Navigate_Nil(t *testing.T) {
	app, _ := newTestApp(t)

	cmd := update(t, app, messages.Navigate{})

	assert.Nil(t, cmd)
	assert.Equal(t, messages.ViewLanding, app.CurrentView())
}

func TestApp_FocusMenu_RoutesKeys(t *testing.T) {
	app, session := newTestApp(t)
	session.SetState(signedIn)
	update(t, app, messages.Navigate{To: forms.NavigateTo(forms.RouteDashboard)})

	update(t, app, messages.FocusMenu{})
	require.True(t, app.MenuFocused())

	update(t, app, tea.KeyMsg{Type: tea.KeyDown})
	cmd := update(t, app, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg, ok := cmd().(messages.Navigate)
	require.True(t, ok)
	assert.Equal(t, forms.RouteDocuments, msg.To.Route)

	update(t, app, msg)
	assert.False(t, app.MenuFocused())
	assert.Equal(t, messages.ViewDocuments, app.CurrentView())
}

func TestApp_SignOut(t *testing.T) {
	app, session := newTestApp(t)
	session.SetState(signedIn)
	update(t, app, messages.Navigate{To: forms.NavigateTo(forms.RouteDashboard)})

	cmd := update(t, app, messages.SignOutRequested{})
	require.NotNil(t, cmd)
	assert.Equal(t, status.StateLoading, app.statusBar.State())

	msg := cmd()
	signedOut, ok := msg.(messages.SignedOut)
	require.True(t, ok)
	assert.NoError(t, signedOut.Err)
	assert.Equal(t, 1, session.signOuts)

	update(t, app, msg)
	assert.Equal(t, messages.ViewLanding, app.CurrentView())
	assert.False(t, app.Session().Authenticated)
	assert.Equal(t, "", app.statusBar.User())
}

func TestApp_ExpiredSessionReturnsToLogin(t *testing.T) {
	app, session := newTestApp(t)
	session.SetState(signedIn)
	update(t, app, messages.Navigate{To: forms.NavigateTo(forms.RouteDocuments)})

	// The session service drops the tokens when the refresh fails.
	session.SetState(domain.SessionState{Initialized: true})
	update(t, app, messages.DocumentsLoaded{Err: fmt.Errorf("listing documents: %w", domain.ErrAuthExpired)})

	assert.Equal(t, messages.ViewLogin, app.CurrentView())
	assert.ErrorIs(t, app.Err(), domain.ErrAuthExpired)
	assert.Equal(t, status.StateError, app.statusBar.State())
	assert.Equal(t, SessionExpiredMessage, app.statusBar.Message())
}

func TestApp_OtherErrorsStayInView(t *testing.T) {
	app, session := newTestApp(t)
	session.SetState(signedIn)
	update(t, app, messages.Navigate{To: forms.NavigateTo(forms.RouteDocuments)})

	update(t, app, messages.DocumentsLoaded{Err: errors.New("boom")})

	assert.Equal(t, messages.ViewDocuments, app.CurrentView())
	assert.EqualError(t, app.documentsView.Err(), "boom")
}

func TestApp_DocumentSelected(t *testing.T) {
	app, session := newTestApp(t)
	session.SetState(signedIn)
	update(t, app, messages.Navigate{To: forms.NavigateTo(forms.RouteDocuments)})

	cmd := update(t, app, messages.DocumentSelected{Document: domain.Document{ID: "doc-1", Title: "Checkout"}})

	assert.NotNil(t, cmd)
	assert.Equal(t, messages.ViewDocument, app.CurrentView())
	require.NotNil(t, app.documentView.Document())
	assert.Equal(t, "Checkout", app.documentView.Document().Title)

	update(t, app, messages.ViewChanged{View: messages.ViewDocuments})
	assert.Equal(t, messages.ViewDocuments, app.CurrentView())
}

func TestApp_Help(t *testing.T) {
	app, session := newTestApp(t)
	session.SetState(signedIn)
	update(t, app, messages.Navigate{To: forms.NavigateTo(forms.RouteDashboard)})

	update(t, app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	assert.True(t, app.ShowingHelp())
	assert.Contains(t, app.View(), "Keyboard shortcuts")

	update(t, app, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, app.ShowingHelp())
}

func TestApp_Help_NotWhileTyping(t *testing.T) {
	app, _ := newTestApp(t)
	update(t, app, messages.Navigate{To: forms.NavigateTo(forms.RouteLogin)})

	update(t, app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})

	assert.False(t, app.ShowingHelp())
}

func TestApp_CtrlCQuits(t *testing.T) {
	app, _ := newTestApp(t)

	cmd := update(t, app, tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestApp_QuitMessage(t *testing.T) {
	app, _ := newTestApp(t)

	cmd := update(t, app, messages.Quit{})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestApp_ErrorOccurred(t *testing.T) {
	app, _ := newTestApp(t)

	update(t, app, messages.ErrorOccurred{Err: errors.New("disk full")})

	assert.EqualError(t, app.Err(), "disk full")
	assert.Equal(t, status.StateError, app.statusBar.State())
	assert.Equal(t, "disk full", app.statusBar.Message())
}

func TestApp_SettingsWatch(t *testing.T) {
	settings := NewMockSettingsService()
	ports := NewPorts(&MockSessionService{}, &MockAuthFlows{})
	ports.Settings = settings

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app, err := NewApp(ports)
	require.NoError(t, err)
	app.WithContext(ctx)

	assert.Nil(t, app.watchSettings()())
	<-settings.watched

	require.NoError(t, settings.Set(domain.KeyUITheme, "light"))
	settings.Fire()
	settings.Fire()

	msg := app.waitSettings()()
	require.IsType(t, messages.SettingsChanged{}, msg)

	cmd := update(t, app, msg)
	assert.NotNil(t, cmd)
	assert.Equal(t, styles.LightTheme(), app.styles.Theme())
}

func TestApp_WaitSettings_StopsWithContext(t *testing.T) {
	app, _ := newTestApp(t)
	ctx, cancel := context.WithCancel(context.Background())
	app.WithContext(ctx)
	cancel()

	assert.Nil(t, app.waitSettings()())
}

func TestApp_View(t *testing.T) {
	app, err := NewApp(NewPorts(&MockSessionService{}, &MockAuthFlows{}))
	require.NoError(t, err)

	assert.Equal(t, "Initialising...", app.View())

	update(t, app, tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.True(t, app.Ready())
	assert.Contains(t, app.View(), "Kameleon")
}

func TestApp_View_DashboardShowsSidebar(t *testing.T) {
	app, session := newTestApp(t)
	session.SetState(signedIn)
	update(t, app, messages.Navigate{To: forms.NavigateTo(forms.RouteSettings)})

	view := app.View()

	assert.Contains(t, view, "Documents")
	assert.Contains(t, view, "Sign out")
	assert.Contains(t, view, "Ada Lovelace")
}

func TestExpiredErr(t *testing.T) {
	wrapped := fmt.Errorf("getting persona: %w", domain.ErrAuthExpired)

	assert.True(t, expiredErr(messages.PersonasLoaded{Err: wrapped}))
	assert.True(t, expiredErr(messages.DocumentCreated{Err: domain.ErrAuthExpired}))
	assert.False(t, expiredErr(messages.PersonasLoaded{Err: errors.New("boom")}))
	assert.False(t, expiredErr(messages.PersonasLoaded{}))
	assert.False(t, expiredErr(tea.KeyMsg{}))
}
