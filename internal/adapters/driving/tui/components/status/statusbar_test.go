package status

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kameleon-labs/kameleon-cli/internal/adapters/driving/tui/keymap"
	"github.com/kameleon-labs/kameleon-cli/internal/adapters/driving/tui/styles"
)

func TestNewBar(t *testing.T) {
	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	bar := NewBar(s, km)

	require.NotNil(t, bar)
	assert.Equal(t, StateReady, bar.State())
	assert.Equal(t, "", bar.Message())
	assert.Equal(t, "", bar.User())
}

func TestNewBar_NilStyles(t *testing.T) {
	bar := NewBar(nil, nil)

	require.NotNil(t, bar)
	assert.NotNil(t, bar.styles)
	assert.NotNil(t, bar.keymap)
}

func TestStatusBar_Update(t *testing.T) {
	bar := NewBar(nil, nil)

	updated, cmd := bar.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, bar, updated)
	assert.Nil(t, cmd)
	assert.Nil(t, bar.Init())
}

func TestStatusBar_SetWidth(t *testing.T) {
	bar := NewBar(nil, nil)
	assert.Equal(t, 80, bar.Width())

	bar.SetWidth(120)

	assert.Equal(t, 120, bar.Width())
}

func TestStatusBar_ClearKeepsUser(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetUser("Ada")
	bar.SetState(StateError)
	bar.SetMessage("error message")
	bar.SetHints([]key.Binding{keymap.DefaultKeyMap().New})

	bar.Clear()

	assert.Equal(t, StateReady, bar.State())
	assert.Equal(t, "", bar.Message())
	assert.Equal(t, "Ada", bar.User())
	assert.Contains(t, bar.View(), "quit")
}

func TestStatusBar_View_States(t *testing.T) {
	tests := []struct {
		name    string
		state   State
		message string
		want    string
	}{
		{"ready", StateReady, "", "Ready"},
		{"loading default", StateLoading, "", "Loading..."},
		{"loading message", StateLoading, "Signing in...", "Signing in..."},
		{"error", StateError, "", "Error"},
		{"error message", StateError, "connection failed", "Error: connection failed"},
		{"success", StateSuccess, "Saved", "Saved"},
		{"help", StateHelp, "", "Help"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := NewBar(nil, nil)
			bar.SetWidth(200)
			bar.SetState(tt.state)
			bar.SetMessage(tt.message)

			assert.Contains(t, bar.View(), tt.want)
		})
	}
}

func TestStatusBar_View_ShowsUser(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(120)
	bar.SetUser("ada@example.com")

	assert.Contains(t, bar.View(), "ada@example.com")
}

func TestStatusBar_View_CustomHints(t *testing.T) {
	km := keymap.DefaultKeyMap()
	bar := NewBar(nil, km)
	bar.SetWidth(120)

	bar.SetHints([]key.Binding{km.Resend})

	view := bar.View()
	assert.Contains(t, view, "resend code")
	assert.NotContains(t, view, "quit")
}

func TestState_Constants(t *testing.T) {
	assert.Equal(t, State("ready"), StateReady)
	assert.Equal(t, State("loading"), StateLoading)
	assert.Equal(t, State("error"), StateError)
	assert.Equal(t, State("success"), StateSuccess)
	assert.Equal(t, State("help"), StateHelp)
}
