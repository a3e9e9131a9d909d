package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	require.NotNil(t, km)
}

func TestDefaultKeyMap_QuitBinding(t *testing.T) {
	km := DefaultKeyMap()

	keys := km.Quit.Keys()
	assert.Contains(t, keys, "q")
	assert.Contains(t, keys, "ctrl+c")
}

func TestDefaultKeyMap_FieldNavigation(t *testing.T) {
	km := DefaultKeyMap()

	assert.Contains(t, km.NextField.Keys(), "tab")
	assert.Contains(t, km.PrevField.Keys(), "shift+tab")
}

func TestDefaultKeyMap_ResendIsNotPrintable(t *testing.T) {
	km := DefaultKeyMap()

	// Form fields receive printable keys, so resend must use a control key.
	assert.Equal(t, []string{"ctrl+r"}, km.Resend.Keys())
}

func TestShortHelp(t *testing.T) {
	km := DefaultKeyMap()

	bindings := km.ShortHelp()

	assert.Len(t, bindings, 2)
	assert.Equal(t, km.Quit, bindings[0])
	assert.Equal(t, km.Help, bindings[1])
}

func TestFormHelp(t *testing.T) {
	km := DefaultKeyMap()

	bindings := km.FormHelp()

	assert.Equal(t, []key.Binding{km.NextField, km.Submit, km.Back}, bindings)
}

func TestFullHelp(t *testing.T) {
	km := DefaultKeyMap()

	bindings := km.FullHelp()

	assert.Len(t, bindings, 4)
	assert.Len(t, bindings[1], 4) // NextField, PrevField, Submit, Resend
	assert.Len(t, bindings[3], 3) // Back, Help, Quit
}

func TestMatches_True(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches("q", km.Quit))
	assert.True(t, Matches("ctrl+c", km.Quit))
	assert.True(t, Matches("?", km.Help))
	assert.True(t, Matches("k", km.Up))
	assert.True(t, Matches("s", km.SubmitDocument))
}

func TestMatches_False(t *testing.T) {
	km := DefaultKeyMap()

	assert.False(t, Matches("x", km.Quit))
	assert.False(t, Matches("a", km.Help))
	assert.False(t, Matches("down", km.Up))
}

func TestBindings_HaveHelp(t *testing.T) {
	km := DefaultKeyMap()

	testCases := []struct {
		name    string
		binding key.Binding
	}{
		{"Quit", km.Quit},
		{"Help", km.Help},
		{"Back", km.Back},
		{"Up", km.Up},
		{"Down", km.Down},
		{"Select", km.Select},
		{"NextField", km.NextField},
		{"PrevField", km.PrevField},
		{"Submit", km.Submit},
		{"Resend", km.Resend},
		{"New", km.New},
		{"Reload", km.Reload},
		{"SubmitDocument", km.SubmitDocument},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			help := tc.binding.Help()
			assert.NotEmpty(t, help.Key, "binding should have help key")
		})
	}
}
