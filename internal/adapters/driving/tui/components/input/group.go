package input

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Group is an ordered set of fields with a single focused field.
type Group struct {
	fields  []*Field
	focused int
}

// NewGroup creates a group and focuses its first field.
func NewGroup(fields ...*Field) *Group {
	g := &Group{fields: fields}
	g.FocusIndex(0)
	return g
}

// Fields returns the fields in order.
func (g *Group) Fields() []*Field {
	return g.fields
}

// Field returns the field with key, or nil.
func (g *Group) Field(key string) *Field {
	for _, f := range g.fields {
		if f.Key() == key {
			return f
		}
	}
	return nil
}

// Value returns the value of the field with key.
func (g *Group) Value(key string) string {
	if f := g.Field(key); f != nil {
		return f.Value()
	}
	return ""
}

// Focused returns the focused field, or nil for an empty group.
func (g *Group) Focused() *Field {
	if len(g.fields) == 0 {
		return nil
	}
	return g.fields[g.focused]
}

// FocusedIndex returns the position of the focused field.
func (g *Group) FocusedIndex() int {
	return g.focused
}

// OnLast reports whether the last field has focus.
func (g *Group) OnLast() bool {
	return g.focused == len(g.fields)-1
}

// FocusIndex moves focus to the field at i, clamped to the group.
func (g *Group) FocusIndex(i int) tea.Cmd {
	if len(g.fields) == 0 {
		return nil
	}
	if i < 0 {
		i = 0
	}
	if i >= len(g.fields) {
		i = len(g.fields) - 1
	}
	for _, f := range g.fields {
		f.Blur()
	}
	g.focused = i
	return g.fields[i].Focus()
}

// Next moves focus forward, wrapping to the first field.
func (g *Group) Next() tea.Cmd {
	if len(g.fields) == 0 {
		return nil
	}
	return g.FocusIndex((g.focused + 1) % len(g.fields))
}

// Prev moves focus backward, wrapping to the last field.
func (g *Group) Prev() tea.Cmd {
	if len(g.fields) == 0 {
		return nil
	}
	return g.FocusIndex((g.focused - 1 + len(g.fields)) % len(g.fields))
}

// Update forwards msg to the focused field.
// It returns the key of the field whose value changed, or "".
func (g *Group) Update(msg tea.Msg) (tea.Cmd, string) {
	f := g.Focused()
	if f == nil {
		return nil, ""
	}
	_, cmd, changed := f.Update(msg)
	if changed {
		return cmd, f.Key()
	}
	return cmd, ""
}

// SetWidth sets the width of every field.
func (g *Group) SetWidth(width int) {
	for _, f := range g.fields {
		f.SetWidth(width)
	}
}

// Reset clears every field and focuses the first.
func (g *Group) Reset() tea.Cmd {
	for _, f := range g.fields {
		f.Reset()
	}
	return g.FocusIndex(0)
}
