// Package newpersona provides the form for adding a reviewer persona.
package newpersona

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kameleon-labs/kameleon-cli/internal/adapters/driving/tui/components/input"
	"github.com/kameleon-labs/kameleon-cli/internal/adapters/driving/tui/messages"
	"github.com/kameleon-labs/kameleon-cli/internal/adapters/driving/tui/styles"
	"github.com/kameleon-labs/kameleon-cli/internal/core/domain"
	"github.com/kameleon-labs/kameleon-cli/internal/core/forms"
	"github.com/kameleon-labs/kameleon-cli/internal/core/ports/driving"
	"github.com/kameleon-labs/kameleon-cli/internal/core/validation"
)

// Preference fields carry no validation rules.
const (
	fieldTone           validation.Field = "tone"
	fieldLength         validation.Field = "length"
	fieldTechnicalDepth validation.Field = "technicalDepth"
)

// View is the new persona form.
type View struct {
	styles         *styles.Styles
	personaService driving.PersonaService
	ctx            context.Context

	fields *input.Group
	form   forms.Form

	width  int
	height int
	ready  bool
}

// NewView creates a new persona form.
func NewView(s *styles.Styles, personaService driving.PersonaService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	v := &View{
		styles:         s,
		personaService: personaService,
		ctx:            context.Background(),
		width:          80,
		height:         24,
	}
	v.Reset()
	return v
}

// WithContext sets the context used for backend calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Reset clears the form.
func (v *View) Reset() tea.Cmd {
	v.fields = input.NewGroup(
		input.NewField(v.styles, string(validation.FieldName), "Name", input.Placeholder("e.g., Christian, Sarah Chen")),
		input.NewField(v.styles, string(validation.FieldRole), "Role", input.Placeholder("e.g., SVP of Product, Engineering Lead")),
		input.NewField(v.styles, string(fieldTone), "Tone", input.Placeholder("e.g., concise, formal")),
		input.NewField(v.styles, string(fieldLength), "Length", input.Placeholder("e.g., short, detailed")),
		input.NewField(v.styles, string(fieldTechnicalDepth), "Technical depth", input.Placeholder("e.g., high-level, deep")),
	)
	v.fields.SetWidth(fieldWidth(v.width))
	v.form.Reset()
	return textinput.Blink
}

func fieldWidth(width int) int {
	if width > 70 {
		return 60
	}
	return width - 10
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the form.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.PersonaCreated:
		if v.form.Phase != forms.PhaseSubmitting {
			return v, nil
		}
		if msg.Err != nil {
			v.form.Fail(domain.UserMessage(msg.Err, "Failed to create persona"))
			return v, nil
		}
		next := forms.NavigateTo(forms.RoutePersonas)
		v.form.Message = "Persona created"
		v.form.Succeed(next)
		return v, func() tea.Msg { return messages.Navigate{To: next} }

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.form.InputsDisabled() {
		return v, nil
	}

	switch msg.String() {
	case "esc":
		return v, func() tea.Msg {
			return messages.Navigate{To: forms.NavigateTo(forms.RoutePersonas)}
		}
	case "tab", "down":
		return v, v.fields.Next()
	case "shift+tab", "up":
		return v, v.fields.Prev()
	case "ctrl+s":
		return v, v.submit()
	case "enter":
		if !v.fields.OnLast() {
			return v, v.fields.Next()
		}
		return v, v.submit()
	}

	cmd, changed := v.fields.Update(msg)
	if changed != "" {
		v.form.Edit(validation.Field(changed))
	}
	return v, cmd
}

func (v *View) value(f validation.Field) string {
	return strings.TrimSpace(v.fields.Value(string(f)))
}

// Input returns the trimmed form values.
func (v *View) Input() validation.NewPersonaInput {
	return validation.NewPersonaInput{
		Name:           v.value(validation.FieldName),
		Role:           v.value(validation.FieldRole),
		Tone:           v.value(fieldTone),
		Length:         v.value(fieldLength),
		TechnicalDepth: v.value(fieldTechnicalDepth),
	}
}

// submit validates the form and creates the persona asynchronously.
func (v *View) submit() tea.Cmd {
	in := v.Input()
	if !v.form.Begin(in.Validate()) {
		for i, f := range v.fields.Fields() {
			if v.form.FieldError(validation.Field(f.Key())) != "" {
				return v.fields.FocusIndex(i)
			}
		}
		return nil
	}

	ctx := v.ctx
	svc := v.personaService
	req := in.Request()
	return func() tea.Msg {
		if svc == nil {
			return messages.PersonaCreated{Err: fmt.Errorf("persona service not available")}
		}
		persona, err := svc.Create(ctx, req)
		return messages.PersonaCreated{Persona: persona, Err: err}
	}
}

// View renders the form.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Add Reviewer Persona"))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render("Calibrate how a reviewer likes documents written."))
	b.WriteString("\n\n")

	switch v.form.Phase {
	case forms.PhaseError:
		b.WriteString(v.styles.Error.Render(v.form.Error))
		b.WriteString("\n\n")
	case forms.PhaseSuccess:
		b.WriteString(v.styles.Success.Render(v.form.Message))
		b.WriteString("\n\n")
	}

	for _, f := range v.fields.Fields() {
		b.WriteString(f.View(v.form.FieldError(validation.Field(f.Key()))))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if v.form.Phase == forms.PhaseSubmitting {
		b.WriteString(v.styles.Muted.Render("[ Creating... ]"))
	} else {
		b.WriteString(v.styles.Selected.Render("[ Create Persona ]"))
	}
	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[tab] next field  [enter] next/submit  [ctrl+s] submit  [esc] cancel"))

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.fields.SetWidth(fieldWidth(width))
}

// Form returns the form state.
func (v *View) Form() *forms.Form {
	return &v.form
}

// SetValue sets a field, as if typed by the user.
func (v *View) SetValue(f validation.Field, value string) {
	if field := v.fields.Field(string(f)); field != nil {
		field.SetValue(value)
		v.form.Edit(f)
	}
}
