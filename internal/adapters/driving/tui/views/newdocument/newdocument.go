// Package newdocument provides the form for starting a new PRD.
package newdocument

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/kameleon-labs/kameleon-cli/internal/adapters/driving/tui/components/input"
	"github.com/kameleon-labs/kameleon-cli/internal/adapters/driving/tui/messages"
	"github.com/kameleon-labs/kameleon-cli/internal/adapters/driving/tui/styles"
	"github.com/kameleon-labs/kameleon-cli/internal/core/domain"
	"github.com/kameleon-labs/kameleon-cli/internal/core/forms"
	"github.com/kameleon-labs/kameleon-cli/internal/core/ports/driving"
	"github.com/kameleon-labs/kameleon-cli/internal/core/validation"
)

// fieldPersona is optional and has no validation rule.
const fieldPersona validation.Field = "personaId"

// Focus slots in tab order.
const (
	slotTitle = iota
	slotTemplate
	slotPersona
	slotContent
	slotCount
)

// option is one entry of a single-choice group.
type option struct {
	id    string
	label string
	hint  string
}

// choice is a radio group: cursor is the highlighted row, picked the chosen one.
type choice struct {
	options []option
	cursor  int
	picked  int
}

func newChoice(options []option) choice {
	return choice{options: options, picked: -1}
}

func (c *choice) up() {
	if c.cursor > 0 {
		c.cursor--
	}
}

func (c *choice) down() {
	if c.cursor < len(c.options)-1 {
		c.cursor++
	}
}

func (c *choice) pick() {
	if c.cursor < len(c.options) {
		c.picked = c.cursor
	}
}

// pickID chooses the option with id, if present.
func (c *choice) pickID(id string) {
	for i, o := range c.options {
		if o.id == id {
			c.cursor = i
			c.picked = i
			return
		}
	}
}

func (c *choice) value() string {
	if c.picked < 0 || c.picked >= len(c.options) {
		return ""
	}
	return c.options[c.picked].id
}

// View is the new document form.
type View struct {
	styles           *styles.Styles
	documentService  driving.DocumentService
	templateService  driving.TemplateService
	personaService   driving.PersonaService
	ctx              context.Context
	presetTemplateID string

	title     *input.Field
	templates choice
	personas  choice
	content   textarea.Model
	focus     int
	form      forms.Form

	loadingChoices bool
	choicesErr     error

	width  int
	height int
	ready  bool
}

// NewView creates a new document form.
func NewView(
	s *styles.Styles,
	documentService driving.DocumentService,
	templateService driving.TemplateService,
	personaService driving.PersonaService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	v := &View{
		styles:          s,
		documentService: documentService,
		templateService: templateService,
		personaService:  personaService,
		ctx:             context.Background(),
		width:           80,
		height:          24,
	}
	v.reset()
	return v
}

// WithContext sets the context used for backend calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

func (v *View) reset() {
	v.title = input.NewField(v.styles, string(validation.FieldTitle), "Document Title",
		input.Placeholder("e.g., Q4 Product Roadmap PRD"))
	v.title.SetWidth(fieldWidth(v.width))
	v.title.Focus()

	v.content = textarea.New()
	v.content.Placeholder = "Paste or start your draft. You can keep writing later."
	v.content.ShowLineNumbers = false
	v.content.SetWidth(fieldWidth(v.width))
	v.content.SetHeight(6)
	v.content.Blur()

	v.templates = newChoice(nil)
	v.personas = newChoice(nil)
	v.focus = slotTitle
	v.form.Reset()
	v.choicesErr = nil
}

func fieldWidth(width int) int {
	if width > 80 {
		return 70
	}
	return max(width-10, 20)
}

// Prepare clears the form and loads the template and persona choices.
// A template query parameter in nav preselects that template.
func (v *View) Prepare(nav *forms.Navigation) tea.Cmd {
	v.reset()
	v.presetTemplateID = nav.Param("template")
	return tea.Batch(textinput.Blink, v.loadChoices())
}

// Init loads the choices.
func (v *View) Init() tea.Cmd {
	return v.loadChoices()
}

// loadChoices fetches templates and personas concurrently.
func (v *View) loadChoices() tea.Cmd {
	v.loadingChoices = true
	ctx := v.ctx
	templates := v.templateService
	personas := v.personaService
	return func() tea.Msg {
		if templates == nil {
			return messages.ChoicesLoaded{Err: fmt.Errorf("template service not available")}
		}

		var msg messages.ChoicesLoaded
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			page, err := templates.List(gctx, domain.TemplateListParams{})
			if err != nil {
				return err
			}
			msg.Templates = page.Items
			return nil
		})
		if personas != nil {
			g.Go(func() error {
				page, err := personas.List(gctx, domain.ListParams{})
				if err != nil {
					return err
				}
				msg.Personas = page.Items
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return messages.ChoicesLoaded{Err: err}
		}
		return msg
	}
}

// Update handles messages for the form.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.ChoicesLoaded:
		v.loadingChoices = false
		if msg.Err != nil {
			v.choicesErr = msg.Err
			return v, nil
		}
		v.choicesErr = nil
		v.setChoices(msg.Templates, msg.Personas)
		return v, nil

	case messages.DocumentCreated:
		if v.form.Phase != forms.PhaseSubmitting {
			return v, nil
		}
		if msg.Err != nil {
			v.form.Fail(domain.UserMessage(msg.Err, "Failed to create document"))
			return v, nil
		}
		next := forms.NavigateTo(forms.RouteDocuments)
		v.form.Message = "Document created"
		v.form.Succeed(next)
		return v, func() tea.Msg { return messages.Navigate{To: next} }

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

func (v *View) setChoices(templates []domain.Template, personas []domain.Persona) {
	topts := make([]option, 0, len(templates))
	for _, t := range templates {
		topts = append(topts, option{id: t.ID, label: t.Name, hint: t.Audience.Description()})
	}
	v.templates = newChoice(topts)
	if v.presetTemplateID != "" {
		v.templates.pickID(v.presetTemplateID)
	}

	popts := make([]option, 0, len(personas)+1)
	popts = append(popts, option{label: "No Persona", hint: "Use template defaults without persona adaptation"})
	for _, p := range personas {
		popts = append(popts, option{id: p.ID, label: p.Name, hint: p.Role})
	}
	v.personas = newChoice(popts)
	v.personas.picked = 0
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.form.InputsDisabled() {
		return v, nil
	}

	switch msg.String() {
	case "esc":
		return v, func() tea.Msg {
			return messages.Navigate{To: forms.NavigateTo(forms.RouteDocuments)}
		}
	case "ctrl+s":
		return v, v.submit()
	case "tab":
		return v, v.setFocus((v.focus + 1) % slotCount)
	case "shift+tab":
		return v, v.setFocus((v.focus + slotCount - 1) % slotCount)
	}

	switch v.focus {
	case slotTitle:
		if msg.Type == tea.KeyEnter || msg.Type == tea.KeyDown {
			return v, v.setFocus(slotTemplate)
		}
		_, cmd, changed := v.title.Update(msg)
		if changed {
			v.form.Edit(validation.FieldTitle)
		}
		return v, cmd

	case slotTemplate, slotPersona:
		c := &v.templates
		field := validation.FieldTemplate
		if v.focus == slotPersona {
			c = &v.personas
			field = fieldPersona
		}
		switch msg.String() {
		case "up", "k":
			c.up()
		case "down", "j":
			c.down()
		case " ", "x":
			c.pick()
			v.form.Edit(field)
		case "enter":
			c.pick()
			v.form.Edit(field)
			return v, v.setFocus(v.focus + 1)
		}
		return v, nil

	case slotContent:
		var cmd tea.Cmd
		v.content, cmd = v.content.Update(msg)
		if msg.Type == tea.KeyRunes || msg.Type == tea.KeyEnter || msg.Type == tea.KeyBackspace {
			v.form.Edit(validation.FieldContent)
		}
		return v, cmd
	}

	return v, nil
}

// setFocus moves focus to slot.
func (v *View) setFocus(slot int) tea.Cmd {
	v.focus = slot
	v.title.Blur()
	v.content.Blur()
	switch slot {
	case slotTitle:
		return v.title.Focus()
	case slotContent:
		return v.content.Focus()
	}
	return nil
}

// Input returns the trimmed form values.
func (v *View) Input() validation.NewDocumentInput {
	return validation.NewDocumentInput{
		Title:      strings.TrimSpace(v.title.Value()),
		TemplateID: v.templates.value(),
		PersonaID:  v.personas.value(),
		Content:    v.content.Value(),
	}
}

// submit validates the form and creates the document asynchronously.
func (v *View) submit() tea.Cmd {
	in := v.Input()
	if !v.form.Begin(in.Validate()) {
		switch {
		case v.form.FieldError(validation.FieldTitle) != "":
			return v.setFocus(slotTitle)
		case v.form.FieldError(validation.FieldTemplate) != "":
			return v.setFocus(slotTemplate)
		}
		return nil
	}

	ctx := v.ctx
	svc := v.documentService
	req := in.Request()
	return func() tea.Msg {
		if svc == nil {
			return messages.DocumentCreated{Err: fmt.Errorf("document service not available")}
		}
		doc, err := svc.Create(ctx, req)
		return messages.DocumentCreated{Document: doc, Err: err}
	}
}

// View renders the form.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Create New Document"))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render("Start a new PRD with AI-assisted authoring tailored to your audience."))
	b.WriteString("\n\n")

	switch v.form.Phase {
	case forms.PhaseError:
		b.WriteString(v.styles.Error.Render(v.form.Error))
		b.WriteString("\n\n")
	case forms.PhaseSuccess:
		b.WriteString(v.styles.Success.Render(v.form.Message))
		b.WriteString("\n\n")
	}

	b.WriteString(v.title.View(v.form.FieldError(validation.FieldTitle)))
	b.WriteString("\n\n")

	b.WriteString(v.renderChoice("Template", "Choose a template based on your target audience.",
		&v.templates, v.focus == slotTemplate, v.form.FieldError(validation.FieldTemplate)))
	b.WriteString("\n")
	b.WriteString(v.renderChoice("Target Persona", "Select a reviewer persona to adapt the document to their preferences.",
		&v.personas, v.focus == slotPersona, ""))
	b.WriteString("\n")

	label := v.styles.Normal.Render("Draft")
	if v.focus == slotContent {
		label = v.styles.Selected.Render("Draft")
	}
	b.WriteString(label)
	b.WriteString("\n")
	b.WriteString(v.content.View())
	b.WriteString("\n\n")

	if v.form.Phase == forms.PhaseSubmitting {
		b.WriteString(v.styles.Muted.Render("[ Creating... ]"))
	} else {
		b.WriteString(v.styles.Selected.Render("[ Create Document ]"))
	}
	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[tab] next  [↑/↓] choose  [space] select  [ctrl+s] create  [esc] cancel"))

	return b.String()
}

// renderChoice renders a radio group.
func (v *View) renderChoice(label, hint string, c *choice, focused bool, errText string) string {
	var b strings.Builder

	if focused {
		b.WriteString(v.styles.Selected.Render(label))
	} else {
		b.WriteString(v.styles.Normal.Render(label))
	}
	b.WriteString("  ")
	b.WriteString(v.styles.Muted.Render(hint))
	b.WriteString("\n")

	switch {
	case v.loadingChoices:
		b.WriteString(v.styles.Muted.Render("  Loading..."))
		b.WriteString("\n")
	case v.choicesErr != nil:
		b.WriteString(v.styles.Error.Render("  " + domain.UserMessage(v.choicesErr, "Failed to load choices")))
		b.WriteString("\n")
	case len(c.options) == 0:
		b.WriteString(v.styles.Muted.Render("  Nothing to choose from yet."))
		b.WriteString("\n")
	}

	for i, o := range c.options {
		radio := "( )"
		if i == c.picked {
			radio = "(•)"
		}
		cursor := "  "
		if focused && i == c.cursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%s %s", cursor, radio, o.label)
		if focused && i == c.cursor {
			b.WriteString(v.styles.Selected.Render(line))
		} else {
			b.WriteString(v.styles.Normal.Render(line))
		}
		if o.hint != "" {
			b.WriteString(v.styles.Muted.Render("  " + o.hint))
		}
		b.WriteString("\n")
	}

	if errText != "" {
		b.WriteString(v.styles.Error.Render("  " + errText))
		b.WriteString("\n")
	}
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.title.SetWidth(fieldWidth(width))
	v.content.SetWidth(fieldWidth(width))
}

// Form returns the form state.
func (v *View) Form() *forms.Form {
	return &v.form
}

// Focus returns the focused slot.
func (v *View) Focus() int {
	return v.focus
}
