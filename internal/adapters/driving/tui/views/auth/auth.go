// Package auth provides the sign-in, sign-up, email verification and
// password reset forms for the TUI.
package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kameleon-labs/kameleon-cli/internal/adapters/driving/tui/components/input"
	"github.com/kameleon-labs/kameleon-cli/internal/adapters/driving/tui/keymap"
	"github.com/kameleon-labs/kameleon-cli/internal/adapters/driving/tui/messages"
	"github.com/kameleon-labs/kameleon-cli/internal/adapters/driving/tui/styles"
	"github.com/kameleon-labs/kameleon-cli/internal/core/forms"
	"github.com/kameleon-labs/kameleon-cli/internal/core/ports/driving"
	"github.com/kameleon-labs/kameleon-cli/internal/core/validation"
)

// page describes one auth form.
type page struct {
	title    string
	subtitle string
	submit   string
	fields   []validation.Field
	// checklist names the field whose password requirements are listed live.
	checklist validation.Field
	// matchConfirm requires the confirm field to equal the checklist field.
	matchConfirm bool
	resend       bool
	links        []link
	back         forms.Route
}

// link is a shortcut to a sibling page.
type link struct {
	key   string
	label string
	route forms.Route
}

var pages = map[messages.ViewType]page{
	messages.ViewLogin: {
		title:    "Sign in",
		subtitle: "Welcome back to Kameleon",
		submit:   "Sign in",
		fields:   []validation.Field{validation.FieldEmail, validation.FieldPassword},
		links: []link{
			{"ctrl+n", "create account", forms.RouteRegister},
			{"ctrl+f", "forgot password", forms.RouteForgotPassword},
		},
		back: forms.RouteLanding,
	},
	messages.ViewRegister: {
		title:    "Create account",
		subtitle: "Start writing PRDs that land on the first pass",
		submit:   "Create account",
		fields: []validation.Field{
			validation.FieldName, validation.FieldEmail,
			validation.FieldPassword, validation.FieldConfirmPassword,
		},
		checklist: validation.FieldPassword,
		links:     []link{{"ctrl+l", "sign in", forms.RouteLogin}},
		back:      forms.RouteLanding,
	},
	messages.ViewVerifyEmail: {
		title:    "Verify your email",
		subtitle: "Enter the 6-digit code we sent you",
		submit:   "Verify",
		fields:   []validation.Field{validation.FieldEmail, validation.FieldCode},
		resend:   true,
		links:    []link{{"ctrl+l", "sign in", forms.RouteLogin}},
		back:     forms.RouteLogin,
	},
	messages.ViewForgotPassword: {
		title:    "Forgot password",
		subtitle: "We will email you a reset code",
		submit:   "Send reset code",
		fields:   []validation.Field{validation.FieldEmail},
		links:    []link{{"ctrl+l", "sign in", forms.RouteLogin}},
		back:     forms.RouteLogin,
	},
	messages.ViewResetPassword: {
		title:    "Reset password",
		subtitle: "Enter the code from your email and a new password",
		submit:   "Reset password",
		fields: []validation.Field{
			validation.FieldEmail, validation.FieldCode,
			validation.FieldNewPassword, validation.FieldConfirmPassword,
		},
		checklist:    validation.FieldNewPassword,
		matchConfirm: true,
		resend:       true,
		links:        []link{{"ctrl+l", "sign in", forms.RouteLogin}},
		back:         forms.RouteLogin,
	},
}

var labels = map[validation.Field]string{
	validation.FieldName:            "Full name",
	validation.FieldEmail:           "Email",
	validation.FieldPassword:        "Password",
	validation.FieldConfirmPassword: "Confirm password",
	validation.FieldCode:            "Verification code",
	validation.FieldNewPassword:     "New password",
}

// View is one auth form at a time. SetPage switches between them.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	flows  driving.AuthFlows
	ctx    context.Context

	page   messages.ViewType
	fields *input.Group
	form   forms.Form
	resend forms.Resend

	width  int
	height int
	ready  bool
}

// NewView creates a new auth view showing the sign-in form.
func NewView(s *styles.Styles, flows driving.AuthFlows) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	v := &View{
		styles: s,
		keymap: keymap.DefaultKeyMap(),
		flows:  flows,
		ctx:    context.Background(),
		width:  80,
		height: 24,
	}
	v.SetPage(messages.ViewLogin, nil)
	return v
}

// WithContext sets the context used for backend calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// SetPage switches to the form for view and clears all state.
// An email query parameter in nav prefills the email field.
func (v *View) SetPage(view messages.ViewType, nav *forms.Navigation) tea.Cmd {
	p, ok := pages[view]
	if !ok {
		view = messages.ViewLogin
		p = pages[view]
	}

	fields := make([]*input.Field, 0, len(p.fields))
	for _, f := range p.fields {
		fields = append(fields, newField(v.styles, f))
	}
	v.page = view
	v.fields = input.NewGroup(fields...)
	v.fields.SetWidth(fieldWidth(v.width))
	v.form.Reset()
	v.resend = forms.Resend{}

	if email := nav.Param("email"); email != "" {
		if f := v.fields.Field(string(validation.FieldEmail)); f != nil {
			f.SetValue(email)
			// The user came here for the next field.
			v.fields.Next()
		}
	}
	return textinput.Blink
}

func newField(s *styles.Styles, f validation.Field) *input.Field {
	var opts []input.Option
	switch f {
	case validation.FieldPassword, validation.FieldConfirmPassword, validation.FieldNewPassword:
		opts = append(opts, input.Secret())
	case validation.FieldCode:
		opts = append(opts, input.CharLimit(6), input.Placeholder("123456"))
	case validation.FieldEmail:
		opts = append(opts, input.Placeholder("you@company.com"))
	}
	return input.NewField(s, string(f), labels[f], opts...)
}

func fieldWidth(width int) int {
	if width > 60 {
		return 50
	}
	return width - 10
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the auth view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.FormSubmitted:
		if msg.View != v.page || v.form.Phase != forms.PhaseSubmitting {
			return v, nil
		}
		v.form.Apply(msg.Outcome)
		if v.form.Phase == forms.PhaseSuccess && v.form.Next != nil {
			next := v.form.Next
			return v, func() tea.Msg { return messages.Navigate{To: next} }
		}
		return v, nil

	case messages.CodeResent:
		if msg.View != v.page || !v.resend.Pending {
			return v, nil
		}
		v.resend.Apply(msg.Outcome)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	p := pages[v.page]

	// Resend only waits on its own pending request.
	if key.Matches(msg, v.keymap.Resend) {
		if !p.resend {
			return v, nil
		}
		return v, v.resendCode()
	}

	// Inputs are locked while submitting and after success until the page moves on.
	if v.form.InputsDisabled() || (v.form.Phase == forms.PhaseSuccess && v.form.Next != nil) {
		return v, nil
	}

	for _, l := range p.links {
		if msg.String() == l.key {
			return v, navigate(forms.NavigateTo(l.route))
		}
	}

	switch {
	case key.Matches(msg, v.keymap.Back):
		return v, navigate(forms.NavigateTo(p.back))

	case msg.String() == "tab" || msg.Type == tea.KeyDown:
		return v, v.fields.Next()

	case msg.String() == "shift+tab" || msg.Type == tea.KeyUp:
		return v, v.fields.Prev()

	case key.Matches(msg, v.keymap.Submit):
		if !v.fields.OnLast() {
			return v, v.fields.Next()
		}
		if !v.canSubmit(p) {
			return v, nil
		}
		return v, v.submit()
	}

	cmd, changed := v.fields.Update(msg)
	if changed != "" {
		field := validation.Field(changed)
		if field == validation.FieldCode {
			f := v.fields.Field(changed)
			f.SetValue(validation.SanitizeCode(f.Value()))
		}
		v.form.Edit(field)
	}
	return v, cmd
}

func navigate(nav *forms.Navigation) tea.Cmd {
	return func() tea.Msg {
		return messages.Navigate{To: nav}
	}
}

func (v *View) value(f validation.Field) string {
	return v.fields.Value(string(f))
}

// email is the trimmed email field, matching what the flows send.
func (v *View) email() string {
	return strings.TrimSpace(v.value(validation.FieldEmail))
}

// submit validates the form and, when valid, calls the flow asynchronously.
func (v *View) submit() tea.Cmd {
	if v.flows == nil {
		v.form.Fail("Authentication is not configured")
		return nil
	}

	ctx := v.ctx
	flows := v.flows
	view := v.page
	var call func() forms.Outcome

	switch v.page {
	case messages.ViewLogin:
		in := validation.LoginInput{Email: v.email(), Password: v.value(validation.FieldPassword)}
		if !v.form.Begin(in.Validate()) {
			return v.focusFirstError()
		}
		call = func() forms.Outcome { return flows.Login(ctx, in) }

	case messages.ViewRegister:
		in := validation.RegisterInput{
			Name:            strings.TrimSpace(v.value(validation.FieldName)),
			Email:           v.email(),
			Password:        v.value(validation.FieldPassword),
			ConfirmPassword: v.value(validation.FieldConfirmPassword),
		}
		if !v.form.Begin(in.Validate()) {
			return v.focusFirstError()
		}
		call = func() forms.Outcome { return flows.Register(ctx, in) }

	case messages.ViewVerifyEmail:
		in := validation.VerifyEmailInput{Email: v.email(), Code: v.value(validation.FieldCode)}
		if !v.form.Begin(in.Validate()) {
			return v.focusFirstError()
		}
		call = func() forms.Outcome { return flows.VerifyEmail(ctx, in) }

	case messages.ViewForgotPassword:
		in := validation.ForgotPasswordInput{Email: v.email()}
		if !v.form.Begin(in.Validate()) {
			return v.focusFirstError()
		}
		call = func() forms.Outcome { return flows.ForgotPassword(ctx, in) }

	case messages.ViewResetPassword:
		in := validation.ResetPasswordInput{
			Email:           v.email(),
			Code:            v.value(validation.FieldCode),
			NewPassword:     v.value(validation.FieldNewPassword),
			ConfirmPassword: v.value(validation.FieldConfirmPassword),
		}
		if !v.form.Begin(in.Validate()) {
			return v.focusFirstError()
		}
		call = func() forms.Outcome { return flows.ResetPassword(ctx, in) }

	default:
		return nil
	}

	return func() tea.Msg {
		return messages.FormSubmitted{View: view, Outcome: call()}
	}
}

// resendCode asks for a new code independently of the main form.
func (v *View) resendCode() tea.Cmd {
	if v.flows == nil || !v.resend.Start() {
		return nil
	}

	ctx := v.ctx
	flows := v.flows
	view := v.page
	email := v.value(validation.FieldEmail)

	return func() tea.Msg {
		var out forms.Outcome
		if view == messages.ViewResetPassword {
			out = flows.ResendReset(ctx, email)
		} else {
			out = flows.ResendVerification(ctx, email)
		}
		return messages.CodeResent{View: view, Outcome: out}
	}
}

// focusFirstError moves focus to the first field with an error.
func (v *View) focusFirstError() tea.Cmd {
	for i, f := range v.fields.Fields() {
		if v.form.FieldError(validation.Field(f.Key())) != "" {
			return v.fields.FocusIndex(i)
		}
	}
	return nil
}

// View renders the current auth form.
func (v *View) View() string {
	p := pages[v.page]
	var b strings.Builder

	b.WriteString(v.styles.Title.Render(p.title))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(p.subtitle))
	b.WriteString("\n\n")

	if banner := v.renderBanner(); banner != "" {
		b.WriteString(banner)
		b.WriteString("\n\n")
	}

	for _, f := range v.fields.Fields() {
		b.WriteString(f.View(v.form.FieldError(validation.Field(f.Key()))))
		b.WriteString("\n")
		if p.checklist != "" && f.Key() == string(p.checklist) {
			b.WriteString(v.renderChecklist(f.Value()))
		}
		if p.matchConfirm && f.Key() == string(validation.FieldConfirmPassword) &&
			f.Value() != "" && !v.passwordsMatch(p) {
			b.WriteString(v.styles.Error.Render("  Passwords do not match"))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")

	b.WriteString(v.renderSubmit(p))
	b.WriteString("\n")

	if p.resend {
		b.WriteString(v.renderResend())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.renderHelp(p))

	return b.String()
}

// renderBanner renders the form error or success message.
func (v *View) renderBanner() string {
	switch v.form.Phase {
	case forms.PhaseError:
		return v.styles.Error.Render(v.form.Error)
	case forms.PhaseSuccess:
		if v.form.Message != "" {
			return v.styles.Success.Render(v.form.Message)
		}
	}
	return ""
}

// renderChecklist renders the live password requirements.
func (v *View) renderChecklist(password string) string {
	var b strings.Builder
	for _, r := range validation.CheckPassword(password) {
		if r.Satisfied {
			b.WriteString(v.styles.Success.Render("  ✓ " + r.Label))
		} else {
			b.WriteString(v.styles.Muted.Render("  ○ " + r.Label))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderSubmit renders the submit button in its current state.
func (v *View) renderSubmit(p page) string {
	if v.form.Phase == forms.PhaseSubmitting {
		return v.styles.Muted.Render(fmt.Sprintf("[ %s... ]", p.submit))
	}
	if !v.canSubmit(p) {
		return v.styles.Muted.Render(fmt.Sprintf("[ %s ]", p.submit))
	}
	return v.styles.Selected.Render(fmt.Sprintf("[ %s ]", p.submit))
}

// canSubmit reports whether the submit button is enabled.
// Pages with a password checklist require every requirement first, and
// the reset page also a matching confirmation.
func (v *View) canSubmit(p page) bool {
	if p.checklist == "" {
		return true
	}
	if !validation.AllMet(v.value(p.checklist)) {
		return false
	}
	return !p.matchConfirm || v.passwordsMatch(p)
}

func (v *View) passwordsMatch(p page) bool {
	confirm := v.value(validation.FieldConfirmPassword)
	return confirm != "" && confirm == v.value(p.checklist)
}

// renderResend renders the resend action and its own messages.
func (v *View) renderResend() string {
	switch {
	case v.resend.Pending:
		return v.styles.Muted.Render("Sending a new code...")
	case v.resend.Error != "":
		return v.styles.Error.Render(v.resend.Error)
	case v.resend.Message != "":
		return v.styles.Success.Render(v.resend.Message)
	}
	return v.styles.Muted.Render("Didn't get a code? [ctrl+r] resend")
}

// renderHelp renders the help footer.
func (v *View) renderHelp(p page) string {
	parts := []string{"[tab] next field", "[enter] submit"}
	for _, l := range p.links {
		parts = append(parts, fmt.Sprintf("[%s] %s", l.key, l.label))
	}
	parts = append(parts, "[esc] back")
	return v.styles.Help.Render(strings.Join(parts, "  "))
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.fields.SetWidth(fieldWidth(width))
}

// Page returns the form being shown.
func (v *View) Page() messages.ViewType {
	return v.page
}

// Form returns the state of the main form.
func (v *View) Form() *forms.Form {
	return &v.form
}

// ResendState returns the state of the resend action.
func (v *View) ResendState() forms.Resend {
	return v.resend
}

// Value returns the current value of a field.
func (v *View) Value(f validation.Field) string {
	return v.value(f)
}

// SetValue sets a field, as if typed by the user.
func (v *View) SetValue(f validation.Field, value string) {
	if field := v.fields.Field(string(f)); field != nil {
		field.SetValue(value)
		v.form.Edit(f)
	}
}
