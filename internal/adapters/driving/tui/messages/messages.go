// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/kameleon-labs/kameleon-cli/internal/core/domain"
	"github.com/kameleon-labs/kameleon-cli/internal/core/forms"
	"github.com/kameleon-labs/kameleon-cli/internal/core/ports/driving"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// Navigate asks the app to move to another screen, honouring the delay.
type Navigate struct {
	To *forms.Navigation
}

// FocusMenu returns keyboard focus to the dashboard sidebar.
type FocusMenu struct{}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewLanding is the signed-out welcome screen.
	ViewLanding ViewType = iota
	// ViewLogin is the sign-in form.
	ViewLogin
	// ViewRegister is the sign-up form.
	ViewRegister
	// ViewVerifyEmail is the email confirmation form.
	ViewVerifyEmail
	// ViewForgotPassword requests a reset code.
	ViewForgotPassword
	// ViewResetPassword sets a new password with a reset code.
	ViewResetPassword
	// ViewDashboard is the signed-in home screen.
	ViewDashboard
	// ViewDocuments lists documents.
	ViewDocuments
	// ViewDocument shows one document and its reviews.
	ViewDocument
	// ViewNewDocument is the new document form.
	ViewNewDocument
	// ViewPersonas lists reviewer personas.
	ViewPersonas
	// ViewNewPersona is the new persona form.
	ViewNewPersona
	// ViewTemplates lists templates.
	ViewTemplates
	// ViewAxioms lists axioms.
	ViewAxioms
	// ViewSettings is the settings configuration view.
	ViewSettings
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewLanding:
		return "landing"
	case ViewLogin:
		return "login"
	case ViewRegister:
		return "register"
	case ViewVerifyEmail:
		return "verify_email"
	case ViewForgotPassword:
		return "forgot_password"
	case ViewResetPassword:
		return "reset_password"
	case ViewDashboard:
		return "dashboard"
	case ViewDocuments:
		return "documents"
	case ViewDocument:
		return "document"
	case ViewNewDocument:
		return "new_document"
	case ViewPersonas:
		return "personas"
	case ViewNewPersona:
		return "new_persona"
	case ViewTemplates:
		return "templates"
	case ViewAxioms:
		return "axioms"
	case ViewSettings:
		return "settings"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// IsAuth reports whether the view is one of the signed-out auth forms.
func (v ViewType) IsAuth() bool {
	return v >= ViewLogin && v <= ViewResetPassword
}

// SessionLoaded carries the session state after start-up hydration.
type SessionLoaded struct {
	State domain.SessionState
	Err   error
}

// SignOutRequested asks the app to end the session.
type SignOutRequested struct{}

// SignedOut is sent once the session has been cleared.
type SignedOut struct {
	Err error
}

// FormSubmitted carries the outcome of an auth form submission.
type FormSubmitted struct {
	View    ViewType
	Outcome forms.Outcome
}

// CodeResent carries the outcome of a resend code action.
type CodeResent struct {
	View    ViewType
	Outcome forms.Outcome
}

// OverviewLoaded carries the dashboard home screen content.
type OverviewLoaded struct {
	Overview *driving.Overview
	Err      error
}

// DocumentsLoaded carries a page of documents.
type DocumentsLoaded struct {
	Documents []domain.Document
	NextToken string
	// More is set when the page continues a previous one.
	More bool
	Err  error
}

// DocumentSelected is sent when a document is opened from the list.
type DocumentSelected struct {
	Document domain.Document
}

// DocumentLoaded carries a document and its reviews.
type DocumentLoaded struct {
	DocumentID string
	Document   *domain.Document
	Reviews    []domain.Review
	Err        error
}

// DocumentSubmitted carries the result of submitting a document for review.
type DocumentSubmitted struct {
	DocumentID string
	Result     *domain.SubmitResult
	Err        error
}

// PersonasLoaded carries a page of personas.
type PersonasLoaded struct {
	Personas []domain.Persona
	Err      error
}

// TemplatesLoaded carries a page of templates.
type TemplatesLoaded struct {
	Templates []domain.Template
	Err       error
}

// AxiomsLoaded carries a page of axioms.
type AxiomsLoaded struct {
	Axioms []domain.Axiom
	Err    error
}

// ChoicesLoaded carries the templates and personas offered by the new document form.
type ChoicesLoaded struct {
	Templates []domain.Template
	Personas  []domain.Persona
	Err       error
}

// DocumentCreated is sent when the new document form has been saved.
type DocumentCreated struct {
	Document *domain.Document
	Err      error
}

// PersonaCreated is sent when the new persona form has been saved.
type PersonaCreated struct {
	Persona *domain.Persona
	Err     error
}

// SettingsLoaded is sent when settings have been loaded.
type SettingsLoaded struct {
	Settings *domain.AppSettings
	// Values holds the effective value of each config key as text.
	Values map[string]string
	// Invalid is the result of validating the effective settings.
	Invalid error
	Err     error
}

// SettingsSaved is sent when a setting has been written.
type SettingsSaved struct {
	Key string
	Err error
}

// SettingsChanged is sent when the config file changed on disk.
type SettingsChanged struct{}

// ErrorOccurred is sent when an error needs to be displayed.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
