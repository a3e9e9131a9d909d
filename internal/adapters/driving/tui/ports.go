// Package tui provides an interactive terminal user interface for kameleon.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/kameleon-labs/kameleon-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Session holds the signed-in user and tokens.
	Session driving.SessionService

	// Auth drives the sign-in, sign-up and password reset forms.
	Auth driving.AuthFlows

	// Dashboard assembles the home screen.
	Dashboard driving.DashboardService

	// Documents manages PRD documents.
	Documents driving.DocumentService

	// Personas manages reviewer personas.
	Personas driving.PersonaService

	// Templates manages document templates.
	Templates driving.TemplateService

	// Axioms manages writing rules.
	Axioms driving.AxiomService

	// Settings manages application settings.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the services needed to sign in.
// Resource services are optional and can be set on the returned value.
func NewPorts(session driving.SessionService, auth driving.AuthFlows) *Ports {
	return &Ports{
		Session: session,
		Auth:    auth,
	}
}

// Validate ensures all required ports are set.
// Resource views tolerate a missing service and show an error instead.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Session == nil {
		return ErrMissingSessionService
	}
	if p.Auth == nil {
		return ErrMissingAuthFlows
	}
	return nil
}
