package mcp

import (
	"github.com/kameleon-labs/kameleon-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Session reports whether a user is signed in.
	Session driving.SessionService

	// Documents manages PRD documents and their reviews.
	Documents driving.DocumentService

	// Personas lists reviewer personas.
	Personas driving.PersonaService

	// Templates lists document templates.
	Templates driving.TemplateService

	// Axioms lists writing rules.
	Axioms driving.AxiomService

	// Profile returns the signed-in user's backend profile.
	Profile driving.ProfileService
}

// Validate ensures all required ports are set.
// Personas, Templates, Axioms and Profile are optional; their tools report
// ErrServiceUnavailable when missing.
func (p *Ports) Validate() error {
	if p.Session == nil {
		return ErrMissingSessionService
	}
	if p.Documents == nil {
		return ErrMissingDocumentService
	}
	return nil
}
