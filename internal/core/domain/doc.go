// Package domain defines the core entities exchanged with the Kameleon backend.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Axiom: A user-scoped guiding writing principle
//   - Template: A document skeleton scoped to an audience
//   - Persona: A reviewer calibration profile with examples
//   - Document: The PRD being authored
//   - Review: Feedback recorded against a document
//   - UserProfile: The current user's identity
//
// The client never holds an authoritative copy of these entities. They are
// transient views of what the backend returned.
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
