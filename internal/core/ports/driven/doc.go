// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - AxiomAPI, TemplateAPI, PersonaAPI, DocumentAPI, ReviewAPI, ProfileAPI:
//     the backend resource modules (HTTP)
//   - IdentityProvider: the user pool that issues tokens (Cognito)
//   - ConfigStore: Application configuration (TOML file)
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - SessionStore: Without it, sessions last for the process only.
//   - ActivityStore: Without it, the dashboard shows no recent activity.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
