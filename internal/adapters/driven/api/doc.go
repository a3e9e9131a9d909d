// Package api is the HTTP adapter for the Kameleon backend.
//
// Client.Do is the single authenticated request function; the resource
// modules (Axioms, Templates, Personas, Documents, Reviews, Profile) are thin
// typed wrappers that map one operation to one endpoint and unwrap the
// backend's entity envelopes.
package api
