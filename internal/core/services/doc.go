// Package services implements the driving port interfaces.
// Services contain the client-side logic (validation, session lifecycle,
// navigation decisions, activity recording) and orchestrate calls to
// driven ports (adapters).
//
// All business rules about entities live in the backend; services never
// hold an authoritative copy of an entity.
package services
