// Package mcp provides an MCP (Model Context Protocol) server adapter for Kameleon.
// It lets AI assistants read and write PRD documents with the signed-in session.
package mcp

import "errors"

// ErrMissingSessionService is returned when the session service is not provided.
var ErrMissingSessionService = errors.New("mcp: session service is required")

// ErrMissingDocumentService is returned when the document service is not provided.
var ErrMissingDocumentService = errors.New("mcp: document service is required")

// ErrNotSignedIn is returned by tools called without a session.
var ErrNotSignedIn = errors.New("not signed in: run 'kameleon login' first")

// ErrServiceUnavailable is returned by tools whose service was not provided.
var ErrServiceUnavailable = errors.New("service not available")
