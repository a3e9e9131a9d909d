package driven

import (
	"context"

	"github.com/kameleon-labs/kameleon-cli/internal/core/domain"
)

// SessionStore persists the signed-in session between runs.
// Backed by SQLite, one row per machine user.
type SessionStore interface {
	// Load returns the stored session.
	// Returns domain.ErrNotFound when nobody is signed in.
	Load(ctx context.Context) (*domain.Session, error)

	// Save stores or replaces the session.
	Save(ctx context.Context, session *domain.Session) error

	// Clear removes the stored session. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}
