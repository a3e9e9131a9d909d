package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kameleon-labs/kameleon-cli/internal/core/domain"
	"github.com/kameleon-labs/kameleon-cli/internal/core/ports/driven"
)

// sessionSlot is the key of the only session row.
const sessionSlot = "current"

// sessionStore implements driven.SessionStore.
type sessionStore struct {
	store *Store
}

var _ driven.SessionStore = (*sessionStore)(nil)

// Load returns the stored session, or domain.ErrNotFound.
func (s *sessionStore) Load(ctx context.Context) (*domain.Session, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT email, id_token, access_token, refresh_token, expires_at, updated_at
		FROM sessions WHERE slot = ?
	`, sessionSlot)

	var session domain.Session
	var expiresAt, updatedAt sql.NullString
	err := row.Scan(
		&session.Email,
		&session.Tokens.IDToken,
		&session.Tokens.AccessToken,
		&session.Tokens.RefreshToken,
		&expiresAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}

	session.Tokens.Expiry = parseNullableTime(expiresAt)
	session.UpdatedAt = parseNullableTime(updatedAt)
	return &session, nil
}

// Save stores or replaces the session.
func (s *sessionStore) Save(ctx context.Context, session *domain.Session) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO sessions (slot, email, id_token, access_token, refresh_token, expires_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(slot) DO UPDATE SET
			email = excluded.email,
			id_token = excluded.id_token,
			access_token = excluded.access_token,
			refresh_token = excluded.refresh_token,
			expires_at = excluded.expires_at,
			updated_at = excluded.updated_at
	`,
		sessionSlot,
		session.Email,
		session.Tokens.IDToken,
		session.Tokens.AccessToken,
		session.Tokens.RefreshToken,
		formatNullableTime(session.Tokens.Expiry),
		formatTime(session.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

// Clear removes the stored session.
func (s *sessionStore) Clear(ctx context.Context) error {
	if _, err := s.store.db.ExecContext(ctx, "DELETE FROM sessions WHERE slot = ?", sessionSlot); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}
