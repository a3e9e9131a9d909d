package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kameleon-labs/kameleon-cli/internal/core/domain"
	"github.com/kameleon-labs/kameleon-cli/internal/core/ports/driven"
	"github.com/kameleon-labs/kameleon-cli/internal/core/ports/driving"
	"github.com/kameleon-labs/kameleon-cli/internal/logger"
)

// Ensure SessionManager implements the interfaces.
var (
	_ driving.SessionService = (*SessionManager)(nil)
	_ driven.TokenSource     = (*SessionManager)(nil)
)

// expirySkew treats tokens this close to expiry as already expired.
const expirySkew = 60 * time.Second

// SessionManager owns the signed-in identity for the process.
// It is the token source for the API client and is safe for concurrent use.
type SessionManager struct {
	provider driven.IdentityProvider
	store    driven.SessionStore
	now      func() time.Time

	mu          sync.Mutex
	session     *domain.Session
	user        *domain.SessionUser
	initialized bool
}

// NewSessionManager creates a session manager.
// store may be nil, in which case sessions are not persisted.
func NewSessionManager(provider driven.IdentityProvider, store driven.SessionStore) *SessionManager {
	return &SessionManager{
		provider: provider,
		store:    store,
		now:      time.Now,
	}
}

// Initialize restores the stored session. An expired session is refreshed
// when a refresh token is present; if that fails the session is cleared.
func (m *SessionManager) Initialize(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	defer func() { m.initialized = true }()

	if m.store == nil {
		return nil
	}

	session, err := m.store.Load(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	if err := m.adopt(session); err != nil {
		logger.Warn("stored session unreadable, clearing: %v", err)
		return m.clearLocked(ctx)
	}

	if m.session.Tokens.IsExpired(m.now(), expirySkew) {
		if err := m.refreshLocked(ctx); err != nil {
			logger.Warn("session refresh failed, signing out: %v", err)
			return m.clearLocked(ctx)
		}
	}

	logger.Debug("session restored for %s", logger.MaskEmail(m.session.Email))
	return nil
}

// State returns a snapshot of the session.
func (m *SessionManager) State() domain.SessionState {
	m.mu.Lock()
	defer m.mu.Unlock()

	state := domain.SessionState{
		Authenticated: m.session != nil,
		Initialized:   m.initialized,
	}
	if m.user != nil {
		u := *m.user
		state.User = &u
	}
	return state
}

// IDToken returns the current ID token, refreshing it when expired.
// Returns "" when signed out. A failed refresh ends the session and
// returns an error wrapping domain.ErrAuthExpired.
func (m *SessionManager) IDToken(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil {
		return "", nil
	}
	if m.session.Tokens.IsExpired(m.now(), expirySkew) {
		if err := m.refreshLocked(ctx); err != nil {
			if clearErr := m.clearLocked(ctx); clearErr != nil {
				logger.Warn("clear session: %v", clearErr)
			}
			return "", fmt.Errorf("%w: %v", domain.ErrAuthExpired, err)
		}
	}
	return m.session.Tokens.IDToken, nil
}

// SignIn authenticates and stores the session.
func (m *SessionManager) SignIn(ctx context.Context, email, password string) domain.AuthResult {
	if m.provider == nil {
		return domain.Failed(fmt.Errorf("identity provider: %w", domain.ErrNotConfigured))
	}

	tokens, err := m.provider.SignIn(ctx, email, password)
	if err != nil {
		logger.Debug("sign in failed for %s: %v", logger.MaskEmail(email), err)
		return domain.Failed(err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.adopt(&domain.Session{Email: email, Tokens: *tokens}); err != nil {
		return domain.Failed(err)
	}
	m.persistLocked(ctx)
	logger.Info("signed in as %s", logger.MaskEmail(email))
	return domain.Succeeded()
}

// SignUp registers a new account.
func (m *SessionManager) SignUp(ctx context.Context, email, password, name string) domain.SignUpResult {
	if m.provider == nil {
		return domain.SignUpResult{AuthResult: domain.Failed(fmt.Errorf("identity provider: %w", domain.ErrNotConfigured))}
	}

	needsConfirmation, err := m.provider.SignUp(ctx, email, password, name)
	if err != nil {
		return domain.SignUpResult{AuthResult: domain.Failed(err)}
	}
	logger.Info("registered %s (confirmation needed: %t)", logger.MaskEmail(email), needsConfirmation)
	return domain.SignUpResult{AuthResult: domain.Succeeded(), NeedsConfirmation: needsConfirmation}
}

// ConfirmSignUp confirms an account with its emailed code.
func (m *SessionManager) ConfirmSignUp(ctx context.Context, email, code string) domain.AuthResult {
	return m.call(func(p driven.IdentityProvider) error {
		return p.ConfirmSignUp(ctx, email, code)
	})
}

// ResendConfirmationCode emails a new confirmation code.
func (m *SessionManager) ResendConfirmationCode(ctx context.Context, email string) domain.AuthResult {
	return m.call(func(p driven.IdentityProvider) error {
		return p.ResendConfirmationCode(ctx, email)
	})
}

// ForgotPassword emails a reset code.
func (m *SessionManager) ForgotPassword(ctx context.Context, email string) domain.AuthResult {
	return m.call(func(p driven.IdentityProvider) error {
		return p.ForgotPassword(ctx, email)
	})
}

// ConfirmForgotPassword sets a new password with the reset code.
func (m *SessionManager) ConfirmForgotPassword(ctx context.Context, email, code, newPassword string) domain.AuthResult {
	return m.call(func(p driven.IdentityProvider) error {
		return p.ConfirmForgotPassword(ctx, email, code, newPassword)
	})
}

// SignOut ends the session. Provider sign-out is best effort; the local
// session is always cleared.
func (m *SessionManager) SignOut(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session != nil && m.provider != nil && m.session.Tokens.AccessToken != "" {
		if err := m.provider.SignOut(ctx, m.session.Tokens.AccessToken); err != nil {
			logger.Warn("provider sign out: %v", err)
		}
	}
	logger.Info("signed out")
	return m.clearLocked(ctx)
}

func (m *SessionManager) call(fn func(driven.IdentityProvider) error) domain.AuthResult {
	if m.provider == nil {
		return domain.Failed(fmt.Errorf("identity provider: %w", domain.ErrNotConfigured))
	}
	if err := fn(m.provider); err != nil {
		return domain.Failed(err)
	}
	return domain.Succeeded()
}

// adopt installs session as current, deriving the user and expiry from the ID token.
func (m *SessionManager) adopt(session *domain.Session) error {
	user, expiry, err := parseIDToken(session.Tokens.IDToken)
	if err != nil {
		return err
	}
	if !expiry.IsZero() {
		session.Tokens.Expiry = expiry
	}
	if session.Email == "" {
		session.Email = user.Email
	}
	session.UpdatedAt = m.now()
	m.session = session
	m.user = user
	return nil
}

func (m *SessionManager) refreshLocked(ctx context.Context) error {
	refreshToken := m.session.Tokens.RefreshToken
	if refreshToken == "" {
		return domain.ErrTokenRefreshFailed
	}
	if m.provider == nil {
		return fmt.Errorf("identity provider: %w", domain.ErrNotConfigured)
	}

	logger.Debug("refreshing session for %s", logger.MaskEmail(m.session.Email))
	tokens, err := m.provider.Refresh(ctx, refreshToken)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrTokenRefreshFailed, err)
	}
	if tokens.RefreshToken == "" {
		tokens.RefreshToken = refreshToken
	}
	if err := m.adopt(&domain.Session{Email: m.session.Email, Tokens: *tokens}); err != nil {
		return err
	}
	m.persistLocked(ctx)
	return nil
}

func (m *SessionManager) persistLocked(ctx context.Context) {
	if m.store == nil || m.session == nil {
		return
	}
	if err := m.store.Save(ctx, m.session); err != nil {
		logger.Warn("persist session: %v", err)
	}
}

func (m *SessionManager) clearLocked(ctx context.Context) error {
	m.session = nil
	m.user = nil
	if m.store == nil {
		return nil
	}
	if err := m.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// idClaims are the ID token claims the client reads.
type idClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// parseIDToken reads the user and expiry from an ID token without verifying
// its signature; the backend verifies every request.
func parseIDToken(token string) (*domain.SessionUser, time.Time, error) {
	if token == "" {
		return nil, time.Time{}, fmt.Errorf("%w: empty id token", domain.ErrInvalidInput)
	}

	var claims idClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return nil, time.Time{}, fmt.Errorf("parse id token: %w", err)
	}

	var expiry time.Time
	if claims.ExpiresAt != nil {
		expiry = claims.ExpiresAt.Time
	}
	return &domain.SessionUser{
		ID:    claims.Subject,
		Email: claims.Email,
		Name:  claims.Name,
	}, expiry, nil
}
