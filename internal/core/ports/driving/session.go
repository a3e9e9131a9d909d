package driving

import (
	"context"

	"github.com/kameleon-labs/kameleon-cli/internal/core/domain"
)

// SessionService owns the signed-in identity.
// All methods are safe for concurrent use.
type SessionService interface {
	// Initialize restores a stored session, refreshing it if expired.
	// It must be called once before State reports Initialized.
	Initialize(ctx context.Context) error

	// State returns a snapshot of the session.
	State() domain.SessionState

	// IDToken returns the current ID token, or "" when signed out.
	IDToken(ctx context.Context) (string, error)

	// SignIn authenticates and stores the session.
	SignIn(ctx context.Context, email, password string) domain.AuthResult

	// SignUp registers a new account.
	SignUp(ctx context.Context, email, password, name string) domain.SignUpResult

	// ConfirmSignUp confirms an account with its emailed code.
	ConfirmSignUp(ctx context.Context, email, code string) domain.AuthResult

	// ResendConfirmationCode emails a new confirmation code.
	ResendConfirmationCode(ctx context.Context, email string) domain.AuthResult

	// ForgotPassword emails a reset code.
	ForgotPassword(ctx context.Context, email string) domain.AuthResult

	// ConfirmForgotPassword sets a new password with the reset code.
	ConfirmForgotPassword(ctx context.Context, email, code, newPassword string) domain.AuthResult

	// SignOut ends the session locally and, best effort, at the provider.
	SignOut(ctx context.Context) error
}
