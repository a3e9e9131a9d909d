package driven

import (
	"context"

	"github.com/kameleon-labs/kameleon-cli/internal/core/domain"
)

// IdentityProvider is the external user pool.
// Errors returned carry a user-presentable message where the provider gives one.
type IdentityProvider interface {
	// SignIn authenticates with email and password.
	SignIn(ctx context.Context, email, password string) (*domain.Tokens, error)

	// SignUp registers a new account. needsConfirmation is true when the
	// account must be confirmed with an emailed code before signing in.
	SignUp(ctx context.Context, email, password, name string) (needsConfirmation bool, err error)

	// ConfirmSignUp confirms an account with the emailed code.
	ConfirmSignUp(ctx context.Context, email, code string) error

	// ResendConfirmationCode emails a new confirmation code.
	ResendConfirmationCode(ctx context.Context, email string) error

	// ForgotPassword emails a password reset code.
	ForgotPassword(ctx context.Context, email string) error

	// ConfirmForgotPassword sets a new password using the emailed code.
	ConfirmForgotPassword(ctx context.Context, email, code, newPassword string) error

	// Refresh exchanges a refresh token for fresh tokens.
	// The returned tokens may omit RefreshToken, in which case the old one stays valid.
	Refresh(ctx context.Context, refreshToken string) (*domain.Tokens, error)

	// SignOut revokes every token issued to the user.
	SignOut(ctx context.Context, accessToken string) error
}
