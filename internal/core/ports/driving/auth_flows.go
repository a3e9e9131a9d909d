package driving

import (
	"context"

	"github.com/kameleon-labs/kameleon-cli/internal/core/forms"
	"github.com/kameleon-labs/kameleon-cli/internal/core/validation"
)

// AuthFlows runs the auth form pages: validate, call the identity provider,
// and decide the message and next screen.
// A validation failure returns an outcome with Fields set and makes no call.
type AuthFlows interface {
	// Login signs in. Success navigates to the dashboard.
	Login(ctx context.Context, in validation.LoginInput) forms.Outcome

	// Register creates an account. Success navigates to email verification
	// when confirmation is needed, otherwise to login.
	Register(ctx context.Context, in validation.RegisterInput) forms.Outcome

	// VerifyEmail confirms an account. Success navigates to login after a pause.
	VerifyEmail(ctx context.Context, in validation.VerifyEmailInput) forms.Outcome

	// ResendVerification emails a new confirmation code. It never navigates.
	ResendVerification(ctx context.Context, email string) forms.Outcome

	// ForgotPassword requests a reset code. Success navigates to the reset page.
	ForgotPassword(ctx context.Context, in validation.ForgotPasswordInput) forms.Outcome

	// ResetPassword sets a new password. Success navigates to login after a pause.
	ResetPassword(ctx context.Context, in validation.ResetPasswordInput) forms.Outcome

	// ResendReset emails a new reset code. It never navigates.
	ResendReset(ctx context.Context, email string) forms.Outcome
}
