package services

import (
	"context"
	"strings"
	"time"

	"github.com/kameleon-labs/kameleon-cli/internal/core/domain"
	"github.com/kameleon-labs/kameleon-cli/internal/core/forms"
	"github.com/kameleon-labs/kameleon-cli/internal/core/ports/driving"
	"github.com/kameleon-labs/kameleon-cli/internal/core/validation"
)

// Ensure AuthFlows implements the interface.
var _ driving.AuthFlows = (*AuthFlows)(nil)

// Delays before leaving a success screen.
const (
	VerifiedRedirectDelay  = 2 * time.Second
	ResetSentRedirectDelay = 1500 * time.Millisecond
	ResetDoneRedirectDelay = 2 * time.Second
)

// Messages shown by the auth pages.
const (
	MsgEmailVerified       = "Your email has been verified successfully. Redirecting to login..."
	MsgResetCodeSent       = "We've sent a password reset code to your email."
	MsgPasswordReset       = "Your password has been reset successfully. You can now sign in with your new password."
	MsgVerificationResent  = "Verification code sent! Check your email."
	MsgResetCodeResent     = "New code sent! Check your email."
	MsgEmailRequiredResend = "Email is required to resend code"

	errInvalidCode        = "Invalid verification code"
	errSendResetCode      = "Failed to send reset code"
	errResetPassword      = "Failed to reset password"
	errResendCode         = "Failed to resend code"
	errResendVerification = "Failed to resend verification code"
)

// AuthFlows runs the auth form pages against a session service.
type AuthFlows struct {
	session driving.SessionService
}

// NewAuthFlows creates the auth flows.
func NewAuthFlows(session driving.SessionService) *AuthFlows {
	return &AuthFlows{session: session}
}

// Login signs in and moves to the dashboard.
func (f *AuthFlows) Login(ctx context.Context, in validation.LoginInput) forms.Outcome {
	in.Email = strings.TrimSpace(in.Email)
	if errs := in.Validate(); len(errs) > 0 {
		return forms.Invalid(errs)
	}

	res := f.session.SignIn(ctx, in.Email, in.Password)
	if !res.Success {
		return forms.Failure(failureMessage(res, domain.GenericErrorMessage, domain.GenericErrorMessage))
	}
	return forms.Success(forms.NavigateTo(forms.RouteDashboard))
}

// Register creates an account and moves to verification or login.
func (f *AuthFlows) Register(ctx context.Context, in validation.RegisterInput) forms.Outcome {
	in.Email = strings.TrimSpace(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	if errs := in.Validate(); len(errs) > 0 {
		return forms.Invalid(errs)
	}

	res := f.session.SignUp(ctx, in.Email, in.Password, in.Name)
	if !res.Success {
		return forms.Failure(failureMessage(res.AuthResult, domain.GenericErrorMessage, domain.GenericErrorMessage))
	}
	if res.NeedsConfirmation {
		return forms.Success(forms.NavigateTo(forms.RouteVerifyEmail).With("email", in.Email))
	}
	return forms.Success(forms.NavigateTo(forms.RouteLogin))
}

// VerifyEmail confirms the account and moves to login after a pause.
func (f *AuthFlows) VerifyEmail(ctx context.Context, in validation.VerifyEmailInput) forms.Outcome {
	in.Email = strings.TrimSpace(in.Email)
	if errs := in.Validate(); len(errs) > 0 {
		return forms.Invalid(errs)
	}

	res := f.session.ConfirmSignUp(ctx, in.Email, in.Code)
	if !res.Success {
		return forms.Failure(failureMessage(res, errInvalidCode, domain.GenericErrorMessage))
	}
	out := forms.Success(forms.NavigateTo(forms.RouteLogin).After(VerifiedRedirectDelay))
	out.Message = MsgEmailVerified
	return out
}

// ResendVerification emails a new confirmation code.
func (f *AuthFlows) ResendVerification(ctx context.Context, email string) forms.Outcome {
	email = strings.TrimSpace(email)
	if email == "" {
		return forms.Failure(MsgEmailRequiredResend)
	}

	res := f.session.ResendConfirmationCode(ctx, email)
	if !res.Success {
		return forms.Failure(failureMessage(res, errResendCode, errResendVerification))
	}
	return forms.Outcome{Success: true, Message: MsgVerificationResent}
}

// ForgotPassword requests a reset code and moves to the reset page.
func (f *AuthFlows) ForgotPassword(ctx context.Context, in validation.ForgotPasswordInput) forms.Outcome {
	in.Email = strings.TrimSpace(in.Email)
	if errs := in.Validate(); len(errs) > 0 {
		return forms.Invalid(errs)
	}

	res := f.session.ForgotPassword(ctx, in.Email)
	if !res.Success {
		return forms.Failure(failureMessage(res, errSendResetCode, domain.GenericErrorMessage))
	}
	out := forms.Success(forms.NavigateTo(forms.RouteResetPassword).
		With("email", in.Email).
		After(ResetSentRedirectDelay))
	out.Message = MsgResetCodeSent
	return out
}

// ResetPassword sets the new password and moves to login after a pause.
func (f *AuthFlows) ResetPassword(ctx context.Context, in validation.ResetPasswordInput) forms.Outcome {
	in.Email = strings.TrimSpace(in.Email)
	if errs := in.Validate(); len(errs) > 0 {
		return forms.Invalid(errs)
	}

	res := f.session.ConfirmForgotPassword(ctx, in.Email, in.Code, in.NewPassword)
	if !res.Success {
		return forms.Failure(failureMessage(res, errResetPassword, domain.GenericErrorMessage))
	}
	out := forms.Success(forms.NavigateTo(forms.RouteLogin).After(ResetDoneRedirectDelay))
	out.Message = MsgPasswordReset
	return out
}

// ResendReset emails a new reset code.
func (f *AuthFlows) ResendReset(ctx context.Context, email string) forms.Outcome {
	email = strings.TrimSpace(email)
	if email == "" {
		return forms.Failure(MsgEmailRequiredResend)
	}

	res := f.session.ForgotPassword(ctx, email)
	if !res.Success {
		return forms.Failure(failureMessage(res, errResendCode, errResendCode))
	}
	return forms.Outcome{Success: true, Message: MsgResetCodeResent}
}

// failureMessage picks the banner for a failed auth call: the provider's own
// message, else fallback for a provider failure without one, else unexpected
// for anything the provider did not report.
func failureMessage(res domain.AuthResult, fallback, unexpected string) string {
	if res.Error != "" {
		return res.Error
	}
	if res.Unexpected() {
		return unexpected
	}
	return fallback
}
