package domain

import (
	"errors"
	"time"
)

// AuthError is a failure reported by the identity provider itself,
// such as a wrong password or an expired code. Message is user-presentable.
type AuthError struct {
	Code    string
	Message string
}

// Error implements error.
func (e *AuthError) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return e.Message
}

// AuthResult is the uniform outcome of an identity operation.
// Error is the human-readable failure message when Success is false; it is
// empty when the provider gave no message. Cause keeps the underlying error.
type AuthResult struct {
	Success bool
	Error   string
	Cause   error
}

// Failed builds an unsuccessful AuthResult from err. Only provider-reported
// failures (*AuthError) carry a message; anything else is left to the caller.
func Failed(err error) AuthResult {
	res := AuthResult{Cause: err}
	var authErr *AuthError
	if errors.As(err, &authErr) {
		res.Error = authErr.Message
	}
	return res
}

// Unexpected reports whether the failure was not reported by the provider,
// e.g. a network or configuration error.
func (r AuthResult) Unexpected() bool {
	if r.Success || r.Cause == nil {
		return false
	}
	var authErr *AuthError
	return !errors.As(r.Cause, &authErr)
}

// Succeeded is the successful AuthResult.
func Succeeded() AuthResult {
	return AuthResult{Success: true}
}

// SignUpResult is the outcome of a registration.
type SignUpResult struct {
	AuthResult
	// NeedsConfirmation is true when the account must be verified by email code.
	NeedsConfirmation bool
}

// Tokens are the credentials issued by the identity provider.
type Tokens struct {
	// IDToken is the bearer credential sent to the backend.
	IDToken string `json:"id_token"`
	// AccessToken is used for provider calls such as global sign-out.
	AccessToken string `json:"access_token"`
	// RefreshToken renews the other two; it may be empty.
	RefreshToken string `json:"refresh_token,omitempty"`
	// Expiry is when the ID token stops being accepted.
	Expiry time.Time `json:"expiry,omitempty"`
}

// IsExpired returns true if the ID token has expired at now.
// A skew is subtracted so tokens about to lapse are treated as expired.
func (t *Tokens) IsExpired(now time.Time, skew time.Duration) bool {
	if t.Expiry.IsZero() {
		return false
	}
	return !now.Before(t.Expiry.Add(-skew))
}

// Session is a persisted sign-in.
type Session struct {
	Email     string
	Tokens    Tokens
	UpdatedAt time.Time
}

// SessionUser is the identity carried by the current ID token.
type SessionUser struct {
	ID    string
	Email string
	Name  string
}

// DisplayName returns the user's name, or the email if no name is known.
func (u *SessionUser) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

// SessionState is a snapshot of the session manager.
type SessionState struct {
	Authenticated bool
	Initialized   bool
	User          *SessionUser
}
