package driven

import "context"

// TokenSource provides the identity token attached to backend requests.
// Implementations refresh the token transparently when it has expired.
type TokenSource interface {
	// IDToken returns the current ID token.
	// Returns an empty string, and no error, when nobody is signed in.
	IDToken(ctx context.Context) (string, error)
}

// TokenSourceFunc adapts a function to TokenSource.
type TokenSourceFunc func(ctx context.Context) (string, error)

// IDToken calls f.
func (f TokenSourceFunc) IDToken(ctx context.Context) (string, error) {
	return f(ctx)
}

// StaticToken is a TokenSource that always returns the same token.
type StaticToken string

// IDToken returns the token.
func (s StaticToken) IDToken(context.Context) (string, error) {
	return string(s), nil
}
