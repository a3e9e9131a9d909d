package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kameleon-labs/kameleon-cli/internal/core/domain"
	"github.com/kameleon-labs/kameleon-cli/internal/core/ports/driven"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, tokens driven.TokenSource) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{BaseURL: srv.URL + "/", RateLimit: 1000, Burst: 1000}, tokens)
	require.NoError(t, err)
	return c
}

func TestNewClient_Defaults(t *testing.T) {
	c, err := NewClient(Config{}, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAPIURL, c.BaseURL())
	assert.Equal(t, domain.DefaultRateLimit, c.limiter.Limit())
	assert.Equal(t, domain.DefaultBurst, c.limiter.Burst())
}

func TestNewClient_RejectsBadURL(t *testing.T) {
	for _, raw := range []string{"ftp://example.com", "not a url", "http://"} {
		_, err := NewClient(Config{BaseURL: raw}, nil)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, raw)
	}
}

func TestClient_Do_SetsHeaders(t *testing.T) {
	var got http.Header
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	}, driven.StaticToken("id-token"))

	err := c.Do(context.Background(), Request{Path: "/me", Headers: map[string]string{"X-Extra": "1"}}, nil)
	require.NoError(t, err)

	assert.Equal(t, "Bearer id-token", got.Get("Authorization"))
	assert.Equal(t, "application/json", got.Get("Content-Type"))
	assert.Equal(t, "1", got.Get("X-Extra"))
	assert.NotEmpty(t, got.Get(HeaderRequestID))
}

func TestClient_Do_NoTokenNoAuthorization(t *testing.T) {
	var auth string
	var hasAuth bool
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_, hasAuth = r.Header["Authorization"]
		w.WriteHeader(http.StatusNoContent)
	}, nil)

	require.NoError(t, c.Do(context.Background(), Request{Path: "/axioms"}, nil))
	assert.Empty(t, auth)
	assert.False(t, hasAuth)
}

func TestClient_Do_CallerHeadersOverride(t *testing.T) {
	var contentType string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusNoContent)
	}, nil)

	req := Request{Path: "/x", Headers: map[string]string{"Content-Type": "text/plain"}}
	require.NoError(t, c.Do(context.Background(), req, nil))
	assert.Equal(t, "text/plain", contentType)
}

func TestClient_Do_EncodesBodyOnlyWhenPresent(t *testing.T) {
	var bodies []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		bodies = append(bodies, string(b))
		w.WriteHeader(http.StatusNoContent)
	}, nil)

	ctx := context.Background()
	require.NoError(t, c.Do(ctx, Request{Method: http.MethodPost, Path: "/documents/1/submit"}, nil))
	require.NoError(t, c.Do(ctx, Request{Method: http.MethodPost, Path: "/axioms", Body: map[string]string{"title": "T"}}, nil))

	require.Len(t, bodies, 2)
	assert.Empty(t, bodies[0])
	assert.JSONEq(t, `{"title":"T"}`, bodies[1])
}

func TestClient_Do_NoContentLeavesOutUntouched(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}, nil)

	out := map[string]string{"kept": "yes"}
	err := c.Do(context.Background(), Request{Method: http.MethodDelete, Path: "/axioms/a1"}, &out)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"kept": "yes"}, out)
}

func TestClient_Do_DecodesJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/axioms", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		_ = json.NewEncoder(w).Encode(map[string]any{"items": []map[string]string{{"axiomId": "a1"}}})
	}, nil)

	var out domain.ListResponse[domain.Axiom]
	err := c.Do(context.Background(), Request{Path: "/axioms", Query: listQuery(domain.ListParams{Limit: 5})}, &out)
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "a1", out.Items[0].ID)
}

func TestClient_Do_ErrorResponses(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
		wantCode    string
	}{
		{"backend message", http.StatusBadRequest, `{"message":"Title is required","code":"VALIDATION"}`, "Title is required", "VALIDATION"},
		{"malformed body", http.StatusInternalServerError, `<html>oops</html>`, "API Error: 500", ""},
		{"empty body", http.StatusNotFound, ``, "API Error: 404", ""},
		{"json without message", http.StatusForbidden, `{"code":"FORBIDDEN"}`, "API Error: 403", "FORBIDDEN"},
		{"non-object json", http.StatusBadGateway, `"bad gateway"`, "API Error: 502", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}, nil)

			err := c.Do(context.Background(), Request{Path: "/documents"}, nil)
			require.Error(t, err)

			var apiErr *domain.APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantMessage, apiErr.Message)
			assert.Equal(t, tt.wantCode, apiErr.Code)
		})
	}
}

func TestClient_Do_NotFoundIsSentinel(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}, nil)

	err := c.Do(context.Background(), Request{Path: "/documents/missing"}, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClient_Do_TransportErrorIsNotAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := srv.URL
	srv.Close()

	c, err := NewClient(Config{BaseURL: base}, nil)
	require.NoError(t, err)

	err = c.Do(context.Background(), Request{Path: "/me"}, nil)
	require.Error(t, err)
	var apiErr *domain.APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestClient_Do_TokenSourceError(t *testing.T) {
	called := false
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	}, driven.TokenSourceFunc(func(context.Context) (string, error) {
		return "", domain.ErrAuthExpired
	}))

	err := c.Do(context.Background(), Request{Path: "/me"}, nil)
	assert.ErrorIs(t, err, domain.ErrAuthExpired)
	assert.False(t, called)
}

func TestClient_Do_CancelledContext(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.Do(ctx, Request{Path: "/me"}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRateLimiter_NilIsNoop(t *testing.T) {
	var r *RateLimiter
	assert.NoError(t, r.Wait(context.Background()))
}
