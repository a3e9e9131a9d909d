package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/kameleon-labs/kameleon-cli/internal/core/domain"
	"github.com/kameleon-labs/kameleon-cli/internal/core/ports/driven"
	"github.com/kameleon-labs/kameleon-cli/internal/logger"
)

// HeaderRequestID carries a per-request id so backend logs can be correlated.
const HeaderRequestID = "X-Request-Id"

// Config holds configuration for the backend client.
type Config struct {
	// BaseURL is the backend root, e.g. http://localhost:8000.
	BaseURL string

	// Timeout bounds a whole request (default: 30s).
	Timeout time.Duration

	// RateLimit is the sustained requests per second (default: 10).
	RateLimit float64

	// Burst is the token bucket size (default: 20).
	Burst int

	// HTTPClient overrides the transport. Timeout is ignored when set.
	HTTPClient *http.Client
}

// Request describes one call to the backend.
type Request struct {
	// Method defaults to GET.
	Method string
	// Path is appended to the base URL and must start with "/".
	Path string
	// Query is encoded onto the URL when non-empty.
	Query url.Values
	// Body is JSON-encoded when non-nil.
	Body any
	// Headers are merged after the defaults and may override them.
	Headers map[string]string
}

// Client is the authenticated request function shared by every resource module.
type Client struct {
	http    *http.Client
	baseURL string
	tokens  driven.TokenSource
	limiter *RateLimiter
}

// NewClient creates a client. A nil token source sends every request unauthenticated.
func NewClient(cfg Config, tokens driven.TokenSource) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = domain.DefaultAPIURL
	}
	u, err := url.Parse(base)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: api url %q", domain.ErrInvalidInput, cfg.BaseURL)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = domain.DefaultTimeoutSeconds * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	if tokens == nil {
		tokens = driven.StaticToken("")
	}

	return &Client{
		http:    httpClient,
		baseURL: base,
		tokens:  tokens,
		limiter: NewRateLimiter(cfg.RateLimit, cfg.Burst),
	}, nil
}

// BaseURL returns the normalised backend root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do performs req and decodes a successful JSON response into out.
//
// A 204 response leaves out untouched. A non-2xx response is returned as
// *domain.APIError carrying the backend's message and code when the body
// provides them. Transport failures are wrapped and are never APIErrors.
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	token, err := c.tokens.IDToken(ctx)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, req.Path, err)
	}

	var body io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	target := c.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	requestID := uuid.NewString()
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(HeaderRequestID, requestID)
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	if token != "" {
		(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}).SetAuthHeader(httpReq)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		logger.Debug("api: %s %s id=%s failed: %v", method, req.Path, requestID, err)
		return fmt.Errorf("request %s %s: %w", method, req.Path, err)
	}
	defer resp.Body.Close()

	logger.Debug("api: %s %s id=%s status=%d in %s",
		method, req.Path, requestID, resp.StatusCode, time.Since(start).Round(time.Millisecond))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if resp.StatusCode == http.StatusNoContent || out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// errorBody is the backend's error payload. Both fields are optional.
type errorBody struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// decodeError turns a failed response into an APIError. An unreadable or
// non-JSON body is treated as an empty payload.
func decodeError(resp *http.Response) error {
	var payload errorBody
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err == nil && len(raw) > 0 {
		if jsonErr := json.Unmarshal(raw, &payload); jsonErr != nil {
			payload = errorBody{}
		}
	}
	return domain.NewAPIError(resp.StatusCode, payload.Message, payload.Code)
}
