package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/studyhubapp/studyhub-go/pkg/logger"
)

// TokenSource supplies the bearer token attached to authenticated calls.
// An empty token means "no session".
type TokenSource interface {
	Token() string
}

// TokenSourceFunc adapts a function to the TokenSource interface.
type TokenSourceFunc func() string

func (f TokenSourceFunc) Token() string { return f() }

// UnauthorizedHook is invoked once per 401 response on an authenticated
// call, before the error is returned. The session layer uses it to clear
// expired sessions process-wide.
type UnauthorizedHook func()

// Client talks to the studyhub backend API.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	userAgent      string
	tokenSource    TokenSource
	onUnauthorized UnauthorizedHook
	log            *slog.Logger
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient sets a custom http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout on the default http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithTokenSource sets the bearer token source for authenticated calls.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) {
		c.tokenSource = ts
	}
}

// OnUnauthorized registers the hook fired on 401 responses.
func OnUnauthorized(hook UnauthorizedHook) Option {
	return func(c *Client) {
		c.onUnauthorized = hook
	}
}

// WithLogger sets the logger for request diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// New creates a Client for the API at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		return nil, errors.New("apiclient: base URL is required")
	}

	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		userAgent:  "studyhub-go",
		log:        slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// request describes a single API call.
type request struct {
	method string
	path   string
	query  map[string]string
	body   io.Reader
	// contentType is set when body is present; defaults to JSON.
	contentType string
	// token overrides the token source; used during session restore when
	// the stored token is not yet the current one.
	token string
	// authenticated requests attach a bearer token and fire the
	// unauthorized hook on 401.
	authenticated bool
	// skipUnauthorizedHook suppresses the hook for calls that handle a
	// 401 locally (session verify during restore).
	skipUnauthorizedHook bool
}

// do executes the request and decodes a JSON response into out (if non-nil).
func (c *Client) do(ctx context.Context, req request, out any) error {
	httpReq, err := http.NewRequestWithContext(ctx, req.method, c.baseURL+req.path, req.body)
	if err != nil {
		return fmt.Errorf("apiclient: build request: %w", err)
	}

	if len(req.query) > 0 {
		q := httpReq.URL.Query()
		for k, v := range req.query {
			if v != "" {
				q.Set(k, v)
			}
		}
		httpReq.URL.RawQuery = q.Encode()
	}

	requestID := uuid.NewString()
	httpReq.Header.Set("X-Request-ID", requestID)
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set("Accept", "application/json")
	if req.body != nil {
		ct := req.contentType
		if ct == "" {
			ct = "application/json"
		}
		httpReq.Header.Set("Content-Type", ct)
	}

	if req.authenticated {
		token := req.token
		if token == "" && c.tokenSource != nil {
			token = c.tokenSource.Token()
		}
		if token == "" {
			return ErrNoToken
		}
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.log.Debug("request failed",
			slog.String("method", req.method),
			slog.String("path", req.path),
			logger.RequestID(requestID),
			logger.Error(err),
		)
		return &NetworkError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		err := c.errorFromResponse(resp, req)
		c.log.Debug("request rejected",
			slog.String("method", req.method),
			slog.String("path", req.path),
			slog.Int("status", resp.StatusCode),
			logger.RequestID(requestID),
			logger.Error(err),
		)
		return err
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("apiclient: decode response: %w", err)
	}

	return nil
}

// errorBody is the backend's error envelope.
type errorBody struct {
	Error  string              `json:"error"`
	Errors map[string][]string `json:"errors"`
}

// errorFromResponse maps an HTTP error response onto the package taxonomy.
func (c *Client) errorFromResponse(resp *http.Response, req request) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	var envelope errorBody
	_ = json.Unmarshal(body, &envelope)

	message := envelope.Error
	if message == "" {
		message = strings.TrimSpace(string(body))
	}
	if message == "" {
		message = resp.Status
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		if req.authenticated {
			if c.onUnauthorized != nil && !req.skipUnauthorizedHook {
				c.onUnauthorized()
			}
			return errors.Join(ErrUnauthorized, errors.New(message))
		}
		// 401 on login/register means bad credentials, not an expired session.
		return errors.Join(ErrInvalidCredentials, errors.New(message))

	case resp.StatusCode == http.StatusForbidden:
		return errors.Join(ErrForbidden, errors.New(message))

	case resp.StatusCode == http.StatusNotFound:
		return errors.Join(ErrNotFound, errors.New(message))

	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
		if len(envelope.Errors) > 0 {
			ve := NewValidationError()
			for field, messages := range envelope.Errors {
				for _, m := range messages {
					ve.Add(field, m)
				}
			}
			return ve
		}
		if !req.authenticated {
			return errors.Join(ErrInvalidCredentials, errors.New(message))
		}
		ve := NewValidationError()
		ve.Add("request", message)
		return ve

	case resp.StatusCode >= 500:
		return errors.Join(ErrServer, errors.New(message))

	default:
		return fmt.Errorf("apiclient: unexpected status %d: %s", resp.StatusCode, message)
	}
}

// jsonBody encodes v as a JSON request body.
func jsonBody(v any) (io.Reader, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		return nil, fmt.Errorf("apiclient: encode request: %w", err)
	}
	return &buf, nil
}
