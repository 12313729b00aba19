// Package client talks to the assistant backend: the streaming /api/chat
// exchange, conversation history CRUD, and knowledge-base uploads.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client is a handle on one backend. It is safe for concurrent use; the
// single-flight guard applies to streaming sends only.
type Client struct {
	httpc     *http.Client
	logger    *slog.Logger
	baseURL   string
	recordDir string
	chunkSize int
	sends     sendGuard
}

// Option is a functional option for configuring a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client. The default has no
// timeout, since a streaming response stays open for the whole answer.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpc = h }
}

// WithLogger sets the logger for per-line decode diagnostics. The default
// discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithRecordingDir enables JSONL recording of completed exchanges under dir.
func WithRecordingDir(dir string) Option {
	return func(c *Client) { c.recordDir = dir }
}

// WithChunkSize sets the read buffer size for the stream loop. Mainly for
// tests that want to force tiny chunks.
func WithChunkSize(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.chunkSize = n
		}
	}
}

// New creates a Client for the backend at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		httpc:     &http.Client{},
		logger:    slog.New(slog.DiscardHandler),
		chunkSize: 4096,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// endpoint joins the base URL with an API path.
func (c *Client) endpoint(path string) string {
	return c.baseURL + path
}

// Health checks GET /api/health.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("/api/health"), nil)
	if err != nil {
		return err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return newAPIError(resp)
	}
	return nil
}

// postJSON issues a JSON POST and decodes a JSON response into out.
func (c *Client) postJSON(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path), bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// getJSON issues a GET and decodes a JSON response into out.
func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(path), nil)
	if err != nil {
		return err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(resp)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// newAPIError drains an error response into an *APIError. FastAPI wraps
// error text as {"detail": "..."}; fall back to the raw body otherwise.
func newAPIError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 8192))
	detail := strings.TrimSpace(string(body))
	var wrapped struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil && wrapped.Detail != "" {
		detail = wrapped.Detail
	}
	return &APIError{StatusCode: resp.StatusCode, Detail: detail}
}

// ValidateBaseURL reports whether raw parses as an absolute http(s) URL.
// Callers building a Client from user-supplied configuration should check
// this first; New itself does not reject bad URLs.
func ValidateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid base URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return fmt.Errorf("invalid base URL %q: need absolute http(s) URL", raw)
	}
	return nil
}

// decodeJSON decodes a response body into out.
func decodeJSON(r io.Reader, out interface{}) error {
	return json.NewDecoder(r).Decode(out)
}

// marshalJSON renders v as a request body reader.
func marshalJSON(v interface{}) (io.Reader, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(payload), nil
}

// now is swappable in tests.
var now = time.Now
