package backend

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

	"go.uber.org/zap"

	apperrors "github.com/youths4change/webgate/pkg/errors"
	"github.com/youths4change/webgate/pkg/logger"
	"github.com/youths4change/webgate/pkg/metrics"
)

// DefaultTimeout bounds every backend request end to end.
const DefaultTimeout = 30 * time.Second

type contextKey string

const sessionCookieKey contextKey = "backend.sessionCookie"

// WithSessionCookie returns a context carrying the browser's session cookie
// header so backend calls made on behalf of that request stay authenticated.
func WithSessionCookie(ctx context.Context, cookie string) context.Context {
	cookie = strings.TrimSpace(cookie)
	if cookie == "" {
		return ctx
	}
	return context.WithValue(ctx, sessionCookieKey, cookie)
}

func sessionCookie(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	cookie, _ := ctx.Value(sessionCookieKey).(string)
	return cookie
}

// Client talks to the organisation's REST backend. Reads go through the
// response cache; writes pass through and leave invalidation to the caller,
// who knows which resources the mutation touched.
type Client struct {
	baseURL string
	http    *http.Client
	cache   Store
	log     *zap.Logger
}

// Option mutates client construction.
type Option func(*Client)

// WithTimeout overrides the request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.http.Timeout = timeout
		}
	}
}

// WithHTTPClient swaps the underlying http.Client (used by tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// New constructs a backend client. A nil cache disables response caching
// entirely, which no production caller should want.
func New(baseURL string, cache Store, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("backend: base URL is required")
	}
	if cache == nil {
		return nil, errors.New("backend: cache store is required")
	}

	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: DefaultTimeout},
		cache:   cache,
		log:     logger.WithModule("backend"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// CacheKey derives the cache identity for a read: the path plus a stable
// serialisation of its query parameters. url.Values.Encode sorts by key, so
// equivalent parameter sets always map to the same entry.
func CacheKey(path string, params url.Values) string {
	if len(params) == 0 {
		return path
	}
	return path + "?" + params.Encode()
}

// Get performs a cached read. A fresh cache entry is returned without touching
// the network; otherwise the real request runs and, on success, its payload is
// stored under the key before being returned. Failed requests are never
// cached. Concurrent misses for the same key are not coalesced; each one hits
// the backend.
func (c *Client) Get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	key := CacheKey(path, params)

	if payload, ok := c.cache.Get(key); ok {
		metrics.CacheLookups.WithLabelValues("hit").Inc()
		return payload, nil
	}
	metrics.CacheLookups.WithLabelValues("miss").Inc()

	payload, err := c.do(ctx, http.MethodGet, key, nil)
	if err != nil {
		return nil, err
	}

	c.cache.Set(key, payload)
	return payload, nil
}

// Post sends a JSON body to the backend and returns the raw response payload.
func (c *Client) Post(ctx context.Context, path string, body interface{}) ([]byte, error) {
	return c.write(ctx, http.MethodPost, path, body)
}

// Put sends a JSON body to the backend and returns the raw response payload.
func (c *Client) Put(ctx context.Context, path string, body interface{}) ([]byte, error) {
	return c.write(ctx, http.MethodPut, path, body)
}

// Delete issues a DELETE and returns the raw response payload.
func (c *Client) Delete(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodDelete, path, nil)
}

// Invalidate drops the exact cache entry for path and every parameterised
// variant stored under it.
func (c *Client) Invalidate(path string) {
	c.cache.Invalidate(path)
}

// ClearCache drops every cached response. Used on admin logout.
func (c *Client) ClearCache() {
	c.cache.ClearAll()
}

// Forward relays a request to the backend verbatim, bypassing the cache and
// envelope handling. Auth routes use it so session cookies set by the backend
// reach the browser untouched. The caller owns the response body.
func (c *Client) Forward(ctx context.Context, method, path string, body io.Reader, header http.Header) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, apperrors.ErrInternalServer.WithInternal(err)
	}
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	if req.Header.Get("Content-Type") == "" && body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.BackendRequests.WithLabelValues(method, "error").Inc()
		return nil, c.transportError(method, path, err)
	}
	metrics.BackendRequests.WithLabelValues(method, "ok").Inc()
	return resp, nil
}

func (c *Client) write(ctx context.Context, method, path string, body interface{}) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, apperrors.ErrInternalServer.WithInternal(err)
		}
		reader = bytes.NewReader(encoded)
	}
	return c.do(ctx, method, path, reader)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, apperrors.ErrInternalServer.WithInternal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if cookie := sessionCookie(ctx); cookie != "" {
		req.Header.Set("Cookie", cookie)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.BackendRequests.WithLabelValues(method, "error").Inc()
		return nil, c.transportError(method, path, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.BackendRequests.WithLabelValues(method, "error").Inc()
		return nil, apperrors.ErrUpstream.WithInternal(err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		metrics.BackendRequests.WithLabelValues(method, "error").Inc()
		message := upstreamMessage(payload)
		c.log.Warn("backend error",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return nil, apperrors.NewUpstream(resp.StatusCode, message, fmt.Errorf("backend returned %d", resp.StatusCode))
	}

	metrics.BackendRequests.WithLabelValues(method, "ok").Inc()
	return payload, nil
}

func (c *Client) transportError(method, path string, err error) error {
	c.log.Warn("backend unreachable",
		zap.String("method", method),
		zap.String("path", path),
		zap.Error(err),
	)
	if isTimeout(err) {
		return apperrors.ErrUpstreamTimeout.WithInternal(err)
	}
	return apperrors.ErrUpstream.WithInternal(err)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}

// upstreamMessage extracts the backend's error string from a failure payload.
func upstreamMessage(payload []byte) string {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return ""
	}
	if body.Error != "" {
		return body.Error
	}
	return body.Message
}

// Envelope is the backend's standard response wrapper.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
	Count   int             `json:"count"`
}

// DecodeData unwraps an enveloped payload into out. A payload with
// success=false is reported as an upstream error carrying the backend message.
func DecodeData(payload []byte, out interface{}) error {
	var env Envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return apperrors.ErrUpstream.WithInternal(err)
	}
	if !env.Success {
		return apperrors.NewUpstream(http.StatusBadGateway, env.Error, errors.New("backend reported failure"))
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return apperrors.ErrUpstream.WithInternal(err)
	}
	return nil
}
