package client

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
	"sync"
	"time"

	"github.com/dmitrijs2005/agentsynergy/internal/client/credentials"
	"github.com/dmitrijs2005/agentsynergy/internal/client/models"
	"github.com/dmitrijs2005/agentsynergy/internal/common"
	"github.com/dmitrijs2005/agentsynergy/internal/logging"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultTimeout     = 10 * time.Second
	DefaultRefreshPath = "/auth/refresh"
	HealthPath         = "/health"

	maxErrorBody = 64 << 10
)

// Request describes one logical API call. Path is relative to the API
// prefix. Anonymous requests carry no token and are never refreshed.
type Request struct {
	Method    string
	Path      string
	Body      any
	Query     url.Values
	Anonymous bool
}

// CredentialsClearedHandler is called after an unrecoverable 401 wiped the
// persisted credentials.
type CredentialsClearedHandler func(ctx context.Context)

// Client talks JSON to the backend. Create it with New.
type Client struct {
	baseURL     *url.URL
	prefix      string
	refreshPath string
	timeout     time.Duration
	tracing     bool

	base    http.RoundTripper
	next    http.RoundTripper
	http    *http.Client
	creds   *credentials.Store
	logger  logging.Logger
	metrics *Metrics

	refreshGroup singleflight.Group

	hooksMu sync.RWMutex
	hooks   []CredentialsClearedHandler
}

type Option func(*Client)

// WithAPIPrefix overrides the "/api/v1" prefix.
func WithAPIPrefix(prefix string) Option {
	return func(c *Client) { c.prefix = strings.TrimRight(prefix, "/") }
}

func WithRefreshPath(path string) Option {
	return func(c *Client) { c.refreshPath = path }
}

// WithTimeout bounds each HTTP round trip, including a refresh replay.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithTransport replaces the base transport (http.DefaultTransport).
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) { c.base = rt }
}

func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithTracing wraps the base transport with otelhttp spans.
func WithTracing() Option {
	return func(c *Client) { c.tracing = true }
}

// New builds a Client for baseURL (e.g. "http://localhost:8000").
func New(baseURL string, creds *credentials.Store, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("parse base URL: unsupported scheme %q", u.Scheme)
	}

	c := &Client{
		baseURL:     u,
		prefix:      common.APIPrefix,
		refreshPath: DefaultRefreshPath,
		timeout:     DefaultTimeout,
		base:        http.DefaultTransport,
		creds:       creds,
		logger:      logging.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	next := c.base
	if c.tracing {
		next = otelhttp.NewTransport(next)
	}
	c.next = c.metrics.instrument(next)
	c.http = &http.Client{
		Transport: &authTransport{client: c, next: c.next},
		Timeout:   c.timeout,
	}
	return c, nil
}

// OnCredentialsCleared registers h. Handlers run in registration order.
func (c *Client) OnCredentialsCleared(h CredentialsClearedHandler) {
	c.hooksMu.Lock()
	defer c.hooksMu.Unlock()
	c.hooks = append(c.hooks, h)
}

// Credentials exposes the store the client reads tokens from.
func (c *Client) Credentials() *credentials.Store {
	return c.creds
}

// Do sends r and decodes a 2xx JSON body into out (which may be nil).
func (c *Client) Do(ctx context.Context, r *Request, out any) error {
	body, status, err := c.send(ctx, r, c.prefix)
	if err != nil {
		return err
	}
	return decode(status, body, out)
}

// Raw is Do without decoding; the body is returned as-is.
func (c *Client) Raw(ctx context.Context, r *Request) (json.RawMessage, error) {
	body, _, err := c.send(ctx, r, c.prefix)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}

// Ping calls GET /health outside the API prefix.
func (c *Client) Ping(ctx context.Context) (*models.HealthStatus, error) {
	body, status, err := c.send(ctx, &Request{Method: http.MethodGet, Path: HealthPath, Anonymous: true}, "")
	if err != nil {
		return nil, err
	}
	var h models.HealthStatus
	if err := decode(status, body, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

func (c *Client) url(prefix, path string, q url.Values) string {
	u := *c.baseURL
	u.Path = c.baseURL.Path + prefix + "/" + strings.TrimLeft(path, "/")
	if len(q) > 0 {
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// sameOrigin reports whether u points at the configured backend.
func (c *Client) sameOrigin(u *url.URL) bool {
	return strings.EqualFold(u.Scheme, c.baseURL.Scheme) && strings.EqualFold(u.Host, c.baseURL.Host)
}

func (c *Client) send(ctx context.Context, r *Request, prefix string) ([]byte, int, error) {
	method := r.Method
	if method == "" {
		method = http.MethodGet
	}
	target := c.url(prefix, r.Path, r.Query)

	var payload io.Reader
	if r.Body != nil {
		b, err := json.Marshal(r.Body)
		if err != nil {
			return nil, 0, fmt.Errorf("encode request body: %w", err)
		}
		payload = bytes.NewReader(b)
	}

	st := &attempt{anonymous: r.Anonymous}
	req, err := http.NewRequestWithContext(withAttempt(ctx, st), method, target, payload)
	if err != nil {
		return nil, 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	reqID := uuid.NewString()
	req.Header.Set(common.RequestIDHeaderName, reqID)

	log := c.logger.With("method", method, "path", r.Path, "request_id", reqID)
	started := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, 0, fmt.Errorf("%s %s: %w", method, r.Path, ctxErr)
		}
		var storeErr *credentialsError
		if errors.As(err, &storeErr) {
			return nil, 0, storeErr.Err
		}
		log.Warn(ctx, "request failed", "error", err)
		return nil, 0, &NetworkError{Method: method, URL: target, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, &NetworkError{Method: method, URL: target, Err: fmt.Errorf("read body: %w", err)}
	}
	log.Debug(ctx, "request done", "status", resp.StatusCode, "retried", st.retried, "elapsed", time.Since(started))

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return body, resp.StatusCode, nil
	}

	httpErr := &HTTPError{Status: resp.StatusCode, Detail: detail(body), Body: truncate(body)}
	if resp.StatusCode == http.StatusUnauthorized && !r.Anonymous {
		return nil, resp.StatusCode, &AuthExpiredError{Response: httpErr, Cause: st.refreshErr}
	}
	return nil, resp.StatusCode, httpErr
}

func decode(status int, body []byte, out any) error {
	if out == nil || status == http.StatusNoContent || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &DecodeError{Status: status, Err: err}
	}
	return nil
}

// detail extracts the backend's "detail" field. Validation errors carry a
// list there; it is returned as compact JSON.
func detail(body []byte) string {
	var e struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &e); err != nil || len(e.Detail) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(e.Detail, &s); err == nil {
		return s
	}
	return string(e.Detail)
}

func truncate(b []byte) []byte {
	if len(b) > maxErrorBody {
		return b[:maxErrorBody]
	}
	return b
}
