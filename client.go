package cryptocompare

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultTimeout bounds each call when WithTimeout is not given.
const DefaultTimeout = 5 * time.Second

// Wire names used by the service.
const (
	paramAppName  = "extraParams"
	fieldResponse = "Response"
	fieldMessage  = "Message"
	responseError = "Error"
)

// httpDoer abstracts the HTTP client for testing.
// *http.Client implements it.
type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Compile-time interface compliance check.
var _ httpDoer = (*http.Client)(nil)

// Client calls the CryptoCompare API. It holds no mutable state and is safe
// for concurrent use.
type Client struct {
	appName string
	timeout time.Duration
	baseURL string
	http    httpDoer
	logger  *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets how long a call may wait for a response.
// New rejects values <= 0.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(h httpDoer) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithBaseURL replaces BaseURL, e.g. to point at a test server or proxy.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithLogger sets a logger for per-call debug records. The default logger
// discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a Client. appName identifies the caller to the service and is
// sent with every request; it must not be blank.
func New(appName string, opts ...Option) (*Client, error) {
	c := &Client{
		appName: appName,
		timeout: DefaultTimeout,
		baseURL: BaseURL,
		http:    &http.Client{},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if strings.TrimSpace(c.appName) == "" {
		return nil, fmt.Errorf("application name is empty: %w", ErrInvalidConfig)
	}
	if c.timeout <= 0 {
		return nil, fmt.Errorf("timeout must be positive, got %s: %w", c.timeout, ErrInvalidConfig)
	}
	return c, nil
}

// AppName returns the application name sent as extraParams.
func (c *Client) AppName() string { return c.appName }

// Timeout returns the per-call timeout.
func (c *Client) Timeout() time.Duration { return c.timeout }

// get is the single dispatch routine every public method goes through.
// It performs exactly one GET and never retries.
func (c *Client) get(ctx context.Context, id EndpointID, p *params) (any, error) {
	ep, ok := Lookup(id)
	if !ok {
		return nil, fmt.Errorf("%s: %w", id, ErrUnknownEndpoint)
	}
	p.set(paramAppName, c.appName)

	start := time.Now()
	v, status, err := c.do(ctx, ep, p)

	fields := []zap.Field{
		zap.Stringer("endpoint", id),
		zap.String("group", string(ep.Group)),
		zap.Int("status", status),
		zap.Duration("elapsed", time.Since(start)),
	}
	if err != nil {
		c.logger.Debug("request failed", append(fields, zap.Error(err))...)
		return nil, err
	}
	c.logger.Debug("request", fields...)
	return v, nil
}

// do returns the decoded payload and the HTTP status (0 without a response).
func (c *Client) do(ctx context.Context, ep Endpoint, p *params) (any, int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	url := c.baseURL + ep.Path + "?" + p.encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: failed to create request: %w", ep.ID, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, c.classifyError(ctx, ep.ID, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		status := resp.Status
		if status == "" {
			status = fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
		}
		return nil, resp.StatusCode, &TransportError{
			Endpoint:   ep.ID,
			StatusCode: resp.StatusCode,
			Status:     status,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, c.classifyError(ctx, ep.ID, err)
	}

	v, err := decode(body)
	if err != nil {
		return nil, resp.StatusCode, &DecodeError{Endpoint: ep.ID, Err: err}
	}

	if msg, failed := serviceFailure(v); failed {
		return nil, resp.StatusCode, &ServiceError{Endpoint: ep.ID, Message: msg}
	}

	return v, resp.StatusCode, nil
}

// classifyError maps a failure without a usable response to the taxonomy.
// Cancellation by the caller stays unclassified.
func (c *Client) classifyError(ctx context.Context, id EndpointID, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return fmt.Errorf("%s: %w", id, ctx.Err())
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &TimeoutError{Endpoint: id, Timeout: c.timeout, Err: err}
	}

	return &TransportError{Endpoint: id, Err: err}
}

// decode parses body into maps, slices and json.Number values.
func decode(body []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after JSON value")
	}
	return v, nil
}

// serviceFailure reports whether v is an error payload and returns its
// message.
func serviceFailure(v any) (string, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return "", false
	}
	if r, _ := m[fieldResponse].(string); r != responseError {
		return "", false
	}
	msg, _ := m[fieldMessage].(string)
	return msg, true
}
