package gateway

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
	"golang.org/x/sync/singleflight"

	"github.com/goliatone/go-plantilla/pkg/gateway/contract"
	"github.com/goliatone/go-plantilla/pkg/model"
)

var (
	// ErrUnreachable wraps transport failures: the gateway could not be
	// contacted at all.
	ErrUnreachable = errors.New("gateway: unreachable")
	// ErrMalformedResponse is returned when a response body is not JSON or
	// does not have the expected shape.
	ErrMalformedResponse = errors.New("gateway: malformed response")
)

// StatusError reports a non-2xx answer from the gateway.
type StatusError struct {
	Code int
	URL  string
}

func (e StatusError) Error() string {
	return fmt.Sprintf("gateway: %s answered %d %s", e.URL, e.StatusCode(), http.StatusText(e.StatusCode()))
}

// StatusCode returns the HTTP status, defaulting to 500.
func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient injects the http.Client used for every call.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

// WithRoutes overrides the routes resolved from the embedded contract.
func WithRoutes(routes contract.Routes) Option {
	return func(c *Client) {
		c.routes = &routes
	}
}

// WithTimeout bounds every call. Zero keeps calls unbounded.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Client talks to the persona routes exposed by the API gateway.
type Client struct {
	base    *url.URL
	http    *http.Client
	routes  *contract.Routes
	timeout time.Duration
	logger  *zap.Logger
	reads   singleflight.Group
}

// New constructs a Client for the gateway rooted at baseURL.
func New(baseURL string, options ...Option) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, errors.New("gateway: base url is required")
	}
	base, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("gateway: parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("gateway: base url %q must be absolute", baseURL)
	}

	c := &Client{
		base:   base,
		http:   http.DefaultClient,
		logger: zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}

	if c.routes == nil {
		routes, err := contract.Default()
		if err != nil {
			return nil, fmt.Errorf("gateway: resolve routes: %w", err)
		}
		c.routes = &routes
	}
	return c, nil
}

// Routes returns the routes in use.
func (c *Client) Routes() contract.Routes {
	return *c.routes
}

// BaseURL returns the gateway root.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// Info downloads a DownloadedInfo envelope from route. Valid JSON that is
// not an object decodes into an info value with no fields.
func (c *Client) Info(ctx context.Context, route contract.Route) (model.DownloadedInfo, error) {
	body, err := c.read(ctx, route.Expand())
	if err != nil {
		return model.DownloadedInfo{}, err
	}
	if !json.Valid(body) {
		return model.DownloadedInfo{}, fmt.Errorf("%w: %s", ErrMalformedResponse, route.Path)
	}
	return model.DecodeInfo(body), nil
}

// Home downloads the home page info.
func (c *Client) Home(ctx context.Context) (model.DownloadedInfo, error) {
	return c.Info(ctx, c.routes.Home)
}

// About downloads the about page info.
func (c *Client) About(ctx context.Context) (model.DownloadedInfo, error) {
	return c.Info(ctx, c.routes.About)
}

// All downloads every persona. The gateway wraps them as {"data": [...]}.
func (c *Client) All(ctx context.Context) ([]model.Record, error) {
	body, err := c.read(ctx, c.routes.All.Expand())
	if err != nil {
		return nil, err
	}
	var envelope struct {
		Data []model.Record `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedResponse, c.routes.All.Path, err)
	}
	return envelope.Data, nil
}

// ByID downloads a single persona.
func (c *Client) ByID(ctx context.Context, id string) (model.Record, error) {
	route := c.routes.ByID
	body, err := c.read(ctx, route.Expand(id))
	if err != nil {
		return model.Record{}, err
	}
	var record model.Record
	if err := json.Unmarshal(body, &record); err != nil {
		return model.Record{}, fmt.Errorf("%w: %s: %v", ErrMalformedResponse, route.Path, err)
	}
	return record, nil
}

// SetAll sends every editable field of a persona. The response body is
// drained but not interpreted.
func (c *Client) SetAll(ctx context.Context, payload Payload) error {
	if payload.ID() == "" {
		return errors.New("gateway: payload is missing the persona id")
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("gateway: encode payload: %w", err)
	}
	route := c.routes.SetAll
	_, err = c.do(ctx, route.Method, route.Expand(), data)
	return err
}

// read collapses concurrent GETs of the same path. The shared request
// outlives any single caller's cancellation and is bounded by the client
// timeout only; each caller still stops waiting when its own ctx ends.
func (c *Client) read(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, c.abandoned(path, err)
	}
	shared := context.WithoutCancel(ctx)
	ch := c.reads.DoChan(path, func() (any, error) {
		return c.do(shared, http.MethodGet, path, nil)
	})
	select {
	case <-ctx.Done():
		return nil, c.abandoned(path, ctx.Err())
	case res := <-ch:
		if res.Shared {
			c.logger.Debug("gateway read shared", zap.String("path", path))
		}
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	}
}

func (c *Client) abandoned(path string, err error) error {
	return fmt.Errorf("%w: %s %s: %w", ErrUnreachable, http.MethodGet, c.base.String()+path, err)
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	target := c.base.String() + path

	reqCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(reqCtx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("gateway: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("gateway request failed",
			zap.String("method", method),
			zap.String("url", target),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %s %s: %w", ErrUnreachable, method, target, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("gateway: read %s: %w", target, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("gateway answered with an error status",
			zap.String("method", method),
			zap.String("url", target),
			zap.Int("status", resp.StatusCode),
		)
		return nil, StatusError{Code: resp.StatusCode, URL: target}
	}
	c.logger.Debug("gateway request done",
		zap.String("method", method),
		zap.String("url", target),
		zap.Int("bytes", len(data)),
	)
	return data, nil
}
