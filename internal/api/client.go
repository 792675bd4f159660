package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/storehub-console/pkg/config"
	pkgerrors "github.com/angelmondragon/storehub-console/pkg/errors"
	"github.com/angelmondragon/storehub-console/pkg/logger"
	"github.com/angelmondragon/storehub-console/pkg/metrics"
)

// TokenSource supplies the bearer token attached to each request. The
// session store satisfies it; the token is re-read per request so a logout
// takes effect immediately.
type TokenSource interface {
	Token() string
}

// Client is the shared HTTP core every resource wrapper calls through. It
// owns the base URL, auth header injection, JSON codec, request ids, and
// error mapping. It never retries and never caches.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	logg    *logger.Logger
	metrics *metrics.ClientMetrics
}

// NewClient wires the core against the configured backend.
func NewClient(cfg config.APIConfig, tokens TokenSource, logg *logger.Logger, m *metrics.ClientMetrics) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("api base url is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: base,
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		logg:    logg,
		metrics: m,
	}, nil
}

// Get issues a GET and decodes the response body into out.
func (c *Client) Get(ctx context.Context, resource, path string, query url.Values, out any) error {
	return c.do(ctx, resource, http.MethodGet, path, query, nil, out)
}

// Post issues a POST with a JSON body.
func (c *Client) Post(ctx context.Context, resource, path string, body, out any) error {
	return c.do(ctx, resource, http.MethodPost, path, nil, body, out)
}

// Put issues a PUT with a JSON body.
func (c *Client) Put(ctx context.Context, resource, path string, body, out any) error {
	return c.do(ctx, resource, http.MethodPut, path, nil, body, out)
}

// Delete issues a DELETE.
func (c *Client) Delete(ctx context.Context, resource, path string, out any) error {
	return c.do(ctx, resource, http.MethodDelete, path, nil, nil, out)
}

// Stream issues a GET and copies the raw response body to w, for endpoints
// that return files rather than JSON.
func (c *Client) Stream(ctx context.Context, resource, path string, query url.Values, w io.Writer) error {
	started := time.Now()
	resp, err := c.send(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		c.observe(resource, "error", started)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.observe(resource, "error", started)
		return c.errorFromResponse(resp)
	}
	if _, err := io.Copy(w, resp.Body); err != nil {
		c.observe(resource, "error", started)
		return pkgerrors.Wrap(pkgerrors.CodeTransport, err, "")
	}
	c.observe(resource, "success", started)
	return nil
}

func (c *Client) do(ctx context.Context, resource, method, path string, query url.Values, body, out any) error {
	started := time.Now()
	resp, err := c.send(ctx, method, path, query, body)
	if err != nil {
		c.observe(resource, "error", started)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.observe(resource, "error", started)
		return c.errorFromResponse(resp)
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			c.observe(resource, "error", started)
			return pkgerrors.Wrap(pkgerrors.CodeDecode, err, "")
		}
	}
	c.observe(resource, "success", started)
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, body any) (*http.Response, error) {
	target := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding request body")
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "building request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if c.logg != nil {
			c.logg.Warn(ctx, fmt.Sprintf("%s %s failed: %v", method, path, err))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeTransport, err, "")
	}
	return resp, nil
}

// errorFromResponse prefers the server-supplied message field; the typed
// error falls back to the category's public message when none is present.
func (c *Client) errorFromResponse(resp *http.Response) error {
	code := pkgerrors.FromStatus(resp.StatusCode)

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return pkgerrors.New(code, "")
	}

	var body struct {
		Message string `json:"message"`
		Error   struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	message := ""
	if err := json.Unmarshal(payload, &body); err == nil {
		message = strings.TrimSpace(body.Message)
		if message == "" {
			message = strings.TrimSpace(body.Error.Message)
		}
	}
	return pkgerrors.New(code, message)
}

func (c *Client) observe(resource, outcome string, started time.Time) {
	c.metrics.ObserveRequest(resource, outcome, time.Since(started))
}
