// Package api talks to the appointments REST backend.
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

	"hospitron/config"
	"hospitron/pkg/response"

	"github.com/sirupsen/logrus"
)

const defaultTimeout = 10 * time.Second

// TokenSource returns the bearer token to forward for the request in ctx, or "".
type TokenSource func(ctx context.Context) string

type Option func(*Client)

// WithTokenSource forwards a bearer token on every request.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) {
		c.tokenSource = ts
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

type Client struct {
	baseURL     string
	httpClient  *http.Client
	log         *logrus.Logger
	tokenSource TokenSource
}

func NewClient(cfg config.APIConfig, log *logrus.Logger, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do performs one round trip and decodes the backend envelope.
// A reply with success=false but a 2xx status is returned without error.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body interface{}) (*response.Envelope, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, &ValidationError{Field: "body", Reason: err.Error()}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, &ValidationError{Field: "request", Reason: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.tokenSource != nil {
		if token := c.tokenSource(ctx); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.WithFields(logrus.Fields{
			"method": method,
			"path":   path,
		}).Warnf("Backend request failed: %v", err)
		return nil, &TransportError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Method: method, Path: path, Err: err}
	}

	c.logStatus(method, path, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Message:    envelopeMessage(raw),
		}
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return &response.Envelope{Success: true}, nil
	}

	var env response.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	return &env, nil
}

func (c *Client) logStatus(method, path string, status int, elapsed time.Duration) {
	entry := c.log.WithFields(logrus.Fields{
		"method":   method,
		"path":     path,
		"status":   status,
		"duration": elapsed.String(),
	})

	switch {
	case status == http.StatusUnauthorized:
		entry.Warn("Unauthorized access")
	case status == http.StatusForbidden:
		entry.Warn("Forbidden access")
	case status >= http.StatusInternalServerError:
		entry.Errorf("Server error: %d", status)
	default:
		entry.Debug("Backend request completed")
	}
}

func envelopeMessage(raw []byte) string {
	var env struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return ""
	}
	if env.Message != "" {
		return env.Message
	}
	return env.Error
}

// PathEscape builds a path from fixed segments and escaped identifiers, e.g.
// PathEscape("/appointments/doctor/%s/upcoming", id).
func PathEscape(format string, ids ...string) string {
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = url.PathEscape(id)
	}
	return fmt.Sprintf(format, args...)
}

// IsCanceled reports whether err came from a cancelled or expired context.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
