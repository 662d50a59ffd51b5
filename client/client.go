// Package client is the Go SDK for the student-records service. It provides
// the remote half of a synchronised student collection: a StudentResource
// implements collection.Remote and is normally driven through a
// collection.Reconciler.
package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/harvinder-fsd/roster/client/internal/api"
	"github.com/harvinder-fsd/roster/client/internal/types"
)

// Client holds the connection settings shared by every session.
type Client struct {
	baseURL string
	http    *http.Client

	closedOnce uint32 // ensures Close is idempotent
}

// New constructs a Client for the service at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		return nil, fmt.Errorf("baseURL cannot be empty")
	}

	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	c.wrapTransportWithMetrics()
	return c, nil
}

// BaseURL returns the service root the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) wrapTransportWithMetrics() {
	base := c.http.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	c.http.Transport = &metricsTransport{base: base}
}

// Close releases idle connections. Safe to call multiple times.
func (c *Client) Close() error {
	if !atomic.CompareAndSwapUint32(&c.closedOnce, 0, 1) {
		return nil
	}
	c.http.CloseIdleConnections()
	return nil
}

// SignIn exchanges credentials for a Session. Calls made through the session
// carry its bearer token until SignOut.
func (c *Client) SignIn(ctx context.Context, username, password string) (*Session, error) {
	resp, err := api.Login(ctx, c.http, c.baseURL, types.LoginRequest{Username: username, Password: password})
	if err != nil {
		return nil, err
	}
	return newSession(c, resp.Token, resp.User), nil
}

// RestoreSession rebuilds a Session from a token obtained by an earlier
// SignIn. The token is not checked until the first call.
func (c *Client) RestoreSession(token string, u User) *Session {
	return newSession(c, token, u)
}

// ListUsers returns all accounts. Passwords are never included.
func (c *Client) ListUsers(ctx context.Context, sess *Session) ([]User, error) {
	return api.ListUsers(ctx, c.httpFor(sess), c.baseURL)
}

// Students binds the student resource to sess. A nil session sends
// unauthenticated requests.
func (c *Client) Students(sess *Session) *StudentResource {
	return &StudentResource{baseURL: c.baseURL, http: c.httpFor(sess)}
}

func (c *Client) httpFor(sess *Session) *http.Client {
	if sess == nil {
		return c.http
	}
	return sess.http
}
