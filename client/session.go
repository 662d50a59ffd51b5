package client

import (
	"net/http"
	"sync"

	sdkerrors "github.com/harvinder-fsd/roster/client/internal/errors"
)

// ErrSignedOut is returned by every call made through a Session after SignOut.
// Such errors are irrecoverable.
var ErrSignedOut = sdkerrors.ErrSignedOut

// Session is an authenticated identity. It replaces any process-wide
// "current user": callers hold it explicitly and pass it where needed.
type Session struct {
	User User

	mu    sync.RWMutex
	token string
	done  bool

	http *http.Client
}

func newSession(c *Client, token string, u User) *Session {
	s := &Session{User: u, token: token}
	s.http = &http.Client{
		Timeout:   c.http.Timeout,
		Transport: &bearerTransport{base: c.http.Transport, sess: s},
	}
	return s
}

// Token returns the bearer token, or "" once signed out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// SignedOut reports whether SignOut has been called.
func (s *Session) SignedOut() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.done
}

// SignOut destroys the session. Safe to call multiple times.
func (s *Session) SignOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.done = true
}

// bearerTransport adds the session's Authorization header to every request.
type bearerTransport struct {
	base http.RoundTripper
	sess *Session
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.sess.mu.RLock()
	token, done := t.sess.token, t.sess.done
	t.sess.mu.RUnlock()
	if done {
		if req.Body != nil {
			_ = req.Body.Close()
		}
		return nil, ErrSignedOut
	}
	// Clone the request to avoid modifying the original
	cloned := req.Clone(req.Context())
	cloned.Header.Set("Authorization", "Bearer "+token)
	return t.base.RoundTrip(cloned)
}
