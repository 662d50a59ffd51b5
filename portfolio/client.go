// Package portfolio talks to the portfolio site's contact and resume
// endpoints.
package portfolio

import (
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/harvinder-fsd/roster/client"
)

// Error is returned when the server rejects a request or a contact fails
// local validation (StatusCode 0).
type Error struct {
	Op         string
	StatusCode int
	Message    string
	Issues     []client.FieldIssue
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s", e.Op)
	if e.StatusCode > 0 {
		fmt.Fprintf(&b, ": HTTP %d", e.StatusCode)
	}
	if e.Message != "" {
		b.WriteString(": " + e.Message)
	}
	for _, is := range e.Issues {
		fmt.Fprintf(&b, "; %s: %s", is.Path, is.Message)
	}
	return b.String()
}

// Resume is a downloaded resume file.
type Resume struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Client wraps a resty client pointed at the portfolio service.
type Client struct {
	r *resty.Client
}

// Option configures a Client.
type Option func(*resty.Client)

// WithHTTPClient routes requests through hc.
func WithHTTPClient(hc *http.Client) Option {
	return func(r *resty.Client) {
		if hc.Transport != nil {
			r.SetTransport(hc.Transport)
		}
		if hc.Timeout > 0 {
			r.SetTimeout(hc.Timeout)
		}
	}
}

// WithToken sends token as a bearer credential. ListContacts needs an
// admin token when the service enforces auth.
func WithToken(token string) Option {
	return func(r *resty.Client) { r.SetAuthToken(token) }
}

// WithTimeout bounds every request.
func WithTimeout(d time.Duration) Option {
	return func(r *resty.Client) { r.SetTimeout(d) }
}

// New returns a Client for baseURL.
func New(baseURL string, opts ...Option) *Client {
	r := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Accept", "application/json").
		SetTimeout(30 * time.Second)
	for _, opt := range opts {
		opt(r)
	}
	return &Client{r: r}
}

// SubmitContact validates c locally, then posts it. It returns the id the
// server assigned.
func (c *Client) SubmitContact(ctx context.Context, in client.Contact) (int, error) {
	if issues := client.ValidateContact(in); len(issues) > 0 {
		return 0, &Error{Op: "submit contact", Message: "Validation error", Issues: issues}
	}
	resp, err := c.r.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(in).
		Post("/api/contact")
	if err != nil {
		return 0, fmt.Errorf("submit contact: %w", err)
	}

	var out client.ContactResponse
	decodeErr := json.Unmarshal(resp.Body(), &out)
	if resp.StatusCode() == http.StatusOK && decodeErr != nil {
		return 0, fmt.Errorf("submit contact: decode response: %w", decodeErr)
	}
	if resp.StatusCode() != http.StatusOK || !out.Success {
		return 0, &Error{Op: "submit contact", StatusCode: resp.StatusCode(), Message: out.Message, Issues: out.Errors}
	}
	if out.Contact == nil {
		return 0, &Error{Op: "submit contact", StatusCode: resp.StatusCode(), Message: "response carries no contact id"}
	}
	return out.Contact.ID, nil
}

// ListContacts returns stored submissions, newest first.
func (c *Client) ListContacts(ctx context.Context) ([]client.Contact, error) {
	resp, err := c.r.R().SetContext(ctx).Get("/api/contacts")
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, &Error{Op: "list contacts", StatusCode: resp.StatusCode(), Message: strings.TrimSpace(resp.String())}
	}
	var out []client.Contact
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("list contacts: decode response: %w", err)
	}
	return out, nil
}

// DownloadResume fetches the resume attachment.
func (c *Client) DownloadResume(ctx context.Context) (*Resume, error) {
	resp, err := c.r.R().SetContext(ctx).SetHeader("Accept", "*/*").Get("/api/resume/download")
	if err != nil {
		return nil, fmt.Errorf("download resume: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, &Error{Op: "download resume", StatusCode: resp.StatusCode(), Message: strings.TrimSpace(resp.String())}
	}
	res := &Resume{
		Filename:    "resume.txt",
		ContentType: resp.Header().Get("Content-Type"),
		Content:     resp.Body(),
	}
	if _, params, err := mime.ParseMediaType(resp.Header().Get("Content-Disposition")); err == nil && params["filename"] != "" {
		res.Filename = params["filename"]
	}
	return res, nil
}
