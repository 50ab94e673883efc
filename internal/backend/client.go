// Package backend is the single outbound gateway to the marketplace API. All
// business logic (validation, persistence, authentication, image storage)
// lives on the other side of it; this package only shapes requests, attaches
// the right bearer token and surfaces the backend's error messages.
package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
)

// Scope states the caller's authorization intent for one request. Exactly one
// token (or none) is attached, chosen here and nowhere else. New endpoints
// must declare their scope explicitly instead of relying on path naming.
type Scope int

const (
	ScopeNone Scope = iota
	ScopeSession
	ScopeAdmin
)

// Credentials is a read-only snapshot of the two stored tokens, taken from the
// credential store at the start of a page request.
type Credentials struct {
	Session string
	Admin   string
}

func (c Credentials) forScope(scope Scope) string {
	switch scope {
	case ScopeSession:
		return c.Session
	case ScopeAdmin:
		return c.Admin
	default:
		return ""
	}
}

// APIError carries a backend-reported failure: the HTTP status and the message
// from the response body when one was provided.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend: %s (status %d)", e.Message, e.Status)
}

// IsAuthError reports whether err is a backend rejection of the presented
// token. Contexts treat it as implicit expiry.
func IsAuthError(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden
	}
	return false
}

// ErrorMessage extracts the backend's message for inline display, or returns
// fallback for transport failures and unstructured errors.
func ErrorMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

type wireError struct {
	Error string `json:"error"`
}

type Client struct {
	http *resty.Client
}

// NewClient builds a client for the backend base URL, e.g.
// "http://localhost:5000". All endpoints live under its /api prefix.
func NewClient(baseURL string) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL + "/api").
		SetHeader("Accept", "application/json")
	return &Client{http: httpClient}
}

// do sends one request with the token selected by scope. Callers never retry;
// a 4xx/5xx becomes an *APIError and a transport failure is wrapped as-is.
func (c *Client) do(ctx context.Context, scope Scope, creds Credentials, method, path string, body, out any) error {
	req := c.http.R().SetContext(ctx)

	if token := creds.forScope(scope); token != "" {
		req.SetAuthToken(token)
	}
	if body != nil {
		req.SetBody(body)
	}
	if out != nil {
		req.SetResult(out)
	}
	var wire wireError
	req.SetError(&wire)

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("backend %s %s: %w", method, path, err)
	}
	if resp.IsError() {
		msg := wire.Error
		if msg == "" {
			msg = http.StatusText(resp.StatusCode())
		}
		return &APIError{Status: resp.StatusCode(), Message: msg}
	}
	return nil
}
