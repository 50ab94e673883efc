// Package credentials persists the two bearer tokens (portal session and
// admin) in independent cookie sessions. It is a plain key-value shim: no
// expiry, no validation. A cookie that fails to decode reads as "no token",
// and writes are best-effort so storage trouble never takes down a page.
package credentials

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/KoderSpark/lux-coin-frontend/internal/backend"
)

// Kind selects which of the two tokens an operation targets.
type Kind string

const (
	Session Kind = "session"
	Admin   Kind = "admin"
)

const tokenKey = "token"

func cookieName(kind Kind) string {
	if kind == Admin {
		return "lux-admin"
	}
	return "lux-portal"
}

type Store struct {
	cookies *sessions.CookieStore
}

func NewStore(cookies *sessions.CookieStore) *Store {
	return &Store{cookies: cookies}
}

// Token returns the stored token for kind, or "" when absent or unreadable.
func (s *Store) Token(r *http.Request, kind Kind) string {
	session, _ := s.cookies.Get(r, cookieName(kind))
	token, _ := session.Values[tokenKey].(string)
	return token
}

// SetToken persists a token. Failures are logged, never fatal.
func (s *Store) SetToken(w http.ResponseWriter, r *http.Request, kind Kind, token string) {
	session, _ := s.cookies.Get(r, cookieName(kind))
	session.Values[tokenKey] = token
	if err := session.Save(r, w); err != nil {
		slog.Warn("Failed to persist credential cookie", "kind", kind, "error", err)
	}
}

// ClearToken removes the token by expiring its cookie.
func (s *Store) ClearToken(w http.ResponseWriter, r *http.Request, kind Kind) {
	session, _ := s.cookies.Get(r, cookieName(kind))
	delete(session.Values, tokenKey)
	session.Options.MaxAge = -1
	if err := session.Save(r, w); err != nil {
		slog.Warn("Failed to clear credential cookie", "kind", kind, "error", err)
	}
}

// Snapshot reads both tokens for handing to the backend dispatcher.
func (s *Store) Snapshot(r *http.Request) backend.Credentials {
	return backend.Credentials{
		Session: s.Token(r, Session),
		Admin:   s.Token(r, Admin),
	}
}
