package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/KoderSpark/lux-coin-frontend/internal/credentials"
)

// contextKey is a private type so request-context values cannot collide.
type contextKey string

const adminProfileKey = contextKey("adminProfile")

// Protect gates the portal routes: a visitor without a session token is sent
// back to the invite gate. The token is trusted here; a backend 401 during a
// page fetch is handled by the screen itself.
func (h *PortalHandler) Protect(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.Creds.Token(r, credentials.Session) == "" {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		next(w, r)
	}
}

// Guard gates the admin routes. The admin token is re-validated against the
// backend on every page load; a rejected token is cleared and the visitor is
// redirected to the login screen with the requested path preserved. Protected
// content is never rendered before verification resolves.
func (h *AdminHandler) Guard(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.Creds.Token(r, credentials.Admin) == "" {
			redirectToAdminLogin(w, r)
			return
		}

		profile, err := h.API.AdminMe(r.Context(), h.Creds.Snapshot(r))
		if err != nil {
			slog.Warn("Admin token invalid or expired", "error", err)
			h.Creds.ClearToken(w, r, credentials.Admin)
			redirectToAdminLogin(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), adminProfileKey, profile)
		next(w, r.WithContext(ctx))
	}
}

func redirectToAdminLogin(w http.ResponseWriter, r *http.Request) {
	target := "/admin/login"
	if requested := r.URL.RequestURI(); requested != "" && requested != "/admin/login" {
		target += "?next=" + url.QueryEscape(requested)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// safeAdminNext accepts only local admin paths for the post-login redirect,
// so a crafted login link cannot bounce the admin to another site.
func safeAdminNext(next string) string {
	if strings.HasPrefix(next, "/admin") && !strings.HasPrefix(next, "//") && next != "/admin/login" {
		return next
	}
	return "/admin/dashboard"
}
