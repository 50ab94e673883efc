package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"

	"github.com/KoderSpark/lux-coin-frontend/internal/backend"
	"github.com/KoderSpark/lux-coin-frontend/internal/credentials"
)

// GateHandler owns the invite gate: the public entry point where a visitor
// exchanges an invite code for a session token.
type GateHandler struct {
	API          *backend.Client
	Creds        *credentials.Store
	SessionStore *sessions.CookieStore
	Templates    *TemplateCache
}

func (h *GateHandler) Index(w http.ResponseWriter, r *http.Request) {
	// The "/" pattern also receives every unmatched path; those fall back to
	// the gate itself.
	if r.URL.Path != "/" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.renderGate(w, r, "", "")
}

func (h *GateHandler) ValidateCode(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(strings.TrimSpace(r.FormValue("code")))
	if code == "" {
		h.renderGate(w, r, code, "Please enter your invite code.")
		return
	}

	token, err := h.API.ValidateCode(r.Context(), code)
	if err != nil {
		h.renderGate(w, r, code, backend.ErrorMessage(err, "Invalid or expired invite code."))
		return
	}

	h.Creds.SetToken(w, r, credentials.Session, token)
	http.Redirect(w, r, "/portal", http.StatusSeeOther)
}

// Logout drops the session token and returns the visitor to the gate.
func (h *GateHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Creds.ClearToken(w, r, credentials.Session)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *GateHandler) renderGate(w http.ResponseWriter, r *http.Request, code, errMsg string) {
	tmpl := h.Templates.Get("gate.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	tmpl.Execute(w, map[string]interface{}{
		"CsrfField": csrf.TemplateField(r),
		"Code":      code,
		"Error":     errMsg,
	})
}
