package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"

	"github.com/KoderSpark/lux-coin-frontend/internal/backend"
	"github.com/KoderSpark/lux-coin-frontend/internal/credentials"
	"github.com/KoderSpark/lux-coin-frontend/internal/models"
)

// AdminHandler owns the administrative console: login, dashboard and the
// management screens for listings, inquiries and invite codes.
type AdminHandler struct {
	API          *backend.Client
	Creds        *credentials.Store
	SessionStore *sessions.CookieStore
	Templates    *TemplateCache
}

// AdminProfileFrom returns the profile the guard verified for this request.
func AdminProfileFrom(r *http.Request) models.AdminProfile {
	profile, _ := r.Context().Value(adminProfileKey).(models.AdminProfile)
	return profile
}

func (h *AdminHandler) LoginGet(w http.ResponseWriter, r *http.Request) {
	// Already holding a valid token? Straight to the console.
	if h.Creds.Token(r, credentials.Admin) != "" {
		if _, err := h.API.AdminMe(r.Context(), h.Creds.Snapshot(r)); err == nil {
			http.Redirect(w, r, safeAdminNext(r.URL.Query().Get("next")), http.StatusSeeOther)
			return
		}
		h.Creds.ClearToken(w, r, credentials.Admin)
	}
	h.renderLogin(w, r, "", "")
}

func (h *AdminHandler) LoginPost(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	next := r.FormValue("next")

	if email == "" || password == "" {
		h.renderLogin(w, r, email, "Email and password are required.")
		return
	}

	token, profile, err := h.API.AdminLogin(r.Context(), email, password)
	if err != nil {
		h.renderLogin(w, r, email, backend.ErrorMessage(err, "Invalid credentials"))
		return
	}

	h.Creds.SetToken(w, r, credentials.Admin, token)

	session, _ := h.SessionStore.Get(r, "admin-flash")
	session.AddFlash(FlashMessage{Type: "success", Message: "Welcome, " + profile.Email + "!"})
	if err := session.Save(r, w); err != nil {
		slog.Error("Failed to save session", "error", err)
	}

	slog.Info("Admin login successful", "admin_id", profile.ID)
	http.Redirect(w, r, safeAdminNext(next), http.StatusSeeOther)
}

func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Creds.ClearToken(w, r, credentials.Admin)
	session, _ := h.SessionStore.Get(r, "admin-flash")
	session.AddFlash(FlashMessage{Type: "success", Message: "Logged out successfully!"})
	session.Save(r, w)
	http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
}

// Index redirects the bare /admin path to the dashboard.
func (h *AdminHandler) Index(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
}

// Dashboard issues three independent fetches concurrently; they share nothing
// and each widget degrades to an empty state when its fetch fails.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	creds := h.Creds.Snapshot(r)
	ctx := r.Context()

	var (
		listings  []models.Listing
		inquiries []models.Inquiry
		codes     []models.InviteCode
		wg        sync.WaitGroup
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		var err error
		if listings, err = h.API.AdminListings(ctx, creds); err != nil {
			slog.Warn("Dashboard: listings fetch failed", "error", err)
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if inquiries, err = h.API.AdminInquiries(ctx, creds); err != nil {
			slog.Warn("Dashboard: inquiries fetch failed", "error", err)
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if codes, err = h.API.InviteCodes(ctx, creds); err != nil {
			slog.Warn("Dashboard: invite codes fetch failed", "error", err)
		}
	}()
	wg.Wait()

	activeListings := 0
	for _, l := range listings {
		if l.Status == models.ListingActive {
			activeListings++
		}
	}
	newInquiries := 0
	for _, i := range inquiries {
		if i.Status == models.InquiryNew {
			newInquiries++
		}
	}
	redeemedCodes := 0
	for _, c := range codes {
		if c.UsageCount > 0 {
			redeemedCodes++
		}
	}

	recent := inquiries
	if len(recent) > 10 {
		recent = recent[:10]
	}

	session, _ := h.SessionStore.Get(r, "admin-flash")
	tmpl := h.Templates.Get("admin_dashboard.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	data := map[string]interface{}{
		"Profile":         AdminProfileFrom(r),
		"ActiveListings":  activeListings,
		"NewInquiries":    newInquiries,
		"TotalCodes":      len(codes),
		"RedeemedCodes":   redeemedCodes,
		"RecentInquiries": recent,
		"Flashes":         GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *AdminHandler) renderLogin(w http.ResponseWriter, r *http.Request, email, errMsg string) {
	tmpl := h.Templates.Get("admin_login.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	tmpl.Execute(w, map[string]interface{}{
		"CsrfField": csrf.TemplateField(r),
		"Email":     email,
		"Error":     errMsg,
		"Next":      r.FormValue("next"),
	})
}
