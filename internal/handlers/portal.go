package handlers

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"

	"github.com/KoderSpark/lux-coin-frontend/internal/backend"
	"github.com/KoderSpark/lux-coin-frontend/internal/credentials"
	"github.com/KoderSpark/lux-coin-frontend/internal/models"
)

// PortalHandler serves the invite-gated storefront: home with the featured
// rail, the catalogue, listing detail and inquiry submission.
type PortalHandler struct {
	API          *backend.Client
	Creds        *credentials.Store
	SessionStore *sessions.CookieStore
	Templates    *TemplateCache
}

// sessionExpired clears a session token the backend rejected and sends the
// visitor back to the gate. Returns false for non-auth failures, which the
// caller surfaces itself.
func (h *PortalHandler) sessionExpired(w http.ResponseWriter, r *http.Request, err error) bool {
	if !backend.IsAuthError(err) {
		return false
	}
	h.Creds.ClearToken(w, r, credentials.Session)
	http.Redirect(w, r, "/", http.StatusSeeOther)
	return true
}

func (h *PortalHandler) Home(w http.ResponseWriter, r *http.Request) {
	creds := h.Creds.Snapshot(r)
	search := strings.TrimSpace(r.URL.Query().Get("search"))
	category := r.URL.Query().Get("category")

	listings, err := h.API.Listings(r.Context(), creds, backend.ListingQuery{
		Search:   search,
		Category: category,
	})
	if err != nil {
		if h.sessionExpired(w, r, err) {
			return
		}
		http.Error(w, "Error fetching listings", http.StatusInternalServerError)
		return
	}

	// The featured rail is hidden while the visitor is filtering.
	var featured []models.Listing
	if search == "" && category == "" {
		featured, err = h.API.Listings(r.Context(), creds, backend.ListingQuery{Featured: true})
		if err != nil {
			if h.sessionExpired(w, r, err) {
				return
			}
			featured = nil
		}
	}

	tmpl := h.Templates.Get("portal.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	tmpl.Execute(w, map[string]interface{}{
		"Listings":   listings,
		"Featured":   featured,
		"Search":     search,
		"Category":   category,
		"Categories": models.Categories,
	})
}

func (h *PortalHandler) Listings(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	listings, err := h.API.Listings(r.Context(), h.Creds.Snapshot(r), backend.ListingQuery{Category: category})
	if err != nil {
		if h.sessionExpired(w, r, err) {
			return
		}
		http.Error(w, "Error fetching listings", http.StatusInternalServerError)
		return
	}

	tmpl := h.Templates.Get("listings.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	tmpl.Execute(w, map[string]interface{}{
		"Listings":   listings,
		"Category":   category,
		"Categories": models.Categories,
	})
}

func (h *PortalHandler) ListingDetail(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	listing, err := h.API.Listing(r.Context(), h.Creds.Snapshot(r), id)
	if err != nil {
		if h.sessionExpired(w, r, err) {
			return
		}
		http.Error(w, "Listing not found", http.StatusNotFound)
		return
	}

	session, _ := h.SessionStore.Get(r, "portal-flash")
	tmpl := h.Templates.Get("listing_detail.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	data := map[string]interface{}{
		"Listing":   &listing,
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

var (
	requestTypes      = map[string]bool{"enquiry": true, "purchase": true}
	preferredContacts = map[string]bool{"email": true, "phone": true, "whatsapp": true}
)

func (h *PortalHandler) SubmitInquiry(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	session, _ := h.SessionStore.Get(r, "portal-flash")
	defer session.Save(r, w)

	detailPath := "/portal/listings/" + id

	if err := r.ParseForm(); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid form data."})
		http.Redirect(w, r, detailPath, http.StatusSeeOther)
		return
	}

	input := backend.InquiryInput{
		ListingID:        id,
		Name:             strings.TrimSpace(r.FormValue("name")),
		Email:            strings.TrimSpace(r.FormValue("email")),
		Phone:            strings.TrimSpace(r.FormValue("phone")),
		Country:          strings.TrimSpace(r.FormValue("country")),
		PreferredContact: r.FormValue("preferred_contact"),
		RequestType:      r.FormValue("request_type"),
		Message:          strings.TrimSpace(r.FormValue("message")),
	}

	errors := make(map[string]string)
	if input.Name == "" {
		errors["name"] = "Your name is required."
	}
	if input.Email == "" {
		errors["email"] = "Email address is required."
	} else if !emailRegex.MatchString(input.Email) {
		errors["email"] = "Please enter a valid email address."
	}
	if input.Message == "" {
		errors["message"] = "Please include a message."
	}
	if !requestTypes[input.RequestType] {
		input.RequestType = "enquiry"
	}
	if !preferredContacts[input.PreferredContact] {
		input.PreferredContact = "email"
	}

	if len(errors) > 0 {
		for _, msg := range errors {
			session.AddFlash(FlashMessage{Type: "error", Message: msg})
		}
		http.Redirect(w, r, detailPath, http.StatusSeeOther)
		return
	}

	if err := h.API.CreateInquiry(r.Context(), h.Creds.Snapshot(r), input); err != nil {
		if h.sessionExpired(w, r, err) {
			return
		}
		session.AddFlash(FlashMessage{Type: "error", Message: backend.ErrorMessage(err, "Failed to submit inquiry.")})
		http.Redirect(w, r, detailPath, http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Your private request has been securely submitted. A specialized agent will be in contact shortly."})
	http.Redirect(w, r, detailPath, http.StatusSeeOther)
}
