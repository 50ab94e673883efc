package handlers

import (
	"net/http"

	"github.com/gorilla/csrf"

	"github.com/KoderSpark/lux-coin-frontend/internal/backend"
	"github.com/KoderSpark/lux-coin-frontend/internal/models"
)

var inquiryStatuses = map[string]bool{
	models.InquiryNew:        true,
	models.InquiryReviewed:   true,
	models.InquiryInProgress: true,
	models.InquiryClosed:     true,
}

// ListInquiries renders the inquiry table; ?selected= opens the detail panel
// for one inquiry.
func (h *AdminHandler) ListInquiries(w http.ResponseWriter, r *http.Request) {
	inquiries, err := h.API.AdminInquiries(r.Context(), h.Creds.Snapshot(r))
	if err != nil {
		http.Error(w, "Error fetching inquiries", http.StatusInternalServerError)
		return
	}

	var selected *models.Inquiry
	if id := r.URL.Query().Get("selected"); id != "" {
		for i := range inquiries {
			if inquiries[i].ID == id {
				selected = &inquiries[i]
				break
			}
		}
	}

	session, _ := h.SessionStore.Get(r, "admin-flash")
	tmpl := h.Templates.Get("admin_inquiries.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	data := map[string]interface{}{
		"Inquiries": inquiries,
		"Selected":  selected,
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// UpdateInquiry patches status and/or admin notes. Only fields present in the
// form are sent, so notes can be edited without touching the status. Status
// progression is suggested by the UI but not enforced here.
func (h *AdminHandler) UpdateInquiry(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	session, _ := h.SessionStore.Get(r, "admin-flash")
	defer session.Save(r, w)

	returnPath := "/admin/inquiries?selected=" + id

	if err := r.ParseForm(); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid form data."})
		http.Redirect(w, r, returnPath, http.StatusSeeOther)
		return
	}

	var patch backend.InquiryPatch
	if values, ok := r.PostForm["status"]; ok && len(values) > 0 {
		status := values[0]
		if !inquiryStatuses[status] {
			session.AddFlash(FlashMessage{Type: "error", Message: "Invalid status selected."})
			http.Redirect(w, r, returnPath, http.StatusSeeOther)
			return
		}
		patch.Status = &status
	}
	if values, ok := r.PostForm["admin_notes"]; ok && len(values) > 0 {
		patch.AdminNotes = &values[0]
	}

	if patch.Status == nil && patch.AdminNotes == nil {
		http.Redirect(w, r, returnPath, http.StatusSeeOther)
		return
	}

	if _, err := h.API.UpdateInquiry(r.Context(), h.Creds.Snapshot(r), id, patch); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: backend.ErrorMessage(err, "Failed to update inquiry.")})
		http.Redirect(w, r, returnPath, http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Inquiry updated!"})
	http.Redirect(w, r, returnPath, http.StatusSeeOther)
}
