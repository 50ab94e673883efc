package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/csrf"

	"github.com/KoderSpark/lux-coin-frontend/internal/backend"
	"github.com/KoderSpark/lux-coin-frontend/internal/models"
)

const maxCodesPerBatch = 50

func (h *AdminHandler) ListInviteCodes(w http.ResponseWriter, r *http.Request) {
	codes, err := h.API.InviteCodes(r.Context(), h.Creds.Snapshot(r))
	if err != nil {
		http.Error(w, "Error fetching invite codes", http.StatusInternalServerError)
		return
	}

	session, _ := h.SessionStore.Get(r, "admin-flash")
	tmpl := h.Templates.Get("admin_invite_codes.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	data := map[string]interface{}{
		"Codes":     codes,
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// GenerateInviteCodes batch-creates codes sharing one usage limit and note.
// The backend generates the code strings; new codes start active with a zero
// usage count.
func (h *AdminHandler) GenerateInviteCodes(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-flash")
	defer session.Save(r, w)

	quantity, err := strconv.Atoi(r.FormValue("quantity"))
	if err != nil || quantity < 1 || quantity > maxCodesPerBatch {
		session.AddFlash(FlashMessage{Type: "error", Message: "Quantity must be between 1 and 50."})
		http.Redirect(w, r, "/admin/invite-codes", http.StatusSeeOther)
		return
	}
	usageLimit, err := strconv.Atoi(r.FormValue("usage_limit"))
	if err != nil || usageLimit < 1 {
		session.AddFlash(FlashMessage{Type: "error", Message: "Usage limit must be at least 1."})
		http.Redirect(w, r, "/admin/invite-codes", http.StatusSeeOther)
		return
	}
	notes := strings.TrimSpace(r.FormValue("notes"))

	codes, err := h.API.CreateInviteCodes(r.Context(), h.Creds.Snapshot(r), quantity, usageLimit, notes)
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: backend.ErrorMessage(err, "Failed to generate codes. Check server connection.")})
		http.Redirect(w, r, "/admin/invite-codes", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: strconv.Itoa(len(codes)) + " invite codes generated."})
	http.Redirect(w, r, "/admin/invite-codes", http.StatusSeeOther)
}

// ToggleInviteCode flips a code between active and disabled.
func (h *AdminHandler) ToggleInviteCode(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-flash")
	defer session.Save(r, w)

	newStatus := models.CodeActive
	if r.FormValue("status") == models.CodeActive {
		newStatus = models.CodeDisabled
	}

	_, err := h.API.PatchInviteCode(r.Context(), h.Creds.Snapshot(r), r.PathValue("id"), newStatus)
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: backend.ErrorMessage(err, "Failed to toggle code status.")})
	}
	http.Redirect(w, r, "/admin/invite-codes", http.StatusSeeOther)
}

func (h *AdminHandler) DeleteInviteCode(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-flash")
	defer session.Save(r, w)

	if err := h.API.DeleteInviteCode(r.Context(), h.Creds.Snapshot(r), r.PathValue("id")); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: backend.ErrorMessage(err, "Failed to delete code.")})
	} else {
		session.AddFlash(FlashMessage{Type: "success", Message: "Invite code deleted."})
	}
	http.Redirect(w, r, "/admin/invite-codes", http.StatusSeeOther)
}
