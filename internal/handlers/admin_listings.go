package handlers

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/csrf"
	"github.com/nfnt/resize"

	"github.com/KoderSpark/lux-coin-frontend/internal/backend"
	"github.com/KoderSpark/lux-coin-frontend/internal/models"
)

const maxListingFormSize = 32 << 20 // 32MB

// maxPhotoWidth bounds what we forward to backend storage; phone photos
// arrive far larger than any gallery rendering needs.
const maxPhotoWidth = 1600

var listingStatuses = map[string]bool{
	models.ListingDraft:  true,
	models.ListingActive: true,
	models.ListingSold:   true,
	models.ListingHidden: true,
}

func (h *AdminHandler) ListListings(w http.ResponseWriter, r *http.Request) {
	listings, err := h.API.AdminListings(r.Context(), h.Creds.Snapshot(r))
	if err != nil {
		http.Error(w, "Error fetching listings", http.StatusInternalServerError)
		return
	}

	session, _ := h.SessionStore.Get(r, "admin-flash")
	tmpl := h.Templates.Get("admin_listings.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	data := map[string]interface{}{
		"Listings":  listings,
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *AdminHandler) NewListingForm(w http.ResponseWriter, r *http.Request) {
	h.renderListingForm(w, r, nil)
}

func (h *AdminHandler) EditListingForm(w http.ResponseWriter, r *http.Request) {
	listing, err := h.findListing(r, r.PathValue("id"))
	if err != nil {
		http.Error(w, "Listing not found", http.StatusNotFound)
		return
	}
	h.renderListingForm(w, r, listing)
}

func (h *AdminHandler) CreateListing(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-flash")
	defer session.Save(r, w)

	if err := r.ParseMultipartForm(maxListingFormSize); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Upload too large. Max 32MB per submission."})
		http.Redirect(w, r, "/admin/listings/new", http.StatusSeeOther)
		return
	}

	input, errors := parseListingForm(r)
	if len(errors) > 0 {
		for _, msg := range errors {
			session.AddFlash(FlashMessage{Type: "error", Message: msg})
		}
		http.Redirect(w, r, "/admin/listings/new", http.StatusSeeOther)
		return
	}

	images, err := h.collectImages(r)
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: err.Error()})
		http.Redirect(w, r, "/admin/listings/new", http.StatusSeeOther)
		return
	}
	input.Images = models.NormalizeImages(images)

	if _, err := h.API.CreateListing(r.Context(), h.Creds.Snapshot(r), input); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: backend.ErrorMessage(err, "Failed to save listing")})
		http.Redirect(w, r, "/admin/listings/new", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Listing created successfully!"})
	http.Redirect(w, r, "/admin/listings", http.StatusSeeOther)
}

func (h *AdminHandler) UpdateListing(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	editPath := fmt.Sprintf("/admin/listings/%s/edit", id)
	session, _ := h.SessionStore.Get(r, "admin-flash")
	defer session.Save(r, w)

	if err := r.ParseMultipartForm(maxListingFormSize); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Upload too large. Max 32MB per submission."})
		http.Redirect(w, r, editPath, http.StatusSeeOther)
		return
	}

	input, errors := parseListingForm(r)
	if len(errors) > 0 {
		for _, msg := range errors {
			session.AddFlash(FlashMessage{Type: "error", Message: msg})
		}
		http.Redirect(w, r, editPath, http.StatusSeeOther)
		return
	}

	images, err := h.collectImages(r)
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: err.Error()})
		http.Redirect(w, r, editPath, http.StatusSeeOther)
		return
	}
	input.Images = models.NormalizeImages(images)

	if _, err := h.API.UpdateListing(r.Context(), h.Creds.Snapshot(r), id, input); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: backend.ErrorMessage(err, "Failed to save listing")})
		http.Redirect(w, r, editPath, http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Listing updated successfully!"})
	http.Redirect(w, r, "/admin/listings", http.StatusSeeOther)
}

func (h *AdminHandler) DeleteListing(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-flash")
	defer session.Save(r, w)

	if err := h.API.DeleteListing(r.Context(), h.Creds.Snapshot(r), r.PathValue("id")); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: backend.ErrorMessage(err, "Error deleting listing.")})
	} else {
		session.AddFlash(FlashMessage{Type: "success", Message: "Listing deleted."})
	}
	http.Redirect(w, r, "/admin/listings", http.StatusSeeOther)
}

// ToggleFeatured flips the isFeatured flag via a partial update.
func (h *AdminHandler) ToggleFeatured(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-flash")
	defer session.Save(r, w)

	current := r.FormValue("featured") == "true"
	_, err := h.API.PatchListing(r.Context(), h.Creds.Snapshot(r), r.PathValue("id"),
		map[string]any{"isFeatured": !current})
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: backend.ErrorMessage(err, "Failed to update featured status.")})
	}
	http.Redirect(w, r, "/admin/listings", http.StatusSeeOther)
}

// findListing scans the full admin set; the backend exposes no single-listing
// admin route.
func (h *AdminHandler) findListing(r *http.Request, id string) (*models.Listing, error) {
	listings, err := h.API.AdminListings(r.Context(), h.Creds.Snapshot(r))
	if err != nil {
		return nil, err
	}
	for i := range listings {
		if listings[i].ID == id {
			return &listings[i], nil
		}
	}
	return nil, fmt.Errorf("listing %s not found", id)
}

func (h *AdminHandler) renderListingForm(w http.ResponseWriter, r *http.Request, listing *models.Listing) {
	session, _ := h.SessionStore.Get(r, "admin-flash")
	tmpl := h.Templates.Get("admin_listing_form.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	data := map[string]interface{}{
		"Listing":    listing,
		"Categories": models.Categories,
		"CsrfField":  csrf.TemplateField(r),
		"Flashes":    GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// parseListingForm reads the listing fields and returns validation errors as
// a field->message map.
func parseListingForm(r *http.Request) (backend.ListingInput, map[string]string) {
	errors := make(map[string]string)

	input := backend.ListingInput{
		Title:              strings.TrimSpace(r.FormValue("title")),
		Category:           r.FormValue("category"),
		Description:        r.FormValue("description"),
		PriceOnApplication: r.FormValue("price_on_application") == "on",
		Status:             r.FormValue("status"),
		IsFeatured:         r.FormValue("is_featured") == "on",
		Specifications:     make(map[string]string),
	}
	if input.Status == "" {
		input.Status = models.ListingDraft
	}

	if input.Title == "" {
		errors["title"] = "Title is required."
	}
	validCategory := false
	for _, c := range models.Categories {
		if c == input.Category {
			validCategory = true
			break
		}
	}
	if !validCategory {
		errors["category"] = "Invalid category selected."
	}
	if !listingStatuses[input.Status] {
		errors["status"] = "Invalid status selected."
	}

	// Price on application and a rendered price are mutually exclusive; the
	// numeric value is dropped entirely when the flag is set.
	if !input.PriceOnApplication {
		priceStr := strings.TrimSpace(r.FormValue("price"))
		if priceStr == "" {
			errors["price"] = "Price is required unless set to price on application."
		} else if price, err := strconv.ParseFloat(priceStr, 64); err != nil {
			errors["price"] = "Invalid price format."
		} else if price <= 0 {
			errors["price"] = "Price must be positive."
		} else {
			input.Price = &price
		}
	}

	keys := r.Form["spec_key"]
	values := r.Form["spec_value"]
	for i := 0; i < len(keys) && i < len(values); i++ {
		k := strings.TrimSpace(keys[i])
		v := strings.TrimSpace(values[i])
		if k != "" && v != "" {
			input.Specifications[k] = v
		}
	}

	return input, errors
}

// collectImages assembles the full image set for submission: kept images from
// hidden form fields (minus removals, which are also deleted from backend
// storage), followed by freshly uploaded photos.
func (h *AdminHandler) collectImages(r *http.Request) ([]models.ListingImage, error) {
	creds := h.Creds.Snapshot(r)

	urls := r.Form["image_url"]
	publicIDs := r.Form["image_public_id"]
	removed := make(map[string]bool)
	for _, idx := range r.Form["image_remove"] {
		removed[idx] = true
	}
	primaryIdx := -1
	if p := r.FormValue("primary"); p != "" {
		primaryIdx, _ = strconv.Atoi(p)
	}

	var images []models.ListingImage
	for i := 0; i < len(urls) && i < len(publicIDs); i++ {
		if removed[strconv.Itoa(i)] {
			// Removal is best-effort: a stale storage object is not worth
			// failing the whole save for.
			if publicIDs[i] != "" {
				if err := h.API.DeleteUpload(r.Context(), creds, publicIDs[i]); err != nil {
					slog.Warn("Failed to delete stored image", "publicId", publicIDs[i], "error", err)
				}
			}
			continue
		}
		images = append(images, models.ListingImage{
			URL:       urls[i],
			PublicID:  publicIDs[i],
			IsPrimary: i == primaryIdx,
		})
	}

	if r.MultipartForm != nil {
		for _, header := range r.MultipartForm.File["photos"] {
			uploaded, err := h.uploadPhoto(r.Context(), creds, header)
			if err != nil {
				return nil, err
			}
			images = append(images, uploaded)
		}
	}

	return images, nil
}

// uploadPhoto decodes, downscales and re-encodes one photo, then forwards it
// to backend storage.
func (h *AdminHandler) uploadPhoto(ctx context.Context, creds backend.Credentials, header *multipart.FileHeader) (models.ListingImage, error) {
	file, err := header.Open()
	if err != nil {
		return models.ListingImage{}, fmt.Errorf("failed to read uploaded file %q", header.Filename)
	}
	defer file.Close()

	var img image.Image
	switch strings.ToLower(filepath.Ext(header.Filename)) {
	case ".png":
		img, err = png.Decode(file)
	case ".jpg", ".jpeg":
		img, err = jpeg.Decode(file)
	default:
		return models.ListingImage{}, fmt.Errorf("unsupported image format for %q. Only PNG, JPG, JPEG are allowed", header.Filename)
	}
	if err != nil {
		return models.ListingImage{}, fmt.Errorf("failed to decode image %q", header.Filename)
	}

	if img.Bounds().Dx() > maxPhotoWidth {
		img = resize.Resize(maxPhotoWidth, 0, img, resize.Lanczos3)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 80}); err != nil {
		return models.ListingImage{}, fmt.Errorf("failed to encode image %q", header.Filename)
	}

	result, err := h.API.Upload(ctx, creds, uuid.New().String()+".jpg", &buf)
	if err != nil {
		return models.ListingImage{}, fmt.Errorf("%s", backend.ErrorMessage(err, "Failed to upload image(s)"))
	}
	return models.ListingImage{URL: result.URL, PublicID: result.PublicID}, nil
}
