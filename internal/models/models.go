package models

import (
	"fmt"
	"sort"
	"strconv"
	"time"
)

// Categories is the fixed set of listing categories the backend accepts.
var Categories = []string{
	"Islands",
	"Luxury Cars",
	"Chartered Flights",
	"Helicopters",
	"Luxury Watches",
}

// Listing statuses.
const (
	ListingDraft  = "draft"
	ListingActive = "active"
	ListingSold   = "sold"
	ListingHidden = "hidden"
)

// Inquiry statuses, in the order admins usually advance them.
const (
	InquiryNew        = "new"
	InquiryReviewed   = "reviewed"
	InquiryInProgress = "in-progress"
	InquiryClosed     = "closed"
)

// Invite code statuses.
const (
	CodeActive   = "active"
	CodeDisabled = "disabled"
	CodeExpired  = "expired"
)

type Listing struct {
	ID                 string            `json:"_id"`
	Title              string            `json:"title"`
	Category           string            `json:"category"`
	Description        string            `json:"description"` // rich HTML, owned by the backend
	Price              *float64          `json:"price"`
	PriceOnApplication bool              `json:"priceOnApplication"`
	Status             string            `json:"status"`
	IsFeatured         bool              `json:"isFeatured"`
	Images             []ListingImage    `json:"images"`
	Specifications     map[string]string `json:"specifications"`
	CreatedAt          time.Time         `json:"createdAt"`
}

type ListingImage struct {
	URL       string `json:"url"`
	PublicID  string `json:"publicId"`
	Order     int    `json:"order"`
	IsPrimary bool   `json:"isPrimary"`
}

type Inquiry struct {
	ID               string    `json:"_id"`
	ListingID        string    `json:"listingId"`
	ListingTitle     string    `json:"listingTitle"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	Country          string    `json:"country"`
	PreferredContact string    `json:"preferredContact"` // email | phone | whatsapp
	RequestType      string    `json:"requestType"`      // enquiry | purchase
	Message          string    `json:"message"`
	Status           string    `json:"status"`
	AdminNotes       string    `json:"adminNotes"`
	CreatedAt        time.Time `json:"createdAt"`
}

type InviteCode struct {
	ID         string    `json:"_id"`
	Code       string    `json:"code"`
	UsageLimit int       `json:"usageLimit"`
	UsageCount int       `json:"usageCount"`
	Status     string    `json:"status"`
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `json:"createdAt"`
}

type AdminProfile struct {
	ID    string `json:"_id"`
	Email string `json:"email"`
}

// PrimaryImage returns the cover image: the one flagged primary, or the first
// image when none is flagged. Nil for an empty set.
func (l *Listing) PrimaryImage() *ListingImage {
	for i := range l.Images {
		if l.Images[i].IsPrimary {
			return &l.Images[i]
		}
	}
	if len(l.Images) > 0 {
		return &l.Images[0]
	}
	return nil
}

// DisplayPrice is the only price label ever rendered. A listing marked
// price-on-application never shows its numeric price.
func (l *Listing) DisplayPrice() string {
	if l.PriceOnApplication {
		return "Price on Application"
	}
	if l.Price == nil {
		return ""
	}
	return FormatPrice(*l.Price)
}

// PriceValue renders the raw numeric price for form fields, empty when unset.
func (l *Listing) PriceValue() string {
	if l.Price == nil {
		return ""
	}
	return strconv.FormatFloat(*l.Price, 'f', -1, 64)
}

// SpecKeys returns the specification keys sorted for stable display.
func (l *Listing) SpecKeys() []string {
	keys := make([]string, 0, len(l.Specifications))
	for k := range l.Specifications {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// KeySpec picks one specification entry to show on listing cards.
func (l *Listing) KeySpec() string {
	keys := l.SpecKeys()
	if len(keys) == 0 {
		return ""
	}
	return keys[0] + ": " + l.Specifications[keys[0]]
}

// NormalizeImages re-derives order from slice position and guarantees exactly
// one primary image: the first flagged one wins, and when none is flagged the
// first image is promoted. The whole set is always resubmitted to the backend.
func NormalizeImages(images []ListingImage) []ListingImage {
	out := make([]ListingImage, len(images))
	copy(out, images)

	primary := -1
	for i := range out {
		if out[i].IsPrimary && primary == -1 {
			primary = i
		}
		out[i].IsPrimary = false
		out[i].Order = i
	}
	if primary == -1 && len(out) > 0 {
		primary = 0
	}
	if primary >= 0 {
		out[primary].IsPrimary = true
	}
	return out
}

// FormatPrice renders a USD amount with thousands separators and no cents.
func FormatPrice(price float64) string {
	neg := price < 0
	if neg {
		price = -price
	}
	whole := strconv.FormatInt(int64(price+0.5), 10)

	var grouped []byte
	for i := 0; i < len(whole); i++ {
		if i > 0 && (len(whole)-i)%3 == 0 {
			grouped = append(grouped, ',')
		}
		grouped = append(grouped, whole[i])
	}
	if neg {
		return fmt.Sprintf("-$%s", grouped)
	}
	return fmt.Sprintf("$%s", grouped)
}
