package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/KoderSpark/lux-coin-frontend/internal/models"
)

// ListingQuery narrows the portal listing fetch. Zero value fetches all
// active listings.
type ListingQuery struct {
	Featured bool
	Search   string
	Category string
}

func (q ListingQuery) encode() string {
	values := url.Values{}
	if q.Featured {
		values.Set("featured", "true")
	}
	if q.Search != "" {
		values.Set("search", q.Search)
	}
	if q.Category != "" {
		values.Set("category", q.Category)
	}
	if len(values) == 0 {
		return ""
	}
	return "?" + values.Encode()
}

// ListingInput is the full listing payload for create/replace. The image set
// is always submitted whole, normalized by the caller.
type ListingInput struct {
	Title              string                `json:"title"`
	Category           string                `json:"category"`
	Description        string                `json:"description"`
	Price              *float64              `json:"price"`
	PriceOnApplication bool                  `json:"priceOnApplication"`
	Status             string                `json:"status"`
	IsFeatured         bool                  `json:"isFeatured"`
	Images             []models.ListingImage `json:"images"`
	Specifications     map[string]string     `json:"specifications"`
}

// Listings fetches active listings for the portal.
func (c *Client) Listings(ctx context.Context, creds Credentials, q ListingQuery) ([]models.Listing, error) {
	var listings []models.Listing
	err := c.do(ctx, ScopeSession, creds, http.MethodGet, "/listings"+q.encode(), nil, &listings)
	return listings, err
}

// Listing fetches a single listing for the portal detail page.
func (c *Client) Listing(ctx context.Context, creds Credentials, id string) (models.Listing, error) {
	var listing models.Listing
	err := c.do(ctx, ScopeSession, creds, http.MethodGet, "/listings/"+url.PathEscape(id), nil, &listing)
	return listing, err
}

// AdminListings fetches every listing regardless of status.
func (c *Client) AdminListings(ctx context.Context, creds Credentials) ([]models.Listing, error) {
	var listings []models.Listing
	err := c.do(ctx, ScopeAdmin, creds, http.MethodGet, "/listings/admin/all", nil, &listings)
	return listings, err
}

func (c *Client) CreateListing(ctx context.Context, creds Credentials, input ListingInput) (models.Listing, error) {
	var listing models.Listing
	err := c.do(ctx, ScopeAdmin, creds, http.MethodPost, "/listings/admin", input, &listing)
	return listing, err
}

// UpdateListing replaces a listing wholesale.
func (c *Client) UpdateListing(ctx context.Context, creds Credentials, id string, input ListingInput) (models.Listing, error) {
	var listing models.Listing
	err := c.do(ctx, ScopeAdmin, creds, http.MethodPut, "/listings/admin/"+url.PathEscape(id), input, &listing)
	return listing, err
}

// PatchListing partially updates a listing, e.g. {"isFeatured": true}.
func (c *Client) PatchListing(ctx context.Context, creds Credentials, id string, patch map[string]any) (models.Listing, error) {
	var listing models.Listing
	err := c.do(ctx, ScopeAdmin, creds, http.MethodPatch, "/listings/admin/"+url.PathEscape(id)+"/status", patch, &listing)
	return listing, err
}

func (c *Client) DeleteListing(ctx context.Context, creds Credentials, id string) error {
	return c.do(ctx, ScopeAdmin, creds, http.MethodDelete, "/listings/admin/"+url.PathEscape(id), nil, nil)
}
