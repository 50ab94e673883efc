package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/KoderSpark/lux-coin-frontend/internal/models"
)

// InquiryInput is a visitor-submitted contact/purchase request.
type InquiryInput struct {
	ListingID        string `json:"listingId"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	Country          string `json:"country"`
	PreferredContact string `json:"preferredContact"`
	RequestType      string `json:"requestType"`
	Message          string `json:"message"`
}

// InquiryPatch updates status and/or adminNotes independently; nil fields are
// left untouched.
type InquiryPatch struct {
	Status     *string `json:"status,omitempty"`
	AdminNotes *string `json:"adminNotes,omitempty"`
}

func (c *Client) CreateInquiry(ctx context.Context, creds Credentials, input InquiryInput) error {
	return c.do(ctx, ScopeSession, creds, http.MethodPost, "/inquiries", input, nil)
}

func (c *Client) AdminInquiries(ctx context.Context, creds Credentials) ([]models.Inquiry, error) {
	var inquiries []models.Inquiry
	err := c.do(ctx, ScopeAdmin, creds, http.MethodGet, "/inquiries/admin", nil, &inquiries)
	return inquiries, err
}

func (c *Client) UpdateInquiry(ctx context.Context, creds Credentials, id string, patch InquiryPatch) (models.Inquiry, error) {
	var inquiry models.Inquiry
	err := c.do(ctx, ScopeAdmin, creds, http.MethodPatch, "/inquiries/admin/"+url.PathEscape(id), patch, &inquiry)
	return inquiry, err
}
