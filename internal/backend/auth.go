package backend

import (
	"context"
	"net/http"

	"github.com/KoderSpark/lux-coin-frontend/internal/models"
)

// ValidateCode redeems an invite code for a session token. No token is
// attached: this is the entry point for unauthenticated visitors.
func (c *Client) ValidateCode(ctx context.Context, code string) (string, error) {
	var out struct {
		SessionToken string `json:"sessionToken"`
	}
	err := c.do(ctx, ScopeNone, Credentials{}, http.MethodPost, "/validate-code",
		map[string]string{"code": code}, &out)
	if err != nil {
		return "", err
	}
	return out.SessionToken, nil
}

// AdminLogin exchanges email/password for an admin token plus the profile of
// the authenticated admin.
func (c *Client) AdminLogin(ctx context.Context, email, password string) (string, models.AdminProfile, error) {
	var out struct {
		Token string `json:"token"`
		Email string `json:"email"`
		ID    string `json:"_id"`
	}
	err := c.do(ctx, ScopeNone, Credentials{}, http.MethodPost, "/admin/login",
		map[string]string{"email": email, "password": password}, &out)
	if err != nil {
		return "", models.AdminProfile{}, err
	}
	return out.Token, models.AdminProfile{ID: out.ID, Email: out.Email}, nil
}

// AdminMe fetches the admin profile for the stored admin token. A failure
// means the token is invalid or expired and must be discarded.
func (c *Client) AdminMe(ctx context.Context, creds Credentials) (models.AdminProfile, error) {
	var profile models.AdminProfile
	err := c.do(ctx, ScopeAdmin, creds, http.MethodGet, "/admin/me", nil, &profile)
	return profile, err
}
