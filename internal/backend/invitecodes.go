package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/KoderSpark/lux-coin-frontend/internal/models"
)

func (c *Client) InviteCodes(ctx context.Context, creds Credentials) ([]models.InviteCode, error) {
	var codes []models.InviteCode
	err := c.do(ctx, ScopeAdmin, creds, http.MethodGet, "/admin/invite-codes", nil, &codes)
	return codes, err
}

// CreateInviteCodes batch-creates codes sharing one usage limit and note.
// The backend generates the code strings and owns usage counting.
func (c *Client) CreateInviteCodes(ctx context.Context, creds Credentials, quantity, usageLimit int, notes string) ([]models.InviteCode, error) {
	body := map[string]any{
		"quantity":   quantity,
		"usageLimit": usageLimit,
		"notes":      notes,
	}
	var codes []models.InviteCode
	err := c.do(ctx, ScopeAdmin, creds, http.MethodPost, "/admin/invite-codes", body, &codes)
	return codes, err
}

// PatchInviteCode toggles a code between active and disabled.
func (c *Client) PatchInviteCode(ctx context.Context, creds Credentials, id, status string) (models.InviteCode, error) {
	var code models.InviteCode
	err := c.do(ctx, ScopeAdmin, creds, http.MethodPatch, "/admin/invite-codes/"+url.PathEscape(id),
		map[string]string{"status": status}, &code)
	return code, err
}

func (c *Client) DeleteInviteCode(ctx context.Context, creds Credentials, id string) error {
	return c.do(ctx, ScopeAdmin, creds, http.MethodDelete, "/admin/invite-codes/"+url.PathEscape(id), nil, nil)
}
