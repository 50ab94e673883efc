package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordedRequest captures what the backend actually received so tests can
// assert on the outbound token, not just the response handling.
type recordedRequest struct {
	Method string
	Path   string
	Auth   string
}

func newRecordingBackend(t *testing.T, status int, body string) (*Client, *recordedRequest) {
	t.Helper()
	rec := &recordedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.Method = r.Method
		rec.Path = r.URL.Path
		rec.Auth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return NewClient(srv.URL), rec
}

func TestTokenSelectionPerScope(t *testing.T) {
	creds := Credentials{Session: "session-token", Admin: "admin-token"}

	tests := []struct {
		name     string
		call     func(c *Client) error
		wantAuth string
		wantPath string
	}{
		{
			name: "catalogue fetch sends only the session token",
			call: func(c *Client) error {
				_, err := c.Listings(context.Background(), creds, ListingQuery{})
				return err
			},
			wantAuth: "Bearer session-token",
			wantPath: "/api/listings",
		},
		{
			name: "inquiry submission sends only the session token",
			call: func(c *Client) error {
				return c.CreateInquiry(context.Background(), creds, InquiryInput{ListingID: "l1"})
			},
			wantAuth: "Bearer session-token",
			wantPath: "/api/inquiries",
		},
		{
			name: "admin listing index sends only the admin token",
			call: func(c *Client) error {
				_, err := c.AdminListings(context.Background(), creds)
				return err
			},
			wantAuth: "Bearer admin-token",
			wantPath: "/api/listings/admin/all",
		},
		{
			name: "admin profile check sends only the admin token",
			call: func(c *Client) error {
				_, err := c.AdminMe(context.Background(), creds)
				return err
			},
			wantAuth: "Bearer admin-token",
			wantPath: "/api/admin/me",
		},
		{
			name: "invite code management sends only the admin token",
			call: func(c *Client) error {
				_, err := c.InviteCodes(context.Background(), creds)
				return err
			},
			wantAuth: "Bearer admin-token",
			wantPath: "/api/admin/invite-codes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, rec := newRecordingBackend(t, http.StatusOK, `[]`)
			err := tt.call(client)
			require.NoError(t, err)
			assert.Equal(t, tt.wantAuth, rec.Auth)
			assert.Equal(t, tt.wantPath, rec.Path)
		})
	}
}

func TestCodeRedemptionSendsNoToken(t *testing.T) {
	// Redeeming an invite code must work for a fresh visitor even when stale
	// tokens are still sitting in the cookie jar.
	client, rec := newRecordingBackend(t, http.StatusOK, `{"sessionToken":"fresh-token"}`)

	token, err := client.ValidateCode(context.Background(), "GOLD123")
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", token)
	assert.Equal(t, "", rec.Auth)
	assert.Equal(t, "/api/validate-code", rec.Path)
	assert.Equal(t, http.MethodPost, rec.Method)
}

func TestBackendErrorSurfacesMessage(t *testing.T) {
	client, _ := newRecordingBackend(t, http.StatusBadRequest, `{"error":"Invalid or expired invite code"}`)

	_, err := client.ValidateCode(context.Background(), "BAD")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Invalid or expired invite code", apiErr.Message)
	assert.Equal(t, "Invalid or expired invite code", ErrorMessage(err, "fallback"))
}

func TestBackendErrorWithoutBodyFallsBack(t *testing.T) {
	client, _ := newRecordingBackend(t, http.StatusInternalServerError, ``)

	_, err := client.AdminListings(context.Background(), Credentials{Admin: "tok"})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "Internal Server Error", apiErr.Message)
}

func TestIsAuthError(t *testing.T) {
	assert.True(t, IsAuthError(&APIError{Status: http.StatusUnauthorized}))
	assert.True(t, IsAuthError(&APIError{Status: http.StatusForbidden}))
	assert.False(t, IsAuthError(&APIError{Status: http.StatusNotFound}))
	assert.False(t, IsAuthError(context.Canceled))
	assert.False(t, IsAuthError(nil))
}

func TestAdminLoginParsesProfile(t *testing.T) {
	client, rec := newRecordingBackend(t, http.StatusOK,
		`{"token":"jwt-abc","email":"concierge@luxcoin.example","_id":"a1"}`)

	token, profile, err := client.AdminLogin(context.Background(), "concierge@luxcoin.example", "secret")
	require.NoError(t, err)
	assert.Equal(t, "jwt-abc", token)
	assert.Equal(t, "concierge@luxcoin.example", profile.Email)
	assert.Equal(t, "a1", profile.ID)
	assert.Equal(t, "/api/admin/login", rec.Path)
	assert.Equal(t, "", rec.Auth)
}

func TestCreateInviteCodesPayload(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"_id":"c1","code":"LUX-0001","usageLimit":2,"usageCount":0,"status":"active","notes":"Spring event"}]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	codes, err := client.CreateInviteCodes(context.Background(), Credentials{Admin: "tok"}, 5, 2, "Spring event")
	require.NoError(t, err)

	assert.Equal(t, float64(5), got["quantity"])
	assert.Equal(t, float64(2), got["usageLimit"])
	assert.Equal(t, "Spring event", got["notes"])
	require.Len(t, codes, 1)
	assert.Equal(t, "LUX-0001", codes[0].Code)
}
