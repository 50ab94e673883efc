package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KoderSpark/lux-coin-frontend/internal/credentials"
)

func TestSubmitInquiryForwardsPayload(t *testing.T) {
	var got map[string]any
	env := newTestEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/inquiries", r.URL.Path)
		assert.Equal(t, "Bearer session-jwt", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	h := &PortalHandler{API: env.api, Creds: env.creds, SessionStore: env.sessionStore, Templates: env.templates}

	req := postForm("/portal/listings/l1/inquiry", url.Values{
		"name":              {"Ava Laurent"},
		"email":             {"ava@example.com"},
		"phone":             {"+33 6 12 34 56 78"},
		"country":           {"France"},
		"preferred_contact": {"whatsapp"},
		"request_type":      {"purchase"},
		"message":           {"Interested in a private viewing."},
	})
	req.SetPathValue("id", "l1")
	w := httptest.NewRecorder()
	env.creds.SetToken(w, httptest.NewRequest(http.MethodPost, "/", nil), credentials.Session, "session-jwt")
	for _, c := range w.Result().Cookies() {
		req.AddCookie(c)
	}

	resp := httptest.NewRecorder()
	h.SubmitInquiry(resp, req)

	assert.Equal(t, "l1", got["listingId"])
	assert.Equal(t, "Ava Laurent", got["name"])
	assert.Equal(t, "purchase", got["requestType"])
	assert.Equal(t, "whatsapp", got["preferredContact"])
	assert.Equal(t, http.StatusSeeOther, resp.Code)
	assert.Equal(t, "/portal/listings/l1", resp.Header().Get("Location"))
}

func TestSubmitInquiryValidation(t *testing.T) {
	backendHit := false
	env := newTestEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		backendHit = true
	}))
	h := &PortalHandler{API: env.api, Creds: env.creds, SessionStore: env.sessionStore, Templates: env.templates}

	tests := []struct {
		name string
		form url.Values
	}{
		{
			name: "missing name",
			form: url.Values{"email": {"a@b.com"}, "message": {"hi"}},
		},
		{
			name: "missing email",
			form: url.Values{"name": {"Ava"}, "message": {"hi"}},
		},
		{
			name: "malformed email",
			form: url.Values{"name": {"Ava"}, "email": {"not-an-email"}, "message": {"hi"}},
		},
		{
			name: "missing message",
			form: url.Values{"name": {"Ava"}, "email": {"a@b.com"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := postForm("/portal/listings/l1/inquiry", tt.form)
			req.SetPathValue("id", "l1")
			w := httptest.NewRecorder()
			h.SubmitInquiry(w, req)

			assert.Equal(t, http.StatusSeeOther, w.Code)
			assert.Equal(t, "/portal/listings/l1", w.Header().Get("Location"))
		})
	}
	assert.False(t, backendHit)
}

func TestSubmitInquiryDefaultsSelections(t *testing.T) {
	var got map[string]any
	env := newTestEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	h := &PortalHandler{API: env.api, Creds: env.creds, SessionStore: env.sessionStore, Templates: env.templates}

	req := postForm("/portal/listings/l1/inquiry", url.Values{
		"name":              {"Ava"},
		"email":             {"ava@example.com"},
		"message":           {"hello"},
		"request_type":      {"made-up"},
		"preferred_contact": {"telegraph"},
	})
	req.SetPathValue("id", "l1")
	w := httptest.NewRecorder()
	h.SubmitInquiry(w, req)

	assert.Equal(t, "enquiry", got["requestType"])
	assert.Equal(t, "email", got["preferredContact"])
}

func TestHomeHidesFeaturedRailWhileFiltering(t *testing.T) {
	var featuredRequests int
	env := newTestEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("featured") == "true" {
			featuredRequests++
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	h := &PortalHandler{API: env.api, Creds: env.creds, SessionStore: env.sessionStore, Templates: env.templates}

	w := httptest.NewRecorder()
	h.Home(w, httptest.NewRequest(http.MethodGet, "/portal", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, featuredRequests)

	w = httptest.NewRecorder()
	h.Home(w, httptest.NewRequest(http.MethodGet, "/portal?search=yacht", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, featuredRequests, "filtered view must not fetch the featured rail")
}

func TestExpiredSessionTokenRedirectsToGate(t *testing.T) {
	env := newTestEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"Session expired"}`))
	}))
	h := &PortalHandler{API: env.api, Creds: env.creds, SessionStore: env.sessionStore, Templates: env.templates}

	req := env.withToken(t, http.MethodGet, "/portal", credentials.Session, "stale-jwt")
	w := httptest.NewRecorder()
	h.Home(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	var cleared bool
	for _, c := range w.Result().Cookies() {
		if c.Name == "lux-portal" && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared)
}
