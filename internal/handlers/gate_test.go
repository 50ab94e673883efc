package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KoderSpark/lux-coin-frontend/internal/credentials"
)

func postForm(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestValidateCodeSuccess(t *testing.T) {
	var gotCode string
	env := newTestEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/validate-code", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gotCode = body["code"]
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"sessionToken":"minted-jwt"}`))
	}))
	h := &GateHandler{API: env.api, Creds: env.creds, SessionStore: env.sessionStore, Templates: env.templates}

	w := httptest.NewRecorder()
	h.ValidateCode(w, postForm("/validate-code", url.Values{"code": {"  gold123 "}}))

	// code is trimmed and uppercased before it leaves the server
	assert.Equal(t, "GOLD123", gotCode)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/portal", w.Header().Get("Location"))

	// the minted token must now be readable from the response cookies
	req := httptest.NewRequest(http.MethodGet, "/portal", nil)
	for _, c := range w.Result().Cookies() {
		req.AddCookie(c)
	}
	assert.Equal(t, "minted-jwt", env.creds.Token(req, credentials.Session))
}

func TestValidateCodeRejected(t *testing.T) {
	env := newTestEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"Invalid or expired invite code"}`))
	}))
	h := &GateHandler{API: env.api, Creds: env.creds, SessionStore: env.sessionStore, Templates: env.templates}

	w := httptest.NewRecorder()
	h.ValidateCode(w, postForm("/validate-code", url.Values{"code": {"WRONG"}}))

	// rejection re-renders the gate inline with the backend's own message
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid or expired invite code")
	assert.Contains(t, w.Body.String(), "WRONG")

	// no token cookie was issued
	for _, c := range w.Result().Cookies() {
		assert.NotEqual(t, "lux-portal", c.Name)
	}
}

func TestValidateCodeEmpty(t *testing.T) {
	backendHit := false
	env := newTestEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		backendHit = true
	}))
	h := &GateHandler{API: env.api, Creds: env.creds, SessionStore: env.sessionStore, Templates: env.templates}

	w := httptest.NewRecorder()
	h.ValidateCode(w, postForm("/validate-code", url.Values{"code": {"   "}}))

	assert.False(t, backendHit)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Please enter your invite code.")
}

func TestGateIndexRedirectsUnknownPaths(t *testing.T) {
	env := newTestEnv(t, http.NotFoundHandler())
	h := &GateHandler{API: env.api, Creds: env.creds, SessionStore: env.sessionStore, Templates: env.templates}

	w := httptest.NewRecorder()
	h.Index(w, httptest.NewRequest(http.MethodGet, "/no-such-page", nil))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestLogoutClearsSessionToken(t *testing.T) {
	env := newTestEnv(t, http.NotFoundHandler())
	h := &GateHandler{API: env.api, Creds: env.creds, SessionStore: env.sessionStore, Templates: env.templates}

	req := env.withToken(t, http.MethodGet, "/logout", credentials.Session, "session-jwt")
	w := httptest.NewRecorder()
	h.Logout(w, req)

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
