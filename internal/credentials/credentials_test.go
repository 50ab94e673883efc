package credentials

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore() *Store {
	cookies := sessions.NewCookieStore([]byte("0123456789abcdef0123456789abcdef"))
	return NewStore(cookies)
}

// replay builds a request carrying the cookies a previous response set.
func replay(resp *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range resp.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestTokenRoundTrip(t *testing.T) {
	store := newTestStore()

	w := httptest.NewRecorder()
	store.SetToken(w, httptest.NewRequest(http.MethodPost, "/validate-code", nil), Session, "session-jwt")

	req := replay(w)
	assert.Equal(t, "session-jwt", store.Token(req, Session))
	assert.Equal(t, "", store.Token(req, Admin))
}

func TestTokensAreIndependent(t *testing.T) {
	store := newTestStore()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/", nil)
	store.SetToken(w, r, Session, "portal-token")
	store.SetToken(w, r, Admin, "admin-token")

	req := replay(w)
	snap := store.Snapshot(req)
	assert.Equal(t, "portal-token", snap.Session)
	assert.Equal(t, "admin-token", snap.Admin)

	// clearing one side leaves the other alone
	w2 := httptest.NewRecorder()
	store.ClearToken(w2, req, Admin)

	req2 := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		if c.Name != "lux-admin" {
			req2.AddCookie(c)
		}
	}
	for _, c := range w2.Result().Cookies() {
		req2.AddCookie(c)
	}
	assert.Equal(t, "portal-token", store.Token(req2, Session))
	assert.Equal(t, "", store.Token(req2, Admin))
}

func TestClearTokenExpiresCookie(t *testing.T) {
	store := newTestStore()

	w := httptest.NewRecorder()
	store.ClearToken(w, httptest.NewRequest(http.MethodGet, "/logout", nil), Session)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	var found bool
	for _, c := range cookies {
		if c.Name == "lux-portal" {
			found = true
			assert.Less(t, c.MaxAge, 0)
		}
	}
	assert.True(t, found)
}

func TestGarbageCookieReadsAsNoToken(t *testing.T) {
	store := newTestStore()

	req := httptest.NewRequest(http.MethodGet, "/portal", nil)
	req.AddCookie(&http.Cookie{Name: "lux-portal", Value: "not-a-valid-session"})

	assert.Equal(t, "", store.Token(req, Session))
}
