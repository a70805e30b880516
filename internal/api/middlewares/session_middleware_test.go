package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func issueCookie(t *testing.T, c *SessionCookies, id string) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	require.NoError(t, c.Issue(rec, id))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

func captureID(c *SessionCookies, cookie *http.Cookie) string {
	var got string
	h := c.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = SessionIDFromContext(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	h.ServeHTTP(httptest.NewRecorder(), req)
	return got
}

func TestSessionCookies_RoundTrip(t *testing.T) {
	c, err := NewSessionCookies("secret", time.Hour, false)
	require.NoError(t, err)

	cookie := issueCookie(t, c, "abc-123")

	assert.Equal(t, CookieName, cookie.Name)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, "abc-123", captureID(c, cookie))
}

func TestSessionCookies_RejectsForeignKey(t *testing.T) {
	ours, _ := NewSessionCookies("ours", time.Hour, false)
	theirs, _ := NewSessionCookies("theirs", time.Hour, false)

	assert.Equal(t, "", captureID(ours, issueCookie(t, theirs, "abc")))
}

func TestSessionCookies_RejectsExpired(t *testing.T) {
	c, _ := NewSessionCookies("secret", time.Hour, false)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		SessionID: "old",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	assert.Equal(t, "", captureID(c, &http.Cookie{Name: CookieName, Value: token}))
}

func TestSessionCookies_NoCookie(t *testing.T) {
	c, _ := NewSessionCookies("", time.Hour, false)
	assert.Equal(t, "", captureID(c, nil))
}

func TestSessionCookies_Clear(t *testing.T) {
	c, _ := NewSessionCookies("secret", time.Hour, false)
	rec := httptest.NewRecorder()
	c.Clear(rec)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].MaxAge < 0)
}
