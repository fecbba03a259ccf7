package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/ticketapp/internal/domain"
	"github.com/spec-kit/ticketapp/internal/repository"
)

func TestPasswordHasherBcrypt(t *testing.T) {
	h := NewPasswordHasher(true, 4)
	stored, err := h.Hash("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", stored)
	assert.NoError(t, h.Compare(stored, "secret1"))
	assert.ErrorIs(t, h.Compare(stored, "secret2"), ErrPasswordMismatch)
}

func TestPasswordHasherAcceptsLongPasswords(t *testing.T) {
	h := NewPasswordHasher(true, 4)
	long := strings.Repeat("p", 73)
	stored, err := h.Hash(long)
	require.NoError(t, err)
	assert.NoError(t, h.Compare(stored, long))

	// Past bcrypt's 72-byte window the tail still counts.
	assert.ErrorIs(t, h.Compare(stored, strings.Repeat("p", 72)+"q"), ErrPasswordMismatch)
	assert.ErrorIs(t, h.Compare(stored, strings.Repeat("p", 74)), ErrPasswordMismatch)
}

func TestPasswordHasherPlaintext(t *testing.T) {
	h := NewPasswordHasher(false, 0)
	stored, err := h.Hash("secret1")
	require.NoError(t, err)
	assert.Equal(t, "secret1", stored)
	assert.NoError(t, h.Compare(stored, "secret1"))
	assert.ErrorIs(t, h.Compare(stored, "Secret1"), ErrPasswordMismatch)
}

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("k", time.Hour)
	token, exp, err := tm.GenerateToken("scope-1")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "scope-1", claims.ScopeID)

	_, err = NewTokenManager("other", time.Hour).ParseToken(token)
	assert.Error(t, err)
}

func TestTokenExpiresAfterTTL(t *testing.T) {
	issued := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	tm := NewTokenManager("k", time.Hour)
	tm.now = func() time.Time { return issued }
	token, _, err := tm.GenerateToken("scope-1")
	require.NoError(t, err)

	tm.now = func() time.Time { return issued.Add(59 * time.Minute) }
	_, err = tm.ParseToken(token)
	require.NoError(t, err)

	tm.now = func() time.Time { return issued.Add(61 * time.Minute) }
	_, err = tm.ParseToken(token)
	assert.Error(t, err)
}

func TestGenerateTokenRequiresScope(t *testing.T) {
	_, _, err := NewTokenManager("k", time.Hour).GenerateToken("")
	assert.ErrorIs(t, err, ErrInvalidClientToken)
}

func TestEvaluatePolicy(t *testing.T) {
	tests := []struct {
		path          string
		authenticated bool
		redirect      string
		notice        bool
	}{
		{"/dashboard", false, PathLogin, true},
		{"/dashboard/", false, PathLogin, true},
		{"/tickets", false, PathLogin, true},
		{"/tickets/abc/edit", false, PathLogin, true},
		{"/dashboard", true, "", false},
		{"/tickets", true, "", false},
		{"/auth/login", true, PathDashboard, false},
		{"/auth/signup/", true, PathDashboard, false},
		{"/auth/login", false, "", false},
		{"/", false, "", false},
		{"/", true, "", false},
		{"/ticketsx", false, "", false},
	}
	for _, tc := range tests {
		d := Evaluate(tc.path, tc.authenticated)
		assert.Equal(t, tc.redirect, d.Redirect, "%s auth=%v", tc.path, tc.authenticated)
		assert.Equal(t, tc.notice, d.Notice != nil, "%s auth=%v", tc.path, tc.authenticated)
	}
}

type stubSessions struct {
	session *domain.Session
	err     error
	scopes  []string
}

func (s *stubSessions) GetSession(ctx context.Context) (*domain.Session, error) {
	s.scopes = append(s.scopes, repository.ScopeFromContext(ctx))
	return s.session, s.err
}

type recordingNotifier struct {
	messages []string
}

func (r *recordingNotifier) Notify(_ context.Context, _ domain.NoticeLevel, message string) error {
	r.messages = append(r.messages, message)
	return nil
}

func newGuardedApp(sessions SessionReader, notifier Notifier) (*fiber.App, *TokenManager) {
	tm := NewTokenManager("test-secret", time.Hour)
	mw := NewClientScopeMiddleware(tm, sessions, CookieConfig{Name: "client"}, zap.NewNop())
	app := fiber.New()
	app.Use(mw.Handle, Guard(notifier))
	handler := func(c *fiber.Ctx) error { return c.SendString("scope=" + ScopeFromContext(c)) }
	app.Get("/dashboard", handler)
	app.Get("/auth/login", handler)
	return app, tm
}

func TestClientScopeIssuesCookieAndGuardRedirects(t *testing.T) {
	sessions := &stubSessions{}
	notifier := &recordingNotifier{}
	app, _ := newGuardedApp(sessions, notifier)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, PathLogin, resp.Header.Get("Location"))
	assert.Equal(t, []string{MsgSessionExpired}, notifier.messages)

	cookies := resp.Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "client", cookies[0].Name)
	require.Len(t, sessions.scopes, 1)
	assert.NotEmpty(t, sessions.scopes[0])
}

func TestClientScopeReusesValidCookie(t *testing.T) {
	sessions := &stubSessions{session: &domain.Session{Token: "t", UserID: "u"}}
	app, tm := newGuardedApp(sessions, &recordingNotifier{})
	token, _, err := tm.GenerateToken("known-scope")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "client", Value: token})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, resp.Cookies())
	assert.Equal(t, []string{"known-scope"}, sessions.scopes)

	req = httptest.NewRequest(http.MethodGet, "/auth/login", nil)
	req.AddCookie(&http.Cookie{Name: "client", Value: token})
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, PathDashboard, resp.Header.Get("Location"))
}

func TestClientScopeReplacesForgedCookie(t *testing.T) {
	sessions := &stubSessions{}
	app, _ := newGuardedApp(sessions, &recordingNotifier{})

	req := httptest.NewRequest(http.MethodGet, "/auth/login", nil)
	req.AddCookie(&http.Cookie{Name: "client", Value: "not-a-token"})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, resp.Cookies(), 1)
}

func TestClientScopeSurfacesSessionErrors(t *testing.T) {
	app, _ := newGuardedApp(&stubSessions{err: errors.New("down")}, nil)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/auth/login", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}
