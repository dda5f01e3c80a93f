package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/storekit/catalog-api/internal/core/domain"
)

type stubAuthService struct {
	user    *domain.User
	authErr error
}

func (s *stubAuthService) Register(_ context.Context, name, email, _ string) (*domain.User, error) {
	if s.authErr != nil {
		return nil, s.authErr
	}
	s.user = &domain.User{ID: "user-1", Name: name, Email: email}
	return s.user, nil
}

func (s *stubAuthService) Authenticate(_ context.Context, _, _ string) (*domain.User, error) {
	if s.authErr != nil {
		return nil, s.authErr
	}
	return s.user, nil
}

func (s *stubAuthService) Login(_ context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.Authenticate(context.Background(), email, password)
	if err != nil {
		return "", nil, err
	}
	return "bearer", user, nil
}

func (s *stubAuthService) Logout(_ context.Context, _ string) error { return nil }

func newWebTestContext(method, path string, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Renderer = NewRenderer()

	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func sessionCookieValue(rec *httptest.ResponseRecorder) string {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == SessionCookie {
			return cookie.Value
		}
	}
	return ""
}

func TestWebLogin_Success(t *testing.T) {
	sessions := newStubSessionStore()
	auth := &stubAuthService{user: &domain.User{ID: "user-1", Email: "alice@example.com"}}
	h := NewAuthHandler(auth, sessions)

	c, rec := newWebTestContext(http.MethodPost, "/login", url.Values{
		"email":    {"alice@example.com"},
		"password": {"pass123"},
	})

	if err := h.Login(c); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/dashboard" {
		t.Fatalf("expected redirect to /dashboard, got %q", loc)
	}

	id := sessionCookieValue(rec)
	if id == "" {
		t.Fatalf("expected session cookie to be set")
	}
	if sessions.sessions[id] != "user-1" {
		t.Fatalf("cookie id %q not backed by a session", id)
	}
}

func TestWebLogin_DestroysPriorSession(t *testing.T) {
	sessions := newStubSessionStore()
	old, err := sessions.Create(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	auth := &stubAuthService{user: &domain.User{ID: "user-1", Email: "alice@example.com"}}
	h := NewAuthHandler(auth, sessions)

	c, rec := newWebTestContext(http.MethodPost, "/login", url.Values{
		"email":    {"alice@example.com"},
		"password": {"pass123"},
	})
	c.Request().AddCookie(&http.Cookie{Name: SessionCookie, Value: old.ID})

	if err := h.Login(c); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	// The old id must die with the rotation, not linger until its TTL.
	if _, ok := sessions.sessions[old.ID]; ok {
		t.Fatalf("prior session still valid after login")
	}
	fresh := sessionCookieValue(rec)
	if fresh == "" || fresh == old.ID {
		t.Fatalf("expected a fresh session id, got %q", fresh)
	}
	if sessions.sessions[fresh] != "user-1" {
		t.Fatalf("fresh cookie id %q not backed by a session", fresh)
	}
}

func TestWebLogin_FailureRerendersForm(t *testing.T) {
	auth := &stubAuthService{authErr: domain.ErrInvalidCredentials}
	h := NewAuthHandler(auth, newStubSessionStore())

	c, rec := newWebTestContext(http.MethodPost, "/login", url.Values{
		"email":    {"alice@example.com"},
		"password": {"wrong"},
	})

	if err := h.Login(c); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Email and password do not match") {
		t.Fatalf("expected error message in page")
	}
	// The submitted email survives the round trip.
	if !strings.Contains(rec.Body.String(), "alice@example.com") {
		t.Fatalf("expected email to be re-filled")
	}
	if sessionCookieValue(rec) != "" {
		t.Fatalf("failed login must not set a session cookie")
	}
}

func TestWebRegister_PasswordConfirmationMismatch(t *testing.T) {
	auth := &stubAuthService{}
	h := NewAuthHandler(auth, newStubSessionStore())

	c, rec := newWebTestContext(http.MethodPost, "/register", url.Values{
		"name":                  {"Alice"},
		"email":                 {"alice@example.com"},
		"password":              {"pass123"},
		"password_confirmation": {"different"},
	})

	if err := h.Register(c); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if auth.user != nil {
		t.Fatalf("mismatched confirmation must not create an account")
	}
}

func TestWebRegister_SuccessLogsIn(t *testing.T) {
	sessions := newStubSessionStore()
	h := NewAuthHandler(&stubAuthService{}, sessions)

	c, rec := newWebTestContext(http.MethodPost, "/register", url.Values{
		"name":                  {"Alice"},
		"email":                 {"alice@example.com"},
		"password":              {"pass123"},
		"password_confirmation": {"pass123"},
	})

	if err := h.Register(c); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if sessionCookieValue(rec) == "" {
		t.Fatalf("expected registration to start a session")
	}
}

func TestWebLogout_DestroysSession(t *testing.T) {
	sessions := newStubSessionStore()
	sess, err := sessions.Create(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	h := NewAuthHandler(&stubAuthService{}, sessions)

	c, rec := newWebTestContext(http.MethodPost, "/logout", url.Values{})
	c.Set(ctxSessionID, sess.ID)

	if err := h.Logout(c); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %q", loc)
	}
	if len(sessions.destroyed) != 1 || sessions.destroyed[0] != sess.ID {
		t.Fatalf("session not destroyed: %v", sessions.destroyed)
	}

	cleared := false
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == SessionCookie && cookie.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatalf("expected session cookie to be expired")
	}
}
