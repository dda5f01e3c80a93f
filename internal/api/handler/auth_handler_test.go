package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/storekit/catalog-api/internal/api/middleware"
	"github.com/storekit/catalog-api/internal/core/domain"
)

type stubAuthService struct {
	registered   *domain.User
	registerErr  error
	loginToken   string
	loginUser    *domain.User
	loginErr     error
	loggedOutIDs []string
}

func (s *stubAuthService) Register(_ context.Context, name, email, _ string) (*domain.User, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	s.registered = &domain.User{ID: "user-1", Name: name, Email: email}
	return s.registered, nil
}

func (s *stubAuthService) Authenticate(_ context.Context, _, _ string) (*domain.User, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return s.loginUser, nil
}

func (s *stubAuthService) Login(_ context.Context, _, _ string) (string, *domain.User, error) {
	if s.loginErr != nil {
		return "", nil, s.loginErr
	}
	return s.loginToken, s.loginUser, nil
}

func (s *stubAuthService) Logout(_ context.Context, tokenID string) error {
	s.loggedOutIDs = append(s.loggedOutIDs, tokenID)
	return nil
}

func newAuthTestContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register_Success(t *testing.T) {
	svc := &stubAuthService{}
	h := NewAuthHandler(svc)

	c, rec := newAuthTestContext(t, http.MethodPost, "/registerUser",
		`{"name":"Alice","email":"alice@example.com","password":"pass123"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp registerResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Status || resp.Message != "Successfully create User" {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
	if resp.Data.Email != "alice@example.com" {
		t.Fatalf("unexpected data: %+v", resp.Data)
	}
}

func TestAuthHandler_Register_ValidationIs500(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, rec := newAuthTestContext(t, http.MethodPost, "/registerUser",
		`{"name":"Alice","email":"not-an-email","password":"pass"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 for validation failure, got %d", rec.Code)
	}

	var resp statusEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status || !strings.HasPrefix(resp.Message, "Failed to create User: ") {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{registerErr: domain.ErrEmailTaken})

	c, rec := newAuthTestContext(t, http.MethodPost, "/registerUser",
		`{"name":"Bob","email":"bob@example.com","password":"pass"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	svc := &stubAuthService{
		loginToken: "signed-bearer",
		loginUser:  &domain.User{ID: "user-1", Email: "carol@example.com"},
	}
	h := NewAuthHandler(svc)

	c, rec := newAuthTestContext(t, http.MethodPost, "/loginUser",
		`{"email":"carol@example.com","password":"s3cret"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Status || resp.Message != "Successfully login User" || resp.Token != "signed-bearer" {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
}

func TestAuthHandler_Login_WrongCredentials(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{loginErr: domain.ErrInvalidCredentials})

	c, rec := newAuthTestContext(t, http.MethodPost, "/loginUser",
		`{"email":"carol@example.com","password":"wrong"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	var resp statusEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status || resp.Message != "email and password not match" {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
}

func TestAuthHandler_Login_ValidationFailure(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, rec := newAuthTestContext(t, http.MethodPost, "/loginUser",
		`{"email":"","password":""}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	var resp loginFailResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Message != "Fail Process Login" || resp.Data == "" {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
}

func TestAuthHandler_Logout_RevokesRequestToken(t *testing.T) {
	svc := &stubAuthService{}
	h := NewAuthHandler(svc)

	c, rec := newAuthTestContext(t, http.MethodPost, "/logout", "")
	c.Set(middleware.CtxTokenID, "tok-1")

	if err := h.Logout(c); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(svc.loggedOutIDs) != 1 || svc.loggedOutIDs[0] != "tok-1" {
		t.Fatalf("expected request token revoked, got %v", svc.loggedOutIDs)
	}
}
