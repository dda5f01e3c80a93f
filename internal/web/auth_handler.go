package web

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storekit/catalog-api/internal/api/metrics"
	"github.com/storekit/catalog-api/internal/core/ports"
)

// AuthHandler drives the HTML login/register/logout flows backed by
// server-side sessions.
type AuthHandler struct {
	auth     ports.AuthService
	sessions ports.SessionStore
}

func NewAuthHandler(auth ports.AuthService, sessions ports.SessionStore) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions}
}

func (h *AuthHandler) ShowLogin(c echo.Context) error {
	return c.Render(http.StatusOK, "login.html", map[string]any{
		"CSRF":  csrfToken(c),
		"Email": "",
	})
}

func (h *AuthHandler) Login(c echo.Context) error {
	email := c.FormValue("email")
	password := c.FormValue("password")

	user, err := h.auth.Authenticate(c.Request().Context(), email, password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return c.Render(http.StatusUnauthorized, "login.html", map[string]any{
			"CSRF":  csrfToken(c),
			"Email": email,
			"Error": "Email and password do not match",
		})
	}

	if err := h.startSession(c, user.ID); err != nil {
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.Redirect(http.StatusFound, "/dashboard")
}

// startSession rotates the session: any id already in the cookie is destroyed
// before a fresh one is minted, so neither a fixated id nor a leftover from a
// previous login stays valid.
func (h *AuthHandler) startSession(c echo.Context, userID string) error {
	ctx := c.Request().Context()

	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		if err := h.sessions.Destroy(ctx, cookie.Value); err != nil {
			return err
		}
	}

	sess, err := h.sessions.Create(ctx, userID)
	if err != nil {
		return err
	}
	setSessionCookie(c, sess.ID)
	return nil
}

func (h *AuthHandler) ShowRegister(c echo.Context) error {
	return c.Render(http.StatusOK, "register.html", map[string]any{
		"CSRF":  csrfToken(c),
		"Name":  "",
		"Email": "",
	})
}

func (h *AuthHandler) Register(c echo.Context) error {
	name := c.FormValue("name")
	email := c.FormValue("email")
	password := c.FormValue("password")
	confirmation := c.FormValue("password_confirmation")

	renderError := func(msg string) error {
		return c.Render(http.StatusUnprocessableEntity, "register.html", map[string]any{
			"CSRF":  csrfToken(c),
			"Name":  name,
			"Email": email,
			"Error": msg,
		})
	}

	if password != confirmation {
		return renderError("Password confirmation does not match")
	}

	user, err := h.auth.Register(c.Request().Context(), name, email, password)
	if err != nil {
		return renderError("Failed to register: " + err.Error())
	}
	metrics.RegistrationsTotal.Inc()

	// Registration logs the new account straight in.
	if err := h.startSession(c, user.ID); err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, "/dashboard")
}

// Logout destroys the server-side session and expires the cookie; the next
// request mints a fresh CSRF token, so the old anti-forgery value dies with
// the session.
func (h *AuthHandler) Logout(c echo.Context) error {
	if id, _ := c.Get(ctxSessionID).(string); id != "" {
		if err := h.sessions.Destroy(c.Request().Context(), id); err != nil {
			return err
		}
	}
	clearSessionCookie(c)
	return c.Redirect(http.StatusFound, "/login")
}
