package web

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storekit/catalog-api/internal/core/ports"
)

// SessionCookie is the name of the cookie holding the server-side session id.
const SessionCookie = "catalog_session"

// Context keys set by RequireSession.
const (
	ctxUserID    = "web_user_id"
	ctxSessionID = "web_session_id"
)

// RequireSession resolves the session cookie against the store and redirects
// guests to the login page. The id is re-validated on every request, so a
// destroyed session stops working immediately.
func RequireSession(sessions ports.SessionStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				return c.Redirect(http.StatusFound, "/login")
			}

			sess, err := sessions.Get(c.Request().Context(), cookie.Value)
			if err != nil {
				return err
			}
			if sess == nil {
				clearSessionCookie(c)
				return c.Redirect(http.StatusFound, "/login")
			}

			c.Set(ctxUserID, sess.UserID)
			c.Set(ctxSessionID, sess.ID)
			return next(c)
		}
	}
}

func setSessionCookie(c echo.Context, id string) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func currentUserID(c echo.Context) string {
	id, _ := c.Get(ctxUserID).(string)
	return id
}

// csrfToken exposes the token minted by Echo's CSRF middleware to templates.
func csrfToken(c echo.Context) string {
	token, _ := c.Get("csrf").(string)
	return token
}
