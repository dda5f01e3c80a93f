package api

import (
	"errors"
	"fmt"
	"html"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/storekit/catalog-api/internal/core/domain"
)

// errorEnvelope is the canonical failure body on both surfaces of the JSON API.
type errorEnvelope struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Keeps the codes chosen by middleware and handlers (echo.HTTPError).
//   - Maps domain errors that escape a handler to deterministic codes.
//   - Logs anything unexpected and renders it as a 500 whose body includes the
//     error message, matching the system this replaces.
//
// Errors escaping the HTML surface render an error page instead of the JSON
// envelope.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)

		if isWebRequest(c) {
			renderErrorPage(c, code, msg)
			return
		}
		_ = c.JSON(code, errorEnvelope{Status: false, Message: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (middleware rejections, bind failures, router 404s).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrInvalidAsset):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "email and password not match"
	case errors.Is(err, domain.ErrTokenRevoked):
		return http.StatusUnauthorized, "Access not Approve"
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound, "product not found"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, err.Error()
}

// isWebRequest reports whether the failure belongs to the HTML surface: either
// a dashboard/auth route or a client that asked for HTML.
func isWebRequest(c echo.Context) bool {
	p := c.Request().URL.Path
	if strings.HasPrefix(p, "/dashboard") || p == "/login" || p == "/register" {
		return true
	}
	return strings.Contains(c.Request().Header.Get(echo.HeaderAccept), echo.MIMETextHTML)
}

func renderErrorPage(c echo.Context, code int, msg string) {
	if err := c.Render(code, "error.html", map[string]any{
		"Code":    code,
		"Status":  http.StatusText(code),
		"Message": msg,
	}); err != nil {
		_ = c.HTML(code, fmt.Sprintf("<h1>%d %s</h1><p>%s</p>",
			code, http.StatusText(code), html.EscapeString(msg)))
	}
}
