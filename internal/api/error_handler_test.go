package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/storekit/catalog-api/internal/core/domain"
	"github.com/storekit/catalog-api/internal/web"
)

func newErrorTestEcho() *echo.Echo {
	e := echo.New()
	e.Renderer = web.NewRenderer()
	e.HTTPErrorHandler = NewHTTPErrorHandler(zerolog.Nop())
	return e
}

func TestErrorHandler_APIRendersJSONEnvelope(t *testing.T) {
	e := newErrorTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/products/abc", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	e.HTTPErrorHandler(domain.ErrProductNotFound, c)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); !strings.Contains(ct, echo.MIMEApplicationJSON) {
		t.Fatalf("expected JSON content type, got %q", ct)
	}
	if !strings.Contains(rec.Body.String(), `"status":false`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestErrorHandler_DashboardRendersHTMLPage(t *testing.T) {
	e := newErrorTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/dashboard/products", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	e.HTTPErrorHandler(errors.New("mongo connection reset"), c)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); !strings.Contains(ct, echo.MIMETextHTML) {
		t.Fatalf("expected HTML content type, got %q", ct)
	}
	body := rec.Body.String()
	if strings.Contains(body, `"status"`) {
		t.Fatalf("JSON envelope leaked to the browser: %s", body)
	}
	if !strings.Contains(body, "mongo connection reset") {
		t.Fatalf("expected message in page: %s", body)
	}
}

func TestErrorHandler_HTMLClientGetsHTMLAnywhere(t *testing.T) {
	e := newErrorTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/nowhere", nil)
	req.Header.Set(echo.HeaderAccept, "text/html,application/xhtml+xml")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	e.HTTPErrorHandler(echo.NewHTTPError(http.StatusNotFound, "Not Found"), c)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); !strings.Contains(ct, echo.MIMETextHTML) {
		t.Fatalf("expected HTML content type, got %q", ct)
	}
}

func TestErrorHandler_KeepsHTTPErrorCodes(t *testing.T) {
	e := newErrorTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	e.HTTPErrorHandler(echo.NewHTTPError(http.StatusUnauthorized, "Access not Approve"), c)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Access not Approve") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}
