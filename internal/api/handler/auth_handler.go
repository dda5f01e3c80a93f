package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storekit/catalog-api/internal/api/metrics"
	"github.com/storekit/catalog-api/internal/api/middleware"
	"github.com/storekit/catalog-api/internal/core/domain"
	"github.com/storekit/catalog-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      200   {object}  registerResponse
// @Failure      500   {object}  statusEnvelope
// @Router       /registerUser [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusInternalServerError, statusEnvelope{
			Status:  false,
			Message: "Failed to create User: invalid payload",
		})
	}
	// Validation failures surface as 500 here, not 400: the contract of the
	// original register endpoint.
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusInternalServerError, statusEnvelope{
			Status:  false,
			Message: "Failed to create User: " + err.Error(),
		})
	}

	user, err := h.authService.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, statusEnvelope{
			Status:  false,
			Message: "Failed to create User: " + err.Error(),
		})
	}

	metrics.RegistrationsTotal.Inc()
	return c.JSON(http.StatusOK, registerResponse{
		Status:  true,
		Message: "Successfully create User",
		Data:    registerData{ID: user.ID, Name: user.Name, Email: user.Email},
	})
}

// Login authenticates and returns a bearer token carrying the caller's role
// names as abilities.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  loginResponse
// @Failure      401   {object}  loginFailResponse
// @Failure      500   {object}  statusEnvelope
// @Router       /loginUser [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusUnauthorized, loginFailResponse{
			Status:  false,
			Message: "Fail Process Login",
			Data:    "invalid payload",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnauthorized, loginFailResponse{
			Status:  false,
			Message: "Fail Process Login",
			Data:    err.Error(),
		})
	}

	token, _, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, statusEnvelope{
				Status:  false,
				Message: "email and password not match",
			})
		}
		return c.JSON(http.StatusInternalServerError, statusEnvelope{
			Status:  false,
			Message: "Failed to login User: " + err.Error(),
		})
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, loginResponse{
		Status:  true,
		Message: "Successfully login User",
		Token:   token,
	})
}

// Logout revokes the bearer token used on this request. Only that token dies;
// other sessions of the same user keep working.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  statusEnvelope
// @Failure      500  {object}  statusEnvelope
// @Router       /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	tokenID, _ := c.Get(middleware.CtxTokenID).(string)

	if err := h.authService.Logout(c.Request().Context(), tokenID); err != nil {
		return c.JSON(http.StatusInternalServerError, statusEnvelope{
			Status:  false,
			Message: "Failed to log out User: " + err.Error(),
		})
	}

	metrics.TokensRevokedTotal.Inc()
	return c.JSON(http.StatusOK, statusEnvelope{
		Status:  true,
		Message: "Successfully logged out",
	})
}
