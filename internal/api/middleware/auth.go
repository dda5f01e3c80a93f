package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/storekit/catalog-api/internal/core/ports"
)

// Context keys set by Auth for downstream middleware and handlers.
const (
	CtxUserID    = "user_id"
	CtxTokenID   = "token_id"
	CtxAbilities = "abilities"
)

// unauthenticatedMessage matches the body the original system returned when a
// bearer was missing or no longer accepted.
const unauthenticatedMessage = "Access not Approve"

// Auth validates the bearer JWT and confirms its id is still on the token
// allowlist, so a revoked token fails even while its signature verifies. The
// abilities injected into context come from the persisted record, the snapshot
// taken at issuance.
func Auth(jwtSecret string, tokens ports.TokenRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, unauthenticatedMessage)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, unauthenticatedMessage)
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, unauthenticatedMessage)
			}

			jti, _ := claims["jti"].(string)
			sub, _ := claims["sub"].(string)
			if jti == "" || sub == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, unauthenticatedMessage)
			}

			record, err := tokens.Find(c.Request().Context(), jti)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, unauthenticatedMessage)
			}

			c.Set(CtxUserID, sub)
			c.Set(CtxTokenID, jti)
			c.Set(CtxAbilities, record.Abilities)

			return next(c)
		}
	}
}
