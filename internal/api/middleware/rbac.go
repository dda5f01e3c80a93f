package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RBAC enforces capability checks against the abilities snapshotted into the
// caller's token. The request proceeds when any held ability is allowed.
func RBAC(allowedAbilities ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedAbilities))
	for _, a := range allowedAbilities {
		allowed[a] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			abilities, _ := c.Get(CtxAbilities).([]string)
			for _, a := range abilities {
				if _, ok := allowed[a]; ok {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, "forbidden")
		}
	}
}
