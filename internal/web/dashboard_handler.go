package web

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storekit/catalog-api/internal/core/domain"
	"github.com/storekit/catalog-api/internal/core/ports"
)

type DashboardHandler struct {
	users ports.UserRepository
	roles ports.RoleRepository
}

func NewDashboardHandler(users ports.UserRepository, roles ports.RoleRepository) *DashboardHandler {
	return &DashboardHandler{users: users, roles: roles}
}

type dashboardUser struct {
	Name  string
	Email string
	Roles []string
}

func (h *DashboardHandler) Index(c echo.Context) error {
	ctx := c.Request().Context()

	users, err := h.users.List(ctx)
	if err != nil {
		return err
	}
	rolesByUser, err := h.roles.RoleNamesByUser(ctx)
	if err != nil {
		return err
	}

	rows := make([]dashboardUser, 0, len(users))
	for _, u := range users {
		roles := rolesByUser[u.ID]
		if len(roles) == 0 {
			roles = []string{domain.RoleUser}
		}
		rows = append(rows, dashboardUser{Name: u.Name, Email: u.Email, Roles: roles})
	}

	return c.Render(http.StatusOK, "dashboard.html", map[string]any{
		"CSRF":  csrfToken(c),
		"Users": rows,
	})
}
