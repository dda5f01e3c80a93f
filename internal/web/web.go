// Package web serves the session-authenticated HTML surface: login and
// registration forms, the user dashboard, and the resourceful product UI with
// server-side search and pagination.
package web

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/storekit/catalog-api/internal/core/ports"
)

// Deps carries everything the web surface needs from the composition root.
type Deps struct {
	Auth     ports.AuthService
	Sessions ports.SessionStore
	Users    ports.UserRepository
	Roles    ports.RoleRepository
	Products ports.ProductService
	Assets   ports.AssetStore
}

// Register mounts the web routes on e. All form posts go through Echo's CSRF
// middleware; everything behind /dashboard additionally requires a session.
func Register(e *echo.Echo, deps Deps) {
	e.Renderer = NewRenderer()

	authHandler := NewAuthHandler(deps.Auth, deps.Sessions)
	dashboardHandler := NewDashboardHandler(deps.Users, deps.Roles)
	productHandler := NewProductHandler(deps.Products, deps.Roles, deps.Assets)

	csrf := echomiddleware.CSRFWithConfig(echomiddleware.CSRFConfig{
		TokenLookup: "form:_token",
	})
	requireSession := RequireSession(deps.Sessions)

	guest := e.Group("", csrf)
	guest.GET("/login", authHandler.ShowLogin)
	guest.POST("/login", authHandler.Login)
	guest.GET("/register", authHandler.ShowRegister)
	guest.POST("/register", authHandler.Register)

	// Session logout lives under /dashboard so it cannot collide with the
	// bearer-token POST /logout of the JSON API.
	dashboard := e.Group("/dashboard", csrf, requireSession)
	dashboard.GET("", dashboardHandler.Index)
	dashboard.POST("/logout", authHandler.Logout)

	// Mutations are gated on the session only; the templates hide the
	// controls from non-admins, as the original UI did.
	dashboard.GET("/products", productHandler.Index)
	dashboard.GET("/products/new", productHandler.New)
	dashboard.POST("/products", productHandler.Create)
	dashboard.GET("/products/:id", productHandler.Show)
	dashboard.GET("/products/:id/edit", productHandler.Edit)
	dashboard.POST("/products/:id", productHandler.Update)
	dashboard.POST("/products/:id/delete", productHandler.Destroy)
}
