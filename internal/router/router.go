package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/example/mediatheque/internal/handler"
	"github.com/example/mediatheque/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance. Currently it exposes only a health check, used by
// load balancers or monitoring systems to verify the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes and applies the
// necessary middleware. Unauthenticated operations live under /v1/auth,
// while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	// Operations that do not require an existing session: register, login,
	// refresh. Each handler is responsible for generating or exchanging
	// tokens.
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Refresh rotates the refresh token and returns a new pair.
	g.POST("/refresh", a.Refresh)
	// Logout accepts either a bearer access token (revokes every session of
	// that user) or a JSON body with a `refresh_token` (revokes that one).
	g.POST("/logout", a.Logout)

	// Routes that require a valid access token. Any authenticated role may
	// call them; the middleware rejects requests with missing or unknown
	// roles.
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireAnyRole())
	auth.GET("/me", a.Me)
}

// RegisterCatalog registers the unauthenticated browse endpoints for the
// album catalog. These routes apply no JWT or role middleware; the optional
// extra middleware (response cache, rate limiter) is appended by the caller.
func RegisterCatalog(e *echo.Echo, h *handler.CatalogHandler, mw ...echo.MiddlewareFunc) {
	e.GET("/v1/albums", h.ListAlbums, mw...)
	e.GET("/v1/albums/:id/copies", h.ListAlbumCopies, mw...)
}
