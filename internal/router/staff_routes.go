package router

import (
	"github.com/labstack/echo/v4"

	"github.com/example/mediatheque/internal/handler"
	"github.com/example/mediatheque/internal/middleware"
)

// RegisterStaff registers staff-scoped endpoints under /v1. All routes
// require a valid JWT and the ADMIN or EMPLOYEE role: catalog mutations,
// the full reservation ledger and recording returns.
func RegisterStaff(e *echo.Echo, albums *handler.StaffAlbumHandler, reservations *handler.StaffReservationHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireStaff(),
	)

	// ---- Albums ----
	g.POST("/albums", albums.CreateAlbum)
	g.PUT("/albums/:id", albums.UpdateAlbum)
	g.PATCH("/albums/:id", albums.UpdateAlbum) // alias for clients that use PATCH
	g.DELETE("/albums/:id", albums.DeleteAlbum)

	// ---- Loan desk ----
	g.GET("/staff/reservations", reservations.ListReservations)
	g.POST("/staff/reservations/:id/return", reservations.ReturnReservation)
}
