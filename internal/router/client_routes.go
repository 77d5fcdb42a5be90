package router

import (
	"github.com/labstack/echo/v4"

	"github.com/example/mediatheque/internal/auth"
	"github.com/example/mediatheque/internal/handler"
	"github.com/example/mediatheque/internal/middleware"
)

// RegisterClient registers the reservation endpoints under /v1. Placing a
// reservation is restricted to the CLIENT role: staff manage the catalog
// and the loan desk but do not borrow through this API. Listing one's own
// reservations and cancelling sit on the shared authenticated group, since
// staff may cancel any client's reservation; the ownership rule lives in
// the handler.
func RegisterClient(e *echo.Echo, h *handler.ReservationHandler, jwtSecret string) {
	client := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(auth.RoleClient),
	)
	client.POST("/reservations", h.CreateReservation)

	any := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireAnyRole(),
	)
	any.GET("/my-reservations", h.ListMyReservations)
	any.DELETE("/reservations/:id", h.CancelReservation)
}
