package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/example/mediatheque/internal/model"
	"github.com/example/mediatheque/internal/queue"
	"github.com/example/mediatheque/internal/repository"
)

// StaffReservationHandler covers the staff side of the loan desk:
// browsing every reservation in the system and recording a returned
// copy. Routes using it sit behind RequireStaff.
type StaffReservationHandler struct {
	Reservations *repository.ReservationRepo
	Copies       *repository.CopyRepo
}

func NewStaffReservationHandler(reservations *repository.ReservationRepo, copies *repository.CopyRepo) *StaffReservationHandler {
	if reservations == nil || copies == nil {
		panic("nil repository passed to NewStaffReservationHandler")
	}
	return &StaffReservationHandler{Reservations: reservations, Copies: copies}
}

// ListReservations handles GET /v1/staff/reservations and returns
// every reservation with album and borrower details.
func (h *StaffReservationHandler) ListReservations(c echo.Context) error {
	details, err := h.Reservations.ListAll(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("list all reservations: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservations"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": details})
}

// ReturnReservation handles POST /v1/staff/reservations/:id/return.
// A return completes an ACTIVE or LATE reservation; a late return is
// still a completion. Anything already terminal is a 409. The copy
// goes back to AVAILABLE in the same transaction.
func (h *StaffReservationHandler) ReturnReservation(c echo.Context) error {
	resID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || resID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}

	ctx := c.Request().Context()
	tx, err := h.Reservations.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := h.Reservations.GetForUpdateTx(ctx, tx, resID)
	if err != nil {
		if err == repository.ErrReservationNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		c.Logger().Errorf("lock reservation %d: %v", resID, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if err := h.Reservations.CompleteTx(ctx, tx, &res); err != nil {
		if err == repository.ErrInvalidState {
			return c.JSON(http.StatusConflict, echo.Map{"error": "reservation is not open"})
		}
		c.Logger().Errorf("complete reservation %d: %v", res.ID, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to complete reservation"})
	}
	if err := h.Copies.UpdateStatusTx(ctx, tx, res.CopyID, model.CopyAvailable); err != nil {
		c.Logger().Errorf("release copy %d: %v", res.CopyID, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update copy status"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	publishEvent(queue.ReservationCompleted, &res)
	return c.JSON(http.StatusOK, res)
}
