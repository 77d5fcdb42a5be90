package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/example/mediatheque/internal/model"
	"github.com/example/mediatheque/internal/queue"
	"github.com/example/mediatheque/internal/repository"
	queue_publisher "github.com/example/mediatheque/internal/service"
)

// ReservationHandler implements the reservation lifecycle for
// clients: placing a reservation on an available copy, listing their
// own reservations and cancelling. Cancellation is also open to
// staff, who may cancel any reservation; ownership is checked here
// rather than in middleware because the rule depends on the record.
//
// The availability invariant lives in the create path: the copy row
// is locked, its status checked and flipped to RESERVED in the same
// transaction that inserts the ACTIVE reservation. Two simultaneous
// attempts on one copy serialize on the row lock and the loser sees
// a non-available status.
type ReservationHandler struct {
	Reservations *repository.ReservationRepo
	Copies       *repository.CopyRepo
}

func NewReservationHandler(reservations *repository.ReservationRepo, copies *repository.CopyRepo) *ReservationHandler {
	if reservations == nil || copies == nil {
		panic("nil repository passed to NewReservationHandler")
	}
	return &ReservationHandler{Reservations: reservations, Copies: copies}
}

// CreateReservation handles POST /v1/reservations. Client role only
// (enforced by route middleware; staff receive 403 there). The loan
// window is fixed: start now, end now plus seven days.
func (h *ReservationHandler) CreateReservation(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		CopyID uint64 `json:"copy_id"`
	}
	if err := c.Bind(&body); err != nil || body.CopyID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "copy_id is required"})
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

	cp, err := h.Copies.GetForUpdateTx(ctx, tx, body.CopyID)
	if err != nil {
		if err == repository.ErrCopyNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "copy not found"})
		}
		c.Logger().Errorf("lock copy %d: %v", body.CopyID, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if cp.Status != model.CopyAvailable {
		return c.JSON(http.StatusConflict, echo.Map{"error": "copy is not available"})
	}

	now := time.Now().UTC()
	res := &model.Reservation{
		CopyID:    cp.ID,
		UserID:    userID,
		StartDate: now,
		EndDate:   now.Add(model.LoanPeriod),
		Status:    model.ReservationActive,
	}
	if err := h.Reservations.CreateTx(ctx, tx, res); err != nil {
		c.Logger().Errorf("create reservation: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create reservation"})
	}
	if err := h.Copies.UpdateStatusTx(ctx, tx, cp.ID, model.CopyReserved); err != nil {
		c.Logger().Errorf("update copy status: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update copy status"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	publishEvent(queue.ReservationCreated, res)
	return c.JSON(http.StatusCreated, res)
}

// ListMyReservations handles GET /v1/my-reservations. Absence is not
// failure: a caller with no reservations gets an empty list.
func (h *ReservationHandler) ListMyReservations(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	details, err := h.Reservations.ListByUser(c.Request().Context(), userID)
	if err != nil {
		c.Logger().Errorf("list reservations for user %d: %v", userID, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservations"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": details})
}

// CancelReservation handles DELETE /v1/reservations/:id. The owner
// may cancel their own reservation; staff may cancel any. Only an
// ACTIVE reservation can be cancelled: terminal statuses are never
// overwritten, a repeat cancel is a 409. On success the copy becomes
// available again in the same transaction.
func (h *ReservationHandler) CancelReservation(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
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
	if err := h.Reservations.CancelTx(ctx, tx, &res, userID, getRole(c).IsStaff()); err != nil {
		switch err {
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		case repository.ErrInvalidState:
			return c.JSON(http.StatusConflict, echo.Map{"error": "reservation is not active"})
		default:
			c.Logger().Errorf("cancel reservation %d: %v", res.ID, err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to cancel reservation"})
		}
	}
	if err := h.Copies.UpdateStatusTx(ctx, tx, res.CopyID, model.CopyAvailable); err != nil {
		c.Logger().Errorf("release copy %d: %v", res.CopyID, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update copy status"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	publishEvent(queue.ReservationCancelled, &res)
	return c.NoContent(http.StatusNoContent)
}

// publishEvent emits a reservation event to the broker best-effort.
// Publishing happens off the request path and failures only log; the
// reservation itself is already committed.
func publishEvent(kind string, res *model.Reservation) {
	ev := queue.ReservationEvent{
		Kind:          kind,
		ReservationID: res.ID,
		CopyID:        res.CopyID,
		UserID:        res.UserID,
		StartDate:     res.StartDate.UTC().Format(time.RFC3339),
		EndDate:       res.EndDate.UTC().Format(time.RFC3339),
		Status:        res.Status,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = queue_publisher.PublishReservationEvent(ctx, ev)
	}()
}
