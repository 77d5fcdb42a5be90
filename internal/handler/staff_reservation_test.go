package handler

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strings"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/mediatheque/internal/model"
	"github.com/example/mediatheque/internal/repository"
)

func newStaffReservationHandlerMock(t *testing.T) (*StaffReservationHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewStaffReservationHandler(repository.NewReservationRepo(db), repository.NewCopyRepo(db)), mock
}

func expectReturnTransaction(mock sqlmock.Sqlmock, resID, copyID uint64) {
	mock.ExpectExec(regexp.QuoteMeta("UPDATE reservations SET status=? WHERE id=?")).
		WithArgs(model.ReservationCompleted, resID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE copies SET status=? WHERE id=?")).
		WithArgs(model.CopyAvailable, copyID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
}

func TestReturnActiveReservation(t *testing.T) {
	h, mock := newStaffReservationHandlerMock(t)

	mock.ExpectBegin()
	expectReservationLock(mock, 21, reservationRow(21, 4, 9, model.ReservationActive))
	expectReturnTransaction(mock, 21, 4)

	c, rec := newAuthedContext(http.MethodPost, "/v1/staff/reservations/21/return", "", 2, "EMPLOYEE")
	c.SetParamNames("id")
	c.SetParamValues("21")
	require.NoError(t, h.ReturnReservation(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var res model.Reservation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, model.ReservationCompleted, res.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReturnLateReservationStillCompletes(t *testing.T) {
	h, mock := newStaffReservationHandlerMock(t)

	mock.ExpectBegin()
	expectReservationLock(mock, 22, reservationRow(22, 5, 9, model.ReservationLate))
	expectReturnTransaction(mock, 22, 5)

	c, rec := newAuthedContext(http.MethodPost, "/v1/staff/reservations/22/return", "", 1, "ADMIN")
	c.SetParamNames("id")
	c.SetParamValues("22")
	require.NoError(t, h.ReturnReservation(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReturnClosedReservationIsConflict(t *testing.T) {
	for _, status := range []string{model.ReservationCancelled, model.ReservationCompleted} {
		t.Run(status, func(t *testing.T) {
			h, mock := newStaffReservationHandlerMock(t)

			mock.ExpectBegin()
			expectReservationLock(mock, 23, reservationRow(23, 6, 9, status))
			mock.ExpectRollback()

			c, rec := newAuthedContext(http.MethodPost, "/v1/staff/reservations/23/return", "", 2, "EMPLOYEE")
			c.SetParamNames("id")
			c.SetParamValues("23")
			require.NoError(t, h.ReturnReservation(c))
			assert.Equal(t, http.StatusConflict, rec.Code)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestListReservationsForStaff(t *testing.T) {
	h, mock := newStaffReservationHandlerMock(t)

	start := time.Date(2026, 2, 20, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery("(?s)SELECT .+ FROM reservations r").
		WillReturnRows(sqlmock.NewRows(strings.Split(
			"id, copy_id, user_id, start_date, end_date, status, inventory_number, album_id, title, artist, email", ", ")).
			AddRow(1, 2, 3, start, start.Add(model.LoanPeriod), model.ReservationLate,
				"INV-0002", 8, "Blue Train", "John Coltrane", "client@example.com"))

	c, rec := newAuthedContext(http.MethodGet, "/v1/staff/reservations", "", 2, "EMPLOYEE")
	require.NoError(t, h.ListReservations(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Items []repository.ReservationDetail `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Items, 1)
	assert.Equal(t, model.ReservationLate, body.Items[0].Status)
	assert.Equal(t, "client@example.com", body.Items[0].UserEmail)
	assert.NoError(t, mock.ExpectationsWereMet())
}
