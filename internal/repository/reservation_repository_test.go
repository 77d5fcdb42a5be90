package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/mediatheque/internal/model"
)

func newReservationRepoMock(t *testing.T) (*ReservationRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewReservationRepo(db), mock
}

func TestReservationCreateTxPopulatesID(t *testing.T) {
	repo, mock := newReservationRepoMock(t)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	res := &model.Reservation{
		CopyID:    4,
		UserID:    9,
		StartDate: now,
		EndDate:   now.Add(model.LoanPeriod),
		Status:    model.ReservationActive,
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO reservations (copy_id, user_id, start_date, end_date, status) VALUES (?, ?, ?, ?, ?)")).
		WithArgs(uint64(4), uint64(9), res.StartDate, res.EndDate, model.ReservationActive).
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectCommit()

	tx, err := repo.DB().BeginTx(context.Background(), nil)
	require.NoError(t, err)
	require.NoError(t, repo.CreateTx(context.Background(), tx, res))
	require.NoError(t, tx.Commit())

	assert.Equal(t, uint64(11), res.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationGetForUpdateTxUnknownID(t *testing.T) {
	repo, mock := newReservationRepoMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, copy_id, user_id, start_date, end_date, status FROM reservations WHERE id=? FOR UPDATE")).
		WithArgs(uint64(77)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "copy_id", "user_id", "start_date", "end_date", "status"}))
	mock.ExpectRollback()

	tx, err := repo.DB().BeginTx(context.Background(), nil)
	require.NoError(t, err)
	_, err = repo.GetForUpdateTx(context.Background(), tx, 77)
	assert.ErrorIs(t, err, ErrReservationNotFound)
	require.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelTxGuards(t *testing.T) {
	repo, mock := newReservationRepoMock(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	tx, err := repo.DB().BeginTx(context.Background(), nil)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback() }()

	res := model.Reservation{ID: 1, CopyID: 2, UserID: 9, Status: model.ReservationActive}

	err = repo.CancelTx(context.Background(), tx, &res, 10, false)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Equal(t, model.ReservationActive, res.Status)

	res.Status = model.ReservationCompleted
	err = repo.CancelTx(context.Background(), tx, &res, 9, false)
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Equal(t, model.ReservationCompleted, res.Status)
}

func TestCompleteTxRejectsClosedReservation(t *testing.T) {
	repo, mock := newReservationRepoMock(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	tx, err := repo.DB().BeginTx(context.Background(), nil)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback() }()

	res := model.Reservation{ID: 1, Status: model.ReservationCancelled}
	err = repo.CompleteTx(context.Background(), tx, &res)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestMarkOverdueOnlyTouchesActiveRows(t *testing.T) {
	repo, mock := newReservationRepoMock(t)

	now := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE reservations SET status=? WHERE status=? AND end_date < ?")).
		WithArgs(model.ReservationLate, model.ReservationActive, now).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.MarkOverdue(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByUserEmptyIsNotAnError(t *testing.T) {
	repo, mock := newReservationRepoMock(t)

	mock.ExpectQuery("(?s)SELECT .+ FROM reservations r").
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "copy_id", "user_id", "start_date", "end_date", "status",
			"inventory_number", "album_id", "title", "artist",
		}))

	details, err := repo.ListByUser(context.Background(), 5)
	require.NoError(t, err)
	assert.NotNil(t, details)
	assert.Empty(t, details)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListAllIncludesUserEmail(t *testing.T) {
	repo, mock := newReservationRepoMock(t)

	start := time.Date(2026, 2, 20, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery("(?s)SELECT .+ FROM reservations r").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "copy_id", "user_id", "start_date", "end_date", "status",
			"inventory_number", "album_id", "title", "artist", "email",
		}).AddRow(1, 2, 3, start, start.Add(model.LoanPeriod), model.ReservationActive,
			"INV-0002", 8, "Blue Train", "John Coltrane", "client@example.com"))

	details, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, "client@example.com", details[0].UserEmail)
	assert.Equal(t, "Blue Train", details[0].AlbumTitle)
	assert.NoError(t, mock.ExpectationsWereMet())
}
