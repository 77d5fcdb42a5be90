package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/mediatheque/internal/model"
)

func newAlbumRepoMock(t *testing.T) (*AlbumRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewAlbumRepo(db), mock
}

func TestAlbumCreateAssignsIDAndEAN(t *testing.T) {
	repo, mock := newAlbumRepoMock(t)

	year := 1969
	a := &model.Album{Title: "Abbey Road", Artist: "The Beatles", ReleaseYear: &year}

	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO albums (title, artist, release_year, label, ean) VALUES (?,?,?,?,?)")).
		WithArgs("Abbey Road", "The Beatles", 1969, nil, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(7, 1))

	require.NoError(t, repo.Create(context.Background(), a))
	assert.Equal(t, uint64(7), a.ID)
	assert.Len(t, a.EAN, 13)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAlbumUpdateUnknownID(t *testing.T) {
	repo, mock := newAlbumRepoMock(t)

	a := &model.Album{ID: 99, Title: "Kind of Blue", Artist: "Miles Davis"}

	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE albums SET title=?, artist=?, release_year=?, label=? WHERE id=?")).
		WithArgs("Kind of Blue", "Miles Davis", nil, nil, uint64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, title, artist, release_year, label, ean FROM albums WHERE id=? LIMIT 1")).
		WithArgs(uint64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "artist", "release_year", "label", "ean"}))

	err := repo.Update(context.Background(), a)
	assert.ErrorIs(t, err, ErrAlbumNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAlbumUpdateNoChangeIsNotAnError(t *testing.T) {
	repo, mock := newAlbumRepoMock(t)

	a := &model.Album{ID: 3, Title: "Horses", Artist: "Patti Smith"}

	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE albums SET title=?, artist=?, release_year=?, label=? WHERE id=?")).
		WithArgs("Horses", "Patti Smith", nil, nil, uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, title, artist, release_year, label, ean FROM albums WHERE id=? LIMIT 1")).
		WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "artist", "release_year", "label", "ean"}).
			AddRow(3, "Horses", "Patti Smith", nil, nil, "1234567890123"))

	assert.NoError(t, repo.Update(context.Background(), a))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAlbumDeleteWithCopiesIsConflict(t *testing.T) {
	repo, mock := newAlbumRepoMock(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM albums WHERE id=?")).
		WithArgs(uint64(5)).
		WillReturnError(errors.New("Error 1451: Cannot delete or update a parent row: a foreign key constraint fails"))

	err := repo.Delete(context.Background(), 5)
	assert.ErrorIs(t, err, ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAlbumDeleteUnknownID(t *testing.T) {
	repo, mock := newAlbumRepoMock(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM albums WHERE id=?")).
		WithArgs(uint64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 404)
	assert.ErrorIs(t, err, ErrAlbumNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewEANIsThirteenDigits(t *testing.T) {
	for i := 0; i < 10; i++ {
		ean := newEAN()
		assert.Len(t, ean, 13)
		assert.Regexp(t, `^\d{13}$`, ean)
	}
}
