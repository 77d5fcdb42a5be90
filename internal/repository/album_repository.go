package repository

import (
	"context"
	"crypto/rand"
	"database/sql"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/example/mediatheque/internal/model"
)

// AlbumRepo provides CRUD over the albums table. Reads are open to
// every caller; mutations are staff-gated at the handler layer.
type AlbumRepo struct{ db *sql.DB }

func NewAlbumRepo(db *sql.DB) *AlbumRepo { return &AlbumRepo{db: db} }

// List returns all albums ordered by title. No filtering and no
// pagination; the catalog is small enough for a full scan.
func (r *AlbumRepo) List(ctx context.Context) ([]model.Album, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, title, artist, release_year, label, ean FROM albums ORDER BY title, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	albums := make([]model.Album, 0)
	for rows.Next() {
		var a model.Album
		var year sql.NullInt64
		var label sql.NullString
		if err := rows.Scan(&a.ID, &a.Title, &a.Artist, &year, &label, &a.EAN); err != nil {
			return nil, err
		}
		if year.Valid {
			y := int(year.Int64)
			a.ReleaseYear = &y
		}
		if label.Valid {
			l := label.String
			a.Label = &l
		}
		albums = append(albums, a)
	}
	return albums, rows.Err()
}

// GetByID returns a single album or ErrAlbumNotFound.
func (r *AlbumRepo) GetByID(ctx context.Context, id uint64) (model.Album, error) {
	var a model.Album
	var year sql.NullInt64
	var label sql.NullString
	err := r.db.QueryRowContext(ctx,
		"SELECT id, title, artist, release_year, label, ean FROM albums WHERE id=? LIMIT 1",
		id).Scan(&a.ID, &a.Title, &a.Artist, &year, &label, &a.EAN)
	if err == sql.ErrNoRows {
		return a, ErrAlbumNotFound
	}
	if err != nil {
		return a, err
	}
	if year.Valid {
		y := int(year.Int64)
		a.ReleaseYear = &y
	}
	if label.Valid {
		l := label.String
		a.Label = &l
	}
	return a, nil
}

// Create inserts a new album and populates the generated ID and EAN
// on the provided model. The EAN is assigned server-side; callers
// never supply one.
func (r *AlbumRepo) Create(ctx context.Context, a *model.Album) error {
	a.EAN = newEAN()
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO albums (title, artist, release_year, label, ean) VALUES (?,?,?,?,?)",
		a.Title, a.Artist, nullableInt(a.ReleaseYear), nullableString(a.Label), a.EAN)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	return nil
}

// Update overwrites the mutable fields of an album. It returns
// ErrAlbumNotFound when no row matches the ID.
func (r *AlbumRepo) Update(ctx context.Context, a *model.Album) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE albums SET title=?, artist=?, release_year=?, label=? WHERE id=?",
		a.Title, a.Artist, nullableInt(a.ReleaseYear), nullableString(a.Label), a.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Either the album does not exist or the values were already
		// identical; disambiguate with a lookup.
		if _, gerr := r.GetByID(ctx, a.ID); gerr != nil {
			return gerr
		}
	}
	return nil
}

// Delete removes an album. When copies or reservations still point
// at it, MySQL rejects the delete with a referential constraint
// error (1451) which is surfaced as ErrConflict; the row is left
// untouched. ErrAlbumNotFound is returned for an unknown ID.
func (r *AlbumRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM albums WHERE id=?", id)
	if err != nil {
		if strings.Contains(err.Error(), "1451") {
			return ErrConflict
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrAlbumNotFound
	}
	return nil
}

// newEAN builds a pseudo barcode from the current time plus a random
// suffix, truncated to the 13 digits of an EAN-13. Collisions are
// unlikely at this scale and rejected by the unique index anyway.
func newEAN() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1000))
	if err != nil {
		n = big.NewInt(0)
	}
	ean := fmt.Sprintf("%d%03d", time.Now().UnixMilli(), n.Int64())
	if len(ean) > 13 {
		ean = ean[:13]
	}
	return ean
}

func nullableInt(v *int) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func nullableString(v *string) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
