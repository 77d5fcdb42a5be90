package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/example/mediatheque/internal/model"
)

// ReservationRepo provides persistence for reservations. A
// reservation ties one copy to one user for a fixed loan window.
// Status transitions and the paired copy status updates run inside
// transactions driven by the handler layer; this repository exposes
// the Tx building blocks. Timestamps are stored in UTC.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// DB exposes the underlying handle so handlers can drive the
// transactions that span this repository and CopyRepo.
func (r *ReservationRepo) DB() *sql.DB { return r.db }

// CreateTx inserts a new ACTIVE reservation within the scope of an
// existing transaction and populates the generated ID on the record.
// The caller must commit or rollback the transaction.
func (r *ReservationRepo) CreateTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error {
	const q = `INSERT INTO reservations (copy_id, user_id, start_date, end_date, status) VALUES (?, ?, ?, ?, ?)`
	result, err := tx.ExecContext(ctx, q, res.CopyID, res.UserID, res.StartDate, res.EndDate, res.Status)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	return nil
}

// GetForUpdateTx loads a reservation inside a transaction with a row
// lock so a status transition cannot race another one on the same
// reservation. Returns ErrReservationNotFound for an unknown ID.
func (r *ReservationRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (model.Reservation, error) {
	var res model.Reservation
	const q = `SELECT id, copy_id, user_id, start_date, end_date, status FROM reservations WHERE id=? FOR UPDATE`
	err := tx.QueryRowContext(ctx, q, id).Scan(
		&res.ID, &res.CopyID, &res.UserID, &res.StartDate, &res.EndDate, &res.Status)
	if err == sql.ErrNoRows {
		return res, ErrReservationNotFound
	}
	return res, err
}

// UpdateStatusTx applies a status transition within a transaction.
// Callers are responsible for having validated the transition against
// the current status under the row lock taken by GetForUpdateTx.
func (r *ReservationRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status string) error {
	_, err := tx.ExecContext(ctx, `UPDATE reservations SET status=? WHERE id=?`, status, id)
	return err
}

// CancelTx cancels a reservation under the row lock the caller holds.
// The record must belong to userID unless staff is set, and must
// still be ACTIVE: terminal statuses are never overwritten. Returns
// ErrForbidden or ErrInvalidState accordingly; the *model value is
// updated on success.
func (r *ReservationRepo) CancelTx(ctx context.Context, tx *sql.Tx, res *model.Reservation, userID uint64, staff bool) error {
	if !staff && res.UserID != userID {
		return ErrForbidden
	}
	if res.Status != model.ReservationActive {
		return ErrInvalidState
	}
	if err := r.UpdateStatusTx(ctx, tx, res.ID, model.ReservationCancelled); err != nil {
		return err
	}
	res.Status = model.ReservationCancelled
	return nil
}

// CompleteTx records a return under the row lock the caller holds.
// ACTIVE and LATE reservations complete; a late return is still a
// return. Anything already closed yields ErrInvalidState.
func (r *ReservationRepo) CompleteTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error {
	if res.Status != model.ReservationActive && res.Status != model.ReservationLate {
		return ErrInvalidState
	}
	if err := r.UpdateStatusTx(ctx, tx, res.ID, model.ReservationCompleted); err != nil {
		return err
	}
	res.Status = model.ReservationCompleted
	return nil
}

// ReservationDetail is a reservation enriched with the copy and album
// information needed for display. It is what listing endpoints
// return.
type ReservationDetail struct {
	ID              uint64    `json:"id"`
	CopyID          uint64    `json:"copy_id"`
	UserID          uint64    `json:"user_id"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	Status          string    `json:"status"`
	InventoryNumber string    `json:"inventory_number"`
	AlbumID         uint64    `json:"album_id"`
	AlbumTitle      string    `json:"album_title"`
	AlbumArtist     string    `json:"album_artist"`
	UserEmail       string    `json:"user_email,omitempty"`
}

const detailColumns = `r.id, r.copy_id, r.user_id, r.start_date, r.end_date, r.status,
                       c.inventory_number, a.id, a.title, a.artist`

// ListByUser returns all reservations for the given user, newest
// first, each joined with its copy's inventory number and the album
// title and artist. When no reservations exist an empty slice is
// returned, never an error.
func (r *ReservationRepo) ListByUser(ctx context.Context, userID uint64) ([]ReservationDetail, error) {
	const q = `SELECT ` + detailColumns + `
               FROM reservations r
               JOIN copies c ON c.id = r.copy_id
               JOIN albums a ON a.id = c.album_id
               WHERE r.user_id = ?
               ORDER BY r.start_date DESC, r.id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDetails(rows, false)
}

// ListAll returns every reservation joined with copy, album and the
// owning user's email. Used by staff to oversee outstanding loans.
func (r *ReservationRepo) ListAll(ctx context.Context) ([]ReservationDetail, error) {
	const q = `SELECT ` + detailColumns + `, u.email
               FROM reservations r
               JOIN copies c ON c.id = r.copy_id
               JOIN albums a ON a.id = c.album_id
               JOIN users u ON u.id = r.user_id
               ORDER BY r.start_date DESC, r.id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDetails(rows, true)
}

// MarkOverdue transitions every ACTIVE reservation whose end_date is
// before the given instant to LATE in a single statement. It returns
// the number of reservations affected. Copies stay RESERVED until the
// item actually comes back.
func (r *ReservationRepo) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE reservations SET status=? WHERE status=? AND end_date < ?`,
		model.ReservationLate, model.ReservationActive, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func scanDetails(rows *sql.Rows, withEmail bool) ([]ReservationDetail, error) {
	details := make([]ReservationDetail, 0)
	for rows.Next() {
		var d ReservationDetail
		dest := []interface{}{
			&d.ID, &d.CopyID, &d.UserID, &d.StartDate, &d.EndDate, &d.Status,
			&d.InventoryNumber, &d.AlbumID, &d.AlbumTitle, &d.AlbumArtist,
		}
		if withEmail {
			dest = append(dest, &d.UserEmail)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, rows.Err()
}
