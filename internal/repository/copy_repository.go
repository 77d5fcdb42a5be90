package repository

import (
	"context"
	"database/sql"

	"github.com/example/mediatheque/internal/model"
)

// CopyRepo provides read access to the copies table plus the status
// updates performed inside reservation transactions. Copies are not
// created or removed through this service.
type CopyRepo struct{ db *sql.DB }

func NewCopyRepo(db *sql.DB) *CopyRepo { return &CopyRepo{db: db} }

// ListByAlbum returns all copies belonging to the given album.
func (r *CopyRepo) ListByAlbum(ctx context.Context, albumID uint64) ([]model.Copy, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, album_id, inventory_number, cond, status FROM copies WHERE album_id=? ORDER BY inventory_number",
		albumID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	copies := make([]model.Copy, 0)
	for rows.Next() {
		var cp model.Copy
		if err := rows.Scan(&cp.ID, &cp.AlbumID, &cp.InventoryNumber, &cp.Condition, &cp.Status); err != nil {
			return nil, err
		}
		copies = append(copies, cp)
	}
	return copies, rows.Err()
}

// GetForUpdateTx loads a copy inside a transaction with a row lock.
// The lock holds until commit/rollback, so the availability check and
// the subsequent reservation insert cannot interleave with a
// concurrent attempt on the same copy. Returns ErrCopyNotFound for
// an unknown ID.
func (r *CopyRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (model.Copy, error) {
	var cp model.Copy
	err := tx.QueryRowContext(ctx,
		"SELECT id, album_id, inventory_number, cond, status FROM copies WHERE id=? FOR UPDATE",
		id).Scan(&cp.ID, &cp.AlbumID, &cp.InventoryNumber, &cp.Condition, &cp.Status)
	if err == sql.ErrNoRows {
		return cp, ErrCopyNotFound
	}
	return cp, err
}

// UpdateStatusTx flips a copy's status within a transaction. It is
// only ever called together with a reservation status change so the
// two stay consistent.
func (r *CopyRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status string) error {
	_, err := tx.ExecContext(ctx, "UPDATE copies SET status=? WHERE id=?", status, id)
	return err
}
