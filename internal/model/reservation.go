package model

import "time"

// Reservation status values stored in reservations.status. The
// lifecycle is monotonic: a reservation starts ACTIVE and moves to
// exactly one of the terminal states. Nothing ever transitions back
// to ACTIVE.
//
//	ACTIVE -> CANCELLED  (owner or staff cancels)
//	ACTIVE -> COMPLETED  (staff records the copy as returned)
//	ACTIVE -> LATE       (overdue sweep, end_date in the past)
//	LATE   -> COMPLETED  (late return)
const (
	ReservationActive    = "ACTIVE"
	ReservationCancelled = "CANCELLED"
	ReservationCompleted = "COMPLETED"
	ReservationLate      = "LATE"
)

// LoanPeriod is the fixed length of a reservation. end_date is always
// start_date plus this duration.
const LoanPeriod = 7 * 24 * time.Hour

// Reservation records a user's claim on a specific copy for a fixed
// loan window. Reservations are never physically deleted; history is
// retained through the terminal statuses.
//
// Fields:
//  ID        – primary key identifier.
//  CopyID    – copy being reserved (exactly one).
//  UserID    – user who placed the reservation.
//  StartDate – beginning of the loan window.
//  EndDate   – StartDate + LoanPeriod.
//  Status    – one of the Reservation* constants.
type Reservation struct {
	ID        uint64    `json:"id"`         // reservations.id
	CopyID    uint64    `json:"copy_id"`    // reservations.copy_id
	UserID    uint64    `json:"user_id"`    // reservations.user_id
	StartDate time.Time `json:"start_date"` // reservations.start_date
	EndDate   time.Time `json:"end_date"`   // reservations.end_date
	Status    string    `json:"status"`     // reservations.status
}
