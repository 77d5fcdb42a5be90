// Package queue defines message payloads exchanged over the message broker.
package queue

// Event kinds carried in ReservationEvent.Kind.
const (
	ReservationCreated   = "reservation.created"
	ReservationCancelled = "reservation.cancelled"
	ReservationCompleted = "reservation.completed"
	ReservationLate      = "reservation.late"
)

// ReservationEvent is published whenever a reservation changes state.
// It contains enough information for downstream consumers to log,
// notify, or trigger analytics without querying the primary database.
// All timestamps are RFC 3339 in UTC.
type ReservationEvent struct {
	Kind          string `json:"kind"`
	ReservationID uint64 `json:"reservation_id"`
	CopyID        uint64 `json:"copy_id"`
	UserID        uint64 `json:"user_id"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	Status        string `json:"status"`
	OccurredAt    string `json:"occurred_at"`
}
