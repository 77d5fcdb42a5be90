package model

// Copy condition values stored in copies.cond.
const (
	CondNew     = "NEW"
	CondGood    = "GOOD"
	CondWorn    = "WORN"
	CondDamaged = "DAMAGED"
)

// Copy status values stored in copies.status. The copy status is the
// single source of truth for availability: a copy may only be
// reserved while its status is AVAILABLE, and the status is flipped
// in the same transaction that creates or closes a reservation.
const (
	CopyAvailable = "AVAILABLE"
	CopyLoaned    = "LOANED"
	CopyReserved  = "RESERVED"
	CopyLost      = "LOST"
)

// Copy is a physical instance of an album, trackable by inventory
// number. Copies are read-only from the API's perspective; stock
// management happens outside this service.
//
// Fields:
//  ID              – primary key identifier.
//  AlbumID         – album this copy belongs to (exactly one).
//  InventoryNumber – label printed on the physical item.
//  Condition       – one of the Cond* constants.
//  Status          – one of the Copy* constants.
type Copy struct {
	ID              uint64 `json:"id"`               // copies.id
	AlbumID         uint64 `json:"album_id"`         // copies.album_id
	InventoryNumber string `json:"inventory_number"` // copies.inventory_number
	Condition       string `json:"condition"`        // copies.cond
	Status          string `json:"status"`           // copies.status
}
