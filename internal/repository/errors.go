// Package repository implements the data access layer over MySQL.
// This file defines sentinel error values shared by the individual
// repositories so that handlers can map failure scenarios onto HTTP
// status codes without inspecting driver errors themselves.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on
// a resource they do not own. Handlers translate this into 403.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an operation cannot proceed because
// of conflicting state: reserving a copy that is not available, or
// deleting an album that still has copies or reservations attached.
// Handlers translate this into 409.
var ErrConflict = errors.New("conflict")

// ErrInvalidState is returned when a reservation status transition
// is requested from a state that does not permit it, e.g. cancelling
// a reservation that is already cancelled or completed. Terminal
// statuses are never overwritten. Handlers translate this into 409.
var ErrInvalidState = errors.New("invalid state")

// ErrAlbumNotFound is returned when no album exists with the
// requested ID.
var ErrAlbumNotFound = errors.New("album not found")

// ErrCopyNotFound is returned when no copy exists with the
// requested ID.
var ErrCopyNotFound = errors.New("copy not found")

// ErrReservationNotFound is returned when no reservation exists
// with the requested ID.
var ErrReservationNotFound = errors.New("reservation not found")
