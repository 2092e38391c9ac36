// Package repository implements MySQL persistence for users, buses and
// bookings. Sentinel errors defined here let handlers and the booking
// service distinguish failure scenarios without string matching.
package repository

import "errors"

// ErrEmailExists is returned when registering an email that is already taken.
var ErrEmailExists = errors.New("email already exists")

// ErrBusNotFound is returned when a bus lookup matches no row.
var ErrBusNotFound = errors.New("bus not found")

// ErrBookingNotFound is returned when a booking does not exist or does not
// belong to the requesting user. The two cases are deliberately merged so
// that callers cannot probe for other users' bookings.
var ErrBookingNotFound = errors.New("booking not found")

// ErrSeatTaken is returned when the storage layer rejects an insert because
// a CONFIRMED booking already holds the same (bus, travel date, seat).
var ErrSeatTaken = errors.New("seat already booked")

// ErrAlreadyCancelled is returned when cancelling a booking that has
// already been cancelled.
var ErrAlreadyCancelled = errors.New("booking already cancelled")
