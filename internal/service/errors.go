package service

import "errors"

// ErrTripInvalid is returned when source and destination are not an ordered
// pair of stops on the bus route.
var ErrTripInvalid = errors.New("invalid trip for this route")

// ErrUnknownSeat is returned when a seat label is outside the fixed layout.
var ErrUnknownSeat = errors.New("unknown seat label")

// ErrTooManySeats is returned when a batch request exceeds
// MaxSeatsPerBooking. The whole batch is rejected and nothing is booked.
var ErrTooManySeats = errors.New("too many seats in one booking")

// ErrBusUnavailable is returned when the target bus is not ACTIVE.
var ErrBusUnavailable = errors.New("bus is not available for booking")
