package model

import "time"

// Booking status values. CANCELLED is terminal; the row is retained until
// the owner explicitly deletes it.
const (
	BookingConfirmed = "CONFIRMED"
	BookingCancelled = "CANCELLED"
)

// Booking records one reserved seat on one bus for one calendar day.
// A booking is created only through the booking service's admission check
// and never mutates after creation except for the CONFIRMED -> CANCELLED
// status flip.
//
// Fields:
//
//	ID          – primary key identifier.
//	UserID      – owning passenger account.
//	BusID       – booked bus.
//	SeatLabel   – seat within the fixed layout, e.g. "A1" or "K5".
//	Source      – boarding stop; must appear on the bus route.
//	Destination – destination stop; must follow Source on the route.
//	TravelDate  – journey calendar day (time component is always zero).
//	Price       – price paid in BDT.
//	Status      – BookingConfirmed or BookingCancelled.
//	CreatedAt   – creation timestamp.
type Booking struct {
	ID          uint64    `json:"id"`
	UserID      uint64    `json:"user_id"`
	BusID       uint64    `json:"bus_id"`
	SeatLabel   string    `json:"seat"`
	Source      string    `json:"source"`
	Destination string    `json:"destination"`
	TravelDate  time.Time `json:"travel_date"`
	Price       uint32    `json:"price"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// IsConfirmed reports whether the booking still occupies its seat.
func (b *Booking) IsConfirmed() bool { return b.Status == BookingConfirmed }
