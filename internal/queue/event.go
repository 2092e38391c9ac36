// Package queue defines message payloads exchanged over the message broker
// and the background consumer that mirrors them into a local log.
package queue

// Event types carried in TicketEvent.Type, doubling as queue names.
const (
	TicketBooked    = "ticket.booked"
	TicketCancelled = "ticket.cancelled"
)

// TicketEvent is published after a booking is confirmed or cancelled. It
// carries enough context for downstream consumers to notify or audit
// without querying the primary database.
type TicketEvent struct {
	Type        string `json:"type"`
	BookingID   uint64 `json:"booking_id"`
	UserID      uint64 `json:"user_id"`
	BusID       uint64 `json:"bus_id"`
	BusName     string `json:"bus_name,omitempty"`
	SeatLabel   string `json:"seat"`
	Source      string `json:"source"`
	Destination string `json:"destination"`
	TravelDate  string `json:"travel_date"`
	Price       uint32 `json:"price"`
	OccurredAt  string `json:"occurred_at"`
}
