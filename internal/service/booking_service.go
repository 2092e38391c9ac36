// Package service implements the seat allocation engine: admission checks
// for new bookings, occupancy and layout queries, cancellation and deletion.
// Handlers stay thin and translate the sentinel errors into HTTP responses.
package service

import (
	"context"
	"log"
	"time"

	"github.com/rayhank/busflow/internal/model"
	"github.com/rayhank/busflow/internal/queue"
	"github.com/rayhank/busflow/internal/repository"
	"github.com/rayhank/busflow/internal/seatmap"
)

// MaxSeatsPerBooking caps one batch request. Larger batches are rejected
// wholesale before any seat is attempted.
const MaxSeatsPerBooking = 5

// EventPublisher pushes a ticket event to the message broker. Publishing is
// best-effort: the service logs failures and never fails a request over
// them.
type EventPublisher func(ctx context.Context, ev queue.TicketEvent) error

// SeatStatus is one entry of the seat layout response.
type SeatStatus struct {
	Number     string `json:"number"`
	Row        string `json:"row"`
	Position   int    `json:"position"`
	IsOccupied bool   `json:"isOccupied"`
	IsLastRow  bool   `json:"isLastRow"`
}

// SeatFailure reports why one seat of a batch could not be booked.
type SeatFailure struct {
	Seat   string `json:"seat"`
	Reason string `json:"reason"`
}

// TicketDetail pairs a booking with display fields of its bus.
type TicketDetail struct {
	Booking model.Booking `json:"booking"`
	BusName string        `json:"bus_name"`
	Route   []string      `json:"route,omitempty"`
}

// BookingService coordinates the booking ledger, the fleet registry, the
// occupancy cache and the event publisher. It owns every write path into
// the ledger.
type BookingService struct {
	ledger  *repository.BookingRepo
	fleet   *repository.BusRepo
	cache   *OccupancyCache
	publish EventPublisher
}

// NewBookingService wires the engine. cache and publish may be nil.
func NewBookingService(ledger *repository.BookingRepo, fleet *repository.BusRepo, cache *OccupancyCache, publish EventPublisher) *BookingService {
	if ledger == nil || fleet == nil {
		panic("nil repository passed to NewBookingService")
	}
	return &BookingService{ledger: ledger, fleet: fleet, cache: cache, publish: publish}
}

// day truncates a journey timestamp to its calendar day in UTC. Occupancy
// is computed per day, never per instant.
func day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// OccupiedSeats returns the labels of all CONFIRMED bookings for the bus on
// the given calendar day, served from the cache when possible.
func (s *BookingService) OccupiedSeats(ctx context.Context, busID uint64, date time.Time) ([]string, error) {
	date = day(date)
	if seats, ok := s.cache.Get(ctx, busID, date); ok {
		return seats, nil
	}
	seats, err := s.ledger.OccupiedSeats(ctx, busID, date)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, busID, date, seats)
	return seats, nil
}

// SeatLayout returns all 45 seats in fixed order with their occupancy for
// the given bus and day. The bus must exist but need not be active: the
// layout of a maintenance bus is still viewable.
func (s *BookingService) SeatLayout(ctx context.Context, busID uint64, date time.Time) ([]SeatStatus, error) {
	if _, err := s.fleet.GetByID(ctx, busID); err != nil {
		return nil, err
	}
	occupied, err := s.OccupiedSeats(ctx, busID, date)
	if err != nil {
		return nil, err
	}
	taken := make(map[string]struct{}, len(occupied))
	for _, label := range occupied {
		taken[label] = struct{}{}
	}
	layout := seatmap.Layout()
	out := make([]SeatStatus, 0, len(layout))
	for _, seat := range layout {
		_, occ := taken[seat.Label]
		out = append(out, SeatStatus{
			Number:     seat.Label,
			Row:        seat.Row,
			Position:   seat.Position,
			IsOccupied: occ,
			IsLastRow:  seat.IsLastRow,
		})
	}
	return out, nil
}

// CreateBooking admits a single seat reservation. Order of checks: the bus
// must be ACTIVE, the seat label must exist in the layout, and the trip must
// run with the route. The insert itself is the only double-booking guard;
// the storage layer's unique key decides races and surfaces
// repository.ErrSeatTaken for the loser.
func (s *BookingService) CreateBooking(ctx context.Context, userID, busID uint64, seatLabel, source, destination string, date time.Time) (model.Booking, error) {
	bus, err := s.fleet.GetByID(ctx, busID)
	if err != nil {
		return model.Booking{}, err
	}
	return s.admit(ctx, &bus, userID, seatLabel, source, destination, day(date))
}

// CreateBookings books up to MaxSeatsPerBooking seats in one request. Each
// seat is attempted independently; successes and per-seat failures are both
// returned and earlier successes are never rolled back when a later seat
// fails.
func (s *BookingService) CreateBookings(ctx context.Context, userID, busID uint64, seatLabels []string, source, destination string, date time.Time) ([]model.Booking, []SeatFailure, error) {
	if len(seatLabels) > MaxSeatsPerBooking {
		return nil, nil, ErrTooManySeats
	}
	bus, err := s.fleet.GetByID(ctx, busID)
	if err != nil {
		return nil, nil, err
	}
	date = day(date)
	booked := make([]model.Booking, 0, len(seatLabels))
	failed := make([]SeatFailure, 0)
	for _, label := range seatLabels {
		b, err := s.admit(ctx, &bus, userID, label, source, destination, date)
		if err != nil {
			failed = append(failed, SeatFailure{Seat: label, Reason: err.Error()})
			continue
		}
		booked = append(booked, b)
	}
	return booked, failed, nil
}

func (s *BookingService) admit(ctx context.Context, bus *model.Bus, userID uint64, seatLabel, source, destination string, date time.Time) (model.Booking, error) {
	if !bus.IsActive() {
		return model.Booking{}, ErrBusUnavailable
	}
	if !seatmap.Valid(seatLabel) {
		return model.Booking{}, ErrUnknownSeat
	}
	if !bus.ValidTrip(source, destination) {
		return model.Booking{}, ErrTripInvalid
	}
	booking := model.Booking{
		UserID:      userID,
		BusID:       bus.ID,
		SeatLabel:   seatLabel,
		Source:      source,
		Destination: destination,
		TravelDate:  date,
		Price:       bus.Price,
	}
	if err := s.ledger.Create(ctx, &booking); err != nil {
		return model.Booking{}, err
	}
	s.cache.Invalidate(ctx, bus.ID, date)
	s.emit(ctx, queue.TicketBooked, &booking, bus.Name)
	return booking, nil
}

// CancelBooking soft-cancels a booking owned by userID. Repeat cancels
// surface repository.ErrAlreadyCancelled; bookings of other users are
// indistinguishable from missing ones.
func (s *BookingService) CancelBooking(ctx context.Context, userID, bookingID uint64) error {
	booking, err := s.ledger.Get(ctx, bookingID, userID)
	if err != nil {
		return err
	}
	if err := s.ledger.Cancel(ctx, bookingID, userID); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, booking.BusID, day(booking.TravelDate))
	s.emit(ctx, queue.TicketCancelled, &booking, "")
	return nil
}

// DeleteBooking hard-deletes a booking owned by userID. Unlike cancel, the
// ledger entry is removed entirely.
func (s *BookingService) DeleteBooking(ctx context.Context, userID, bookingID uint64) error {
	booking, err := s.ledger.Get(ctx, bookingID, userID)
	if err != nil {
		return err
	}
	if err := s.ledger.Delete(ctx, bookingID, userID); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, booking.BusID, day(booking.TravelDate))
	if booking.IsConfirmed() {
		s.emit(ctx, queue.TicketCancelled, &booking, "")
	}
	return nil
}

// ListUserBookings returns the user's tickets joined with bus display data,
// newest first.
func (s *BookingService) ListUserBookings(ctx context.Context, userID uint64) ([]TicketDetail, error) {
	bookings, err := s.ledger.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	buses, err := s.fleet.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[uint64]model.Bus, len(buses))
	for _, b := range buses {
		names[b.ID] = b
	}
	out := make([]TicketDetail, 0, len(bookings))
	for _, b := range bookings {
		det := TicketDetail{Booking: b}
		if bus, ok := names[b.BusID]; ok {
			det.BusName = bus.Name
			det.Route = bus.Route
		}
		out = append(out, det)
	}
	return out, nil
}

func (s *BookingService) emit(ctx context.Context, eventType string, b *model.Booking, busName string) {
	if s.publish == nil {
		return
	}
	ev := queue.TicketEvent{
		Type:        eventType,
		BookingID:   b.ID,
		UserID:      b.UserID,
		BusID:       b.BusID,
		BusName:     busName,
		SeatLabel:   b.SeatLabel,
		Source:      b.Source,
		Destination: b.Destination,
		TravelDate:  b.TravelDate.Format("2006-01-02"),
		Price:       b.Price,
		OccurredAt:  time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.publish(ctx, ev); err != nil {
		log.Printf("booking-service: publish %s event failed: %v", eventType, err)
	}
}
