package service

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"

	"github.com/rayhank/busflow/internal/model"
	"github.com/rayhank/busflow/internal/queue"
	"github.com/rayhank/busflow/internal/repository"
)

func newService(t *testing.T) (*BookingService, sqlmock.Sqlmock, *[]queue.TicketEvent) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	events := &[]queue.TicketEvent{}
	capture := func(ctx context.Context, ev queue.TicketEvent) error {
		*events = append(*events, ev)
		return nil
	}
	svc := NewBookingService(
		repository.NewBookingRepo(db),
		repository.NewBusRepo(db),
		nil, // no redis in tests
		capture,
	)
	return svc, mock, events
}

var busCols = []string{"id", "name", "route", "driver_id", "price", "status", "created_at", "updated_at"}

func expectBus(mock sqlmock.Sqlmock, id uint64, status string) {
	now := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM buses WHERE id").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(busCols).
			AddRow(id, "Green Line", []byte(`["Uttara","Banani","Farmgate"]`), nil, 450, status, now, now))
}

func expectInsertOK(mock sqlmock.Sqlmock, bookingID int64) {
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(bookingID, 1))
	mock.ExpectQuery("SELECT created_at FROM bookings").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
}

func testDate(t *testing.T) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", "2026-09-01")
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestCreateBooking(t *testing.T) {
	svc, mock, events := newService(t)
	expectBus(mock, 3, model.BusStatusActive)
	expectInsertOK(mock, 42)

	b, err := svc.CreateBooking(context.Background(), 7, 3, "A1", "Uttara", "Farmgate", testDate(t))
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if b.ID != 42 || b.Status != model.BookingConfirmed || b.Price != 450 {
		t.Errorf("booking = %+v", b)
	}
	if len(*events) != 1 || (*events)[0].Type != queue.TicketBooked {
		t.Errorf("events = %+v, want one ticket.booked", *events)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateBookingInvalidTrip(t *testing.T) {
	svc, mock, events := newService(t)
	expectBus(mock, 3, model.BusStatusActive)
	// No INSERT expectation: a trip against the route direction must be
	// rejected before any write.

	_, err := svc.CreateBooking(context.Background(), 7, 3, "A1", "Farmgate", "Uttara", testDate(t))
	if err != ErrTripInvalid {
		t.Fatalf("create error = %v, want ErrTripInvalid", err)
	}
	if len(*events) != 0 {
		t.Errorf("no event expected, got %+v", *events)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateBookingUnknownSeat(t *testing.T) {
	svc, mock, _ := newService(t)
	expectBus(mock, 3, model.BusStatusActive)

	_, err := svc.CreateBooking(context.Background(), 7, 3, "Z9", "Uttara", "Banani", testDate(t))
	if err != ErrUnknownSeat {
		t.Fatalf("create error = %v, want ErrUnknownSeat", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateBookingInactiveBus(t *testing.T) {
	svc, mock, _ := newService(t)
	expectBus(mock, 3, model.BusStatusMaintenance)

	_, err := svc.CreateBooking(context.Background(), 7, 3, "A1", "Uttara", "Banani", testDate(t))
	if err != ErrBusUnavailable {
		t.Fatalf("create error = %v, want ErrBusUnavailable", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateBookingsTooMany(t *testing.T) {
	svc, mock, _ := newService(t)
	// No expectations at all: an oversized batch must be rejected before any
	// database access.

	seats := []string{"A1", "A2", "A3", "A4", "B1", "B2"}
	_, _, err := svc.CreateBookings(context.Background(), 7, 3, seats, "Uttara", "Banani", testDate(t))
	if err != ErrTooManySeats {
		t.Fatalf("batch error = %v, want ErrTooManySeats", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateBookingsPartialFailure(t *testing.T) {
	svc, mock, events := newService(t)
	expectBus(mock, 3, model.BusStatusActive)

	// First seat lands; the duplicate of the same seat loses on the unique
	// key and is reported per-seat without undoing the first.
	expectInsertOK(mock, 42)
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	booked, failed, err := svc.CreateBookings(context.Background(), 7, 3,
		[]string{"A1", "A1"}, "Uttara", "Banani", testDate(t))
	if err != nil {
		t.Fatalf("batch error: %v", err)
	}
	if len(booked) != 1 || booked[0].SeatLabel != "A1" {
		t.Errorf("booked = %+v, want one A1", booked)
	}
	if len(failed) != 1 || failed[0].Seat != "A1" || failed[0].Reason != repository.ErrSeatTaken.Error() {
		t.Errorf("failed = %+v, want one seat-taken failure for A1", failed)
	}
	if len(*events) != 1 {
		t.Errorf("events = %+v, want exactly one for the success", *events)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateBookingsMixedSeats(t *testing.T) {
	svc, mock, _ := newService(t)
	expectBus(mock, 3, model.BusStatusActive)

	// A bad label fails locally, the good one still reaches storage.
	expectInsertOK(mock, 43)

	booked, failed, err := svc.CreateBookings(context.Background(), 7, 3,
		[]string{"Z9", "B1"}, "Uttara", "Farmgate", testDate(t))
	if err != nil {
		t.Fatalf("batch error: %v", err)
	}
	if len(booked) != 1 || booked[0].SeatLabel != "B1" {
		t.Errorf("booked = %+v, want one B1", booked)
	}
	if len(failed) != 1 || failed[0].Seat != "Z9" || failed[0].Reason != ErrUnknownSeat.Error() {
		t.Errorf("failed = %+v, want unknown-seat failure for Z9", failed)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateBookingConflictThenRetry(t *testing.T) {
	svc, mock, _ := newService(t)

	// Two passengers race for A1 on the same Uttara->Farmgate day; the loser
	// gets the conflict and succeeds on a second attempt with A2.
	expectBus(mock, 3, model.BusStatusActive)
	expectInsertOK(mock, 42)

	expectBus(mock, 3, model.BusStatusActive)
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	expectBus(mock, 3, model.BusStatusActive)
	expectInsertOK(mock, 43)

	date := testDate(t)
	if _, err := svc.CreateBooking(context.Background(), 7, 3, "A1", "Uttara", "Farmgate", date); err != nil {
		t.Fatalf("first passenger: %v", err)
	}
	if _, err := svc.CreateBooking(context.Background(), 8, 3, "A1", "Uttara", "Farmgate", date); err != repository.ErrSeatTaken {
		t.Fatalf("second passenger on A1: error = %v, want ErrSeatTaken", err)
	}
	b, err := svc.CreateBooking(context.Background(), 8, 3, "A2", "Uttara", "Farmgate", date)
	if err != nil {
		t.Fatalf("second passenger on A2: %v", err)
	}
	if b.SeatLabel != "A2" || b.UserID != 8 {
		t.Errorf("retry booking = %+v", b)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCancelBookingNotOwned(t *testing.T) {
	svc, mock, events := newService(t)

	// Ownership-scoped lookup finds nothing for this user, so the caller
	// cannot tell a foreign booking from a missing one.
	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id").
		WithArgs(uint64(42), uint64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	err := svc.CancelBooking(context.Background(), 99, 42)
	if err != repository.ErrBookingNotFound {
		t.Fatalf("cancel error = %v, want ErrBookingNotFound", err)
	}
	if len(*events) != 0 {
		t.Errorf("no event expected, got %+v", *events)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCancelBooking(t *testing.T) {
	svc, mock, events := newService(t)
	now := time.Now()

	bookingCols := []string{"id", "user_id", "bus_id", "seat_label", "source",
		"destination", "travel_date", "price", "status", "created_at"}
	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id").
		WithArgs(uint64(42), uint64(7)).
		WillReturnRows(sqlmock.NewRows(bookingCols).
			AddRow(42, 7, 3, "A1", "Uttara", "Banani", testDate(t), 450, model.BookingConfirmed, now))
	mock.ExpectExec("UPDATE bookings SET status").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := svc.CancelBooking(context.Background(), 7, 42); err != nil {
		t.Fatalf("cancel error: %v", err)
	}
	if len(*events) != 1 || (*events)[0].Type != queue.TicketCancelled {
		t.Errorf("events = %+v, want one ticket.cancelled", *events)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSeatLayout(t *testing.T) {
	svc, mock, _ := newService(t)
	expectBus(mock, 3, model.BusStatusMaintenance) // layout is viewable even off-duty
	mock.ExpectQuery("SELECT seat_label FROM bookings").
		WillReturnRows(sqlmock.NewRows([]string{"seat_label"}).AddRow("A1").AddRow("K5"))

	seats, err := svc.SeatLayout(context.Background(), 3, testDate(t))
	if err != nil {
		t.Fatalf("layout error: %v", err)
	}
	if len(seats) != 45 {
		t.Fatalf("layout has %d seats, want 45", len(seats))
	}
	occupied := 0
	for _, s := range seats {
		if s.IsOccupied {
			occupied++
			if s.Number != "A1" && s.Number != "K5" {
				t.Errorf("seat %q unexpectedly occupied", s.Number)
			}
		}
	}
	if occupied != 2 {
		t.Errorf("occupied = %d, want 2", occupied)
	}
	if seats[0].Number != "A1" || seats[44].Number != "K5" {
		t.Errorf("layout order broken: first %q last %q", seats[0].Number, seats[44].Number)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSeatLayoutBusNotFound(t *testing.T) {
	svc, mock, _ := newService(t)
	mock.ExpectQuery("SELECT (.+) FROM buses WHERE id").
		WithArgs(uint64(404)).
		WillReturnRows(sqlmock.NewRows(busCols))

	_, err := svc.SeatLayout(context.Background(), 404, testDate(t))
	if err != repository.ErrBusNotFound {
		t.Fatalf("layout error = %v, want ErrBusNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
