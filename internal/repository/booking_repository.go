package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/rayhank/busflow/internal/model"
)

// BookingRepo is the booking ledger. The no-double-booking invariant is not
// enforced here by reading before writing: the bookings table carries a
// stored generated column confirmed_seat (the seat label while the row is
// CONFIRMED, NULL otherwise) under the unique key uq_confirmed_seat
// (bus_id, travel_date, confirmed_seat). The insert below is therefore an
// atomic conditional write, and two concurrent requests for the same seat
// resolve inside MySQL: one row lands, the other surfaces duplicate-key
// error 1062 which this repo maps to ErrSeatTaken. Cancelling flips the
// generated column to NULL and releases the seat.
type BookingRepo struct{ DB *sql.DB }

func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{DB: db} }

const bookingColumns = "id,user_id,bus_id,seat_label,source,destination,travel_date,price,status,created_at"

// dateOnly renders a journey date the way the DATE column expects it.
func dateOnly(t time.Time) string { return t.Format("2006-01-02") }

// Create appends a CONFIRMED booking. ErrSeatTaken is returned when another
// CONFIRMED booking already holds the seat for that bus and calendar day.
// On success the generated ID and creation timestamp are filled in.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO bookings (user_id, bus_id, seat_label, source, destination, travel_date, price, status)
		 VALUES (?,?,?,?,?,?,?,?)`,
		b.UserID, b.BusID, b.SeatLabel, b.Source, b.Destination,
		dateOnly(b.TravelDate), b.Price, model.BookingConfirmed)
	if err != nil {
		if isSeatConflict(err) {
			return ErrSeatTaken
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	b.Status = model.BookingConfirmed
	return r.DB.QueryRowContext(ctx,
		"SELECT created_at FROM bookings WHERE id=?", b.ID).Scan(&b.CreatedAt)
}

// OccupiedSeats returns the seat labels of all CONFIRMED bookings for the
// bus on the given calendar day.
func (r *BookingRepo) OccupiedSeats(ctx context.Context, busID uint64, date time.Time) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT seat_label FROM bookings WHERE bus_id=? AND travel_date=? AND status=?",
		busID, dateOnly(date), model.BookingConfirmed)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	seats := make([]string, 0)
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		seats = append(seats, s)
	}
	return seats, rows.Err()
}

// ListByUser returns all bookings owned by a user, newest first.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Booking, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+bookingColumns+" FROM bookings WHERE user_id=? ORDER BY created_at DESC",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	bookings := make([]model.Booking, 0)
	for rows.Next() {
		var b model.Booking
		if err := rows.Scan(&b.ID, &b.UserID, &b.BusID, &b.SeatLabel, &b.Source,
			&b.Destination, &b.TravelDate, &b.Price, &b.Status, &b.CreatedAt); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// Cancel soft-cancels a booking owned by userID. The update is conditional
// on ownership and CONFIRMED status; when no row is affected a follow-up
// read distinguishes a repeat cancel (ErrAlreadyCancelled) from a missing
// or foreign booking (ErrBookingNotFound, shared so existence of other
// users' bookings never leaks).
func (r *BookingRepo) Cancel(ctx context.Context, bookingID, userID uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE bookings SET status=? WHERE id=? AND user_id=? AND status=?",
		model.BookingCancelled, bookingID, userID, model.BookingConfirmed)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n > 0 {
		return nil
	}
	var status string
	err = r.DB.QueryRowContext(ctx,
		"SELECT status FROM bookings WHERE id=? AND user_id=? LIMIT 1",
		bookingID, userID).Scan(&status)
	if err == sql.ErrNoRows {
		return ErrBookingNotFound
	}
	if err != nil {
		return err
	}
	if status == model.BookingCancelled {
		return ErrAlreadyCancelled
	}
	return ErrBookingNotFound
}

// Delete hard-deletes a booking owned by userID. ErrBookingNotFound covers
// both a missing row and a row owned by someone else.
func (r *BookingRepo) Delete(ctx context.Context, bookingID, userID uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM bookings WHERE id=? AND user_id=?", bookingID, userID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// Get returns a booking owned by userID.
func (r *BookingRepo) Get(ctx context.Context, bookingID, userID uint64) (model.Booking, error) {
	var b model.Booking
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+bookingColumns+" FROM bookings WHERE id=? AND user_id=? LIMIT 1",
		bookingID, userID).Scan(&b.ID, &b.UserID, &b.BusID, &b.SeatLabel, &b.Source,
		&b.Destination, &b.TravelDate, &b.Price, &b.Status, &b.CreatedAt)
	if err == sql.ErrNoRows {
		return model.Booking{}, ErrBookingNotFound
	}
	return b, err
}

// isSeatConflict reports whether err is a duplicate-key violation of the
// seat uniqueness index.
func isSeatConflict(err error) bool {
	if my, ok := err.(*mysql.MySQLError); ok {
		return my.Number == 1062
	}
	return strings.Contains(err.Error(), "1062")
}
