// Package seatmap defines the fixed seating plan shared by every bus in the
// fleet: ten regular rows A-J with four seats each plus an oversized last
// row K with five seats, 45 seats in total. Seat labels are a row letter
// followed by a 1-based position ("A1".."J4", "K1".."K5").
package seatmap

import "fmt"

const (
	regularRows  = "ABCDEFGHIJ"
	lastRow      = 'K'
	seatsPerRow  = 4
	lastRowSeats = 5

	// TotalSeats is the capacity of every bus.
	TotalSeats = len(regularRows)*seatsPerRow + lastRowSeats
)

// Seat is one position in the layout.
type Seat struct {
	Label     string // e.g. "B3"
	Row       string // row letter
	Position  int    // 1-based position within the row
	IsLastRow bool
}

// Layout returns all 45 seats in fixed order: A1..A4, B1..B4, ... J1..J4,
// K1..K5. The slice is freshly allocated on each call so callers may
// annotate it freely.
func Layout() []Seat {
	seats := make([]Seat, 0, TotalSeats)
	for _, r := range regularRows {
		for p := 1; p <= seatsPerRow; p++ {
			seats = append(seats, Seat{
				Label:    fmt.Sprintf("%c%d", r, p),
				Row:      string(r),
				Position: p,
			})
		}
	}
	for p := 1; p <= lastRowSeats; p++ {
		seats = append(seats, Seat{
			Label:     fmt.Sprintf("%c%d", lastRow, p),
			Row:       string(lastRow),
			Position:  p,
			IsLastRow: true,
		})
	}
	return seats
}

// Valid reports whether label names a seat in the layout.
func Valid(label string) bool {
	if len(label) != 2 {
		return false
	}
	row := label[0]
	pos := int(label[1] - '0')
	if row == lastRow {
		return pos >= 1 && pos <= lastRowSeats
	}
	if row < 'A' || row > 'J' {
		return false
	}
	return pos >= 1 && pos <= seatsPerRow
}
