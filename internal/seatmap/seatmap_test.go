package seatmap

import "testing"

func TestLayoutShape(t *testing.T) {
	seats := Layout()
	if len(seats) != TotalSeats {
		t.Fatalf("layout has %d seats, want %d", len(seats), TotalSeats)
	}
	if TotalSeats != 45 {
		t.Fatalf("TotalSeats = %d, want 45", TotalSeats)
	}

	// Fixed order: A1..A4 first, K1..K5 last.
	if seats[0].Label != "A1" {
		t.Errorf("first seat = %q, want A1", seats[0].Label)
	}
	if seats[3].Label != "A4" {
		t.Errorf("fourth seat = %q, want A4", seats[3].Label)
	}
	if seats[4].Label != "B1" {
		t.Errorf("fifth seat = %q, want B1", seats[4].Label)
	}
	if seats[39].Label != "J4" {
		t.Errorf("40th seat = %q, want J4", seats[39].Label)
	}
	if seats[40].Label != "K1" || !seats[40].IsLastRow {
		t.Errorf("41st seat = %+v, want K1 in last row", seats[40])
	}
	if seats[44].Label != "K5" {
		t.Errorf("last seat = %q, want K5", seats[44].Label)
	}

	// No duplicates, and only row K is flagged as the last row.
	seen := make(map[string]bool, len(seats))
	for _, s := range seats {
		if seen[s.Label] {
			t.Errorf("duplicate seat label %q", s.Label)
		}
		seen[s.Label] = true
		if s.IsLastRow != (s.Row == "K") {
			t.Errorf("seat %q: IsLastRow = %v for row %q", s.Label, s.IsLastRow, s.Row)
		}
	}
}

func TestValid(t *testing.T) {
	cases := []struct {
		label string
		want  bool
	}{
		{"A1", true},
		{"J4", true},
		{"K5", true},
		{"K1", true},
		{"A5", false}, // regular rows stop at 4
		{"J5", false},
		{"K6", false}, // last row stops at 5
		{"K0", false},
		{"A0", false},
		{"L1", false}, // no row past K
		{"a1", false}, // labels are upper case
		{"", false},
		{"A", false},
		{"A12", false},
		{"1A", false},
	}
	for _, tc := range cases {
		if got := Valid(tc.label); got != tc.want {
			t.Errorf("Valid(%q) = %v, want %v", tc.label, got, tc.want)
		}
	}
}
