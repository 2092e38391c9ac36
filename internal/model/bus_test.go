package model

import "testing"

func TestValidTrip(t *testing.T) {
	bus := Bus{Route: []string{"Uttara", "Banani", "Farmgate", "Shahbagh"}}

	cases := []struct {
		source, destination string
		want                bool
	}{
		{"Uttara", "Shahbagh", true},  // full route
		{"Banani", "Farmgate", true},  // inner segment
		{"Uttara", "Banani", true},    // adjacent stops
		{"Farmgate", "Banani", false}, // against route direction
		{"Shahbagh", "Uttara", false},
		{"Uttara", "Uttara", false},   // same stop
		{"Uttara", "Mirpur", false},   // destination not on route
		{"Mirpur", "Banani", false},   // source not on route
		{"", "", false},
	}
	for _, tc := range cases {
		if got := bus.ValidTrip(tc.source, tc.destination); got != tc.want {
			t.Errorf("ValidTrip(%q, %q) = %v, want %v", tc.source, tc.destination, got, tc.want)
		}
	}
}

func TestValidTripEmptyRoute(t *testing.T) {
	bus := Bus{}
	if bus.ValidTrip("Uttara", "Banani") {
		t.Error("trip on empty route should be invalid")
	}
	if bus.StartStop() != "" || bus.EndStop() != "" {
		t.Error("empty route should have empty endpoints")
	}
}

func TestBusStatus(t *testing.T) {
	for _, s := range []string{BusStatusActive, BusStatusMaintenance, BusStatusDecommissioned} {
		if !ValidBusStatus(s) {
			t.Errorf("ValidBusStatus(%q) = false", s)
		}
	}
	if ValidBusStatus("RETIRED") {
		t.Error("unknown status accepted")
	}
	bus := Bus{Status: BusStatusMaintenance}
	if bus.IsActive() {
		t.Error("maintenance bus reported active")
	}
}

func TestValidRole(t *testing.T) {
	for _, r := range []string{RolePassenger, RoleDriver, RoleAdmin} {
		if !ValidRole(r) {
			t.Errorf("ValidRole(%q) = false", r)
		}
	}
	if ValidRole("OWNER") {
		t.Error("unknown role accepted")
	}
}
