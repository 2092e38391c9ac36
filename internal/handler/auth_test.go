package handler

import (
	"testing"
	"time"

	"github.com/rayhank/busflow/internal/model"
)

func TestPortalRole(t *testing.T) {
	cases := []struct {
		portal string
		role   string
		ok     bool
	}{
		{"passenger", model.RolePassenger, true},
		{"driver", model.RoleDriver, true},
		{"admin", model.RoleAdmin, true},
		{"Passenger", model.RolePassenger, true}, // case-insensitive
		{" admin ", model.RoleAdmin, true},       // surrounding spaces
		{"owner", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		role, ok := PortalRole(tc.portal)
		if ok != tc.ok || role != tc.role {
			t.Errorf("PortalRole(%q) = (%q, %v), want (%q, %v)", tc.portal, role, ok, tc.role, tc.ok)
		}
	}
}

func TestParseTravelDate(t *testing.T) {
	d, err := parseTravelDate("2026-09-01")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if d.Format("2006-01-02") != "2026-09-01" {
		t.Errorf("date = %v", d)
	}

	today, err := parseTravelDate("")
	if err != nil {
		t.Fatalf("empty date error: %v", err)
	}
	h, m, s := today.Clock()
	if h != 0 || m != 0 || s != 0 || today.Location() != time.UTC {
		t.Errorf("empty date should be UTC midnight, got %v", today)
	}

	if _, err := parseTravelDate("01-09-2026"); err == nil {
		t.Error("wrong format accepted")
	}
	if _, err := parseTravelDate("2026-13-40"); err == nil {
		t.Error("impossible date accepted")
	}
}
