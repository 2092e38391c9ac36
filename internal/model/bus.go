package model

import (
	"strings"
	"time"
)

// Operational states of a bus. Only active buses show up in passenger
// searches and accept bookings.
const (
	BusStatusActive         = "ACTIVE"
	BusStatusMaintenance    = "MAINTENANCE"
	BusStatusDecommissioned = "DECOMMISSIONED"
)

// Bus represents a fleet vehicle and its route. The route is an ordered
// list of stop names; order defines the valid travel direction, so a trip
// is only bookable when the boarding stop precedes the destination stop.
// Seat capacity is not stored here: the fixed seat map in the seatmap
// package is the single source of truth for the seat universe.
//
// Fields:
//
//	ID        – primary key identifier.
//	Name      – display name of the bus (at least two characters).
//	Route     – ordered stop names, at least two distinct stops.
//	DriverID  – assigned driver account, nil when unassigned.
//	Price     – ticket price in BDT, always positive.
//	Status    – one of the BusStatus constants.
//	CreatedAt – creation timestamp.
//	UpdatedAt – last update timestamp.
type Bus struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Route     []string  `json:"route"`
	DriverID  *uint64   `json:"driver_id"`
	Price     uint32    `json:"price"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsActive reports whether the bus is bookable.
func (b *Bus) IsActive() bool { return b.Status == BusStatusActive }

// HasDriver reports whether a driver is assigned.
func (b *Bus) HasDriver() bool { return b.DriverID != nil }

// StartStop returns the first stop on the route, or "" for an empty route.
func (b *Bus) StartStop() string {
	if len(b.Route) == 0 {
		return ""
	}
	return b.Route[0]
}

// EndStop returns the last stop on the route, or "" for an empty route.
func (b *Bus) EndStop() string {
	if len(b.Route) == 0 {
		return ""
	}
	return b.Route[len(b.Route)-1]
}

// RouteDisplay joins the route stops for human-readable output.
func (b *Bus) RouteDisplay() string { return strings.Join(b.Route, " -> ") }

// ValidTrip reports whether source and destination both occur on the route
// with the source strictly before the destination.
func (b *Bus) ValidTrip(source, destination string) bool {
	si, di := -1, -1
	for i, stop := range b.Route {
		if stop == source && si == -1 {
			si = i
		}
		if stop == destination && di == -1 {
			di = i
		}
	}
	return si != -1 && di != -1 && si < di
}

// ValidBusStatus reports whether s is one of the known operational states.
func ValidBusStatus(s string) bool {
	return s == BusStatusActive || s == BusStatusMaintenance || s == BusStatusDecommissioned
}
