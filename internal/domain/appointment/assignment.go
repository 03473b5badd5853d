package appointment

import (
	"context"
	"time"
)

// Request describes the time range a new appointment needs.
type Request struct {
	ServiceID string
	Date      time.Time
	StartTime string
	EndTime   string
}

// Assigner decides the order in which professionals are tried for a
// booking. The first professional in the returned order that is free gets
// the appointment.
type Assigner interface {
	Order(ctx context.Context, professionals []User, req Request) []User
}

// FirstFit keeps the stable enumeration order of the user store, so the
// first conflict-free professional wins. It does not balance load.
type FirstFit struct{}

func (FirstFit) Order(_ context.Context, professionals []User, _ Request) []User {
	return professionals
}
