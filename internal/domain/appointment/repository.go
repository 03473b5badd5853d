package appointment

import (
	"context"
	"time"
)

// ServiceLookup resolves services by id. A missing service is (nil, nil).
type ServiceLookup interface {
	FindServiceByID(ctx context.Context, id string) (*Service, error)
}

// UserLookup resolves users. ListProfessionals returns professionals in a
// stable order.
type UserLookup interface {
	FindUserByID(ctx context.Context, id string) (*User, error)
	ListProfessionals(ctx context.Context) ([]User, error)
}

// AppointmentStore is the durable record of appointments.
//
// FindByProfessionalAndDate returns SCHEDULED appointments only. Create must
// return ErrSlotTaken when the insert would overlap a SCHEDULED appointment
// of the same professional on the same date. Update is a conditional write:
// it persists ap only while the stored status still equals from, and returns
// ErrStaleStatus otherwise.
type AppointmentStore interface {
	FindByID(ctx context.Context, id string) (*Appointment, error)
	FindByProfessionalAndDate(ctx context.Context, professionalID string, date time.Time) ([]Appointment, error)
	Create(ctx context.Context, ap *Appointment) (*Appointment, error)
	Update(ctx context.Context, ap *Appointment, from Status) (*Appointment, error)
	HasConflict(ctx context.Context, professionalID string, date time.Time, startTime, endTime string) (bool, error)
}

// Locker provides mutual exclusion keyed by an arbitrary string. Lock blocks
// until the key is free or ctx is done.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// LockKey is the per-professional, per-date key held across the
// conflict check and the insert.
func LockKey(professionalID string, date time.Time) string {
	return "appointment:" + professionalID + ":" + date.Format("2006-01-02")
}
