package appointment

import (
	"strings"
	"time"
)

// ===============================
// Service
// ===============================

type Service struct {
	ID          string
	Name        string
	Description string
	DurationMin int
	Price       float64
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewService builds a Service enforcing duration > 0 and price >= 0.
func NewService(id, name, description string, durationMin int, price float64, active bool) (*Service, error) {
	s := &Service{
		ID:          id,
		Name:        strings.TrimSpace(name),
		Description: description,
		DurationMin: durationMin,
		Price:       price,
		Active:      active,
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Service) Validate() error {
	if s.Name == "" {
		return validation("service_name_required")
	}
	if s.DurationMin <= 0 {
		return validation("invalid_duration")
	}
	if s.Price < 0 {
		return validation("invalid_price")
	}
	return nil
}

func (s *Service) Activate()   { s.Active = true }
func (s *Service) Deactivate() { s.Active = false }

// ===============================
// User
// ===============================

type Role string

const (
	RoleClient       Role = "CLIENT"
	RoleProfessional Role = "PROFESSIONAL"
	RoleAdmin        Role = "ADMIN"
)

type User struct {
	ID   string
	Name string
	Role Role
}

func (u User) IsClient() bool       { return u.Role == RoleClient }
func (u User) IsProfessional() bool { return u.Role == RoleProfessional }
func (u User) IsAdmin() bool        { return u.Role == RoleAdmin }

// ===============================
// Appointment
// ===============================

type Appointment struct {
	ID             string
	ServiceID      string
	ClientID       string
	ProfessionalID string

	// Date is a calendar day; only year, month and day are meaningful.
	Date      time.Time
	StartTime string
	EndTime   string

	Status       Status
	CancelReason string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// StartsAt combines Date and StartTime as naive wall-clock time in loc.
func (ap *Appointment) StartsAt(loc *time.Location) (time.Time, error) {
	return combine(ap.Date, ap.StartTime, loc)
}

// EndsAt combines Date and EndTime as naive wall-clock time in loc.
func (ap *Appointment) EndsAt(loc *time.Location) (time.Time, error) {
	return combine(ap.Date, ap.EndTime, loc)
}

// ===============================
// Domain Actions
// ===============================

// Cancel moves a SCHEDULED appointment to CANCELLED, provided it starts at
// least leadTime after now.
func Cancel(ap *Appointment, reason string, now time.Time, leadTime time.Duration) error {
	if err := CanCancel(ap.Status); err != nil {
		return err
	}

	startsAt, err := ap.StartsAt(now.Location())
	if err != nil {
		return err
	}
	if startsAt.Sub(now) < leadTime {
		return invalidState("too_late_to_cancel")
	}

	ap.Status = StatusCancelled
	ap.CancelReason = reason
	ap.UpdatedAt = now
	return nil
}

func Complete(ap *Appointment, now time.Time) error {
	if err := CanComplete(ap.Status); err != nil {
		return err
	}

	ap.Status = StatusCompleted
	ap.UpdatedAt = now
	return nil
}

// DateOnly truncates t to its calendar day, keeping its location.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
