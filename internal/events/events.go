package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
)

const (
	TypeAppointmentCreated   = "appointment.created"
	TypeAppointmentCancelled = "appointment.cancelled"
	TypeAppointmentCompleted = "appointment.completed"
)

// Event is the payload published for every appointment lifecycle transition.
type Event struct {
	ID         string    `json:"eventId"`
	Type       string    `json:"eventType"`
	OccurredAt time.Time `json:"occurredAt"`

	AppointmentID  string `json:"appointmentId"`
	ServiceID      string `json:"serviceId"`
	ClientID       string `json:"clientId"`
	ProfessionalID string `json:"professionalId"`
	Date           string `json:"date"`
	StartTime      string `json:"startTime"`
	EndTime        string `json:"endTime"`
	Status         string `json:"status"`
	CancelReason   string `json:"cancelReason,omitempty"`
}

func FromAppointment(eventType string, ap *domain.Appointment, at time.Time) Event {
	return Event{
		ID:             uuid.NewString(),
		Type:           eventType,
		OccurredAt:     at,
		AppointmentID:  ap.ID,
		ServiceID:      ap.ServiceID,
		ClientID:       ap.ClientID,
		ProfessionalID: ap.ProfessionalID,
		Date:           ap.Date.Format("2006-01-02"),
		StartTime:      ap.StartTime,
		EndTime:        ap.EndTime,
		Status:         string(ap.Status),
		CancelReason:   ap.CancelReason,
	}
}

type Publisher interface {
	Publish(ctx context.Context, ev Event) error
	Close() error
}

// Noop is used when no broker is configured.
type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }
func (Noop) Close() error                         { return nil }
