package appointment

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/BruksfildServices01/appointment-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/events"
	"github.com/BruksfildServices01/appointment-scheduler/internal/otelx"
)

type AppointmentFinder interface {
	FindByID(ctx context.Context, id string) (*domain.Appointment, error)
}

type CompleteAppointment struct {
	manager *domain.Manager
	finder  AppointmentFinder
	effects Effects
}

func NewCompleteAppointment(
	manager *domain.Manager,
	finder AppointmentFinder,
	effects Effects,
) *CompleteAppointment {
	return &CompleteAppointment{
		manager: manager,
		finder:  finder,
		effects: effects,
	}
}

// Execute completes an appointment on behalf of its assigned professional
// or an admin.
func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	actor domain.User,
	appointmentID string,
) (ap *domain.Appointment, err error) {

	ctx, span := otelx.Tracer().Start(ctx, "appointment.complete")
	span.SetAttributes(attribute.String("appointment.id", appointmentID))
	defer func() { endSpan(span, err) }()

	current, err := uc.finder.FindByID(ctx, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("find appointment: %w", err)
	}
	if current == nil {
		return nil, domain.NewError(domain.KindNotFound, "appointment_not_found")
	}
	if !actor.IsAdmin() && !(actor.IsProfessional() && current.ProfessionalID == actor.ID) {
		return nil, domain.NewError(domain.KindPermission, "not_assigned_professional")
	}

	ap, err = uc.manager.Complete(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	uc.effects.audit(actor.ID, audit.ActionAppointmentCompleted, ap.ID, nil)
	uc.effects.publish(ctx, events.TypeAppointmentCompleted, ap)

	return ap, nil
}
