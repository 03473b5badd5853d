package appointment

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/BruksfildServices01/appointment-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/events"
	"github.com/BruksfildServices01/appointment-scheduler/internal/otelx"
)

type CancelAppointmentInput struct {
	AppointmentID string
	UserID        string
	Reason        string
}

type CancelAppointment struct {
	manager *domain.Manager
	effects Effects
}

func NewCancelAppointment(manager *domain.Manager, effects Effects) *CancelAppointment {
	return &CancelAppointment{manager: manager, effects: effects}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	in CancelAppointmentInput,
) (ap *domain.Appointment, err error) {

	ctx, span := otelx.Tracer().Start(ctx, "appointment.cancel")
	span.SetAttributes(attribute.String("appointment.id", in.AppointmentID))
	defer func() { endSpan(span, err) }()

	ap, err = uc.manager.Cancel(ctx, domain.CancelInput{
		AppointmentID:    in.AppointmentID,
		RequestingUserID: in.UserID,
		Reason:           in.Reason,
	})
	if err != nil {
		return nil, err
	}

	uc.effects.audit(in.UserID, audit.ActionAppointmentCancelled, ap.ID, map[string]any{
		"reason": ap.CancelReason,
	})
	uc.effects.notify(ctx, ap, uc.effects.Notifier.AppointmentCancelled)
	uc.effects.publish(ctx, events.TypeAppointmentCancelled, ap)

	return ap, nil
}
