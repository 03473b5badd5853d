package appointment

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/BruksfildServices01/appointment-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/events"
	"github.com/BruksfildServices01/appointment-scheduler/internal/otelx"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ServiceID string
	ClientID  string
	Date      time.Time
	StartTime string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	manager *domain.Manager
	effects Effects
}

func NewCreateAppointment(manager *domain.Manager, effects Effects) *CreateAppointment {
	return &CreateAppointment{manager: manager, effects: effects}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (ap *domain.Appointment, err error) {

	ctx, span := otelx.Tracer().Start(ctx, "appointment.create")
	span.SetAttributes(
		attribute.String("service.id", in.ServiceID),
		attribute.String("date", in.Date.Format("2006-01-02")),
		attribute.String("start_time", in.StartTime),
	)
	defer func() { endSpan(span, err) }()

	ap, err = uc.manager.Create(ctx, domain.CreateInput{
		ServiceID: in.ServiceID,
		ClientID:  in.ClientID,
		Date:      in.Date,
		StartTime: in.StartTime,
	})
	if err != nil {
		// --------------------------------------------------
		// Conflito: nenhum profissional livre
		// --------------------------------------------------
		if errors.Is(err, domain.ErrNoAvailability) {
			uc.effects.audit(in.ClientID, audit.ActionAppointmentConflict, "", map[string]any{
				"serviceId": in.ServiceID,
				"date":      in.Date.Format("2006-01-02"),
				"startTime": in.StartTime,
				"reason":    domain.CodeOf(err),
			})
		}
		return nil, err
	}

	span.SetAttributes(
		attribute.String("appointment.id", ap.ID),
		attribute.String("professional.id", ap.ProfessionalID),
	)

	uc.effects.audit(in.ClientID, audit.ActionAppointmentCreated, ap.ID, nil)
	uc.effects.notify(ctx, ap, uc.effects.Notifier.AppointmentCreated)
	uc.effects.publish(ctx, events.TypeAppointmentCreated, ap)

	return ap, nil
}
