package appointment

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/BruksfildServices01/appointment-scheduler/internal/audit"
	"github.com/BruksfildServices01/appointment-scheduler/internal/clock"
	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/events"
)

type Auditor interface {
	Dispatch(ev audit.Event)
}

type Notifier interface {
	AppointmentCreated(ctx context.Context, ap *domain.Appointment) error
	AppointmentCancelled(ctx context.Context, ap *domain.Appointment) error
}

// Effects bundles what happens after a successful transition: audit trail,
// lifecycle event and professional notification. None of them can fail the
// request; failures are logged.
type Effects struct {
	Audit    Auditor
	Events   events.Publisher
	Notifier Notifier
	Clock    clock.Clock
	Logger   *slog.Logger
}

func (e Effects) audit(userID, action, entityID string, metadata any) {
	e.Audit.Dispatch(audit.Event{
		UserID:   userID,
		Action:   action,
		Entity:   "appointment",
		EntityID: entityID,
		Metadata: metadata,
	})
}

func (e Effects) publish(ctx context.Context, eventType string, ap *domain.Appointment) {
	ev := events.FromAppointment(eventType, ap, e.Clock.Now())
	if err := e.Events.Publish(ctx, ev); err != nil {
		e.Logger.Error("event publish failed",
			"event_type", eventType,
			"appointment_id", ap.ID,
			"err", err,
		)
	}
}

func (e Effects) notify(ctx context.Context, ap *domain.Appointment, fn func(context.Context, *domain.Appointment) error) {
	if err := fn(ctx, ap); err != nil {
		e.Logger.Error("notification failed", "appointment_id", ap.ID, "err", err)
	}
}

// endSpan records err on the span. Business failures are expected outcomes
// and keep the span status unset.
func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		if domain.KindOf(err) == "" {
			span.SetStatus(codes.Error, err.Error())
		}
	}
	span.End()
}
