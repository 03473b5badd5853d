package appointment

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/otelx"
)

type GetAvailability struct {
	calc *domain.Calculator
}

func NewGetAvailability(calc *domain.Calculator) *GetAvailability {
	return &GetAvailability{calc: calc}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	serviceID string,
	date time.Time,
) (slots []domain.Slot, err error) {

	ctx, span := otelx.Tracer().Start(ctx, "appointment.availability")
	span.SetAttributes(
		attribute.String("service.id", serviceID),
		attribute.String("date", date.Format("2006-01-02")),
	)
	defer func() { endSpan(span, err) }()

	slots, err = uc.calc.ComputeAvailableSlots(ctx, serviceID, date)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("slots", len(slots)))
	return slots, nil
}
