package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/dto"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
)

type Lister interface {
	ListByClient(ctx context.Context, clientID string) ([]models.Appointment, error)
	ListByProfessional(ctx context.Context, professionalID string) ([]models.Appointment, error)
	ListAgenda(ctx context.Context, professionalID string, date time.Time) ([]models.Appointment, error)
}

// ======================================================
// MY APPOINTMENTS
// ======================================================

type ListMyAppointments struct {
	repo Lister
}

func NewListMyAppointments(repo Lister) *ListMyAppointments {
	return &ListMyAppointments{repo: repo}
}

// Execute returns the client's own appointments, or for a professional the
// ones assigned to them; newest first.
func (uc *ListMyAppointments) Execute(
	ctx context.Context,
	actor domain.User,
) ([]dto.AppointmentListDTO, error) {

	var (
		rows []models.Appointment
		err  error
	)
	switch {
	case actor.IsProfessional():
		rows, err = uc.repo.ListByProfessional(ctx, actor.ID)
	case actor.IsClient():
		rows, err = uc.repo.ListByClient(ctx, actor.ID)
	default:
		return nil, domain.NewError(domain.KindPermission, "role_has_no_appointments")
	}
	if err != nil {
		return nil, err
	}

	return toListDTOs(rows), nil
}

// ======================================================
// AGENDA DO DIA
// ======================================================

type ListAgenda struct {
	repo Lister
}

func NewListAgenda(repo Lister) *ListAgenda {
	return &ListAgenda{repo: repo}
}

func (uc *ListAgenda) Execute(
	ctx context.Context,
	actor domain.User,
	date time.Time,
) ([]dto.AppointmentListDTO, error) {

	if !actor.IsProfessional() {
		return nil, domain.NewError(domain.KindPermission, "not_a_professional")
	}

	rows, err := uc.repo.ListAgenda(ctx, actor.ID, domain.DateOnly(date))
	if err != nil {
		return nil, err
	}
	return toListDTOs(rows), nil
}

func toListDTOs(rows []models.Appointment) []dto.AppointmentListDTO {
	out := make([]dto.AppointmentListDTO, 0, len(rows))
	for _, ap := range rows {
		out = append(out, dto.FromModel(ap))
	}
	return out
}
