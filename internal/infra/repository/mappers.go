package repository

import (
	"fmt"

	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
)

func toDomainAppointment(m models.Appointment) domain.Appointment {
	return domain.Appointment{
		ID:             m.ID,
		ServiceID:      m.ServiceID,
		ClientID:       m.ClientID,
		ProfessionalID: m.ProfessionalID,
		Date:           domain.DateOnly(m.Date),
		StartTime:      m.StartTime,
		EndTime:        m.EndTime,
		Status:         domain.Status(m.Status),
		CancelReason:   m.CancelReason,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func fromDomainAppointment(ap *domain.Appointment) (models.Appointment, error) {
	if !ap.Status.Valid() {
		return models.Appointment{}, fmt.Errorf("unknown appointment status %q", ap.Status)
	}
	start, err := domain.Minutes(ap.StartTime)
	if err != nil {
		return models.Appointment{}, err
	}
	end, err := domain.Minutes(ap.EndTime)
	if err != nil {
		return models.Appointment{}, err
	}
	return models.Appointment{
		ID:             ap.ID,
		ServiceID:      ap.ServiceID,
		ClientID:       ap.ClientID,
		ProfessionalID: ap.ProfessionalID,
		Date:           domain.DateOnly(ap.Date),
		StartTime:      ap.StartTime,
		EndTime:        ap.EndTime,
		StartMinute:    start,
		EndMinute:      end,
		Status:         string(ap.Status),
		CancelReason:   ap.CancelReason,
		CreatedAt:      ap.CreatedAt,
		UpdatedAt:      ap.UpdatedAt,
	}, nil
}

func toDomainService(m models.Service) domain.Service {
	return domain.Service{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		DurationMin: m.DurationMin,
		Price:       m.Price,
		Active:      m.Active,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func fromDomainService(s *domain.Service) models.Service {
	return models.Service{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		DurationMin: s.DurationMin,
		Price:       s.Price,
		Active:      s.Active,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func toDomainUser(m models.User) domain.User {
	return domain.User{
		ID:   m.ID,
		Name: m.Name,
		Role: domain.Role(m.Role),
	}
}
