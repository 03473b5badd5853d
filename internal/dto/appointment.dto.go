package dto

import (
	"time"

	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
)

const dateLayout = "2006-01-02"

type AppointmentDTO struct {
	ID             string    `json:"id"`
	ServiceID      string    `json:"serviceId"`
	ClientID       string    `json:"clientId"`
	ProfessionalID string    `json:"professionalId"`
	Date           string    `json:"date"`
	StartTime      string    `json:"startTime"`
	EndTime        string    `json:"endTime"`
	Status         string    `json:"status"`
	CancelReason   string    `json:"cancelReason,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// AppointmentListDTO is an appointment enriched with display names.
type AppointmentListDTO struct {
	AppointmentDTO
	ServiceName      string `json:"serviceName"`
	ClientName       string `json:"clientName"`
	ProfessionalName string `json:"professionalName"`
}

func FromDomain(ap *domain.Appointment) AppointmentDTO {
	return AppointmentDTO{
		ID:             ap.ID,
		ServiceID:      ap.ServiceID,
		ClientID:       ap.ClientID,
		ProfessionalID: ap.ProfessionalID,
		Date:           ap.Date.Format(dateLayout),
		StartTime:      ap.StartTime,
		EndTime:        ap.EndTime,
		Status:         string(ap.Status),
		CancelReason:   ap.CancelReason,
		CreatedAt:      ap.CreatedAt,
	}
}

func FromModel(m models.Appointment) AppointmentListDTO {
	return AppointmentListDTO{
		AppointmentDTO: AppointmentDTO{
			ID:             m.ID,
			ServiceID:      m.ServiceID,
			ClientID:       m.ClientID,
			ProfessionalID: m.ProfessionalID,
			Date:           m.Date.Format(dateLayout),
			StartTime:      m.StartTime,
			EndTime:        m.EndTime,
			Status:         m.Status,
			CancelReason:   m.CancelReason,
			CreatedAt:      m.CreatedAt,
		},
		ServiceName:      m.Service.Name,
		ClientName:       m.Client.Name,
		ProfessionalName: m.Professional.Name,
	}
}
