package dto

import (
	"time"

	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
)

type ProfessionalDTO struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	Bio            string    `json:"bio"`
	Specialization string    `json:"specialization"`
	ServiceID      *string   `json:"serviceId,omitempty"`
	Active         bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func FromProfessional(p *models.ProfessionalProfile) ProfessionalDTO {
	return ProfessionalDTO{
		ID:             p.ID,
		UserID:         p.UserID,
		Bio:            p.Bio,
		Specialization: p.Specialization,
		ServiceID:      p.ServiceID,
		Active:         p.Active,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
