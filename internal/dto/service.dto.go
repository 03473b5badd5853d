package dto

import domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"

type ServiceDTO struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	DurationMin int     `json:"durationMinutes"`
	Price       float64 `json:"price"`
	Active      bool    `json:"active"`
}

func FromService(s *domain.Service) ServiceDTO {
	return ServiceDTO{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		DurationMin: s.DurationMin,
		Price:       s.Price,
		Active:      s.Active,
	}
}
