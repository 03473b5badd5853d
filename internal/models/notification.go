package models

import "time"

// Notificação para o profissional (agendamento criado / cancelado)
type Notification struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	ProfessionalID string `gorm:"type:uuid;not null;index" json:"professional_id"`
	AppointmentID  string `gorm:"type:uuid;not null" json:"appointment_id"`

	Type    string `gorm:"size:30;not null" json:"type"`
	Message string `gorm:"size:255" json:"message"`
	Read    bool   `gorm:"not null;default:false" json:"read"`

	CreatedAt time.Time  `json:"created_at"`
	ReadAt    *time.Time `json:"read_at"`
}
