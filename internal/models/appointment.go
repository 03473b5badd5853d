package models

import "time"

type Appointment struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	ServiceID string  `gorm:"type:uuid;not null" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"service"`

	ClientID string `gorm:"type:uuid;not null;index" json:"client_id"`
	Client   User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"client"`

	ProfessionalID string `gorm:"type:uuid;not null;index:idx_appointments_professional_date,priority:1" json:"professional_id"`
	Professional   User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"professional"`

	// Data civil + HH:MM (horário local ingênuo)
	Date      time.Time `gorm:"type:date;not null;index:idx_appointments_professional_date,priority:2" json:"date"`
	StartTime string    `gorm:"size:5;not null" json:"start_time"`
	EndTime   string    `gorm:"size:5;not null" json:"end_time"`

	// Minutos desde 00:00, usados pela exclusion constraint
	StartMinute int `gorm:"not null" json:"-"`
	EndMinute   int `gorm:"not null" json:"-"`

	Status       string `gorm:"size:20;not null;default:'SCHEDULED';index" json:"status"`
	CancelReason string `gorm:"size:255" json:"cancel_reason"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`
	RemindedAt  *time.Time `json:"reminded_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
