package models

import "time"

// Perfil público de um profissional (um por usuário PROFESSIONAL)
type ProfessionalProfile struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	UserID string `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	User   User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Bio            string  `gorm:"type:text" json:"bio"`
	Specialization string  `gorm:"size:100" json:"specialization"`
	ServiceID      *string `gorm:"type:uuid" json:"service_id"`

	// Inativo: fora da atribuição e da disponibilidade
	Active bool `gorm:"not null" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
