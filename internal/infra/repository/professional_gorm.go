package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
)

// ErrProfileExists is what a concurrent second create for the same user
// gets back from the unique index.
var ErrProfileExists = domain.NewError(domain.KindInvalidState, "professional_already_exists")

type ProfessionalGormRepository struct {
	db *gorm.DB
}

func NewProfessionalGormRepository(db *gorm.DB) *ProfessionalGormRepository {
	return &ProfessionalGormRepository{db: db}
}

func (r *ProfessionalGormRepository) FindByID(ctx context.Context, id string) (*models.ProfessionalProfile, error) {
	if !ValidID(id) {
		return nil, nil
	}
	return r.first(ctx, "id = ?", id)
}

func (r *ProfessionalGormRepository) FindByUserID(ctx context.Context, userID string) (*models.ProfessionalProfile, error) {
	if !ValidID(userID) {
		return nil, nil
	}
	return r.first(ctx, "user_id = ?", userID)
}

func (r *ProfessionalGormRepository) first(ctx context.Context, cond string, arg string) (*models.ProfessionalProfile, error) {
	var p models.ProfessionalProfile
	err := r.db.WithContext(ctx).Where(cond, arg).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || isInvalidText(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create maps the unique user_id index to ErrProfileExists.
func (r *ProfessionalGormRepository) Create(ctx context.Context, p *models.ProfessionalProfile) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrProfileExists
		}
		return fmt.Errorf("create professional profile: %w", err)
	}
	return nil
}

func (r *ProfessionalGormRepository) Update(ctx context.Context, p *models.ProfessionalProfile) error {
	return r.db.WithContext(ctx).
		Model(&models.ProfessionalProfile{}).
		Where("id = ?", p.ID).
		Updates(map[string]any{
			"bio":            p.Bio,
			"specialization": p.Specialization,
			"active":         p.Active,
			"updated_at":     p.UpdatedAt,
		}).Error
}
