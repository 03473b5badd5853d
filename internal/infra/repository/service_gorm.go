package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
)

type ServiceGormRepository struct {
	db *gorm.DB
}

func NewServiceGormRepository(db *gorm.DB) *ServiceGormRepository {
	return &ServiceGormRepository{db: db}
}

func (r *ServiceGormRepository) FindServiceByID(
	ctx context.Context,
	id string,
) (*domain.Service, error) {

	if !ValidID(id) {
		return nil, nil
	}

	var m models.Service
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || isInvalidText(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	s := toDomainService(m)
	return &s, nil
}

func (r *ServiceGormRepository) ListActive(ctx context.Context) ([]domain.Service, error) {
	var rows []models.Service
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Service, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainService(m))
	}
	return out, nil
}

func (r *ServiceGormRepository) Create(ctx context.Context, s *domain.Service) error {
	m := fromDomainService(s)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	s.CreatedAt, s.UpdatedAt = m.CreatedAt, m.UpdatedAt
	return nil
}

func (r *ServiceGormRepository) Update(ctx context.Context, s *domain.Service) error {
	return r.db.WithContext(ctx).
		Model(&models.Service{}).
		Where("id = ?", s.ID).
		Updates(map[string]any{
			"name":         s.Name,
			"description":  s.Description,
			"duration_min": s.DurationMin,
			"price":        s.Price,
			"active":       s.Active,
			"updated_at":   s.UpdatedAt,
		}).Error
}

var _ domain.ServiceLookup = (*ServiceGormRepository)(nil)
