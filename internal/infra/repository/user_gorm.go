package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
)

type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

func (r *UserGormRepository) FindUserByID(ctx context.Context, id string) (*domain.User, error) {
	m, err := r.FindModelByID(ctx, id)
	if err != nil || m == nil {
		return nil, err
	}
	u := toDomainUser(*m)
	return &u, nil
}

// ListProfessionals orders by name, then id, which is the order first-fit
// assignment walks. Professionals whose profile was deactivated are left
// out; a professional without a profile is still bookable.
func (r *UserGormRepository) ListProfessionals(ctx context.Context) ([]domain.User, error) {
	var rows []models.User
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Joins("LEFT JOIN professional_profiles pp ON pp.user_id = users.id").
		Where("users.role = ?", string(domain.RoleProfessional)).
		Where("(pp.id IS NULL OR pp.active = ?)", true).
		Order("users.name ASC").
		Order("users.id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.User, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainUser(m))
	}
	return out, nil
}

func (r *UserGormRepository) FindModelByID(ctx context.Context, id string) (*models.User, error) {
	if !ValidID(id) {
		return nil, nil
	}

	var m models.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || isInvalidText(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *UserGormRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var m models.User
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// CreateUser assigns an id when missing and normalizes the email.
func (r *UserGormRepository) CreateUser(ctx context.Context, u *models.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))

	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrEmailTaken
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

var _ domain.UserLookup = (*UserGormRepository)(nil)
