package professional

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/appointment-scheduler/internal/audit"
	"github.com/BruksfildServices01/appointment-scheduler/internal/clock"
	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
)

type Repository interface {
	FindByID(ctx context.Context, id string) (*models.ProfessionalProfile, error)
	FindByUserID(ctx context.Context, userID string) (*models.ProfessionalProfile, error)
	Create(ctx context.Context, p *models.ProfessionalProfile) error
	Update(ctx context.Context, p *models.ProfessionalProfile) error
}

type UserFinder interface {
	FindUserByID(ctx context.Context, id string) (*domain.User, error)
}

type ServiceFinder interface {
	FindServiceByID(ctx context.Context, id string) (*domain.Service, error)
}

type Auditor interface {
	Dispatch(ev audit.Event)
}

func profileNotFound() error {
	return domain.NewError(domain.KindNotFound, "professional_not_found")
}

// ======================================================
// CREATE
// ======================================================

type CreateProfileInput struct {
	UserID         string
	Bio            string
	Specialization string
	ServiceID      string // opcional
}

type CreateProfile struct {
	repo     Repository
	users    UserFinder
	services ServiceFinder
	audit    Auditor
	clock    clock.Clock
}

func NewCreateProfile(
	repo Repository,
	users UserFinder,
	services ServiceFinder,
	audit Auditor,
	clk clock.Clock,
) *CreateProfile {
	return &CreateProfile{repo: repo, users: users, services: services, audit: audit, clock: clk}
}

// Execute creates the single profile a PROFESSIONAL user may have.
func (uc *CreateProfile) Execute(
	ctx context.Context,
	actorID string,
	in CreateProfileInput,
) (*models.ProfessionalProfile, error) {

	user, err := uc.users.FindUserByID(ctx, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, domain.NewError(domain.KindNotFound, "user_not_found")
	}
	if !user.IsProfessional() {
		return nil, domain.NewError(domain.KindValidation, "not_a_professional")
	}

	existing, err := uc.repo.FindByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("find profile: %w", err)
	}
	if existing != nil {
		return nil, domain.NewError(domain.KindInvalidState, "professional_already_exists")
	}

	var serviceID *string
	if id := strings.TrimSpace(in.ServiceID); id != "" {
		svc, err := uc.services.FindServiceByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("find service: %w", err)
		}
		if svc == nil {
			return nil, domain.NewError(domain.KindNotFound, "service_not_found")
		}
		serviceID = &svc.ID
	}

	now := uc.clock.Now()
	p := &models.ProfessionalProfile{
		ID:             uuid.NewString(),
		UserID:         user.ID,
		Bio:            strings.TrimSpace(in.Bio),
		Specialization: strings.TrimSpace(in.Specialization),
		ServiceID:      serviceID,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   actorID,
		Action:   audit.ActionProfessionalCreated,
		Entity:   "professional",
		EntityID: p.ID,
	})
	return p, nil
}

// ======================================================
// UPDATE (admin)
// ======================================================

// UpdateProfileInput applies only the non-nil fields.
type UpdateProfileInput struct {
	Bio            *string
	Specialization *string
	Active         *bool
}

type UpdateProfile struct {
	repo  Repository
	audit Auditor
	clock clock.Clock
}

func NewUpdateProfile(repo Repository, audit Auditor, clk clock.Clock) *UpdateProfile {
	return &UpdateProfile{repo: repo, audit: audit, clock: clk}
}

func (uc *UpdateProfile) Execute(
	ctx context.Context,
	actorID string,
	id string,
	in UpdateProfileInput,
) (*models.ProfessionalProfile, error) {

	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find profile: %w", err)
	}
	if p == nil {
		return nil, profileNotFound()
	}

	if in.Bio != nil {
		p.Bio = strings.TrimSpace(*in.Bio)
	}
	if in.Specialization != nil {
		p.Specialization = strings.TrimSpace(*in.Specialization)
	}
	if in.Active != nil {
		p.Active = *in.Active
	}
	p.UpdatedAt = uc.clock.Now()

	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   actorID,
		Action:   audit.ActionProfessionalUpdated,
		Entity:   "professional",
		EntityID: p.ID,
		Metadata: map[string]any{"active": p.Active},
	})
	return p, nil
}

// ======================================================
// ME (professional)
// ======================================================

type GetMyProfile struct {
	repo Repository
}

func NewGetMyProfile(repo Repository) *GetMyProfile {
	return &GetMyProfile{repo: repo}
}

func (uc *GetMyProfile) Execute(ctx context.Context, userID string) (*models.ProfessionalProfile, error) {
	p, err := uc.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find profile: %w", err)
	}
	if p == nil {
		return nil, profileNotFound()
	}
	return p, nil
}
