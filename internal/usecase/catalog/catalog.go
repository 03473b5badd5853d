package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/appointment-scheduler/internal/audit"
	"github.com/BruksfildServices01/appointment-scheduler/internal/clock"
	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
)

type Repository interface {
	FindServiceByID(ctx context.Context, id string) (*domain.Service, error)
	ListActive(ctx context.Context) ([]domain.Service, error)
	Create(ctx context.Context, s *domain.Service) error
	Update(ctx context.Context, s *domain.Service) error
}

type Auditor interface {
	Dispatch(ev audit.Event)
}

// ======================================================
// LIST / GET
// ======================================================

type ListServices struct {
	repo Repository
}

func NewListServices(repo Repository) *ListServices {
	return &ListServices{repo: repo}
}

func (uc *ListServices) Execute(ctx context.Context) ([]domain.Service, error) {
	return uc.repo.ListActive(ctx)
}

type GetService struct {
	repo Repository
}

func NewGetService(repo Repository) *GetService {
	return &GetService{repo: repo}
}

func (uc *GetService) Execute(ctx context.Context, id string) (*domain.Service, error) {
	s, err := uc.repo.FindServiceByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find service: %w", err)
	}
	if s == nil {
		return nil, domain.NewError(domain.KindNotFound, "service_not_found")
	}
	return s, nil
}

// ======================================================
// CREATE (admin)
// ======================================================

type CreateServiceInput struct {
	Name        string
	Description string
	DurationMin int
	Price       float64
}

type CreateService struct {
	repo  Repository
	audit Auditor
	clock clock.Clock
}

func NewCreateService(repo Repository, audit Auditor, clk clock.Clock) *CreateService {
	return &CreateService{repo: repo, audit: audit, clock: clk}
}

func (uc *CreateService) Execute(
	ctx context.Context,
	adminID string,
	in CreateServiceInput,
) (*domain.Service, error) {

	s, err := domain.NewService(
		uuid.NewString(),
		in.Name,
		strings.TrimSpace(in.Description),
		in.DurationMin,
		in.Price,
		true,
	)
	if err != nil {
		return nil, err
	}
	now := uc.clock.Now()
	s.CreatedAt, s.UpdatedAt = now, now

	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, fmt.Errorf("create service: %w", err)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   adminID,
		Action:   audit.ActionServiceCreated,
		Entity:   "service",
		EntityID: s.ID,
	})
	return s, nil
}

// ======================================================
// UPDATE (admin)
// ======================================================

// UpdateServiceInput applies only the non-nil fields.
type UpdateServiceInput struct {
	Name        *string
	Description *string
	DurationMin *int
	Price       *float64
	Active      *bool
}

type UpdateService struct {
	repo  Repository
	audit Auditor
	clock clock.Clock
}

func NewUpdateService(repo Repository, audit Auditor, clk clock.Clock) *UpdateService {
	return &UpdateService{repo: repo, audit: audit, clock: clk}
}

func (uc *UpdateService) Execute(
	ctx context.Context,
	adminID string,
	id string,
	in UpdateServiceInput,
) (*domain.Service, error) {

	s, err := uc.repo.FindServiceByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find service: %w", err)
	}
	if s == nil {
		return nil, domain.NewError(domain.KindNotFound, "service_not_found")
	}

	if in.Name != nil {
		s.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		s.Description = strings.TrimSpace(*in.Description)
	}
	if in.DurationMin != nil {
		s.DurationMin = *in.DurationMin
	}
	if in.Price != nil {
		s.Price = *in.Price
	}
	if in.Active != nil {
		if *in.Active {
			s.Activate()
		} else {
			s.Deactivate()
		}
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	s.UpdatedAt = uc.clock.Now()

	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, fmt.Errorf("update service: %w", err)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   adminID,
		Action:   audit.ActionServiceUpdated,
		Entity:   "service",
		EntityID: s.ID,
	})
	return s, nil
}
