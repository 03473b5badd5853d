package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/dto"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/appointment-scheduler/internal/middleware"
	"github.com/BruksfildServices01/appointment-scheduler/internal/usecase/catalog"
)

type serviceLister interface {
	Execute(ctx context.Context) ([]domain.Service, error)
}

type serviceGetter interface {
	Execute(ctx context.Context, id string) (*domain.Service, error)
}

type serviceCreator interface {
	Execute(ctx context.Context, adminID string, in catalog.CreateServiceInput) (*domain.Service, error)
}

type serviceUpdater interface {
	Execute(ctx context.Context, adminID, id string, in catalog.UpdateServiceInput) (*domain.Service, error)
}

type ServiceHandler struct {
	list   serviceLister
	get    serviceGetter
	create serviceCreator
	update serviceUpdater
}

func NewServiceHandler(
	list serviceLister,
	get serviceGetter,
	create serviceCreator,
	update serviceUpdater,
) *ServiceHandler {
	return &ServiceHandler{list: list, get: get, create: create, update: update}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	DurationMin int     `json:"durationMinutes" binding:"required"`
	Price       float64 `json:"price"`
}

type UpdateServiceRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	DurationMin *int     `json:"durationMinutes,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Active      *bool    `json:"active,omitempty"`
}

// --------- Handlers ---------

// List returns active services only.
func (h *ServiceHandler) List(c *gin.Context) {
	services, err := h.list.Execute(c.Request.Context())
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	out := make([]dto.ServiceDTO, 0, len(services))
	for i := range services {
		out = append(out, dto.FromService(&services[i]))
	}
	httpresp.List(c, out)
}

func (h *ServiceHandler) Get(c *gin.Context) {
	s, err := h.get.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, dto.FromService(s))
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	s, err := h.create.Execute(c.Request.Context(), middleware.CurrentUser(c).ID, catalog.CreateServiceInput{
		Name:        req.Name,
		Description: req.Description,
		DurationMin: req.DurationMin,
		Price:       req.Price,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Created(c, dto.FromService(s))
}

func (h *ServiceHandler) Update(c *gin.Context) {
	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	s, err := h.update.Execute(c.Request.Context(), middleware.CurrentUser(c).ID, c.Param("id"), catalog.UpdateServiceInput{
		Name:        req.Name,
		Description: req.Description,
		DurationMin: req.DurationMin,
		Price:       req.Price,
		Active:      req.Active,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, dto.FromService(s))
}
