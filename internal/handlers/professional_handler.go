package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/dto"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/appointment-scheduler/internal/middleware"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
	"github.com/BruksfildServices01/appointment-scheduler/internal/usecase/professional"
)

type profileCreator interface {
	Execute(ctx context.Context, actorID string, in professional.CreateProfileInput) (*models.ProfessionalProfile, error)
}

type profileUpdater interface {
	Execute(ctx context.Context, actorID, id string, in professional.UpdateProfileInput) (*models.ProfessionalProfile, error)
}

type myProfileGetter interface {
	Execute(ctx context.Context, userID string) (*models.ProfessionalProfile, error)
}

type ProfessionalHandler struct {
	create profileCreator
	update profileUpdater
	me     myProfileGetter
}

func NewProfessionalHandler(
	create profileCreator,
	update profileUpdater,
	me myProfileGetter,
) *ProfessionalHandler {
	return &ProfessionalHandler{create: create, update: update, me: me}
}

// --------- Requests ---------

type CreateProfessionalRequest struct {
	UserID         string `json:"userId"`
	Bio            string `json:"bio"`
	Specialization string `json:"specialization"`
	ServiceID      string `json:"serviceId"`
}

type UpdateProfessionalRequest struct {
	Bio            *string `json:"bio,omitempty"`
	Specialization *string `json:"specialization,omitempty"`
	Active         *bool   `json:"isActive,omitempty"`
}

// --------- Handlers ---------

// Create registers a profile. A professional always creates their own; an
// admin names the user in the body.
func (h *ProfessionalHandler) Create(c *gin.Context) {
	var req CreateProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	current := middleware.CurrentUser(c)
	userID := req.UserID
	if current.Role == domain.RoleProfessional {
		userID = current.ID
	}
	if userID == "" {
		httperr.BadRequest(c, "invalid_request", "userId obrigatório.")
		return
	}

	p, err := h.create.Execute(c.Request.Context(), current.ID, professional.CreateProfileInput{
		UserID:         userID,
		Bio:            req.Bio,
		Specialization: req.Specialization,
		ServiceID:      req.ServiceID,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Created(c, dto.FromProfessional(p))
}

func (h *ProfessionalHandler) Update(c *gin.Context) {
	var req UpdateProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	p, err := h.update.Execute(c.Request.Context(), middleware.CurrentUser(c).ID, c.Param("id"), professional.UpdateProfileInput{
		Bio:            req.Bio,
		Specialization: req.Specialization,
		Active:         req.Active,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, dto.FromProfessional(p))
}

func (h *ProfessionalHandler) Me(c *gin.Context) {
	p, err := h.me.Execute(c.Request.Context(), middleware.CurrentUser(c).ID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, dto.FromProfessional(p))
}
