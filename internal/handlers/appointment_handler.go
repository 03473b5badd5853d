package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/dto"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/appointment-scheduler/internal/middleware"
	ucappointment "github.com/BruksfildServices01/appointment-scheduler/internal/usecase/appointment"
)

// ======================================================
// USE CASE PORTS
// ======================================================

type availabilityQuery interface {
	Execute(ctx context.Context, serviceID string, date time.Time) ([]domain.Slot, error)
}

type appointmentCreator interface {
	Execute(ctx context.Context, in ucappointment.CreateAppointmentInput) (*domain.Appointment, error)
}

type appointmentCanceller interface {
	Execute(ctx context.Context, in ucappointment.CancelAppointmentInput) (*domain.Appointment, error)
}

type appointmentCompleter interface {
	Execute(ctx context.Context, actor domain.User, appointmentID string) (*domain.Appointment, error)
}

type myAppointmentsLister interface {
	Execute(ctx context.Context, actor domain.User) ([]dto.AppointmentListDTO, error)
}

type agendaLister interface {
	Execute(ctx context.Context, actor domain.User, date time.Time) ([]dto.AppointmentListDTO, error)
}

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	availability availabilityQuery
	create       appointmentCreator
	cancel       appointmentCanceller
	complete     appointmentCompleter
	listMine     myAppointmentsLister
	agenda       agendaLister
}

type AppointmentUseCases struct {
	Availability availabilityQuery
	Create       appointmentCreator
	Cancel       appointmentCanceller
	Complete     appointmentCompleter
	ListMine     myAppointmentsLister
	Agenda       agendaLister
}

func NewAppointmentHandler(uc AppointmentUseCases) *AppointmentHandler {
	return &AppointmentHandler{
		availability: uc.Availability,
		create:       uc.Create,
		cancel:       uc.Cancel,
		complete:     uc.Complete,
		listMine:     uc.ListMine,
		agenda:       uc.Agenda,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ServiceID string `json:"serviceId" binding:"required"`
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"startTime" binding:"required"`
}

type CancelAppointmentRequest struct {
	CancelReason string `json:"cancelReason"`
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *AppointmentHandler) Availability(c *gin.Context) {
	serviceID := c.Query("serviceId")
	if serviceID == "" {
		httperr.BadRequest(c, "service_id_required", "Informe o serviço.")
		return
	}

	date, ok := parseDateParam(c, c.Query("date"))
	if !ok {
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), serviceID, date)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, slots)
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	date, ok := parseDateParam(c, req.Date)
	if !ok {
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), ucappointment.CreateAppointmentInput{
		ServiceID: req.ServiceID,
		ClientID:  middleware.CurrentUser(c).ID,
		Date:      date,
		StartTime: req.StartTime,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, dto.FromDomain(ap))
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListMine(c *gin.Context) {
	items, err := h.listMine.Execute(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, items)
}

func (h *AppointmentHandler) Agenda(c *gin.Context) {
	date, ok := parseDateParam(c, c.Query("date"))
	if !ok {
		return
	}

	items, err := h.agenda.Execute(c.Request.Context(), middleware.CurrentUser(c), date)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, items)
}

// ======================================================
// CANCEL / COMPLETE
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	var req CancelAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), ucappointment.CancelAppointmentInput{
		AppointmentID: c.Param("id"),
		UserID:        middleware.CurrentUser(c).ID,
		Reason:        req.CancelReason,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, dto.FromDomain(ap))
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	ap, err := h.complete.Execute(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, dto.FromDomain(ap))
}
