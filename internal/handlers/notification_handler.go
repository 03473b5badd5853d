package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/appointment-scheduler/internal/middleware"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
)

type notificationLister interface {
	Execute(ctx context.Context, professionalID string, unreadOnly bool) ([]models.Notification, error)
}

type notificationMarker interface {
	Execute(ctx context.Context, professionalID, notificationID string) (*models.Notification, error)
}

type NotificationHandler struct {
	list     notificationLister
	markRead notificationMarker
}

func NewNotificationHandler(list notificationLister, markRead notificationMarker) *NotificationHandler {
	return &NotificationHandler{list: list, markRead: markRead}
}

// GET /api/me/notifications?unread=true
func (h *NotificationHandler) List(c *gin.Context) {
	unreadOnly := c.Query("unread") == "true"

	items, err := h.list.Execute(c.Request.Context(), middleware.CurrentUser(c).ID, unreadOnly)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, items)
}

// PATCH /api/me/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	n, err := h.markRead.Execute(c.Request.Context(), middleware.CurrentUser(c).ID, c.Param("id"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, n)
}
