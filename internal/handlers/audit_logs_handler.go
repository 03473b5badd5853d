package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/appointment-scheduler/internal/audit"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type auditQuery interface {
	List(ctx context.Context, f audit.Filter) ([]models.AuditLog, int64, error)
}

type AuditLogsHandler struct {
	logs auditQuery
}

func NewAuditLogsHandler(logs auditQuery) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs}
}

// GET /api/audit-logs?action=&entity=&userId=&from=&to=&page=&limit=
func (h *AuditLogsHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	// datas inválidas são ignoradas
	from, to := parseDayRange(c.Query("from"), c.Query("to"))

	logs, total, err := h.logs.List(c.Request.Context(), audit.Filter{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
		UserID: c.Query("userId"),
		From:   from,
		To:     to,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		_ = c.Error(err)
		httperr.Internal(c, "audit_list_failed", "Erro ao listar logs.")
		return
	}
	if logs == nil {
		logs = []models.AuditLog{}
	}

	c.JSON(http.StatusOK, gin.H{
		"page":  page,
		"limit": limit,
		"total": total,
		"logs":  logs,
	})
}
