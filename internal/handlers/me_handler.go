package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
	"github.com/BruksfildServices01/appointment-scheduler/internal/middleware"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
)

type userFinder interface {
	FindModelByID(ctx context.Context, id string) (*models.User, error)
}

type MeHandler struct {
	users userFinder
}

func NewMeHandler(users userFinder) *MeHandler {
	return &MeHandler{users: users}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	user, err := h.users.FindModelByID(c.Request.Context(), middleware.CurrentUser(c).ID)
	if err != nil {
		_ = c.Error(err)
		httperr.Internal(c, "internal_error", "Erro interno.")
		return
	}
	// token válido para um usuário removido
	if user == nil {
		httperr.Unauthorized(c, "user_not_found", "Usuário não encontrado.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": userJSON(user)})
}

func userJSON(u *models.User) gin.H {
	return gin.H{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
		"phone": u.Phone,
		"role":  u.Role,
	}
}
