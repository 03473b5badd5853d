package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
)

var statusByKind = map[domain.Kind]int{
	domain.KindNotFound:       http.StatusNotFound,
	domain.KindInvalidState:   http.StatusConflict,
	domain.KindPermission:     http.StatusForbidden,
	domain.KindValidation:     http.StatusBadRequest,
	domain.KindNoAvailability: http.StatusConflict,
}

var messageByKind = map[domain.Kind]string{
	domain.KindNotFound:       "Recurso não encontrado.",
	domain.KindInvalidState:   "Operação não permitida no estado atual.",
	domain.KindPermission:     "Acesso negado.",
	domain.KindValidation:     "Dados inválidos.",
	domain.KindNoAvailability: "Nenhum horário disponível.",
}

var messageByCode = map[string]string{
	"service_not_found":           "Serviço não encontrado.",
	"service_inactive":            "Serviço inativo.",
	"appointment_not_found":       "Agendamento não encontrado.",
	"client_not_found":            "Cliente não encontrado.",
	"not_a_client":                "Apenas clientes podem agendar.",
	"not_appointment_owner":       "Agendamento pertence a outro cliente.",
	"cancel_reason_required":      "Motivo do cancelamento obrigatório.",
	"too_late_to_cancel":          "Prazo de cancelamento expirado.",
	"invalid_start_time":          "Horário inválido.",
	"invalid_date":                "Data inválida.",
	"no_professionals":            "Nenhum profissional cadastrado.",
	"user_not_found":              "Usuário não encontrado.",
	"not_a_professional":          "Usuário não é um profissional.",
	"professional_not_found":      "Profissional não encontrado.",
	"professional_already_exists": "Profissional já cadastrado para este usuário.",
}

// StatusFor maps a core error kind to its HTTP status; anything that is not
// a business error is a 500.
func StatusFor(err error) int {
	if status, ok := statusByKind[domain.KindOf(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// FromError writes the response for err. Non-business errors never leak
// their text to the client.
func FromError(c *gin.Context, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		Internal(c, "internal_error", "Erro interno.")
		return
	}

	kind := domain.KindOf(err)
	code := domain.CodeOf(err)
	msg, ok := messageByCode[code]
	if !ok {
		msg = messageByKind[kind]
	}
	Write(c, status, code, msg)
}
