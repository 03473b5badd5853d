package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// requestIDHeader mirrors middleware.RequestIDHeader; the middleware sets it
// on the response before any handler runs.
const requestIDHeader = "X-Request-Id"

// HTTPError is the body of every non-2xx response.
type HTTPError struct {
	Code      string `json:"error_code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

func body(c *gin.Context, code, message string) HTTPError {
	return HTTPError{
		Code:      code,
		Message:   message,
		RequestID: c.Writer.Header().Get(requestIDHeader),
	}
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, body(c, code, message))
}

// Abort writes the error and stops the handler chain.
func Abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, body(c, code, message))
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}
