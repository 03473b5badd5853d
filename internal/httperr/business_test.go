package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
)

func TestFromError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err      error
		status   int
		code     string
		hideText bool
	}{
		{domain.NewError(domain.KindNotFound, "appointment_not_found"), http.StatusNotFound, "appointment_not_found", false},
		{domain.NewError(domain.KindInvalidState, "too_late_to_cancel"), http.StatusConflict, "too_late_to_cancel", false},
		{domain.NewError(domain.KindPermission, "not_appointment_owner"), http.StatusForbidden, "not_appointment_owner", false},
		{domain.NewError(domain.KindValidation, "cancel_reason_required"), http.StatusBadRequest, "cancel_reason_required", false},
		{fmt.Errorf("wrapped: %w", domain.NewError(domain.KindNoAvailability, "no_availability")), http.StatusConflict, "no_availability", false},
		{errors.New("pq: connection refused"), http.StatusInternalServerError, "internal_error", true},
	}

	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			FromError(c, tc.err)

			if w.Code != tc.status {
				t.Fatalf("status = %d, want %d", w.Code, tc.status)
			}
			var body HTTPError
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("body: %v", err)
			}
			if body.Code != tc.code || body.Message == "" {
				t.Fatalf("body = %+v", body)
			}
			if tc.hideText && body.Message == tc.err.Error() {
				t.Fatalf("internal error text leaked")
			}
			if StatusFor(tc.err) != tc.status {
				t.Fatalf("StatusFor = %d, want %d", StatusFor(tc.err), tc.status)
			}
		})
	}
}
