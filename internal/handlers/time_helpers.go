package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
)

// Datas são ingênuas (sem fuso): YYYY-MM-DD à meia-noite UTC.
const dateLayout = "2006-01-02"

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// parseDateParam writes a 400 invalid_date and returns false when s is not a
// calendar date.
func parseDateParam(c *gin.Context, s string) (time.Time, bool) {
	d, err := parseDate(s)
	if err != nil {
		httperr.FromError(c, domain.NewError(domain.KindValidation, "invalid_date"))
		return time.Time{}, false
	}
	return d, true
}

// parseDayRange turns optional from/to dates into [from, to+1d).
func parseDayRange(fromStr, toStr string) (from, to *time.Time) {
	if fromStr != "" {
		if d, err := parseDate(fromStr); err == nil {
			from = &d
		}
	}
	if toStr != "" {
		if d, err := parseDate(toStr); err == nil {
			end := d.AddDate(0, 0, 1)
			to = &end
		}
	}
	return from, to
}
