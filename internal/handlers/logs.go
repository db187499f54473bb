package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"invoice_idor/internal/models"
	"invoice_idor/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errFromInvalid  = "invalid 'from' time; use RFC3339, 'YYYY-MM-DD HH:MM:SS' or YYYY-MM-DD"
	errToInvalid    = "invalid 'to' time; use RFC3339, 'YYYY-MM-DD HH:MM:SS' or YYYY-MM-DD"
	errRangeInvalid = "'from' must be <= 'to'"
	errTypeInvalid  = "unknown event type"
	errLoadLog      = "failed to load access log"

	layoutDateTime = "2006-01-02 15:04:05"
	layoutDate     = "2006-01-02"
)

var knownEventTypes = map[string]struct{}{
	models.EventLoginSuccess:    {},
	models.EventLoginFailure:    {},
	models.EventLogout:          {},
	models.EventInvoiceView:     {},
	models.EventInvoiceNotFound: {},
	models.EventMaxInvoice:      {},
}

// @Summary      Access log
// @Description  Logins, logouts and invoice reads, oldest first. A date-only 'to' covers the whole day.
// @Tags         access-log
// @Produce      json
// @Param        from  query   string  false  "Start of range (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD')"  example(2025-08-01)
// @Param        to    query   string  false  "End of range, inclusive"  example(2025-08-31)
// @Param        type  query   string  false  "Event type"  Enums(LOGIN_SUCCESS,LOGIN_FAILURE,LOGOUT,INVOICE_VIEW,INVOICE_NOT_FOUND,MAX_INVOICE)
// @Success      200   {object}  map[string]interface{}  "count, events"
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/access-log [get]
// @Security     SessionCookie
func (h *Handler) getAccessLog(c *gin.Context) {
	filter, msg := parseLogFilter(c)
	if msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	events, err := h.services.EventLog.List(c.Request.Context(), filter)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errLoadLog, "access_log_list_failed", err,
			"from", filter.From, "to", filter.To, "type", filter.Type)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":  len(events),
		"events": events,
	})
}

// parseLogFilter reads from/to/type query parameters. A non-empty message
// means the request is malformed.
func parseLogFilter(c *gin.Context) (service.LogFilter, string) {
	var (
		f   service.LogFilter
		err error
	)

	if qs := c.Query("from"); qs != "" {
		if f.From, err = parseQueryTime(qs); err != nil {
			return service.LogFilter{}, errFromInvalid
		}
	}
	if qs := c.Query("to"); qs != "" {
		if f.To, err = parseQueryTime(qs); err != nil {
			return service.LogFilter{}, errToInvalid
		}
		if !strings.ContainsAny(qs, "T ") {
			f.To = f.To.Add(24*time.Hour - time.Nanosecond)
		}
	}
	if !f.From.IsZero() && !f.To.IsZero() && f.From.After(f.To) {
		return service.LogFilter{}, errRangeInvalid
	}

	if typ := strings.ToUpper(strings.TrimSpace(c.Query("type"))); typ != "" {
		if _, ok := knownEventTypes[typ]; !ok {
			return service.LogFilter{}, errTypeInvalid
		}
		f.Type = typ
	}
	return f, ""
}

// parseQueryTime accepts RFC3339, "YYYY-MM-DD HH:MM:SS" and "YYYY-MM-DD", normalized to UTC.
func parseQueryTime(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, layoutDateTime, layoutDate} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time format %q", s)
}
