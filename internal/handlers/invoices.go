package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"unicode"

	"invoice_idor/internal/models"
	"invoice_idor/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	statusOK = "ok"

	errInvoiceNotFound = "Invoice not found"
	errLoadInvoices    = "failed to load invoices"
	errMaxInvoice      = "failed to load max invoice id"
)

// Centralized error logging and JSON response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	h.logError(logKey, err, kv...)
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// Same as logAndJSONError for the HTML pages.
func (h *Handler) logAndTextError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	h.logError(logKey, err, kv...)
	c.String(httpCode, userMsg)
}

func (h *Handler) logError(logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
}

// recordEvent appends to the access log. Failures are logged and never
// change the response.
func (h *Handler) recordEvent(c *gin.Context, e models.AccessEvent) {
	if h.services.EventLog == nil {
		return
	}
	if err := h.services.EventLog.Record(c.Request.Context(), e); err != nil && h.log != nil {
		h.log.Warnw("access_event_record_failed", "type", e.Type, "err", err)
	}
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

func (h *Handler) myInvoices(c *gin.Context) {
	sess := currentSession(c)
	invoices, err := h.services.Invoices.ListOwned(c.Request.Context(), sess)
	if err != nil {
		h.logAndTextError(c, http.StatusInternalServerError, errLoadInvoices, "invoices_list_failed", err, "userId", sess.UserID)
		return
	}
	c.HTML(http.StatusOK, "my-invoices.tmpl", gin.H{"title": "My invoices", "invoices": invoices})
}

// invoiceDetail shows any invoice to any logged-in user. The ownership
// check is intentionally absent.
func (h *Handler) invoiceDetail(c *gin.Context) {
	sess := currentSession(c)
	raw := c.Param("id")

	id, ok := parseInvoiceID(raw)
	if !ok {
		h.invoiceNotFound(c, sess, raw)
		return
	}

	inv, owner, err := h.services.Invoices.Lookup(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrInvoiceNotFound) {
			h.invoiceNotFound(c, sess, raw)
			return
		}
		h.logAndTextError(c, http.StatusInternalServerError, "failed to load invoice", "invoice_lookup_failed", err, "invoiceId", id)
		return
	}

	h.recordEvent(c, models.AccessEvent{
		Type:        models.EventInvoiceView,
		UserID:      sess.UserID,
		Description: fmt.Sprintf("viewed invoice %d", inv.ID),
		Metadata: gin.H{
			"invoiceId":   inv.ID,
			"ownerUserId": inv.OwnerUserID,
			"crossOwner":  !service.CanView(sess, *inv),
		},
	})

	c.HTML(http.StatusOK, "invoice.tmpl", gin.H{
		"title":   inv.Title,
		"invoice": inv,
		"owner":   owner,
	})
}

func (h *Handler) invoiceNotFound(c *gin.Context, sess models.Session, raw string) {
	h.recordEvent(c, models.AccessEvent{
		Type:        models.EventInvoiceNotFound,
		UserID:      sess.UserID,
		Description: "no invoice for id " + strconv.Quote(raw),
	})
	c.String(http.StatusNotFound, errInvoiceNotFound)
}

// @Summary      Highest invoice id
// @Description  Maximum invoice id across all users, not only the caller's.
// @Tags         invoices
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "maxInvoiceId"
// @Failure      302  {string}  string  "redirect to /login when not logged in"
// @Failure      500  {object}  map[string]string
// @Router       /api/max-invoice [get]
// @Security     SessionCookie
func (h *Handler) maxInvoice(c *gin.Context) {
	sess := currentSession(c)
	maxID, ok, err := h.services.Invoices.MaxID(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errMaxInvoice, "max_invoice_failed", err)
		return
	}

	h.recordEvent(c, models.AccessEvent{
		Type:        models.EventMaxInvoice,
		UserID:      sess.UserID,
		Description: "requested max invoice id",
	})

	if !ok {
		c.JSON(http.StatusOK, gin.H{"maxInvoiceId": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"maxInvoiceId": maxID})
}

// parseInvoiceID reads a base-10 integer prefix: leading whitespace, an
// optional sign, then digits. Anything after the digits is ignored, so
// "5abc" is 5. No digits or an out-of-range value yields ok=false.
func parseInvoiceID(raw string) (int, bool) {
	s := strings.TrimLeftFunc(raw, unicode.IsSpace)

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0, false
	}

	id, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return id, true
}
