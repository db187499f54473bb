package models

import "time"

// Access event types.
const (
	EventLoginSuccess    = "LOGIN_SUCCESS"
	EventLoginFailure    = "LOGIN_FAILURE"
	EventLogout          = "LOGOUT"
	EventInvoiceView     = "INVOICE_VIEW"
	EventInvoiceNotFound = "INVOICE_NOT_FOUND"
	EventMaxInvoice      = "MAX_INVOICE"
)

// AccessEvent is a single access log entry.
type AccessEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`
	UserID      int       `json:"user_id,omitempty"` // 0 for anonymous callers
	Description string    `json:"description"`
	Metadata    any       `json:"metadata,omitempty"`
}
