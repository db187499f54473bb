package service

import "invoice_idor/internal/models"

// CanView reports whether the session's user owns the invoice.
//
// The owned listing honours it. The invoice detail lookup deliberately does
// not; the access log uses it to mark cross-owner reads.
func CanView(s models.Session, inv models.Invoice) bool {
	return s.IsAuthenticated() && inv.OwnerUserID == s.UserID
}
