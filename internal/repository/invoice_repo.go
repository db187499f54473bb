package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"invoice_idor/internal/models"
)

type InvoiceSQLite struct {
	db *sql.DB
}

func NewInvoiceSQLite(db *sql.DB) *InvoiceSQLite { return &InvoiceSQLite{db: db} }

var _ InvoiceRepo = (*InvoiceSQLite)(nil)

const (
	selectInvoicesByOwnerSQL = `SELECT id, owner_user_id, title, notes FROM invoices WHERE owner_user_id = ? ORDER BY id ASC`
	selectInvoiceByIDSQL     = `SELECT id, owner_user_id, title, notes FROM invoices WHERE id = ?`
	selectMaxInvoiceIDSQL    = `SELECT MAX(id) FROM invoices`
)

// ListByOwner returns the invoices owned by ownerUserID ordered by id.
func (r *InvoiceSQLite) ListByOwner(ctx context.Context, ownerUserID int) ([]models.Invoice, error) {
	rows, err := r.db.QueryContext(ctx, selectInvoicesByOwnerSQL, ownerUserID)
	if err != nil {
		return nil, fmt.Errorf("select invoices of user %d: %w", ownerUserID, err)
	}
	defer rows.Close()

	out := make([]models.Invoice, 0, 8)
	for rows.Next() {
		var inv models.Invoice
		if err := rows.Scan(&inv.ID, &inv.OwnerUserID, &inv.Title, &inv.Notes); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		out = append(out, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate invoices: %w", err)
	}
	return out, nil
}

// GetByID returns any invoice by id regardless of owner. Returns (nil, nil) if not found.
func (r *InvoiceSQLite) GetByID(ctx context.Context, id int) (*models.Invoice, error) {
	var inv models.Invoice
	err := r.db.QueryRowContext(ctx, selectInvoiceByIDSQL, id).
		Scan(&inv.ID, &inv.OwnerUserID, &inv.Title, &inv.Notes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select invoice %d: %w", id, err)
	}
	return &inv, nil
}

// MaxID returns the largest invoice id across all owners.
func (r *InvoiceSQLite) MaxID(ctx context.Context) (int, bool, error) {
	var maxID sql.NullInt64
	if err := r.db.QueryRowContext(ctx, selectMaxInvoiceIDSQL).Scan(&maxID); err != nil {
		return 0, false, fmt.Errorf("select max invoice id: %w", err)
	}
	if !maxID.Valid {
		return 0, false, nil
	}
	return int(maxID.Int64), true, nil
}
