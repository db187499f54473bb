package repository

import (
	"context"
	"database/sql"
	"fmt"

	"invoice_idor/internal/models"
)

// SeedUsers returns the fixed account set.
func SeedUsers() []models.User {
	return []models.User{
		{ID: 1, Username: "alice", Password: "alicepass"},
		{ID: 2, Username: "bob", Password: "bobpass"},
		{ID: 3, Username: "carol", Password: "carolpass"},
	}
}

// SeedInvoices returns the fixed invoice set. Ids are sequential and
// predictable; owners 4 and 5 have no account.
func SeedInvoices() []models.Invoice {
	return []models.Invoice{
		{ID: -1, OwnerUserID: 2, Title: "Bob - Invoice #3", Notes: "flag{xakack12}"},
		{ID: 1, OwnerUserID: 1, Title: "Alice - Invoice #1", Notes: "Consulting services - paid."},
		{ID: 2, OwnerUserID: 1, Title: "Alice - Invoice #2", Notes: "Travel reimbursement."},
		{ID: 3, OwnerUserID: 2, Title: "Bob - Invoice #1", Notes: "Monthly subscription."},
		{ID: 4, OwnerUserID: 3, Title: "Carol - Invoice #1", Notes: "One-time setup fee."},
		{ID: 5, OwnerUserID: 2, Title: "Bob - Invoice #2", Notes: "License renewal."},
		{ID: 6, OwnerUserID: 4, Title: "Dave - Invoice #1", Notes: "Hardware purchase."},
		{ID: 7, OwnerUserID: 5, Title: "Eve - Invoice #1", Notes: "Consultation follow-up."},
		{ID: 8, OwnerUserID: 1, Title: "Alice - Invoice #3", Notes: "Additional hours."},
		{ID: 9, OwnerUserID: 2, Title: "Bob - Invoice #3", Notes: "Maintenance contract."},
		{ID: 10, OwnerUserID: 3, Title: "Carol - Invoice #2", Notes: "Refund processed."},
		{ID: 11, OwnerUserID: 4, Title: "Dave - Invoice #2", Notes: "Maintenance contract."},
		{ID: 12, OwnerUserID: 5, Title: "Eve - Invoice #2", Notes: "Quarterly review."},
		{ID: 13, OwnerUserID: 1, Title: "Alice - Invoice #4", Notes: "Project milestone 1."},
		{ID: 14, OwnerUserID: 2, Title: "Bob - Invoice #4", Notes: "Project milestone 2."},
		{ID: 15, OwnerUserID: 3, Title: "Carol - Invoice #3", Notes: "Audit fee."},
		{ID: 16, OwnerUserID: 4, Title: "Dave - Invoice #3", Notes: "Custom development."},
		{ID: 17, OwnerUserID: 5, Title: "Eve - Invoice #3", Notes: "Service charge."},
		{ID: 18, OwnerUserID: 2, Title: "Bob - Invoice #5", Notes: "Final payment."},
		{ID: 19, OwnerUserID: 1, Title: "Alice - Invoice #5", Notes: "Bonus hours."},
		{ID: 20, OwnerUserID: 3, Title: "Carol - Invoice #4", Notes: "Year-end adjustment."},
	}
}

const (
	seedUserSQL    = `INSERT OR IGNORE INTO users (id, username, password) VALUES (?, ?, ?)`
	seedInvoiceSQL = `INSERT OR IGNORE INTO invoices (id, owner_user_id, title, notes) VALUES (?, ?, ?, ?)`
)

// Seed loads users and invoices into a SQLite database in one transaction.
// Rows that already exist are left alone, so seeding a file database twice is safe.
func Seed(ctx context.Context, db *sql.DB, users []models.User, invoices []models.Invoice) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, u := range users {
		if _, err := tx.ExecContext(ctx, seedUserSQL, u.ID, u.Username, u.Password); err != nil {
			return fmt.Errorf("seed user %q: %w", u.Username, err)
		}
	}
	for _, inv := range invoices {
		if _, err := tx.ExecContext(ctx, seedInvoiceSQL, inv.ID, inv.OwnerUserID, inv.Title, inv.Notes); err != nil {
			return fmt.Errorf("seed invoice %d: %w", inv.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed transaction: %w", err)
	}
	return nil
}
