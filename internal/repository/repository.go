package repository

import (
	"context"
	"database/sql"
	"time"

	"invoice_idor/internal/models"
)

// UserRepo looks up seeded accounts. Lookups return (nil, nil) when nothing matches.
type UserRepo interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
}

// InvoiceRepo reads the invoice seed. It performs no access control.
type InvoiceRepo interface {
	ListByOwner(ctx context.Context, ownerUserID int) ([]models.Invoice, error)
	GetByID(ctx context.Context, id int) (*models.Invoice, error)
	// MaxID returns false when the store is empty.
	MaxID(ctx context.Context) (int, bool, error)
}

// EventRepo is the append-only access log.
type EventRepo interface {
	Append(ctx context.Context, e models.AccessEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.AccessEvent, error)
	DeleteBefore(ctx context.Context, before time.Time) (int64, error)
}

type Repository struct {
	Users    UserRepo
	Invoices InvoiceRepo
	Events   EventRepo
}

// NewRepository builds SQLite-backed repositories. The database must be
// initialized with db.InitDB and seeded with Seed first.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Users:    NewUserSQLite(db),
		Invoices: NewInvoiceSQLite(db),
		Events:   NewEventSQLite(db),
	}
}

// NewMemoryRepository builds process-local repositories over the seed data.
func NewMemoryRepository() *Repository {
	return &Repository{
		Users:    NewUserMemory(SeedUsers()),
		Invoices: NewInvoiceMemory(SeedInvoices()),
		Events:   NewEventMemory(),
	}
}
