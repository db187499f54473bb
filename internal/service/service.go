package service

import (
	"context"
	"time"

	"invoice_idor/internal/logger"
	"invoice_idor/internal/models"
	"invoice_idor/internal/repository"
)

// Authentication checks credentials against the user store.
type Authentication interface {
	Login(ctx context.Context, username, password string) (*models.User, error)
	UserByID(ctx context.Context, id int) (*models.User, error)
}

// Sessions maps cookie tokens to server-side session records.
type Sessions interface {
	CreateOrReuse(cookie string) (models.Session, string, error)
	Authenticate(sessionID string, userID int) (models.Session, error)
	IsAuthenticated(sessionID string) bool
	Session(sessionID string) (models.Session, bool)
	Destroy(sessionID string) error
}

// Invoices exposes the owned listing, the unchecked lookup and the global max id.
type Invoices interface {
	ListOwned(ctx context.Context, s models.Session) ([]models.Invoice, error)
	Lookup(ctx context.Context, id int) (*models.Invoice, *models.User, error)
	MaxID(ctx context.Context) (int, bool, error)
}

// EventLog exposes the append-only access log with filtering access.
type EventLog interface {
	Record(ctx context.Context, e models.AccessEvent) error
	List(ctx context.Context, f LogFilter) ([]models.AccessEvent, error)
	Prune(ctx context.Context, before time.Time) (int64, error)
}

// Retention prunes old access events on a cron schedule.
// Stop via context cancellation in main() for graceful shutdown.
type Retention interface {
	PruneOnce(ctx context.Context) (int64, error)
	Run(ctx context.Context, schedule string, log *logger.Logger) error
}

// Service aggregates all sub-services.
type Service struct {
	Authentication
	Sessions
	Invoices
	EventLog
	Retention
}

// Options carries the settings services need from configuration.
type Options struct {
	SessionSecret   string
	RetentionPeriod time.Duration
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, opts Options) *Service {
	eventLog := NewEventLogService(repos.Events)
	return &Service{
		Authentication: NewAuthService(repos.Users),
		Sessions:       NewSessionManager(opts.SessionSecret),
		Invoices:       NewInvoiceService(repos.Invoices, repos.Users),
		EventLog:       eventLog,
		Retention:      NewRetentionService(eventLog, opts.RetentionPeriod),
	}
}
