package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"invoice_idor/internal/models"

	"github.com/google/uuid"
)

// UserMemory serves users from a fixed slice. It is never written after construction.
type UserMemory struct {
	users []models.User
}

func NewUserMemory(users []models.User) *UserMemory {
	return &UserMemory{users: append([]models.User(nil), users...)}
}

var _ UserRepo = (*UserMemory)(nil)

// GetByUsername matches the username exactly, case included.
func (r *UserMemory) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for i := range r.users {
		if r.users[i].Username == username {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserMemory) GetByID(_ context.Context, id int) (*models.User, error) {
	for i := range r.users {
		if r.users[i].ID == id {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

// InvoiceMemory serves invoices from a fixed slice, preserving seed order.
type InvoiceMemory struct {
	invoices []models.Invoice
}

func NewInvoiceMemory(invoices []models.Invoice) *InvoiceMemory {
	return &InvoiceMemory{invoices: append([]models.Invoice(nil), invoices...)}
}

var _ InvoiceRepo = (*InvoiceMemory)(nil)

func (r *InvoiceMemory) ListByOwner(_ context.Context, ownerUserID int) ([]models.Invoice, error) {
	out := make([]models.Invoice, 0)
	for _, inv := range r.invoices {
		if inv.OwnerUserID == ownerUserID {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (r *InvoiceMemory) GetByID(_ context.Context, id int) (*models.Invoice, error) {
	for i := range r.invoices {
		if r.invoices[i].ID == id {
			inv := r.invoices[i]
			return &inv, nil
		}
	}
	return nil, nil
}

func (r *InvoiceMemory) MaxID(_ context.Context) (int, bool, error) {
	if len(r.invoices) == 0 {
		return 0, false, nil
	}
	maxID := r.invoices[0].ID
	for _, inv := range r.invoices[1:] {
		if inv.ID > maxID {
			maxID = inv.ID
		}
	}
	return maxID, true, nil
}

// EventMemory keeps access events in process memory.
type EventMemory struct {
	mu     sync.RWMutex
	events []models.AccessEvent
}

func NewEventMemory() *EventMemory { return &EventMemory{} }

var _ EventRepo = (*EventMemory)(nil)

// Append stores e, filling EventID and OccurredAt when empty.
func (r *EventMemory) Append(_ context.Context, e models.AccessEvent) error {
	e = withEventDefaults(e)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

// List returns events within [from, to] (zero bounds are open) of type typ
// (empty means any), ordered by OccurredAt ascending.
func (r *EventMemory) List(_ context.Context, from, to time.Time, typ string) ([]models.AccessEvent, error) {
	typ = strings.ToUpper(strings.TrimSpace(typ))

	r.mu.RLock()
	out := make([]models.AccessEvent, 0, len(r.events))
	for _, e := range r.events {
		if !from.IsZero() && e.OccurredAt.Before(from) {
			continue
		}
		if !to.IsZero() && e.OccurredAt.After(to) {
			continue
		}
		if typ != "" && e.Type != typ {
			continue
		}
		out = append(out, e)
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OccurredAt.Before(out[j].OccurredAt)
	})
	return out, nil
}

// DeleteBefore drops events that occurred strictly before the cutoff.
func (r *EventMemory) DeleteBefore(_ context.Context, before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.events[:0]
	var removed int64
	for _, e := range r.events {
		if e.OccurredAt.Before(before) {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	r.events = kept
	return removed, nil
}

// withEventDefaults fills generated fields and normalizes type and time.
func withEventDefaults(e models.AccessEvent) models.AccessEvent {
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	} else {
		e.OccurredAt = e.OccurredAt.UTC()
	}
	e.Type = strings.ToUpper(strings.TrimSpace(e.Type))
	return e
}
