package service

import (
	"context"
	"errors"
	"fmt"

	"invoice_idor/internal/models"
	"invoice_idor/internal/repository"
)

var (
	ErrNotAuthenticated = errors.New("session is not authenticated")
	ErrInvoiceNotFound  = errors.New("invoice not found")
)

type InvoiceService struct {
	invoices repository.InvoiceRepo
	users    repository.UserRepo
}

func NewInvoiceService(invoices repository.InvoiceRepo, users repository.UserRepo) *InvoiceService {
	return &InvoiceService{invoices: invoices, users: users}
}

// ListOwned returns exactly the invoices the session's user owns.
func (s *InvoiceService) ListOwned(ctx context.Context, sess models.Session) ([]models.Invoice, error) {
	if !sess.IsAuthenticated() {
		return nil, ErrNotAuthenticated
	}
	candidates, err := s.invoices.ListByOwner(ctx, sess.UserID)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	out := make([]models.Invoice, 0, len(candidates))
	for _, inv := range candidates {
		if CanView(sess, inv) {
			out = append(out, inv)
		}
	}
	return out, nil
}

// Lookup returns any invoice by id together with its owner, who may be nil.
// There is no ownership check here.
func (s *InvoiceService) Lookup(ctx context.Context, id int) (*models.Invoice, *models.User, error) {
	inv, err := s.invoices.GetByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("lookup invoice %d: %w", id, err)
	}
	if inv == nil {
		return nil, nil, ErrInvoiceNotFound
	}
	owner, err := s.users.GetByID(ctx, inv.OwnerUserID)
	if err != nil {
		return nil, nil, fmt.Errorf("lookup owner of invoice %d: %w", id, err)
	}
	return inv, owner, nil
}

// MaxID returns the highest invoice id across every owner.
func (s *InvoiceService) MaxID(ctx context.Context) (int, bool, error) {
	maxID, ok, err := s.invoices.MaxID(ctx)
	if err != nil {
		return 0, false, fmt.Errorf("max invoice id: %w", err)
	}
	return maxID, ok, nil
}
