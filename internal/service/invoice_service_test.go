package service

import (
	"context"
	"testing"

	"invoice_idor/internal/models"
	"invoice_idor/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSeededInvoiceService() *InvoiceService {
	return NewInvoiceService(
		repository.NewInvoiceMemory(repository.SeedInvoices()),
		repository.NewUserMemory(repository.SeedUsers()),
	)
}

func authed(userID int) models.Session {
	return models.Session{ID: "s", State: models.StateAuthenticated, UserID: userID}
}

func TestInvoiceService_ListOwned_ExactlyOwned(t *testing.T) {
	svc := newSeededInvoiceService()

	for _, u := range repository.SeedUsers() {
		got, err := svc.ListOwned(context.Background(), authed(u.ID))
		require.NoError(t, err)

		want := map[int]bool{}
		for _, inv := range repository.SeedInvoices() {
			if inv.OwnerUserID == u.ID {
				want[inv.ID] = true
			}
		}
		require.Len(t, got, len(want), u.Username)
		for _, inv := range got {
			assert.True(t, want[inv.ID], "user %s got foreign invoice %d", u.Username, inv.ID)
		}
	}
}

func TestInvoiceService_ListOwned_Anonymous(t *testing.T) {
	svc := newSeededInvoiceService()
	_, err := svc.ListOwned(context.Background(), models.Session{ID: "anon"})
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestInvoiceService_Lookup_NoOwnershipCheck(t *testing.T) {
	svc := newSeededInvoiceService()

	inv, owner, err := svc.Lookup(context.Background(), -1)
	require.NoError(t, err)
	assert.Equal(t, "flag{xakack12}", inv.Notes)
	require.NotNil(t, owner)
	assert.Equal(t, "bob", owner.Username)

	// owner without an account
	inv, owner, err = svc.Lookup(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 5, inv.OwnerUserID)
	assert.Nil(t, owner)

	_, _, err = svc.Lookup(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvoiceNotFound)
}

func TestInvoiceService_MaxID(t *testing.T) {
	maxID, ok, err := newSeededInvoiceService().MaxID(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 20, maxID)
}

func TestCanView(t *testing.T) {
	inv := models.Invoice{ID: -1, OwnerUserID: 2}

	assert.True(t, CanView(authed(2), inv))
	assert.False(t, CanView(authed(1), inv))
	// anonymous session with a zero user id must not match an owner id of zero
	assert.False(t, CanView(models.Session{}, models.Invoice{OwnerUserID: 0}))
}
