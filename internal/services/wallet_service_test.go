package services

import (
	"context"
	"testing"

	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/domain"
	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckFunds(t *testing.T) {
	assert.NoError(t, CheckFunds(0, 0))
	assert.NoError(t, CheckFunds(-10, -5), "non-positive price is never insufficient")
	assert.NoError(t, CheckFunds(50, 50))
	assert.True(t, domain.IsValidation(CheckFunds(49.99, 50)))
}

func TestWalletService_MissingSelectionFailsBeforeNetwork(t *testing.T) {
	fb := &fakeBackend{}
	svc := WalletService{Backend: fb}

	_, err := svc.PurchaseTicket(context.Background(), "u1", TicketRequest{BusID: "b1", Price: 10})
	assert.True(t, domain.IsValidation(err))
	_, err = svc.PurchaseTicket(context.Background(), "u1", TicketRequest{RouteID: "r1", Price: 10})
	assert.True(t, domain.IsValidation(err))
	assert.Empty(t, fb.Calls())
}

func TestWalletService_InsufficientFunds(t *testing.T) {
	fb := &fakeBackend{wallet: models.Wallet{Balance: 5}}
	svc := WalletService{Backend: fb}

	_, err := svc.PurchaseTicket(context.Background(), "u1", TicketRequest{RouteID: "r1", BusID: "b1", Price: 30})
	require.True(t, domain.IsValidation(err))
	assert.Contains(t, err.Error(), "insufficient funds")
	assert.Equal(t, []string{"GetWallet"}, fb.Calls())
}

func TestWalletService_FreeTicketSkipsWallet(t *testing.T) {
	fb := &fakeBackend{}
	svc := WalletService{Backend: fb}

	tk, err := svc.PurchaseTicket(context.Background(), "u1", TicketRequest{RouteID: "r1", BusID: "b1"})
	require.NoError(t, err)
	assert.Equal(t, "ticket-1", tk.ID)
	assert.Equal(t, []string{"CreateTicket"}, fb.Calls())
}

func TestWalletService_Purchase(t *testing.T) {
	fb := &fakeBackend{wallet: models.Wallet{Balance: 100}}
	svc := WalletService{Backend: fb}

	_, err := svc.PurchaseTicket(context.Background(), "u1", TicketRequest{RouteID: "r1", BusID: "b1", StartStation: "s1", EndStation: "s2", Price: 30})
	require.NoError(t, err)
	assert.Equal(t, "u1", fb.ticketReq.UserID)
	assert.Equal(t, 30.0, fb.ticketReq.Price)
}
