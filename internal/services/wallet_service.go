package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/domain"
	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/domain/models"
	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/utils"
)

type WalletBackend interface {
	GetWallet(ctx context.Context, userID string) (models.Wallet, error)
	CreateTicket(ctx context.Context, t models.Ticket) (models.Ticket, error)
}

type TicketRequest struct {
	RouteID      string  `json:"routeId"`
	BusID        string  `json:"busId"`
	StartStation string  `json:"startStation"`
	EndStation   string  `json:"endStation"`
	Price        float64 `json:"price"`
}

type WalletService struct {
	Backend   WalletBackend
	RequestID string
	Now       func() time.Time
}

// CheckFunds reports insufficient funds only when there is something to pay.
func CheckFunds(balance, price float64) error {
	if price <= 0 {
		return nil
	}
	if balance < price {
		return domain.ValidationError{
			Field: "wallet",
			Msg:   fmt.Sprintf("insufficient funds: balance %s, price %s", utils.FormatRupees(balance), utils.FormatRupees(price)),
		}
	}
	return nil
}

// PurchaseTicket validates the selection locally, then checks the wallet
// balance before asking the backend to issue the ticket.
func (s WalletService) PurchaseTicket(ctx context.Context, userID string, req TicketRequest) (models.Ticket, error) {
	if err := validateTicketRequest(req); err != nil {
		return models.Ticket{}, err
	}

	if req.Price > 0 {
		w, err := s.Backend.GetWallet(ctx, userID)
		if err != nil {
			return models.Ticket{}, upstream("get_wallet", "wallet", err)
		}
		if err := CheckFunds(w.Balance, req.Price); err != nil {
			return models.Ticket{}, err
		}
	}

	t, err := s.Backend.CreateTicket(ctx, models.Ticket{
		UserID:       userID,
		RouteID:      req.RouteID,
		BusID:        req.BusID,
		StartStation: req.StartStation,
		EndStation:   req.EndStation,
		Price:        req.Price,
	})
	if err != nil {
		return models.Ticket{}, upstream("create_ticket", "ticket", err)
	}
	utils.LogEvent(s.RequestID, "wallet", "purchase_ticket", fmt.Sprintf("user_id=%s route_id=%s price=%s", userID, req.RouteID, utils.FormatMoney(req.Price)))
	return t, nil
}

func validateTicketRequest(req TicketRequest) error {
	if strings.TrimSpace(req.RouteID) == "" {
		return domain.ValidationError{Field: "routeId", Msg: "select a route"}
	}
	if strings.TrimSpace(req.BusID) == "" {
		return domain.ValidationError{Field: "busId", Msg: "select a bus"}
	}
	if req.Price < 0 {
		return domain.ValidationError{Field: "price", Msg: "must not be negative"}
	}
	if req.StartStation != "" && req.StartStation == req.EndStation {
		return domain.ValidationError{Field: "endStation", Msg: "must differ from start station"}
	}
	return nil
}
