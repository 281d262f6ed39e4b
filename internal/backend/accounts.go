package backend

import (
	"context"
	"net/url"

	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/domain/models"
)

func (c *Client) TriggerNotification(ctx context.Context, n models.Notification) error {
	return c.do(ctx, "POST", "/notifications", n, nil)
}

func (c *Client) UpdateConcessionVerification(ctx context.Context, userID string, v models.ConcessionVerification) error {
	return c.do(ctx, "PUT", "/users/"+url.PathEscape(userID)+"/concession", v, nil)
}

func (c *Client) GetPass(ctx context.Context, passID string) (models.Pass, error) {
	var out models.Pass
	err := c.do(ctx, "GET", "/passes/"+url.PathEscape(passID), nil, &out)
	return out, err
}

func (c *Client) ListPasses(ctx context.Context, userID string) ([]models.Pass, error) {
	var out []models.Pass
	if err := c.do(ctx, "GET", "/passes/user/"+url.PathEscape(userID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetWallet(ctx context.Context, userID string) (models.Wallet, error) {
	var out models.Wallet
	err := c.do(ctx, "GET", "/wallet/"+url.PathEscape(userID), nil, &out)
	return out, err
}

func (c *Client) CreateTicket(ctx context.Context, t models.Ticket) (models.Ticket, error) {
	var out models.Ticket
	err := c.do(ctx, "POST", "/tickets", t, &out)
	return out, err
}

func (c *Client) GetConcession(ctx context.Context, userID string) (models.ConcessionVerification, error) {
	var out models.ConcessionVerification
	err := c.do(ctx, "GET", "/users/"+url.PathEscape(userID)+"/concession", nil, &out)
	return out, err
}
