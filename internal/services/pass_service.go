package services

import (
	"context"
	"time"

	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/domain"
	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/domain/models"
)

type PassBackend interface {
	GetPass(ctx context.Context, passID string) (models.Pass, error)
	ListPasses(ctx context.Context, userID string) ([]models.Pass, error)
}

// PassService decorates backend passes with the expired flag, derived at
// read time from the expiry date alone.
type PassService struct {
	Backend PassBackend
	Now     func() time.Time
}

func (s PassService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s PassService) Get(ctx context.Context, passID string) (models.PassView, error) {
	if passID == "" {
		return models.PassView{}, domain.ValidationError{Field: "id", Msg: "pass id is required"}
	}
	p, err := s.Backend.GetPass(ctx, passID)
	if err != nil {
		return models.PassView{}, upstream("get_pass", "pass", err)
	}
	return p.View(s.now()), nil
}

// GetOwned is Get restricted to passes owned by userID; admins skip the check.
func (s PassService) GetOwned(ctx context.Context, passID string, rc domain.RequestContext) (models.PassView, error) {
	v, err := s.Get(ctx, passID)
	if err != nil {
		return v, err
	}
	if rc.Role != "admin" && v.UserID != rc.UserID {
		return models.PassView{}, domain.NotFoundError{Resource: "pass"}
	}
	return v, nil
}

func (s PassService) ListForUser(ctx context.Context, userID string) ([]models.PassView, error) {
	passes, err := s.Backend.ListPasses(ctx, userID)
	if err != nil {
		return nil, upstream("list_passes", "passes", err)
	}
	now := s.now()
	out := make([]models.PassView, 0, len(passes))
	for _, p := range passes {
		out = append(out, p.View(now))
	}
	return out, nil
}
