package visit

import (
	"context"
	"fmt"

	appErrors "playpark/internal/errors"
	"playpark/internal/models"
	"playpark/internal/repositories"
	"playpark/internal/services/access"
)

type service struct {
	visits repositories.VisitRepository
}

func NewService(visits repositories.VisitRepository) Service {
	return &service{visits: visits}
}

func (s *service) ListMine(ctx context.Context, actor *access.Actor, req ListRequest) ([]models.Visit, error) {
	client, err := actor.RequireClient(appErrors.ErrClientForCurrentUser)
	if err != nil {
		return nil, err
	}
	visits, err := s.visits.ListByClient(ctx, client.ID, req.ActiveOnly, req.Skip, req.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list visits: %w", err)
	}
	return visits, nil
}

func (s *service) ListOpen(ctx context.Context, actor *access.Actor, skip, limit int) ([]models.Visit, error) {
	if !actor.IsStaff() {
		return nil, appErrors.ErrStaffRequired
	}
	visits, err := s.visits.ListOpen(ctx, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list open visits: %w", err)
	}
	return visits, nil
}
