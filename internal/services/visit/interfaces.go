package visit

import (
	"context"

	"playpark/internal/models"
	"playpark/internal/services/access"
)

type Service interface {
	// ListMine lists the caller's own visits.
	ListMine(ctx context.Context, actor *access.Actor, req ListRequest) ([]models.Visit, error)

	// ListOpen lists everyone currently checked in. Staff only.
	ListOpen(ctx context.Context, actor *access.Actor, skip, limit int) ([]models.Visit, error)
}

type ListRequest struct {
	ActiveOnly bool
	Skip       int
	Limit      int
}
