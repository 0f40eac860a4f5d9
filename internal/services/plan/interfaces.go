package plan

import (
	"context"

	"playpark/internal/models"
	"playpark/internal/services/access"

	"github.com/google/uuid"
)

// Service exposes the plan catalog and its administration.
type Service interface {
	List(ctx context.Context, req ListRequest) ([]models.Plan, error)

	// Get resolves ref as a plan id first and as a slug otherwise.
	Get(ctx context.Context, ref string, activeOnly bool) (*models.Plan, error)

	// Staff only.
	Create(ctx context.Context, actor *access.Actor, req CreateRequest) (*models.Plan, error)
	Update(ctx context.Context, actor *access.Actor, id uuid.UUID, req UpdateRequest) (*models.Plan, error)
	Deactivate(ctx context.Context, actor *access.Actor, id uuid.UUID) error
}
