package group

import (
	"context"

	"playpark/internal/models"
	"playpark/internal/services/access"

	"github.com/google/uuid"
)

// Service manages client groups and their admins.
type Service interface {
	Create(ctx context.Context, actor *access.Actor, req CreateRequest) (*models.ClientGroup, error)
	ListMine(ctx context.Context, actor *access.Actor) ([]models.ClientGroup, error)
	AddAdmin(ctx context.Context, actor *access.Actor, groupID uuid.UUID, req AddAdminRequest) error
}
