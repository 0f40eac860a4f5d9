package client

import (
	"context"

	"playpark/internal/models"
	"playpark/internal/services/access"

	"github.com/google/uuid"
)

// Service defines client registration and management.
type Service interface {
	// Registration. Every path issues the client's first QR code.
	Register(ctx context.Context, actor *access.Actor, req RegisterRequest) (*models.Client, error)
	RegisterChild(ctx context.Context, actor *access.Actor, req ChildRequest) (*models.Client, error)
	RegisterChildOfParent(ctx context.Context, actor *access.Actor, parentID uuid.UUID, req ChildRequest) (*models.Client, error)
	RegisterInGroup(ctx context.Context, actor *access.Actor, groupID uuid.UUID, req RegisterRequest) (*models.Client, error)

	List(ctx context.Context, actor *access.Actor, req ListRequest) ([]models.Client, error)
	Get(ctx context.Context, actor *access.Actor, id uuid.UUID) (*models.Client, error)
	Update(ctx context.Context, actor *access.Actor, id uuid.UUID, req UpdateRequest) (*models.Client, error)
	Delete(ctx context.Context, actor *access.Actor, id uuid.UUID) error
}
