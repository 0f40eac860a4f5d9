package planinstance

import (
	"context"

	"playpark/internal/models"
	"playpark/internal/services/access"
	"playpark/internal/services/payment/gateway"

	"github.com/google/uuid"
)

// Service sells plans to client groups. All reads are scoped to the groups
// the caller administers.
type Service interface {
	Create(ctx context.Context, actor *access.Actor, req CreateRequest) (*CreateResult, error)
	List(ctx context.Context, actor *access.Actor, req ListRequest) ([]models.PlanInstance, error)
	Get(ctx context.Context, actor *access.Actor, id uuid.UUID) (*models.PlanInstance, error)
	Visits(ctx context.Context, actor *access.Actor, id uuid.UUID, skip, limit int) ([]models.Visit, error)
	Payments(ctx context.Context, actor *access.Actor, id uuid.UUID, skip, limit int) ([]models.Payment, error)
}

// Checkout is the gateway dependency.
type Checkout interface {
	PaymentURL(ctx context.Context, req gateway.CheckoutRequest) (string, error)
}
