package planinstance

import (
	"time"

	"playpark/internal/models"
	"playpark/internal/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CreateRequest struct {
	ClientGroupID    uuid.UUID      `json:"client_group_id" validate:"required"`
	PlanID           uuid.UUID      `json:"plan_id" validate:"required"`
	StartDate        time.Time      `json:"start_date" validate:"required"`
	EndDate          time.Time      `json:"end_date" validate:"required"`
	RemainingEntries int            `json:"remaining_entries" validate:"gte=0"`
	PurchasedAddons  map[string]int `json:"purchased_addons" validate:"omitempty,dive,gte=0"`
	PaymentMethod    string         `json:"payment_method" validate:"omitempty,oneof=credit_card cash invoice"`
	PaymentType      string         `json:"payment_type" validate:"omitempty,oneof=full partial"`
	PaymentAmount    float64        `json:"payment_amount" validate:"gte=0"`
	PaymentNotes     string         `json:"payment_notes"`
}

// CreateResult is the new instance, plus a checkout link for card payments.
type CreateResult struct {
	*models.PlanInstance
	PaymentURL string `json:"payment_url,omitempty"`
}

type ListRequest struct {
	ActiveOnly bool
	Skip       int
	Limit      int
}

type Dependencies struct {
	Plans       repositories.PlanRepository
	Instances   repositories.PlanInstanceRepository
	Visits      repositories.VisitRepository
	Payments    repositories.PaymentRepository
	Checkout    Checkout
	RedirectURL string
	Logger      *zap.Logger
}
