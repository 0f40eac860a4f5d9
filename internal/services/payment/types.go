package payment

import (
	"time"

	"playpark/internal/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MakePaymentRequest struct {
	PlanInstanceID uuid.UUID `json:"plan_instance_id"`
	Amount         float64   `json:"amount"`
	PaymentMethod  string    `json:"payment_method"`
}

type MakePaymentResult struct {
	ID         uuid.UUID `json:"id"`
	PaymentURL string    `json:"payment_url,omitempty"`
}

type VisitPaymentRequest struct {
	Amount float64 `json:"amount" validate:"gt=0"`
	Notes  string  `json:"notes" validate:"max=500"`
}

type ExpireResult struct {
	ExpiredPayments      int64 `json:"expired_payments"`
	DeactivatedInstances int64 `json:"deactivated_instances"`
}

type Dependencies struct {
	Payments          repositories.PaymentRepository
	Instances         repositories.PlanInstanceRepository
	Visits            repositories.VisitRepository
	Gateway           Gateway
	RedirectURL       string
	PendingPaymentTTL time.Duration
	Logger            *zap.Logger
}
