package payment

import (
	"context"
	"time"

	"playpark/internal/models"
	"playpark/internal/services/access"
	"playpark/internal/services/payment/gateway"

	"github.com/google/uuid"
)

// Service defines the payment service interface
type Service interface {
	// Plan instance installments
	MakePayment(ctx context.Context, actor *access.Actor, req MakePaymentRequest) (*MakePaymentResult, error)

	// Cash payment for a finished visit. Staff only.
	VisitPayment(ctx context.Context, actor *access.Actor, visitID uuid.UUID, req VisitPaymentRequest) (*models.Payment, error)

	// Gateway confirmations
	Confirm(ctx context.Context, n gateway.Notification) error

	// Housekeeping
	ExpireStale(ctx context.Context, now time.Time) (*ExpireResult, error)
}

// Dependencies required by the payment service
type Gateway interface {
	Name() string
	PaymentURL(ctx context.Context, req gateway.CheckoutRequest) (string, error)
	ParseConfirmation(ctx context.Context, n gateway.Notification) (*gateway.Confirmation, error)
}
