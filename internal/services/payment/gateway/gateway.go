// Package gateway builds hosted checkout links and reads provider
// confirmations for card payments.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"playpark/internal/config"

	"github.com/google/uuid"
)

const (
	ProviderEpayco = "epayco"
	ProviderStripe = "stripe"
)

// Outcome of a confirmed transaction.
const (
	OutcomeApproved = "approved"
	OutcomeRejected = "rejected"
	OutcomePending  = "pending"
)

var (
	ErrInvalidSignature = errors.New("invalid signature")
	ErrMalformed        = errors.New("malformed confirmation")
	ErrIgnored          = errors.New("event ignored")
)

type CheckoutRequest struct {
	PaymentID   uuid.UUID
	Amount      float64
	Description string
	ClientName  string
	ClientEmail string
	RedirectURL string
}

// Notification is what a provider posted to the confirmation endpoint.
type Notification struct {
	Body      []byte
	Params    url.Values
	Signature string
}

type Confirmation struct {
	PaymentID uuid.UUID
	Outcome   string
	Reference string
	Amount    float64
	Details   map[string]interface{}
}

type Gateway interface {
	Name() string
	PaymentURL(ctx context.Context, req CheckoutRequest) (string, error)
	ParseConfirmation(ctx context.Context, n Notification) (*Confirmation, error)
}

// New returns the gateway selected by cfg.Provider.
func New(cfg config.PaymentsConfig) (Gateway, error) {
	switch cfg.Provider {
	case "", ProviderEpayco:
		return NewEpayco(cfg), nil
	case ProviderStripe:
		return NewStripe(cfg), nil
	default:
		return nil, fmt.Errorf("unknown payment provider %q", cfg.Provider)
	}
}
