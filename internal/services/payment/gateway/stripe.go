package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"playpark/internal/config"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/client"
	"github.com/stripe/stripe-go/v72/webhook"
)

const metadataPaymentID = "payment_id"

type Stripe struct {
	cfg config.PaymentsConfig
	api *client.API
}

func NewStripe(cfg config.PaymentsConfig) *Stripe {
	api := &client.API{}
	api.Init(cfg.StripeSecretKey, nil)
	return &Stripe{cfg: cfg, api: api}
}

func (s *Stripe) Name() string {
	return ProviderStripe
}

// PaymentURL opens a Checkout session for a single line item.
func (s *Stripe) PaymentURL(ctx context.Context, req CheckoutRequest) (string, error) {
	if req.PaymentID == uuid.Nil {
		return "", fmt.Errorf("payment id is required")
	}
	if req.Amount <= 0 {
		return "", fmt.Errorf("amount must be greater than zero")
	}

	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		ClientReferenceID:  stripe.String(req.PaymentID.String()),
		SuccessURL:         stripe.String(req.RedirectURL),
		CancelURL:          stripe.String(req.RedirectURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(strings.ToLower(s.cfg.Currency)),
					UnitAmount: stripe.Int64(minorUnits(req.Amount)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.Description),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	if req.ClientEmail != "" {
		params.CustomerEmail = stripe.String(req.ClientEmail)
	}
	params.Context = ctx
	params.AddMetadata(metadataPaymentID, req.PaymentID.String())

	sess, err := s.api.CheckoutSessions.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create checkout session: %w", err)
	}
	return sess.URL, nil
}

// ParseConfirmation verifies the Stripe-Signature header and reads
// checkout session events.
func (s *Stripe) ParseConfirmation(_ context.Context, n Notification) (*Confirmation, error) {
	if s.cfg.StripeWebhookSecret == "" {
		return nil, fmt.Errorf("%w: webhook secret not configured", ErrInvalidSignature)
	}
	event, err := webhook.ConstructEvent(n.Body, n.Signature, s.cfg.StripeWebhookSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	var outcome string
	switch event.Type {
	case "checkout.session.completed", "checkout.session.async_payment_succeeded":
		outcome = OutcomeApproved
	case "checkout.session.expired", "checkout.session.async_payment_failed":
		outcome = OutcomeRejected
	default:
		return nil, fmt.Errorf("%w: %s", ErrIgnored, event.Type)
	}

	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if outcome == OutcomeApproved && sess.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid {
		outcome = OutcomePending
	}

	ref := sess.ClientReferenceID
	if ref == "" {
		ref = sess.Metadata[metadataPaymentID]
	}
	paymentID, err := uuid.Parse(ref)
	if err != nil {
		return nil, fmt.Errorf("%w: reference %q", ErrMalformed, ref)
	}

	return &Confirmation{
		PaymentID: paymentID,
		Outcome:   outcome,
		Reference: sess.ID,
		Amount:    float64(sess.AmountTotal) / 100,
		Details: map[string]interface{}{
			"provider":   ProviderStripe,
			"event_id":   event.ID,
			"event_type": event.Type,
			"session_id": sess.ID,
		},
	}, nil
}

func minorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
