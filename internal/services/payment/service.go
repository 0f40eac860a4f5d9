package payment

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	appErrors "playpark/internal/errors"
	"playpark/internal/logger"
	"playpark/internal/metrics"
	"playpark/internal/models"
	"playpark/internal/repositories"
	"playpark/internal/services/access"
	"playpark/internal/services/payment/gateway"
	"playpark/internal/validation"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	amountTolerance   = 0.01
	defaultPendingTTL = 24 * time.Hour
)

type service struct {
	payments    repositories.PaymentRepository
	instances   repositories.PlanInstanceRepository
	visits      repositories.VisitRepository
	gateway     Gateway
	redirectURL string
	pendingTTL  time.Duration
	log         *zap.Logger
}

// NewService creates a new payment service
func NewService(deps Dependencies) Service {
	s := &service{
		payments:    deps.Payments,
		instances:   deps.Instances,
		visits:      deps.Visits,
		gateway:     deps.Gateway,
		redirectURL: deps.RedirectURL,
		pendingTTL:  deps.PendingPaymentTTL,
		log:         logger.OrNop(deps.Logger),
	}
	if s.pendingTTL <= 0 {
		s.pendingTTL = defaultPendingTTL
	}
	return s
}

// MakePayment records a pending installment against a plan instance the
// caller administers.
func (s *service) MakePayment(ctx context.Context, actor *access.Actor, req MakePaymentRequest) (*MakePaymentResult, error) {
	if req.PlanInstanceID == uuid.Nil || req.Amount == 0 {
		return nil, appErrors.ErrMissingPaymentFields
	}
	if req.Amount < 0 {
		return nil, appErrors.Unprocessable("amount must be greater than zero")
	}
	method := req.PaymentMethod
	if method == "" {
		method = models.PaymentMethodCreditCard
	}
	if !models.ValidPaymentMethod(method) {
		return nil, appErrors.ErrInvalidPaymentMethod
	}

	client, err := actor.RequireClient(appErrors.ErrClientForCurrentUser)
	if err != nil {
		return nil, err
	}
	instance, err := s.instances.GetForGroups(ctx, req.PlanInstanceID, actor.AdminGroups)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, appErrors.ErrPlanInstanceNotFound
		}
		return nil, fmt.Errorf("failed to load plan instance: %w", err)
	}
	if req.Amount > instance.Outstanding()+amountTolerance {
		return nil, appErrors.ErrAmountExceedsBalance
	}

	groupID := instance.ClientGroupID
	planID := instance.PlanID
	payment := &models.Payment{
		ID:             uuid.New(),
		ClientGroupID:  &groupID,
		ClientID:       &client.ID,
		Amount:         req.Amount,
		Status:         models.PaymentStatusPending,
		PaymentMethod:  method,
		TransactionID:  uuid.NewString(),
		PlanID:         &planID,
		PlanInstanceID: &instance.ID,
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}
	metrics.PaymentsCreated.WithLabelValues(method, payment.Status).Inc()

	result := &MakePaymentResult{ID: payment.ID}
	if method == models.PaymentMethodCreditCard && s.gateway != nil {
		redirect := s.redirectURL
		if redirect == "" {
			redirect = "/client/plan-instances/" + instance.ID.String()
		}
		result.PaymentURL, err = s.gateway.PaymentURL(ctx, gateway.CheckoutRequest{
			PaymentID:   payment.ID,
			Amount:      payment.Amount,
			Description: "Payment for plan instance",
			ClientName:  client.FullName,
			ClientEmail: client.Email,
			RedirectURL: redirect,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to build payment url: %w", err)
		}
	}

	s.log.Info("payment created",
		zap.String("payment_id", payment.ID.String()),
		zap.String("plan_instance_id", instance.ID.String()),
		zap.String("method", method),
		zap.Float64("amount", payment.Amount),
	)
	return result, nil
}

func (s *service) VisitPayment(ctx context.Context, actor *access.Actor, visitID uuid.UUID, req VisitPaymentRequest) (*models.Payment, error) {
	if !actor.IsStaff() {
		return nil, appErrors.ErrStaffRequired
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	visit, err := s.visits.GetByID(ctx, visitID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, appErrors.ErrVisitNotFound
		}
		return nil, fmt.Errorf("failed to load visit: %w", err)
	}
	if visit.PaymentID != nil {
		return nil, appErrors.ErrVisitAlreadyPaid
	}
	if visit.CheckOut == nil {
		return nil, appErrors.BadRequest("Visit is still in progress")
	}

	clientID := visit.ClientID
	payment := &models.Payment{
		ID:            uuid.New(),
		ClientID:      &clientID,
		Amount:        req.Amount,
		Status:        models.PaymentStatusCompleted,
		PaymentMethod: models.PaymentMethodCash,
		TransactionID: uuid.NewString(),
		VisitID:       &visit.ID,
		Details:       models.JSON{"duration_minutes": visit.DurationMinutes},
	}
	if req.Notes != "" {
		payment.Details["notes"] = req.Notes
	}

	if err := s.visits.AttachPayment(ctx, visit, payment); err != nil {
		return nil, fmt.Errorf("failed to record visit payment: %w", err)
	}
	metrics.PaymentsCreated.WithLabelValues(payment.PaymentMethod, payment.Status).Inc()

	s.log.Info("visit paid",
		zap.String("visit_id", visit.ID.String()),
		zap.String("payment_id", payment.ID.String()),
		zap.Float64("amount", payment.Amount),
	)
	return payment, nil
}

// Confirm applies a gateway confirmation. Repeated confirmations for a
// settled payment are acknowledged without changes.
func (s *service) Confirm(ctx context.Context, n gateway.Notification) error {
	if s.gateway == nil {
		return appErrors.New(503, "SERVICE_UNAVAILABLE", "Payment gateway not configured")
	}

	conf, err := s.gateway.ParseConfirmation(ctx, n)
	switch {
	case err == nil:
	case errors.Is(err, gateway.ErrIgnored):
		s.log.Debug("gateway event ignored", zap.Error(err))
		return nil
	case errors.Is(err, gateway.ErrInvalidSignature):
		s.log.Warn("rejected gateway confirmation", zap.String("provider", s.gateway.Name()), zap.Error(err))
		return appErrors.ErrInvalidSignature
	case errors.Is(err, gateway.ErrMalformed):
		return appErrors.BadRequest(err.Error())
	default:
		return fmt.Errorf("failed to parse confirmation: %w", err)
	}

	payment, err := s.payments.GetByID(ctx, conf.PaymentID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return appErrors.ErrPaymentNotFound
		}
		return fmt.Errorf("failed to load payment: %w", err)
	}

	details := models.NewJSON(conf.Details)
	details["reference"] = conf.Reference

	outcome := conf.Outcome
	if outcome == gateway.OutcomeApproved && conf.Amount > 0 && math.Abs(conf.Amount-payment.Amount) > amountTolerance {
		details["reason"] = fmt.Sprintf("amount mismatch: expected %.2f, got %.2f", payment.Amount, conf.Amount)
		outcome = gateway.OutcomeRejected
	}

	var changed bool
	switch outcome {
	case gateway.OutcomeApproved:
		changed, err = s.payments.Complete(ctx, payment, details)
	case gateway.OutcomeRejected:
		changed, err = s.payments.Fail(ctx, payment, details)
	default:
		s.log.Info("payment still pending at gateway", zap.String("payment_id", payment.ID.String()))
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to update payment: %w", err)
	}
	if !changed && outcome == gateway.OutcomeApproved {
		s.log.Warn("gateway approval did not change payment",
			zap.String("payment_id", payment.ID.String()),
			zap.String("status", payment.Status),
			zap.String("reference", conf.Reference),
		)
	}

	s.log.Info("payment confirmation processed",
		zap.String("payment_id", payment.ID.String()),
		zap.String("provider", s.gateway.Name()),
		zap.String("outcome", outcome),
		zap.Bool("changed", changed),
	)
	return nil
}

func (s *service) ExpireStale(ctx context.Context, now time.Time) (*ExpireResult, error) {
	expired, err := s.payments.ExpirePending(ctx, now.Add(-s.pendingTTL))
	if err != nil {
		return nil, fmt.Errorf("failed to expire payments: %w", err)
	}
	deactivated, err := s.instances.DeactivateExpired(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("failed to deactivate plan instances: %w", err)
	}
	return &ExpireResult{ExpiredPayments: expired, DeactivatedInstances: deactivated}, nil
}
