package planinstance

import (
	"context"
	"errors"
	"fmt"

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

type service struct {
	plans       repositories.PlanRepository
	instances   repositories.PlanInstanceRepository
	visits      repositories.VisitRepository
	payments    repositories.PaymentRepository
	checkout    Checkout
	redirectURL string
	log         *zap.Logger
}

func NewService(deps Dependencies) Service {
	return &service{
		plans:       deps.Plans,
		instances:   deps.Instances,
		visits:      deps.Visits,
		payments:    deps.Payments,
		checkout:    deps.Checkout,
		redirectURL: deps.RedirectURL,
		log:         logger.OrNop(deps.Logger),
	}
}

func (s *service) Create(ctx context.Context, actor *access.Actor, req CreateRequest) (*CreateResult, error) {
	client, err := actor.RequireClient(appErrors.ErrClientForCurrentUser)
	if err != nil {
		return nil, err
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if !req.EndDate.After(req.StartDate) {
		return nil, appErrors.ErrInvalidPlanDates
	}
	if !actor.AdminOf(req.ClientGroupID) {
		return nil, appErrors.ErrPlanInstanceForbidden
	}

	plan, err := s.plans.GetByID(ctx, req.PlanID, false)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, appErrors.ErrPlanNotFound
		}
		return nil, fmt.Errorf("failed to load plan: %w", err)
	}

	method := req.PaymentMethod
	if method == "" {
		method = models.PaymentMethodCreditCard
	}
	paymentType := req.PaymentType
	if paymentType == "" {
		paymentType = models.PaymentTypeFull
	}

	total := TotalCost(plan, req.PurchasedAddons)
	entries := req.RemainingEntries
	if entries == 0 {
		entries = plan.Entries
	}

	instance := &models.PlanInstance{
		ID:               uuid.New(),
		ClientGroupID:    req.ClientGroupID,
		PlanID:           plan.ID,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		TotalCost:        total,
		RemainingEntries: entries,
		RemainingLimits:  models.NewLimits(copyLimits(plan.Limits.Data())),
		PurchasedAddons:  models.NewPurchasedAddons(req.PurchasedAddons),
		IsActive:         InitiallyActive(method, paymentType),
	}

	groupID := req.ClientGroupID
	payment := &models.Payment{
		ID:              uuid.New(),
		ClientGroupID:   &groupID,
		ClientID:        &client.ID,
		Amount:          ResolvePaymentAmount(paymentType, req.PaymentAmount, total),
		Status:          models.PaymentStatusPending,
		PaymentMethod:   method,
		TransactionID:   uuid.NewString(),
		PlanID:          &plan.ID,
		PurchasedAddons: models.NewPurchasedAddons(req.PurchasedAddons),
	}
	if req.PaymentNotes != "" {
		payment.Details = models.JSON{"notes": req.PaymentNotes}
	}

	if err := s.instances.CreateWithPayment(ctx, instance, payment); err != nil {
		return nil, fmt.Errorf("failed to create plan instance: %w", err)
	}
	instance.Plan = plan
	metrics.PlanInstancesCreated.WithLabelValues(method, paymentType).Inc()
	metrics.PaymentsCreated.WithLabelValues(method, payment.Status).Inc()

	result := &CreateResult{PlanInstance: instance}
	if method == models.PaymentMethodCreditCard {
		description := "Payment for " + plan.Name
		if paymentType == models.PaymentTypePartial {
			description += " (Down Payment)"
		}
		result.PaymentURL, err = s.paymentURL(ctx, payment, client, description, s.redirectFor(instance.ID))
		if err != nil {
			return nil, err
		}
	}

	s.log.Info("plan instance created",
		zap.String("plan_instance_id", instance.ID.String()),
		zap.String("client_group_id", groupID.String()),
		zap.String("payment_method", method),
		zap.String("payment_type", paymentType),
		zap.Float64("total_cost", total),
		zap.Float64("payment_amount", payment.Amount),
	)
	return result, nil
}

func (s *service) redirectFor(instanceID uuid.UUID) string {
	if s.redirectURL != "" {
		return s.redirectURL
	}
	return "/client/plan-instances/" + instanceID.String()
}

func (s *service) paymentURL(ctx context.Context, payment *models.Payment, client *models.Client, description, redirect string) (string, error) {
	if s.checkout == nil {
		return "", nil
	}
	link, err := s.checkout.PaymentURL(ctx, gateway.CheckoutRequest{
		PaymentID:   payment.ID,
		Amount:      payment.Amount,
		Description: description,
		ClientName:  client.FullName,
		ClientEmail: client.Email,
		RedirectURL: redirect,
	})
	if err != nil {
		return "", fmt.Errorf("failed to build payment url: %w", err)
	}
	return link, nil
}

func (s *service) List(ctx context.Context, actor *access.Actor, req ListRequest) ([]models.PlanInstance, error) {
	if _, err := actor.RequireClient(appErrors.ErrClientForCurrentUser); err != nil {
		return nil, err
	}
	instances, err := s.instances.ListForGroups(ctx, actor.AdminGroups, req.ActiveOnly, req.Skip, req.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list plan instances: %w", err)
	}
	return instances, nil
}

func (s *service) Get(ctx context.Context, actor *access.Actor, id uuid.UUID) (*models.PlanInstance, error) {
	if _, err := actor.RequireClient(appErrors.ErrClientForCurrentUser); err != nil {
		return nil, err
	}
	instance, err := s.instances.GetForGroups(ctx, id, actor.AdminGroups)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, appErrors.ErrPlanInstanceNotFound
		}
		return nil, fmt.Errorf("failed to load plan instance: %w", err)
	}
	return instance, nil
}

func (s *service) Visits(ctx context.Context, actor *access.Actor, id uuid.UUID, skip, limit int) ([]models.Visit, error) {
	if _, err := s.Get(ctx, actor, id); err != nil {
		return nil, err
	}
	visits, err := s.visits.ListByPlanInstance(ctx, id, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list visits: %w", err)
	}
	return visits, nil
}

func (s *service) Payments(ctx context.Context, actor *access.Actor, id uuid.UUID, skip, limit int) ([]models.Payment, error) {
	if _, err := s.Get(ctx, actor, id); err != nil {
		return nil, err
	}
	payments, err := s.payments.ListByPlanInstance(ctx, id, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}

func copyLimits(src map[string]int) map[string]int {
	dst := make(map[string]int, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
