package plan

import (
	"context"
	"errors"
	"fmt"
	"strings"

	appErrors "playpark/internal/errors"
	"playpark/internal/logger"
	"playpark/internal/models"
	"playpark/internal/repositories"
	"playpark/internal/services/access"
	"playpark/internal/validation"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/jinzhu/copier"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

const maxSlugAttempts = 50

type service struct {
	plans repositories.PlanRepository
	log   *zap.Logger
}

func NewService(plans repositories.PlanRepository, log *zap.Logger) Service {
	return &service{
		plans: plans,
		log:   logger.OrNop(log),
	}
}

func (s *service) List(ctx context.Context, req ListRequest) ([]models.Plan, error) {
	tag := strings.TrimSpace(req.Tag)
	if strings.EqualFold(tag, AllTags) {
		tag = ""
	}
	filter := repositories.PlanFilter{ActiveOnly: req.ActiveOnly, Tag: tag}

	plans, err := s.plans.List(ctx, filter, req.Skip, req.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	return plans, nil
}

func (s *service) Get(ctx context.Context, ref string, activeOnly bool) (*models.Plan, error) {
	var (
		plan *models.Plan
		err  error
	)
	if id, parseErr := uuid.Parse(ref); parseErr == nil {
		plan, err = s.plans.GetByID(ctx, id, activeOnly)
	} else {
		plan, err = s.plans.GetBySlug(ctx, strings.ToLower(ref), activeOnly)
	}
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, appErrors.ErrPlanNotFound
		}
		return nil, fmt.Errorf("failed to load plan: %w", err)
	}
	return plan, nil
}

func (s *service) Create(ctx context.Context, actor *access.Actor, req CreateRequest) (*models.Plan, error) {
	if !actor.IsStaff() {
		return nil, appErrors.ErrStaffRequired
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	var plan models.Plan
	if err := copier.Copy(&plan, &req); err != nil {
		return nil, fmt.Errorf("failed to map plan: %w", err)
	}
	plan.Addons = models.NewAddons(req.Addons)
	plan.Limits = models.NewLimits(req.Limits)
	plan.Tags = pq.StringArray(req.Tags)
	plan.IsActive = req.IsActive == nil || *req.IsActive

	var err error
	if req.Slug != "" {
		plan.Slug, err = s.claimSlug(ctx, slug.Make(req.Slug))
	} else {
		plan.Slug, err = s.uniqueSlug(ctx, req.Name)
	}
	if err != nil {
		return nil, err
	}

	if err := s.plans.Create(ctx, &plan); err != nil {
		return nil, fmt.Errorf("failed to create plan: %w", err)
	}
	s.log.Info("plan created", zap.String("plan_id", plan.ID.String()), zap.String("slug", plan.Slug))
	return &plan, nil
}

func (s *service) Update(ctx context.Context, actor *access.Actor, id uuid.UUID, req UpdateRequest) (*models.Plan, error) {
	if !actor.IsStaff() {
		return nil, appErrors.ErrStaffRequired
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	plan, err := s.plans.GetByID(ctx, id, false)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, appErrors.ErrPlanNotFound
		}
		return nil, fmt.Errorf("failed to load plan: %w", err)
	}

	if err := copier.CopyWithOption(plan, &req, copier.Option{IgnoreEmpty: true}); err != nil {
		return nil, fmt.Errorf("failed to apply plan update: %w", err)
	}
	if req.IsActive != nil {
		plan.IsActive = *req.IsActive
	}
	if req.Addons != nil {
		plan.Addons = models.NewAddons(req.Addons)
	}
	if req.Limits != nil {
		plan.Limits = models.NewLimits(req.Limits)
	}
	if req.Tags != nil {
		plan.Tags = pq.StringArray(req.Tags)
	}

	if err := s.plans.Update(ctx, plan); err != nil {
		return nil, fmt.Errorf("failed to update plan: %w", err)
	}
	return plan, nil
}

func (s *service) Deactivate(ctx context.Context, actor *access.Actor, id uuid.UUID) error {
	inactive := false
	_, err := s.Update(ctx, actor, id, UpdateRequest{IsActive: &inactive})
	if err == nil {
		s.log.Info("plan deactivated", zap.String("plan_id", id.String()))
	}
	return err
}

// claimSlug fails when an explicitly requested slug is already in use.
func (s *service) claimSlug(ctx context.Context, candidate string) (string, error) {
	if candidate == "" {
		return "", appErrors.Unprocessable("slug must contain letters or digits")
	}
	taken, err := s.plans.SlugExists(ctx, candidate, uuid.Nil)
	if err != nil {
		return "", fmt.Errorf("failed to check slug: %w", err)
	}
	if taken {
		return "", appErrors.ErrPlanSlugTaken
	}
	return candidate, nil
}

// uniqueSlug derives a slug from name, suffixing -1, -2, ... on collision.
func (s *service) uniqueSlug(ctx context.Context, name string) (string, error) {
	base := slug.Make(name)
	if base == "" {
		base = "plan"
	}
	result := base
	for i := 1; i <= maxSlugAttempts; i++ {
		taken, err := s.plans.SlugExists(ctx, result, uuid.Nil)
		if err != nil {
			return "", fmt.Errorf("failed to check slug: %w", err)
		}
		if !taken {
			return result, nil
		}
		result = fmt.Sprintf("%s-%d", base, i)
	}
	return "", appErrors.ErrPlanSlugTaken
}
