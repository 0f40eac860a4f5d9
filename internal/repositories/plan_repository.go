package repositories

import (
	"context"
	"fmt"

	"playpark/internal/logger"
	"playpark/internal/metrics"
	"playpark/internal/models"
	"playpark/internal/repositories/cache"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PlanFilter narrows the plan catalog. Tag must match exactly.
type PlanFilter struct {
	ActiveOnly bool
	Tag        string
}

type PlanRepository interface {
	List(ctx context.Context, filter PlanFilter, offset, limit int) ([]models.Plan, error)
	GetByID(ctx context.Context, id uuid.UUID, activeOnly bool) (*models.Plan, error)
	GetBySlug(ctx context.Context, slug string, activeOnly bool) (*models.Plan, error)
	SlugExists(ctx context.Context, slug string, exclude uuid.UUID) (bool, error)
	Create(ctx context.Context, plan *models.Plan) error
	Update(ctx context.Context, plan *models.Plan) error
}

type planRepository struct {
	db    *gorm.DB
	cache *cache.CacheService
	log   *zap.Logger
}

// NewPlanRepository creates a plan repository. cache and log may be nil.
func NewPlanRepository(db *gorm.DB, cache *cache.CacheService, log *zap.Logger) PlanRepository {
	return &planRepository{
		db:    db,
		cache: cache,
		log:   logger.OrNop(log),
	}
}

func (r *planRepository) List(ctx context.Context, filter PlanFilter, offset, limit int) ([]models.Plan, error) {
	key := fmt.Sprintf("plan:list:%t:%s:%d:%d", filter.ActiveOnly, filter.Tag, offset, limit)
	if r.cache != nil {
		if plans, found, err := r.cache.GetPlanList(ctx, key); err == nil && found {
			metrics.CacheLookups.WithLabelValues("hit").Inc()
			return plans, nil
		}
		metrics.CacheLookups.WithLabelValues("miss").Inc()
	}

	q := r.db.WithContext(ctx).Model(&models.Plan{})
	if filter.ActiveOnly {
		q = q.Where("is_active = ?", true)
	}
	if filter.Tag != "" {
		q = q.Where("? = ANY(tags)", filter.Tag)
	}

	var plans []models.Plan
	if err := q.Order("price").Offset(offset).Limit(limit).Find(&plans).Error; err != nil {
		return nil, err
	}

	if r.cache != nil {
		if err := r.cache.CachePlanList(ctx, key, plans); err != nil {
			r.log.Warn("failed to cache plan list", zap.String("key", key), zap.Error(err))
		}
	}
	return plans, nil
}

func (r *planRepository) GetByID(ctx context.Context, id uuid.UUID, activeOnly bool) (*models.Plan, error) {
	return r.get(ctx, "id", id, activeOnly)
}

func (r *planRepository) GetBySlug(ctx context.Context, slug string, activeOnly bool) (*models.Plan, error) {
	return r.get(ctx, "slug", slug, activeOnly)
}

func (r *planRepository) get(ctx context.Context, column string, value interface{}, activeOnly bool) (*models.Plan, error) {
	if r.cache != nil {
		plan, found, err := r.cache.GetPlan(ctx, r.cache.GenerateKey("plan", column, value))
		if err == nil && found {
			metrics.CacheLookups.WithLabelValues("hit").Inc()
			if activeOnly && !plan.IsActive {
				return nil, ErrNotFound
			}
			return plan, nil
		}
		metrics.CacheLookups.WithLabelValues("miss").Inc()
	}

	var plan models.Plan
	if err := r.db.WithContext(ctx).Where(column+" = ?", value).First(&plan).Error; err != nil {
		return nil, translate(err)
	}

	if r.cache != nil {
		if err := r.cache.CachePlan(ctx, &plan); err != nil {
			r.log.Warn("failed to cache plan", zap.String("plan_id", plan.ID.String()), zap.Error(err))
		}
	}

	if activeOnly && !plan.IsActive {
		return nil, ErrNotFound
	}
	return &plan, nil
}

func (r *planRepository) SlugExists(ctx context.Context, slug string, exclude uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Plan{}).
		Where("slug = ? AND id <> ?", slug, exclude).
		Count(&count).Error
	return count > 0, err
}

func (r *planRepository) Create(ctx context.Context, plan *models.Plan) error {
	if err := r.db.WithContext(ctx).Create(plan).Error; err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *planRepository) Update(ctx context.Context, plan *models.Plan) error {
	if err := r.db.WithContext(ctx).Save(plan).Error; err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *planRepository) invalidate(ctx context.Context) {
	if r.cache == nil {
		return
	}
	if err := r.cache.InvalidatePlans(ctx); err != nil {
		r.log.Warn("failed to invalidate plan cache", zap.Error(err))
	}
}
