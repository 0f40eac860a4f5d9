package repositories

import (
	"context"
	"time"

	"playpark/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PlanInstanceRepository interface {
	// CreateWithPayment stores the instance and its first payment atomically.
	CreateWithPayment(ctx context.Context, instance *models.PlanInstance, payment *models.Payment) error

	// ListForGroups lists instances owned by any of groupIDs.
	ListForGroups(ctx context.Context, groupIDs []uuid.UUID, activeOnly bool, offset, limit int) ([]models.PlanInstance, error)

	// GetForGroups returns the instance only when one of groupIDs owns it.
	GetForGroups(ctx context.Context, id uuid.UUID, groupIDs []uuid.UUID) (*models.PlanInstance, error)

	// CurrentForGroup returns the active instance covering at with entries
	// left, ending soonest.
	CurrentForGroup(ctx context.Context, groupID uuid.UUID, at time.Time) (*models.PlanInstance, error)

	// DeactivateExpired switches off active instances that ended before now.
	DeactivateExpired(ctx context.Context, now time.Time) (int64, error)
}

type planInstanceRepository struct {
	db *gorm.DB
}

func NewPlanInstanceRepository(db *gorm.DB) PlanInstanceRepository {
	return &planInstanceRepository{db: db}
}

func (r *planInstanceRepository) CreateWithPayment(ctx context.Context, instance *models.PlanInstance, payment *models.Payment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Plan").Create(instance).Error; err != nil {
			return err
		}
		payment.PlanInstanceID = &instance.ID
		return tx.Create(payment).Error
	})
}

func (r *planInstanceRepository) ListForGroups(ctx context.Context, groupIDs []uuid.UUID, activeOnly bool, offset, limit int) ([]models.PlanInstance, error) {
	if len(groupIDs) == 0 {
		return []models.PlanInstance{}, nil
	}
	q := r.db.WithContext(ctx).Where("client_group_id IN ?", groupIDs)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}

	var instances []models.PlanInstance
	if err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&instances).Error; err != nil {
		return nil, err
	}
	return instances, nil
}

func (r *planInstanceRepository) GetForGroups(ctx context.Context, id uuid.UUID, groupIDs []uuid.UUID) (*models.PlanInstance, error) {
	if len(groupIDs) == 0 {
		return nil, ErrNotFound
	}
	var instance models.PlanInstance
	err := r.db.WithContext(ctx).
		Where("id = ? AND client_group_id IN ?", id, groupIDs).
		First(&instance).Error
	if err != nil {
		return nil, translate(err)
	}
	return &instance, nil
}

func (r *planInstanceRepository) CurrentForGroup(ctx context.Context, groupID uuid.UUID, at time.Time) (*models.PlanInstance, error) {
	var instance models.PlanInstance
	err := r.db.WithContext(ctx).
		Where("client_group_id = ? AND is_active = ? AND remaining_entries > 0", groupID, true).
		Where("start_date <= ? AND end_date >= ?", at, at).
		Order("end_date").
		First(&instance).Error
	if err != nil {
		return nil, translate(err)
	}
	return &instance, nil
}

func (r *planInstanceRepository) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.PlanInstance{}).
		Where("is_active = ? AND end_date < ?", true, now).
		Update("is_active", false)
	return res.RowsAffected, res.Error
}
