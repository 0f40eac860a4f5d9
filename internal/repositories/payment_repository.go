package repositories

import (
	"context"
	"time"

	"playpark/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Payment, error)
	ListByPlanInstance(ctx context.Context, instanceID uuid.UUID, offset, limit int) ([]models.Payment, error)

	// Complete marks a pending or expired payment completed and credits its
	// plan instance, activating it. It returns false if the payment was
	// already settled.
	Complete(ctx context.Context, payment *models.Payment, details models.JSON) (bool, error)

	// Fail marks a pending or expired payment failed.
	Fail(ctx context.Context, payment *models.Payment, details models.JSON) (bool, error)

	// ExpirePending expires pending payments created before cutoff.
	ExpirePending(ctx context.Context, cutoff time.Time) (int64, error)
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *paymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&payment).Error; err != nil {
		return nil, translate(err)
	}
	return &payment, nil
}

func (r *paymentRepository) ListByPlanInstance(ctx context.Context, instanceID uuid.UUID, offset, limit int) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.WithContext(ctx).
		Where("plan_instance_id = ?", instanceID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *paymentRepository) Complete(ctx context.Context, payment *models.Payment, details models.JSON) (bool, error) {
	updated := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := transition(tx, payment, models.PaymentStatusCompleted, details)
		if err != nil || !ok {
			return err
		}
		updated = true

		if payment.PlanInstanceID == nil {
			return nil
		}
		return tx.Model(&models.PlanInstance{}).
			Where("id = ?", *payment.PlanInstanceID).
			Updates(map[string]interface{}{
				"paid_amount": gorm.Expr("paid_amount + ?", payment.Amount),
				"is_active":   true,
			}).Error
	})
	return updated, err
}

func (r *paymentRepository) Fail(ctx context.Context, payment *models.Payment, details models.JSON) (bool, error) {
	return transition(r.db.WithContext(ctx), payment, models.PaymentStatusFailed, details)
}

func (r *paymentRepository) ExpirePending(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Payment{}).
		Where("status = ? AND created_at < ?", models.PaymentStatusPending, cutoff).
		Update("status", models.PaymentStatusExpired)
	return res.RowsAffected, res.Error
}

// settleable lists the statuses a gateway outcome may still move a payment
// out of. Gateways can approve after the pending window has lapsed.
var settleable = []string{models.PaymentStatusPending, models.PaymentStatusExpired}

func transition(db *gorm.DB, payment *models.Payment, status string, details models.JSON) (bool, error) {
	merged := models.NewJSON(nil)
	for k, v := range payment.Details {
		merged[k] = v
	}
	for k, v := range details {
		merged[k] = v
	}

	res := db.Model(&models.Payment{}).
		Where("id = ? AND status IN ?", payment.ID, settleable).
		Updates(map[string]interface{}{"status": status, "details": merged})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	payment.Status = status
	payment.Details = merged
	return true, nil
}
