package repositories

import (
	"context"

	"playpark/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VisitRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Visit, error)

	// LatestForClient returns the client's most recent visit by check-in.
	LatestForClient(ctx context.Context, clientID uuid.UUID) (*models.Visit, error)

	ListByClient(ctx context.Context, clientID uuid.UUID, activeOnly bool, offset, limit int) ([]models.Visit, error)
	ListByPlanInstance(ctx context.Context, instanceID uuid.UUID, offset, limit int) ([]models.Visit, error)

	// ListOpen returns visits still checked in, with their clients.
	ListOpen(ctx context.Context, offset, limit int) ([]models.Visit, error)

	// AttachPayment stores payment and links it to the visit.
	AttachPayment(ctx context.Context, visit *models.Visit, payment *models.Payment) error
}

type visitRepository struct {
	db *gorm.DB
}

func NewVisitRepository(db *gorm.DB) VisitRepository {
	return &visitRepository{db: db}
}

func (r *visitRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Visit, error) {
	var visit models.Visit
	if err := r.db.WithContext(ctx).Preload("Payment").Where("id = ?", id).First(&visit).Error; err != nil {
		return nil, translate(err)
	}
	return &visit, nil
}

func (r *visitRepository) LatestForClient(ctx context.Context, clientID uuid.UUID) (*models.Visit, error) {
	var visit models.Visit
	err := r.db.WithContext(ctx).
		Preload("Payment").
		Where("client_id = ?", clientID).
		Order("check_in DESC").
		First(&visit).Error
	if err != nil {
		return nil, translate(err)
	}
	return &visit, nil
}

func (r *visitRepository) ListByClient(ctx context.Context, clientID uuid.UUID, activeOnly bool, offset, limit int) ([]models.Visit, error) {
	q := r.db.WithContext(ctx).Where("client_id = ?", clientID)
	if activeOnly {
		q = q.Where("check_out IS NULL")
	}
	var visits []models.Visit
	if err := q.Order("check_in DESC").Offset(offset).Limit(limit).Find(&visits).Error; err != nil {
		return nil, err
	}
	return visits, nil
}

func (r *visitRepository) ListByPlanInstance(ctx context.Context, instanceID uuid.UUID, offset, limit int) ([]models.Visit, error) {
	var visits []models.Visit
	err := r.db.WithContext(ctx).
		Where("plan_instance_id = ?", instanceID).
		Order("check_in DESC").
		Offset(offset).Limit(limit).
		Find(&visits).Error
	if err != nil {
		return nil, err
	}
	return visits, nil
}

func (r *visitRepository) ListOpen(ctx context.Context, offset, limit int) ([]models.Visit, error) {
	var visits []models.Visit
	err := r.db.WithContext(ctx).
		Preload("Client").
		Where("check_out IS NULL").
		Order("check_in").
		Offset(offset).Limit(limit).
		Find(&visits).Error
	if err != nil {
		return nil, err
	}
	return visits, nil
}

func (r *visitRepository) AttachPayment(ctx context.Context, visit *models.Visit, payment *models.Payment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(payment).Error; err != nil {
			return err
		}
		res := tx.Model(&models.Visit{}).
			Where("id = ? AND payment_id IS NULL", visit.ID).
			Update("payment_id", payment.ID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		visit.PaymentID = &payment.ID
		visit.Payment = payment
		return nil
	})
}
