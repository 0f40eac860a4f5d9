package repositories

import (
	"context"

	"playpark/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// QRCodeRepository defines the interface for QR code persistence
type QRCodeRepository interface {
	Create(ctx context.Context, qr *models.QRCode) error

	// GetByID returns the code with its client loaded.
	GetByID(ctx context.Context, id uuid.UUID) (*models.QRCode, error)

	// LatestActiveForClient returns the newest pending or in-use code.
	LatestActiveForClient(ctx context.Context, clientID uuid.UUID) (*models.QRCode, error)

	// CheckIn records visit, consumes an entry of instanceID when given and
	// marks the code in use.
	CheckIn(ctx context.Context, qr *models.QRCode, visit *models.Visit, instanceID *uuid.UUID) error

	// CheckOut closes the visit and marks the code used.
	CheckOut(ctx context.Context, qr *models.QRCode, visit *models.Visit) error
}

type qrCodeRepository struct {
	db *gorm.DB
}

func NewQRCodeRepository(db *gorm.DB) QRCodeRepository {
	return &qrCodeRepository{db: db}
}

func (r *qrCodeRepository) Create(ctx context.Context, qr *models.QRCode) error {
	return r.db.WithContext(ctx).Omit("Client").Create(qr).Error
}

func (r *qrCodeRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.QRCode, error) {
	var qr models.QRCode
	if err := r.db.WithContext(ctx).Preload("Client").Where("id = ?", id).First(&qr).Error; err != nil {
		return nil, translate(err)
	}
	return &qr, nil
}

func (r *qrCodeRepository) LatestActiveForClient(ctx context.Context, clientID uuid.UUID) (*models.QRCode, error) {
	var qr models.QRCode
	err := r.db.WithContext(ctx).
		Where("client_id = ? AND state IN ?", clientID, []string{models.QRStatePending, models.QRStateInUse}).
		Order("created_at DESC").
		First(&qr).Error
	if err != nil {
		return nil, translate(err)
	}
	return &qr, nil
}

func (r *qrCodeRepository) CheckIn(ctx context.Context, qr *models.QRCode, visit *models.Visit, instanceID *uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if instanceID != nil {
			res := tx.Model(&models.PlanInstance{}).
				Where("id = ? AND remaining_entries > 0", *instanceID).
				Update("remaining_entries", gorm.Expr("remaining_entries - 1"))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				visit.PlanInstanceID = nil
			} else {
				visit.PlanInstanceID = instanceID
			}
		}

		if err := tx.Omit("Client", "Payment").Create(visit).Error; err != nil {
			return err
		}

		res := tx.Model(&models.QRCode{}).
			Where("id = ? AND state = ?", qr.ID, models.QRStatePending).
			Updates(map[string]interface{}{"state": models.QRStateInUse, "visit_id": visit.ID})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}

		qr.State = models.QRStateInUse
		qr.VisitID = &visit.ID
		return nil
	})
}

func (r *qrCodeRepository) CheckOut(ctx context.Context, qr *models.QRCode, visit *models.Visit) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Visit{}).
			Where("id = ?", visit.ID).
			Updates(map[string]interface{}{
				"check_out":        visit.CheckOut,
				"duration_minutes": visit.DurationMinutes,
			}).Error; err != nil {
			return err
		}

		res := tx.Model(&models.QRCode{}).
			Where("id = ? AND state = ?", qr.ID, models.QRStateInUse).
			Update("state", models.QRStateUsed)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}

		qr.State = models.QRStateUsed
		return nil
	})
}
