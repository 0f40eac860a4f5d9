package repositories

import (
	"context"

	"playpark/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClientFilter narrows client listings.
type ClientFilter struct {
	GroupID uuid.UUID
	IsChild *bool
}

// ClientRepository defines the interface for client-related database operations
type ClientRepository interface {
	// CreateWithQRCode stores the client together with its first QR code
	// and records the code on the client.
	CreateWithQRCode(ctx context.Context, client *models.Client) (*models.QRCode, error)

	GetByID(ctx context.Context, id uuid.UUID) (*models.Client, error)

	// GetByUserID returns the client profile linked to an auth user.
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Client, error)

	List(ctx context.Context, filter ClientFilter, offset, limit int) ([]models.Client, error)

	Update(ctx context.Context, client *models.Client) error

	// HasChildren reports whether any client names id as its guardian.
	HasChildren(ctx context.Context, id uuid.UUID) (bool, error)

	// Delete removes the client with its QR codes, visits and admin links.
	Delete(ctx context.Context, id uuid.UUID) error
}

type clientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates a new instance of ClientRepository
func NewClientRepository(db *gorm.DB) ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) CreateWithQRCode(ctx context.Context, client *models.Client) (*models.QRCode, error) {
	var qr *models.QRCode
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("GroupAdmin").Create(client).Error; err != nil {
			return err
		}

		qr = &models.QRCode{
			ClientID:      client.ID,
			ClientGroupID: client.GroupID,
			State:         models.QRStatePending,
		}
		if err := tx.Omit("Client").Create(qr).Error; err != nil {
			return err
		}

		client.QRCode = qr.ID.String()
		return tx.Model(&models.Client{}).
			Where("id = ?", client.ID).
			Update("qr_code", client.QRCode).Error
	})
	if err != nil {
		return nil, err
	}
	return qr, nil
}

func (r *clientRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	var client models.Client
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&client).Error; err != nil {
		return nil, translate(err)
	}
	return &client, nil
}

func (r *clientRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Client, error) {
	var client models.Client
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&client).Error; err != nil {
		return nil, translate(err)
	}
	return &client, nil
}

func (r *clientRepository) List(ctx context.Context, filter ClientFilter, offset, limit int) ([]models.Client, error) {
	q := r.db.WithContext(ctx).Where("group_id = ?", filter.GroupID)
	if filter.IsChild != nil {
		q = q.Where("is_child = ?", *filter.IsChild)
	}

	var clients []models.Client
	if err := q.Order("created_at").Offset(offset).Limit(limit).Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *clientRepository) Update(ctx context.Context, client *models.Client) error {
	return r.db.WithContext(ctx).Omit("GroupAdmin").Save(client).Error
}

func (r *clientRepository) HasChildren(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Client{}).Where("guardian_id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *clientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("client_id = ?", id).Delete(&models.Visit{}).Error; err != nil {
			return err
		}
		if err := tx.Where("client_id = ?", id).Delete(&models.QRCode{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM client_group_admins WHERE client_id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.Client{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
