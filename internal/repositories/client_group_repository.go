package repositories

import (
	"context"

	"playpark/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClientGroupRepository defines the interface for client group operations
type ClientGroupRepository interface {
	// Create stores the group, moves founder into it and makes founder an admin.
	Create(ctx context.Context, group *models.ClientGroup, founder *models.Client) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.ClientGroup, error)

	// AdminGroupIDs lists the groups clientID administers.
	AdminGroupIDs(ctx context.Context, clientID uuid.UUID) ([]uuid.UUID, error)

	// ListForClient returns the groups the client belongs to or administers.
	ListForClient(ctx context.Context, client *models.Client) ([]models.ClientGroup, error)

	AddAdmin(ctx context.Context, groupID, clientID uuid.UUID) error
}

type clientGroupRepository struct {
	db *gorm.DB
}

func NewClientGroupRepository(db *gorm.DB) ClientGroupRepository {
	return &clientGroupRepository{db: db}
}

func (r *clientGroupRepository) Create(ctx context.Context, group *models.ClientGroup, founder *models.Client) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Clients", "Admins").Create(group).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Client{}).
			Where("id = ?", founder.ID).
			Update("group_id", group.ID).Error; err != nil {
			return err
		}
		founder.GroupID = &group.ID
		return addAdmin(tx, group.ID, founder.ID)
	})
}

func (r *clientGroupRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ClientGroup, error) {
	var group models.ClientGroup
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&group).Error; err != nil {
		return nil, translate(err)
	}
	return &group, nil
}

func (r *clientGroupRepository) AdminGroupIDs(ctx context.Context, clientID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Table("client_group_admins").
		Where("client_id = ?", clientID).
		Pluck("client_group_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *clientGroupRepository) ListForClient(ctx context.Context, client *models.Client) ([]models.ClientGroup, error) {
	adminIDs, err := r.AdminGroupIDs(ctx, client.ID)
	if err != nil {
		return nil, err
	}
	ids := adminIDs
	if client.GroupID != nil {
		ids = append(ids, *client.GroupID)
	}
	if len(ids) == 0 {
		return []models.ClientGroup{}, nil
	}

	var groups []models.ClientGroup
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("name").Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *clientGroupRepository) AddAdmin(ctx context.Context, groupID, clientID uuid.UUID) error {
	return addAdmin(r.db.WithContext(ctx), groupID, clientID)
}

func addAdmin(db *gorm.DB, groupID, clientID uuid.UUID) error {
	return db.Exec(
		"INSERT INTO client_group_admins (client_id, client_group_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
		clientID, groupID,
	).Error
}
