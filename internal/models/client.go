package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Client struct {
	ID         uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     *uuid.UUID    `gorm:"type:uuid;uniqueIndex" json:"user_id"`
	FullName   string        `gorm:"not null" json:"full_name"`
	Email      string        `gorm:"index" json:"email"`
	Phone      string        `json:"phone"`
	DocumentID string        `json:"document_id"`
	BirthDate  *time.Time    `json:"birth_date"`
	IsChild    bool          `gorm:"not null" json:"is_child"`
	GuardianID *uuid.UUID    `gorm:"type:uuid;index" json:"guardian_id"`
	GroupID    *uuid.UUID    `gorm:"type:uuid;index" json:"group_id"`
	QRCode     string        `json:"qr_code"`
	GroupAdmin []ClientGroup `gorm:"many2many:client_group_admins;" json:"-"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// InGroup reports whether the client is a member of groupID.
func (c *Client) InGroup(groupID uuid.UUID) bool {
	return c.GroupID != nil && *c.GroupID == groupID
}
