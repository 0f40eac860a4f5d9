package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	QRStatePending = "pending" // issued, not scanned yet
	QRStateInUse   = "in_use"  // holder checked in
	QRStateUsed    = "used"    // holder checked out
)

type QRCode struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"client_id"`
	ClientGroupID *uuid.UUID `gorm:"type:uuid;index" json:"client_group_id"`
	VisitID       *uuid.UUID `gorm:"type:uuid" json:"visit_id"`
	State         string     `gorm:"not null;index" json:"state"`
	Client        *Client    `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Visit         *Visit     `gorm:"-" json:"visit,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (q *QRCode) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	if q.State == "" {
		q.State = QRStatePending
	}
	return nil
}
