package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Visit struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID        uuid.UUID  `gorm:"type:uuid;not null;index" json:"client_id"`
	QRCodeID        *uuid.UUID `gorm:"type:uuid;index" json:"qr_code_id"`
	PlanInstanceID  *uuid.UUID `gorm:"type:uuid;index" json:"plan_instance_id"`
	PaymentID       *uuid.UUID `gorm:"type:uuid" json:"payment_id"`
	CheckIn         time.Time  `gorm:"not null;index" json:"check_in"`
	CheckOut        *time.Time `json:"check_out"`
	DurationMinutes *int       `json:"duration_minutes"`
	Client          *Client    `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Payment         *Payment   `gorm:"foreignKey:PaymentID" json:"payment,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

func (v *Visit) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// Close stamps the check-out time and the rounded duration.
func (v *Visit) Close(at time.Time) {
	v.CheckOut = &at
	minutes := int(at.Sub(v.CheckIn).Round(time.Minute) / time.Minute)
	if minutes < 0 {
		minutes = 0
	}
	v.DurationMinutes = &minutes
}
