package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
	PaymentStatusExpired   = "expired"
)

const (
	PaymentMethodCreditCard = "credit_card"
	PaymentMethodCash       = "cash"
	PaymentMethodInvoice    = "invoice"
)

const (
	PaymentTypeFull    = "full"
	PaymentTypePartial = "partial"
)

type Payment struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	ClientGroupID   *uuid.UUID      `gorm:"type:uuid;index" json:"client_group_id"`
	ClientID        *uuid.UUID      `gorm:"type:uuid;index" json:"client_id"`
	Amount          float64         `gorm:"not null" json:"amount"`
	Status          string          `gorm:"not null;index" json:"status"`
	PaymentMethod   string          `gorm:"not null" json:"payment_method"`
	TransactionID   string          `gorm:"uniqueIndex;not null" json:"transaction_id"`
	PlanID          *uuid.UUID      `gorm:"type:uuid" json:"plan_id"`
	PlanInstanceID  *uuid.UUID      `gorm:"type:uuid;index" json:"plan_instance_id"`
	VisitID         *uuid.UUID      `gorm:"type:uuid;index" json:"visit_id"`
	PurchasedAddons PurchasedAddons `json:"purchased_addons"`
	Details         JSON            `json:"details"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.TransactionID == "" {
		p.TransactionID = uuid.NewString()
	}
	return nil
}

// ValidPaymentMethod reports whether m is an accepted payment method.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentMethodCreditCard, PaymentMethodCash, PaymentMethodInvoice:
		return true
	}
	return false
}
