package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PlanInstance is a client group's purchased copy of a plan.
type PlanInstance struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	ClientGroupID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"client_group_id"`
	PlanID           uuid.UUID       `gorm:"type:uuid;not null;index" json:"plan_id"`
	StartDate        time.Time       `json:"start_date"`
	EndDate          time.Time       `json:"end_date"`
	TotalCost        float64         `gorm:"not null" json:"total_cost"`
	PaidAmount       float64         `gorm:"not null" json:"paid_amount"`
	RemainingEntries int             `gorm:"not null" json:"remaining_entries"`
	RemainingLimits  Limits          `json:"remaining_limits"`
	PurchasedAddons  PurchasedAddons `json:"purchased_addons"`
	IsActive         bool            `gorm:"not null;index" json:"is_active"`
	Plan             *Plan           `gorm:"foreignKey:PlanID" json:"plan,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

func (p *PlanInstance) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Outstanding is what remains to be paid.
func (p *PlanInstance) Outstanding() float64 {
	if p.PaidAmount >= p.TotalCost {
		return 0
	}
	return p.TotalCost - p.PaidAmount
}
