package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Addons maps an addon name to its unit price.
type Addons = datatypes.JSONType[map[string]float64]

// Limits maps a limit name to its allowance.
type Limits = datatypes.JSONType[map[string]int]

// PurchasedAddons maps an addon name to the quantity bought.
type PurchasedAddons = datatypes.JSONType[map[string]int]

type Plan struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string         `gorm:"not null" json:"name"`
	Slug        string         `gorm:"uniqueIndex;not null" json:"slug"`
	Description string         `json:"description"`
	Price       float64        `gorm:"not null" json:"price"`
	Addons      Addons         `json:"addons"`
	Entries     int            `gorm:"not null" json:"entries"`
	Limits      Limits         `json:"limits"`
	Tags        pq.StringArray `gorm:"type:text[]" json:"tags"`
	IsActive    bool           `gorm:"not null;index" json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (p *Plan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func NewAddons(m map[string]float64) Addons {
	if m == nil {
		m = map[string]float64{}
	}
	return datatypes.NewJSONType(m)
}

func NewLimits(m map[string]int) Limits {
	if m == nil {
		m = map[string]int{}
	}
	return datatypes.NewJSONType(m)
}

func NewPurchasedAddons(m map[string]int) PurchasedAddons {
	if m == nil {
		m = map[string]int{}
	}
	return datatypes.NewJSONType(m)
}
