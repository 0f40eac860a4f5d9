package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClientGroup struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Clients   []Client  `gorm:"foreignKey:GroupID" json:"clients,omitempty"`
	Admins    []Client  `gorm:"many2many:client_group_admins;" json:"admins,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (g *ClientGroup) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}
