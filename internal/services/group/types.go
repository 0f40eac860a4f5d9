package group

import "github.com/google/uuid"

type CreateRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

type AddAdminRequest struct {
	ClientID uuid.UUID `json:"client_id" validate:"required"`
}
