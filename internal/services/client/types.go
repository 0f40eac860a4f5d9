package client

import (
	"time"

	"github.com/google/uuid"
)

// RegisterRequest is the payload for registering a client.
type RegisterRequest struct {
	UserID     *uuid.UUID `json:"user_id"`
	FullName   string     `json:"full_name" validate:"required,max=255"`
	Email      string     `json:"email" validate:"omitempty,email"`
	Phone      string     `json:"phone" validate:"omitempty,phone"`
	DocumentID string     `json:"document_id" validate:"omitempty,max=64"`
	BirthDate  *time.Time `json:"birth_date"`
	IsChild    bool       `json:"is_child"`
	GuardianID *uuid.UUID `json:"guardian_id"`
	GroupID    *uuid.UUID `json:"group_id"`
}

// ChildRequest is the payload for registering a child under a guardian.
type ChildRequest struct {
	FullName   string     `json:"full_name" validate:"required,max=255"`
	Email      string     `json:"email" validate:"omitempty,email"`
	Phone      string     `json:"phone" validate:"omitempty,phone"`
	DocumentID string     `json:"document_id" validate:"omitempty,max=64"`
	BirthDate  *time.Time `json:"birth_date"`
}

// UpdateRequest carries only the fields to change.
type UpdateRequest struct {
	FullName   *string    `json:"full_name" validate:"omitempty,min=1,max=255"`
	Email      *string    `json:"email" validate:"omitempty,email"`
	Phone      *string    `json:"phone" validate:"omitempty,phone"`
	DocumentID *string    `json:"document_id" validate:"omitempty,max=64"`
	BirthDate  *time.Time `json:"birth_date"`
	IsChild    *bool      `json:"is_child"`
	GuardianID *uuid.UUID `json:"guardian_id" copier:"-"`
	GroupID    *uuid.UUID `json:"group_id" copier:"-"`
}

type ListRequest struct {
	GroupID uuid.UUID
	IsChild *bool
	Skip    int
	Limit   int
}
