package models

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// UserClaims are issued by the external auth provider.
type UserClaims struct {
	jwt.RegisteredClaims
	UserID      uuid.UUID `json:"user_id"`
	Email       string    `json:"email"`
	IsSuperuser bool      `json:"is_superuser"`
	AdminUser   bool      `json:"admin_user"`
}

// IsStaff reports whether the token belongs to a park operator.
func (c *UserClaims) IsStaff() bool {
	return c.IsSuperuser || c.AdminUser
}
