package utils

import (
	"errors"

	"playpark/internal/models"
	"playpark/internal/services/access"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Context keys set by the auth middleware.
const (
	ClaimsKey = "claims"
	ActorKey  = "actor"
)

// GetUserClaims extracts the user claims from the Fiber context.
// It returns an error if the claims are missing or of an invalid type.
func GetUserClaims(c *fiber.Ctx) (*models.UserClaims, error) {
	v := c.Locals(ClaimsKey)
	if v == nil {
		return nil, errors.New("claims not found in context")
	}

	claims, ok := v.(*models.UserClaims)
	if !ok || claims == nil {
		return nil, errors.New("invalid claims type")
	}
	return claims, nil
}

// OptionalUserClaims returns the claims when the request was authenticated.
func OptionalUserClaims(c *fiber.Ctx) *models.UserClaims {
	claims, err := GetUserClaims(c)
	if err != nil {
		return nil
	}
	return claims
}

// GetActor returns the caller resolved by the auth middleware, or an
// anonymous actor when none was stored.
func GetActor(c *fiber.Ctx) *access.Actor {
	if actor, ok := c.Locals(ActorKey).(*access.Actor); ok && actor != nil {
		return actor
	}
	return &access.Actor{Claims: OptionalUserClaims(c)}
}

// ParamUUID parses a UUID path parameter.
func ParamUUID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Params(name))
}
