package handlers

import (
	appErrors "playpark/internal/errors"
	"playpark/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var errInvalidBody = appErrors.Unprocessable("Invalid request body")

// parseBody decodes the JSON body into dst.
func parseBody(c *fiber.Ctx, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return errInvalidBody
	}
	return nil
}

// paramID parses the named path parameter as a UUID.
func paramID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := utils.ParamUUID(c, name)
	if err != nil {
		return uuid.Nil, appErrors.Unprocessable("Invalid " + name + " format")
	}
	return id, nil
}

// parseUUID parses a UUID carried in a request body field.
func parseUUID(raw, field string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, appErrors.Unprocessable("Missing " + field + " in request body")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, appErrors.Unprocessable("Invalid " + field + " format")
	}
	return id, nil
}
