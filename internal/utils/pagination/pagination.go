package pagination

import (
	"strconv"

	appErrors "playpark/internal/errors"

	"github.com/gofiber/fiber/v2"
)

const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// Pagination is an offset window over a listing.
type Pagination struct {
	Skip  int
	Limit int
}

// ParseFromRequest reads skip and limit from the query string.
func ParseFromRequest(c *fiber.Ctx) (Pagination, error) {
	p := Pagination{Skip: 0, Limit: DefaultLimit}

	if raw := c.Query("skip"); raw != "" {
		skip, err := strconv.Atoi(raw)
		if err != nil || skip < 0 {
			return p, appErrors.Unprocessable("skip must be a non-negative integer")
		}
		p.Skip = skip
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return p, appErrors.Unprocessable("limit must be a positive integer")
		}
		if limit > MaxLimit {
			limit = MaxLimit
		}
		p.Limit = limit
	}
	return p, nil
}

// Bool reads an optional boolean query flag.
func Bool(c *fiber.Ctx, key string, def bool) (bool, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return def, appErrors.Unprocessable(key + " must be a boolean")
	}
	return v, nil
}

// OptionalBool reads a tri-state boolean query flag.
func OptionalBool(c *fiber.Ctx, key string) (*bool, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, appErrors.Unprocessable(key + " must be a boolean")
	}
	return &v, nil
}
