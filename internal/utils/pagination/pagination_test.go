package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFromRequest(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		want      Pagination
		wantError bool
	}{
		{name: "defaults", query: "", want: Pagination{Skip: 0, Limit: 100}},
		{name: "explicit", query: "?skip=20&limit=10", want: Pagination{Skip: 20, Limit: 10}},
		{name: "capped", query: "?limit=5000", want: Pagination{Skip: 0, Limit: MaxLimit}},
		{name: "negative skip", query: "?skip=-1", wantError: true},
		{name: "bad limit", query: "?limit=abc", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				p, err := ParseFromRequest(c)
				if tt.wantError {
					assert.Error(t, err)
				} else {
					assert.NoError(t, err)
					assert.Equal(t, tt.want, p)
				}
				return c.SendStatus(fiber.StatusOK)
			})
			_, err := app.Test(httptest.NewRequest("GET", "/"+tt.query, nil))
			require.NoError(t, err)
		})
	}
}

func TestBoolFlags(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		active, err := Bool(c, "active_only", true)
		assert.NoError(t, err)
		assert.False(t, active)

		child, err := OptionalBool(c, "is_child")
		assert.NoError(t, err)
		require.NotNil(t, child)
		assert.True(t, *child)

		missing, err := OptionalBool(c, "other")
		assert.NoError(t, err)
		assert.Nil(t, missing)

		_, err = Bool(c, "broken", false)
		assert.Error(t, err)
		return nil
	})
	_, err := app.Test(httptest.NewRequest("GET", "/?active_only=false&is_child=true&broken=maybe", nil))
	require.NoError(t, err)
}
