package middleware

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"playpark/internal/models"
	"playpark/internal/services/access"
	"playpark/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) Resolve(ctx context.Context, claims *models.UserClaims) (*access.Actor, error) {
	args := m.Called(ctx, claims)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*access.Actor), args.Error(1)
}

func signToken(t *testing.T, secret string, claims *models.UserClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func newApp(resolver access.Resolver, optional bool, staff bool) *fiber.App {
	m := NewAuthMiddleware(testSecret, resolver, nil)
	handler := m.Handler
	if optional {
		handler = m.Optional
	}
	app := fiber.New()
	handlers := []fiber.Handler{handler}
	if staff {
		handlers = append(handlers, RequireStaff)
	}
	handlers = append(handlers, func(c *fiber.Ctx) error {
		actor := utils.GetActor(c)
		if actor.Authenticated() {
			return c.SendString(actor.Claims.Email)
		}
		return c.SendString("anonymous")
	})
	app.Get("/", handlers...)
	return app
}

func TestAuthMiddleware(t *testing.T) {
	userID := uuid.New()
	valid := &models.UserClaims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
		UserID:           userID,
		Email:            "ops@example.com",
		AdminUser:        true,
	}
	expired := &models.UserClaims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour))},
		UserID:           userID,
	}

	tests := []struct {
		name       string
		optional   bool
		staff      bool
		header     string
		setupMock  func(*MockResolver)
		wantStatus int
	}{
		{
			name:       "missing header",
			header:     "",
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "not a bearer token",
			header:     "Basic abc",
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "wrong secret",
			header:     "Bearer " + signToken(t, "other", valid),
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "expired",
			header:     "Bearer " + signToken(t, testSecret, expired),
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name:   "valid token",
			header: "Bearer " + signToken(t, testSecret, valid),
			setupMock: func(r *MockResolver) {
				r.On("Resolve", mock.Anything, mock.MatchedBy(func(c *models.UserClaims) bool { return c.UserID == userID })).
					Return(&access.Actor{Claims: valid}, nil)
			},
			wantStatus: fiber.StatusOK,
		},
		{
			name:     "optional anonymous",
			optional: true,
			setupMock: func(r *MockResolver) {
				r.On("Resolve", mock.Anything, (*models.UserClaims)(nil)).Return(&access.Actor{}, nil)
			},
			wantStatus: fiber.StatusOK,
		},
		{
			name:       "optional with bad token",
			optional:   true,
			header:     "Bearer garbage",
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name:   "staff route with staff token",
			staff:  true,
			header: "Bearer " + signToken(t, testSecret, valid),
			setupMock: func(r *MockResolver) {
				r.On("Resolve", mock.Anything, mock.Anything).Return(&access.Actor{Claims: valid}, nil)
			},
			wantStatus: fiber.StatusOK,
		},
		{
			name:   "staff route with regular user",
			staff:  true,
			header: "Bearer " + signToken(t, testSecret, valid),
			setupMock: func(r *MockResolver) {
				r.On("Resolve", mock.Anything, mock.Anything).Return(&access.Actor{Claims: &models.UserClaims{UserID: userID}}, nil)
			},
			wantStatus: fiber.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := new(MockResolver)
			if tt.setupMock != nil {
				tt.setupMock(resolver)
			}

			req := httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := newApp(resolver, tt.optional, tt.staff).Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			resolver.AssertExpectations(t)
		})
	}
}
