package routes

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"playpark/internal/handlers"
	"playpark/internal/middleware"
	"playpark/internal/models"
	"playpark/internal/services/access"
	"playpark/internal/services/payment"
	"playpark/internal/services/payment/gateway"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "routes-secret"

type stubResolver struct{}

func (stubResolver) Resolve(_ context.Context, claims *models.UserClaims) (*access.Actor, error) {
	return &access.Actor{Claims: claims}, nil
}

type stubPayments struct {
	payment.Service
	confirmed int
}

func (s *stubPayments) Confirm(context.Context, gateway.Notification) error {
	s.confirmed++
	return nil
}

func token(t *testing.T, staff bool) string {
	t.Helper()
	claims := &models.UserClaims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
		UserID:           uuid.New(),
		AdminUser:        staff,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return "Bearer " + signed
}

func newTestApp(payments *stubPayments) *fiber.App {
	app := fiber.New()
	SetupRoutes(app, Handlers{
		Clients:       handlers.NewClientHandler(nil, nil),
		Groups:        handlers.NewGroupHandler(nil, nil),
		QRCodes:       handlers.NewQRHandler(nil, nil),
		Plans:         handlers.NewPlanHandler(nil, nil),
		PlanInstances: handlers.NewPlanInstanceHandler(nil, nil),
		Visits:        handlers.NewVisitHandler(nil, nil),
		Payments:      handlers.NewPaymentHandler(payments, nil),
		Health:        handlers.NewHealthHandler(nil),
	}, middleware.NewAuthMiddleware(secret, stubResolver{}, nil))
	return app
}

func TestSetupRoutes_Auth(t *testing.T) {
	payments := &stubPayments{}
	app := newTestApp(payments)

	tests := []struct {
		name       string
		method     string
		path       string
		auth       string
		wantStatus int
	}{
		{name: "health is public", method: "GET", path: "/health", wantStatus: fiber.StatusOK},
		{name: "metrics is public", method: "GET", path: "/metrics", wantStatus: fiber.StatusOK},
		{name: "client list needs token", method: "GET", path: "/api/clients/all?group_id=" + uuid.NewString(), wantStatus: fiber.StatusUnauthorized},
		{name: "qr generate needs token", method: "POST", path: "/api/qr-codes/generate", wantStatus: fiber.StatusUnauthorized},
		{name: "plan admin needs staff", method: "POST", path: "/api/admin/plans", auth: token(t, false), wantStatus: fiber.StatusForbidden},
		{name: "check-in needs staff", method: "POST", path: "/api/qr-codes/" + uuid.NewString() + "/check-in", auth: token(t, false), wantStatus: fiber.StatusForbidden},
		{name: "open visits needs staff", method: "GET", path: "/api/visits/open", auth: token(t, false), wantStatus: fiber.StatusForbidden},
		{name: "confirmation is public", method: "POST", path: "/api/payments/confirmation", wantStatus: fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(""))
			if tt.auth != "" {
				req.Header.Set("Authorization", tt.auth)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
	assert.Equal(t, 1, payments.confirmed)
}

func TestSetupRoutes_RegistrationLimit(t *testing.T) {
	app := newTestApp(&stubPayments{})

	var last int
	for i := 0; i <= RegistrationLimit; i++ {
		// malformed body short-circuits before the client service
		req := httptest.NewRequest("POST", "/api/clients/register", strings.NewReader("{"))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		last = resp.StatusCode
		if i < RegistrationLimit {
			assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
		}
	}
	assert.Equal(t, fiber.StatusTooManyRequests, last)
}
