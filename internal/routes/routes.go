// Package routes defines the API routing configuration.
// It sets up all HTTP routes and their corresponding handlers,
// including middleware and authentication requirements.
package routes

import (
	"time"

	"playpark/internal/handlers"
	"playpark/internal/metrics"
	"playpark/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Clients       *handlers.ClientHandler
	Groups        *handlers.GroupHandler
	QRCodes       *handlers.QRHandler
	Plans         *handlers.PlanHandler
	PlanInstances *handlers.PlanInstanceHandler
	Visits        *handlers.VisitHandler
	Payments      *handlers.PaymentHandler
	Health        *handlers.HealthHandler
}

// RegistrationLimit caps anonymous registrations per IP and minute.
const RegistrationLimit = 5

// SetupRoutes configures all application routes.
// It groups routes by functionality and applies appropriate middleware.
func SetupRoutes(app *fiber.App, h Handlers, auth *middleware.AuthMiddleware) {
	app.Get("/health", h.Health.Check)
	app.Get("/metrics", metrics.Handler())

	api := app.Group("/api")

	// Public or optionally authenticated endpoints
	api.Post("/clients/register", registrationLimiter(), auth.Optional, h.Clients.Register)
	api.Get("/available-plans", h.Plans.List)
	api.Get("/available-plans/:plan_id", h.Plans.Get)
	api.Post("/payments/confirmation", h.Payments.Confirmation)

	// Everything below requires a valid token
	clients := api.Group("/clients", auth.Handler)
	clients.Post("/register/child", h.Clients.RegisterChild)
	clients.Post("/parent/:parent_id/children", h.Clients.RegisterChildOfParent)
	clients.Post("/groups/:group_id/clients", h.Clients.RegisterInGroup)
	clients.Get("/all", h.Clients.List)
	clients.Get("/:client_id", h.Clients.Get)
	clients.Put("/:client_id", h.Clients.Update)
	clients.Delete("/:client_id", h.Clients.Delete)

	groups := api.Group("/client-groups", auth.Handler)
	groups.Post("/", h.Groups.Create)
	groups.Get("/", h.Groups.ListMine)
	groups.Post("/:group_id/admins", h.Groups.AddAdmin)

	qr := api.Group("/qr-codes", auth.Handler)
	qr.Post("/generate", h.QRCodes.Generate)
	qr.Get("/active/:client_id", h.QRCodes.GetActive)
	qr.Get("/:qr_code_id", h.QRCodes.Get)
	qr.Get("/:qr_code_id/image", h.QRCodes.Image)
	qr.Post("/:qr_code_id/check-in", middleware.RequireStaff, h.QRCodes.CheckIn)
	qr.Post("/:qr_code_id/check-out", middleware.RequireStaff, h.QRCodes.CheckOut)

	admin := api.Group("/admin", auth.Handler, middleware.RequireStaff)
	admin.Post("/plans", h.Plans.Create)
	admin.Put("/plans/:plan_id", h.Plans.Update)
	admin.Delete("/plans/:plan_id", h.Plans.Deactivate)

	instances := api.Group("/plan-instances", auth.Handler)
	instances.Post("/", h.PlanInstances.Create)
	instances.Get("/", h.PlanInstances.List)
	instances.Get("/:instance_id", h.PlanInstances.Get)
	instances.Get("/:instance_id/visits", h.PlanInstances.Visits)
	instances.Get("/:instance_id/payments", h.PlanInstances.Payments)

	visits := api.Group("/visits", auth.Handler)
	visits.Get("/", h.Visits.ListMine)
	visits.Get("/open", middleware.RequireStaff, h.Visits.ListOpen)

	payments := api.Group("/payments", auth.Handler)
	payments.Post("/", h.Payments.MakePayment)
	payments.Post("/visit", middleware.RequireStaff, h.Payments.VisitPayment)
}

func registrationLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        RegistrationLimit,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":  "TOO_MANY_REQUESTS",
				"detail": "Too many requests. Please try again later.",
			})
		},
	})
}
