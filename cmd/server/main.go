// Package main is the entry point for the application.
// It initializes all dependencies, sets up the HTTP server,
// and starts the application.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"playpark/internal/config"
	"playpark/internal/handlers"
	applogger "playpark/internal/logger"
	"playpark/internal/metrics"
	"playpark/internal/middleware"
	"playpark/internal/repositories"
	"playpark/internal/routes"
	"playpark/internal/scheduler"
	"playpark/internal/services/access"
	"playpark/internal/services/client"
	"playpark/internal/services/group"
	"playpark/internal/services/payment"
	"playpark/internal/services/payment/gateway"
	"playpark/internal/services/plan"
	"playpark/internal/services/planinstance"
	"playpark/internal/services/qrcode"
	"playpark/internal/services/visit"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		applogger.New("error", "console").Fatal("failed to load configuration", zap.Error(err))
	}

	log := applogger.New(cfg.Log.Level, cfg.Log.Format)
	defer func() { _ = log.Sync() }()

	// Initialize databases (PostgreSQL + Redis)
	db, err := repositories.InitDB(cfg.Database)
	if err != nil {
		log.Fatal("failed to initialize database", zap.Error(err))
	}
	cacheService := repositories.InitCache(cfg.Redis)
	defer repositories.Close(log)

	if err := cacheService.HealthCheck(context.Background()); err != nil {
		log.Warn("redis unavailable, plan catalog will not be cached", zap.Error(err))
	}

	// Repositories
	clientRepo := repositories.NewClientRepository(db)
	groupRepo := repositories.NewClientGroupRepository(db)
	qrRepo := repositories.NewQRCodeRepository(db)
	planRepo := repositories.NewPlanRepository(db, cacheService, log)
	instanceRepo := repositories.NewPlanInstanceRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	visitRepo := repositories.NewVisitRepository(db)

	checkout, err := gateway.New(cfg.Payments)
	if err != nil {
		log.Fatal("failed to configure payment gateway", zap.Error(err))
	}

	// Services
	clientService := client.NewService(clientRepo, groupRepo, log)
	groupService := group.NewService(groupRepo, clientRepo, log)
	qrService := qrcode.NewService(qrcode.Dependencies{
		QRCodes:       qrRepo,
		Clients:       clientRepo,
		Groups:        groupRepo,
		Visits:        visitRepo,
		PlanInstances: instanceRepo,
		PublicBaseURL: cfg.Server.PublicBaseURL,
		Logger:        log,
	})
	planService := plan.NewService(planRepo, log)
	instanceService := planinstance.NewService(planinstance.Dependencies{
		Plans:       planRepo,
		Instances:   instanceRepo,
		Visits:      visitRepo,
		Payments:    paymentRepo,
		Checkout:    checkout,
		RedirectURL: cfg.Payments.RedirectURL,
		Logger:      log,
	})
	paymentService := payment.NewService(payment.Dependencies{
		Payments:          paymentRepo,
		Instances:         instanceRepo,
		Visits:            visitRepo,
		Gateway:           checkout,
		RedirectURL:       cfg.Payments.RedirectURL,
		PendingPaymentTTL: cfg.Scheduler.PendingPaymentTTL,
		Logger:            log,
	})
	visitService := visit.NewService(visitRepo)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var jobs *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		jobs, err = scheduler.New(cfg.Scheduler, paymentService, log)
		if err != nil {
			log.Fatal("failed to create scheduler", zap.Error(err))
		}
		if err := jobs.Start(ctx); err != nil {
			log.Fatal("failed to start scheduler", zap.Error(err))
		}
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "playpark",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowCredentials: true,
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(metrics.Middleware())

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("failed to get database instance", zap.Error(err))
	}

	routes.SetupRoutes(app, routes.Handlers{
		Clients:       handlers.NewClientHandler(clientService, log),
		Groups:        handlers.NewGroupHandler(groupService, log),
		QRCodes:       handlers.NewQRHandler(qrService, log),
		Plans:         handlers.NewPlanHandler(planService, log),
		PlanInstances: handlers.NewPlanInstanceHandler(instanceService, log),
		Visits:        handlers.NewVisitHandler(visitService, log),
		Payments:      handlers.NewPaymentHandler(paymentService, log),
		Health: handlers.NewHealthHandler(map[string]handlers.Pinger{
			"database": handlers.PingFunc(sqlDB.PingContext),
			"redis":    cacheService,
		}),
	}, middleware.NewAuthMiddleware(cfg.Auth.JWTSecret, access.NewResolver(clientRepo, groupRepo), log))

	go func() {
		log.Info("server listening", zap.String("port", cfg.Server.Port), zap.String("env", cfg.Server.Env))
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			log.Error("server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	if jobs != nil {
		if err := jobs.Shutdown(); err != nil {
			log.Warn("scheduler shutdown failed", zap.Error(err))
		}
	}
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Warn("server shutdown failed", zap.Error(err))
	}
}
