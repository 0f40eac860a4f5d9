// Command seed loads the default plan catalog. Plans that already exist,
// matched by slug, are left untouched.
package main

import (
	"context"
	"errors"

	"playpark/internal/config"
	appErrors "playpark/internal/errors"
	applogger "playpark/internal/logger"
	"playpark/internal/models"
	"playpark/internal/repositories"
	"playpark/internal/services/access"
	"playpark/internal/services/plan"

	"go.uber.org/zap"
)

var catalog = []plan.CreateRequest{
	{
		Name:        "Single Visit",
		Slug:        "single-visit",
		Description: "One entry to the play area",
		Price:       25000,
		Entries:     1,
		Addons:      map[string]float64{"socks": 5000},
		Limits:      map[string]int{"hours": 2},
		Tags:        []string{"kids"},
	},
	{
		Name:        "Monthly Family",
		Slug:        "monthly-family",
		Description: "Eight entries per month for the whole family",
		Price:       180000,
		Entries:     8,
		Addons:      map[string]float64{"socks": 5000, "locker": 2000, "snack": 8000},
		Limits:      map[string]int{"guests": 2, "hours": 3},
		Tags:        []string{"family", "monthly"},
	},
	{
		Name:        "Birthday Party",
		Slug:        "birthday-party",
		Description: "Private room for up to 20 kids",
		Price:       650000,
		Entries:     20,
		Addons:      map[string]float64{"cake": 90000, "decoration": 60000},
		Limits:      map[string]int{"guests": 20, "hours": 3},
		Tags:        []string{"events"},
	},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		applogger.New("error", "console").Fatal("failed to load configuration", zap.Error(err))
	}
	log := applogger.New(cfg.Log.Level, cfg.Log.Format)
	defer func() { _ = log.Sync() }()

	db, err := repositories.InitDB(cfg.Database)
	if err != nil {
		log.Fatal("failed to initialize database", zap.Error(err))
	}
	cacheService := repositories.InitCache(cfg.Redis)
	defer repositories.Close(log)

	svc := plan.NewService(repositories.NewPlanRepository(db, cacheService, log), log)
	seeder := &access.Actor{Claims: &models.UserClaims{IsSuperuser: true}}

	ctx := context.Background()
	created := 0
	for _, req := range catalog {
		_, err := svc.Get(ctx, req.Slug, false)
		if err == nil {
			log.Info("plan already exists", zap.String("slug", req.Slug))
			continue
		}
		if !errors.Is(err, appErrors.ErrPlanNotFound) {
			log.Fatal("failed to look up plan", zap.String("slug", req.Slug), zap.Error(err))
		}

		if _, err := svc.Create(ctx, seeder, req); err != nil {
			log.Fatal("failed to create plan", zap.String("slug", req.Slug), zap.Error(err))
		}
		created++
	}
	log.Info("plan catalog seeded", zap.Int("created", created), zap.Int("total", len(catalog)))
}
