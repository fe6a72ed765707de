package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	googleauth "bottling-backend/internal/auth"
	"bottling-backend/internal/linerates"
	"bottling-backend/internal/liveedit"
	"bottling-backend/internal/products"
	"bottling-backend/internal/schedule"
	"bottling-backend/internal/shared/config"
	"bottling-backend/internal/shared/server"
	"bottling-backend/internal/shared/storage/db"
)

// App holds shared dependencies wired for serving.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB

	ProductRepo  products.Repo
	LineRateRepo linerates.Repo
	ScheduleRepo schedule.Repo

	ProductService  *products.Service
	LineRateService *linerates.Service
	ScheduleService *schedule.Service
	LiveEditService *liveedit.Service

	ScheduleHandler *schedule.Handler
	LiveEditHandler *liveedit.Handler
	ProductHandler  *products.Handler
	LineRateHandler *linerates.Handler
	GoogleAuth      *googleauth.GoogleService
}

// Build prepares shared dependencies and the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
	}
	buildServices(ctx, app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          app.Config,
		ScheduleHandler: app.ScheduleHandler,
		LiveEditHandler: app.LiveEditHandler,
		ProductHandler:  app.ProductHandler,
		LineRateHandler: app.LineRateHandler,
		GoogleAuth:      app.GoogleAuth,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: migrations failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	return sqlDB, nil
}

func buildServices(ctx context.Context, app *App) {
	var productRepo products.Repo
	var lineRateRepo linerates.Repo
	var scheduleRepo schedule.Repo

	if app.DB != nil {
		productRepo = &products.PGRepo{DB: app.DB}
		lineRateRepo = &linerates.PGRepo{DB: app.DB}
		scheduleRepo = &schedule.PGRepo{DB: app.DB}
	} else {
		productRepo = products.NewMemoryRepo()
		lineRateRepo = linerates.NewMemoryRepo()
		scheduleRepo = schedule.NewMemoryRepo()
	}

	productSvc := &products.Service{Repo: productRepo}
	lineRateSvc := &linerates.Service{Repo: lineRateRepo}
	scheduleSvc := schedule.NewService(ctx, scheduleRepo, productSvc, lineRateSvc)
	productSvc.Usage = scheduleSvc

	liveEditSvc := &liveedit.Service{
		Store:   liveedit.NewStore(),
		Planner: scheduleSvc,
	}

	app.ProductRepo = productRepo
	app.LineRateRepo = lineRateRepo
	app.ScheduleRepo = scheduleRepo
	app.ProductService = productSvc
	app.LineRateService = lineRateSvc
	app.ScheduleService = scheduleSvc
	app.LiveEditService = liveEditSvc

	app.ScheduleHandler = schedule.NewHandler(scheduleSvc)
	app.LiveEditHandler = liveedit.NewHandler(liveEditSvc)
	app.ProductHandler = products.NewHandler(productSvc)
	app.LineRateHandler = linerates.NewHandler(lineRateSvc)
	app.GoogleAuth = googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
	)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
