// Package bootstrap assembles the application from configuration.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-generator/internal/forms"
	"resume-generator/internal/generatedresumes"
	"resume-generator/internal/generator"
	"resume-generator/internal/resumes"
	"resume-generator/internal/services/health"
	"resume-generator/internal/shared/config"
	"resume-generator/internal/shared/metrics"
	"resume-generator/internal/shared/server"
	"resume-generator/internal/shared/storage/db"
	"resume-generator/internal/shared/storage/object"
	localstore "resume-generator/internal/shared/storage/object/local"
	s3store "resume-generator/internal/shared/storage/object/s3"
	"resume-generator/internal/shared/telemetry"
	"resume-generator/resume/variant"
)

// App holds shared dependencies.
type App struct {
	Config         config.Config
	Router         *gin.Engine
	DB             *sql.DB
	Store          object.ObjectStore
	Variants       *variant.Registry
	Repo           generatedresumes.Repo
	Metrics        *metrics.Recorder
	Generator      *generator.Service
	Health         *health.Service
	FormsHandler   *forms.Handler
	ResumesHandler *resumes.Handler
}

// Build connects storage, loads the variant catalog and wires the router.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = config.EnvDev
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = config.StoreLocal
	}

	registry, err := variant.Load()
	if err != nil {
		return nil, fmt.Errorf("load variants: %w", err)
	}
	if _, err := registry.Get(cfg.DefaultVariant); err != nil {
		return nil, fmt.Errorf("default variant: %w", err)
	}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		if sqlDB != nil {
			_ = sqlDB.Close()
		}
		return nil, err
	}

	app := &App{
		Config:   cfg,
		DB:       sqlDB,
		Store:    store,
		Variants: registry,
		Metrics:  metrics.New(),
	}
	if sqlDB != nil {
		app.Repo = &generatedresumes.PGRepo{DB: sqlDB}
		app.Health = health.NewService(sqlDB, cfg.ObjectStoreType, len(registry.List()))
	} else {
		app.Repo = generatedresumes.NewMemoryRepo()
		app.Health = health.NewService(nil, cfg.ObjectStoreType, len(registry.List()))
	}

	app.Generator = &generator.Service{
		Variants: registry,
		Repo:     app.Repo,
		Store:    store,
		Metrics:  app.Metrics,
	}
	app.FormsHandler = forms.NewHandler(app.Generator, registry, cfg.MaxFormBytes, cfg.DefaultVariant)
	app.ResumesHandler = resumes.NewHandler(app.Generator, registry, cfg.MaxFormBytes)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:         cfg,
		Metrics:        app.Metrics,
		Health:         app.Health,
		FormsHandler:   app.FormsHandler,
		ResumesHandler: app.ResumesHandler,
	})
	return app, nil
}

// Close releases the database pool.
func (a *App) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			telemetry.Info("bootstrap.memory_repo", map[string]any{"reason": "database_url empty"})
			return nil, nil
		}
		return nil, db.ErrNoDatabaseURL
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_repo", map[string]any{"reason": "connect failed", "error": err.Error()})
			return nil, nil
		}
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case config.StoreS3:
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case config.EnvDev, config.EnvLocal:
		return true
	default:
		return false
	}
}
