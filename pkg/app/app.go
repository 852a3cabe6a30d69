// Package app boots the shared infrastructure (config, logger, database,
// cache) and builds the HTTP kernel around the project's routes.
//
//	application := app.New().Routes(routes.API)
//	if err := application.Boot(ctx); err != nil { ... }
//	defer application.Close(ctx)
//	http.ListenAndServe(":8080", application.Handler())
//
// This package never imports project code; routes receive the booted
// Application and build their own repositories and services from it.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/catalog/config"
	"github.com/shashiranjanraj/catalog/pkg/cache"
	"github.com/shashiranjanraj/catalog/pkg/database"
	"github.com/shashiranjanraj/catalog/pkg/logger"
	"github.com/shashiranjanraj/catalog/pkg/metrics"
	"github.com/shashiranjanraj/catalog/pkg/router"
)

var errNotBooted = errors.New("app: database not connected")

// RouteFunc registers routes. a is the application being served; its DB
// and Cache are set once Boot has run.
type RouteFunc func(r *router.Router, a *Application)

// Application owns the process-wide resources.
type Application struct {
	DB    *gorm.DB
	Cache *cache.Store
	Log   *slog.Logger

	routeFns []RouteFunc
	mongo    *logger.MongoHandler
}

func New() *Application {
	return &Application{Log: logger.L}
}

// Routes adds a route-registration callback. Callbacks run in order.
func (a *Application) Routes(fn RouteFunc) *Application {
	a.routeFns = append(a.routeFns, fn)
	return a
}

// Boot loads config, sets up logging, connects the database and, when
// reachable, Redis. A missing Redis is logged and the app runs without it.
func (a *Application) Boot(ctx context.Context) error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("app: config: %w", err)
	}

	if err := a.bootLogger(ctx); err != nil {
		return err
	}
	if err := a.BootDB(); err != nil {
		return err
	}

	store, err := cache.Connect(ctx, config.RedisAddr(), config.RedisPassword())
	if err != nil {
		a.Log.Warn("redis unavailable, running without cache", "addr", config.RedisAddr(), "error", err)
	} else {
		a.Cache = store
	}

	return nil
}

// BootDB connects the database only. CLI commands that do not serve
// traffic use it instead of Boot.
func (a *Application) BootDB() error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("app: config: %w", err)
	}

	db, err := database.Open(database.Options{
		Driver: config.DatabaseDriver(),
		DSN:    config.DatabaseDSN(),
	})
	if err != nil {
		return fmt.Errorf("app: %w", err)
	}
	if err := metrics.InstrumentGorm(db); err != nil {
		_ = database.Close(db)
		return fmt.Errorf("app: instrument db: %w", err)
	}

	a.DB = db
	a.Log.Info("database connected", "driver", config.DatabaseDriver())
	return nil
}

func (a *Application) bootLogger(ctx context.Context) error {
	uri := config.LogMongoURI()
	if uri == "" {
		a.Log = logger.Setup(config.AppEnv())
		return nil
	}

	dialCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	sink, err := logger.NewMongoHandler(dialCtx, uri, "catalog", "logs", slog.LevelInfo)
	if err != nil {
		return fmt.Errorf("app: mongo log sink: %w", err)
	}
	a.mongo = sink
	a.Log = logger.Setup(config.AppEnv(), sink)
	return nil
}

// Close releases everything Boot acquired.
func (a *Application) Close(ctx context.Context) error {
	var errs []error

	if a.Cache != nil {
		errs = append(errs, a.Cache.Close())
	}
	if a.DB != nil {
		errs = append(errs, database.Close(a.DB))
	}
	if a.mongo != nil {
		errs = append(errs, a.mongo.Close(ctx))
	}
	return errors.Join(errs...)
}
