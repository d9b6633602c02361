package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yungbote/pagebridge/internal/data/db"
	types "github.com/yungbote/pagebridge/internal/domain"
	apphttp "github.com/yungbote/pagebridge/internal/http"
	"github.com/yungbote/pagebridge/internal/observability"
	"github.com/yungbote/pagebridge/internal/platform/cache"
	"github.com/yungbote/pagebridge/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      Config
	Schema   *Schema
	Repos    Repos
	Services Services
	Metrics  *observability.Metrics

	rootCache    cache.Cache[[]types.SiteRootPath]
	shutdownOtel func(context.Context) error
}

// OpenDB connects with the configured driver and migrates when enabled.
func OpenDB(cfg Config, log *logger.Logger) (*gorm.DB, error) {
	theDB, err := db.Open(cfg.DBDriver, cfg.SQLitePath, log)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if cfg.AutoMigrate {
		if err := db.AutoMigrateAll(theDB); err != nil {
			return nil, err
		}
	}
	return theDB, nil
}

func New(ctx context.Context, log *logger.Logger, cfg Config) (*App, error) {
	theDB, err := OpenDB(cfg, log)
	if err != nil {
		return nil, err
	}
	a, err := NewWithDB(ctx, log, cfg, theDB)
	if err != nil {
		if sqlDB, dbErr := theDB.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
		return nil, err
	}
	return a, nil
}

// NewWithDB assembles the app over an already opened database.
func NewWithDB(ctx context.Context, log *logger.Logger, cfg Config, theDB *gorm.DB) (*App, error) {
	shutdownOtel := observability.InitOTel(ctx, log, cfg.Otel)

	sch, err := BuildSchema(cfg, log)
	if err != nil {
		_ = shutdownOtel(ctx)
		return nil, err
	}

	store, err := resolveMediaStorage(ctx, log, cfg.Storage)
	if err != nil {
		_ = shutdownOtel(ctx)
		return nil, err
	}

	rootCache, err := cache.New[[]types.SiteRootPath](cfg.Cache, "site_root_paths", log)
	if err != nil {
		_ = shutdownOtel(ctx)
		return nil, fmt.Errorf("init cache: %w", err)
	}

	metrics := observability.NewMetrics()
	reposet := wireRepos(theDB, log)
	serviceset := wireServices(log, cfg, sch, reposet, store, rootCache, metrics)
	router := wireRouter(log, cfg, theDB, sch, serviceset, metrics)

	return &App{
		Log:          log,
		DB:           theDB,
		Router:       router,
		Cfg:          cfg,
		Schema:       sch,
		Repos:        reposet,
		Services:     serviceset,
		Metrics:      metrics,
		rootCache:    rootCache,
		shutdownOtel: shutdownOtel,
	}, nil
}

// Run serves HTTP until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	addr := ":" + a.Cfg.Port
	a.Log.Info("Server listening", "addr", addr, "api_base", a.Cfg.APIBase)
	return (&apphttp.Server{Engine: a.Router}).Run(ctx, addr)
}

func (a *App) Close(ctx context.Context) {
	if a == nil {
		return
	}
	if a.rootCache != nil {
		_ = a.rootCache.Close()
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	if a.shutdownOtel != nil {
		if err := a.shutdownOtel(ctx); err != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
