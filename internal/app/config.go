package app

import (
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/yungbote/pagebridge/internal/observability"
	"github.com/yungbote/pagebridge/internal/platform/cache"
	"github.com/yungbote/pagebridge/internal/platform/envutil"
	"github.com/yungbote/pagebridge/internal/platform/logger"
	"github.com/yungbote/pagebridge/internal/platform/storage"
)

const serviceName = "pagebridge"

// Version is stamped at build time with -ldflags.
var Version = "dev"

type Config struct {
	Env     string
	LogMode string
	Port    string

	DBDriver    string
	SQLitePath  string
	AutoMigrate bool

	ContentModelsPath     string
	TypeStreamfieldBlocks bool
	APIBase               string
	I18N                  bool
	DefaultLimit          int
	LimitMax              int
	ResponseValidation    bool

	JWTSecret     string
	CORSOrigins   []string
	ExposeMetrics bool

	Storage storage.Config
	Cache   cache.Config
	Otel    observability.OtelConfig
}

// LoadDotEnv reads ENV_FILE (default .env) when present; real environment
// variables win over the file.
func LoadDotEnv() {
	path := strings.TrimSpace(os.Getenv("ENV_FILE"))
	if path == "" {
		_ = godotenv.Load()
		return
	}
	_ = godotenv.Load(path)
}

func LoadConfig(log *logger.Logger) Config {
	env := envutil.String("APP_ENV", "development")
	cfg := Config{
		Env:     env,
		LogMode: envutil.String("LOG_MODE", "development"),
		Port:    envutil.String("PORT", "8080"),

		DBDriver:    envutil.String("DB_DRIVER", "postgres"),
		SQLitePath:  envutil.String("SQLITE_PATH", "pagebridge.db"),
		AutoMigrate: envutil.Bool("DB_AUTO_MIGRATE", true),

		ContentModelsPath:     envutil.String("CONTENT_MODELS_PATH", "config/content_models.yaml"),
		TypeStreamfieldBlocks: envutil.Bool("TYPE_STREAMFIELD_BLOCKS", true),
		APIBase:               envutil.String("API_BASE_PATH", "/api/v2"),
		I18N:                  envutil.Bool("I18N_ENABLED", false),
		DefaultLimit:          envutil.Int("API_DEFAULT_LIMIT", 20),
		LimitMax:              envutil.Int("API_LIMIT_MAX", 20),
		ResponseValidation:    envutil.Bool("RESPONSE_VALIDATION", env != "production"),

		JWTSecret:     envutil.String("JWT_SECRET", ""),
		CORSOrigins:   envutil.List("CORS_ORIGINS", nil),
		ExposeMetrics: envutil.Bool("METRICS_ENABLED", true),

		Storage: storage.ConfigFromEnv(),
		Cache:   cache.ConfigFromEnv(),
		Otel:    observability.OtelConfigFromEnv(serviceName, env, Version),
	}
	if log != nil {
		log.Info("config loaded",
			"env", cfg.Env,
			"db_driver", cfg.DBDriver,
			"api_base", cfg.APIBase,
			"i18n", cfg.I18N,
			"media_storage_mode", cfg.Storage.Mode,
			"cache_backend", cfg.Cache.Backend,
			"response_validation", cfg.ResponseValidation,
			"viewer_tokens", cfg.JWTSecret != "",
		)
	}
	return cfg
}
