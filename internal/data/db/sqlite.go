package db

import (
	"fmt"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/yungbote/pagebridge/internal/platform/logger"
)

// OpenSQLite opens a SQLite database; ":memory:" gives a private in-memory store.
func OpenSQLite(path string, logg *logger.Logger) (*gorm.DB, error) {
	path = strings.TrimSpace(path)
	if path == "" || path == ":memory:" {
		path = "file::memory:"
	}
	cfg := &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   newGormLogger(),
	}
	if logg == nil {
		cfg.Logger = gormLogger.Default.LogMode(gormLogger.Silent)
	}
	db, err := gorm.Open(sqlite.Open(path), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite %q: %w", path, err)
	}
	// A single connection keeps in-memory databases from splitting per connection.
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
	}
	if logg != nil {
		logg.With("service", "SQLite").Info("connected", "driver", "sqlite", "path", path)
	}
	return db, nil
}

// Open picks a driver by name ("postgres" or "sqlite").
func Open(driver, sqlitePath string, logg *logger.Logger) (*gorm.DB, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", "postgres", "postgresql":
		svc, err := NewPostgresService(logg)
		if err != nil {
			return nil, err
		}
		return svc.DB(), nil
	case "sqlite", "sqlite3":
		return OpenSQLite(sqlitePath, logg)
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", driver)
	}
}
