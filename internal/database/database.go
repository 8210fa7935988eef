// Package database opens the message store and migrates its schema.
package database

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/welldanyogia/webrana-msgview/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connection pool configuration
const (
	DefaultMaxIdleConns    = 10
	DefaultMaxOpenConns    = 100
	DefaultConnMaxLifetime = time.Hour
	DefaultConnMaxIdleTime = 10 * time.Minute
)

// Options tune Connect.
type Options struct {
	// AppEnv "production" refuses postgres URLs with sslmode=disable.
	AppEnv string
	// LogLevel is the gorm log level; zero means silent.
	LogLevel logger.LogLevel
}

// Connect opens the database named by databaseURL. postgres:// and
// postgresql:// URLs (or key=value DSNs) use postgres; anything else is a
// sqlite path or file: URI.
func Connect(databaseURL string, opts Options) (*gorm.DB, error) {
	dialector, isSQLite, err := dialectorFor(databaseURL, opts.AppEnv)
	if err != nil {
		return nil, err
	}

	level := opts.LogLevel
	if level == 0 {
		level = logger.Silent
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := configureConnectionPool(db, isSQLite); err != nil {
		return nil, err
	}

	slog.Info("Connected to database successfully", slog.Bool("sqlite", isSQLite))
	return db, nil
}

func dialectorFor(databaseURL, appEnv string) (gorm.Dialector, bool, error) {
	if databaseURL == "" {
		return nil, false, fmt.Errorf("database URL cannot be empty")
	}
	if isPostgres(databaseURL) {
		if appEnv == "production" {
			if err := validateSSLMode(databaseURL); err != nil {
				return nil, false, err
			}
		}
		return postgres.Open(databaseURL), false, nil
	}
	return sqlite.Open(databaseURL), true, nil
}

func isPostgres(databaseURL string) bool {
	lower := strings.ToLower(databaseURL)
	return strings.HasPrefix(lower, "postgres://") ||
		strings.HasPrefix(lower, "postgresql://") ||
		strings.Contains(lower, "host=")
}

// validateSSLMode ensures SSL is enabled in production
func validateSSLMode(databaseURL string) error {
	if strings.Contains(databaseURL, "sslmode=disable") {
		return fmt.Errorf("SSL mode cannot be disabled in production")
	}
	// no sslmode means prefer, which is acceptable
	return nil
}

// configureConnectionPool sets up connection pool limits. sqlite allows a
// single writer, so its pool is one connection.
func configureConnectionPool(db *gorm.DB, isSQLite bool) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if isSQLite {
		sqlDB.SetMaxOpenConns(1)
		return nil
	}
	sqlDB.SetMaxIdleConns(DefaultMaxIdleConns)
	sqlDB.SetMaxOpenConns(DefaultMaxOpenConns)
	sqlDB.SetConnMaxLifetime(DefaultConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(DefaultConnMaxIdleTime)
	return nil
}

// Migrate runs auto-migration for all models
func Migrate(db *gorm.DB) error {
	slog.Info("Running database migrations...")

	err := db.AutoMigrate(
		&models.Sms{},
		&models.Pdu{},
		&models.Addr{},
		&models.Part{},
		&models.Contact{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	slog.Info("Database migrations completed successfully")
	return nil
}

// Close closes the database connection
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}
