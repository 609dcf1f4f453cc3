package database

import (
	"fmt"

	"project-service/internal/model"
	"project-service/pkg/config"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var db *gorm.DB

// InitDB initializes the database connection with configuration and runs migrations
func InitDB(config *config.Config) error {
	var err error

	// Configure GORM logger
	logLevel := logger.Error
	if config.Server.Env == "development" {
		logLevel = logger.Info
	}

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	}

	switch config.DB.Driver {
	case "sqlite":
		db, err = gorm.Open(sqlite.Open(config.DB.SQLitePath), gormConfig)
	default:
		// Configure Postgres options
		pgConfig := postgres.Config{
			DSN:                  config.DB.GetDSN(),
			PreferSimpleProtocol: true, // Disables implicit prepared statement usage
		}
		db, err = gorm.Open(postgres.New(pgConfig), gormConfig)
	}
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get generic database object SQL
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database object: %w", err)
	}

	// Set connection pool settings from config
	sqlDB.SetMaxIdleConns(config.DB.MaxIdleConns)
	sqlDB.SetMaxOpenConns(config.DB.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(config.DB.ConnMaxLifetime)

	// Run migrations
	if err := Migrate(db); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	return nil
}

// Migrate creates/updates the schema for all entity models
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Organization{},
		&model.Project{},
		&model.Task{},
		&model.TaskComment{},
	)
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return db
}
