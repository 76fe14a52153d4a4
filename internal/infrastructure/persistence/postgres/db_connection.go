// Package postgres implements the persistence collaborators on PostgreSQL
// through GORM. Repository tests run the same code against in-memory SQLite.
package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/taskforge/taskforge/internal/config"
	"github.com/taskforge/taskforge/internal/domain/models"
	"github.com/taskforge/taskforge/pkg/logger"
)

// NewDBConnection opens the PostgreSQL connection pool and verifies it with
// a ping before returning.
func NewDBConnection(ctx context.Context, cfg *config.DatabaseConfig, log logger.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("access connection pool: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	log.Info(ctx, "PostgreSQL connection pool ready",
		logger.String("host", cfg.Host),
		logger.Int("port", cfg.Port),
		logger.String("database", cfg.Database),
		logger.Int("max_open_conns", cfg.MaxOpenConns),
	)

	return db, nil
}

// Migrate creates or updates the schema for the domain entities.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.Project{}, &models.Task{})
}
