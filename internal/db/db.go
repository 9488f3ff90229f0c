package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"demeter/internal/config"
	"demeter/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// Initialize opens a postgres connection pool tuned by cfg.
func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, fmt.Errorf("database URL must not be empty")
	}

	gormCfg := &gorm.Config{
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Warn),
		NamingStrategy: schema.NamingStrategy{
			SingularTable: false,
		},
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		DisableForeignKeyConstraintWhenMigrating: true,
	}

	db, err := gorm.Open(postgres.Open(cfg.URL), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}

	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if cfg.ConnMaxIdleTime > 0 {
		sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}

	return db, nil
}

// Models lists every persisted type in migration order.
func Models() []any {
	return []any{
		&models.User{},
		&models.FoodItem{},
		&models.InventoryItem{},
		&models.Recipe{},
		&models.RecipeItem{},
		&models.DislikedItem{},
		&models.MinorItem{},
		&models.Substitution{},
		&models.FavoriteRecipe{},
	}
}

// AutoMigrate brings the schema in line with the pantry models.
func AutoMigrate(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database handle is nil")
	}

	return db.AutoMigrate(Models()...)
}

// Configure opens the database and migrates the schema.
func Configure(cfg config.DatabaseConfig) (*gorm.DB, error) {
	database, err := Initialize(cfg)
	if err != nil {
		return nil, err
	}

	if err := AutoMigrate(database); err != nil {
		return nil, err
	}

	return database, nil
}

// Ping returns a check that verifies the connection pool can reach the database.
func Ping(database *gorm.DB) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if database == nil {
			return fmt.Errorf("database handle is nil")
		}
		sqlDB, err := database.DB()
		if err != nil {
			return fmt.Errorf("get sql db: %w", err)
		}
		return sqlDB.PingContext(ctx)
	}
}
