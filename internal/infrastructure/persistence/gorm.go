package persistence

import (
	"fmt"

	"flightpocket/internal/domain/entity"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// OpenDatabase opens the local store with the configured driver and ensures
// both collections exist. AutoMigrate is additive, so opening against an
// existing schema changes nothing and never clears data.
func OpenDatabase(driver, sqlitePath, postgresDSN string) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch driver {
	case "sqlite":
		dialector = sqlite.Open(sqlitePath)
	case "postgres":
		dialector = postgres.Open(postgresDSN)
	default:
		return nil, fmt.Errorf("unknown store driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", driver, err)
	}

	if err := db.AutoMigrate(&entity.FavoriteRecord{}, &entity.PendingRequest{}); err != nil {
		return nil, fmt.Errorf("migrate collections: %w", err)
	}

	return db, nil
}

// CloseDatabase releases the underlying connection pool. Used on shutdown
// and by tests that open throwaway stores.
func CloseDatabase(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
