package db

import (
	"fmt"
	"log"
	"os"
	"time"

	"motofibra/catalog/internal/logging"
	gormModels "motofibra/catalog/internal/models/gorm"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Open connects gorm to the configured driver and migrates the catalog schema.
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case DriverSQLite:
		dialector = sqlite.Open(dsn)
	case DriverPostgres:
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.New(log.New(os.Stdout, "\r\n", log.LstdFlags), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get connection pool: %w", err)
	}
	if driver == DriverSQLite {
		// One connection keeps ":memory:" databases shared and serializes writers.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(20)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	logging.Info("Database connected", "driver", driver)
	return db, nil
}

// Migrate creates or updates the parts and part_details tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&gormModels.Part{}, &gormModels.PartDetails{}); err != nil {
		return fmt.Errorf("failed to migrate catalog schema: %w", err)
	}
	return backfillNameSearch(db)
}

// backfillNameSearch fills name_search for rows written before the column
// existed. Writes go through Part.BeforeSave, so this only finds old rows.
func backfillNameSearch(db *gorm.DB) error {
	var stale []gormModels.Part
	err := db.Select("id", "name").
		Where("name_search IS NULL OR (name_search = '' AND name <> '')").
		Find(&stale).Error
	if err != nil {
		return fmt.Errorf("failed to load parts for name backfill: %w", err)
	}

	for i := range stale {
		err := db.Model(&stale[i]).
			UpdateColumn("name_search", gormModels.FoldName(stale[i].Name)).Error
		if err != nil {
			return fmt.Errorf("failed to backfill name of part %d: %w", stale[i].ID, err)
		}
	}
	if len(stale) > 0 {
		logging.Info("Backfilled part search names", "count", len(stale))
	}
	return nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
