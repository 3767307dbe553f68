package postgres

import (
	"parcels/internal/adapters/out/postgres/outboxrepo"
	"parcels/internal/adapters/out/postgres/parcelrepo"

	_ "github.com/lib/pq" // database/sql driver behind GORM
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects GORM to postgres through lib/pq, so storage errors surface as *pq.Error.
func Open(dsn string, logLevel logger.LogLevel) (*gorm.DB, error) {
	return gorm.Open(gormpostgres.New(gormpostgres.Config{
		DriverName: "postgres",
		DSN:        dsn,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
}

// Migrate creates or updates every table the service owns.
func Migrate(db *gorm.DB) error {
	if err := parcelrepo.Migrate(db); err != nil {
		return err
	}
	return outboxrepo.Migrate(db)
}
