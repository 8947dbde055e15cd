package database

import (
	"fmt"
	"strings"
	"time"

	"brokerage/internal/repository"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	_ "modernc.org/sqlite"
)

func isPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

func Connect(dsn string, log *zap.Logger) (*gorm.DB, error) {
	if log == nil {
		log = zap.NewNop()
	}
	cfg := &gorm.Config{
		Logger: gormlogger.New(zap.NewStdLog(log), gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	}

	if isPostgres(dsn) {
		log.Info("connecting to PostgreSQL")
		return gorm.Open(postgres.Open(dsn), cfg)
	}

	log.Info("using SQLite for local development", zap.String("dsn", dsn))

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        WithForeignKeys(dsn),
		}),
		cfg,
	)
}

// WithForeignKeys appends the modernc pragma that enables foreign key
// enforcement on every pooled SQLite connection.
func WithForeignKeys(dsn string) string {
	if strings.Contains(dsn, "foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}

const rentalsNoOverlap = `ALTER TABLE rentals ADD CONSTRAINT rentals_no_overlap
EXCLUDE USING gist (property_id WITH =, daterange(start_date, end_date, '[)') WITH &&)`

// Migrate creates or updates the schema. On PostgreSQL it also installs the
// exclusion constraint that rejects overlapping rentals of one property.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(repository.Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	if db.Dialector.Name() != "postgres" {
		return nil
	}

	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS btree_gist").Error; err != nil {
		return fmt.Errorf("create btree_gist: %w", err)
	}
	var exists int64
	if err := db.Raw(
		"SELECT COUNT(*) FROM pg_constraint WHERE conname = ?", "rentals_no_overlap",
	).Scan(&exists).Error; err != nil {
		return fmt.Errorf("check rentals_no_overlap: %w", err)
	}
	if exists == 0 {
		if err := db.Exec(rentalsNoOverlap).Error; err != nil {
			return fmt.Errorf("add rentals_no_overlap: %w", err)
		}
	}
	return nil
}
