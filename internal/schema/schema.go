// Package schema owns table creation and the startup column fix-ups.
package schema

import (
	"fmt"
	"strings"

	"github.com/SaiYerra0926/pittmetrorealty-sub000/internal/property"
	"github.com/SaiYerra0926/pittmetrorealty-sub000/internal/review"
	"github.com/SaiYerra0926/pittmetrorealty-sub000/internal/user"

	"github.com/go-gormigrate/gormigrate/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func migrations() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		{
			ID: "20260301_create_core_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(
					&user.User{},
					&property.Property{},
					&property.Photo{},
					&property.Feature{},
					&property.Amenity{},
					&property.Inquiry{},
					&review.Review{},
				)
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(
					&review.Review{},
					&property.Inquiry{},
					&property.Amenity{},
					&property.Feature{},
					&property.Photo{},
					&property.Property{},
					&user.User{},
				)
			},
		},
		{
			ID: "20260415_owner_email_lookup_index",
			Migrate: func(tx *gorm.DB) error {
				return tx.Exec("CREATE INDEX IF NOT EXISTS idx_users_email_lower ON users (LOWER(email))").Error
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Exec("DROP INDEX IF EXISTS idx_users_email_lower").Error
			},
		},
	}
}

// Migrate applies every pending migration.
func Migrate(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, migrations())
	if err := m.Migrate(); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// needsWidening reports whether a photo_url column of the given declared type
// can truncate base64 photo data. Only unbounded text is accepted.
func needsWidening(databaseType string) bool {
	t := strings.ToLower(strings.TrimSpace(databaseType))
	return t != "text"
}

// EnsurePhotoURLColumn widens property_photos.photo_url to TEXT when an older
// schema declared it as a bounded varchar. Running it again is a no-op.
func EnsurePhotoURLColumn(db *gorm.DB, logger *zap.Logger) error {
	migrator := db.Migrator()
	if !migrator.HasTable(&property.Photo{}) {
		return nil
	}
	columns, err := migrator.ColumnTypes(&property.Photo{})
	if err != nil {
		return fmt.Errorf("inspect property_photos: %w", err)
	}
	for _, col := range columns {
		if col.Name() != "photo_url" {
			continue
		}
		declared := col.DatabaseTypeName()
		if !needsWidening(declared) {
			logger.Debug("photo_url column already TEXT")
			return nil
		}
		length, _ := col.Length()
		logger.Info("Widening property_photos.photo_url to TEXT",
			zap.String("declared_type", declared),
			zap.Int64("declared_length", length),
		)
		if err := migrator.AlterColumn(&property.Photo{}, "PhotoURL"); err != nil {
			return fmt.Errorf("alter photo_url: %w", err)
		}
		return nil
	}
	return fmt.Errorf("property_photos.photo_url column not found")
}

// Apply runs migrations and column fix-ups, stopping at the first failure.
func Apply(db *gorm.DB, logger *zap.Logger) error {
	if err := Migrate(db); err != nil {
		return err
	}
	return EnsurePhotoURLColumn(db, logger)
}

// Run is the startup hook: every step is attempted, failures are logged and
// never stop the server from coming up.
func Run(db *gorm.DB, logger *zap.Logger) {
	logger = logger.Named("Schema")
	if err := Migrate(db); err != nil {
		logger.Error("Schema migration failed; continuing", zap.Error(err))
	}
	if err := EnsurePhotoURLColumn(db, logger); err != nil {
		logger.Error("photo_url column check failed; continuing", zap.Error(err))
		return
	}
	logger.Info("Schema is up to date")
}
