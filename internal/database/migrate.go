package database

import (
	"fmt"
	"time"

	"github.com/PanuLaosuwan/faststock-backend/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type migration struct {
	version int
	name    string
	up      func(tx *gorm.DB) error
}

// migrations run in order, once each. Append only; never edit a released step.
var migrations = []migration{
	{1, "create_core_tables", func(tx *gorm.DB) error {
		return tx.AutoMigrate(
			&models.User{},
			&models.Event{},
			&models.Product{},
			&models.Bar{},
			&models.StockEntry{},
			&models.PrestockEntry{},
			&models.LostEntry{},
		)
	}},
	{2, "create_audit_logs", func(tx *gorm.DB) error {
		return tx.AutoMigrate(&models.AuditLog{})
	}},
	{3, "stock_date_indexes", func(tx *gorm.DB) error {
		for _, stmt := range []string{
			"CREATE INDEX IF NOT EXISTS idx_stock_sdate ON stock (sdate)",
			"CREATE INDEX IF NOT EXISTS idx_lost_sdate ON lost (sdate)",
		} {
			if err := tx.Exec(stmt).Error; err != nil {
				return err
			}
		}
		return nil
	}},
}

// LatestVersion is the schema version a fully migrated database reports.
func LatestVersion() int { return migrations[len(migrations)-1].version }

// Migrate brings the schema up to LatestVersion. Each step runs in its own
// transaction together with its schema_migrations record.
func Migrate(db *gorm.DB, log *logrus.Logger) error {
	if err := db.AutoMigrate(&models.SchemaMigration{}); err != nil {
		return fmt.Errorf("schema_migrations: %w", err)
	}

	var applied []int
	if err := db.Model(&models.SchemaMigration{}).Pluck("version", &applied).Error; err != nil {
		return fmt.Errorf("read schema_migrations: %w", err)
	}
	done := make(map[int]bool, len(applied))
	for _, v := range applied {
		done[v] = true
	}

	for _, m := range migrations {
		if done[m.version] {
			continue
		}
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := m.up(tx); err != nil {
				return err
			}
			return tx.Create(&models.SchemaMigration{
				Version:   m.version,
				Name:      m.name,
				AppliedAt: time.Now().UTC(),
			}).Error
		})
		if err != nil {
			return fmt.Errorf("migration %d %s: %w", m.version, m.name, err)
		}
		log.WithFields(logrus.Fields{"version": m.version, "name": m.name}).Info("migration applied")
	}

	return nil
}
