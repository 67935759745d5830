// Package testdb opens isolated, fully migrated SQLite databases for tests.
package testdb

import (
	"io"
	"net/url"
	"strings"
	"testing"

	"github.com/PanuLaosuwan/faststock-backend/internal/config"
	"github.com/PanuLaosuwan/faststock-backend/internal/database"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Logger returns a logger that discards output.
func Logger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// Open returns a migrated in-memory database private to t. The single
// connection keeps every query on the same shared-cache database.
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_", "#", "_").Replace(t.Name())
	cfg := &config.Config{
		DatabaseDriver: "sqlite",
		DatabaseDSN:    "file:" + url.PathEscape(name) + "?mode=memory&cache=shared&_foreign_keys=on",
		DBMaxOpenConns: 1,
	}

	db, err := database.Open(cfg, Logger())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })

	if err := database.Migrate(db, Logger()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
