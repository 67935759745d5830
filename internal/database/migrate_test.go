package database_test

import (
	"testing"

	"github.com/PanuLaosuwan/faststock-backend/internal/database"
	"github.com/PanuLaosuwan/faststock-backend/internal/models"
	"github.com/PanuLaosuwan/faststock-backend/internal/testdb"
)

func TestMigrateCreatesSchemaOnce(t *testing.T) {
	db := testdb.Open(t)

	for _, table := range []string{"users", "event", "product", "bar", "stock", "prestock", "lost", "audit_logs"} {
		if !db.Migrator().HasTable(table) {
			t.Errorf("table %s missing", table)
		}
	}

	// second run is a no-op
	if err := database.Migrate(db, testdb.Logger()); err != nil {
		t.Fatalf("re-run Migrate: %v", err)
	}

	var rows []models.SchemaMigration
	if err := db.Order("version").Find(&rows).Error; err != nil {
		t.Fatalf("read schema_migrations: %v", err)
	}
	if len(rows) != database.LatestVersion() {
		t.Fatalf("recorded %d migrations, want %d", len(rows), database.LatestVersion())
	}
	for i, r := range rows {
		if r.Version != i+1 || r.Name == "" {
			t.Errorf("row %d = %+v", i, r)
		}
	}
}

func TestStockForeignKeysEnforced(t *testing.T) {
	db := testdb.Open(t)

	err := db.Exec("INSERT INTO stock (bcode, sdate, pid, start_quantity, end_quantity) VALUES ('NOPE', '2024-05-01', 99, 1, 1)").Error
	if err == nil {
		t.Fatal("insert with unknown bar/product succeeded")
	}
}
