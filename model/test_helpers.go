package model

import (
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// OpenTestDB opens an in-memory SQLite database private to the calling test,
// migrates the given models and fails the test on any error. The database is
// named after the test so GORM's pooled connections all see the same data.
func OpenTestDB(t *testing.T, models ...interface{}) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open sqlite in-memory DB: %v", err)
	}

	if err := db.AutoMigrate(models...); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	return db
}
