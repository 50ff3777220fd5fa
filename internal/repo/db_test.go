package repo

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-recipe-backend/internal/domain"
)

// newRepoDB opens a fresh in-memory database with the full schema and FK
// enforcement, isolated per test via a unique shared-cache DSN.
func newRepoDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:repo_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.Exec("PRAGMA foreign_keys=ON;")
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// seedUser inserts a user directly, bypassing the provider upsert.
func seedUser(t *testing.T, db *gorm.DB, name string) *domain.User {
	t.Helper()
	u := &domain.User{
		ID:         uuid.NewString(),
		Provider:   "google",
		ProviderID: "g-" + uuid.NewString(),
		Name:       name,
		Email:      name + "@example.com",
		CreatedAt:  time.Now().UTC(),
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

// seedRecipe inserts a recipe through the repository.
func seedRecipe(t *testing.T, db *gorm.DB, owner *domain.User, title, category string, cookingTime int) *domain.Recipe {
	t.Helper()
	r := &domain.Recipe{
		OwnerID:      owner.ID,
		Title:        title,
		Ingredients:  "salt, pepper",
		Instructions: "cook it",
		Category:     category,
		CookingTime:  cookingTime,
	}
	if err := CreateRecipe(context.Background(), db, r); err != nil {
		t.Fatalf("seed recipe: %v", err)
	}
	return r
}

func TestOpenSQLite_PragmasAndMissingDir(t *testing.T) {
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "recipes.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}

	var journal string
	if err := db.Raw("PRAGMA journal_mode;").Scan(&journal).Error; err != nil {
		t.Fatalf("journal_mode: %v", err)
	}
	if journal != "wal" {
		t.Errorf("journal_mode = %q, want wal", journal)
	}

	var fk int
	if err := db.Raw("PRAGMA foreign_keys;").Scan(&fk).Error; err != nil {
		t.Fatalf("foreign_keys: %v", err)
	}
	if fk != 1 {
		t.Errorf("foreign_keys = %d, want 1", fk)
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	if _, err := OpenSQLite("/definitely/not/a/dir/recipes.db"); err == nil {
		t.Error("expected error for missing parent directory")
	}
}

func TestAutoMigrate_Idempotent(t *testing.T) {
	db := newRepoDB(t)
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("second AutoMigrate: %v", err)
	}
}
