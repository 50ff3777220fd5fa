package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-recipe-backend/internal/domain"
	"github.com/tbourn/go-recipe-backend/internal/repo"
)

// newTestDB opens an isolated in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:services_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.Exec("PRAGMA foreign_keys=ON;")
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUserAndRecipe(t *testing.T, db *gorm.DB) (userID, recipeID string) {
	t.Helper()
	ctx := context.Background()
	u, err := repo.UpsertUser(ctx, db, "google", "g-"+uuid.NewString(), "Maria", "maria@example.com", "")
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	r := &domain.Recipe{
		OwnerID:      u.ID,
		Title:        "Spanakopita",
		Ingredients:  "spinach, filo",
		Instructions: "bake",
		Category:     "Dinner",
		CookingTime:  45,
	}
	if err := repo.CreateRecipe(ctx, db, r); err != nil {
		t.Fatalf("seed recipe: %v", err)
	}
	return u.ID, r.ID
}

func TestEngagementService_Rate(t *testing.T) {
	db := newTestDB(t)
	svc := &EngagementService{DB: db}
	ctx := context.Background()
	userID, recipeID := seedUserAndRecipe(t, db)

	for _, bad := range []int{0, -1, 6, 100} {
		if _, err := svc.Rate(ctx, userID, recipeID, bad); !errors.Is(err, ErrInvalidRating) {
			t.Errorf("value %d: err = %v, want ErrInvalidRating", bad, err)
		}
	}

	if _, err := svc.Rate(ctx, userID, "missing", 3); !errors.Is(err, ErrRecipeNotFound) {
		t.Errorf("missing recipe err = %v", err)
	}

	avg, err := svc.Rate(ctx, userID, recipeID, 2)
	if err != nil {
		t.Fatalf("rate: %v", err)
	}
	if avg != 2 {
		t.Errorf("avg = %v, want 2", avg)
	}

	// Re-rating replaces, so the average tracks the latest value.
	avg, err = svc.Rate(ctx, userID, recipeID, 5)
	if err != nil {
		t.Fatalf("re-rate: %v", err)
	}
	if avg != 5 {
		t.Errorf("avg after replace = %v, want 5", avg)
	}

	var n int64
	if err := db.Model(&domain.Rating{}).Where("recipe_id = ?", recipeID).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Errorf("rating rows = %d, want 1", n)
	}
}

func TestEngagementService_Rate_AverageAcrossUsers(t *testing.T) {
	db := newTestDB(t)
	svc := &EngagementService{DB: db}
	ctx := context.Background()
	_, recipeID := seedUserAndRecipe(t, db)

	values := []int{5, 4, 4}
	var avg float64
	for _, v := range values {
		u, err := repo.UpsertUser(ctx, db, "google", "g-"+uuid.NewString(), "Fan", "fan@example.com", "")
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
		if avg, err = svc.Rate(ctx, u.ID, recipeID, v); err != nil {
			t.Fatalf("rate: %v", err)
		}
	}
	if avg != 4.3 {
		t.Errorf("avg = %v, want 4.3", avg)
	}
}

func TestEngagementService_Comment(t *testing.T) {
	db := newTestDB(t)
	svc := &EngagementService{DB: db, MaxCommentRunes: 20}
	ctx := context.Background()
	userID, recipeID := seedUserAndRecipe(t, db)

	if _, err := svc.Comment(ctx, userID, recipeID, "   "); !errors.Is(err, ErrEmptyComment) {
		t.Errorf("blank err = %v", err)
	}
	if _, err := svc.Comment(ctx, userID, recipeID, strings.Repeat("x", 21)); !errors.Is(err, ErrCommentTooLong) {
		t.Errorf("oversized err = %v", err)
	}
	if _, err := svc.Comment(ctx, userID, "missing", "hello"); !errors.Is(err, ErrRecipeNotFound) {
		t.Errorf("missing recipe err = %v", err)
	}

	thread, err := svc.Comment(ctx, userID, recipeID, "  Wonderful  ")
	if err != nil {
		t.Fatalf("comment: %v", err)
	}
	if len(thread) != 1 {
		t.Fatalf("thread = %d, want 1", len(thread))
	}
	if thread[0].Body != "Wonderful" {
		t.Errorf("body not trimmed: %q", thread[0].Body)
	}
	if thread[0].User == nil || thread[0].User.Name != "Maria" {
		t.Errorf("author not joined: %+v", thread[0].User)
	}

	// Rune cap, not byte cap: 20 two-byte runes must pass.
	if _, err := svc.Comment(ctx, userID, recipeID, strings.Repeat("ё", 20)); err != nil {
		t.Errorf("20 multibyte runes rejected: %v", err)
	}
}
