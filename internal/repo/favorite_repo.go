// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the favorites
// set (user ↔ recipe membership).
package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-recipe-backend/internal/domain"
)

// IsFavorite reports whether recipeID is in userID's favorites set.
func IsFavorite(ctx context.Context, db *gorm.DB, userID, recipeID string) (bool, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.Favorite{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&n).Error
	return n > 0, err
}

// AddFavorite inserts a membership row. A duplicate insert (concurrent toggle
// of the same pair) is absorbed by the unique index and treated as success,
// preserving set semantics.
func AddFavorite(ctx context.Context, db *gorm.DB, userID, recipeID string) error {
	f := &domain.Favorite{
		ID:        uuid.NewString(),
		UserID:    userID,
		RecipeID:  recipeID,
		CreatedAt: time.Now().UTC(),
	}
	err := db.WithContext(ctx).Create(f).Error
	if err != nil && isUniqueViolation(err) {
		return nil
	}
	return err
}

// RemoveFavorite deletes the membership row if present. Removing an absent
// pair is not an error.
func RemoveFavorite(ctx context.Context, db *gorm.DB, userID, recipeID string) error {
	return db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&domain.Favorite{}).Error
}

// ListFavoriteRecipes returns the fully resolved recipes in userID's
// favorites set, most recently favorited first, with authors joined the same
// way as GetRecipe.
func ListFavoriteRecipes(ctx context.Context, db *gorm.DB, userID string) ([]domain.Recipe, error) {
	var out []domain.Recipe
	err := withAuthors(db.WithContext(ctx)).
		Joins("JOIN favorites ON favorites.recipe_id = recipes.id").
		Where("favorites.user_id = ?", userID).
		Order("favorites.created_at DESC").
		Find(&out).Error
	return out, err
}

// isUniqueViolation detects unique-constraint violations across drivers that
// may not map to gorm.ErrDuplicatedKey.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key")
}
