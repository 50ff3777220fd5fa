// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Rating
// model.
//
// The embedded-array mutation of the original design (filter out the caller's
// old entry, push the new one, rewrite the whole document) is replaced here by
// a targeted delete-and-insert inside one transaction. Concurrent submissions
// from different users touch different rows and cannot lose each other's
// updates; concurrent submissions from the same user serialize on the unique
// (recipe_id, user_id) index.
package repo

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-recipe-backend/internal/domain"
)

// ReplaceRating removes any existing rating by userID for recipeID and inserts
// the new value, atomically. Value range validation is performed by the
// service layer.
func ReplaceRating(ctx context.Context, db *gorm.DB, recipeID, userID string, value int) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ? AND user_id = ?", recipeID, userID).
			Delete(&domain.Rating{}).Error; err != nil {
			return err
		}
		r := &domain.Rating{
			ID:        uuid.NewString(),
			RecipeID:  recipeID,
			UserID:    userID,
			Value:     value,
			CreatedAt: time.Now().UTC(),
		}
		return tx.Create(r).Error
	})
}

// RecipeAverage returns the mean rating for a recipe rounded to one decimal
// place, or 0 when the recipe has no ratings.
func RecipeAverage(ctx context.Context, db *gorm.DB, recipeID string) (float64, error) {
	var row struct {
		Avg float64
	}
	err := db.WithContext(ctx).
		Model(&domain.Rating{}).
		Select("COALESCE(AVG(value), 0) AS avg").
		Where("recipe_id = ?", recipeID).
		Scan(&row).Error
	if err != nil {
		return 0, err
	}
	return math.Round(row.Avg*10) / 10, nil
}
