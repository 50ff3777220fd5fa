// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides small aggregate/statistics queries used
// primarily for conditional responses (ETag generation) in the HTTP layer.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-recipe-backend/internal/domain"
)

// RecipesStats returns the total number of recipes and the latest write
// timestamp across recipes, ratings, and comments. List payloads embed
// averageRating and comment threads, so engagement writes must move the
// freshness signal too, not only edits to recipe rows; together the pair
// changes on every mutation a cached list could observe. When there are no
// recipes, count is 0 and maxUpdatedAt is nil.
func RecipesStats(ctx context.Context, db *gorm.DB) (count int64, maxUpdatedAt *time.Time, err error) {
	if err = db.WithContext(ctx).Model(&domain.Recipe{}).Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Latest timestamps via ORDER BY + LIMIT (avoid MAX() -> TEXT in SQLite).
	// Ratings carry updated_at (replace rewrites the row); comments are
	// append-only so created_at is their write time.
	sources := []struct {
		model  any
		column string
	}{
		{&domain.Recipe{}, "updated_at"},
		{&domain.Rating{}, "updated_at"},
		{&domain.Comment{}, "created_at"},
	}
	for _, src := range sources {
		var row struct {
			TS *time.Time
		}
		err = db.WithContext(ctx).Model(src.model).
			Select(src.column + " AS ts").
			Order(src.column + " DESC").
			Limit(1).
			Scan(&row).Error
		if err != nil {
			return 0, nil, err
		}
		if row.TS != nil && (maxUpdatedAt == nil || row.TS.After(*maxUpdatedAt)) {
			maxUpdatedAt = row.TS
		}
	}
	return count, maxUpdatedAt, nil
}
