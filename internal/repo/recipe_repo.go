// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Recipe
// aggregate: creation, filtered listing with pagination, single fetch with
// joined authors, field updates, and deletion.
//
// Error semantics:
//   - When a recipe is not found, functions return ErrNotFound
//     (alias of gorm.ErrRecordNotFound).
//   - On other DB errors the raw gorm error is propagated.
//
// Functions:
//
//   - CreateRecipe(ctx, db, r) -> error
//     Inserts a new recipe row with UUID primary key and UTC timestamp.
//
//   - GetRecipe(ctx, db, id) -> *domain.Recipe, error
//     Fetches a recipe with owner, ratings (and rater users), and comments
//     (and commenter users) preloaded.
//
//   - CountRecipes(ctx, db, f) -> (int64, error)
//     Returns the number of recipes matching the filter.
//
//   - ListRecipesPage(ctx, db, f, offset, limit) -> []domain.Recipe, error
//     Returns a filtered, paginated slice ordered by creation time descending,
//     with the same preloads as GetRecipe.
//
//   - UpdateRecipeFields(ctx, db, id, fields) -> error
//     Applies a column map to one recipe; ErrNotFound when no row matched.
//
//   - DeleteRecipe(ctx, db, id) -> error
//     Removes the recipe permanently; ratings, comments, and favorites rows
//     referencing it are removed by FK cascade.
//
// This repository is designed to be wrapped by a higher-level service
// (see services.RecipeService) which enforces validation and ownership rules.
package repo

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-recipe-backend/internal/domain"
)

// lowerLike lowercases a user-supplied substring and escapes the LIKE
// wildcards so "10%" matches literally instead of as a pattern.
func lowerLike(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	return strings.ReplaceAll(s, "_", `\_`)
}

// avgRatingSubquery is a correlated subquery usable in both COUNT and SELECT
// statements, so list results and totals always agree on the rating filter.
// COALESCE maps "no ratings" to 0, matching Recipe.AverageRating.
const avgRatingSubquery = "(SELECT COALESCE(AVG(ratings.value), 0) FROM ratings WHERE ratings.recipe_id = recipes.id)"

// applyFilter composes the WHERE clauses for a RecipeFilter onto q.
// Substring matches use LIKE with LOWER() on both sides; SQLite's LIKE is
// only case-insensitive for ASCII, and explicit lowering keeps the behavior
// portable across drivers.
func applyFilter(q *gorm.DB, f domain.RecipeFilter) *gorm.DB {
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Search != "" {
		q = q.Where(`LOWER(title) LIKE ? ESCAPE '\'`, "%"+lowerLike(f.Search)+"%")
	}
	if f.Ingredients != "" {
		q = q.Where(`LOWER(ingredients) LIKE ? ESCAPE '\'`, "%"+lowerLike(f.Ingredients)+"%")
	}
	if f.MaxCookingTime > 0 {
		q = q.Where("cooking_time <= ?", f.MaxCookingTime)
	}
	if f.MinRating > 0 {
		q = q.Where(avgRatingSubquery+" >= ?", f.MinRating)
	}
	return q
}

// withAuthors preloads the associations needed to render display names:
// the owner plus the user behind every rating and comment.
func withAuthors(q *gorm.DB) *gorm.DB {
	return q.
		Preload("Owner").
		Preload("Ratings.User").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		Preload("Comments.User")
}

// CreateRecipe inserts a new recipe row. The ID and CreatedAt are assigned
// here so callers construct only the content fields.
func CreateRecipe(ctx context.Context, db *gorm.DB, r *domain.Recipe) error {
	r.ID = uuid.NewString()
	r.CreatedAt = time.Now().UTC()
	return db.WithContext(ctx).Create(r).Error
}

// GetRecipe fetches a single recipe by ID with authors joined for display.
// Returns ErrNotFound when the recipe does not exist.
func GetRecipe(ctx context.Context, db *gorm.DB, id string) (*domain.Recipe, error) {
	var r domain.Recipe
	err := withAuthors(db.WithContext(ctx)).Where("id = ?", id).First(&r).Error
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// CountRecipes returns the total number of recipes matching the filter.
func CountRecipes(ctx context.Context, db *gorm.DB, f domain.RecipeFilter) (int64, error) {
	var total int64
	err := applyFilter(db.WithContext(ctx).Model(&domain.Recipe{}), f).Count(&total).Error
	return total, err
}

// ListRecipesPage returns a filtered page of recipes ordered by creation time
// descending (most recent first), with authors joined for display. The caller
// computes offset and limit (e.g., (page-1)*pageSize).
func ListRecipesPage(ctx context.Context, db *gorm.DB, f domain.RecipeFilter, offset, limit int) ([]domain.Recipe, error) {
	var out []domain.Recipe
	err := withAuthors(applyFilter(db.WithContext(ctx), f)).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// UpdateRecipeFields applies the given column map to the recipe identified by
// id. If no rows are affected (recipe missing), it returns ErrNotFound.
// Ownership is checked by the service layer before this is called.
func UpdateRecipeFields(ctx context.Context, db *gorm.DB, id string, fields map[string]any) error {
	res := db.WithContext(ctx).
		Model(&domain.Recipe{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteRecipe removes the recipe row permanently. Child ratings, comments,
// and favorites rows are removed by the schema's ON DELETE CASCADE, so no
// dangling references survive the delete.
func DeleteRecipe(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Recipe{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
