// Package services – FavoriteService
//
// This file implements the FavoriteService, which maintains each user's
// favorites set. Toggling checks membership and flips it; listing resolves
// the set to full recipes. Unlike the original design, Toggle verifies that
// the referenced recipe exists before adding it, so the set can never
// accumulate dangling references.
package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-recipe-backend/internal/domain"
	"github.com/tbourn/go-recipe-backend/internal/repo"
)

// FavoriteService implements the favorites use-cases on top of the favorites
// repository. It is context-aware and safe for concurrent use.
type FavoriteService struct {
	// DB is the database handle used for all favorites operations.
	DB *gorm.DB
}

// Toggle flips recipeID's membership in userID's favorites set and returns
// the new membership state (true when the recipe is now a favorite).
// It returns ErrRecipeNotFound when the recipe does not exist.
func (s *FavoriteService) Toggle(ctx context.Context, userID, recipeID string) (bool, error) {
	var n int64
	if err := s.DB.WithContext(ctx).
		Model(&domain.Recipe{}).
		Where("id = ?", recipeID).
		Count(&n).Error; err != nil {
		return false, err
	}
	if n == 0 {
		return false, ErrRecipeNotFound
	}

	isFav, err := repo.IsFavorite(ctx, s.DB, userID, recipeID)
	if err != nil {
		return false, err
	}
	if isFav {
		if err := repo.RemoveFavorite(ctx, s.DB, userID, recipeID); err != nil {
			return false, err
		}
		return false, nil
	}
	if err := repo.AddFavorite(ctx, s.DB, userID, recipeID); err != nil {
		return false, err
	}
	return true, nil
}

// List returns the fully resolved recipes in userID's favorites set, most
// recently favorited first.
func (s *FavoriteService) List(ctx context.Context, userID string) ([]domain.Recipe, error) {
	return repo.ListFavoriteRecipes(ctx, s.DB, userID)
}
