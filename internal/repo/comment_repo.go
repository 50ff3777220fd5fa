// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Comment
// model. Comments are append-only: there is no update or delete operation.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-recipe-backend/internal/domain"
)

// AppendComment inserts a comment row for the given recipe and author with
// the current UTC timestamp. Body validation happens in the service layer.
func AppendComment(ctx context.Context, db *gorm.DB, recipeID, userID, body string) (*domain.Comment, error) {
	c := &domain.Comment{
		ID:        uuid.NewString(),
		RecipeID:  recipeID,
		UserID:    userID,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

// ListComments returns all comments for a recipe in insertion order with the
// authoring user preloaded for display names.
func ListComments(ctx context.Context, db *gorm.DB, recipeID string) ([]domain.Comment, error) {
	var out []domain.Comment
	err := db.WithContext(ctx).
		Preload("User").
		Where("recipe_id = ?", recipeID).
		Order("created_at ASC, id ASC").
		Find(&out).Error
	return out, err
}
