// Package services – EngagementService
//
// This file implements the EngagementService, which governs how authenticated
// users rate and comment on recipes. Rating submission follows replace
// semantics: a user's new rating displaces their previous one, never
// duplicating it, and the mutation is a targeted row operation inside a
// transaction rather than a whole-aggregate rewrite. Comments are append-only.
//
// Service-level errors (ErrInvalidRating, ErrEmptyComment, ErrCommentTooLong,
// ErrRecipeNotFound) are returned for predictable cases so handlers can map
// them to HTTP results consistently.
package services

import (
	"context"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbourn/go-recipe-backend/internal/domain"
	"github.com/tbourn/go-recipe-backend/internal/repo"
)

// EngagementService implements the rating and comment use-cases. It is
// context-aware and safe for concurrent use; each call manages its own
// transaction scope through the repository.
type EngagementService struct {
	// DB is the database handle used for all rating/comment operations.
	DB *gorm.DB

	// MaxCommentRunes caps comment length; <= 0 disables the guard.
	MaxCommentRunes int
}

// Rate records value as userID's rating for recipeID, replacing any previous
// rating by the same user, and returns the recomputed average.
//
// Semantics and validation:
//   - value must be in [1,5]; otherwise ErrInvalidRating.
//   - recipeID must exist; otherwise ErrRecipeNotFound.
//   - Repeated submissions from one user keep the recipe's rating count
//     constant (replace, never duplicate).
func (s *EngagementService) Rate(ctx context.Context, userID, recipeID string, value int) (float64, error) {
	tr := otel.Tracer("services/EngagementService")
	ctx, span := tr.Start(ctx, "Rate",
		trace.WithAttributes(
			attribute.String("recipe.id", recipeID),
			attribute.String("user.id", userID),
			attribute.Int("rating", value),
		),
	)
	defer span.End()

	if value < 1 || value > 5 {
		return 0, ErrInvalidRating
	}
	if err := s.ensureRecipe(ctx, recipeID); err != nil {
		return 0, err
	}
	if err := repo.ReplaceRating(ctx, s.DB, recipeID, userID, value); err != nil {
		return 0, err
	}
	return repo.RecipeAverage(ctx, s.DB, recipeID)
}

// Comment appends an immutable comment by userID to recipeID and returns the
// recipe's full comment collection with authors joined.
//
// Semantics and validation:
//   - body must be non-empty after trimming; otherwise ErrEmptyComment.
//   - body must fit MaxCommentRunes when set; otherwise ErrCommentTooLong.
//   - recipeID must exist; otherwise ErrRecipeNotFound.
func (s *EngagementService) Comment(ctx context.Context, userID, recipeID, body string) ([]domain.Comment, error) {
	tr := otel.Tracer("services/EngagementService")
	ctx, span := tr.Start(ctx, "Comment",
		trace.WithAttributes(
			attribute.String("recipe.id", recipeID),
			attribute.String("user.id", userID),
		),
	)
	defer span.End()

	body = strings.TrimSpace(body)
	if body == "" {
		return nil, ErrEmptyComment
	}
	if s.MaxCommentRunes > 0 && utf8.RuneCountInString(body) > s.MaxCommentRunes {
		return nil, ErrCommentTooLong
	}
	if err := s.ensureRecipe(ctx, recipeID); err != nil {
		return nil, err
	}
	if _, err := repo.AppendComment(ctx, s.DB, recipeID, userID, body); err != nil {
		return nil, err
	}
	return repo.ListComments(ctx, s.DB, recipeID)
}

// ensureRecipe verifies the recipe row exists without loading the aggregate.
func (s *EngagementService) ensureRecipe(ctx context.Context, recipeID string) error {
	var n int64
	if err := s.DB.WithContext(ctx).
		Model(&domain.Recipe{}).
		Where("id = ?", recipeID).
		Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return ErrRecipeNotFound
	}
	return nil
}
