// Package services – RecipeService
//
// This file implements the RecipeService, which manages the lifecycle of the
// recipe aggregate. It validates and normalizes content fields, enforces
// ownership rules, and coordinates repository operations for creating,
// listing (filtered and paginated), fetching, updating, and deleting recipes.
//
// Service-level errors (e.g., ErrRecipeNotFound, ErrForbidden, and field-level
// *ValidationError values) are returned for predictable cases so handlers can
// map them to HTTP results consistently.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tbourn/go-recipe-backend/internal/domain"
)

// RecipeRepo defines the repository contract required by RecipeService.
// Implementations are responsible for persistence of the recipe aggregate.
type RecipeRepo interface {
	// CreateRecipe inserts a new recipe row, assigning ID and CreatedAt.
	CreateRecipe(ctx context.Context, db *gorm.DB, r *domain.Recipe) error

	// GetRecipe fetches a recipe by ID with authors joined for display.
	GetRecipe(ctx context.Context, db *gorm.DB, id string) (*domain.Recipe, error)

	// CountRecipes returns the total matching a filter, for pagination.
	CountRecipes(ctx context.Context, db *gorm.DB, f domain.RecipeFilter) (int64, error)

	// ListRecipesPage returns a filtered page ordered newest-first.
	ListRecipesPage(ctx context.Context, db *gorm.DB, f domain.RecipeFilter, offset, limit int) ([]domain.Recipe, error)

	// UpdateRecipeFields applies a column map to one recipe.
	UpdateRecipeFields(ctx context.Context, db *gorm.DB, id string, fields map[string]any) error

	// DeleteRecipe removes a recipe permanently (children cascade).
	DeleteRecipe(ctx context.Context, db *gorm.DB, id string) error
}

// CreateRecipeInput carries the caller-supplied fields for recipe creation.
// CookingTime has already been parsed by the transport layer (invalid or
// absent values arrive as 0). ImageURL is assigned by the image store and is
// empty when no file was uploaded.
type CreateRecipeInput struct {
	Title        string
	Ingredients  string
	Instructions string
	Category     string
	CookingTime  int
	ImageURL     string
}

// UpdateRecipeInput carries the caller-supplied fields for recipe update.
// Updates use merge semantics: blank text fields and a zero CookingTime keep
// their previous values, and ImageURL only replaces the stored reference when
// a new upload produced one.
type UpdateRecipeInput struct {
	Title        string
	Ingredients  string
	Instructions string
	Category     string
	CookingTime  int
	ImageURL     string
}

// RecipeService provides recipe-level operations. It enforces content
// validation and ownership constraints on top of the repository.
type RecipeService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the recipe repository used by this service.
	Repo RecipeRepo

	// DefaultPageSize is used when the caller supplies no page size.
	DefaultPageSize int
	// MaxPageSize caps the page size accepted from callers.
	MaxPageSize int

	// categoryCaser canonicalizes category display casing.
	categoryCaser cases.Caser
}

// NewRecipeService constructs a RecipeService with the pagination defaults
// from the query contract (page size 10, capped at 100).
func NewRecipeService(db *gorm.DB, r RecipeRepo) *RecipeService {
	return &RecipeService{
		DB:              db,
		Repo:            r,
		DefaultPageSize: 10,
		MaxPageSize:     100,
		categoryCaser:   cases.Title(language.English, cases.NoLower),
	}
}

// Create validates and persists a new recipe owned by ownerID.
// Text fields are trimmed; each missing required field yields a field-level
// *ValidationError before anything touches the database. Negative cooking
// times are clamped to 0.
func (s *RecipeService) Create(ctx context.Context, ownerID string, in CreateRecipeInput) (*domain.Recipe, error) {
	title := strings.TrimSpace(in.Title)
	ingredients := strings.TrimSpace(in.Ingredients)
	instructions := strings.TrimSpace(in.Instructions)
	category := strings.TrimSpace(in.Category)

	switch {
	case title == "":
		return nil, &ValidationError{Field: "title"}
	case ingredients == "":
		return nil, &ValidationError{Field: "ingredients"}
	case instructions == "":
		return nil, &ValidationError{Field: "instructions"}
	case category == "":
		return nil, &ValidationError{Field: "category"}
	}

	cookingTime := in.CookingTime
	if cookingTime < 0 {
		cookingTime = 0
	}

	r := &domain.Recipe{
		OwnerID:      ownerID,
		Title:        title,
		Ingredients:  ingredients,
		Instructions: instructions,
		Category:     s.categoryCaser.String(category),
		CookingTime:  cookingTime,
		ImageURL:     in.ImageURL,
	}
	if err := s.Repo.CreateRecipe(ctx, s.DB, r); err != nil {
		return nil, err
	}
	return r, nil
}

// Get returns the recipe with authors joined, or ErrRecipeNotFound.
func (s *RecipeService) Get(ctx context.Context, id string) (*domain.Recipe, error) {
	r, err := s.Repo.GetRecipe(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return r, nil
}

// ListPage returns a filtered page of recipes plus the total matching count.
// It applies defaults for invalid page/pageSize values.
func (s *RecipeService) ListPage(ctx context.Context, f domain.RecipeFilter, page, pageSize int) ([]domain.Recipe, int64, error) {
	tr := otel.Tracer("services/RecipeService")
	ctx, span := tr.Start(ctx, "ListPage",
		trace.WithAttributes(
			attribute.String("filter.category", f.Category),
			attribute.Int("page", page),
			attribute.Int("page_size", pageSize),
		),
	)
	defer span.End()

	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = s.DefaultPageSize
	}
	if s.MaxPageSize > 0 && pageSize > s.MaxPageSize {
		pageSize = s.MaxPageSize
	}
	offset := (page - 1) * pageSize

	total, err := s.Repo.CountRecipes(ctx, s.DB, f)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Recipe{}, 0, nil
	}

	items, err := s.Repo.ListRecipesPage(ctx, s.DB, f, offset, pageSize)
	return items, total, err
}

// Update applies merge-semantics changes to a recipe owned by userID.
// It returns ErrRecipeNotFound when the id is unknown and ErrForbidden when
// the caller is not the owner; on success it returns the updated recipe with
// authors joined. A rejected update applies none of its changes.
func (s *RecipeService) Update(ctx context.Context, userID, id string, in UpdateRecipeInput) (*domain.Recipe, error) {
	current, err := s.Repo.GetRecipe(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	if current.OwnerID != userID {
		return nil, ErrForbidden
	}

	fields := map[string]any{}
	if v := strings.TrimSpace(in.Title); v != "" {
		fields["title"] = v
	}
	if v := strings.TrimSpace(in.Ingredients); v != "" {
		fields["ingredients"] = v
	}
	if v := strings.TrimSpace(in.Instructions); v != "" {
		fields["instructions"] = v
	}
	if v := strings.TrimSpace(in.Category); v != "" {
		fields["category"] = s.categoryCaser.String(v)
	}
	if in.CookingTime > 0 {
		fields["cooking_time"] = in.CookingTime
	}
	if in.ImageURL != "" {
		fields["image_url"] = in.ImageURL
	}
	if len(fields) > 0 {
		if err := s.Repo.UpdateRecipeFields(ctx, s.DB, id, fields); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrRecipeNotFound
			}
			return nil, err
		}
	}

	return s.Get(ctx, id)
}

// Delete removes a recipe owned by userID permanently. Child ratings,
// comments, and favorites references go with it.
func (s *RecipeService) Delete(ctx context.Context, userID, id string) error {
	current, err := s.Repo.GetRecipe(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRecipeNotFound
		}
		return err
	}
	if current.OwnerID != userID {
		return ErrForbidden
	}
	if err := s.Repo.DeleteRecipe(ctx, s.DB, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRecipeNotFound
		}
		return err
	}
	return nil
}
