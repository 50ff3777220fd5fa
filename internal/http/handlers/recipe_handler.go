// Recipe HTTP handlers.
//
// This file exposes REST endpoints for recipe resources:
//   - POST   /recipes        (create, multipart with optional image)
//   - GET    /recipes        (list, filtered + paginated, ETag support)
//   - GET    /recipes/:id    (fetch one)
//   - PUT    /recipes/:id    (update, owner only)
//   - DELETE /recipes/:id    (delete, owner only)
//
// Handlers are transport-thin: they validate input, call application
// services, and translate results into HTTP responses.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-recipe-backend/internal/domain"
	"github.com/tbourn/go-recipe-backend/internal/http/middleware"
	"github.com/tbourn/go-recipe-backend/internal/repo"
	"github.com/tbourn/go-recipe-backend/internal/services"
	"github.com/tbourn/go-recipe-backend/internal/upload"
	"github.com/tbourn/go-recipe-backend/internal/utils"
)

//
// Service contracts (context-aware)
//

// RecipeService defines recipe lifecycle operations consumed by HTTP
// handlers. Implementations must honor the provided context.
type RecipeService interface {
	// Create validates and persists a new recipe owned by ownerID.
	Create(ctx context.Context, ownerID string, in services.CreateRecipeInput) (*domain.Recipe, error)
	// Get fetches one recipe with authors joined.
	Get(ctx context.Context, id string) (*domain.Recipe, error)
	// ListPage returns a filtered page of recipes and the total match count.
	ListPage(ctx context.Context, f domain.RecipeFilter, page, pageSize int) ([]domain.Recipe, int64, error)
	// Update applies merge-semantics changes to a recipe owned by userID.
	Update(ctx context.Context, userID, id string, in services.UpdateRecipeInput) (*domain.Recipe, error)
	// Delete removes a recipe owned by userID together with its children.
	Delete(ctx context.Context, userID, id string) error
}

// EngagementService defines rating and comment operations.
type EngagementService interface {
	// Rate records or replaces userID's rating and returns the new average.
	Rate(ctx context.Context, userID, recipeID string, value int) (float64, error)
	// Comment appends a comment and returns the recipe's full thread.
	Comment(ctx context.Context, userID, recipeID, body string) ([]domain.Comment, error)
}

// FavoriteService defines per-user favorite operations.
type FavoriteService interface {
	// Toggle flips the favorite mark and reports the resulting state.
	Toggle(ctx context.Context, userID, recipeID string) (bool, error)
	// List returns the user's favorite recipes, most recently added first.
	List(ctx context.Context, userID string) ([]domain.Recipe, error)
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints for recipes, engagement and favorites.
// It depends on abstract service interfaces to keep transport concerns
// separate from business logic.
type Handlers struct {
	recipeSvc RecipeService
	engSvc    EngagementService
	favSvc    FavoriteService
	images    upload.ImageStore

	// IdemTTL bounds how long a stored Idempotency-Key keeps matching
	// retries of rating/comment submissions. Zero selects a 24h default.
	IdemTTL time.Duration
}

// New constructs a Handlers instance bound to the given services. images may
// be nil, in which case uploads are rejected.
func New(recipeSvc RecipeService, engSvc EngagementService, favSvc FavoriteService, images upload.ImageStore) *Handlers {
	return &Handlers{
		recipeSvc: recipeSvc,
		engSvc:    engSvc,
		favSvc:    favSvc,
		images:    images,
	}
}

//
// Helpers
//

// clampPagination parses and bounds page and limit query params.
func clampPagination(c *gin.Context) (page, limit int) {
	const (
		defaultPage  = 1
		defaultLimit = 10
		maxLimit     = 100
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	limit = utils.AtoiDefault(c.Query("limit"), defaultLimit)
	if limit < 1 {
		limit = 1
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return
}

// recipeForm is the multipart (or JSON) payload for create and update.
type recipeForm struct {
	Title        string `form:"title" json:"title"`
	Ingredients  string `form:"ingredients" json:"ingredients"`
	Instructions string `form:"instructions" json:"instructions"`
	Category     string `form:"category" json:"category"`
	CookingTime  string `form:"cookingTime" json:"cookingTime"`
}

// bindRecipeForm accepts either multipart/form-data (the browser upload
// path) or a JSON body. Invalid cookingTime values parse as 0.
func bindRecipeForm(c *gin.Context) (recipeForm, bool) {
	var f recipeForm
	ct := c.ContentType()
	if strings.HasPrefix(ct, "multipart/form-data") || ct == "application/x-www-form-urlencoded" {
		if err := c.ShouldBind(&f); err != nil {
			return f, false
		}
		return f, true
	}
	if err := c.ShouldBindJSON(&f); err != nil {
		return f, false
	}
	return f, true
}

// saveUploadedImage stores an attached "image" file if present, returning
// its public URL. No file attached is not an error.
func (h *Handlers) saveUploadedImage(c *gin.Context) (string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		// http.ErrMissingFile and non-multipart bodies both mean "no image".
		return "", nil
	}
	if h.images == nil {
		return "", errors.New("image uploads are not configured")
	}
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()
	return h.images.Save(file.Filename, src)
}

// failService maps service errors onto the HTTP error taxonomy.
func failService(c *gin.Context, err error) {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		fail(c, http.StatusBadRequest, ErrCodeValidation, ve.Error())
	case errors.Is(err, services.ErrRecipeNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "recipe not found")
	case errors.Is(err, services.ErrForbidden):
		fail(c, http.StatusForbidden, ErrCodeForbidden, "not the recipe owner")
	case errors.Is(err, services.ErrInvalidRating):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "rating must be an integer between 1 and 5")
	case errors.Is(err, services.ErrEmptyComment):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "comment must not be empty")
	case errors.Is(err, services.ErrCommentTooLong):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "comment is too long")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	}
}

//
// Handlers
//

// CreateRecipe godoc
// @ID          createRecipe
// @Summary     Create a recipe
// @Description Creates a recipe owned by the signed-in user. Accepts multipart form data with an optional image file.
// @Tags        Recipes
// @Accept      mpfd
// @Produce     json
//
// @Param       title        formData  string  true  "Recipe title"
// @Param       ingredients  formData  string  true  "Ingredients, free text"
// @Param       instructions formData  string  true  "Preparation steps"
// @Param       category     formData  string  true  "Category name"
// @Param       cookingTime  formData  int     false "Cooking time in minutes"
// @Param       image        formData  file    false "Recipe photo (jpg or png)"
//
// @Success     201  {object}  handlers.RecipeView
// @Failure     400  {object}  handlers.ErrorResponse "Validation failed"
// @Failure     401  {object}  handlers.ErrorResponse "No session"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /recipes [post]
func (h *Handlers) CreateRecipe(c *gin.Context) {
	form, bound := bindRecipeForm(c)
	if !bound {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid request body")
		return
	}

	imageURL, err := h.saveUploadedImage(c)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeUploadFailed, err.Error())
		return
	}

	rec, err := h.recipeSvc.Create(c.Request.Context(), middleware.UserID(c), services.CreateRecipeInput{
		Title:        form.Title,
		Ingredients:  form.Ingredients,
		Instructions: form.Instructions,
		Category:     form.Category,
		CookingTime:  utils.AtoiDefault(form.CookingTime, 0),
		ImageURL:     imageURL,
	})
	if err != nil {
		failService(c, err)
		return
	}

	middleware.LoggerFrom(c).Info().Str("recipe_id", rec.ID).Msg("recipe created")
	ok(c, http.StatusCreated, gin.H{
		"message": "Recipe added successfully",
		"recipe":  newRecipeView(rec),
	})
}

// ListRecipes godoc
// @ID          listRecipes
// @Summary     List recipes (filtered, paginated)
// @Description Returns a page of recipes, newest first. Supports category, title, ingredient, cooking-time and average-rating filters, plus weak ETag revalidation.
// @Tags        Recipes
// @Produce     json
//
// @Param       category     query   string  false "Exact category match"
// @Param       search       query   string  false "Case-insensitive title substring"
// @Param       ingredients  query   string  false "Case-insensitive ingredient substring"
// @Param       cookingTime  query   int     false "Maximum cooking time in minutes"
// @Param       rating       query   number  false "Minimum average rating (0-5)"
// @Param       page         query   int     false "Page number"      minimum(1) default(1)
// @Param       limit        query   int     false "Items per page"   minimum(1) maximum(100) default(10)
// @Param       If-None-Match header string  false "Return 304 if ETag matches"
//
// @Success     200  {object} handlers.ListRecipesResponse
// @Header      200  {string} ETag "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /recipes [get]
func (h *Handlers) ListRecipes(c *gin.Context) {
	ctx := c.Request.Context()
	page, limit := clampPagination(c)

	filter := domain.RecipeFilter{
		Category:       c.Query("category"),
		Search:         c.Query("search"),
		Ingredients:    c.Query("ingredients"),
		MaxCookingTime: utils.AtoiDefault(c.Query("cookingTime"), 0),
		MinRating:      utils.AtofDefault(c.Query("rating"), 0),
	}

	// ETag pre-check (best effort): the tag covers the whole collection and
	// tracks recipe, rating, and comment writes, all of which the list
	// payload can observe.
	if svc, isConcrete := h.recipeSvc.(*services.RecipeService); isConcrete && svc.DB != nil {
		if count, maxTS, err := repo.RecipesStats(ctx, svc.DB); err == nil {
			var ts int64
			if maxTS != nil {
				ts = maxTS.UnixNano()
			}
			etag := fmt.Sprintf(`W/"recipes:%d:%d"`, count, ts)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	items, total, err := h.recipeSvc.ListPage(ctx, filter, page, limit)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}

	ok(c, http.StatusOK, ListRecipesResponse{
		Recipes: recipeViews(items),
		Pagination: Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: utils.PageCount(total, limit),
		},
	})
}

// GetRecipe godoc
// @ID          getRecipe
// @Summary     Fetch one recipe
// @Description Returns a recipe with its author, ratings and comment thread.
// @Tags        Recipes
// @Produce     json
//
// @Param       id  path  string  true  "Recipe ID (UUID)"  format(uuid)
//
// @Success     200  {object} handlers.RecipeView
// @Failure     404  {object} handlers.ErrorResponse "Recipe not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /recipes/{id} [get]
func (h *Handlers) GetRecipe(c *gin.Context) {
	rec, err := h.recipeSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, newRecipeView(rec))
}

// UpdateRecipe godoc
// @ID          updateRecipe
// @Summary     Update a recipe
// @Description Applies partial changes to a recipe owned by the signed-in user. Blank fields keep their previous values; a new image replaces the stored one.
// @Tags        Recipes
// @Accept      mpfd
// @Produce     json
//
// @Param       id           path      string  true  "Recipe ID (UUID)"  format(uuid)
// @Param       title        formData  string  false "Recipe title"
// @Param       ingredients  formData  string  false "Ingredients, free text"
// @Param       instructions formData  string  false "Preparation steps"
// @Param       category     formData  string  false "Category name"
// @Param       cookingTime  formData  int     false "Cooking time in minutes"
// @Param       image        formData  file    false "Replacement photo"
//
// @Success     200  {object} handlers.RecipeView
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     403  {object} handlers.ErrorResponse "Not the owner"
// @Failure     404  {object} handlers.ErrorResponse "Recipe not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /recipes/{id} [put]
func (h *Handlers) UpdateRecipe(c *gin.Context) {
	form, bound := bindRecipeForm(c)
	if !bound {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid request body")
		return
	}

	imageURL, err := h.saveUploadedImage(c)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeUploadFailed, err.Error())
		return
	}

	rec, err := h.recipeSvc.Update(c.Request.Context(), middleware.UserID(c), c.Param("id"), services.UpdateRecipeInput{
		Title:        form.Title,
		Ingredients:  form.Ingredients,
		Instructions: form.Instructions,
		Category:     form.Category,
		CookingTime:  utils.AtoiDefault(form.CookingTime, 0),
		ImageURL:     imageURL,
	})
	if err != nil {
		failService(c, err)
		return
	}

	ok(c, http.StatusOK, gin.H{
		"message": "Recipe updated successfully",
		"recipe":  newRecipeView(rec),
	})
}

// DeleteRecipe godoc
// @ID          deleteRecipe
// @Summary     Delete a recipe
// @Description Permanently removes a recipe owned by the signed-in user, including its ratings, comments and favorite marks.
// @Tags        Recipes
// @Produce     json
//
// @Param       id  path  string  true  "Recipe ID (UUID)"  format(uuid)
//
// @Success     200  {object} map[string]string
// @Failure     403  {object} handlers.ErrorResponse "Not the owner"
// @Failure     404  {object} handlers.ErrorResponse "Recipe not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /recipes/{id} [delete]
func (h *Handlers) DeleteRecipe(c *gin.Context) {
	if err := h.recipeSvc.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"message": "Recipe deleted successfully"})
}
