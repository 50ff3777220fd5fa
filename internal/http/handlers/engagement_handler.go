// Engagement HTTP handlers: ratings, comments and favorites.
//
//   - POST /recipes/:id/rating    (rate 1-5, replaces a previous rating)
//   - POST /recipes/:id/comment   (append a comment)
//   - POST /recipes/:id/favorite  (toggle favorite)
//   - GET  /recipes/favorites     (list the user's favorites)
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tbourn/go-recipe-backend/internal/http/middleware"
	"github.com/tbourn/go-recipe-backend/internal/repo"
	"github.com/tbourn/go-recipe-backend/internal/services"
)

// defaultIdemTTL applies when Handlers.IdemTTL is unset.
const defaultIdemTTL = 24 * time.Hour

// engagementDB exposes the concrete engagement service's handle for
// idempotency reads and writes; nil when another implementation is injected.
func (h *Handlers) engagementDB() *gorm.DB {
	if svc, okSvc := h.engSvc.(*services.EngagementService); okSvc {
		return svc.DB
	}
	return nil
}

func (h *Handlers) idemTTL() time.Duration {
	if h.IdemTTL > 0 {
		return h.IdemTTL
	}
	return defaultIdemTTL
}

// RateRecipeRequest is the JSON payload for rating a recipe.
type RateRecipeRequest struct {
	// Rating is the star value, 1 through 5.
	Rating int `json:"rating" binding:"required" example:"4"`
}

// CommentRecipeRequest is the JSON payload for commenting on a recipe.
type CommentRecipeRequest struct {
	Comment string `json:"comment" binding:"required" example:"Worked great with feta instead."`
}

// RateRecipe godoc
// @ID          rateRecipe
// @Summary     Rate a recipe
// @Description Records the signed-in user's rating, replacing any previous one. Returns the recipe's new average.
// @Tags        Engagement
// @Accept      json
// @Produce     json
//
// @Param       Idempotency-Key  header  string  false "Idempotency key for safe retries"  example(7a8d9f4c-1b2a-4c3d-8e9f-0123456789ab)
// @Param       id    path  string                        true  "Recipe ID (UUID)"  format(uuid)
// @Param       body  body  handlers.RateRecipeRequest    true  "Rating payload"
//
// @Success     200  {object} map[string]any
// @Failure     400  {object} handlers.ErrorResponse "Invalid rating"
// @Failure     404  {object} handlers.ErrorResponse "Recipe not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /recipes/{id}/rating [post]
func (h *Handlers) RateRecipe(c *gin.Context) {
	var req RateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "rating must be an integer between 1 and 5")
		return
	}

	ctx := c.Request.Context()
	uid := middleware.UserID(c)
	recipeID := c.Param("id")

	// Replay path: the validator matched a stored key, so answer with the
	// current state instead of re-applying the mutation.
	idemKey, _ := middleware.GetIdempotencyKey(c)
	if idemKey != "" && middleware.IsReplay(c) {
		if db := h.engagementDB(); db != nil {
			if avg, err := repo.RecipeAverage(ctx, db, recipeID); err == nil {
				c.Header("Idempotency-Replayed", "true")
				ok(c, http.StatusOK, gin.H{
					"message":       "Rating added successfully",
					"averageRating": avg,
				})
				return
			}
		}
	}

	avg, err := h.engSvc.Rate(ctx, uid, recipeID, req.Rating)
	if err != nil {
		failService(c, err)
		return
	}

	// Store path, best effort: a lost record merely costs one replayed write.
	if idemKey != "" {
		if db := h.engagementDB(); db != nil {
			_, _ = repo.CreateIdempotency(ctx, db, uid, recipeID, idemKey, http.StatusOK, h.idemTTL())
		}
	}

	ok(c, http.StatusOK, gin.H{
		"message":       "Rating added successfully",
		"averageRating": avg,
	})
}

// CommentRecipe godoc
// @ID          commentRecipe
// @Summary     Comment on a recipe
// @Description Appends a comment by the signed-in user and returns the full thread in chronological order.
// @Tags        Engagement
// @Accept      json
// @Produce     json
//
// @Param       Idempotency-Key  header  string  false "Idempotency key for safe retries"  example(7a8d9f4c-1b2a-4c3d-8e9f-0123456789ab)
// @Param       id    path  string                          true  "Recipe ID (UUID)"  format(uuid)
// @Param       body  body  handlers.CommentRecipeRequest   true  "Comment payload"
//
// @Success     200  {object} map[string]any
// @Failure     400  {object} handlers.ErrorResponse "Empty or oversized comment"
// @Failure     404  {object} handlers.ErrorResponse "Recipe not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /recipes/{id}/comment [post]
func (h *Handlers) CommentRecipe(c *gin.Context) {
	var req CommentRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "comment must not be empty")
		return
	}

	ctx := c.Request.Context()
	uid := middleware.UserID(c)
	recipeID := c.Param("id")

	// Replay path: the comment was already appended, so re-serve the thread.
	idemKey, _ := middleware.GetIdempotencyKey(c)
	if idemKey != "" && middleware.IsReplay(c) {
		if db := h.engagementDB(); db != nil {
			if thread, err := repo.ListComments(ctx, db, recipeID); err == nil {
				c.Header("Idempotency-Replayed", "true")
				ok(c, http.StatusOK, gin.H{
					"message":  "Comment added successfully",
					"comments": commentViews(thread),
				})
				return
			}
		}
	}

	thread, err := h.engSvc.Comment(ctx, uid, recipeID, req.Comment)
	if err != nil {
		failService(c, err)
		return
	}

	// Store path, best effort.
	if idemKey != "" {
		if db := h.engagementDB(); db != nil {
			_, _ = repo.CreateIdempotency(ctx, db, uid, recipeID, idemKey, http.StatusOK, h.idemTTL())
		}
	}

	ok(c, http.StatusOK, gin.H{
		"message":  "Comment added successfully",
		"comments": commentViews(thread),
	})
}

// ToggleFavorite godoc
// @ID          toggleFavorite
// @Summary     Toggle a favorite
// @Description Adds the recipe to the signed-in user's favorites, or removes it when already present.
// @Tags        Engagement
// @Produce     json
//
// @Param       id  path  string  true  "Recipe ID (UUID)"  format(uuid)
//
// @Success     200  {object} map[string]any
// @Failure     404  {object} handlers.ErrorResponse "Recipe not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /recipes/{id}/favorite [post]
func (h *Handlers) ToggleFavorite(c *gin.Context) {
	isFavorite, err := h.favSvc.Toggle(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		failService(c, err)
		return
	}

	msg := "Removed from favorites"
	if isFavorite {
		msg = "Added to favorites"
	}
	ok(c, http.StatusOK, gin.H{
		"message":    msg,
		"isFavorite": isFavorite,
	})
}

// ListFavorites godoc
// @ID          listFavorites
// @Summary     List favorite recipes
// @Description Returns the signed-in user's favorite recipes, most recently added first.
// @Tags        Engagement
// @Produce     json
//
// @Success     200  {array}  handlers.RecipeView
// @Failure     401  {object} handlers.ErrorResponse "No session"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /recipes/favorites [get]
func (h *Handlers) ListFavorites(c *gin.Context) {
	items, err := h.favSvc.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, recipeViews(items))
}
