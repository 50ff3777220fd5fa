package handlers

import (
	"time"

	"github.com/tbourn/go-recipe-backend/internal/domain"
)

// UserRef is the compact author reference embedded in recipe payloads.
type UserRef struct {
	ID   string `json:"id" example:"141add05-4415-4938-b5a1-17e0d3171aff"`
	Name string `json:"name" example:"Maria Papadopoulou"`
}

// RatingView is one user's rating of a recipe as serialized in responses.
type RatingView struct {
	User      UserRef   `json:"user"`
	Value     int       `json:"rating" example:"4"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentView is a recipe comment with its author resolved.
type CommentView struct {
	ID        string    `json:"id"`
	User      UserRef   `json:"user"`
	Body      string    `json:"comment" example:"Worked great with feta instead."`
	CreatedAt time.Time `json:"date"`
}

// RecipeView is the full recipe representation returned by read endpoints.
// AverageRating is derived from the loaded ratings and rounded to one
// decimal place; it is 0 when nobody has rated yet.
type RecipeView struct {
	ID            string        `json:"id"`
	Title         string        `json:"title" example:"Spanakopita"`
	Ingredients   string        `json:"ingredients"`
	Instructions  string        `json:"instructions"`
	Category      string        `json:"category" example:"Dinner"`
	CookingTime   int           `json:"cookingTime" example:"45"`
	Image         string        `json:"image,omitempty"`
	CreatedBy     UserRef       `json:"createdBy"`
	AverageRating float64       `json:"averageRating" example:"4.3"`
	Ratings       []RatingView  `json:"ratings"`
	Comments      []CommentView `json:"comments"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// Pagination carries paging metadata for list responses.
type Pagination struct {
	Page  int   `json:"page" example:"1"`
	Limit int   `json:"limit" example:"10"`
	Total int64 `json:"total" example:"25"`
	Pages int   `json:"pages" example:"3"`
}

// ListRecipesResponse wraps a page of recipes and its pagination block.
type ListRecipesResponse struct {
	Recipes    []RecipeView `json:"recipes"`
	Pagination Pagination   `json:"pagination"`
}

func userRef(u *domain.User, fallbackID string) UserRef {
	if u == nil {
		return UserRef{ID: fallbackID}
	}
	return UserRef{ID: u.ID, Name: u.Name}
}

func commentView(cm domain.Comment) CommentView {
	return CommentView{
		ID:        cm.ID,
		User:      userRef(cm.User, cm.UserID),
		Body:      cm.Body,
		CreatedAt: cm.CreatedAt,
	}
}

func commentViews(cms []domain.Comment) []CommentView {
	out := make([]CommentView, 0, len(cms))
	for _, cm := range cms {
		out = append(out, commentView(cm))
	}
	return out
}

// newRecipeView projects a loaded recipe aggregate into its API shape.
// Slices are always non-nil so clients see [] rather than null.
func newRecipeView(r *domain.Recipe) RecipeView {
	ratings := make([]RatingView, 0, len(r.Ratings))
	for _, rt := range r.Ratings {
		ratings = append(ratings, RatingView{
			User:      userRef(rt.User, rt.UserID),
			Value:     rt.Value,
			CreatedAt: rt.CreatedAt,
		})
	}
	comments := make([]CommentView, 0, len(r.Comments))
	for _, cm := range r.Comments {
		comments = append(comments, commentView(cm))
	}
	return RecipeView{
		ID:            r.ID,
		Title:         r.Title,
		Ingredients:   r.Ingredients,
		Instructions:  r.Instructions,
		Category:      r.Category,
		CookingTime:   r.CookingTime,
		Image:         r.ImageURL,
		CreatedBy:     userRef(r.Owner, r.OwnerID),
		AverageRating: r.AverageRating(),
		Ratings:       ratings,
		Comments:      comments,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func recipeViews(rs []domain.Recipe) []RecipeView {
	out := make([]RecipeView, 0, len(rs))
	for i := range rs {
		out = append(out, newRecipeView(&rs[i]))
	}
	return out
}
