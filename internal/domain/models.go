// Package domain defines the persistence models for users, recipes, ratings,
// comments, and favorites. These types are mapped with GORM and form the core
// data layer of the recipe-sharing application.
package domain

import (
	"math"
	"time"
)

// User represents an account created on first successful login from the
// external identity provider. Profile fields (name, email, avatar) are
// refreshed from the provider on every login and are not independently
// editable.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - Provider / ProviderID: external identity, unique per provider.
//   - Name / Email / AvatarURL: sourced from the provider at login time.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
type User struct {
	ID         string    `json:"id"         gorm:"type:char(36);primaryKey"`
	Provider   string    `json:"-"          gorm:"type:varchar(32);not null;uniqueIndex:ux_provider_identity,priority:1"`
	ProviderID string    `json:"-"          gorm:"type:varchar(128);not null;uniqueIndex:ux_provider_identity,priority:2"`
	Name       string    `json:"name"       gorm:"type:varchar(255);not null"`
	Email      string    `json:"email"      gorm:"type:varchar(255)"`
	AvatarURL  string    `json:"image"      gorm:"type:text"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"-"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// Recipe is the aggregate root of the application. A recipe is owned by
// exactly one user (immutable after creation) and carries its ratings and
// comments as relational child rows rather than embedded documents, so that
// rating/comment mutation can be performed as targeted row operations instead
// of whole-aggregate rewrites.
//
// Fields:
//   - ID: UUID primary key (char(36)).
//   - OwnerID: creator of the recipe; the only principal allowed to update
//     or delete it. Indexed for per-user listings.
//   - Title / Ingredients / Instructions / Category: required free text,
//     trimmed at the service layer.
//   - CookingTime: minutes, non-negative, defaults to 0.
//   - ImageURL: optional opaque URI assigned by the image store.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
type Recipe struct {
	ID           string    `json:"id"           gorm:"type:char(36);primaryKey"`
	OwnerID      string    `json:"created_by"   gorm:"type:char(36);not null;index:idx_owner_recipes"`
	Title        string    `json:"title"        gorm:"type:varchar(255);not null"`
	Ingredients  string    `json:"ingredients"  gorm:"type:text;not null"`
	Instructions string    `json:"instructions" gorm:"type:text;not null"`
	Category     string    `json:"category"     gorm:"type:varchar(64);not null;index"`
	CookingTime  int       `json:"cookingTime"  gorm:"not null;default:0;check:cooking_time >= 0"`
	ImageURL     string    `json:"image"        gorm:"type:text"`
	CreatedAt    time.Time `json:"created_at"   gorm:"index"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Owner is the creating user. User deletion is out of scope, so the
	// association carries no cascade from users to recipes.
	Owner *User `json:"-" gorm:"foreignKey:OwnerID;references:ID"`

	// Ratings and Comments are cascade-deleted with the recipe.
	Ratings  []Rating  `json:"ratings"  gorm:"foreignKey:RecipeID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Comments []Comment `json:"comments" gorm:"foreignKey:RecipeID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Recipe.
func (Recipe) TableName() string { return "recipes" }

// AverageRating computes the arithmetic mean of the loaded rating values,
// rounded to one decimal place. It is 0 when the recipe has no ratings.
// The Ratings slice must have been preloaded by the caller.
func (r *Recipe) AverageRating() float64 {
	if len(r.Ratings) == 0 {
		return 0
	}
	sum := 0
	for _, rt := range r.Ratings {
		sum += rt.Value
	}
	avg := float64(sum) / float64(len(r.Ratings))
	return math.Round(avg*10) / 10
}

// Rating is a single user's score for a recipe. A user holds at most one
// rating per recipe: the unique (recipe_id, user_id) index backs the
// replace-on-resubmit semantics enforced by the repository.
type Rating struct {
	ID        string    `json:"id"      gorm:"type:char(36);primaryKey"`
	RecipeID  string    `json:"-"       gorm:"type:char(36);not null;index;uniqueIndex:ux_rating_recipe_user,priority:1"`
	UserID    string    `json:"user_id" gorm:"type:char(36);not null;uniqueIndex:ux_rating_recipe_user,priority:2"`
	Value     int       `json:"rating"  gorm:"not null;check:value BETWEEN 1 AND 5"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`

	// User is the rating author, joined at read time for display names.
	User *User `json:"-" gorm:"foreignKey:UserID;references:ID"`
}

// TableName returns the database table name for Rating.
func (Rating) TableName() string { return "ratings" }

// Comment is an immutable remark left on a recipe by any authenticated user.
// Comments have no edit or delete operation; insertion order is preserved via
// (created_at, id) ordering in the repository.
type Comment struct {
	ID        string    `json:"id"      gorm:"type:char(36);primaryKey"`
	RecipeID  string    `json:"-"       gorm:"type:char(36);not null;index:idx_recipe_comments,priority:1"`
	UserID    string    `json:"user_id" gorm:"type:char(36);not null"`
	Body      string    `json:"comment" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"date"    gorm:"index:idx_recipe_comments,priority:2"`

	// User is the comment author, joined at read time for display names.
	User *User `json:"-" gorm:"foreignKey:UserID;references:ID"`
}

// TableName returns the database table name for Comment.
func (Comment) TableName() string { return "comments" }

// Favorite is a row in the user↔recipe favorites set. The unique
// (user_id, recipe_id) index gives the collection set semantics; rows are
// cascade-deleted when their recipe is removed so favorites never dangle.
type Favorite struct {
	ID        string    `gorm:"type:char(36);primaryKey"`
	UserID    string    `gorm:"type:char(36);not null;index;uniqueIndex:ux_favorite_user_recipe,priority:1"`
	RecipeID  string    `gorm:"type:char(36);not null;uniqueIndex:ux_favorite_user_recipe,priority:2"`
	CreatedAt time.Time

	Recipe *Recipe `gorm:"foreignKey:RecipeID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Favorite.
func (Favorite) TableName() string { return "favorites" }

// RecipeFilter captures the optional list constraints of the recipe query
// contract. Zero values impose no constraint; all present filters are ANDed.
type RecipeFilter struct {
	// Category must match exactly when non-empty.
	Category string
	// Search is matched case-insensitively as a substring of the title.
	Search string
	// Ingredients is matched case-insensitively as a substring of the
	// ingredients text.
	Ingredients string
	// MaxCookingTime is an inclusive upper bound in minutes; <= 0 disables it.
	MaxCookingTime int
	// MinRating is an inclusive lower bound on the average rating; <= 0
	// disables it.
	MinRating float64
}
