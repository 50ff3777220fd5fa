// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// sessions, idempotency, rate limiting, CORS and security headers.
//
// Design goals:
//   - Observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Cookie sessions, so CORS must echo a concrete Origin with credentials
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	_ "github.com/tbourn/go-recipe-backend/docs"
	"github.com/tbourn/go-recipe-backend/internal/auth"
	"github.com/tbourn/go-recipe-backend/internal/config"
	"github.com/tbourn/go-recipe-backend/internal/domain"
	"github.com/tbourn/go-recipe-backend/internal/http/handlers"
	"github.com/tbourn/go-recipe-backend/internal/http/middleware"
	"github.com/tbourn/go-recipe-backend/internal/repo"
	"github.com/tbourn/go-recipe-backend/internal/services"
	"github.com/tbourn/go-recipe-backend/internal/upload"
)

// recipeRepoShim adapts the repository free functions to the
// services.RecipeRepo interface expected by RecipeService. This keeps
// services decoupled from the concrete repo package while reusing the
// existing functions.
type recipeRepoShim struct{}

func (recipeRepoShim) CreateRecipe(ctx context.Context, db *gorm.DB, r *domain.Recipe) error {
	return repo.CreateRecipe(ctx, db, r)
}

func (recipeRepoShim) GetRecipe(ctx context.Context, db *gorm.DB, id string) (*domain.Recipe, error) {
	return repo.GetRecipe(ctx, db, id)
}

func (recipeRepoShim) CountRecipes(ctx context.Context, db *gorm.DB, f domain.RecipeFilter) (int64, error) {
	return repo.CountRecipes(ctx, db, f)
}

func (recipeRepoShim) ListRecipesPage(ctx context.Context, db *gorm.DB, f domain.RecipeFilter, offset, limit int) ([]domain.Recipe, error) {
	return repo.ListRecipesPage(ctx, db, f, offset, limit)
}

func (recipeRepoShim) UpdateRecipeFields(ctx context.Context, db *gorm.DB, id string, fields map[string]any) error {
	return repo.UpdateRecipeFields(ctx, db, id, fields)
}

func (recipeRepoShim) DeleteRecipe(ctx context.Context, db *gorm.DB, id string) error {
	return repo.DeleteRecipe(ctx, db, id)
}

// Deps carries the externally constructed dependencies the router wires into
// handlers. Provider may be nil, which disables the login redirect routes
// (useful in tests and credential-less local runs).
type Deps struct {
	Provider auth.Provider
	Sessions *auth.Sessions
	Images   upload.ImageStore
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with credential scrubbing
//  4. Recovery: capture panics after logger
//  5. Session resolution (so later stages see the user)
//  6. Body size limiter, gzip
//  7. Metrics
//  8. Idempotency validator (before rate limiter to allow bypass on replay)
//  9. Rate limiter (per user/IP, bypass on replay)
//  10. CORS and security headers
func RegisterRoutes(r *gin.Engine, db *gorm.DB, deps Deps, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))
	r.Use(middleware.RequestID())
	r.Use(middleware.RedactingLogger(middleware.DefaultRedactOptions()))
	r.Use(middleware.Recovery())

	if deps.Sessions != nil {
		r.Use(middleware.OptionalSession(deps.Sessions))
	}

	// Global body cap. Multipart uploads (images) need headroom beyond the
	// JSON payloads, hence 8 MiB rather than 1.
	r.Use(limitBody(8 << 20))
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{cfg.Upload.BaseURL})))

	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.Use(middleware.IdempotencyValidator(
		middleware.IdempotencyOptions{MaxLen: 200},
		func(ctx context.Context, userID, recipeID, key string, now time.Time) (bool, error) {
			rec, err := repo.GetIdempotency(ctx, db, userID, recipeID, key, now)
			if err != nil || rec == nil {
				return false, nil
			}
			return true, nil
		},
	))

	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, 10*time.Minute, middleware.KeyByUserOrIP)
	r.Use(rl.Handler())

	// CORS posture. With cookie sessions the browser only attaches
	// credentials when a concrete Origin is echoed back, so configured
	// origins get AllowCredentials and the wildcard fallback does not.
	if len(cfg.CORS.AllowedOrigins) == 0 {
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.HeaderIdempotencyKey},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length", "ETag"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	} else {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.HeaderIdempotencyKey},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length", "ETag"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.Use(middleware.SecurityHeaders(middleware.SecurityHeadersOptions{
		EnableHSTS:        cfg.Security.EnableHSTS,
		HSTSMaxAgeSeconds: int(cfg.Security.HSTSMaxAge.Seconds()),
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Swagger UI (opt-in)
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Uploaded images
	if cfg.Upload.Dir != "" {
		r.Static(cfg.Upload.BaseURL, cfg.Upload.Dir)
	}

	// Dependency injection: services ← repo/db
	recipeSvc := services.NewRecipeService(db, recipeRepoShim{})
	engSvc := &services.EngagementService{DB: db, MaxCommentRunes: 2000}
	favSvc := &services.FavoriteService{DB: db}
	userSvc := &services.UserService{DB: db}
	h := handlers.New(recipeSvc, engSvc, favSvc, deps.Images)
	h.IdemTTL = cfg.IdempotencyTTL

	// Auth flow (session cookie based)
	if deps.Sessions != nil {
		ah := handlers.NewAuthHandlers(deps.Provider, deps.Sessions, userSvc,
			cfg.OAuth.SuccessURL, cfg.OAuth.FailureURL)
		authGroup := r.Group("/auth")
		{
			if deps.Provider != nil {
				authGroup.GET("/google", ah.Login)
				authGroup.GET("/google/callback", ah.Callback)
			}
			authGroup.GET("/user", ah.Me)
			authGroup.GET("/logout", ah.Logout)
		}
	}

	// Public API
	api := groupWithPrefix(r, cfg.APIBasePath)
	{
		// Reads are anonymous-friendly
		api.GET("/recipes", h.ListRecipes)
		api.GET("/recipes/:id", h.GetRecipe)

		// Everything else requires a session
		authed := api.Group("")
		if deps.Sessions != nil {
			authed.Use(middleware.RequireSession(deps.Sessions))
		}
		authed.POST("/recipes", h.CreateRecipe)
		authed.GET("/recipes/favorites", h.ListFavorites)
		authed.PUT("/recipes/:id", h.UpdateRecipe)
		authed.DELETE("/recipes/:id", h.DeleteRecipe)
		authed.POST("/recipes/:id/rating", h.RateRecipe)
		authed.POST("/recipes/:id/comment", h.CommentRecipe)
		authed.POST("/recipes/:id/favorite", h.ToggleFavorite)
	}
}

// limitBody caps the request body size for all endpoints using
// http.MaxBytesReader. Requests exceeding the cap fail on body read.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
