package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestIdempotencyValidator_NoHeaderPassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(IdempotencyValidator(IdempotencyOptions{}, nil))
	r.POST("/recipes/:id/comments", func(c *gin.Context) {
		if _, ok := GetIdempotencyKey(c); ok {
			t.Error("unexpected idempotency key")
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/recipes/r1/comments", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestIdempotencyValidator_RejectsBadKey(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(IdempotencyValidator(IdempotencyOptions{MaxLen: 10}, nil))
	r.POST("/recipes/:id/comments", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, key := range []string{"bad key with spaces", "way-too-long-for-limit"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/recipes/r1/comments", nil)
		req.Header.Set(HeaderIdempotencyKey, key)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("key %q: status = %d, want 400", key, w.Code)
		}
	}
}

func TestIdempotencyValidator_ReplayFlagsSet(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var gotUser, gotRecipe, gotKey string
	lookup := func(ctx context.Context, userID, recipeID, key string, now time.Time) (bool, error) {
		gotUser, gotRecipe, gotKey = userID, recipeID, key
		return true, nil
	}

	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("userID", "u1") })
	r.Use(IdempotencyValidator(IdempotencyOptions{}, lookup))
	r.POST("/recipes/:id/ratings", func(c *gin.Context) {
		if !IsReplay(c) {
			t.Error("expected replay flag")
		}
		if !IsRateBypass(c) {
			t.Error("expected rate bypass flag")
		}
		if key, ok := GetIdempotencyKey(c); !ok || key != "retry-1" {
			t.Errorf("key = %q, ok = %v", key, ok)
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/recipes/r42/ratings", nil)
	req.Header.Set(HeaderIdempotencyKey, "retry-1")
	r.ServeHTTP(w, req)

	if gotUser != "u1" || gotRecipe != "r42" || gotKey != "retry-1" {
		t.Errorf("lookup called with (%q, %q, %q)", gotUser, gotRecipe, gotKey)
	}
}
