package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tbourn/go-recipe-backend/internal/domain"
	"github.com/tbourn/go-recipe-backend/internal/services"
)

func TestRateRecipe_ReturnsAverage(t *testing.T) {
	var gotUser, gotRecipe string
	var gotValue int
	eng := stubEngSvc{rate: func(_ context.Context, userID, recipeID string, value int) (float64, error) {
		gotUser, gotRecipe, gotValue = userID, recipeID, value
		return 4.3, nil
	}}
	r := newTestRouter(New(stubRecipeSvc{}, eng, stubFavSvc{}, nil))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/recipes/r1/rating", strings.NewReader(`{"rating":4}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if gotUser != "u1" || gotRecipe != "r1" || gotValue != 4 {
		t.Errorf("rate called with (%q, %q, %d)", gotUser, gotRecipe, gotValue)
	}
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("body: %v", err)
	}
	if resp["averageRating"] != 4.3 {
		t.Errorf("averageRating = %v", resp["averageRating"])
	}
	if resp["message"] != "Rating added successfully" {
		t.Errorf("message = %v", resp["message"])
	}
}

func TestRateRecipe_InvalidValue(t *testing.T) {
	eng := stubEngSvc{rate: func(_ context.Context, _, _ string, _ int) (float64, error) {
		return 0, services.ErrInvalidRating
	}}
	r := newTestRouter(New(stubRecipeSvc{}, eng, stubFavSvc{}, nil))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/recipes/r1/rating", strings.NewReader(`{"rating":9}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestRateRecipe_MalformedBody(t *testing.T) {
	r := newTestRouter(New(stubRecipeSvc{}, stubEngSvc{}, stubFavSvc{}, nil))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/recipes/r1/rating", strings.NewReader(`not json`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestCommentRecipe_ReturnsThread(t *testing.T) {
	eng := stubEngSvc{comment: func(_ context.Context, userID, recipeID, body string) ([]domain.Comment, error) {
		return []domain.Comment{
			{ID: "c1", UserID: userID, Body: "First!", User: &domain.User{ID: userID, Name: "Eleni"}},
			{ID: "c2", UserID: userID, Body: body},
		}, nil
	}}
	r := newTestRouter(New(stubRecipeSvc{}, eng, stubFavSvc{}, nil))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/recipes/r1/comment", strings.NewReader(`{"comment":"Delicious"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp struct {
		Message  string        `json:"message"`
		Comments []CommentView `json:"comments"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("body: %v", err)
	}
	if resp.Message != "Comment added successfully" {
		t.Errorf("message = %q", resp.Message)
	}
	if len(resp.Comments) != 2 || resp.Comments[0].User.Name != "Eleni" || resp.Comments[1].Body != "Delicious" {
		t.Errorf("comments = %+v", resp.Comments)
	}
}

func TestCommentRecipe_NotFound(t *testing.T) {
	eng := stubEngSvc{comment: func(_ context.Context, _, _, _ string) ([]domain.Comment, error) {
		return nil, services.ErrRecipeNotFound
	}}
	r := newTestRouter(New(stubRecipeSvc{}, eng, stubFavSvc{}, nil))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/recipes/gone/comment", strings.NewReader(`{"comment":"hi"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestToggleFavorite_Messages(t *testing.T) {
	for _, tc := range []struct {
		state   bool
		message string
	}{
		{true, "Added to favorites"},
		{false, "Removed from favorites"},
	} {
		fav := stubFavSvc{toggle: func(_ context.Context, _, _ string) (bool, error) {
			return tc.state, nil
		}}
		r := newTestRouter(New(stubRecipeSvc{}, stubEngSvc{}, fav, nil))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/recipes/r1/favorite", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d", w.Code)
		}
		var resp map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("body: %v", err)
		}
		if resp["message"] != tc.message {
			t.Errorf("message = %v, want %q", resp["message"], tc.message)
		}
		if resp["isFavorite"] != tc.state {
			t.Errorf("isFavorite = %v, want %v", resp["isFavorite"], tc.state)
		}
	}
}

func TestListFavorites_ResolvedRecipes(t *testing.T) {
	fav := stubFavSvc{list: func(_ context.Context, userID string) ([]domain.Recipe, error) {
		return []domain.Recipe{
			{ID: "r2", Title: "Gemista", Owner: &domain.User{ID: "o1", Name: "Maria"}},
			{ID: "r1", Title: "Fasolada"},
		}, nil
	}}
	r := newTestRouter(New(stubRecipeSvc{}, stubEngSvc{}, fav, nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/recipes/favorites", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var views []RecipeView
	if err := json.Unmarshal(w.Body.Bytes(), &views); err != nil {
		t.Fatalf("body: %v", err)
	}
	if len(views) != 2 || views[0].Title != "Gemista" || views[0].CreatedBy.Name != "Maria" {
		t.Errorf("views = %+v", views)
	}
}
