package services

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/tbourn/go-recipe-backend/internal/domain"
)

// fakeRecipeRepo is an in-memory RecipeRepo capturing calls for assertions.
type fakeRecipeRepo struct {
	recipes map[string]*domain.Recipe

	createErr   error
	lastFields  map[string]any
	countCalled bool
	listOffset  int
	listLimit   int
}

func newFakeRecipeRepo() *fakeRecipeRepo {
	return &fakeRecipeRepo{recipes: map[string]*domain.Recipe{}}
}

func (f *fakeRecipeRepo) CreateRecipe(_ context.Context, _ *gorm.DB, r *domain.Recipe) error {
	if f.createErr != nil {
		return f.createErr
	}
	r.ID = "rec-" + r.Title
	f.recipes[r.ID] = r
	return nil
}

func (f *fakeRecipeRepo) GetRecipe(_ context.Context, _ *gorm.DB, id string) (*domain.Recipe, error) {
	if r, ok := f.recipes[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRecipeRepo) CountRecipes(_ context.Context, _ *gorm.DB, _ domain.RecipeFilter) (int64, error) {
	f.countCalled = true
	return int64(len(f.recipes)), nil
}

func (f *fakeRecipeRepo) ListRecipesPage(_ context.Context, _ *gorm.DB, _ domain.RecipeFilter, offset, limit int) ([]domain.Recipe, error) {
	f.listOffset, f.listLimit = offset, limit
	out := make([]domain.Recipe, 0, len(f.recipes))
	for _, r := range f.recipes {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeRecipeRepo) UpdateRecipeFields(_ context.Context, _ *gorm.DB, id string, fields map[string]any) error {
	r, ok := f.recipes[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	f.lastFields = fields
	if v, ok := fields["title"].(string); ok {
		r.Title = v
	}
	if v, ok := fields["cooking_time"].(int); ok {
		r.CookingTime = v
	}
	return nil
}

func (f *fakeRecipeRepo) DeleteRecipe(_ context.Context, _ *gorm.DB, id string) error {
	if _, ok := f.recipes[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.recipes, id)
	return nil
}

func TestRecipeService_Create_ValidationOrderAndTrim(t *testing.T) {
	svc := NewRecipeService(nil, newFakeRecipeRepo())
	ctx := context.Background()

	cases := []struct {
		name  string
		in    CreateRecipeInput
		field string
	}{
		{"missing title", CreateRecipeInput{Ingredients: "x", Instructions: "y", Category: "z"}, "title"},
		{"blank title", CreateRecipeInput{Title: "   ", Ingredients: "x", Instructions: "y", Category: "z"}, "title"},
		{"missing ingredients", CreateRecipeInput{Title: "t", Instructions: "y", Category: "z"}, "ingredients"},
		{"missing instructions", CreateRecipeInput{Title: "t", Ingredients: "x", Category: "z"}, "instructions"},
		{"missing category", CreateRecipeInput{Title: "t", Ingredients: "x", Instructions: "y"}, "category"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, "u1", tc.in)
			ve, ok := AsValidation(err)
			if !ok {
				t.Fatalf("err = %v, want ValidationError", err)
			}
			if ve.Field != tc.field {
				t.Errorf("field = %q, want %q", ve.Field, tc.field)
			}
		})
	}
}

func TestRecipeService_Create_NormalizesInput(t *testing.T) {
	repo := newFakeRecipeRepo()
	svc := NewRecipeService(nil, repo)

	r, err := svc.Create(context.Background(), "u1", CreateRecipeInput{
		Title:        "  Moussaka  ",
		Ingredients:  " aubergine ",
		Instructions: " bake ",
		Category:     "dinner",
		CookingTime:  -5,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if r.Title != "Moussaka" || r.Ingredients != "aubergine" {
		t.Errorf("not trimmed: %+v", r)
	}
	if r.Category != "Dinner" {
		t.Errorf("category = %q, want Dinner", r.Category)
	}
	if r.CookingTime != 0 {
		t.Errorf("negative cooking time not clamped: %d", r.CookingTime)
	}
	if r.OwnerID != "u1" {
		t.Errorf("owner = %q", r.OwnerID)
	}
}

func TestRecipeService_Get_MapsNotFound(t *testing.T) {
	svc := NewRecipeService(nil, newFakeRecipeRepo())
	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, ErrRecipeNotFound) {
		t.Fatalf("err = %v", err)
	}
}

func TestRecipeService_ListPage_DefaultsAndOffsets(t *testing.T) {
	repo := newFakeRecipeRepo()
	svc := NewRecipeService(nil, repo)
	ctx := context.Background()

	// Empty table short-circuits without a list call.
	items, total, err := svc.ListPage(ctx, domain.RecipeFilter{}, 0, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 0 || items == nil || len(items) != 0 {
		t.Errorf("empty result: items=%v total=%d", items, total)
	}

	if _, err := svc.Create(ctx, "u1", CreateRecipeInput{
		Title: "A", Ingredients: "x", Instructions: "y", Category: "z",
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	// Invalid page/pageSize fall back to defaults.
	if _, _, err := svc.ListPage(ctx, domain.RecipeFilter{}, -3, 0); err != nil {
		t.Fatalf("list: %v", err)
	}
	if repo.listOffset != 0 || repo.listLimit != svc.DefaultPageSize {
		t.Errorf("defaults: offset=%d limit=%d", repo.listOffset, repo.listLimit)
	}

	// Oversized pageSize is capped; offset derives from the capped size.
	if _, _, err := svc.ListPage(ctx, domain.RecipeFilter{}, 2, 1000); err != nil {
		t.Fatalf("list: %v", err)
	}
	if repo.listLimit != svc.MaxPageSize || repo.listOffset != svc.MaxPageSize {
		t.Errorf("capped: offset=%d limit=%d", repo.listOffset, repo.listLimit)
	}
}

func TestRecipeService_Update_MergeSemantics(t *testing.T) {
	repo := newFakeRecipeRepo()
	svc := NewRecipeService(nil, repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, "u1", CreateRecipeInput{
		Title: "Original", Ingredients: "x", Instructions: "y", Category: "dinner", CookingTime: 30,
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	// Blank fields and zero cooking time are omitted from the column map.
	if _, err := svc.Update(ctx, "u1", created.ID, UpdateRecipeInput{Title: "  Renamed  "}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(repo.lastFields) != 1 {
		t.Fatalf("fields = %v, want only title", repo.lastFields)
	}
	if repo.lastFields["title"] != "Renamed" {
		t.Errorf("title = %v", repo.lastFields["title"])
	}

	// Category updates are re-cased; cooking time > 0 is included.
	if _, err := svc.Update(ctx, "u1", created.ID, UpdateRecipeInput{Category: "quick meals", CookingTime: 15}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if repo.lastFields["category"] != "Quick Meals" || repo.lastFields["cooking_time"] != 15 {
		t.Errorf("fields = %v", repo.lastFields)
	}

	// A fully blank update still succeeds and reloads the recipe.
	got, err := svc.Update(ctx, "u1", created.ID, UpdateRecipeInput{})
	if err != nil {
		t.Fatalf("noop update: %v", err)
	}
	if got.Title != "Renamed" {
		t.Errorf("reloaded title = %q", got.Title)
	}
}

func TestRecipeService_Update_OwnershipAndMissing(t *testing.T) {
	repo := newFakeRecipeRepo()
	svc := NewRecipeService(nil, repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, "u1", CreateRecipeInput{
		Title: "Mine", Ingredients: "x", Instructions: "y", Category: "z",
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	if _, err := svc.Update(ctx, "intruder", created.ID, UpdateRecipeInput{Title: "Stolen"}); !errors.Is(err, ErrForbidden) {
		t.Errorf("foreign update err = %v", err)
	}
	if repo.recipes[created.ID].Title != "Mine" {
		t.Error("rejected update mutated the recipe")
	}

	if _, err := svc.Update(ctx, "u1", "missing", UpdateRecipeInput{Title: "x"}); !errors.Is(err, ErrRecipeNotFound) {
		t.Errorf("missing update err = %v", err)
	}
}

func TestRecipeService_Delete(t *testing.T) {
	repo := newFakeRecipeRepo()
	svc := NewRecipeService(nil, repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, "u1", CreateRecipeInput{
		Title: "Mine", Ingredients: "x", Instructions: "y", Category: "z",
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := svc.Delete(ctx, "intruder", created.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("foreign delete err = %v", err)
	}
	if err := svc.Delete(ctx, "u1", "missing"); !errors.Is(err, ErrRecipeNotFound) {
		t.Errorf("missing delete err = %v", err)
	}
	if err := svc.Delete(ctx, "u1", created.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if _, ok := repo.recipes[created.ID]; ok {
		t.Error("recipe survived delete")
	}
}
