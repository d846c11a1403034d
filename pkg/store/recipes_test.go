package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	recerrors "github.com/NVIDIA/recipes-api/pkg/errors"
	"github.com/NVIDIA/recipes-api/pkg/recipe"
)

func newRecipe(name, category string) *recipe.Recipe {
	return &recipe.Recipe{
		Name:        name,
		Category:    category,
		Directions:  "Mix#Cook",
		Ingredients: "Salt#Pepper",
		AddedBy:     "NA",
	}
}

func seedRecipes(t *testing.T, db *DB, recipes ...*recipe.Recipe) {
	t.Helper()
	for _, r := range recipes {
		require.NoError(t, db.CreateRecipe(context.Background(), r))
	}
}

func names(list []recipe.Recipe) []string {
	out := make([]string, len(list))
	for i, r := range list {
		out[i] = r.Name
	}
	return out
}

func TestCreateAndGetRecipe(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	r := newRecipe("Beef Tacos", recipe.CategoryMainDish)
	r.Tags = []recipe.Tag{{Name: "mexican"}, {Name: "quick", Description: "under 30 minutes"}}
	require.NoError(t, db.CreateRecipe(ctx, r))
	require.NotZero(t, r.ID)

	got, err := db.GetRecipe(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Beef Tacos", got.Name)
	assert.Equal(t, recipe.CategoryMainDish, got.Category)
	require.Len(t, got.Tags, 2)
	assert.Equal(t, r.ID, got.Tags[0].RecipeID)
	assert.False(t, got.InsertDateTime.IsZero())
}

func TestGetRecipe_NotFound(t *testing.T) {
	db := testDB(t)

	_, err := db.GetRecipe(context.Background(), 42)
	require.Error(t, err)
	assert.True(t, recerrors.IsCode(err, recerrors.ErrCodeNotFound))
}

func TestFindRecipes(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	soup := newRecipe("Tomato Soup", recipe.CategorySoup)
	soup.Favourites = true
	seedRecipes(t, db,
		newRecipe("Beef Tacos", recipe.CategoryMainDish),
		soup,
		newRecipe("Chicken Soup", recipe.CategorySoup),
		newRecipe("100% Juice", recipe.CategoryBeverage),
		newRecipe("1000 Island Salad", recipe.CategorySalad),
	)

	tests := []struct {
		name     string
		criteria recipe.Criteria
		want     []string
	}{
		{
			name: "all",
			want: []string{"Beef Tacos", "Tomato Soup", "Chicken Soup", "100% Juice", "1000 Island Salad"},
		},
		{
			name:     "category filter",
			criteria: recipe.Criteria{Filter: &recipe.Filter{Field: "category", Column: "category", Value: recipe.CategorySoup}},
			want:     []string{"Tomato Soup", "Chicken Soup"},
		},
		{
			name:     "bool filter",
			criteria: recipe.Criteria{Filter: &recipe.Filter{Field: "favourites", Column: "favourites", Value: true}},
			want:     []string{"Tomato Soup"},
		},
		{
			name:     "id filter",
			criteria: recipe.Criteria{Filter: &recipe.Filter{Field: "id", Column: "id", Value: uint(3)}},
			want:     []string{"Chicken Soup"},
		},
		{
			name:     "name contains",
			criteria: recipe.Criteria{NameContains: "soup"},
			want:     []string{"Tomato Soup", "Chicken Soup"},
		},
		{
			name:     "percent matches literally",
			criteria: recipe.Criteria{NameContains: "0%"},
			want:     []string{"100% Juice"},
		},
		{
			name:     "underscore matches literally",
			criteria: recipe.Criteria{NameContains: "_"},
			want:     []string{},
		},
		{
			name: "name contains with filter",
			criteria: recipe.Criteria{
				NameContains: "soup",
				Filter:       &recipe.Filter{Field: "favourites", Column: "favourites", Value: false},
			},
			want: []string{"Chicken Soup"},
		},
		{
			name:     "name equals ignores case",
			criteria: recipe.Criteria{NameEquals: "beef TACOS"},
			want:     []string{"Beef Tacos"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := db.FindRecipes(ctx, tt.criteria, 0, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(got))

			n, err := db.CountRecipes(ctx, tt.criteria)
			require.NoError(t, err)
			assert.Equal(t, int64(len(tt.want)), n)
		})
	}
}

func TestFindRecipes_OffsetLimit(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	for i := 1; i <= 8; i++ {
		seedRecipes(t, db, newRecipe(fmt.Sprintf("Recipe %d", i), recipe.CategoryDessert))
	}

	got, err := db.FindRecipes(ctx, recipe.Criteria{}, 6, 6)
	require.NoError(t, err)
	assert.Equal(t, []string{"Recipe 7", "Recipe 8"}, names(got))

	got, err = db.FindRecipes(ctx, recipe.Criteria{}, 3, 0)
	require.NoError(t, err)
	assert.Len(t, got, 5)

	got, err = db.FindRecipes(ctx, recipe.Criteria{}, 12, 6)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestEngineOverStore(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	for i := 1; i <= 13; i++ {
		seedRecipes(t, db, newRecipe(fmt.Sprintf("Soup %02d", i), recipe.CategorySoup))
	}

	engine := recipe.NewEngine(db)
	page, err := engine.Paginate(ctx, recipe.Criteria{}, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(13), page.TotalItems)
	assert.Equal(t, int64(3), page.PagesCount)
	assert.Equal(t, []string{"Soup 13"}, names(page.Results))

	page, err = engine.Search(ctx, "soup 0", nil, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(9), page.TotalItems)
	assert.Len(t, page.Results, 6)
}

func TestSaveRecipe(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	r := newRecipe("Beef Tacos", recipe.CategoryMainDish)
	r.Tags = []recipe.Tag{{Name: "mexican"}}
	seedRecipes(t, db, r)

	r.Featured = true
	r.Tags = nil
	require.NoError(t, db.SaveRecipe(ctx, r))

	got, err := db.GetRecipe(ctx, r.ID)
	require.NoError(t, err)
	assert.True(t, got.Featured)
	assert.Len(t, got.Tags, 1, "saving a recipe must not touch its tags")
}

func TestDeleteRecipe(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	r := newRecipe("Beef Tacos", recipe.CategoryMainDish)
	r.Tags = []recipe.Tag{{Name: "mexican"}}
	seedRecipes(t, db, r)

	deleted, err := db.DeleteRecipe(ctx, r.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	var tags int64
	require.NoError(t, db.Model(&recipe.Tag{}).Count(&tags).Error)
	assert.Zero(t, tags)

	deleted, err = db.DeleteRecipe(ctx, r.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestAddTags(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	r := newRecipe("Beef Tacos", recipe.CategoryMainDish)
	seedRecipes(t, db, r)

	require.NoError(t, db.AddTags(ctx, r.ID, nil))
	require.NoError(t, db.AddTags(ctx, r.ID, []recipe.Tag{{ID: 99, Name: "spicy"}, {Name: "party"}}))

	got, err := db.GetRecipe(ctx, r.ID)
	require.NoError(t, err)
	require.Len(t, got.Tags, 2)
	assert.Equal(t, "spicy", got.Tags[0].Name)
	assert.NotEqual(t, uint(99), got.Tags[0].ID)
}
