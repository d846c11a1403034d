package recipe

import (
	"context"
	"slices"
	"strings"
	"sync"

	recerrors "github.com/NVIDIA/recipes-api/pkg/errors"
)

// memStore is an in-memory Store used by the package tests.
type memStore struct {
	mu      sync.Mutex
	nextID  uint
	recipes map[uint]Recipe

	counts int
	finds  int
	err    error
}

func newMemStore(recipes ...Recipe) *memStore {
	s := &memStore{recipes: map[uint]Recipe{}}
	for _, r := range recipes {
		if r.ID == 0 {
			s.nextID++
			r.ID = s.nextID
		} else if r.ID > s.nextID {
			s.nextID = r.ID
		}
		s.recipes[r.ID] = r
	}
	return s
}

func (s *memStore) match(c Criteria, r Recipe) bool {
	if c.NameContains != "" && !strings.Contains(strings.ToLower(r.Name), strings.ToLower(c.NameContains)) {
		return false
	}
	if c.NameEquals != "" && !strings.EqualFold(r.Name, c.NameEquals) {
		return false
	}
	if c.Filter != nil && columnValue(r, c.Filter.Column) != c.Filter.Value {
		return false
	}
	return true
}

func columnValue(r Recipe, column string) any {
	switch column {
	case "id":
		return r.ID
	case "name":
		return r.Name
	case "prep_time":
		return r.PrepTime
	case "cooking_time":
		return r.CookingTime
	case "ingredients":
		return r.Ingredients
	case "servings":
		return r.Servings
	case "category":
		return r.Category
	case "directions":
		return r.Directions
	case "favourites":
		return r.Favourites
	case "added_by":
		return r.AddedBy
	case "calories":
		return r.Calories
	case "cuisine":
		return r.Cuisine
	case "url":
		return r.URL
	case "featured":
		return r.Featured
	}
	return nil
}

func (s *memStore) sorted(c Criteria) []Recipe {
	var out []Recipe
	for _, r := range s.recipes {
		if s.match(c, r) {
			out = append(out, r)
		}
	}
	slices.SortFunc(out, func(a, b Recipe) int { return int(a.ID) - int(b.ID) })
	return out
}

func (s *memStore) FindRecipes(_ context.Context, c Criteria, offset, limit int) ([]Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finds++
	if s.err != nil {
		return nil, s.err
	}
	all := s.sorted(c)
	if offset >= len(all) {
		return []Recipe{}, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (s *memStore) CountRecipes(_ context.Context, c Criteria) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts++
	if s.err != nil {
		return 0, s.err
	}
	return int64(len(s.sorted(c))), nil
}

func (s *memStore) GetRecipe(_ context.Context, id uint) (*Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.recipes[id]
	if !ok {
		return nil, recerrors.NewWithContext(recerrors.ErrCodeNotFound, MsgNoRecord, map[string]any{"id": id})
	}
	r.Tags = slices.Clone(r.Tags)
	return &r, nil
}

func (s *memStore) CreateRecipe(_ context.Context, r *Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.nextID++
	r.ID = s.nextID
	for i := range r.Tags {
		r.Tags[i].RecipeID = r.ID
	}
	s.recipes[r.ID] = *r
	return nil
}

func (s *memStore) SaveRecipe(_ context.Context, r *Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	existing := s.recipes[r.ID]
	cp := *r
	cp.Tags = existing.Tags
	s.recipes[r.ID] = cp
	return nil
}

func (s *memStore) DeleteRecipe(_ context.Context, id uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.recipes[id]; !ok {
		return false, nil
	}
	delete(s.recipes, id)
	return true, nil
}

func (s *memStore) AddTags(_ context.Context, recipeID uint, tags []Tag) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.recipes[recipeID]
	if !ok {
		return recerrors.New(recerrors.ErrCodeNotFound, MsgNoRecord)
	}
	for _, t := range tags {
		t.RecipeID = recipeID
		r.Tags = append(r.Tags, t)
	}
	s.recipes[recipeID] = r
	return nil
}

// staticImages resolves images from a fixed map.
type staticImages map[uint]string

func (m staticImages) ImageURLs(_ context.Context, ids []uint) (map[uint]string, error) {
	out := map[uint]string{}
	for _, id := range ids {
		if u, ok := m[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

func seedRecipes(n int) []Recipe {
	out := make([]Recipe, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, Recipe{
			Name:        "Recipe " + string(rune('A'+(i-1)%26)),
			Category:    CategoryMainDish,
			Directions:  "Mix#Bake",
			Ingredients: "Flour#Water",
		})
	}
	return out
}
