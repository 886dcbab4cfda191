package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "meal-planner/internal/errors"
	"meal-planner/internal/model"
)

func TestCatalogService_AddMeal(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	meal, err := f.catalog.AddMeal(ctx, "breakfast", " Pancakes ", []string{"Flour", " Milk", "Egg "})
	require.NoError(t, err)

	assert.NotZero(t, meal.ID)
	assert.Equal(t, model.Breakfast, meal.Category)
	assert.Equal(t, "Pancakes", meal.Name)
	assert.Equal(t, []string{"Flour", "Milk", "Egg"}, meal.IngredientNames())

	ingredients, ok := f.catalog.Ingredients(meal.ID)
	require.True(t, ok)
	assert.Equal(t, []string{"Flour", "Milk", "Egg"}, ingredients)
}

func TestCatalogService_AddMealIDsIncrease(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	var last uint
	for _, name := range []string{"Soup", "Salad", "Stew", "Sandwich"} {
		meal, err := f.catalog.AddMeal(ctx, "lunch", name, []string{"Water"})
		require.NoError(t, err)
		assert.Greater(t, meal.ID, last)
		last = meal.ID
	}
}

func TestCatalogService_AddMealRejectsInvalidInput(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		category    string
		meal        string
		ingredients []string
	}{
		{"unknown category", "brunch", "Pancakes", []string{"Flour"}},
		{"digits in name", "breakfast", "Pancakes2", []string{"Flour"}},
		{"blank name", "breakfast", "  ", []string{"Flour"}},
		{"empty ingredient", "breakfast", "Pancakes", []string{"Flour", ""}},
		{"bad ingredient", "breakfast", "Pancakes", []string{"Flour", "3 eggs"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.catalog.AddMeal(ctx, tt.category, tt.meal, tt.ingredients)
			assert.ErrorIs(t, err, domainerrors.ErrValidation)
			assert.Empty(t, f.store.meals)
			assert.Empty(t, f.catalog.Meals())
		})
	}
}

func TestCatalogService_AddMealStorageFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.store.failAdd = true

	_, err := f.catalog.AddMeal(ctx, "dinner", "Pizza", []string{"Dough"})
	assert.ErrorIs(t, err, domainerrors.ErrStorage)
	assert.ErrorIs(t, err, errDiskFull)
	assert.Empty(t, f.catalog.Meals())
}

func TestCatalogService_MealsByCategory(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	for _, name := range []string{"omelette", "Bagel", "Pancakes", "avocado toast"} {
		_, err := f.catalog.AddMeal(ctx, "breakfast", name, []string{"Egg"})
		require.NoError(t, err)
	}
	_, err := f.catalog.AddMeal(ctx, "dinner", "Curry", []string{"Rice"})
	require.NoError(t, err)

	names := func(meals []model.Meal) []string {
		var out []string
		for _, m := range meals {
			out = append(out, m.Name)
		}
		return out
	}

	assert.Equal(t, []string{"omelette", "Bagel", "Pancakes", "avocado toast"},
		names(f.catalog.MealsByCategory(model.Breakfast, InsertionOrder)))
	assert.Equal(t, []string{"avocado toast", "Bagel", "omelette", "Pancakes"},
		names(f.catalog.MealsByCategory(model.Breakfast, ByName)))
	assert.Empty(t, f.catalog.MealsByCategory(model.Lunch, ByName))

	// Sorting a view must not reorder the catalog itself.
	assert.Equal(t, "omelette", f.catalog.Meals()[0].Name)
}

func TestSortByName_Stable(t *testing.T) {
	meals := []model.Meal{
		{ID: 1, Name: "soup"},
		{ID: 2, Name: "Apple"},
		{ID: 3, Name: "SOUP"},
		{ID: 4, Name: "Soup"},
	}
	SortByName(meals)

	var ids []uint
	for _, m := range meals {
		ids = append(ids, m.ID)
	}
	assert.Equal(t, []uint{2, 1, 3, 4}, ids)
}

func TestCatalogService_MealLookups(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	oatmeal, err := f.catalog.AddMeal(ctx, "breakfast", "Oatmeal", []string{"Oats", "Milk"})
	require.NoError(t, err)

	byID, err := f.catalog.MealByID(oatmeal.ID)
	require.NoError(t, err)
	assert.Equal(t, "Oatmeal", byID.Name)

	byName, err := f.catalog.MealByName(ctx, "OATMEAL")
	require.NoError(t, err)
	assert.Equal(t, oatmeal.ID, byName.ID)

	_, err = f.catalog.MealByID(999)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, err = f.catalog.MealByName(ctx, "Porridge")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestCatalogService_MealByNameReloadsFromStorage(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.catalog.Load(ctx))

	// Written by another process sharing the database.
	external := model.NewMeal(model.Dinner, "Risotto", []string{"Rice", "Stock"})
	require.NoError(t, f.store.InsertMeal(ctx, &external))

	meal, err := f.catalog.MealByName(ctx, "risotto")
	require.NoError(t, err)
	assert.Equal(t, external.ID, meal.ID)
	assert.Len(t, f.catalog.MealsByCategory(model.Dinner, InsertionOrder), 1)
}

func TestCatalogService_Load(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	for _, meal := range []model.Meal{
		model.NewMeal(model.Lunch, "Soup", []string{"Water", "Salt"}),
		model.NewMeal(model.Dinner, "Steak", []string{"Beef"}),
	} {
		require.NoError(t, f.store.InsertMeal(ctx, &meal))
	}

	require.NoError(t, f.catalog.Load(ctx))
	assert.Len(t, f.catalog.Meals(), 2)

	ingredients, ok := f.catalog.Ingredients(2)
	require.True(t, ok)
	assert.Equal(t, []string{"Beef"}, ingredients)

	next, err := f.catalog.AddMeal(ctx, "dinner", "Fish", []string{"Cod"})
	require.NoError(t, err)
	assert.Equal(t, uint(3), next.ID)

	stored, err := f.catalog.StoredMealsByCategory(ctx, model.Dinner)
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestCatalogService_LoadStorageFailure(t *testing.T) {
	f := newFixture(t)
	f.store.failAll = true

	err := f.catalog.Load(context.Background())
	assert.ErrorIs(t, err, domainerrors.ErrStorage)
}
