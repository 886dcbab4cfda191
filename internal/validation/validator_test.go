package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "meal-planner/internal/errors"
	"meal-planner/internal/model"
	"meal-planner/internal/validation"
)

func TestIsValidCategory(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"breakfast", true},
		{"lunch", true},
		{"dinner", true},
		{"brunch", false},
		{"Breakfast", false},
		{" lunch", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, validation.IsValidCategory(tt.input))
		})
	}
}

func TestIsValidName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"single word", "Pancakes", true},
		{"words with spaces", "Fried eggs with bacon", true},
		{"surrounding spaces", "  Soup  ", true},
		{"digits", "Soup2", false},
		{"punctuation", "Mac'n'cheese", false},
		{"empty", "", false},
		{"only spaces", "   ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, validation.IsValidName(tt.input))
		})
	}
}

func TestIsValidIngredientList(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  bool
	}{
		{"valid", []string{"Flour", "Milk", "Egg"}, true},
		{"padded", []string{" Flour ", "  olive oil"}, true},
		{"duplicates allowed", []string{"Milk", "Milk"}, true},
		{"empty element", []string{"Flour", ""}, false},
		{"blank element", []string{"Flour", "   "}, false},
		{"digit", []string{"Flour", "2 eggs"}, false},
		{"empty list", []string{}, false},
		{"nil list", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := validation.IsValidIngredientList(tt.input)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseIngredients(t *testing.T) {
	assert.Equal(t, []string{"Flour", "Milk", "Egg"}, validation.ParseIngredients("Flour, Milk ,Egg"))
	assert.Equal(t, []string{"Flour", ""}, validation.ParseIngredients("Flour,"))
	assert.Equal(t, []string{""}, validation.ParseIngredients(""))
}

func TestParsedIngredientsAcceptance(t *testing.T) {
	lines := []string{"a,b", "a,,b", " x , y ", "1,2", "salt", ",", "olive oil, sea salt"}
	for _, line := range lines {
		list := validation.ParseIngredients(line)
		accepted := validation.IsValidIngredientList(list)

		allValid := true
		for _, item := range list {
			if item == "" || !validation.IsValidName(item) {
				allValid = false
			}
		}
		assert.Equal(t, allValid, accepted, "line %q", line)
	}
}

func TestValidateMeal(t *testing.T) {
	v := validation.New()

	t.Run("normalizes valid input", func(t *testing.T) {
		got, err := v.ValidateMeal(validation.MealInput{
			Category:    "breakfast",
			Name:        " Pancakes ",
			Ingredients: []string{" Flour", "Milk "},
		})
		require.NoError(t, err)
		assert.Equal(t, "Pancakes", got.Name)
		assert.Equal(t, []string{"Flour", "Milk"}, got.Ingredients)
	})

	t.Run("reports every failing field", func(t *testing.T) {
		_, err := v.ValidateMeal(validation.MealInput{
			Category:    "brunch",
			Name:        "Pancakes 2",
			Ingredients: []string{"Flour"},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, domainerrors.ErrValidation)

		var domainErr *domainerrors.Error
		require.ErrorAs(t, err, &domainErr)
		details, ok := domainErr.Details.(map[string]string)
		require.True(t, ok)
		assert.Contains(t, details, "category")
		assert.Contains(t, details, "name")
		assert.NotContains(t, details, "ingredients")
	})
}

func TestParseCategory(t *testing.T) {
	cat, ok := validation.ParseCategory("dinner")
	assert.True(t, ok)
	assert.Equal(t, model.Dinner, cat)

	_, ok = validation.ParseCategory("brunch")
	assert.False(t, ok)
}
