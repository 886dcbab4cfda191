package service

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/text/cases"

	domainerrors "meal-planner/internal/errors"
	"meal-planner/internal/model"
	"meal-planner/internal/validation"
)

// Order selects how MealsByCategory sorts its result.
type Order int

const (
	InsertionOrder Order = iota
	ByName
)

// CatalogService keeps the known meals indexed in memory on top of a MealStore.
type CatalogService struct {
	store     MealStore
	validator *validation.Validator
	logger    *zap.Logger

	meals       []model.Meal
	byID        map[uint]int
	ingredients map[uint][]string
	lastID      uint
}

func NewCatalogService(store MealStore, validator *validation.Validator, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		store:       store,
		validator:   validator,
		logger:      logger,
		byID:        make(map[uint]int),
		ingredients: make(map[uint][]string),
	}
}

// Load rebuilds the index from storage.
func (c *CatalogService) Load(ctx context.Context) error {
	meals, err := c.store.ListMeals(ctx)
	if err != nil {
		return domainerrors.Storage("load meals", err)
	}

	c.meals = nil
	c.byID = make(map[uint]int, len(meals))
	c.ingredients = make(map[uint][]string, len(meals))
	c.lastID = 0
	for _, meal := range meals {
		c.index(meal)
	}
	c.logger.Debug("catalog loaded", zap.Int("meals", len(meals)))
	return nil
}

// AddMeal validates and stores a new meal. Invalid input is never stored.
func (c *CatalogService) AddMeal(ctx context.Context, category, name string, ingredients []string) (model.Meal, error) {
	input, err := c.validator.ValidateMeal(validation.MealInput{
		Category:    category,
		Name:        name,
		Ingredients: ingredients,
	})
	if err != nil {
		return model.Meal{}, err
	}

	meal := model.NewMeal(model.Category(input.Category), input.Name, input.Ingredients)
	if err := c.store.InsertMeal(ctx, &meal); err != nil {
		c.logger.Warn("add meal failed", zap.String("name", meal.Name), zap.Error(err))
		return model.Meal{}, domainerrors.Storage("save meal", err)
	}
	if meal.ID <= c.lastID {
		return model.Meal{}, domainerrors.Storage("save meal",
			fmt.Errorf("storage assigned id %d, expected above %d", meal.ID, c.lastID))
	}

	c.index(meal)
	c.logger.Info("meal added",
		zap.Uint("id", meal.ID),
		zap.String("category", string(meal.Category)),
		zap.String("name", meal.Name),
		zap.Int("ingredients", len(meal.Ingredients)),
	)
	return meal, nil
}

// MealsByCategory returns the meals of one category in insertion order, or
// sorted case-insensitively by name.
func (c *CatalogService) MealsByCategory(category model.Category, order Order) []model.Meal {
	var meals []model.Meal
	for _, meal := range c.meals {
		if meal.Category == category {
			meals = append(meals, meal)
		}
	}
	if order == ByName {
		SortByName(meals)
	}
	return meals
}

// StoredMealsByCategory reads one category straight from storage.
func (c *CatalogService) StoredMealsByCategory(ctx context.Context, category model.Category) ([]model.Meal, error) {
	meals, err := c.store.ListMealsByCategory(ctx, category)
	if err != nil {
		return nil, domainerrors.Storage("list meals", err)
	}
	return meals, nil
}

// Meals returns every meal in insertion order.
func (c *CatalogService) Meals() []model.Meal {
	return append([]model.Meal(nil), c.meals...)
}

func (c *CatalogService) MealByID(id uint) (model.Meal, error) {
	pos, ok := c.byID[id]
	if !ok {
		return model.Meal{}, domainerrors.NotFoundf("meal #%d not found", id)
	}
	return c.meals[pos], nil
}

// MealByName finds the first meal whose name matches case-insensitively. When
// the index misses but storage knows the name, the index is reloaded.
func (c *CatalogService) MealByName(ctx context.Context, name string) (model.Meal, error) {
	if meal, ok := findByName(c.meals, name); ok {
		return meal, nil
	}

	id, err := c.store.FindMealIDByName(ctx, name)
	if err != nil {
		if domainerrors.Is(err, domainerrors.ErrNotFound) {
			return model.Meal{}, err
		}
		return model.Meal{}, domainerrors.Storage("find meal", err)
	}

	c.logger.Info("catalog out of date, reloading", zap.String("name", name), zap.Uint("id", id))
	if err := c.Load(ctx); err != nil {
		return model.Meal{}, err
	}
	return c.MealByID(id)
}

// Ingredients returns the ingredient list of a meal from the index.
func (c *CatalogService) Ingredients(id uint) ([]string, bool) {
	list, ok := c.ingredients[id]
	return list, ok
}

func (c *CatalogService) index(meal model.Meal) {
	c.byID[meal.ID] = len(c.meals)
	c.meals = append(c.meals, meal)
	c.ingredients[meal.ID] = meal.IngredientNames()
	if meal.ID > c.lastID {
		c.lastID = meal.ID
	}
}

// SortByName sorts meals by case-folded name, keeping the relative order of equal names.
func SortByName(meals []model.Meal) {
	type keyed struct {
		key  string
		meal model.Meal
	}
	fold := cases.Fold()
	sorted := make([]keyed, len(meals))
	for i, meal := range meals {
		sorted[i] = keyed{key: fold.String(meal.Name), meal: meal}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].key < sorted[j].key
	})
	for i := range sorted {
		meals[i] = sorted[i].meal
	}
}

func findByName(meals []model.Meal, name string) (model.Meal, bool) {
	fold := cases.Fold()
	want := fold.String(name)
	for _, meal := range meals {
		if fold.String(meal.Name) == want {
			return meal, true
		}
	}
	return model.Meal{}, false
}
