package service

import (
	"context"

	"meal-planner/internal/model"
)

// MealStore persists catalog meals.
type MealStore interface {
	InsertMeal(ctx context.Context, meal *model.Meal) error
	ListMeals(ctx context.Context) ([]model.Meal, error)
	ListMealsByCategory(ctx context.Context, category model.Category) ([]model.Meal, error)
	FindMealIDByName(ctx context.Context, name string) (uint, error)
}

// PlanStore persists the weekly plan and aggregates it.
type PlanStore interface {
	SavePlanEntries(ctx context.Context, entries []model.PlanEntry) error
	ListPlanEntries(ctx context.Context) ([]model.PlanEntry, error)
	HasAnyPlanEntries(ctx context.Context) (bool, error)
	ShoppingListRows(ctx context.Context) ([]model.ShoppingListItem, error)
}

// Exporter writes shopping list lines to a named destination.
type Exporter interface {
	WriteLines(filename string, lines []string) error
}
