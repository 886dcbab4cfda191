package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	domainerrors "meal-planner/internal/errors"
	"meal-planner/internal/model"
)

// MealRepository persists meals together with their ingredients.
type MealRepository struct {
	db *gorm.DB
}

func NewMealRepository(db *gorm.DB) *MealRepository {
	return &MealRepository{db: db}
}

// InsertMeal stores the meal and its ingredients in one transaction and sets meal.ID.
func (r *MealRepository) InsertMeal(ctx context.Context, meal *model.Meal) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(meal).Error
	})
	if err != nil {
		return fmt.Errorf("create meal: %w", err)
	}
	return nil
}

func (r *MealRepository) ListMeals(ctx context.Context) ([]model.Meal, error) {
	var meals []model.Meal
	if err := r.withIngredients(ctx).Order("id ASC").Find(&meals).Error; err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}
	return meals, nil
}

func (r *MealRepository) ListMealsByCategory(ctx context.Context, category model.Category) ([]model.Meal, error) {
	var meals []model.Meal
	if err := r.withIngredients(ctx).Where("category = ?", category).Order("id ASC").Find(&meals).Error; err != nil {
		return nil, fmt.Errorf("list meals by category: %w", err)
	}
	return meals, nil
}

// FindMealIDByName matches the name case-insensitively and returns the oldest match.
func (r *MealRepository) FindMealIDByName(ctx context.Context, name string) (uint, error) {
	var meal model.Meal
	err := r.db.WithContext(ctx).Select("id").
		Where("name = ? COLLATE NOCASE", name).
		Order("id ASC").
		First(&meal).Error
	switch {
	case err == nil:
		return meal.ID, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return 0, domainerrors.NotFoundf("meal %q not found", name)
	default:
		return 0, fmt.Errorf("find meal: %w", err)
	}
}

func (r *MealRepository) withIngredients(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	})
}
