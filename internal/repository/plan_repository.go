package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"meal-planner/internal/model"
)

// PlanRepository stores the weekly plan, one row per (day, category).
type PlanRepository struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

// SavePlanEntries writes all entries in one transaction. An entry for an
// already planned slot replaces the stored meal.
func (r *PlanRepository) SavePlanEntries(ctx context.Context, entries []model.PlanEntry) error {
	if len(entries) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "day"}, {Name: "category"}},
			DoUpdates: clause.AssignmentColumns([]string{"meal_id", "meal_name", "updated_at"}),
		}).Create(&entries).Error
	})
	if err != nil {
		return fmt.Errorf("save plan: %w", err)
	}
	return nil
}

func (r *PlanRepository) ListPlanEntries(ctx context.Context) ([]model.PlanEntry, error) {
	var entries []model.PlanEntry
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list plan: %w", err)
	}
	return entries, nil
}

func (r *PlanRepository) HasAnyPlanEntries(ctx context.Context) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.PlanEntry{}).Count(&count).Error; err != nil {
		return false, fmt.Errorf("count plan: %w", err)
	}
	return count > 0, nil
}

// ShoppingListRows counts ingredient occurrences across all planned meals,
// grouped by exact ingredient name and ordered by name.
func (r *PlanRepository) ShoppingListRows(ctx context.Context) ([]model.ShoppingListItem, error) {
	var rows []model.ShoppingListItem
	err := r.db.WithContext(ctx).
		Table("plan_entries").
		Select("ingredients.name AS ingredient, COUNT(*) AS count").
		Joins("JOIN ingredients ON ingredients.meal_id = plan_entries.meal_id").
		Group("ingredients.name").
		Order("ingredients.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("shopping list: %w", err)
	}
	return rows, nil
}
