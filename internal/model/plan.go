package model

import (
	"fmt"
	"time"
)

// NotPlanned is shown for a slot without a plan entry.
const NotPlanned = "Not planned"

// PlanEntry assigns a meal to one (day, category) slot.
type PlanEntry struct {
	ID        uint     `gorm:"primaryKey"`
	Day       Day      `gorm:"uniqueIndex:idx_plan_slot"`
	Category  Category `gorm:"uniqueIndex:idx_plan_slot"`
	MealID    uint     `gorm:"index"`
	MealName  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Slot returns the (day, category) key of the entry.
func (e PlanEntry) Slot() Slot {
	return Slot{Day: e.Day, Category: e.Category}
}

// ShoppingListItem is a derived ingredient count; it is never stored.
type ShoppingListItem struct {
	Ingredient string
	Count      int
}

// String renders the item as a shopping list line.
func (i ShoppingListItem) String() string {
	if i.Count > 1 {
		return fmt.Sprintf("%s x%d", i.Ingredient, i.Count)
	}
	return i.Ingredient
}
