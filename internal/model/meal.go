package model

import "time"

// Meal is a catalog record. It is never modified after creation.
type Meal struct {
	ID          uint         `gorm:"primaryKey"`
	Category    Category     `gorm:"index"`
	Name        string       `gorm:"index"`
	Ingredients []Ingredient `gorm:"foreignKey:MealID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time
}

// Ingredient is one position in a meal's ingredient list. Duplicates are allowed.
type Ingredient struct {
	ID       uint `gorm:"primaryKey"`
	MealID   uint `gorm:"index"`
	Position int
	Name     string
}

// NewMeal builds an unsaved meal with ingredients in the given order.
func NewMeal(category Category, name string, ingredients []string) Meal {
	meal := Meal{Category: category, Name: name}
	for i, ingredient := range ingredients {
		meal.Ingredients = append(meal.Ingredients, Ingredient{Position: i, Name: ingredient})
	}
	return meal
}

// IngredientNames returns the ingredient names in list order.
func (m Meal) IngredientNames() []string {
	names := make([]string, 0, len(m.Ingredients))
	for _, ingredient := range m.Ingredients {
		names = append(names, ingredient.Name)
	}
	return names
}
