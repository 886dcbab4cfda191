// Package validation holds the format rules shared by meal entry and planning.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	domainerrors "meal-planner/internal/errors"
	"meal-planner/internal/model"
)

var lettersPattern = regexp.MustCompile(`^[A-Za-z ]+$`)

// MealInput is raw meal data as typed by the user.
type MealInput struct {
	Category    string   `label:"category" validate:"required,oneof=breakfast lunch dinner"`
	Name        string   `label:"name" validate:"required,letters"`
	Ingredients []string `label:"ingredients" validate:"required,min=1,dive,required,letters"`
}

// Normalize trims the name and every ingredient.
func (in MealInput) Normalize() MealInput {
	out := MealInput{
		Category: in.Category,
		Name:     strings.TrimSpace(in.Name),
	}
	for _, ingredient := range in.Ingredients {
		out.Ingredients = append(out.Ingredients, strings.TrimSpace(ingredient))
	}
	return out
}

// Validator wraps go-playground/validator with domain error conversion.
type Validator struct {
	v *validator.Validate
}

// New creates a validator with the meal planner rules registered.
func New() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if label := fld.Tag.Get("label"); label != "" {
			return label
		}
		return strings.ToLower(fld.Name)
	})

	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("letters", func(fl validator.FieldLevel) bool {
		return lettersPattern.MatchString(fl.Field().String())
	})

	return &Validator{v: v}
}

// IsValidCategory reports whether s is exactly one of the known categories.
func (v *Validator) IsValidCategory(s string) bool {
	return v.v.Var(s, "required,oneof=breakfast lunch dinner") == nil
}

// IsValidName reports whether s is non-empty letters and spaces after trimming.
func (v *Validator) IsValidName(s string) bool {
	return v.v.Var(strings.TrimSpace(s), "required,letters") == nil
}

// IsValidIngredientList reports whether every element, trimmed, is non-empty
// letters and spaces. An empty list is rejected.
func (v *Validator) IsValidIngredientList(list []string) bool {
	trimmed := make([]string, 0, len(list))
	for _, item := range list {
		trimmed = append(trimmed, strings.TrimSpace(item))
	}
	return v.v.Var(trimmed, "required,min=1,dive,required,letters") == nil
}

// ValidateMeal normalizes and checks in, returning a validation error with
// per-field details when any rule fails.
func (v *Validator) ValidateMeal(in MealInput) (MealInput, error) {
	normalized := in.Normalize()
	if err := v.v.Struct(normalized); err != nil {
		return normalized, v.formatError(err)
	}
	return normalized, nil
}

func (v *Validator) formatError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	fieldErrors := make(map[string]string)
	for _, e := range validationErrs {
		fieldErrors[e.Field()] = friendlyMessage(e)
	}
	return domainerrors.ValidationWithDetails("invalid meal", fieldErrors)
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must have at least %s entries", e.Param())
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(e.Param(), " ", ", ")
	case "letters":
		return "must contain letters and spaces only"
	default:
		return "is invalid"
	}
}

// ParseIngredients splits a comma-delimited line and trims every element.
func ParseIngredients(line string) []string {
	parts := strings.Split(line, ",")
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
	}
	return parts
}

var defaultValidator = New()

// IsValidCategory checks s with the package default validator.
func IsValidCategory(s string) bool { return defaultValidator.IsValidCategory(s) }

// IsValidName checks s with the package default validator.
func IsValidName(s string) bool { return defaultValidator.IsValidName(s) }

// IsValidIngredientList checks list with the package default validator.
func IsValidIngredientList(list []string) bool {
	return defaultValidator.IsValidIngredientList(list)
}

// ParseCategory converts s into a Category when it is valid.
func ParseCategory(s string) (model.Category, bool) {
	if !IsValidCategory(s) {
		return "", false
	}
	return model.Category(s), true
}
