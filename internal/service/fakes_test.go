package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	domainerrors "meal-planner/internal/errors"
	"meal-planner/internal/model"
	"meal-planner/internal/validation"
)

var errDiskFull = errors.New("disk full")

// memStore keeps meals and plan entries in memory.
type memStore struct {
	meals   []model.Meal
	plan    []model.PlanEntry
	nextID  uint
	failAdd bool
	failAll bool
}

func (m *memStore) InsertMeal(_ context.Context, meal *model.Meal) error {
	if m.failAdd || m.failAll {
		return errDiskFull
	}
	m.nextID++
	meal.ID = m.nextID
	m.meals = append(m.meals, *meal)
	return nil
}

func (m *memStore) ListMeals(context.Context) ([]model.Meal, error) {
	if m.failAll {
		return nil, errDiskFull
	}
	return append([]model.Meal(nil), m.meals...), nil
}

func (m *memStore) ListMealsByCategory(_ context.Context, category model.Category) ([]model.Meal, error) {
	var out []model.Meal
	for _, meal := range m.meals {
		if meal.Category == category {
			out = append(out, meal)
		}
	}
	return out, nil
}

func (m *memStore) FindMealIDByName(_ context.Context, name string) (uint, error) {
	for _, meal := range m.meals {
		if strings.EqualFold(meal.Name, name) {
			return meal.ID, nil
		}
	}
	return 0, domainerrors.NotFoundf("meal %q not found", name)
}

func (m *memStore) SavePlanEntries(_ context.Context, entries []model.PlanEntry) error {
	if m.failAll {
		return errDiskFull
	}
	for _, entry := range entries {
		replaced := false
		for i := range m.plan {
			if m.plan[i].Slot() == entry.Slot() {
				m.plan[i] = entry
				replaced = true
			}
		}
		if !replaced {
			m.plan = append(m.plan, entry)
		}
	}
	return nil
}

func (m *memStore) ListPlanEntries(context.Context) ([]model.PlanEntry, error) {
	return append([]model.PlanEntry(nil), m.plan...), nil
}

func (m *memStore) HasAnyPlanEntries(context.Context) (bool, error) {
	if m.failAll {
		return false, errDiskFull
	}
	return len(m.plan) > 0, nil
}

func (m *memStore) ShoppingListRows(context.Context) ([]model.ShoppingListItem, error) {
	var lists [][]string
	for _, entry := range m.plan {
		for _, meal := range m.meals {
			if meal.ID == entry.MealID {
				lists = append(lists, meal.IngredientNames())
			}
		}
	}
	items := Aggregate(lists)
	sortItems(items)
	return items, nil
}

// recordingExporter captures written files.
type recordingExporter struct {
	files map[string][]string
	err   error
}

func (e *recordingExporter) WriteLines(filename string, lines []string) error {
	if e.err != nil {
		return e.err
	}
	if e.files == nil {
		e.files = make(map[string][]string)
	}
	e.files[filename] = lines
	return nil
}

// scriptedPrompter answers ChooseMeal from a fixed list of names per category.
type scriptedPrompter struct {
	choices map[model.Category][]string
	asked   []model.Slot
	skipped []model.Slot
	days    []model.Day
}

func (p *scriptedPrompter) ChooseMeal(_ context.Context, slot model.Slot, options []model.Meal) (string, error) {
	p.asked = append(p.asked, slot)
	names := p.choices[slot.Category]
	if len(names) == 0 {
		return options[0].Name, nil
	}
	return names[slot.Day.Index()%len(names)], nil
}

func (p *scriptedPrompter) SlotSkipped(_ context.Context, slot model.Slot, _ error) error {
	p.skipped = append(p.skipped, slot)
	return nil
}

func (p *scriptedPrompter) DayPlanned(_ context.Context, day model.Day) error {
	p.days = append(p.days, day)
	return nil
}

type fixture struct {
	store    *memStore
	catalog  *CatalogService
	plan     *PlanService
	shopping *ShoppingService
	exporter *recordingExporter
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := zaptest.NewLogger(t)
	store := &memStore{}
	exporter := &recordingExporter{}
	catalog := NewCatalogService(store, validation.New(), logger)
	plan := NewPlanService(catalog, store, logger)
	return &fixture{
		store:    store,
		catalog:  catalog,
		plan:     plan,
		shopping: NewShoppingService(catalog, plan, store, exporter, logger),
		exporter: exporter,
	}
}

func sortItems(items []model.ShoppingListItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Ingredient < items[j].Ingredient
	})
}
