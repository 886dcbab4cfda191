package service

import (
	"context"

	"go.uber.org/zap"

	domainerrors "meal-planner/internal/errors"
	"meal-planner/internal/model"
)

// ShoppingService derives the weekly shopping list from the plan.
type ShoppingService struct {
	catalog  *CatalogService
	plan     *PlanService
	store    PlanStore
	exporter Exporter
	logger   *zap.Logger
}

func NewShoppingService(catalog *CatalogService, plan *PlanService, store PlanStore, exporter Exporter, logger *zap.Logger) *ShoppingService {
	return &ShoppingService{
		catalog:  catalog,
		plan:     plan,
		store:    store,
		exporter: exporter,
		logger:   logger,
	}
}

// HasPlan reports whether storage holds at least one plan entry.
func (s *ShoppingService) HasPlan(ctx context.Context) (bool, error) {
	ok, err := s.store.HasAnyPlanEntries(ctx)
	if err != nil {
		return false, domainerrors.Storage("check plan", err)
	}
	return ok, nil
}

// WeeklyShoppingList counts every ingredient of every planned meal. Names are
// compared exactly and items keep first-seen order.
func (s *ShoppingService) WeeklyShoppingList(ctx context.Context) ([]model.ShoppingListItem, error) {
	entries := s.plan.Entries()
	if len(entries) == 0 {
		return nil, domainerrors.Precondition("nothing to aggregate: plan your meals first")
	}

	lists := make([][]string, 0, len(entries))
	for _, entry := range entries {
		ingredients, ok := s.catalog.Ingredients(entry.MealID)
		if !ok {
			return nil, domainerrors.NotFoundf("planned meal #%d (%s) not found", entry.MealID, entry.MealName)
		}
		lists = append(lists, ingredients)
	}
	return Aggregate(lists), nil
}

// Lines renders WeeklyShoppingList as export lines.
func (s *ShoppingService) Lines(ctx context.Context) ([]string, error) {
	items, err := s.WeeklyShoppingList(ctx)
	if err != nil {
		return nil, err
	}
	return Render(items), nil
}

// Export writes the shopping list to filename and returns the number of lines.
func (s *ShoppingService) Export(ctx context.Context, filename string) (int, error) {
	ok, err := s.HasPlan(ctx)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, domainerrors.Precondition("unable to save: plan your meals first")
	}

	lines, err := s.Lines(ctx)
	if err != nil {
		return 0, err
	}
	return s.write(filename, lines)
}

// StoredShoppingList aggregates inside storage without touching in-memory state.
func (s *ShoppingService) StoredShoppingList(ctx context.Context) ([]model.ShoppingListItem, error) {
	ok, err := s.HasPlan(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domainerrors.Precondition("nothing to aggregate: plan your meals first")
	}
	items, err := s.store.ShoppingListRows(ctx)
	if err != nil {
		return nil, domainerrors.Storage("aggregate shopping list", err)
	}
	return items, nil
}

// ExportStored writes StoredShoppingList to filename.
func (s *ShoppingService) ExportStored(ctx context.Context, filename string) (int, error) {
	items, err := s.StoredShoppingList(ctx)
	if err != nil {
		return 0, err
	}
	return s.write(filename, Render(items))
}

func (s *ShoppingService) write(filename string, lines []string) (int, error) {
	if err := s.exporter.WriteLines(filename, lines); err != nil {
		s.logger.Warn("export failed", zap.String("file", filename), zap.Error(err))
		return 0, err
	}
	s.logger.Info("shopping list exported", zap.String("file", filename), zap.Int("items", len(lines)))
	return len(lines), nil
}

// Aggregate merges ingredient lists into counted items in first-seen order.
func Aggregate(lists [][]string) []model.ShoppingListItem {
	var items []model.ShoppingListItem
	pos := make(map[string]int)
	for _, list := range lists {
		for _, ingredient := range list {
			if i, ok := pos[ingredient]; ok {
				items[i].Count++
				continue
			}
			pos[ingredient] = len(items)
			items = append(items, model.ShoppingListItem{Ingredient: ingredient, Count: 1})
		}
	}
	return items
}

// Render formats items as shopping list lines.
func Render(items []model.ShoppingListItem) []string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, item.String())
	}
	return lines
}
