package service

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	domainerrors "meal-planner/internal/errors"
	"meal-planner/internal/model"
)

// PlanPrompter is the interactive side of weekly planning.
type PlanPrompter interface {
	// ChooseMeal returns the name picked for slot. options are sorted by name
	// and never empty; implementations re-ask until the answer matches one.
	ChooseMeal(ctx context.Context, slot model.Slot, options []model.Meal) (string, error)
	// SlotSkipped reports a slot that cannot be planned.
	SlotSkipped(ctx context.Context, slot model.Slot, reason error) error
	// DayPlanned is called after the last category of day.
	DayPlanned(ctx context.Context, day model.Day) error
}

// PlanResult describes one planning run.
type PlanResult struct {
	Entries []model.PlanEntry
	Skipped []model.Slot
}

// PlanService builds and keeps the weekly plan.
type PlanService struct {
	catalog *CatalogService
	store   PlanStore
	logger  *zap.Logger
	entries map[model.Slot]model.PlanEntry
}

func NewPlanService(catalog *CatalogService, store PlanStore, logger *zap.Logger) *PlanService {
	return &PlanService{
		catalog: catalog,
		store:   store,
		logger:  logger,
		entries: make(map[model.Slot]model.PlanEntry),
	}
}

// Load restores the plan from storage.
func (s *PlanService) Load(ctx context.Context) error {
	entries, err := s.store.ListPlanEntries(ctx)
	if err != nil {
		return domainerrors.Storage("load plan", err)
	}
	s.entries = make(map[model.Slot]model.PlanEntry, len(entries))
	for _, entry := range entries {
		s.entries[entry.Slot()] = entry
	}
	return nil
}

// Run asks the prompter for every (day, category) slot of the week and stores
// the chosen meals in one write. Slots whose category has no meals are
// skipped. The stored plan only changes when the whole week was collected.
func (s *PlanService) Run(ctx context.Context, prompter PlanPrompter) (PlanResult, error) {
	var result PlanResult

	for _, day := range model.Days {
		for _, category := range model.Categories {
			slot := model.Slot{Day: day, Category: category}

			options := s.catalog.MealsByCategory(category, ByName)
			if len(options) == 0 {
				reason := domainerrors.Unplannable(fmt.Sprintf("no %s meals in the catalog", category))
				result.Skipped = append(result.Skipped, slot)
				if err := prompter.SlotSkipped(ctx, slot, reason); err != nil {
					return result, err
				}
				continue
			}

			name, err := prompter.ChooseMeal(ctx, slot, options)
			if err != nil {
				return result, err
			}
			meal, ok := findByName(options, name)
			if !ok {
				return result, domainerrors.NotFoundf("%q is not a %s option", name, category)
			}
			if _, err := s.catalog.MealByID(meal.ID); err != nil {
				return result, err
			}

			result.Entries = append(result.Entries, model.PlanEntry{
				Day:      day,
				Category: category,
				MealID:   meal.ID,
				MealName: meal.Name,
			})
		}
		if err := prompter.DayPlanned(ctx, day); err != nil {
			return result, err
		}
	}

	if len(result.Entries) == 0 {
		return result, domainerrors.Unplannable("the catalog has no meals to plan")
	}

	if err := s.store.SavePlanEntries(ctx, result.Entries); err != nil {
		s.logger.Error("save plan failed", zap.Error(err))
		return result, domainerrors.Storage("save plan", err)
	}
	for _, entry := range result.Entries {
		s.entries[entry.Slot()] = entry
	}

	s.logger.Info("weekly plan saved",
		zap.Int("entries", len(result.Entries)),
		zap.Int("skipped", len(result.Skipped)),
	)
	return result, nil
}

// EntryFor returns the planned meal name for a slot, or model.NotPlanned.
func (s *PlanService) EntryFor(day model.Day, category model.Category) string {
	entry, ok := s.entries[model.Slot{Day: day, Category: category}]
	if !ok {
		return model.NotPlanned
	}
	return entry.MealName
}

// Entries returns the plan ordered Monday→Sunday, breakfast→dinner.
func (s *PlanService) Entries() []model.PlanEntry {
	entries := make([]model.PlanEntry, 0, len(s.entries))
	for _, entry := range s.entries {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Slot().Less(entries[j].Slot())
	})
	return entries
}
