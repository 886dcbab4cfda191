// Package session runs the interactive meal planner command loop over a
// line-based input/output, such as the console or a Telegram chat.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	domainerrors "meal-planner/internal/errors"
	"meal-planner/internal/model"
	"meal-planner/internal/service"
	"meal-planner/internal/validation"
)

// LineIO is a blocking, line-oriented conversation with the user.
// ReadLine returns io.EOF when the user is gone.
type LineIO interface {
	ReadLine(ctx context.Context) (string, error)
	WriteLine(line string) error
}

const (
	cmdAdd  = "add"
	cmdShow = "show"
	cmdPlan = "plan"
	cmdSave = "save"
	cmdExit = "exit"
)

const (
	msgMainPrompt      = "What would you like to do (add, show, plan, save, exit)?"
	msgAddCategory     = "Which meal do you want to add (breakfast, lunch, dinner)?"
	msgShowCategory    = "Which category do you want to print (breakfast, lunch, dinner)?"
	msgWrongCategory   = "Wrong meal category! Choose from: breakfast, lunch, dinner."
	msgMealName        = "Input the meal's name:"
	msgIngredients     = "Input the ingredients:"
	msgWrongFormat     = "Wrong format. Use letters only!"
	msgMealAdded       = "The meal has been added!"
	msgNoMeals         = "No meals found."
	msgMealMissing     = "This meal doesn’t exist. Choose a meal from the list above."
	msgPlanFirst       = "Unable to save. Plan your meals first."
	msgFilename        = "Input a filename:"
	msgEmptyFilename   = "The filename cannot be empty."
	msgSaved           = "Saved!"
	msgNothingToPlan   = "Nothing to plan. Add some meals first."
	msgInvalidChoice   = "Invalid choice"
	msgBye             = "Bye!"
	msgSomethingFailed = "Something went wrong: %s"
)

// Options tunes the session behaviour.
type Options struct {
	// ReportInvalidChoice answers unknown commands instead of ignoring them.
	ReportInvalidChoice bool
}

// Session wires the meal planner services to a LineIO.
type Session struct {
	io        LineIO
	catalog   *service.CatalogService
	planner   *service.PlanService
	shopping  *service.ShoppingService
	validator *validation.Validator
	logger    *zap.Logger
	opts      Options

	announcedDay model.Day
}

func New(lineIO LineIO, catalog *service.CatalogService, planner *service.PlanService, shopping *service.ShoppingService, logger *zap.Logger, opts Options) *Session {
	return &Session{
		io:        lineIO,
		catalog:   catalog,
		planner:   planner,
		shopping:  shopping,
		validator: validation.New(),
		logger:    logger,
		opts:      opts,
	}
}

// Run reads commands until "exit", end of input, or ctx cancellation.
func (s *Session) Run(ctx context.Context) error {
	for {
		if err := s.io.WriteLine(msgMainPrompt); err != nil {
			return err
		}
		line, err := s.io.ReadLine(ctx)
		if err != nil {
			return endOfInput(err)
		}

		command := strings.TrimSpace(line)
		s.logger.Debug("command", zap.String("command", command))

		switch command {
		case cmdExit:
			return s.io.WriteLine(msgBye)
		case cmdAdd:
			err = s.handleAdd(ctx)
		case cmdShow:
			err = s.handleShow(ctx)
		case cmdPlan:
			err = s.handlePlan(ctx)
		case cmdSave:
			err = s.handleSave(ctx)
		case "":
		default:
			if s.opts.ReportInvalidChoice {
				err = s.io.WriteLine(msgInvalidChoice)
			}
		}
		if err != nil {
			return endOfInput(err)
		}
	}
}

func (s *Session) handleAdd(ctx context.Context) error {
	category, err := s.readUntil(ctx, msgAddCategory, msgWrongCategory, s.validator.IsValidCategory)
	if err != nil {
		return err
	}
	name, err := s.readUntil(ctx, msgMealName, msgWrongFormat, s.validator.IsValidName)
	if err != nil {
		return err
	}
	line, err := s.readUntil(ctx, msgIngredients, msgWrongFormat, func(line string) bool {
		return s.validator.IsValidIngredientList(validation.ParseIngredients(line))
	})
	if err != nil {
		return err
	}

	if _, err := s.catalog.AddMeal(ctx, category, name, validation.ParseIngredients(line)); err != nil {
		return s.report(err, "Unable to add the meal: %s")
	}
	return s.io.WriteLine(msgMealAdded)
}

func (s *Session) handleShow(ctx context.Context) error {
	category, err := s.readUntil(ctx, msgShowCategory, msgWrongCategory, s.validator.IsValidCategory)
	if err != nil {
		return err
	}

	meals := s.catalog.MealsByCategory(model.Category(category), service.InsertionOrder)
	if len(meals) == 0 {
		return s.io.WriteLine(msgNoMeals)
	}

	lines := []string{"", "Category: " + category}
	for _, meal := range meals {
		lines = append(lines, "Name: "+meal.Name, "Ingredients:")
		lines = append(lines, meal.IngredientNames()...)
	}
	return s.writeLines(lines...)
}

func (s *Session) handlePlan(ctx context.Context) error {
	s.announcedDay = ""
	if _, err := s.planner.Run(ctx, s); err != nil {
		if domainerrors.Is(err, domainerrors.ErrUnplannable) {
			return s.io.WriteLine(msgNothingToPlan)
		}
		return s.report(err, "Unable to plan the meals: %s")
	}
	return s.printWeeklyPlan()
}

func (s *Session) handleSave(ctx context.Context) error {
	ok, err := s.shopping.HasPlan(ctx)
	if err != nil {
		return s.report(err, msgSomethingFailed)
	}
	if !ok {
		return s.io.WriteLine(msgPlanFirst)
	}

	filename, err := s.readUntil(ctx, msgFilename, msgEmptyFilename, func(line string) bool {
		return strings.TrimSpace(line) != ""
	})
	if err != nil {
		return err
	}

	if _, err := s.shopping.Export(ctx, strings.TrimSpace(filename)); err != nil {
		if domainerrors.Is(err, domainerrors.ErrPrecondition) {
			return s.io.WriteLine(msgPlanFirst)
		}
		s.logger.Warn("save shopping list", zap.Error(err))
		return s.io.WriteLine(fmt.Sprintf("Unable to save the shopping list: %s", err))
	}
	return s.io.WriteLine(msgSaved)
}

// ChooseMeal lists the options and asks until one of them is named.
func (s *Session) ChooseMeal(ctx context.Context, slot model.Slot, options []model.Meal) (string, error) {
	if err := s.announceDay(slot.Day); err != nil {
		return "", err
	}
	for _, meal := range options {
		if err := s.io.WriteLine(meal.Name); err != nil {
			return "", err
		}
	}

	prompt := fmt.Sprintf("Choose the %s for %s from the list above:", slot.Category, slot.Day)
	return s.readUntil(ctx, prompt, msgMealMissing, func(line string) bool {
		for _, meal := range options {
			if strings.EqualFold(meal.Name, line) {
				return true
			}
		}
		return false
	})
}

// SlotSkipped tells the user a slot has nothing to choose from.
func (s *Session) SlotSkipped(_ context.Context, slot model.Slot, _ error) error {
	if err := s.announceDay(slot.Day); err != nil {
		return err
	}
	return s.io.WriteLine(fmt.Sprintf("There are no %s meals to choose from. %s stays %q.",
		slot.Category, slot.Category.Title(), model.NotPlanned))
}

// DayPlanned confirms that a day is complete.
func (s *Session) DayPlanned(_ context.Context, day model.Day) error {
	return s.writeLines(fmt.Sprintf("Yeah! We planned the meals for %s.", day), "")
}

func (s *Session) printWeeklyPlan() error {
	for _, day := range model.Days {
		lines := []string{string(day)}
		for _, category := range model.Categories {
			lines = append(lines, fmt.Sprintf("%s: %s", category.Title(), s.planner.EntryFor(day, category)))
		}
		lines = append(lines, "")
		if err := s.writeLines(lines...); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) announceDay(day model.Day) error {
	if s.announcedDay == day {
		return nil
	}
	s.announcedDay = day
	return s.io.WriteLine(string(day))
}

// readUntil writes prompt and reads lines until valid accepts one; every
// rejected line is answered with retry.
func (s *Session) readUntil(ctx context.Context, prompt, retry string, valid func(string) bool) (string, error) {
	if err := s.io.WriteLine(prompt); err != nil {
		return "", err
	}
	for {
		line, err := s.io.ReadLine(ctx)
		if err != nil {
			return "", err
		}
		if valid(line) {
			return line, nil
		}
		if err := s.io.WriteLine(retry); err != nil {
			return "", err
		}
	}
}

// report shows a domain error to the user and keeps the session going. Other
// errors come from the LineIO and end the session.
func (s *Session) report(err error, format string) error {
	var domainErr *domainerrors.Error
	if !errors.As(err, &domainErr) {
		return err
	}
	s.logger.Warn("operation failed", zap.String("code", string(domainErr.Code)), zap.Error(err))
	return s.io.WriteLine(fmt.Sprintf(format, err))
}

func (s *Session) writeLines(lines ...string) error {
	for _, line := range lines {
		if err := s.io.WriteLine(line); err != nil {
			return err
		}
	}
	return nil
}

func endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
