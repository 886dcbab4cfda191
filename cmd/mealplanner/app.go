package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"meal-planner/internal/config"
	"meal-planner/internal/export"
	"meal-planner/internal/repository"
	"meal-planner/internal/service"
	"meal-planner/internal/session"
	"meal-planner/internal/validation"
)

// app holds the wired services of one command run.
type app struct {
	cfg       config.Config
	logger    *zap.Logger
	db        *gorm.DB
	catalog   *service.CatalogService
	planner   *service.PlanService
	shopping  *service.ShoppingService
	scheduler *service.SchedulerService
}

func newApp(ctx context.Context, cfg config.Config, logger *zap.Logger) (*app, error) {
	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("db: %w", err)
	}

	mealRepo := repository.NewMealRepository(db)
	planRepo := repository.NewPlanRepository(db)

	catalog := service.NewCatalogService(mealRepo, validation.New(), logger)
	planner := service.NewPlanService(catalog, planRepo, logger)
	shopping := service.NewShoppingService(catalog, planner, planRepo, export.NewFileExporter(""), logger)

	a := &app{
		cfg:      cfg,
		logger:   logger,
		db:       db,
		catalog:  catalog,
		planner:  planner,
		shopping: shopping,
	}
	if err := catalog.Load(ctx); err != nil {
		a.Close()
		return nil, err
	}
	if err := planner.Load(ctx); err != nil {
		a.Close()
		return nil, err
	}
	logger.Debug("state loaded",
		zap.String("db", cfg.DatabaseURL),
		zap.Int("meals", len(catalog.Meals())),
		zap.Int("plan_entries", len(planner.Entries())),
	)
	return a, nil
}

// startScheduler runs the periodic shopping list export when export_schedule is set.
func (a *app) startScheduler() error {
	if a.cfg.ExportSchedule == "" {
		return nil
	}
	scheduler := service.NewSchedulerService(time.Local, a.logger)
	if _, err := scheduler.ScheduleShoppingExport(a.cfg.ExportSchedule, a.shopping, a.cfg.ExportPath); err != nil {
		return fmt.Errorf("schedule export: %w", err)
	}
	scheduler.Start()
	a.scheduler = scheduler
	a.logger.Info("scheduled shopping list export",
		zap.String("schedule", a.cfg.ExportSchedule),
		zap.String("file", a.cfg.ExportPath),
	)
	return nil
}

func (a *app) runSession(ctx context.Context, lineIO session.LineIO) error {
	if err := a.startScheduler(); err != nil {
		return err
	}
	opts := session.Options{ReportInvalidChoice: a.cfg.InvalidChoice == config.InvalidChoiceReport}
	err := session.New(lineIO, a.catalog, a.planner, a.shopping, a.logger, opts).Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (a *app) Close() {
	if a.scheduler != nil {
		a.scheduler.Stop()
	}
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
