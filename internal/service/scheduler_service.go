package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	domainerrors "meal-planner/internal/errors"
)

// SchedulerService wraps cron-based jobs.
type SchedulerService struct {
	cron   *cron.Cron
	logger *zap.Logger
}

func NewSchedulerService(loc *time.Location, logger *zap.Logger) *SchedulerService {
	return &SchedulerService{
		cron:   cron.New(cron.WithLocation(loc), cron.WithSeconds()),
		logger: logger,
	}
}

// Schedule registers job. spec is either a daily "HH:MM" time or a cron
// expression with seconds ("0 0 18 * * SAT", "@weekly").
func (s *SchedulerService) Schedule(spec string, job func()) (cron.EntryID, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return 0, fmt.Errorf("empty schedule")
	}
	if isClockTime(spec) {
		daily, err := buildDailySpec(spec)
		if err != nil {
			return 0, err
		}
		spec = daily
	}
	return s.cron.AddFunc(spec, job)
}

// ScheduleShoppingExport exports the stored shopping list to filename on spec.
// Runs without a plan are skipped.
func (s *SchedulerService) ScheduleShoppingExport(spec string, shopping *ShoppingService, filename string) (cron.EntryID, error) {
	return s.Schedule(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if _, err := shopping.ExportStored(ctx, filename); err != nil {
			if domainerrors.Is(err, domainerrors.ErrPrecondition) {
				s.logger.Debug("scheduled export skipped", zap.String("reason", err.Error()))
				return
			}
			s.logger.Warn("scheduled export failed", zap.String("file", filename), zap.Error(err))
		}
	})
}

func (s *SchedulerService) Start() {
	s.cron.Start()
}

func (s *SchedulerService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func isClockTime(spec string) bool {
	return !strings.ContainsAny(spec, " @") && strings.Count(spec, ":") == 1
}

func buildDailySpec(timeStr string) (string, error) {
	parts := strings.Split(timeStr, ":")
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid time %q, expected HH:MM", timeStr)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return "", fmt.Errorf("invalid hour in %q", timeStr)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return "", fmt.Errorf("invalid minute in %q", timeStr)
	}
	// cron format: second minute hour dom month dow
	return fmt.Sprintf("0 %d %d * * *", minute, hour), nil
}
