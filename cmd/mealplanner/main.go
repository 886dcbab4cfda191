package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"meal-planner/internal/config"
	"meal-planner/internal/logger"
)

var (
	configPath string
	dbPath     string
	logLevel   string

	cfg config.Config
	log *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "mealplanner",
	Short: "Plan a week of meals and build the shopping list",
	Long: `mealplanner keeps a catalog of breakfast, lunch and dinner meals,
plans them for every day of the week and exports the aggregated shopping list.

Run without arguments to start the interactive console session:
  add   add a meal to the catalog
  show  print the meals of one category
  plan  choose a meal for every day and category
  save  write the shopping list to a file
  exit  leave`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
	RunE: runConsole,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "mealplanner.yaml", "path to the YAML config file")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database path (overrides DATABASE_URL)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(telegramCmd, exportCmd, mealsCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if dbPath != "" {
		cfg.DatabaseURL = dbPath
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	log, err = logger.New(logger.Config{Level: cfg.LogLevel})
	if err != nil {
		return err
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
