package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	domainerrors "meal-planner/internal/errors"
	"meal-planner/internal/session"
	"meal-planner/internal/validation"
)

var telegramCmd = &cobra.Command{
	Use:   "telegram",
	Short: "Run the planner session in a private Telegram chat",
	Long: `Runs the same session as the console over the Telegram Bot API.

Only messages from TELEGRAM_ALLOW_USER_ID are answered. Commands may be sent
with or without a leading slash.`,
	Args: cobra.NoArgs,
	RunE: runTelegram,
}

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write the shopping list of the stored plan to a file",
	Long: `Aggregates the ingredients of the stored weekly plan and writes one line per
ingredient, sorted by name. The file defaults to export_path.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

var mealsCmd = &cobra.Command{
	Use:   "meals <category>",
	Short: "List the stored meals of a category",
	Args:  cobra.ExactArgs(1),
	RunE:  runMeals,
}

func runConsole(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	return a.runSession(cmd.Context(), session.NewConsole(cmd.InOrStdin(), cmd.OutOrStdout()))
}

func runTelegram(cmd *cobra.Command, args []string) error {
	if err := cfg.ValidateTelegram(); err != nil {
		return err
	}
	a, err := newApp(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	tg, err := session.NewTelegram(cfg.TelegramToken, cfg.TelegramAllowUserID, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := tg.Close(); err != nil {
			log.Warn("close telegram session", zap.Error(err))
		}
	}()

	log.Info("telegram session started", zap.Int64("user", cfg.TelegramAllowUserID))
	return a.runSession(cmd.Context(), tg)
}

func runExport(cmd *cobra.Command, args []string) error {
	filename := cfg.ExportPath
	if len(args) == 1 {
		filename = args[0]
	}

	a, err := newApp(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	n, err := a.shopping.ExportStored(cmd.Context(), filename)
	if domainerrors.Is(err, domainerrors.ErrPrecondition) {
		return fmt.Errorf("unable to save: plan your meals first")
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %d items to %s\n", n, filename)
	return nil
}

func runMeals(cmd *cobra.Command, args []string) error {
	category, ok := validation.ParseCategory(args[0])
	if !ok {
		return fmt.Errorf("wrong meal category %q: choose from breakfast, lunch, dinner", args[0])
	}

	a, err := newApp(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	meals, err := a.catalog.StoredMealsByCategory(cmd.Context(), category)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(meals) == 0 {
		fmt.Fprintln(out, "No meals found.")
		return nil
	}
	fmt.Fprintf(out, "Category: %s\n", category)
	for _, meal := range meals {
		fmt.Fprintf(out, "\nName: %s\nIngredients:\n", meal.Name)
		for _, name := range meal.IngredientNames() {
			fmt.Fprintln(out, name)
		}
	}
	return nil
}
