package main

import (
	"fmt"
	"os"
	"time"

	"site-planner/internal/config"
	"site-planner/internal/helpers"
	"site-planner/internal/logger"
	"site-planner/internal/models"
	"site-planner/internal/repositories"
	"site-planner/internal/services"

	"github.com/spf13/cobra"
)

var (
	configFile string
	noColor    bool
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "site-planner",
		Short: "Site Planner - work schedules and document checks for landscaping projects",
		Long: `Site Planner turns a project estimate (work items with quantities, labor
rates and dependencies) into a Gantt-style work schedule, and scores how
complete the project's document set is.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				helpers.DisableColor()
			}
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "config.yaml", "Configuration file path")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(scheduleCmd())
	rootCmd.AddCommand(completenessCmd())
	rootCmd.AddCommand(demoCmd())
	rootCmd.AddCommand(showCmd())
	rootCmd.AddCommand(initConfigCmd())

	if err := rootCmd.Execute(); err != nil {
		helpers.PrintError("Error: %v", err)
		os.Exit(1)
	}
}

func scheduleCmd() *cobra.Command {
	var (
		start     string
		strategy  string
		save      bool
		outputDir string
	)

	cmd := &cobra.Command{
		Use:   "schedule [items-file]",
		Short: "Build a work schedule from a YAML or JSON list of work items",
		Long:  "Schedule work items from a file. Without a file the built-in sample estimate is used.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(start, strategy, outputDir)
			if err != nil {
				return err
			}
			defer log.Close()

			itemsFile := ""
			if len(args) == 1 {
				itemsFile = args[0]
			}

			items, err := repositories.NewWorkItemRepository(itemsFile).Load()
			if err != nil {
				return fmt.Errorf("failed to load work items: %w", err)
			}

			projectStart, err := cfg.ProjectStart()
			if err != nil {
				return err
			}

			svc, err := services.NewAnalysisService(cfg, log)
			if err != nil {
				return fmt.Errorf("failed to create analysis service: %w", err)
			}

			result, err := svc.BuildSchedule(items, projectStart)
			if err != nil {
				return err
			}

			svc.DisplaySchedule(result)
			return maybeSave(svc, result, cfg, save)
		},
	}

	cmd.Flags().StringVarP(&start, "start", "s", "", "Project start date (YYYY-MM-DD), overrides config")
	cmd.Flags().StringVar(&strategy, "strategy", "", "Scheduling strategy (graph, single-pass), overrides config")
	cmd.Flags().BoolVar(&save, "save", false, "Save JSON and markdown reports")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Report directory, overrides config")

	return cmd
}

func completenessCmd() *cobra.Command {
	var present []string

	cmd := &cobra.Command{
		Use:   "completeness",
		Short: "Score the completeness of a project's documents",
		Long:  "Score document completeness. Pass the keys of the documents that are present, e.g. --present has_estimate,has_schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup("", "", "")
			if err != nil {
				return err
			}
			defer log.Close()

			svc, err := services.NewAnalysisService(cfg, log)
			if err != nil {
				return fmt.Errorf("failed to create analysis service: %w", err)
			}

			known := make(map[string]bool)
			for _, c := range svc.Scorer().Criteria() {
				known[c.Key] = true
			}

			flags := make(map[string]bool, len(present))
			for _, key := range present {
				if !known[key] {
					helpers.PrintWarning("Unknown document key %q ignored", key)
					log.Warn("unknown document key", "key", key)
					continue
				}
				flags[key] = true
			}

			svc.DisplayCompleteness(svc.ScoreDocuments(flags))
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&present, "present", "p", nil, "Keys of documents that are present")

	return cmd
}

func demoCmd() *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the full workflow on the built-in sample project",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup("", "", "")
			if err != nil {
				return err
			}
			defer log.Close()

			svc, err := services.NewAnalysisService(cfg, log)
			if err != nil {
				return fmt.Errorf("failed to create analysis service: %w", err)
			}

			projectStart, err := cfg.ProjectStart()
			if err != nil {
				return err
			}

			// The sample project has no schedule or visual plans yet.
			flags := map[string]bool{
				"has_technical_task": true,
				"has_estimate":       true,
				"has_schedule":       false,
				"has_visual_plans":   false,
			}

			items, err := repositories.NewWorkItemRepository("").Load()
			if err != nil {
				return err
			}

			helpers.PrintTitle("Sample Landscaping Project")
			helpers.PrintInfo("Crew: %d workers, %g h workday", cfg.Crew.Size, cfg.Crew.WorkdayHours)
			helpers.PrintInfo("Works found in estimate: %d", len(items))
			for _, item := range items {
				helpers.PrintBullet("%s: %g %s", item.Name, item.Amount, item.Unit)
			}
			helpers.PrintSeparator()

			result, err := svc.Analyze(items, flags, projectStart)
			if err != nil {
				return err
			}

			svc.DisplayCompleteness(result.Completeness)
			helpers.PrintSeparator()
			svc.DisplaySchedule(result)

			return maybeSave(svc, result, cfg, save)
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "Save JSON and markdown reports")

	return cmd
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <analysis-file>",
		Short: "Display a saved site-analysis JSON report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup("", "", "")
			if err != nil {
				return err
			}
			defer log.Close()

			svc, err := services.NewAnalysisService(cfg, log)
			if err != nil {
				return fmt.Errorf("failed to create analysis service: %w", err)
			}

			result, err := svc.LoadAnalysisResult(args[0])
			if err != nil {
				return err
			}

			helpers.PrintInfo("Run %s from %s", result.RunID, result.AnalysisTime.Format(time.RFC1123))
			if result.Completeness != nil {
				svc.DisplayCompleteness(result.Completeness)
				helpers.PrintSeparator()
			}
			svc.DisplaySchedule(result)
			return nil
		},
	}
}

func initConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-config",
		Short: "Write a default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.WriteDefault(configFile); err != nil {
				return err
			}
			helpers.PrintSuccess("Configuration file created at %s", configFile)
			return nil
		},
	}
}

// setup loads the config, applies command-line overrides and opens the logger
func setup(start, strategy, outputDir string) (*config.Config, *logger.Logger, error) {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if start != "" {
		cfg.Schedule.ProjectStart = start
	}
	if strategy != "" {
		cfg.Schedule.Strategy = strategy
	}
	if outputDir != "" {
		cfg.Output.Dir = outputDir
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	log, err := logger.New(cfg.Logging)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log: %w", err)
	}
	log.Debug("configuration loaded", "path", configFile, "strategy", cfg.Schedule.Strategy)

	return cfg, log, nil
}

func maybeSave(svc *services.AnalysisService, result *models.AnalysisResult, cfg *config.Config, save bool) error {
	if !save && !cfg.Output.SaveReport {
		return nil
	}

	paths, err := svc.SaveAnalysisResult(result, cfg.Output.Dir)
	if err != nil {
		return fmt.Errorf("failed to save analysis result: %w", err)
	}
	for _, p := range paths {
		helpers.PrintSuccess("Saved %s", p)
	}
	helpers.PrintDim("Generated %s", result.AnalysisTime.Format(time.RFC1123))
	return nil
}
