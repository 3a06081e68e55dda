// Package cli provides the command-line interface for the rating application.
package cli

import (
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"vrating/internal/config"
	"vrating/internal/logging"
	"vrating/internal/rating"
	"vrating/internal/store"
)

// Version information
const (
	Version   = "0.1.0"
	BuildDate = "2025-06-01"
)

// App holds the application dependencies.
type App struct {
	Config     *config.Config
	Logger     zerolog.Logger
	Store      store.DataStore
	Calculator *rating.Calculator
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	SetCurrency(cfg.UI.Currency)

	// Initialize SQLite store
	dbPath := cfg.Database.Path
	if dbPath == "" {
		dbPath = filepath.Join(config.DefaultDataDir(), "vrating.db")
	}
	dataStore, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to initialize store, some features may be unavailable")
	} else {
		app.Store = dataStore
		logger.Debug().Str("path", dbPath).Msg("SQLite store initialized")
	}

	// Build the calculator, applying configured weights if set
	if cfg.Rating.HasCustomWeights() {
		app.Calculator = rating.NewCalculatorWithWeights(rating.Weights{
			Profitability:       cfg.Rating.ProfitabilityWeight,
			RiskManagement:      cfg.Rating.RiskManagementWeight,
			Consistency:         cfg.Rating.ConsistencyWeight,
			EmotionalDiscipline: cfg.Rating.EmotionalDisciplineWeight,
			JournalingAdherence: cfg.Rating.JournalingAdherenceWeight,
		})
	} else {
		app.Calculator = rating.NewCalculator()
	}

	rootCmd := &cobra.Command{
		Use:   "vrating",
		Short: "VRating - trading journal performance rating CLI",
		Long: `VRating scores your trading journal on a 1.0-10.0 scale across
profitability, risk management, consistency, emotional discipline, and
journaling adherence.

Record trades and journal entries, then run 'vrating rating' to see
where your process stands.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Handle debug flag
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/vrating)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	addCoreCommands(rootCmd, app)
	addRatingCommands(rootCmd, app)
	addTradeCommands(rootCmd, app)
	addJournalCommands(rootCmd, app)
	addReportCommands(rootCmd, app)

	return rootCmd
}

// addCoreCommands adds core utility commands.
func addCoreCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{
					"version":    Version,
					"build_date": BuildDate,
				})
			} else {
				output.Printf("VRating v%s\n", Version)
				output.Dim("Build date: %s", BuildDate)
			}
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View and manage application configuration.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			return showConfig(output, app)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration directory path",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"path": config.DefaultConfigDir()})
			} else {
				output.Println(config.DefaultConfigDir())
			}
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration files",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Config.Validate(); err != nil {
				output.Error("Configuration validation failed: %v", err)
				return err
			}
			if output.IsJSON() {
				output.JSON(map[string]bool{"valid": true})
			} else {
				output.Success("✓ Configuration is valid")
			}
			return nil
		},
	})

	return cmd
}

func showConfig(output *Output, app *App) error {
	cfg := app.Config

	output.Bold("Database")
	dbPath := cfg.Database.Path
	if dbPath == "" {
		dbPath = filepath.Join(config.DefaultDataDir(), "vrating.db")
	}
	output.Printf("  Path:            %s\n", dbPath)
	output.Println()

	output.Bold("Rating Weights")
	weights := app.Calculator.Weights()
	output.Printf("  Profitability:        %s\n", FormatWeight(weights.Profitability))
	output.Printf("  Risk Management:      %s\n", FormatWeight(weights.RiskManagement))
	output.Printf("  Consistency:          %s\n", FormatWeight(weights.Consistency))
	output.Printf("  Emotional Discipline: %s\n", FormatWeight(weights.EmotionalDiscipline))
	output.Printf("  Journaling Adherence: %s\n", FormatWeight(weights.JournalingAdherence))
	output.Println()

	output.Bold("Logging")
	output.Printf("  Level:           %s\n", cfg.Logging.Level)
	output.Printf("  File:            %s\n", cfg.Logging.File)
	output.Printf("  Console:         %v\n", cfg.Logging.Console)
	output.Println()

	output.Bold("UI")
	output.Printf("  Color:           %v\n", cfg.UI.ColorEnabled)
	output.Printf("  Date Format:     %s\n", cfg.UI.DateFormat)
	output.Printf("  Currency:        %s\n", cfg.UI.Currency)

	return nil
}
