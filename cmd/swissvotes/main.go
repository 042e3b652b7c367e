package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Roberto-info/CDA2-Demokratie-Challange/internal/app"
	"github.com/Roberto-info/CDA2-Demokratie-Challange/votes"
)

var (
	// Global flags
	configPath   string
	dataPath     string
	boundaryPath string
	outputDir    string
	sqlitePath   string
	verbose      bool

	// Logger
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "swissvotes",
	Short: "Analysis of Swiss popular votes 1893-2025",
	Long: `swissvotes classifies Swiss referenda as societally oriented via a
keyword policy, aggregates yes-percentages per epoch, canton and region, and
renders charts and canton choropleth maps.

Each subcommand is one batch pipeline reading the dataset CSV and writing
plots and flat-file exports.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env may override input/output paths; a missing file is fine.
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load .env: %w", err)
		}
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Classify the dataset and plot epoch and acceptance trends",
	RunE: func(cmd *cobra.Command, args []string) error {
		runner, err := newRunner()
		if err != nil {
			return err
		}
		return runner.RunOverview()
	},
}

var detailCmd = &cobra.Command{
	Use:   "detail",
	Short: "Compute the canton liberality ranking and regional breakdowns",
	RunE: func(cmd *cobra.Command, args []string) error {
		runner, err := newRunner()
		if err != nil {
			return err
		}
		return runner.RunDetail()
	},
}

var voteCmd = &cobra.Command{
	Use:   "vote [title query]",
	Short: "Render the canton map for a single referendum found by title",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		runner, err := newRunner()
		if err != nil {
			return err
		}
		return runner.RunVote(strings.Join(args, " "))
	},
}

var searchCmd = &cobra.Command{
	Use:   "search [title query]",
	Short: "List referenda whose title matches, ordered by date",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		runner, err := newRunner()
		if err != nil {
			return err
		}
		matches, err := runner.Search(strings.Join(args, " "))
		if err != nil {
			return err
		}
		for _, match := range matches {
			date := "unknown date"
			if !match.Date.IsZero() {
				date = match.Date.Format("2006-01-02")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s\n", match.ID, date, match.TitleShort)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d match(es)\n", len(matches))
		return nil
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration and keyword policy to disk",
	RunE: func(cmd *cobra.Command, args []string) error {
		var cfg votes.Config
		cfg.ApplyDefaults()
		if err := votes.SaveConfig(configPath, cfg); err != nil {
			return err
		}
		target := configPath
		if target == "" {
			target = "swissvotes.yaml"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", target)
		return nil
	},
}

func newRunner() (*app.App, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return app.New(cfg, logger), nil
}

// loadConfig layers the config file, .env variables and explicit flags, in
// ascending precedence.
func loadConfig() (votes.Config, error) {
	cfg, err := votes.LoadConfig(configPath)
	if err != nil {
		return cfg, err
	}
	if env := os.Getenv("SWISSVOTES_DATA"); env != "" {
		cfg.DataPath = env
	}
	if env := os.Getenv("SWISSVOTES_BOUNDARIES"); env != "" {
		cfg.BoundaryPath = env
	}
	if env := os.Getenv("SWISSVOTES_OUT"); env != "" {
		cfg.OutputDir = env
	}
	if dataPath != "" {
		cfg.DataPath = dataPath
	}
	if boundaryPath != "" {
		cfg.BoundaryPath = boundaryPath
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}
	if sqlitePath != "" {
		cfg.SQLitePath = sqlitePath
	}
	return cfg, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to swissvotes.yaml")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "Referendum dataset CSV (overrides config)")
	rootCmd.PersistentFlags().StringVar(&boundaryPath, "boundaries", "", "Canton boundary GeoJSON (overrides config)")
	rootCmd.PersistentFlags().StringVar(&outputDir, "out", "", "Output directory for plots and exports")
	rootCmd.PersistentFlags().StringVar(&sqlitePath, "sqlite", "", "Also store run artifacts in this sqlite database")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(overviewCmd, detailCmd, voteCmd, searchCmd, initCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
