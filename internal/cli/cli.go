// Package cli wires the cobra command that runs the scrape pipeline.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jhutchins/kirkgate-events/internal/config"
	"github.com/jhutchins/kirkgate-events/internal/logger"
	"github.com/jhutchins/kirkgate-events/internal/pipeline"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagArtifactsDir string
	flagVerbose      bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kirkgate-events",
		Short: "Generate an ICS calendar from the Kirkgate Market events page",
		Long: `Scrapes the Kirkgate Market what's-on page, interprets the events table
with a completion service, and writes an iCalendar (.ics) file. Intended to
run as a one-shot batch job from a scheduler; configuration comes from the
environment (EVENTS_PAGE_URL, OPENROUTER_API_KEY, ...).

Exits 0 both when a new calendar was written and when the page was unchanged
since the last run.`,
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().StringVar(&flagArtifactsDir, "artifacts-dir", "", "Override the artifacts directory (default from ARTIFACTS_DIR)")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Force DEBUG logging regardless of LOG_LEVEL")

	return cmd
}

// run is the main command logic
func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.FromEnv(os.Getenv)
	if err != nil {
		logger.Error("invalid configuration", nil, err)
		return err
	}
	if flagArtifactsDir != "" {
		cfg.ArtifactsDir = flagArtifactsDir
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Error("invalid configuration", nil, err)
		return err
	}
	if flagVerbose {
		level = logger.LevelDebug
	}
	logger.SetDefault(logger.New(level, os.Stdout))

	p, err := pipeline.New(cfg)
	if err != nil {
		logger.Error("initializing pipeline", nil, err)
		return err
	}

	if _, err := p.Run(); err != nil {
		logger.Error("pipeline failed", nil, err)
		return err
	}

	return nil
}
