package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/elliotchen37/rmxlrc/internal/batch"
	"github.com/elliotchen37/rmxlrc/internal/config"
	"github.com/elliotchen37/rmxlrc/internal/logging"
)

// app carries the state shared by all subcommands of one invocation.
type app struct {
	configPath string
	verbose    bool

	// baseURL overrides the provider root; empty means the real API.
	baseURL string

	stdout io.Writer
	stderr io.Writer

	logger   zerolog.Logger
	settings *config.Settings
}

// NewRootCmd builds the rmxlrc command tree.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{stdout: os.Stdout, stderr: os.Stderr})
}

// Execute runs the command line with ctx, which is cancelled on interrupt.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rmxlrc",
		Short: "Download synced lyrics from Musixmatch as LRC or SRT files",
		Long: `rmxlrc looks songs up on the Musixmatch desktop API and saves their
lyrics as LRC or SRT files.

Synced (timestamped) lyrics are preferred; songs without them fall back to
plain lyrics, and instrumentals get a single placeholder line.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	rootCmd.SetOut(a.stdout)
	rootCmd.SetErr(a.stderr)

	rootCmd.PersistentFlags().
		StringVarP(&a.configPath, "config", "c", "", "Path to config file (default "+config.DefaultPath()+")")
	rootCmd.PersistentFlags().
		BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(
		newGetCmd(a),
		newBatchCmd(a),
		newDirCmd(a),
		newTokenCmd(a),
	)
	return rootCmd
}

func (a *app) setup() error {
	a.logger = logging.New(a.stderr, a.verbose)

	if a.configPath == "" {
		a.configPath = config.DefaultPath()
	}
	settings, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	a.settings = settings

	a.logger.Debug().Str("config", a.configPath).Msg("settings loaded")
	return nil
}

// printSummary writes the final report of a batch or directory run.
func (a *app) printSummary(report *batch.Report) {
	fmt.Fprintln(a.stdout)
	fmt.Fprintf(a.stdout, "Done: %s\n", report.Summary)
	for _, o := range report.Failures() {
		fmt.Fprintf(a.stdout, "  failed: %s: %v\n", o.Job.Song, o.Err)
	}
}
