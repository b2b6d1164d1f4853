package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/elliotchen37/rmxlrc/internal/batch"
	"github.com/elliotchen37/rmxlrc/internal/batchfile"
	"github.com/elliotchen37/rmxlrc/internal/service"
)

func newBatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "batch FILE",
		Short: "Download lyrics for every song listed in a file",
		Long: `Process a batch file of songs, one per line:

  # comments and blank lines are ignored
  !format=srt
  !pace=20
  !output=lyrics
  Daft Punk | One More Time
  Adele | Hello | 25

Settings lines start with "!" and override the config file for this run.
Keys: format, pace (or sleep), output (or outdir), token, synced,
concurrency.

Songs are processed one at a time with a pause between them unless
concurrency is above 1.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runBatch(cmd, args[0])
		},
	}
}

func (a *app) runBatch(cmd *cobra.Command, path string) error {
	file, err := batchfile.ParseFile(path)
	if err != nil {
		return err
	}

	settings := *a.settings
	file.Overrides.Apply(&settings)
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if len(file.Songs) == 0 {
		fmt.Fprintln(a.stdout, "No songs to process.")
		return nil
	}

	svc := service.New(&settings, a.baseURL, a.logger)
	defer svc.Close()

	manager := batch.NewManager(svc.Fetcher, svc.Session, batch.Options{
		Format:      settings.OutputFormat(),
		Synced:      settings.Synced,
		Pace:        settings.Pace(),
		Concurrency: settings.Concurrency,
		OutputDir:   settings.OutputDir,
	}, a.logger, nil)

	report, err := manager.Run(cmd.Context(), batch.SongJobs(file.Songs))
	if report != nil && len(report.Outcomes) > 0 {
		a.printSummary(report)
	}
	return err
}
