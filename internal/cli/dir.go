package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/elliotchen37/rmxlrc/internal/audio"
	"github.com/elliotchen37/rmxlrc/internal/batch"
	"github.com/elliotchen37/rmxlrc/internal/service"
)

func newDirCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dir DIR",
		Short: "Download lyrics for every audio file in a directory",
		Long: `Scan a directory recursively for audio files, read artist and title
from their tags (or from "Artist - Title" file names), and save lyrics
next to each file with the same base name.

Examples:
  rmxlrc dir ~/Music/Albums/Discovery
  rmxlrc dir ~/Music --interval 10 --embed`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDir(cmd, args[0])
		},
	}

	cmd.Flags().IntP("interval", "i", -1, "Seconds to wait between songs (overrides config)")
	cmd.Flags().Bool("embed", false, "Also write lyrics into MP3 tags")
	cmd.Flags().StringP("format", "f", "", "Output format: lrc or srt (overrides config)")
	cmd.Flags().Bool("unsynced", false, "Save plain lyrics without timestamps")
	return cmd
}

func (a *app) runDir(cmd *cobra.Command, root string) error {
	interval, _ := cmd.Flags().GetInt("interval")
	embed, _ := cmd.Flags().GetBool("embed")
	formatStr, _ := cmd.Flags().GetString("format")
	unsynced, _ := cmd.Flags().GetBool("unsynced")

	settings := *a.settings
	if interval >= 0 {
		settings.PaceSeconds = interval
	}
	if embed {
		settings.EmbedLyrics = true
	}
	if formatStr != "" {
		settings.Format = formatStr
	}
	if unsynced {
		settings.Synced = false
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	format := settings.OutputFormat()
	jobs, skipped, err := batch.DirJobs(cmd.Context(), root, format, a.logger)
	if err != nil {
		return fmt.Errorf("failed to scan %s: %w", root, err)
	}
	if len(jobs) == 0 {
		fmt.Fprintf(a.stdout, "No songs found in %s.\n", root)
		return nil
	}

	a.logger.Info().
		Int("songs", len(jobs)).
		Int("skipped", skipped).
		Dur("interval", settings.Pace()).
		Msg("directory scanned")

	svc := service.New(&settings, a.baseURL, a.logger)
	defer svc.Close()

	manager := batch.NewManager(svc.Fetcher, svc.Session, batch.Options{
		Format:      format,
		Synced:      settings.Synced,
		Pace:        settings.Pace(),
		Concurrency: settings.Concurrency,
	}, a.logger, nil)
	if settings.EmbedLyrics {
		manager.SetEmbedder(audio.NewTagger("eng"))
	}

	report, err := manager.Run(cmd.Context(), jobs)
	if report != nil && len(report.Outcomes) > 0 {
		a.printSummary(report)
	}
	return err
}
