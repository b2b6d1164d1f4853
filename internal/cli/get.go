package cli

import (
	"errors"
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/elliotchen37/rmxlrc/internal/batch"
	"github.com/elliotchen37/rmxlrc/internal/model"
	"github.com/elliotchen37/rmxlrc/internal/musixmatch"
	"github.com/elliotchen37/rmxlrc/internal/service"
)

func newGetCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Download lyrics for a single song",
		Long: `Search for one song and save its lyrics.

The file is named "{artist} - {title}.lrc" (or .srt) in the output
directory unless --output names a path.

Examples:
  rmxlrc get -a "Daft Punk" -t "One More Time"
  rmxlrc get -a Adele -t Hello --duration 295 -f srt
  rmxlrc get -a Adele -t Hello --unsynced -o hello.lrc
  rmxlrc get -a Adele -t Hello --uri spotify:track:1Yk0cQdMLx5RzzFTYwmuld`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runGet(cmd)
		},
	}

	cmd.Flags().StringP("artist", "a", "", "Artist name (required)")
	cmd.Flags().StringP("title", "t", "", "Song title (required)")
	cmd.Flags().String("album", "", "Album name")
	cmd.Flags().Float64P("duration", "d", 0, "Song length in seconds, improves matching")
	cmd.Flags().String("uri", "", "Spotify track URI, improves matching")
	cmd.Flags().String("token", "", "Musixmatch user token (overrides config)")
	cmd.Flags().StringP("format", "f", "", "Output format: lrc or srt (overrides config)")
	cmd.Flags().Bool("unsynced", false, "Save plain lyrics without timestamps")
	cmd.Flags().StringP("output", "o", "", "Output file path")
	return cmd
}

func (a *app) runGet(cmd *cobra.Command) error {
	artist, _ := cmd.Flags().GetString("artist")
	title, _ := cmd.Flags().GetString("title")
	album, _ := cmd.Flags().GetString("album")
	seconds, _ := cmd.Flags().GetFloat64("duration")
	uri, _ := cmd.Flags().GetString("uri")
	token, _ := cmd.Flags().GetString("token")
	formatStr, _ := cmd.Flags().GetString("format")
	unsynced, _ := cmd.Flags().GetBool("unsynced")
	outputPath, _ := cmd.Flags().GetString("output")

	song := model.NewSong(artist, title, album, int(math.Round(seconds*1000))).WithSpotifyID(uri)
	if !song.Valid() {
		return fmt.Errorf("%w: --artist and --title are required", musixmatch.ErrInvalidQuery)
	}

	settings := *a.settings
	if token != "" {
		settings.Token = token
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

	svc := service.New(&settings, a.baseURL, a.logger)
	defer svc.Close()

	format := settings.OutputFormat()
	manager := batch.NewManager(svc.Fetcher, svc.Session, batch.Options{
		Format:    format,
		Synced:    settings.Synced,
		OutputDir: settings.OutputDir,
	}, a.logger, nil)

	job := batch.Job{
		Song:   song,
		Target: model.NewOutputTarget(song, format, settings.OutputDir, outputPath).Path,
	}

	outcome, err := manager.Process(cmd.Context(), job)
	if errors.Is(err, musixmatch.ErrLyricsNotFound) {
		return fmt.Errorf("no lyrics found for %s", song)
	}
	if err != nil {
		return err
	}

	kind := "synced"
	switch {
	case outcome.Instrumental:
		kind = "instrumental"
	case !outcome.Synced:
		kind = "unsynced"
	}
	fmt.Fprintf(a.stdout, "Saved %s lyrics (%d lines) to %s\n", kind, outcome.Lines, outcome.Path)
	return nil
}
