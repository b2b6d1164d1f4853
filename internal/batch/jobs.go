package batch

import (
	"context"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/elliotchen37/rmxlrc/internal/audio"
	"github.com/elliotchen37/rmxlrc/internal/model"
)

// SongJobs returns one job per song, written under Options.OutputDir with
// the default file name.
func SongJobs(songs []model.Song) []Job {
	jobs := make([]Job, len(songs))
	for i, song := range songs {
		jobs[i] = Job{Song: song}
	}
	return jobs
}

// DirJobs scans root for audio files and returns a job for each file whose
// artist and title can be read. Output goes next to the audio file with the
// format's extension. Files without song information are logged and
// counted in skipped.
func DirJobs(ctx context.Context, root string, format model.Format, logger zerolog.Logger) (jobs []Job, skipped int, err error) {
	files, err := audio.Scan(ctx, root)
	if err != nil {
		return nil, 0, err
	}

	for _, path := range files {
		song, err := audio.ReadSong(path)
		if err != nil {
			logger.Warn().Err(err).Str("file", filepath.Base(path)).Msg("skipped, no song information")
			skipped++
			continue
		}
		jobs = append(jobs, Job{
			Song:      song,
			Target:    model.SiblingTarget(path, format).Path,
			AudioPath: path,
		})
	}
	return jobs, skipped, nil
}
