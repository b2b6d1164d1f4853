package batch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	ioutils "github.com/elliotchen37/rmxlrc/internal/io"
	"github.com/elliotchen37/rmxlrc/internal/model"
	"github.com/elliotchen37/rmxlrc/internal/musixmatch"
	"github.com/elliotchen37/rmxlrc/internal/subtitle"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a lookup progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Fetcher looks up and normalizes lyrics for one song.
type Fetcher interface {
	Fetch(ctx context.Context, song model.Song, token string, synced bool) (model.LyricDocument, error)
}

// Session provides the provider token.
type Session interface {
	Acquire(ctx context.Context) (string, error)
	Refresh(ctx context.Context) (string, error)
}

// Embedder writes lyrics into an audio file.
type Embedder interface {
	EmbedLyrics(path string, doc model.LyricDocument) error
}

// Options controls a batch run.
type Options struct {
	// Format selects LRC or SRT output.
	Format model.Format

	// Synced requests timestamped lyrics. Songs without them fall back to
	// plain lyrics.
	Synced bool

	// Pace is the pause between songs in sequential mode.
	Pace time.Duration

	// Concurrency above 1 switches to bounded-parallel mode, which ignores Pace.
	Concurrency int

	// OutputDir receives files for jobs without an explicit target.
	OutputDir string
}

// Job is one song to process.
type Job struct {
	Song model.Song

	// Target is the output path. Empty means the default file name in
	// Options.OutputDir.
	Target string

	// AudioPath is the source audio file, set in directory mode. When an
	// Embedder is configured the lyrics are also written into it.
	AudioPath string
}

// Manager drives the lookup pipeline over a list of songs.
type Manager struct {
	fetcher  Fetcher
	session  Session
	embedder Embedder
	opts     Options
	logger   zerolog.Logger

	sleep func(ctx context.Context, d time.Duration) error

	total int32
	done  int32

	onProgress func(ProgressEvent)
}

// NewManager creates a new batch Manager.
func NewManager(fetcher Fetcher, session Session, opts Options, logger zerolog.Logger, onProgress func(ProgressEvent)) *Manager {
	return &Manager{
		fetcher:    fetcher,
		session:    session,
		opts:       opts,
		logger:     logger.With().Str("component", "batch").Logger(),
		sleep:      sleepContext,
		onProgress: onProgress,
	}
}

// SetEmbedder enables writing lyrics into source audio files.
func (m *Manager) SetEmbedder(e Embedder) {
	m.embedder = e
}

// GetProgress returns how many jobs of the current run have finished.
func (m *Manager) GetProgress() (done, total int32) {
	return atomic.LoadInt32(&m.done), atomic.LoadInt32(&m.total)
}

// Run processes jobs and returns a report.
//
// The token is acquired once before any lookup; failure aborts the run
// with the *musixmatch.TokenError. A failing song never stops the others.
// When ctx is cancelled, Run stops between songs and returns ctx.Err()
// together with the outcomes recorded so far.
//
// Workers never refresh the token. If any song was rejected as
// unauthorized, the session is refreshed once after the run so the next
// run starts with a fresh token.
func (m *Manager) Run(ctx context.Context, jobs []Job) (*Report, error) {
	report := &Report{RunID: uuid.New()}
	logger := m.logger.With().Str("run_id", report.RunID.String()).Logger()

	atomic.StoreInt32(&m.total, int32(len(jobs)))
	atomic.StoreInt32(&m.done, 0)

	token, err := m.session.Acquire(ctx)
	if err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Could not obtain token: %v", err), Level: LevelError})
		return report, err
	}

	logger.Info().Int("songs", len(jobs)).Int("concurrency", m.opts.Concurrency).Msg("batch started")

	outcomes := make([]*Outcome, len(jobs))
	if m.opts.Concurrency > 1 {
		err = m.runParallel(ctx, token, jobs, outcomes)
	} else {
		err = m.runSequential(ctx, token, jobs, outcomes)
	}

	unauthorized := false
	for _, o := range outcomes {
		if o == nil {
			continue
		}
		report.add(*o)
		if errors.Is(o.Err, musixmatch.ErrUnauthorized) {
			unauthorized = true
		}
	}

	if unauthorized && ctx.Err() == nil {
		m.progress(ProgressEvent{Message: "Token was rejected, requesting a new one", Level: LevelWarning})
		if _, rerr := m.session.Refresh(ctx); rerr != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Token refresh failed: %v", rerr), Level: LevelError})
		}
	}

	logger.Info().
		Int("written", report.Summary.Written).
		Int("not_found", report.Summary.NotFound).
		Int("failed", report.Summary.Failed).
		Msg("batch finished")

	return report, err
}

// Process handles a single song outside a batch. A token rejected by the
// provider is refreshed once and the lookup retried. A song without lyrics
// returns musixmatch.ErrLyricsNotFound.
func (m *Manager) Process(ctx context.Context, job Job) (Outcome, error) {
	atomic.StoreInt32(&m.total, 1)
	atomic.StoreInt32(&m.done, 0)

	token, err := m.session.Acquire(ctx)
	if err != nil {
		return Outcome{Job: job, Status: StatusFailed, Err: err}, err
	}

	outcome := m.processOne(ctx, token, job)
	if errors.Is(outcome.Err, musixmatch.ErrUnauthorized) {
		m.progress(ProgressEvent{Message: "Token was rejected, requesting a new one", Level: LevelWarning})
		token, err = m.session.Refresh(ctx)
		if err != nil {
			return Outcome{Job: job, Status: StatusFailed, Err: err}, err
		}
		atomic.StoreInt32(&m.done, 0)
		outcome = m.processOne(ctx, token, job)
	}

	switch outcome.Status {
	case StatusNotFound:
		return outcome, musixmatch.ErrLyricsNotFound
	case StatusFailed:
		return outcome, outcome.Err
	default:
		return outcome, nil
	}
}

func (m *Manager) runSequential(ctx context.Context, token string, jobs []Job, outcomes []*Outcome) error {
	for i, job := range jobs {
		if i > 0 && m.opts.Pace > 0 {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Waiting %s before next song", m.opts.Pace), Level: LevelVerbose})
			if err := m.sleep(ctx, m.opts.Pace); err != nil {
				return err
			}
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		o := m.processOne(ctx, token, job)
		if interrupted(ctx, o) {
			return ctx.Err()
		}
		outcomes[i] = &o
	}
	return nil
}

func (m *Manager) runParallel(ctx context.Context, token string, jobs []Job, outcomes []*Outcome) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.opts.Concurrency)

	for i, job := range jobs {
		i, job := i, job
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			o := m.processOne(gctx, token, job)
			if interrupted(gctx, o) {
				return nil
			}
			outcomes[i] = &o
			return nil // Continue with other songs
		})
	}

	g.Wait()
	return ctx.Err()
}

func (m *Manager) processOne(ctx context.Context, token string, job Job) Outcome {
	defer atomic.AddInt32(&m.done, 1)

	song := job.Song
	m.progress(ProgressEvent{Message: fmt.Sprintf("Searching: %s", song), Level: LevelVerbose})

	doc, err := m.fetcher.Fetch(ctx, song, token, m.opts.Synced)
	if err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error fetching %s: %v", song, err), Level: LevelError})
		return Outcome{Job: job, Status: StatusFailed, Err: err}
	}

	text := subtitle.Render(doc, m.opts.Format)
	if text == "" {
		m.progress(ProgressEvent{Message: fmt.Sprintf("No lyrics found: %s", song), Level: LevelWarning})
		return Outcome{Job: job, Status: StatusNotFound}
	}

	path := m.targetPath(job)
	if err := ioutils.WriteFile(ctx, path, []byte(text)); err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error writing %s: %v", path, err), Level: LevelError})
		return Outcome{Job: job, Status: StatusFailed, Err: err}
	}

	if m.opts.Synced && !doc.Synced && !doc.Instrumental {
		m.progress(ProgressEvent{Message: fmt.Sprintf("No synced lyrics for %s, saved plain lyrics", song), Level: LevelWarning})
	}

	if m.embedder != nil && job.AudioPath != "" {
		if err := m.embedder.EmbedLyrics(job.AudioPath, doc); err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error embedding lyrics in %s: %v", filepath.Base(job.AudioPath), err), Level: LevelWarning})
		}
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Saved: %s", filepath.Base(path)), Level: LevelSuccess})
	return Outcome{
		Job:          job,
		Status:       StatusWritten,
		Path:         path,
		Lines:        len(doc.Lines),
		Synced:       doc.Synced,
		Instrumental: doc.Instrumental,
	}
}

func (m *Manager) targetPath(job Job) string {
	if job.Target != "" {
		return job.Target
	}
	return model.NewOutputTarget(job.Song, m.opts.Format, m.opts.OutputDir, "").Path
}

func (m *Manager) progress(event ProgressEvent) {
	switch event.Level {
	case LevelError:
		m.logger.Error().Msg(event.Message)
	case LevelWarning:
		m.logger.Warn().Msg(event.Message)
	case LevelVerbose:
		m.logger.Debug().Msg(event.Message)
	default:
		m.logger.Info().Msg(event.Message)
	}
	if m.onProgress != nil {
		m.onProgress(event)
	}
}

// interrupted reports whether an outcome failed only because ctx was
// cancelled mid-song. Such songs are left unrecorded.
func interrupted(ctx context.Context, o Outcome) bool {
	return o.Status == StatusFailed && ctx.Err() != nil && errors.Is(o.Err, ctx.Err())
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
