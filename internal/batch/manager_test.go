package batch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/elliotchen37/rmxlrc/internal/model"
	"github.com/elliotchen37/rmxlrc/internal/musixmatch"
)

type response struct {
	doc model.LyricDocument
	err error
}

type fakeFetcher struct {
	mu        sync.Mutex
	responses map[string]response
	tokens    []string
	calls     map[string]int

	delay    time.Duration
	inFlight atomic.Int32
	peak     atomic.Int32
}

func (f *fakeFetcher) Fetch(ctx context.Context, song model.Song, token string, synced bool) (model.LyricDocument, error) {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		p := f.peak.Load()
		if n <= p || f.peak.CompareAndSwap(p, n) {
			break
		}
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens = append(f.tokens, token)
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[song.Title]++
	r := f.responses[song.Title]
	return r.doc, r.err
}

type fakeSession struct {
	mu         sync.Mutex
	token      string
	acquireErr error
	refreshErr error
	acquires   int
	refreshes  int
}

func (s *fakeSession) Acquire(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.acquires++
	return s.token, s.acquireErr
}

func (s *fakeSession) Refresh(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshes++
	if s.refreshErr != nil {
		return "", s.refreshErr
	}
	s.token = s.token + "-new"
	return s.token, nil
}

type fakeEmbedder struct {
	paths []string
}

func (e *fakeEmbedder) EmbedLyrics(path string, doc model.LyricDocument) error {
	e.paths = append(e.paths, path)
	return nil
}

func synced(text string, ms int) response {
	return response{doc: model.LyricDocument{Synced: true, Lines: []model.LyricLine{{Text: text, StartMs: ms}}}}
}

func jobsFor(titles ...string) []Job {
	jobs := make([]Job, len(titles))
	for i, title := range titles {
		jobs[i] = Job{Song: model.NewSong("Artist", title, "", 0)}
	}
	return jobs
}

func newTestManager(f *fakeFetcher, s *fakeSession, opts Options) *Manager {
	return NewManager(f, s, opts, zerolog.Nop(), nil)
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile(%q) error = %v", path, err)
	}
	return string(data)
}

func TestRun_Sequential(t *testing.T) {
	dir := t.TempDir()
	f := &fakeFetcher{responses: map[string]response{
		"One":   synced("Hello", 1500),
		"Two":   {},
		"Three": {err: errors.New("boom")},
	}}
	s := &fakeSession{token: "tok"}
	m := newTestManager(f, s, Options{Format: model.FormatLRC, Synced: true, Pace: time.Second, Concurrency: 1, OutputDir: dir})

	var sleeps []time.Duration
	m.sleep = func(ctx context.Context, d time.Duration) error {
		sleeps = append(sleeps, d)
		return nil
	}

	report, err := m.Run(context.Background(), jobsFor("One", "Two", "Three"))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := Summary{Written: 1, NotFound: 1, Failed: 1}
	if report.Summary != want {
		t.Errorf("Summary = %+v, want %+v", report.Summary, want)
	}
	if len(sleeps) != 2 {
		t.Errorf("sleeps = %d, want 2", len(sleeps))
	}
	if s.acquires != 1 || s.refreshes != 0 {
		t.Errorf("session acquires=%d refreshes=%d, want 1 and 0", s.acquires, s.refreshes)
	}

	statuses := []Status{StatusWritten, StatusNotFound, StatusFailed}
	for i, o := range report.Outcomes {
		if o.Status != statuses[i] {
			t.Errorf("Outcomes[%d].Status = %v, want %v", i, o.Status, statuses[i])
		}
	}

	path := filepath.Join(dir, "Artist - One.lrc")
	if got := readFile(t, path); got != "[00:01.50]Hello\n" {
		t.Errorf("file = %q, want %q", got, "[00:01.50]Hello\n")
	}
	if _, err := os.Stat(filepath.Join(dir, "Artist - Two.lrc")); !os.IsNotExist(err) {
		t.Error("file written for song without lyrics")
	}

	if done, total := m.GetProgress(); done != 3 || total != 3 {
		t.Errorf("GetProgress() = %d/%d, want 3/3", done, total)
	}
}

func TestRun_NoSleepWithoutPace(t *testing.T) {
	f := &fakeFetcher{responses: map[string]response{}}
	m := newTestManager(f, &fakeSession{token: "tok"}, Options{Concurrency: 1, OutputDir: t.TempDir()})
	m.sleep = func(ctx context.Context, d time.Duration) error {
		t.Error("sleep called with zero pace")
		return nil
	}

	if _, err := m.Run(context.Background(), jobsFor("A", "B")); err != nil {
		t.Fatal(err)
	}
}

func TestRun_TokenFailureAborts(t *testing.T) {
	tokenErr := &musixmatch.TokenError{Op: "acquire", Err: errors.New("network down")}
	f := &fakeFetcher{}
	m := newTestManager(f, &fakeSession{acquireErr: tokenErr}, Options{Concurrency: 1})

	report, err := m.Run(context.Background(), jobsFor("A"))
	var te *musixmatch.TokenError
	if !errors.As(err, &te) {
		t.Fatalf("Run() error = %v, want *TokenError", err)
	}
	if len(report.Outcomes) != 0 || len(f.tokens) != 0 {
		t.Errorf("songs processed after token failure: %+v", report.Outcomes)
	}
}

func TestRun_UnauthorizedRefreshesOnceAfterBatch(t *testing.T) {
	f := &fakeFetcher{responses: map[string]response{
		"A": {err: musixmatch.ErrUnauthorized},
		"B": {err: musixmatch.ErrUnauthorized},
		"C": synced("x", 0),
	}}
	s := &fakeSession{token: "tok"}
	m := newTestManager(f, s, Options{Synced: true, Concurrency: 1, OutputDir: t.TempDir()})

	report, err := m.Run(context.Background(), jobsFor("A", "B", "C"))
	if err != nil {
		t.Fatal(err)
	}
	if report.Summary.Failed != 2 || report.Summary.Written != 1 {
		t.Errorf("Summary = %+v", report.Summary)
	}
	if s.refreshes != 1 {
		t.Errorf("refreshes = %d, want 1", s.refreshes)
	}
	for i, tok := range f.tokens {
		if tok != "tok" {
			t.Errorf("song %d used token %q, want %q", i, tok, "tok")
		}
	}
	if got := len(report.Failures()); got != 2 {
		t.Errorf("Failures() = %d, want 2", got)
	}
}

func TestRun_Parallel(t *testing.T) {
	responses := map[string]response{}
	titles := []string{"A", "B", "C", "D", "E", "F", "G", "H"}
	for _, title := range titles {
		responses[title] = synced(title, 1000)
	}
	f := &fakeFetcher{responses: responses, delay: 20 * time.Millisecond}
	m := newTestManager(f, &fakeSession{token: "tok"}, Options{Format: model.FormatSRT, Synced: true, Pace: time.Hour, Concurrency: 3, OutputDir: t.TempDir()})
	m.sleep = func(ctx context.Context, d time.Duration) error {
		t.Error("sleep called in parallel mode")
		return nil
	}

	report, err := m.Run(context.Background(), jobsFor(titles...))
	if err != nil {
		t.Fatal(err)
	}
	if report.Summary.Written != len(titles) {
		t.Errorf("Written = %d, want %d", report.Summary.Written, len(titles))
	}
	if peak := f.peak.Load(); peak > 3 {
		t.Errorf("peak concurrency = %d, want <= 3", peak)
	}
	for i, o := range report.Outcomes {
		if o.Job.Song.Title != titles[i] {
			t.Errorf("Outcomes[%d] = %q, want %q", i, o.Job.Song.Title, titles[i])
		}
		if filepath.Ext(o.Path) != ".srt" {
			t.Errorf("Outcomes[%d].Path = %q, want .srt", i, o.Path)
		}
	}
}

func TestRun_CancelStopsBetweenSongs(t *testing.T) {
	f := &fakeFetcher{responses: map[string]response{"A": synced("a", 0), "B": synced("b", 0)}}
	m := newTestManager(f, &fakeSession{token: "tok"}, Options{Synced: true, Pace: time.Minute, Concurrency: 1, OutputDir: t.TempDir()})

	ctx, cancel := context.WithCancel(context.Background())
	m.sleep = func(ctx context.Context, d time.Duration) error {
		cancel()
		return ctx.Err()
	}

	report, err := m.Run(ctx, jobsFor("A", "B", "C"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}
	if len(report.Outcomes) != 1 || report.Outcomes[0].Job.Song.Title != "A" {
		t.Errorf("Outcomes = %+v, want only A", report.Outcomes)
	}
	if f.calls["B"] != 0 {
		t.Error("B fetched after cancellation")
	}
}

func TestRun_ExplicitTargetAndEmbed(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "song.lrc")
	audioPath := filepath.Join(dir, "song.mp3")

	f := &fakeFetcher{responses: map[string]response{"A": synced("a", 0)}}
	m := newTestManager(f, &fakeSession{token: "tok"}, Options{Synced: true, Concurrency: 1})
	emb := &fakeEmbedder{}
	m.SetEmbedder(emb)

	jobs := []Job{{Song: model.NewSong("Artist", "A", "", 0), Target: target, AudioPath: audioPath}}
	report, err := m.Run(context.Background(), jobs)
	if err != nil {
		t.Fatal(err)
	}
	if report.Outcomes[0].Path != target {
		t.Errorf("Path = %q, want %q", report.Outcomes[0].Path, target)
	}
	if len(emb.paths) != 1 || emb.paths[0] != audioPath {
		t.Errorf("embedded = %v, want [%s]", emb.paths, audioPath)
	}
}

func TestProcess(t *testing.T) {
	t.Run("written", func(t *testing.T) {
		f := &fakeFetcher{responses: map[string]response{"A": synced("a", 0)}}
		m := newTestManager(f, &fakeSession{token: "tok"}, Options{Synced: true, OutputDir: t.TempDir()})

		o, err := m.Process(context.Background(), jobsFor("A")[0])
		if err != nil {
			t.Fatal(err)
		}
		if o.Status != StatusWritten || readFile(t, o.Path) != "[00:00.00]a\n" {
			t.Errorf("Process() = %+v", o)
		}
	})

	t.Run("not found", func(t *testing.T) {
		f := &fakeFetcher{responses: map[string]response{}}
		m := newTestManager(f, &fakeSession{token: "tok"}, Options{OutputDir: t.TempDir()})

		o, err := m.Process(context.Background(), jobsFor("A")[0])
		if !errors.Is(err, musixmatch.ErrLyricsNotFound) || o.Status != StatusNotFound {
			t.Errorf("Process() = %v, %v, want ErrLyricsNotFound", o.Status, err)
		}
	})

	t.Run("refreshes on unauthorized", func(t *testing.T) {
		f := &retryFetcher{}
		s := &fakeSession{token: "old"}
		m := NewManager(f, s, Options{Synced: true, OutputDir: t.TempDir()}, zerolog.Nop(), nil)

		o, err := m.Process(context.Background(), jobsFor("A")[0])
		if err != nil {
			t.Fatalf("Process() error = %v", err)
		}
		if o.Status != StatusWritten {
			t.Errorf("Status = %v, want written", o.Status)
		}
		if s.refreshes != 1 {
			t.Errorf("refreshes = %d, want 1", s.refreshes)
		}
		if want := []string{"old", "old-new"}; len(f.tokens) != 2 || f.tokens[1] != want[1] {
			t.Errorf("tokens = %v, want %v", f.tokens, want)
		}
	})

	t.Run("refresh failure", func(t *testing.T) {
		refreshErr := &musixmatch.TokenError{Op: "refresh", Err: errors.New("nope")}
		f := &fakeFetcher{responses: map[string]response{"A": {err: musixmatch.ErrUnauthorized}}}
		m := newTestManager(f, &fakeSession{token: "tok", refreshErr: refreshErr}, Options{OutputDir: t.TempDir()})

		_, err := m.Process(context.Background(), jobsFor("A")[0])
		if !errors.Is(err, refreshErr) {
			t.Errorf("Process() error = %v, want %v", err, refreshErr)
		}
	})
}

// retryFetcher rejects the first token it sees and accepts the next.
type retryFetcher struct {
	tokens []string
}

func (f *retryFetcher) Fetch(ctx context.Context, song model.Song, token string, synced bool) (model.LyricDocument, error) {
	f.tokens = append(f.tokens, token)
	if len(f.tokens) == 1 {
		return model.LyricDocument{}, musixmatch.ErrUnauthorized
	}
	return model.LyricDocument{Synced: true, Lines: []model.LyricLine{{Text: "ok", StartMs: 0}}}, nil
}

func TestSummary(t *testing.T) {
	s := Summary{Written: 3, NotFound: 1, Failed: 2}
	if got, want := s.String(), "3 written, 1 not found, 2 failed"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if s.Total() != 6 {
		t.Errorf("Total() = %d, want 6", s.Total())
	}
}

func TestSleepContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := sleepContext(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Errorf("sleepContext() = %v, want context.Canceled", err)
	}
	if err := sleepContext(context.Background(), time.Millisecond); err != nil {
		t.Errorf("sleepContext() = %v, want nil", err)
	}
}
