package batch

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/elliotchen37/rmxlrc/internal/model"
)

func TestDirJobs(t *testing.T) {
	root := t.TempDir()
	files := []string{
		"01 Daft Punk - One More Time.flac",
		"cover.jpg",
		"untitled.ogg",
		filepath.Join("disc2", "Adele - Hello.m4a"),
	}
	for _, name := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, nil, 0644); err != nil {
			t.Fatal(err)
		}
	}

	jobs, skipped, err := DirJobs(context.Background(), root, model.FormatSRT, zerolog.Nop())
	if err != nil {
		t.Fatalf("DirJobs() error = %v", err)
	}
	if skipped != 1 {
		t.Errorf("skipped = %d, want 1", skipped)
	}

	want := []struct {
		song   string
		target string
	}{
		{"Daft Punk - One More Time", filepath.Join(root, "01 Daft Punk - One More Time.srt")},
		{"Adele - Hello", filepath.Join(root, "disc2", "Adele - Hello.srt")},
	}
	if len(jobs) != len(want) {
		t.Fatalf("DirJobs() = %d jobs, want %d", len(jobs), len(want))
	}
	for i, w := range want {
		if got := jobs[i].Song.String(); got != w.song {
			t.Errorf("jobs[%d].Song = %q, want %q", i, got, w.song)
		}
		if jobs[i].Target != w.target {
			t.Errorf("jobs[%d].Target = %q, want %q", i, jobs[i].Target, w.target)
		}
		if jobs[i].AudioPath == "" {
			t.Errorf("jobs[%d].AudioPath is empty", i)
		}
	}
}

func TestDirJobs_MissingRoot(t *testing.T) {
	_, _, err := DirJobs(context.Background(), filepath.Join(t.TempDir(), "nope"), model.FormatLRC, zerolog.Nop())
	if err == nil {
		t.Error("DirJobs() error = nil, want error")
	}
}

func TestSongJobs(t *testing.T) {
	jobs := SongJobs([]model.Song{model.NewSong("A", "B", "", 0)})
	if len(jobs) != 1 || jobs[0].Target != "" || jobs[0].Song.Title != "B" {
		t.Errorf("SongJobs() = %+v", jobs)
	}
}
