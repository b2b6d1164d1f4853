package musixmatch

import (
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/elliotchen37/rmxlrc/internal/model"
)

var mandatoryParams = []string{
	"app_id", "format", "namespace", "q_artist", "q_artists", "q_track", "subtitle_format", "usertoken",
}

func TestBuildQuery_OptionalFieldsFollowPresence(t *testing.T) {
	tests := []struct {
		name  string
		song  model.Song
		extra []string
	}{
		{"bare", model.NewSong("Artist", "Title", "", 0), nil},
		{"album", model.NewSong("Artist", "Title", "Album", 0), []string{"q_album"}},
		{"duration", model.NewSong("Artist", "Title", "", 215000), []string{"f_subtitle_length", "q_duration"}},
		{"both", model.NewSong("Artist", "Title", "Album", 1), []string{"f_subtitle_length", "q_album", "q_duration"}},
		{"spotify id", model.NewSong("Artist", "Title", "", 0).WithSpotifyID(" spotify:track:4uLU6hMCjMI75M1A2tKUQC "), []string{"track_spotify_id"}},
		{"blank spotify id", model.NewSong("Artist", "Title", "", 0).WithSpotifyID("  "), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := BuildQuery(tt.song, "tok")
			if err != nil {
				t.Fatalf("BuildQuery() error = %v", err)
			}

			var got []string
			for k := range q {
				got = append(got, k)
			}
			want := append(append([]string{}, mandatoryParams...), tt.extra...)
			sort.Strings(got)
			sort.Strings(want)

			if strings.Join(got, ",") != strings.Join(want, ",") {
				t.Errorf("params = %v, want %v", got, want)
			}
		})
	}
}

func TestBuildQuery_Values(t *testing.T) {
	q, err := BuildQuery(model.NewSong(" Adele ", "Hello", "25", 295500), "tok123")
	if err != nil {
		t.Fatal(err)
	}

	want := map[string]string{
		"format":            "json",
		"namespace":         "lyrics_richsynched",
		"subtitle_format":   "mxm",
		"app_id":            AppID,
		"q_artist":          "Adele",
		"q_artists":         "Adele",
		"q_track":           "Hello",
		"q_album":           "25",
		"usertoken":         "tok123",
		"q_duration":        "295.5",
		"f_subtitle_length": "295",
	}
	for k, v := range want {
		if got := q.Get(k); got != v {
			t.Errorf("%s = %q, want %q", k, got, v)
		}
	}
}

func TestBuildQuery_WholeSecondDuration(t *testing.T) {
	q, _ := BuildQuery(model.NewSong("A", "T", "", 180000), "tok")
	if got := q.Get("q_duration"); got != "180" {
		t.Errorf("q_duration = %q, want 180", got)
	}
}

func TestBuildQuery_Preconditions(t *testing.T) {
	tests := []struct {
		name  string
		song  model.Song
		token string
	}{
		{"empty artist", model.NewSong("  ", "Title", "", 0), "tok"},
		{"empty title", model.NewSong("Artist", "", "", 0), "tok"},
		{"empty token", model.NewSong("Artist", "Title", "", 0), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := BuildQuery(tt.song, tt.token); !errors.Is(err, ErrInvalidQuery) {
				t.Errorf("BuildQuery() error = %v, want ErrInvalidQuery", err)
			}
		})
	}
}
