package model

import (
	"fmt"
	"strings"
)

// Song identifies a track to look up lyrics for.
//
// Song is a value object: construct it with NewSong, which trims every
// string field, and never mutate it afterwards. Album and DurationMs are
// optional; the zero value means "absent" for both.
//
// Example:
//
//	song := model.NewSong(" Daft Punk ", "One More Time", "Discovery", 320000)
//	fmt.Println(song.Artist) // "Daft Punk"
type Song struct {
	// Artist is the performing artist. Required for lookups.
	Artist string

	// Title is the track title. Required for lookups.
	Title string

	// Album is the album title, or empty when unknown.
	Album string

	// DurationMs is the track length in milliseconds, or 0 when unknown.
	DurationMs int

	// SpotifyID is the Spotify track URI or id, or empty when unknown.
	// It narrows the match but is not part of the song's identity.
	SpotifyID string
}

// NewSong creates a Song with surrounding whitespace removed from all text
// fields. Negative durations are treated as absent.
func NewSong(artist, title, album string, durationMs int) Song {
	if durationMs < 0 {
		durationMs = 0
	}
	return Song{
		Artist:     strings.TrimSpace(artist),
		Title:      strings.TrimSpace(title),
		Album:      strings.TrimSpace(album),
		DurationMs: durationMs,
	}
}

// WithSpotifyID returns a copy of s carrying the trimmed Spotify track id.
func (s Song) WithSpotifyID(id string) Song {
	s.SpotifyID = strings.TrimSpace(id)
	return s
}

// HasAlbum reports whether the album field is present.
func (s Song) HasAlbum() bool {
	return s.Album != ""
}

// HasDuration reports whether the duration field is present.
func (s Song) HasDuration() bool {
	return s.DurationMs > 0
}

// Valid reports whether the song carries the fields required for a lookup.
func (s Song) Valid() bool {
	return s.Artist != "" && s.Title != ""
}

// Key returns the identity of the song: artist, title and album, lower-cased
// and joined with a separator that cannot appear in sanitized names.
func (s Song) Key() string {
	return strings.ToLower(s.Artist + "\x1f" + s.Title + "\x1f" + s.Album)
}

// String returns "Artist - Title", the form used in logs and progress messages.
func (s Song) String() string {
	return fmt.Sprintf("%s - %s", s.Artist, s.Title)
}
