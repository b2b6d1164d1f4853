package model

import (
	"fmt"
	"path/filepath"
	"strings"

	ioutils "github.com/elliotchen37/rmxlrc/internal/io"
)

// Format represents the supported subtitle file formats.
type Format int

const (
	// FormatLRC creates .lrc files with optional [mm:ss.cc] timestamps.
	FormatLRC Format = iota

	// FormatSRT creates .srt files with numbered, time-ranged blocks.
	FormatSRT
)

// maxBaseNameRunes caps the "{artist} - {title}" part of default file names.
const maxBaseNameRunes = 200

// Extension returns the file extension for the format, including the dot.
//
// Returns:
//   - ".lrc" for FormatLRC
//   - ".srt" for FormatSRT
func (f Format) Extension() string {
	switch f {
	case FormatSRT:
		return ".srt"
	default:
		return ".lrc"
	}
}

// String returns the lower-case format name as used in config files and flags.
func (f Format) String() string {
	switch f {
	case FormatSRT:
		return "srt"
	default:
		return "lrc"
	}
}

// ParseFormat converts a format name ("lrc", "srt", optionally with a
// leading dot, any case) into a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), ".") {
	case "lrc":
		return FormatLRC, nil
	case "srt":
		return FormatSRT, nil
	default:
		return FormatLRC, fmt.Errorf("unknown output format %q (want lrc or srt)", s)
	}
}

// OutputTarget is where and how a rendered document is written.
type OutputTarget struct {
	// Path is the destination file path.
	Path string

	// Format selects the serializer.
	Format Format
}

// DefaultFileName returns the default output file name for a song:
// the sanitized "{artist} - {title}", capped in length, plus the format
// extension.
//
// Example:
//
//	DefaultFileName(NewSong("AC/DC", "T.N.T.", "", 0), FormatLRC) // "AC_DC - T.N.T.lrc"
func DefaultFileName(song Song, format Format) string {
	base := ioutils.SanitizeFileName(song.Artist + " - " + song.Title)
	if runes := []rune(base); len(runes) > maxBaseNameRunes {
		base = strings.TrimRight(string(runes[:maxBaseNameRunes]), " .")
	}
	return base + format.Extension()
}

// NewOutputTarget resolves the output path for a song.
//
// An explicit path wins. Otherwise the default file name is placed in dir
// (the current directory when dir is empty).
func NewOutputTarget(song Song, format Format, dir, explicitPath string) OutputTarget {
	if explicitPath != "" {
		return OutputTarget{Path: explicitPath, Format: format}
	}
	return OutputTarget{Path: filepath.Join(dir, DefaultFileName(song, format)), Format: format}
}

// SiblingTarget returns a target next to an audio file with the extension
// swapped for the format's, e.g. "/music/a.flac" → "/music/a.lrc".
func SiblingTarget(audioPath string, format Format) OutputTarget {
	base := strings.TrimSuffix(audioPath, filepath.Ext(audioPath))
	return OutputTarget{Path: base + format.Extension(), Format: format}
}
