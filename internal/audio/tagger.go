package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bogem/id3v2"
	"github.com/dhowden/tag"

	"github.com/elliotchen37/rmxlrc/internal/model"
)

var (
	// ErrNoTags means the file has no usable artist/title metadata.
	ErrNoTags = errors.New("no artist/title tags")

	// ErrUnsupported means the file's tags cannot be read, or for
	// embedding, that the file type cannot carry ID3 tags.
	ErrUnsupported = errors.New("unsupported audio format")
)

const lyricsFrameName = "Unsynchronised lyrics/text transcription"

// ReadSong builds a Song from a file's tags.
//
// MP3 files are read with their ID3 tag: artist (TPE1), title (TIT2),
// album (TALB) and length in milliseconds (TLEN). Other containers (FLAC,
// Ogg, MP4/M4A and friends) are read for artist, title and album. Files
// without artist or title fall back to the "Artist - Title.ext" file name
// convention. When that fails too, ErrNoTags or ErrUnsupported is returned
// and the caller skips the file.
func ReadSong(path string) (model.Song, error) {
	var (
		song model.Song
		err  error
	)
	if isID3File(path) {
		song, err = readID3(path)
	} else {
		song, err = readContainer(path)
	}
	if err == nil && song.Valid() {
		return song, nil
	}

	if fromName, ok := SongFromFileName(path); ok {
		return fromName, nil
	}
	switch {
	case err == nil:
		return model.Song{}, fmt.Errorf("%s: %w", filepath.Base(path), ErrNoTags)
	case isID3File(path):
		return model.Song{}, err
	default:
		return model.Song{}, fmt.Errorf("%s: %w: %v", filepath.Base(path), ErrUnsupported, err)
	}
}

func readID3(path string) (model.Song, error) {
	id3, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return model.Song{}, err
	}
	defer id3.Close()

	var durationMs int
	if tlen := id3.GetTextFrame(id3.CommonID("Length")); tlen.Text != "" {
		durationMs, _ = strconv.Atoi(strings.TrimSpace(tlen.Text))
	}

	return model.NewSong(id3.Artist(), id3.Title(), id3.Album(), durationMs), nil
}

// readContainer reads Vorbis comments, MP4 atoms and similar tags.
// Duration is not available from these readers.
func readContainer(path string) (model.Song, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Song{}, err
	}
	defer f.Close()

	meta, err := tag.ReadFrom(f)
	if err != nil {
		return model.Song{}, err
	}
	return model.NewSong(meta.Artist(), meta.Title(), meta.Album(), 0), nil
}

// SongFromFileName parses "Artist - Title.ext", optionally prefixed with a
// track number ("01 Artist - Title.ext", "01. Artist - Title.ext",
// "01 - Artist - Title.ext").
//
// Artist names that start with digits ("50 Cent", "311") are kept intact:
// a number followed only by a space is taken as a track number when it is
// zero-padded.
func SongFromFileName(path string) (model.Song, bool) {
	name := stripTrackNumber(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))

	artist, title, ok := strings.Cut(name, " - ")
	if !ok {
		return model.Song{}, false
	}
	song := model.NewSong(artist, title, "", 0)
	return song, song.Valid()
}

func stripTrackNumber(name string) string {
	i := strings.IndexFunc(name, func(r rune) bool { return r < '0' || r > '9' })
	if i <= 0 {
		return name
	}
	digits, rest := name[:i], name[i:]

	switch {
	case rest[0] == '.' || rest[0] == '_':
		return strings.TrimLeft(rest, "._ ")
	case strings.HasPrefix(strings.TrimLeft(rest, " "), "-"):
		if stripped := strings.TrimLeft(rest, "- "); strings.Contains(stripped, " - ") {
			return stripped
		}
	case rest[0] == ' ' && digits[0] == '0':
		return strings.TrimLeft(rest, " ")
	}
	return name
}

// Tagger writes lyrics into MP3 files.
//
// Example:
//
//	tagger := NewTagger("eng")
//	err := tagger.EmbedLyrics("/music/song.mp3", doc)
type Tagger struct {
	language string
}

// NewTagger creates a Tagger writing frames with the given ISO-639-2
// language code. An empty code means "eng".
func NewTagger(language string) *Tagger {
	if len(language) != 3 {
		language = "eng"
	}
	return &Tagger{language: language}
}

// EmbedLyrics replaces the USLT frame of an MP3 file with the plain text of
// doc. Timing is dropped because USLT has no place for it. Non-MP3 files
// return ErrUnsupported; empty documents are a no-op.
func (t *Tagger) EmbedLyrics(path string, doc model.LyricDocument) error {
	if doc.Empty() {
		return nil
	}
	if !isID3File(path) {
		return fmt.Errorf("%s: %w", filepath.Base(path), ErrUnsupported)
	}

	id3, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return err
	}
	defer id3.Close()

	id3.DeleteFrames(id3.CommonID(lyricsFrameName))
	id3.AddUnsynchronisedLyricsFrame(id3v2.UnsynchronisedLyricsFrame{
		Encoding:          id3v2.EncodingUTF8,
		Language:          t.language,
		ContentDescriptor: "",
		Lyrics:            doc.PlainText(),
	})

	return id3.Save()
}

func isID3File(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".mp3")
}
