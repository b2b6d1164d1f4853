package batchfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/elliotchen37/rmxlrc/internal/config"
	"github.com/elliotchen37/rmxlrc/internal/model"
)

// Separator splits the fields of a song line.
const Separator = "|"

// File is a parsed batch descriptor.
type File struct {
	// Songs holds the song lines in file order.
	Songs []model.Song

	// Overrides holds the !key=value settings found in the file.
	Overrides Overrides
}

// Overrides are the settings a batch file may set. Nil fields were not set.
type Overrides struct {
	Format      *string
	PaceSeconds *int
	OutputDir   *string
	Token       *string
	Synced      *bool
	Concurrency *int
}

// Apply copies every set field onto s.
func (o Overrides) Apply(s *config.Settings) {
	if o.Format != nil {
		s.Format = *o.Format
	}
	if o.PaceSeconds != nil {
		s.PaceSeconds = *o.PaceSeconds
	}
	if o.OutputDir != nil {
		s.OutputDir = *o.OutputDir
	}
	if o.Token != nil {
		s.Token = *o.Token
	}
	if o.Synced != nil {
		s.Synced = *o.Synced
	}
	if o.Concurrency != nil {
		s.Concurrency = *o.Concurrency
	}
}

// SyntaxError reports a malformed line.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// ParseFile opens and parses the batch descriptor at path.
func ParseFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	parsed, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return parsed, nil
}

// Parse reads a batch descriptor.
//
// Grammar, one item per line, surrounding whitespace ignored:
//
//	# comment
//	!format=srt
//	!pace=10
//	Artist | Title
//	Artist | Title | Album
//
// Blank lines are skipped. A later setting overrides an earlier one.
func Parse(r io.Reader) (*File, error) {
	parsed := &File{}
	scanner := bufio.NewScanner(r)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if lineNo == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}

		switch {
		case line == "" || strings.HasPrefix(line, "#"):
			continue
		case strings.HasPrefix(line, "!"):
			if err := parsed.Overrides.set(line[1:]); err != nil {
				return nil, &SyntaxError{Line: lineNo, Msg: err.Error()}
			}
		default:
			song, err := parseSong(line)
			if err != nil {
				return nil, &SyntaxError{Line: lineNo, Msg: err.Error()}
			}
			parsed.Songs = append(parsed.Songs, song)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return parsed, nil
}

func parseSong(line string) (model.Song, error) {
	fields := strings.Split(line, Separator)
	if len(fields) < 2 || len(fields) > 3 {
		return model.Song{}, fmt.Errorf("want \"artist %s title [%s album]\", got %q", Separator, Separator, line)
	}

	var album string
	if len(fields) == 3 {
		album = fields[2]
	}
	song := model.NewSong(fields[0], fields[1], album, 0)
	if !song.Valid() {
		return model.Song{}, fmt.Errorf("artist and title must not be empty")
	}
	return song, nil
}

func (o *Overrides) set(setting string) error {
	key, value, ok := strings.Cut(setting, "=")
	if !ok {
		return fmt.Errorf("setting %q has no '='", setting)
	}
	key = strings.ToLower(strings.TrimSpace(key))
	value = strings.TrimSpace(value)

	switch key {
	case "format":
		f, err := model.ParseFormat(value)
		if err != nil {
			return err
		}
		name := f.String()
		o.Format = &name
	case "pace", "sleep":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%s must be a non-negative number of seconds, got %q", key, value)
		}
		o.PaceSeconds = &n
	case "output", "outdir":
		if value == "" {
			return fmt.Errorf("%s must not be empty", key)
		}
		o.OutputDir = &value
	case "token":
		o.Token = &value
	case "synced":
		b, err := parseSynced(value)
		if err != nil {
			return err
		}
		o.Synced = &b
	case "concurrency":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("concurrency must be a positive number, got %q", value)
		}
		o.Concurrency = &n
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	return nil
}

func parseSynced(value string) (bool, error) {
	switch strings.ToLower(value) {
	case "synced":
		return true, nil
	case "unsynced":
		return false, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("synced must be true, false, synced or unsynced, got %q", value)
	}
	return b, nil
}
