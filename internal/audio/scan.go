package audio

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"
)

// Extensions lists the audio file types Scan picks up.
var Extensions = []string{
	".aiff", ".aif", ".aifc", ".wma", ".flac", ".opus", ".ogg", ".wav",
	".m4a", ".mp3", ".mp2", ".mp1",
}

// IsAudioFile reports whether path has one of Extensions, ignoring case.
func IsAudioFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Scan walks root recursively and returns the audio files in lexical
// order. Unreadable subdirectories are skipped. Cancelling ctx stops the
// walk and returns ctx.Err().
func Scan(ctx context.Context, root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if path == root {
				return err
			}
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() && IsAudioFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}
