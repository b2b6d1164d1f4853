package cache

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	ioutils "github.com/elliotchen37/rmxlrc/internal/io"
	"github.com/elliotchen37/rmxlrc/internal/model"
)

type entry struct {
	StoredAt time.Time           `json:"stored_at"`
	Doc      model.LyricDocument `json:"doc"`
}

// FileStore keeps one JSON file per key in a directory.
type FileStore struct {
	dir string
	ttl time.Duration
	now func() time.Time
}

// NewFileStore creates a FileStore rooted at dir. A ttl of zero keeps
// entries forever.
func NewFileStore(dir string, ttl time.Duration) (*FileStore, error) {
	if err := ioutils.EnsureDir(dir); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir, ttl: ttl, now: time.Now}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Get implements Store. Expired and unreadable entries count as misses.
func (s *FileStore) Get(ctx context.Context, key string) (model.LyricDocument, bool, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.LyricDocument{}, false, nil
		}
		return model.LyricDocument{}, false, err
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return model.LyricDocument{}, false, nil
	}
	if s.ttl > 0 && s.now().Sub(e.StoredAt) > s.ttl {
		return model.LyricDocument{}, false, nil
	}
	return e.Doc, true, nil
}

// Put implements Store.
func (s *FileStore) Put(ctx context.Context, key string, doc model.LyricDocument) error {
	data, err := json.Marshal(entry{StoredAt: s.now(), Doc: doc})
	if err != nil {
		return err
	}
	return ioutils.WriteFile(ctx, s.path(key), data)
}
