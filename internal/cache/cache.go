package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/elliotchen37/rmxlrc/internal/model"
)

// Store persists normalized lyric documents by key.
type Store interface {
	// Get returns the document for key. A miss is (zero, false, nil).
	Get(ctx context.Context, key string) (model.LyricDocument, bool, error)

	// Put stores doc under key.
	Put(ctx context.Context, key string, doc model.LyricDocument) error
}

// Upstream is the lookup a Fetcher decorates, e.g. *musixmatch.Client.
type Upstream interface {
	Fetch(ctx context.Context, song model.Song, token string, synced bool) (model.LyricDocument, error)
}

// Key returns the cache key for a song lookup in the given sync mode.
func Key(song model.Song, synced bool) string {
	sum := sha256.Sum256([]byte(song.Key() + "\x1f" + strconv.FormatBool(synced)))
	return hex.EncodeToString(sum[:])
}

// Fetcher serves lookups from a Store and falls through to Upstream on a
// miss. Only non-empty documents are stored, so a song that was not found
// is asked for again next time. Store failures are logged and otherwise
// ignored.
type Fetcher struct {
	upstream Upstream
	store    Store
	logger   zerolog.Logger
}

// NewFetcher wraps upstream with store.
func NewFetcher(upstream Upstream, store Store, logger zerolog.Logger) *Fetcher {
	return &Fetcher{
		upstream: upstream,
		store:    store,
		logger:   logger.With().Str("component", "cache").Logger(),
	}
}

// Fetch implements the batch fetcher contract.
func (f *Fetcher) Fetch(ctx context.Context, song model.Song, token string, synced bool) (model.LyricDocument, error) {
	key := Key(song, synced)

	doc, ok, err := f.store.Get(ctx, key)
	switch {
	case err != nil:
		f.logger.Warn().Err(err).Str("song", song.String()).Msg("cache read failed")
	case ok:
		f.logger.Debug().Str("song", song.String()).Msg("cache hit")
		return doc, nil
	}

	doc, err = f.upstream.Fetch(ctx, song, token, synced)
	if err != nil || doc.Empty() {
		return doc, err
	}

	if err := f.store.Put(ctx, key, doc); err != nil {
		f.logger.Warn().Err(err).Str("song", song.String()).Msg("cache write failed")
	}
	return doc, nil
}
