// Package service assembles the provider session, lyrics client and
// optional document cache from settings.
package service

import (
	"github.com/rs/zerolog"

	"github.com/elliotchen37/rmxlrc/internal/batch"
	"github.com/elliotchen37/rmxlrc/internal/cache"
	"github.com/elliotchen37/rmxlrc/internal/config"
	"github.com/elliotchen37/rmxlrc/internal/musixmatch"
)

// Service is the lookup stack used by one run.
type Service struct {
	Session *musixmatch.Session
	Fetcher batch.Fetcher

	closers []func() error
}

// New builds a Service. baseURL may be empty for the real API.
//
// A Redis cache is used when settings.Redis.Addr is set, otherwise a file
// cache when settings.CacheDir is set. A cache that cannot be opened is
// logged and skipped.
func New(settings *config.Settings, baseURL string, logger zerolog.Logger) *Service {
	httpClient := musixmatch.NewHTTPClient(settings.Timeout(), settings.ToRetryPolicy(), logger)
	client := musixmatch.NewClient(httpClient, baseURL, logger)

	svc := &Service{
		Session: musixmatch.NewSession(httpClient, baseURL, settings.Token, logger),
		Fetcher: client,
	}

	switch {
	case settings.Redis.Addr != "":
		store, err := cache.NewRedisStore(settings.Redis.Addr, settings.Redis.Password, settings.Redis.DB, settings.CacheTTL())
		if err != nil {
			logger.Warn().Err(err).Str("addr", settings.Redis.Addr).Msg("redis cache unavailable, continuing without cache")
			break
		}
		svc.Fetcher = cache.NewFetcher(client, store, logger)
		svc.closers = append(svc.closers, store.Close)
	case settings.CacheDir != "":
		store, err := cache.NewFileStore(settings.CacheDir, settings.CacheTTL())
		if err != nil {
			logger.Warn().Err(err).Str("dir", settings.CacheDir).Msg("file cache unavailable, continuing without cache")
			break
		}
		svc.Fetcher = cache.NewFetcher(client, store, logger)
	}

	return svc
}

// Close releases cache connections.
func (s *Service) Close() error {
	var first error
	for _, c := range s.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
