// Package cache stores normalized lyric documents so repeated runs over
// the same songs do not hit the provider again.
//
// Two stores are available: FileStore (one JSON file per lookup under a
// cache directory) and RedisStore. Fetcher puts either in front of the
// provider client:
//
//	store, err := cache.NewFileStore(settings.CacheDir, settings.CacheTTL())
//	fetcher := cache.NewFetcher(mxClient, store, logger)
package cache
