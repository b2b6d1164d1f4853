// Package musixmatch talks to the Musixmatch desktop API and turns its
// responses into model.LyricDocument values.
//
// # Session
//
// Session owns the user token. A token supplied by the user is adopted as
// is; otherwise Acquire bootstraps one from token.get:
//
//	session := musixmatch.NewSession(httpClient, "", "", logger)
//	token, err := session.Acquire(ctx)
//
// # Queries and normalization
//
// BuildQuery produces the macro.subtitles.get parameters for a song and
// Normalize parses the response. The response nests each field at a
// varying depth, sometimes under an extra single-element list, so every
// lookup goes through a tolerant walker instead of fixed structs.
//
// Normalize prefers synced lyrics when asked and falls back to the plain
// lyrics body, marking the document unsynced. Instrumental tracks produce
// a single "♪ Instrumental ♪" line. A response with nothing usable produces
// an empty document, which callers treat as "not found".
//
// # Errors
//
// Token failures are *TokenError. A rejected token surfaces as
// ErrUnauthorized from Client.Fetch; refreshing is left to the caller.
package musixmatch
