package musixmatch

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
)

// Session holds the user token for the desktop API.
//
// A Session is created with an optional caller-supplied token. Acquire
// adopts that token without touching the network; only an empty session
// performs the token.get bootstrap. Refresh always bootstraps.
//
// Token may be read from many goroutines. Acquire and Refresh are meant to
// be called by a single coordinating goroutine, never by batch workers.
type Session struct {
	getter  Getter
	baseURL string
	logger  zerolog.Logger

	mu    sync.RWMutex
	token string
}

// NewSession creates a Session. existing may be empty.
func NewSession(getter Getter, baseURL, existing string, logger zerolog.Logger) *Session {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Session{
		getter:  getter,
		baseURL: baseURL,
		logger:  logger.With().Str("component", "session").Logger(),
		token:   existing,
	}
}

// Token returns the currently held token, possibly empty.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Acquire returns the held token, bootstrapping a new one if none is held.
func (s *Session) Acquire(ctx context.Context) (string, error) {
	if token := s.Token(); token != "" {
		return token, nil
	}
	return s.renew(ctx, "acquire")
}

// Refresh discards the held token and bootstraps a new one. On failure the
// old token is kept.
func (s *Session) Refresh(ctx context.Context) (string, error) {
	return s.renew(ctx, "refresh")
}

func (s *Session) renew(ctx context.Context, op string) (string, error) {
	token, err := s.bootstrap(ctx)
	if err != nil {
		return "", &TokenError{Op: op, Err: err}
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	s.logger.Debug().Str("op", op).Msg("token obtained")
	return token, nil
}

func (s *Session) bootstrap(ctx context.Context) (string, error) {
	body, err := s.getter.Get(ctx, s.baseURL+"/token.get", url.Values{"app_id": {AppID}})
	if err != nil {
		return "", err
	}
	if !gjson.ValidBytes(body) {
		return "", errMalformed
	}

	root := gjson.ParseBytes(body)
	token := lookup(root, "message", "body", "user_token")
	if token.Type != gjson.String || token.Str == "" {
		if hint := lookup(root, "message", "header", "hint").String(); hint != "" {
			return "", fmt.Errorf("%w (hint: %s)", errMissingToken, hint)
		}
		return "", errMissingToken
	}

	return token.Str, nil
}
