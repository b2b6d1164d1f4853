package musixmatch

import (
	"context"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/elliotchen37/rmxlrc/internal/http"
	"github.com/elliotchen37/rmxlrc/internal/model"
)

const (
	// DefaultBaseURL is the desktop API root.
	DefaultBaseURL = "https://apic-desktop.musixmatch.com/ws/1.1"

	// AppID identifies the desktop client to the API.
	AppID = "web-desktop-app-v1.0"

	// UserAgent is the desktop app's Electron user agent.
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Musixmatch/0.19.4 Chrome/58.0.3029.110 Electron/1.7.6 Safari/537.36"
)

// Getter performs GET requests. *http.Client implements it.
type Getter interface {
	Get(ctx context.Context, rawURL string, query url.Values) ([]byte, error)
}

// NewHTTPClient returns an HTTP client carrying the headers the desktop
// API expects.
func NewHTTPClient(timeout time.Duration, retry http.RetryPolicy, logger zerolog.Logger) *http.Client {
	c := http.NewClient(timeout, retry, logger)
	c.SetUserAgent(UserAgent)
	c.SetHeader("authority", "apic-desktop.musixmatch.com")
	c.SetHeader("cookie", "x-mxm-token-guid=")
	return c
}

// Client searches the desktop API for lyrics.
//
// Example:
//
//	session := musixmatch.NewSession(httpClient, "", cfg.Token, logger)
//	client := musixmatch.NewClient(httpClient, "", logger)
//
//	token, err := session.Acquire(ctx)
//	doc, err := client.Fetch(ctx, song, token, true)
type Client struct {
	getter  Getter
	baseURL string
	logger  zerolog.Logger
}

// NewClient creates a Client. An empty baseURL selects DefaultBaseURL.
func NewClient(getter Getter, baseURL string, logger zerolog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		getter:  getter,
		baseURL: baseURL,
		logger:  logger.With().Str("component", "musixmatch").Logger(),
	}
}

// Search performs the macro.subtitles.get request and returns the raw body.
func (c *Client) Search(ctx context.Context, song model.Song, token string) ([]byte, error) {
	query, err := BuildQuery(song, token)
	if err != nil {
		return nil, err
	}
	c.logger.Debug().Str("song", song.String()).Msg("searching lyrics")
	return c.getter.Get(ctx, c.baseURL+"/macro.subtitles.get", query)
}

// Fetch searches for song and normalizes the response.
//
// Transport failures and provider status errors (ErrUnauthorized,
// *APIError) are returned. A response without lyrics yields an empty
// document and a nil error.
func (c *Client) Fetch(ctx context.Context, song model.Song, token string, synced bool) (model.LyricDocument, error) {
	raw, err := c.Search(ctx, song, token)
	if err != nil {
		return model.LyricDocument{}, err
	}
	if err := Status(raw); err != nil {
		return model.LyricDocument{}, err
	}

	doc := Normalize(raw, synced)
	c.logger.Debug().
		Str("song", song.String()).
		Int("lines", len(doc.Lines)).
		Bool("synced", doc.Synced).
		Bool("instrumental", doc.Instrumental).
		Msg("lyrics normalized")
	return doc, nil
}
