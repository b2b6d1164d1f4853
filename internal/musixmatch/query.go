package musixmatch

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/elliotchen37/rmxlrc/internal/model"
)

// BuildQuery returns the parameters for a macro.subtitles.get request.
//
// Artist, title and token are always present. q_album is added only when
// the song has an album; q_duration (seconds) and f_subtitle_length
// (whole seconds) only when it has a duration; track_spotify_id only when
// it has a Spotify id.
//
// Example:
//
//	q, err := BuildQuery(model.NewSong("Adele", "Hello", "", 295500), token)
//	// q.Get("q_duration") == "295.5", q.Get("f_subtitle_length") == "295"
func BuildQuery(song model.Song, token string) (url.Values, error) {
	if !song.Valid() {
		return nil, fmt.Errorf("%w: artist and title are required", ErrInvalidQuery)
	}
	if token == "" {
		return nil, fmt.Errorf("%w: token is required", ErrInvalidQuery)
	}

	q := url.Values{}
	q.Set("format", "json")
	q.Set("namespace", "lyrics_richsynched")
	q.Set("subtitle_format", "mxm")
	q.Set("app_id", AppID)
	q.Set("q_artist", song.Artist)
	q.Set("q_artists", song.Artist)
	q.Set("q_track", song.Title)
	q.Set("usertoken", token)

	if song.HasAlbum() {
		q.Set("q_album", song.Album)
	}
	if song.HasDuration() {
		seconds := float64(song.DurationMs) / 1000
		q.Set("q_duration", strconv.FormatFloat(seconds, 'f', -1, 64))
		q.Set("f_subtitle_length", strconv.Itoa(song.DurationMs/1000))
	}
	if song.SpotifyID != "" {
		q.Set("track_spotify_id", song.SpotifyID)
	}

	return q, nil
}
