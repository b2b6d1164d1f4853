package musixmatch

import (
	"math"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/elliotchen37/rmxlrc/internal/model"
)

// Sub-call names inside message.body.macro_calls.
const (
	callMatcher   = "matcher.track.get"
	callSubtitles = "track.subtitles.get"
	callLyrics    = "track.lyrics.get"
)

var keyEscaper = strings.NewReplacer(
	`\`, `\\`,
	".", `\.`,
	"*", `\*`,
	"?", `\?`,
	"|", `\|`,
	"#", `\#`,
	"@", `\@`,
)

// Normalize converts a raw macro.subtitles.get response into a LyricDocument.
//
// The steps are:
//  1. An instrumental track yields the one-line instrumental document with
//     Synced set to requestSynced.
//  2. When requestSynced is true, the subtitle payload is decoded. Empty
//     text becomes the note sentinel and start times are total*1000 rounded.
//  3. When synced extraction is not requested or yields nothing, the plain
//     lyrics body is split into lines, blank lines dropped, Synced false.
//  4. Otherwise the document is empty, meaning "not found".
//
// Normalize never fails. Malformed JSON and unexpected shapes are treated
// as "nothing here" for the extraction step that met them.
func Normalize(raw []byte, requestSynced bool) model.LyricDocument {
	if !gjson.ValidBytes(raw) {
		return model.LyricDocument{}
	}
	calls := macroCalls(gjson.ParseBytes(raw))

	if isInstrumental(calls) {
		return model.InstrumentalDocument(requestSynced)
	}

	if requestSynced {
		if lines, ok := syncedLines(calls); ok {
			return model.LyricDocument{Lines: lines, Synced: true}
		}
	}

	if lines, ok := plainLines(calls); ok {
		return model.LyricDocument{Lines: lines}
	}

	return model.LyricDocument{}
}

// Status inspects the response headers and reports provider-level failures.
//
// A 401 maps to ErrUnauthorized. Any other code besides 200 and 404 maps to
// an *APIError. A missing or malformed header is not an error: the body is
// left to Normalize.
func Status(raw []byte) error {
	if !gjson.ValidBytes(raw) {
		return nil
	}
	header := lookup(gjson.ParseBytes(raw), "message", "header")
	code := lookup(header, "status_code")
	if code.Type != gjson.Number {
		return nil
	}

	hint := lookup(header, "hint").String()
	switch c := int(code.Int()); c {
	case 200, 404:
		return nil
	case 401:
		if hint != "" {
			return &wrappedHint{err: ErrUnauthorized, hint: hint}
		}
		return ErrUnauthorized
	default:
		return &APIError{Code: c, Hint: hint}
	}
}

type wrappedHint struct {
	err  error
	hint string
}

func (w *wrappedHint) Error() string { return w.err.Error() + " (" + w.hint + ")" }
func (w *wrappedHint) Unwrap() error { return w.err }

// macroCalls returns the macro_calls map, or the root itself when the
// response is already the bare map.
func macroCalls(root gjson.Result) gjson.Result {
	if calls := lookup(root, "message", "body", "macro_calls"); calls.Exists() {
		return calls
	}
	return root
}

func isInstrumental(calls gjson.Result) bool {
	return truthy(lookup(calls, callMatcher, "message", "body", "track", "instrumental"))
}

func syncedLines(calls gjson.Result) ([]model.LyricLine, bool) {
	body := lookup(calls, callSubtitles, "message", "body", "subtitle_list", "subtitle", "subtitle_body")

	var entries gjson.Result
	switch {
	case body.Type == gjson.String:
		if !gjson.Valid(body.Str) {
			return nil, false
		}
		entries = gjson.Parse(body.Str)
	case body.IsArray():
		entries = body
	default:
		return nil, false
	}
	if !entries.IsArray() {
		return nil, false
	}

	items := entries.Array()
	if len(items) == 0 {
		return nil, false
	}

	lines := make([]model.LyricLine, 0, len(items))
	for _, item := range items {
		if !item.IsObject() {
			return nil, false
		}

		var text string
		switch t := item.Get("text"); t.Type {
		case gjson.String:
			text = t.Str
		case gjson.Null:
		default:
			return nil, false
		}
		if strings.TrimSpace(text) == "" {
			text = ""
		}

		total := lookup(item, "time", "total")
		if total.Type != gjson.Number {
			return nil, false
		}

		lines = append(lines, model.NewLyricLine(text, int(math.Round(total.Num*1000))))
	}

	return lines, true
}

func plainLines(calls gjson.Result) ([]model.LyricLine, bool) {
	lyrics := unwrap(lookup(calls, callLyrics, "message", "body", "lyrics"))
	if truthy(lyrics.Get("restricted")) {
		return nil, false
	}

	body := lookup(lyrics, "lyrics_body")
	if body.Type != gjson.String {
		return nil, false
	}

	text := strings.ReplaceAll(body.Str, "\r\n", "\n")
	var lines []model.LyricLine
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, model.NewLyricLine(line, 0))
	}

	return lines, len(lines) > 0
}

// lookup walks keys from root. Before every step an array is replaced by
// its first element, so both {"a":{"b":1}} and {"a":[{"b":1}]} resolve
// a→b. A missing step yields a non-existent Result.
func lookup(root gjson.Result, keys ...string) gjson.Result {
	cur := root
	for _, key := range keys {
		cur = unwrap(cur)
		if !cur.IsObject() {
			return gjson.Result{}
		}
		cur = cur.Get(keyEscaper.Replace(key))
		if !cur.Exists() {
			return gjson.Result{}
		}
	}
	return cur
}

func unwrap(r gjson.Result) gjson.Result {
	for r.IsArray() {
		items := r.Array()
		if len(items) == 0 {
			return gjson.Result{}
		}
		r = items[0]
	}
	return r
}

func truthy(r gjson.Result) bool {
	switch r.Type {
	case gjson.True:
		return true
	case gjson.Number:
		return r.Num != 0
	case gjson.String:
		return r.Str == "1" || strings.EqualFold(r.Str, "true")
	default:
		return false
	}
}
