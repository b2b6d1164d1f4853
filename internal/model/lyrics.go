package model

const (
	// EmptyLineText replaces provider lines that carry no text.
	EmptyLineText = "♪"

	// InstrumentalText is the single line of an instrumental document.
	InstrumentalText = "♪ Instrumental ♪"
)

// LyricLine is one line of lyrics.
//
// Text is never empty; lines created through NewLyricLine substitute
// EmptyLineText for blank input. StartMs is 0 for unsynced lyrics.
type LyricLine struct {
	// Text is the line content.
	Text string `json:"text"`

	// StartMs is the playback offset in milliseconds at which the line begins.
	StartMs int `json:"start_ms"`
}

// NewLyricLine creates a LyricLine, replacing empty text with EmptyLineText.
func NewLyricLine(text string, startMs int) LyricLine {
	if text == "" {
		text = EmptyLineText
	}
	if startMs < 0 {
		startMs = 0
	}
	return LyricLine{Text: text, StartMs: startMs}
}

// LyricDocument is the normalized result of a lyrics lookup.
//
// Invariants:
//   - Instrumental documents contain exactly one line, InstrumentalText.
//   - Synced documents keep the order in which the provider returned the
//     lines. They are not re-sorted.
//   - A document with no lines means "not found".
type LyricDocument struct {
	// Lines holds the lyric lines in playback order.
	Lines []LyricLine `json:"lines"`

	// Synced is true when every line carries a meaningful StartMs.
	Synced bool `json:"synced"`

	// Instrumental is true when the provider flagged the track as having no vocals.
	Instrumental bool `json:"instrumental"`
}

// InstrumentalDocument returns the one-line document used for instrumental tracks.
func InstrumentalDocument(synced bool) LyricDocument {
	return LyricDocument{
		Lines:        []LyricLine{{Text: InstrumentalText}},
		Synced:       synced,
		Instrumental: true,
	}
}

// Empty reports whether the document has no lines.
func (d LyricDocument) Empty() bool {
	return len(d.Lines) == 0
}

// PlainText returns the lyric text joined by newlines, without timing.
// It is used for embedding lyrics into audio tags.
func (d LyricDocument) PlainText() string {
	var n int
	for _, line := range d.Lines {
		n += len(line.Text) + 1
	}
	buf := make([]byte, 0, n)
	for i, line := range d.Lines {
		if i > 0 {
			buf = append(buf, '\n')
		}
		buf = append(buf, line.Text...)
	}
	return string(buf)
}
