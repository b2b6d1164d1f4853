package subtitle

import (
	"fmt"
	"strings"

	"github.com/elliotchen37/rmxlrc/internal/model"
)

// lastLineMs is how long the final SRT block stays on screen.
const lastLineMs = 2000

// Render serializes a LyricDocument in the given format.
//
// Render is pure: the same document and format always produce the same
// text. An empty document renders to the empty string, which callers
// treat as "nothing to write".
//
// Example:
//
//	text := subtitle.Render(doc, model.FormatLRC)
//	if text == "" {
//	    // not found, do not create a file
//	}
func Render(doc model.LyricDocument, format model.Format) string {
	if doc.Empty() {
		return ""
	}
	switch format {
	case model.FormatSRT:
		return renderSRT(doc)
	default:
		return renderLRC(doc)
	}
}

// renderLRC generates LRC text.
//
// Synced documents prefix every line with its timestamp, including lines
// at 00:00.00. Unsynced documents emit bare text:
//
//	[00:01.50]Hello
//	[00:03.00]World
func renderLRC(doc model.LyricDocument) string {
	var sb strings.Builder

	for _, line := range doc.Lines {
		if doc.Synced {
			sb.WriteString(FormatLRCTimestamp(line.StartMs))
		}
		sb.WriteString(line.Text)
		sb.WriteByte('\n')
	}

	return sb.String()
}

// renderSRT generates SRT text.
//
// Each block ends when the next one starts; the last block lasts two
// seconds:
//
//	1
//	00:00:00,000 --> 00:00:03,000
//	First line
//
//	2
//	00:00:03,000 --> 00:00:05,000
//	Second line
func renderSRT(doc model.LyricDocument) string {
	var sb strings.Builder

	for i, line := range doc.Lines {
		end := line.StartMs + lastLineMs
		if i+1 < len(doc.Lines) {
			end = doc.Lines[i+1].StartMs
		}
		fmt.Fprintf(&sb, "%d\n%s --> %s\n%s\n\n", i+1, FormatSRTTimestamp(line.StartMs), FormatSRTTimestamp(end), line.Text)
	}

	return sb.String()
}

// FormatLRCTimestamp formats ms as "[MM:SS.CC]". Minutes are not wrapped
// into hours, so a 75 minute offset renders as "[75:00.00]".
func FormatLRCTimestamp(ms int) string {
	if ms < 0 {
		ms = 0
	}
	minutes := ms / 60000
	seconds := (ms / 1000) % 60
	centis := (ms % 1000) / 10
	return fmt.Sprintf("[%02d:%02d.%02d]", minutes, seconds, centis)
}

// FormatSRTTimestamp formats ms as "HH:MM:SS,mmm".
func FormatSRTTimestamp(ms int) string {
	if ms < 0 {
		ms = 0
	}
	hours := ms / 3600000
	minutes := (ms / 60000) % 60
	seconds := (ms / 1000) % 60
	millis := ms % 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, seconds, millis)
}
