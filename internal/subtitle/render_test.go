package subtitle

import (
	"fmt"
	"strings"
	"testing"

	"github.com/elliotchen37/rmxlrc/internal/model"
)

func TestRender_LRCSynced(t *testing.T) {
	doc := model.LyricDocument{
		Synced: true,
		Lines: []model.LyricLine{
			{Text: model.EmptyLineText, StartMs: 0},
			{Text: "Hello", StartMs: 1500},
			{Text: "Later", StartMs: 61999},
		},
	}

	got := Render(doc, model.FormatLRC)
	want := "[00:00.00]♪\n[00:01.50]Hello\n[01:01.99]Later\n"
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRender_LRCUnsynced(t *testing.T) {
	doc := model.LyricDocument{
		Lines: []model.LyricLine{{Text: "Line one"}, {Text: "Line two"}},
	}

	got := Render(doc, model.FormatLRC)
	if got != "Line one\nLine two\n" {
		t.Errorf("Render() = %q", got)
	}
	if strings.Contains(got, "[") {
		t.Error("unsynced LRC contains timestamps")
	}
}

func TestRender_SRT(t *testing.T) {
	doc := model.LyricDocument{
		Synced: true,
		Lines:  []model.LyricLine{{Text: "First", StartMs: 0}, {Text: "Second", StartMs: 3000}},
	}

	got := Render(doc, model.FormatSRT)
	want := "1\n00:00:00,000 --> 00:00:03,000\nFirst\n\n" +
		"2\n00:00:03,000 --> 00:00:05,000\nSecond\n\n"
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRender_Instrumental(t *testing.T) {
	got := Render(model.InstrumentalDocument(true), model.FormatLRC)
	if got != "[00:00.00]♪ Instrumental ♪\n" {
		t.Errorf("Render() = %q", got)
	}
}

func TestRender_EmptyDocument(t *testing.T) {
	for _, format := range []model.Format{model.FormatLRC, model.FormatSRT} {
		if got := Render(model.LyricDocument{Synced: true}, format); got != "" {
			t.Errorf("Render(empty, %v) = %q, want empty", format, got)
		}
	}
}

func TestRender_Idempotent(t *testing.T) {
	doc := model.LyricDocument{
		Synced: true,
		Lines:  []model.LyricLine{{Text: "a", StartMs: 10}, {Text: "b", StartMs: 12345}},
	}

	for _, format := range []model.Format{model.FormatLRC, model.FormatSRT} {
		if Render(doc, format) != Render(doc, format) {
			t.Errorf("Render(%v) is not deterministic", format)
		}
	}
}

func TestFormatLRCTimestamp_RoundTrip(t *testing.T) {
	samples := []int{0, 9, 10, 999, 1000, 1500, 59999, 60000, 61999, 3599999, 3600000, 5999990, 7234567}
	for ms := 0; ms < 200000; ms += 7 {
		samples = append(samples, ms)
	}

	for _, ms := range samples {
		ts := FormatLRCTimestamp(ms)

		var minutes, seconds, centis int
		if _, err := fmt.Sscanf(ts, "[%d:%d.%d]", &minutes, &seconds, &centis); err != nil {
			t.Fatalf("FormatLRCTimestamp(%d) = %q, unparseable: %v", ms, ts, err)
		}
		decoded := minutes*60000 + seconds*1000 + centis*10
		if decoded > ms || ms >= decoded+10 {
			t.Fatalf("FormatLRCTimestamp(%d) = %q decodes to %d", ms, ts, decoded)
		}
		if seconds > 59 || centis > 99 {
			t.Fatalf("FormatLRCTimestamp(%d) = %q has out-of-range fields", ms, ts)
		}
	}
}

func TestFormatLRCTimestamp_LongMinutes(t *testing.T) {
	if got := FormatLRCTimestamp(75 * 60000); got != "[75:00.00]" {
		t.Errorf("FormatLRCTimestamp() = %q, want [75:00.00]", got)
	}
	if got := FormatLRCTimestamp(-5); got != "[00:00.00]" {
		t.Errorf("FormatLRCTimestamp(-5) = %q", got)
	}
}

func TestFormatSRTTimestamp(t *testing.T) {
	tests := []struct {
		ms   int
		want string
	}{
		{0, "00:00:00,000"},
		{3000, "00:00:03,000"},
		{61001, "00:01:01,001"},
		{3723456, "01:02:03,456"},
	}

	for _, tt := range tests {
		if got := FormatSRTTimestamp(tt.ms); got != tt.want {
			t.Errorf("FormatSRTTimestamp(%d) = %q, want %q", tt.ms, got, tt.want)
		}
	}
}
