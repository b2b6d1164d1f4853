package logging

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		verbose   bool
		wantDebug bool
	}{
		{"info", false, false},
		{"verbose", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(&buf, tt.verbose)

			logger.Debug().Msg("debug line")
			logger.Info().Str("song", "A - B").Msg("info line")

			out := buf.String()
			if got := strings.Contains(out, "debug line"); got != tt.wantDebug {
				t.Errorf("debug logged = %v, want %v", got, tt.wantDebug)
			}
			if !strings.Contains(out, "info line") || !strings.Contains(out, "song=") {
				t.Errorf("output = %q, want info line with song field", out)
			}
			if strings.Contains(out, "\x1b[") {
				t.Errorf("output = %q, want no color codes for a buffer", out)
			}
		})
	}
}

func TestNew_LeavesGlobalsAlone(t *testing.T) {
	prev := zerolog.TimeFieldFormat
	t.Cleanup(func() { zerolog.TimeFieldFormat = prev })
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs

	var buf bytes.Buffer
	logger := New(&buf, false)
	logger.Info().Msg("hello")

	if zerolog.TimeFieldFormat != zerolog.TimeFormatUnixMs {
		t.Errorf("TimeFieldFormat = %q, want %q", zerolog.TimeFieldFormat, zerolog.TimeFormatUnixMs)
	}

	stamp, _, _ := strings.Cut(buf.String(), " ")
	if _, err := time.Parse(time.RFC3339, stamp); err != nil {
		t.Errorf("timestamp %q is not RFC 3339: %v", stamp, err)
	}
}
